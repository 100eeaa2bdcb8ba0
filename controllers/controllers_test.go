package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nanuputtu02/VOTEMATE/config"
	"github.com/nanuputtu02/VOTEMATE/middleware"
	"github.com/nanuputtu02/VOTEMATE/models"
)

// setupTest wires the package globals to a fresh in-memory database.
func setupTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Election{}, &models.Candidate{}, &models.Vote{}))

	config.DB = db
	config.JWTSecret = []byte("test-secret")
	config.StudentEmailDomain = "@vvce.ac.in"
	config.AdminEmailDomain = "@gmail.com"
	config.FrontendBaseURL = "http://localhost:5000"
}

// newTestRouter registers the same routes the server uses.
func newTestRouter() *gin.Engine {
	router := gin.New()

	auth := router.Group("/auth")
	auth.GET("/google", GoogleLogin)
	auth.GET("/google/callback", GoogleCallback)
	auth.GET("/failure", AuthFailure)
	auth.GET("/logout", Logout)

	admin := router.Group("/api/admin", middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
	admin.POST("/create-election", CreateElection)
	admin.POST("/add-candidate", AddCandidate)
	admin.GET("/elections", ListElections)
	admin.GET("/active-elections", ActiveElections)
	admin.GET("/results/:electionId", ElectionResults)
	admin.PUT("/end-election/:electionId", EndElection)
	admin.DELETE("/delete-election/:electionId", DeleteElection)
	admin.DELETE("/delete-candidate/:candidateId", DeleteCandidate)

	student := router.Group("/api/student", middleware.JWTAuthMiddleware())
	student.GET("/active-election", ActiveElection)
	student.POST("/vote", SubmitVote)
	student.GET("/results/:electionId", StudentResults)
	student.GET("/past-winners", PastWinners)

	return router
}

func createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Role: role, GoogleID: "g-" + email}
	require.NoError(t, config.DB.Create(&user).Error)
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	signed, err := middleware.IssueToken(user)
	require.NoError(t, err)
	return signed
}

func createElection(t *testing.T, start time.Time, durationMinutes int, isActive bool) *models.Election {
	t.Helper()
	election := models.Election{
		Title:       "CR Election",
		Description: "Class representative election",
		Duration:    durationMinutes,
		StartTime:   start,
		IsActive:    isActive,
	}
	require.NoError(t, config.DB.Create(&election).Error)
	return &election
}

func createCandidate(t *testing.T, electionID, name, gender string) *models.Candidate {
	t.Helper()
	candidate := models.Candidate{ElectionID: electionID, Name: name, Gender: gender}
	require.NoError(t, config.DB.Create(&candidate).Error)
	return &candidate
}

func uniqueEmail(t *testing.T) string {
	t.Helper()
	return uuid.NewString() + "@vvce.ac.in"
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
