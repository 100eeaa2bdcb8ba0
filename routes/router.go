package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nanuputtu02/VOTEMATE/controllers"
	"github.com/nanuputtu02/VOTEMATE/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Root goes straight to the OAuth login
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/auth/google")
	})

	// Auth routes (public)
	auth := router.Group("/auth")
	auth.GET("/google", controllers.GoogleLogin)
	auth.GET("/google/callback", controllers.GoogleCallback)
	auth.GET("/failure", controllers.AuthFailure)
	auth.GET("/logout", controllers.Logout)

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
	admin.POST("/create-election", controllers.CreateElection)
	admin.POST("/add-candidate", controllers.AddCandidate)
	admin.GET("/elections", controllers.ListElections)
	admin.GET("/active-elections", controllers.ActiveElections)
	admin.GET("/results/:electionId", controllers.ElectionResults)
	admin.PUT("/end-election/:electionId", controllers.EndElection)
	admin.DELETE("/delete-election/:electionId", controllers.DeleteElection)
	admin.DELETE("/delete-candidate/:candidateId", controllers.DeleteCandidate)

	// Student routes
	student := router.Group("/api/student")
	student.Use(middleware.JWTAuthMiddleware())
	student.GET("/active-election", controllers.ActiveElection)
	student.POST("/vote", controllers.SubmitVote)
	student.GET("/results/:electionId", controllers.StudentResults)
	student.GET("/past-winners", controllers.PastWinners)

	return router
}
