package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/nanuputtu02/VOTEMATE/config"
	"github.com/nanuputtu02/VOTEMATE/middleware"
	"github.com/nanuputtu02/VOTEMATE/models"
)

// userInfoURL is a var so tests can point it at a stub server.
var userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

const stateCookie = "oauth_state"

type googleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

var errDomainNotAllowed = errors.New("domain not allowed")

// roleForEmail derives the role from the email suffix: institutional
// addresses are students, public addresses are admins (testing rule).
// Any other domain is not allowed to authenticate.
func roleForEmail(email string) (string, error) {
	switch {
	case strings.HasSuffix(email, config.StudentEmailDomain):
		return models.RoleStudent, nil
	case strings.HasSuffix(email, config.AdminEmailDomain):
		return models.RoleAdmin, nil
	default:
		return "", errDomainNotAllowed
	}
}

// findOrCreateUser looks a user up by email, creating it on first login.
// The role is always re-derived from the email, never trusted from storage;
// a missing Google id is backfilled. Safe to re-apply on every login.
func findOrCreateUser(profile googleProfile) (*models.User, error) {
	role, err := roleForEmail(profile.Email)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = config.DB.Where("email = ?", profile.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Name:     profile.Name,
			Email:    profile.Email,
			Role:     role,
			GoogleID: profile.ID,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		log.Printf("Created %s: %s", role, user.Email)
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if user.GoogleID == "" {
		user.GoogleID = profile.ID
		changed = true
	}
	if user.Role != role {
		user.Role = role
		changed = true
	}
	if changed {
		if err := config.DB.Save(&user).Error; err != nil {
			return nil, err
		}
		log.Printf("Updated %s -> role: %s", user.Email, role)
	}
	return &user, nil
}

// GoogleLogin starts the OAuth handshake.
func GoogleLogin(c *gin.Context) {
	state, err := newState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to start login"})
		return
	}
	c.SetCookie(stateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuth.AuthCodeURL(state))
}

// GoogleCallback finishes the handshake: exchanges the code, fetches the
// profile, maps it to a user and redirects to the role-specific dashboard
// with a fresh token. Any failure lands on /auth/failure.
func GoogleCallback(c *gin.Context) {
	state, _ := c.Cookie(stateCookie)
	if state == "" || c.Query("state") != state {
		log.Println("OAuth callback: state mismatch")
		c.Redirect(http.StatusTemporaryRedirect, "/auth/failure")
		return
	}

	token, err := config.GoogleOAuth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Printf("OAuth code exchange failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, "/auth/failure")
		return
	}

	profile, err := fetchProfile(c, token)
	if err != nil {
		log.Printf("OAuth profile fetch failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, "/auth/failure")
		return
	}

	user, err := findOrCreateUser(profile)
	if err != nil {
		log.Printf("OAuth login rejected for %s: %v", profile.Email, err)
		c.Redirect(http.StatusTemporaryRedirect, "/auth/failure")
		return
	}

	signed, err := middleware.IssueToken(user)
	if err != nil {
		log.Printf("Failed to sign token for %s: %v", user.Email, err)
		c.Redirect(http.StatusTemporaryRedirect, "/auth/failure")
		return
	}

	redirectURL := fmt.Sprintf("%s/?token=%s", config.FrontendBaseURL, signed)
	switch user.Role {
	case models.RoleAdmin:
		redirectURL = fmt.Sprintf("%s/admin-dashboard.html?token=%s", config.FrontendBaseURL, signed)
	case models.RoleStudent:
		redirectURL = fmt.Sprintf("%s/voter-dashboard.html?token=%s", config.FrontendBaseURL, signed)
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

func AuthFailure(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": fmt.Sprintf("Authentication failed. Only %s (students) or %s (admins) accounts are allowed.",
			config.StudentEmailDomain, config.AdminEmailDomain),
	})
}

func Logout(c *gin.Context) {
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func fetchProfile(c *gin.Context, token *oauth2.Token) (googleProfile, error) {
	var profile googleProfile
	client := config.GoogleOAuth.Client(c.Request.Context(), token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return profile, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, err
	}
	if profile.Email == "" {
		return profile, errors.New("userinfo response missing email")
	}
	return profile, nil
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
