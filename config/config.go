package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nanuputtu02/VOTEMATE/models"
)

// DB is the global database instance
var DB *gorm.DB
var JWTSecret []byte
var GoogleOAuth *oauth2.Config

// Email-suffix role policy. Institutional addresses become students,
// public addresses become admins. A placeholder testing rule, not a real
// authorization scheme.
var StudentEmailDomain string
var AdminEmailDomain string

var FrontendBaseURL string
var Port string

func LoadConfig() {
	// Load .env file if present; otherwise rely on the environment
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Set JWT secret key from environment variable
	JWTSecret = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTSecret) == 0 {
		log.Fatalf("JWT secret key not set in environment")
	}

	GoogleOAuth = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}

	StudentEmailDomain = getenv("STUDENT_EMAIL_DOMAIN", "@vvce.ac.in")
	AdminEmailDomain = getenv("ADMIN_EMAIL_DOMAIN", "@gmail.com")
	FrontendBaseURL = getenv("FRONTEND_BASE_URL", "http://localhost:5000")
	Port = getenv("PORT", "3000")
}

func ConnectDatabase() {
	// Load DB config from environment variables
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	var errDB error
	// TranslateError surfaces unique-index violations as gorm.ErrDuplicatedKey,
	// which the vote handler relies on to report racing duplicates as conflicts.
	DB, errDB = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if errDB != nil {
		log.Fatalf("Error connecting to database: %v", errDB)
	}

	log.Println("Database connected successfully")

	if err := DB.AutoMigrate(&models.User{}, &models.Election{}, &models.Candidate{}, &models.Vote{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	log.Println("Database migrated successfully")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
