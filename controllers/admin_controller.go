package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nanuputtu02/VOTEMATE/config"
	"github.com/nanuputtu02/VOTEMATE/models"
)

// CreateElection handles election creation by an admin. At most one
// election may be active at any instant, so creation is refused while
// another election's voting window is still open.
func CreateElection(c *gin.Context) {
	var input struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		DurationHours   *int   `json:"durationHours"`
		DurationMinutes *int   `json:"durationMinutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if input.Title == "" || input.Description == "" || (input.DurationHours == nil && input.DurationMinutes == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, description, and duration are required"})
		return
	}

	totalMinutes := 0
	if input.DurationHours != nil {
		totalMinutes += *input.DurationHours * 60
	}
	if input.DurationMinutes != nil {
		totalMinutes += *input.DurationMinutes
	}

	now := time.Now()
	active, err := findActiveElection(now, false)
	if err != nil {
		log.Printf("Error checking active elections: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create election"})
		return
	}
	if active != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "An election is already active"})
		return
	}

	election := models.Election{
		Title:       input.Title,
		Description: input.Description,
		Duration:    totalMinutes,
		StartTime:   now,
		Candidates:  []models.Candidate{},
		IsActive:    true,
	}
	if err := config.DB.Create(&election).Error; err != nil {
		log.Printf("Error creating election %q: %v", input.Title, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create election"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Election created successfully", "election": election})
}

// AddCandidate registers a candidate under an election. Names are unique
// per (election, gender), compared case-insensitively on the trimmed name.
func AddCandidate(c *gin.Context) {
	var input struct {
		ElectionID  string `json:"electionId"`
		Name        string `json:"name"`
		Gender      string `json:"gender"`
		PhotoURL    string `json:"photoUrl"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	name := strings.TrimSpace(input.Name)
	if input.ElectionID == "" || name == "" || input.Gender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Election, candidate name, and gender are required"})
		return
	}
	if !models.ValidGender(input.Gender) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Gender must be Male or Female"})
		return
	}

	var election models.Election
	if err := config.DB.First(&election, "id = ?", input.ElectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
			return
		}
		log.Printf("Error loading election %s: %v", input.ElectionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add candidate"})
		return
	}

	var count int64
	err := config.DB.Model(&models.Candidate{}).
		Where("election_id = ? AND LOWER(name) = ? AND gender = ?", election.ID, strings.ToLower(name), input.Gender).
		Count(&count).Error
	if err != nil {
		log.Printf("Error checking duplicate candidate in election %s: %v", election.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add candidate"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Candidate already added to this election and gender"})
		return
	}

	candidate := models.Candidate{
		ElectionID:  election.ID,
		Name:        name,
		Gender:      input.Gender,
		PhotoURL:    input.PhotoURL,
		Description: input.Description,
	}
	if err := config.DB.Create(&candidate).Error; err != nil {
		log.Printf("Error creating candidate %q in election %s: %v", name, election.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add candidate"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Candidate added successfully", "candidate": candidate})
}

// ListElections returns every election with its candidates.
func ListElections(c *gin.Context) {
	var elections []models.Election
	err := config.DB.Preload("Candidates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	}).Order("created_at desc").Find(&elections).Error
	if err != nil {
		log.Printf("Error fetching elections: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch elections"})
		return
	}
	c.JSON(http.StatusOK, elections)
}

// ActiveElections returns the elections whose voting window is open now.
func ActiveElections(c *gin.Context) {
	var elections []models.Election
	err := config.DB.Preload("Candidates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	}).Where("is_active = ?", true).Find(&elections).Error
	if err != nil {
		log.Printf("Error fetching active elections: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch active elections"})
		return
	}

	now := time.Now()
	active := make([]models.Election, 0, len(elections))
	for _, e := range elections {
		if e.ActiveAt(now) {
			active = append(active, e)
		}
	}
	c.JSON(http.StatusOK, active)
}

// ElectionResults reports per-gender tallies and winners for an election.
func ElectionResults(c *gin.Context) {
	electionID := c.Param("electionId")

	var election models.Election
	if err := config.DB.First(&election, "id = ?", electionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
			return
		}
		log.Printf("Error loading election %s: %v", electionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch results"})
		return
	}

	results, err := tallyResults(config.DB, election.ID, "None", "None")
	if err != nil {
		log.Printf("Error tallying election %s: %v", election.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"election":         election.Title,
		"maleCandidates":   results.Male,
		"femaleCandidates": results.Female,
		"maleWinner":       results.MaleWinner,
		"femaleWinner":     results.FemaleWinner,
	})
}

// EndElection closes an election ahead of schedule. Clearing both the
// flag and the duration keeps the window shut even if the flag were
// flipped back by hand.
func EndElection(c *gin.Context) {
	electionID := c.Param("electionId")

	var election models.Election
	if err := config.DB.First(&election, "id = ?", electionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
			return
		}
		log.Printf("Error loading election %s: %v", electionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to end election"})
		return
	}

	election.IsActive = false
	election.Duration = 0
	if err := config.DB.Model(&election).Select("is_active", "duration").Updates(&election).Error; err != nil {
		log.Printf("Error ending election %s: %v", electionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to end election"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Election ended early"})
}

// DeleteElection removes an election and all of its candidates.
func DeleteElection(c *gin.Context) {
	electionID := c.Param("electionId")

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Election{}, "id = ?", electionID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.Candidate{}, "election_id = ?", electionID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
			return
		}
		log.Printf("Error deleting election %s: %v", electionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete election"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Election and related candidates deleted successfully"})
}

// DeleteCandidate removes a single candidate from its election.
func DeleteCandidate(c *gin.Context) {
	candidateID := c.Param("candidateId")

	res := config.DB.Delete(&models.Candidate{}, "id = ?", candidateID)
	if res.Error != nil {
		log.Printf("Error deleting candidate %s: %v", candidateID, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete candidate"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Candidate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted successfully"})
}
