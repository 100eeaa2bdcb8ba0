package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nanuputtu02/VOTEMATE/config"
	"github.com/nanuputtu02/VOTEMATE/middleware"
	"github.com/nanuputtu02/VOTEMATE/models"
)

// ActiveElection returns the currently running election with its
// candidates, or an inactive marker when there is none.
func ActiveElection(c *gin.Context) {
	election, err := findActiveElection(time.Now(), true)
	if err != nil {
		log.Printf("Error fetching active election: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch active election"})
		return
	}
	if election == nil {
		c.JSON(http.StatusOK, gin.H{"isActive": false, "message": "No active election right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          election.ID,
		"title":       election.Title,
		"description": election.Description,
		"duration":    election.Duration,
		"startTime":   election.StartTime,
		"isActive":    true,
		"candidates":  election.Candidates,
	})
}

// SubmitVote records a student's vote. Each student gets one vote per
// gender per election; the candidate's own gender decides which partition
// the vote lands in. The unique index on votes is the final word when two
// submissions race past the pre-check.
func SubmitVote(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - Invalid token"})
		return
	}

	var input struct {
		ElectionID  string `json:"electionId"`
		CandidateID string `json:"candidateId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ElectionID == "" || input.CandidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Election ID and candidate ID are required"})
		return
	}

	var election models.Election
	if err := config.DB.First(&election, "id = ?", input.ElectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Election not found"})
			return
		}
		log.Printf("Error loading election %s: %v", input.ElectionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit vote"})
		return
	}

	if !election.ActiveAt(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Election has ended"})
		return
	}

	var candidate models.Candidate
	err := config.DB.First(&candidate, "id = ? AND election_id = ?", input.CandidateID, election.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid candidate for this election"})
			return
		}
		log.Printf("Error loading candidate %s: %v", input.CandidateID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit vote"})
		return
	}

	gender := candidate.Gender

	var existing int64
	err = config.DB.Model(&models.Vote{}).
		Where("user_id = ? AND election_id = ? AND gender = ?", claims.ID, election.ID, gender).
		Count(&existing).Error
	if err != nil {
		log.Printf("Error checking prior vote for user %s in election %s: %v", claims.ID, election.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit vote"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("You have already voted for a %s CR", gender)})
		return
	}

	vote := models.Vote{
		UserID:      claims.ID,
		ElectionID:  election.ID,
		CandidateID: candidate.ID,
		Gender:      gender,
	}
	if err := config.DB.Create(&vote).Error; err != nil {
		// A racing duplicate hits the unique index instead of the
		// pre-check above; report it as the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("You have already voted for a %s CR", gender)})
			return
		}
		log.Printf("Error saving vote for user %s in election %s: %v", claims.ID, election.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit vote"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vote submitted successfully"})
}

// StudentResults reports live per-gender tallies for the dashboard.
func StudentResults(c *gin.Context) {
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
		"isActive":         election.IsActive,
	})
}

// PastWinners lists the winners of the most recent completed elections.
func PastWinners(c *gin.Context) {
	var completed []models.Election
	err := config.DB.Where("is_active = ?", false).Order("created_at desc").Limit(5).Find(&completed).Error
	if err != nil {
		log.Printf("Error fetching past elections: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch past winners"})
		return
	}

	winners := make([]gin.H, 0, len(completed))
	for _, election := range completed {
		results, err := tallyResults(config.DB, election.ID, "No male candidate", "No female candidate")
		if err != nil {
			log.Printf("Error tallying past election %s: %v", election.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch past winners"})
			return
		}
		winners = append(winners, gin.H{
			"election":     election.Title,
			"maleWinner":   results.MaleWinner.Name,
			"femaleWinner": results.FemaleWinner.Name,
		})
	}

	c.JSON(http.StatusOK, winners)
}
