package controllers

import (
	"time"

	"gorm.io/gorm"

	"github.com/nanuputtu02/VOTEMATE/config"
	"github.com/nanuputtu02/VOTEMATE/models"
)

type candidateResult struct {
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
}

type electionResults struct {
	Male         []candidateResult
	Female       []candidateResult
	MaleWinner   candidateResult
	FemaleWinner candidateResult
}

// tallyResults counts votes per candidate and picks the winner of each
// gender partition. Candidates are walked in creation order, so among
// equal vote counts the earliest-added candidate wins. An empty partition
// yields the sentinel name with zero votes.
func tallyResults(db *gorm.DB, electionID, maleSentinel, femaleSentinel string) (*electionResults, error) {
	var candidates []models.Candidate
	err := db.Where("election_id = ?", electionID).Order("created_at, id").Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	results := &electionResults{
		Male:   []candidateResult{},
		Female: []candidateResult{},
	}
	for _, candidate := range candidates {
		var votes int64
		err := db.Model(&models.Vote{}).Where("candidate_id = ?", candidate.ID).Count(&votes).Error
		if err != nil {
			return nil, err
		}
		entry := candidateResult{Name: candidate.Name, Votes: votes}
		switch candidate.Gender {
		case models.GenderMale:
			results.Male = append(results.Male, entry)
		case models.GenderFemale:
			results.Female = append(results.Female, entry)
		}
	}

	results.MaleWinner = pickWinner(results.Male, maleSentinel)
	results.FemaleWinner = pickWinner(results.Female, femaleSentinel)
	return results, nil
}

// pickWinner returns the first entry holding the maximum vote count.
func pickWinner(entries []candidateResult, sentinel string) candidateResult {
	winner := candidateResult{Name: sentinel, Votes: 0}
	best := int64(-1)
	for _, entry := range entries {
		if entry.Votes > best {
			winner = entry
			best = entry.Votes
		}
	}
	return winner
}

// findActiveElection returns the election whose voting window is open at
// the given instant, or nil if there is none. The single-active-election
// invariant makes "the first match" well defined.
func findActiveElection(now time.Time, withCandidates bool) (*models.Election, error) {
	query := config.DB.Where("is_active = ?", true)
	if withCandidates {
		query = query.Preload("Candidates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		})
	}

	var elections []models.Election
	if err := query.Find(&elections).Error; err != nil {
		return nil, err
	}
	for i := range elections {
		if elections[i].ActiveAt(now) {
			return &elections[i], nil
		}
	}
	return nil, nil
}
