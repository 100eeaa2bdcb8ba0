package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is immutable once written. The composite unique index is the
// authoritative guard against double voting: at most one vote per
// (user, election, gender), no matter how requests race.
type Vote struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	UserID      string `gorm:"size:36;uniqueIndex:idx_votes_user_election_gender" json:"userId"`
	ElectionID  string `gorm:"size:36;uniqueIndex:idx_votes_user_election_gender" json:"electionId"`
	CandidateID string `gorm:"size:36;index" json:"candidateId"`
	Gender      string `gorm:"size:8;uniqueIndex:idx_votes_user_election_gender" json:"gender"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
