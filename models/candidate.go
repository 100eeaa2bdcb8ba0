package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender categories. Each election elects one CR per gender.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

type Candidate struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ElectionID  string    `gorm:"size:36;index" json:"electionId"`
	Name        string    `json:"name"`
	Gender      string    `gorm:"size:8" json:"gender"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
