package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Election struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    int         `json:"duration"` // minutes
	StartTime   time.Time   `json:"startTime"`
	Candidates  []Candidate `gorm:"foreignKey:ElectionID" json:"candidates"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (e *Election) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ActiveAt reports whether the election accepts votes at the given instant:
// the manual flag is still set, voting has started, and the duration window
// has not elapsed. Every caller that needs "currently active" must go
// through this method.
func (e *Election) ActiveAt(now time.Time) bool {
	if !e.IsActive || e.StartTime.After(now) {
		return false
	}
	return now.Sub(e.StartTime) < time.Duration(e.Duration)*time.Minute
}
