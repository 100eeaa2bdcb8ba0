// Description: Defines the User model and its fields.
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to a user. RoleStudent and RoleAdmin are derived from
// the email domain at login time and are never user-chosen. RoleCR is the
// third value of the stored role enum, reserved for elected class
// representatives; no login path derives it.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleCR      = "CR"
)

type User struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Role     string `gorm:"size:16" json:"role"`
	GoogleID string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
