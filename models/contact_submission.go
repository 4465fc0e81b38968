package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactSubmission is an insert-only record of a contact form submission.
// There is no read path; admins query the table directly.
type ContactSubmission struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"not null;index" json:"email"`
	Fandom       string  `gorm:"not null" json:"fandom"`
	University   *string `json:"university,omitempty"`
	FavoriteTeam *string `json:"favorite_team,omitempty"`
	Message      string  `gorm:"type:text;not null" json:"message"`
	Feedback     *string `gorm:"type:text" json:"feedback,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
