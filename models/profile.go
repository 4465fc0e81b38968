package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds editable user profile fields keyed by wallet address.
// The address is the stable identifier; display name and avatar are
// user-controlled.
type Profile struct {
	ID             string  `gorm:"primaryKey;type:uuid" json:"id"`
	Address        string  `gorm:"uniqueIndex;not null" json:"address"`
	DisplayName    string  `gorm:"not null" json:"display_name"`
	AvatarURL      *string `gorm:"type:text" json:"avatar_url,omitempty"`
	Bio            *string `gorm:"type:text" json:"bio,omitempty"`
	FavoriteArtist *string `json:"favorite_artist,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
