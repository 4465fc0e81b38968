package models

import "time"

// MissionCategory groups missions by the kind of fan activity they reward
type MissionCategory string

const (
	MissionCategorySocial   MissionCategory = "social"
	MissionCategoryEvent    MissionCategory = "event"
	MissionCategoryContent  MissionCategory = "content"
	MissionCategoryReferral MissionCategory = "referral"
)

// MissionStatus indicates the lifecycle state of a mission
type MissionStatus string

const (
	MissionStatusActive    MissionStatus = "active"
	MissionStatusExpired   MissionStatus = "expired"
	MissionStatusCompleted MissionStatus = "completed"
)

// Mission is a definable fan task with a fixed Vibe Point reward.
// Reward must be > 0; a user id appears at most once in CompletedBy.
type Mission struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Reward      int             `json:"reward"`
	Category    MissionCategory `json:"category"`
	CompletedBy []string        `json:"completed_by"`
	Status      MissionStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// IsCompletedBy reports whether the given user already completed this mission
func (m *Mission) IsCompletedBy(userID string) bool {
	for _, id := range m.CompletedBy {
		if id == userID {
			return true
		}
	}
	return false
}
