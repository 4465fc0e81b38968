package models

import "time"

// User is a fan account on the platform. VibePoints is a non-negative
// integer balance; CompletedMissions never contains duplicates.
type User struct {
	ID                string    `json:"id"`
	Address           string    `json:"address"`
	Name              string    `json:"name"`
	VibePoints        int       `json:"vibe_points"`
	CompletedMissions []string  `json:"completed_missions"`
	ReferralCount     int       `json:"referral_count"`
	ReferralCode      string    `json:"referral_code"`
	ReferredBy        string    `json:"referred_by,omitempty"` // referrer user id, set at signup via referral code
	JoinedAt          time.Time `json:"joined_at"`
	IsAdmin           bool      `json:"is_admin"`
}

// HasCompleted reports whether the user already completed the given mission
func (u *User) HasCompleted(missionID string) bool {
	for _, id := range u.CompletedMissions {
		if id == missionID {
			return true
		}
	}
	return false
}
