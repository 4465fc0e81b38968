package models

import "time"

// ReferralScan records a visit to a referral QR link. Scans never mutate
// referral counts directly; crediting happens when the referred user
// completes their first mission.
type ReferralScan struct {
	ID         string    `json:"id"`
	ReferrerID string    `json:"referrer_id"`
	MissionID  string    `json:"mission_id,omitempty"` // empty for a general referral link
	ScannedAt  time.Time `json:"scanned_at"`
}

// ReferralCredit records a bonus granted to a referrer when a user they
// referred completed their first mission.
type ReferralCredit struct {
	ReferrerID string    `json:"referrer_id"`
	ReferredID string    `json:"referred_id"`
	Points     int       `json:"points"`
	AwardedAt  time.Time `json:"awarded_at"`
}
