package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"minniemissions/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ReferralBonusPoints is credited to a referrer when a user they referred
// completes their first mission.
const ReferralBonusPoints = 25

// FeaturedMissionCount bounds the featured subset on the home page
const FeaturedMissionCount = 3

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMissionNotFound  = errors.New("mission not found")
	ErrMeetupNotFound   = errors.New("meetup not found")
	ErrFandomNotFound   = errors.New("fandom not found")
	ErrMissionNotActive = errors.New("mission is not active")
	ErrAlreadyCompleted = errors.New("mission already completed")
)

// Store owns the in-memory mission catalog, user roster, fandom catalog and
// meetup list. All reads hand out copies; all mutations happen under one
// lock so a handler invocation observes and applies state atomically.
type Store struct {
	mu       sync.RWMutex
	missions []*models.Mission
	users    []*models.User
	fandoms  []models.Fandom
	meetups  []*models.Meetup
	scans    []models.ReferralScan
	credits  []models.ReferralCredit
}

// NewStore returns a store seeded with the launch catalogs.
func NewStore() *Store {
	s := &Store{}
	s.seed()
	return s
}

// --- Mission queries ---------------------------------------------------------

// ActiveMissions returns missions with status active, preserving catalog order.
func (s *Store) ActiveMissions() []models.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Mission
	for _, m := range s.missions {
		if m.Status == models.MissionStatusActive {
			out = append(out, cloneMission(m))
		}
	}
	return out
}

// FeaturedMissions returns the first n active missions (catalog order, not a
// ranking).
func (s *Store) FeaturedMissions(n int) []models.Mission {
	active := s.ActiveMissions()
	if n < 0 {
		n = 0
	}
	if len(active) > n {
		active = active[:n]
	}
	return active
}

// MissionByID looks up a mission by id.
func (s *Store) MissionByID(id string) (models.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findMission(id)
	if m == nil {
		return models.Mission{}, ErrMissionNotFound
	}
	return cloneMission(m), nil
}

// UserMissions returns the missions relevant to a user: everything they
// completed plus everything still active. Unknown users get an empty list.
func (s *Store) UserMissions(userID string) []models.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(userID)
	if u == nil {
		return nil
	}

	var out []models.Mission
	for _, m := range s.missions {
		if u.HasCompleted(m.ID) || m.Status == models.MissionStatusActive {
			out = append(out, cloneMission(m))
		}
	}
	return out
}

// ExpireMissions flips active missions whose expiry has passed to expired.
// Returns how many missions were expired.
func (s *Store) ExpireMissions(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for _, m := range s.missions {
		if m.Status == models.MissionStatusActive && m.ExpiresAt != nil && m.ExpiresAt.Before(now) {
			m.Status = models.MissionStatusExpired
			expired++
		}
	}
	return expired
}

// --- Mission completion ------------------------------------------------------

// CompleteMission credits a mission's reward to a user. A non-nil return is
// one of the sentinels above and means no mutation happened — re-invocation
// after success returns ErrAlreadyCompleted, never a double credit. A user's
// first successful completion also credits their referrer, when one is
// recorded.
func (s *Store) CompleteMission(userID, missionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return ErrUserNotFound
	}
	m := s.findMission(missionID)
	if m == nil {
		return ErrMissionNotFound
	}
	if m.Status != models.MissionStatusActive {
		return ErrMissionNotActive
	}
	if u.HasCompleted(missionID) || m.IsCompletedBy(userID) {
		return ErrAlreadyCompleted
	}

	firstCompletion := len(u.CompletedMissions) == 0

	u.CompletedMissions = append(u.CompletedMissions, missionID)
	u.VibePoints += m.Reward
	m.CompletedBy = append(m.CompletedBy, userID)

	if firstCompletion && u.ReferredBy != "" {
		s.creditReferrerLocked(u)
	}

	return nil
}

func (s *Store) creditReferrerLocked(referred *models.User) {
	referrer := s.findUser(referred.ReferredBy)
	if referrer == nil {
		return
	}
	referrer.ReferralCount++
	referrer.VibePoints += ReferralBonusPoints
	s.credits = append(s.credits, models.ReferralCredit{
		ReferrerID: referrer.ID,
		ReferredID: referred.ID,
		Points:     ReferralBonusPoints,
		AwardedAt:  time.Now().UTC(),
	})
}

// --- User queries ------------------------------------------------------------

// Leaderboard returns all non-admin users ordered by descending Vibe Points.
// Ties keep the roster order.
func (s *Store) Leaderboard() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.users {
		if !u.IsAdmin {
			out = append(out, cloneUser(u))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VibePoints > out[j].VibePoints
	})
	return out
}

// UserByID looks up a user by id.
func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(id)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(u), nil
}

// UserByAddress looks up a user by wallet address.
func (s *Store) UserByAddress(address string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Address == address {
			return cloneUser(u), nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UserByReferralCode looks up a user by their unique referral code.
func (s *Store) UserByReferralCode(code string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code = normalizeReferralCode(code)
	for _, u := range s.users {
		if u.ReferralCode == code {
			return cloneUser(u), nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// RegisterUser creates a user record on first wallet connection. When
// referralCode names an existing user, the new user is attributed to that
// referrer; crediting happens later, on the first mission completion.
func (s *Store) RegisterUser(name, address, referralCode string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Address == address {
			return cloneUser(u), nil
		}
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Address:      address,
		Name:         name,
		JoinedAt:     now,
		ReferralCode: s.uniqueReferralCodeLocked(name, now),
	}
	if referralCode != "" {
		code := normalizeReferralCode(referralCode)
		for _, r := range s.users {
			if r.ReferralCode == code {
				u.ReferredBy = r.ID
				break
			}
		}
	}

	s.users = append(s.users, u)
	return cloneUser(u), nil
}

// RenameUser updates a user's display name by wallet address. Used by the
// profile sync worker to keep the leaderboard in step with profile edits.
func (s *Store) RenameUser(address, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Address == address {
			if u.Name != name {
				u.Name = name
			}
			return true
		}
	}
	return false
}

func (s *Store) uniqueReferralCodeLocked(name string, joined time.Time) string {
	base := strings.ToUpper(slug.Make(name))
	if base == "" {
		base = "FAN"
	}
	code := fmt.Sprintf("%s%d", base, joined.Year())
	for i := 2; s.referralCodeTakenLocked(code); i++ {
		code = fmt.Sprintf("%s%d-%d", base, joined.Year(), i)
	}
	return code
}

func (s *Store) referralCodeTakenLocked(code string) bool {
	for _, u := range s.users {
		if u.ReferralCode == code {
			return true
		}
	}
	return false
}

func normalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// --- Fandoms -----------------------------------------------------------------

// Fandoms returns the static fandom catalog.
func (s *Store) Fandoms() []models.Fandom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Fandom, len(s.fandoms))
	copy(out, s.fandoms)
	return out
}

// FandomByName looks up a fandom by name (case-insensitive).
func (s *Store) FandomByName(name string) (models.Fandom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.fandoms {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return models.Fandom{}, ErrFandomNotFound
}

// --- Meetups -----------------------------------------------------------------

// Meetups returns all meetups, newest first.
func (s *Store) Meetups() []models.Meetup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Meetup, 0, len(s.meetups))
	for _, m := range s.meetups {
		out = append(out, *m)
	}
	return out
}

// MeetupByID looks up a meetup by id.
func (s *Store) MeetupByID(id string) (models.Meetup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findMeetup(id)
	if m == nil {
		return models.Meetup{}, ErrMeetupNotFound
	}
	return *m, nil
}

// AddMeetup prepends a new meetup to the list. The caller is responsible for
// verification gating and the organizer's initial stake.
func (s *Store) AddMeetup(m models.Meetup) models.Meetup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Slug == "" {
		m.Slug = slug.Make(m.Title)
	}
	if m.Status == "" {
		m.Status = models.MeetupStatusUpcoming
	}

	stored := m
	s.meetups = append([]*models.Meetup{&stored}, s.meetups...)
	return m
}

// Stake adds amount to a meetup's staked total and counts one participant.
// Repeated stakes by the same user each count a participant; there is no
// per-user dedup. Balance checks belong to the wallet layer.
func (s *Store) Stake(meetupID string, amount int) (models.Meetup, error) {
	if amount <= 0 {
		return models.Meetup{}, fmt.Errorf("stake amount must be positive, got %d", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMeetup(meetupID)
	if m == nil {
		return models.Meetup{}, ErrMeetupNotFound
	}

	m.CurrentStaked += amount
	m.Participants++
	return *m, nil
}

// SetMeetupStatus transitions a meetup's lifecycle state.
func (s *Store) SetMeetupStatus(meetupID string, status models.MeetupStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMeetup(meetupID)
	if m == nil {
		return ErrMeetupNotFound
	}
	m.Status = status
	return nil
}

// --- Referrals ---------------------------------------------------------------

// RecordReferralScan validates the referrer and records the scan event.
// Counts are never mutated here; see CompleteMission.
func (s *Store) RecordReferralScan(referrerID, missionID string) (models.ReferralScan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(referrerID) == nil {
		return models.ReferralScan{}, ErrUserNotFound
	}
	if missionID != "" && s.findMission(missionID) == nil {
		return models.ReferralScan{}, ErrMissionNotFound
	}

	scan := models.ReferralScan{
		ID:         uuid.NewString(),
		ReferrerID: referrerID,
		MissionID:  missionID,
		ScannedAt:  time.Now().UTC(),
	}
	s.scans = append(s.scans, scan)
	return scan, nil
}

// ReferralScans returns recorded scans for a referrer, newest last.
func (s *Store) ReferralScans(referrerID string) []models.ReferralScan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ReferralScan
	for _, scan := range s.scans {
		if scan.ReferrerID == referrerID {
			out = append(out, scan)
		}
	}
	return out
}

// ReferralCredits returns bonuses awarded to a referrer.
func (s *Store) ReferralCredits(referrerID string) []models.ReferralCredit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ReferralCredit
	for _, c := range s.credits {
		if c.ReferrerID == referrerID {
			out = append(out, c)
		}
	}
	return out
}

// --- internals ---------------------------------------------------------------

func (s *Store) findUser(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) findMission(id string) *models.Mission {
	for _, m := range s.missions {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Store) findMeetup(id string) *models.Meetup {
	for _, m := range s.meetups {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func cloneMission(m *models.Mission) models.Mission {
	out := *m
	out.CompletedBy = append([]string(nil), m.CompletedBy...)
	if m.ExpiresAt != nil {
		t := *m.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}

func cloneUser(u *models.User) models.User {
	out := *u
	out.CompletedMissions = append([]string(nil), u.CompletedMissions...)
	return out
}
