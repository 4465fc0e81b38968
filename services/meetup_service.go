// services/meetup_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"minniemissions/models"
	"minniemissions/store"

	"github.com/gosimple/slug"
)

// InitialOrganizerStake is contributed by the organizer when a meetup is
// created.
const InitialOrganizerStake = 100

// ErrValidation wraps field-level failures so handlers can map them to 400.
var ErrValidation = errors.New("validation failed")

// CreateMeetupInput carries the user-supplied meetup fields.
type CreateMeetupInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Fandom      string `json:"fandom"`
	StakingGoal int    `json:"staking_goal"`
}

// MeetupService runs the meetup staking workflow: verified users create
// meetups, connected users stake Vibe Points toward a goal. Stakes debit
// the staker's session balance, same as conversion.
type MeetupService struct {
	store  *store.Store
	wallet *WalletService
	ledger Ledger
}

func NewMeetupService(st *store.Store, wallet *WalletService, ledger Ledger) *MeetupService {
	return &MeetupService{store: st, wallet: wallet, ledger: ledger}
}

func (in CreateMeetupInput) validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case in.Location == "":
		return fmt.Errorf("%w: location is required", ErrValidation)
	case in.Date == "":
		return fmt.Errorf("%w: date is required", ErrValidation)
	case in.Fandom == "":
		return fmt.Errorf("%w: fandom is required", ErrValidation)
	case in.StakingGoal <= 0:
		return fmt.Errorf("%w: staking goal must be positive", ErrValidation)
	}
	// The status sweep compares dates lexically, so only ISO dates work.
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}
	return nil
}

// CreateMeetup creates a meetup for a connected, identity-verified session.
// Unverified sessions are rejected with ErrNotVerified and must run
// SimulateVerification first. The organizer contributes the fixed initial
// stake and counts as the first participant.
func (s *MeetupService) CreateMeetup(ctx context.Context, sessionID string, in CreateMeetupInput) (models.Meetup, error) {
	sess := s.wallet.Session(sessionID)
	if !sess.Connected {
		return models.Meetup{}, ErrNotConnected
	}
	if !sess.Verified {
		return models.Meetup{}, ErrNotVerified
	}
	if err := in.validate(); err != nil {
		return models.Meetup{}, err
	}
	if sess.VibePoints < InitialOrganizerStake {
		return models.Meetup{}, ErrInsufficientBalance
	}

	organizer := sess.Account
	if user, err := s.store.UserByID(sess.UserID); err == nil {
		organizer = user.Name
	}

	meetup := models.Meetup{
		Slug:          slug.Make(in.Title),
		Title:         in.Title,
		Description:   in.Description,
		Location:      in.Location,
		Date:          in.Date,
		Fandom:        in.Fandom,
		Organizer:     organizer,
		StakingGoal:   in.StakingGoal,
		CurrentStaked: InitialOrganizerStake,
		Participants:  1,
		Status:        models.MeetupStatusUpcoming,
	}

	if err := s.ledger.ConfirmStake(ctx, sess.Account, meetup.Slug, InitialOrganizerStake); err != nil {
		return models.Meetup{}, fmt.Errorf("initial stake confirmation failed: %w", err)
	}
	if err := s.wallet.DebitStake(sessionID, InitialOrganizerStake); err != nil {
		return models.Meetup{}, err
	}

	created := s.store.AddMeetup(meetup)
	log.Printf("🎉 [MEETUP] %q created by %s (goal %d VP)", created.Title, organizer, created.StakingGoal)
	return created, nil
}

// Stake commits amount from the session balance toward a meetup's goal.
// Validation happens before the simulated chain call; the meetup and the
// balance mutate only after it confirms. Repeat stakes by the same user
// each count as a participant — there is no per-user dedup.
func (s *MeetupService) Stake(ctx context.Context, sessionID, meetupID string, amount int) (models.Meetup, error) {
	sess := s.wallet.Session(sessionID)
	if !sess.Connected {
		return models.Meetup{}, ErrNotConnected
	}
	if amount <= 0 {
		return models.Meetup{}, ErrInvalidAmount
	}
	if amount > sess.VibePoints {
		return models.Meetup{}, ErrInsufficientBalance
	}
	if _, err := s.store.MeetupByID(meetupID); err != nil {
		return models.Meetup{}, err
	}

	if err := s.ledger.ConfirmStake(ctx, sess.Account, meetupID, amount); err != nil {
		return models.Meetup{}, fmt.Errorf("stake confirmation failed: %w", err)
	}
	if err := s.wallet.DebitStake(sessionID, amount); err != nil {
		return models.Meetup{}, err
	}

	updated, err := s.store.Stake(meetupID, amount)
	if err != nil {
		return models.Meetup{}, err
	}
	log.Printf("🤝 [MEETUP] %d VP staked on %q (%d/%d)", amount, updated.Title, updated.CurrentStaked, updated.StakingGoal)
	return updated, nil
}
