// services/wallet_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"minniemissions/store"
)

// Wallet operation failures surfaced as validation errors at the handler
// boundary (no mutation performed when any of these is returned).
var (
	ErrNotConnected        = errors.New("wallet not connected")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient vibe points")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrNotVerified         = errors.New("identity verification required")
)

// Session is the per-user wallet session. The balance lives here, not in a
// durable store — a lost session loses accumulated state (accepted mock
// limitation).
type Session struct {
	Connected  bool   `json:"connected"`
	Account    string `json:"account,omitempty"`
	VibePoints int    `json:"vibe_points"`
	Verified   bool   `json:"verified"`
	UserID     string `json:"user_id,omitempty"`
}

// WalletService owns wallet sessions and every operation that touches a
// session balance: connect/disconnect, token conversion, stake debits and
// identity verification. All chain interaction goes through the Ledger
// capability so the simulated client can be swapped for a real one.
type WalletService struct {
	mu       sync.Mutex
	ledger   Ledger
	store    *store.Store
	sessions map[string]*Session
}

func NewWalletService(ledger Ledger, st *store.Store) *WalletService {
	return &WalletService{
		ledger:   ledger,
		store:    st,
		sessions: make(map[string]*Session),
	}
}

// ConnectErrorKind categorizes connection failures for user display.
type ConnectErrorKind string

const (
	ConnectErrExtensionMissing ConnectErrorKind = "extension_missing"
	ConnectErrNoAccounts       ConnectErrorKind = "no_accounts"
	ConnectErrOther            ConnectErrorKind = "other"
)

// CategorizeConnectError maps a ledger connect failure onto the taxonomy the
// UI shows users.
func CategorizeConnectError(err error) ConnectErrorKind {
	switch {
	case errors.Is(err, ErrExtensionMissing):
		return ConnectErrExtensionMissing
	case errors.Is(err, ErrNoAccounts):
		return ConnectErrNoAccounts
	default:
		return ConnectErrOther
	}
}

// Connect acquires a wallet account from the ledger and binds it to the
// session. A user record is registered on first connection; referralCode,
// when present and valid, attributes the signup to an existing user.
// Connecting an already-connected session is a no-op returning the current
// state.
func (s *WalletService) Connect(ctx context.Context, sessionID, name, referralCode string) (Session, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[sessionID]; ok && sess.Connected {
		out := *sess
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	acct, err := s.ledger.Connect(ctx)
	if err != nil {
		log.Printf("❌ [WALLET] connect failed for session %s: %v", sessionID, err)
		return Session{}, err
	}

	if name == "" {
		name = shortAddress(acct.Address)
	}
	user, err := s.store.RegisterUser(name, acct.Address, referralCode)
	if err != nil {
		return Session{}, fmt.Errorf("failed to register user for %s: %w", acct.Address, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		Connected:  true,
		Account:    acct.Address,
		VibePoints: acct.VibePoints,
		UserID:     user.ID,
	}
	s.sessions[sessionID] = sess
	log.Printf("✅ [WALLET] session %s connected as %s (%d VP)", sessionID, shortAddress(acct.Address), acct.VibePoints)
	return *sess, nil
}

// Disconnect unconditionally clears the session.
func (s *WalletService) Disconnect(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	log.Printf("👋 [WALLET] session %s disconnected", sessionID)
}

// Session returns a copy of the session state; a never-connected session
// reads as disconnected.
func (s *WalletService) Session(sessionID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return *sess
	}
	return Session{}
}

// ConvertToToken converts Vibe Points into DOT or KSM at the fixed rate.
// The balance is debited only after the ledger reports success, so a failed
// submission leaves state unchanged.
func (s *WalletService) ConvertToToken(ctx context.Context, sessionID string, amount int, currency Currency) (float64, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.Connected {
		s.mu.Unlock()
		return 0, ErrNotConnected
	}
	if amount <= 0 {
		s.mu.Unlock()
		return 0, ErrInvalidAmount
	}
	if amount > sess.VibePoints {
		s.mu.Unlock()
		return 0, ErrInsufficientBalance
	}
	rate, known := ConversionRates[currency]
	if !known {
		s.mu.Unlock()
		return 0, ErrUnknownCurrency
	}
	address := sess.Account
	s.mu.Unlock()

	tokens, err := s.ledger.SubmitConversion(ctx, address, amount, currency)
	if err != nil {
		return 0, fmt.Errorf("conversion submission failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok = s.sessions[sessionID]
	if !ok || !sess.Connected {
		return 0, ErrNotConnected
	}
	// The balance may have changed while the ledger call was in flight.
	if amount > sess.VibePoints {
		return 0, ErrInsufficientBalance
	}
	sess.VibePoints -= amount
	log.Printf("💱 [WALLET] session %s converted %d VP → %.4f %s (rate %.2f)", sessionID, amount, tokens, currency, rate)
	return tokens, nil
}

// DebitStake validates and debits a stake amount from the session balance.
// Called by the meetup workflow after the ledger confirms the stake.
func (s *WalletService) DebitStake(sessionID string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.Connected {
		return ErrNotConnected
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > sess.VibePoints {
		return ErrInsufficientBalance
	}
	sess.VibePoints -= amount
	return nil
}

// SimulateVerification runs the asynchronous identity check and, when it
// passes, marks the session verified for its remaining lifetime. No KYC
// record is persisted.
func (s *WalletService) SimulateVerification(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.Connected {
		s.mu.Unlock()
		return false, ErrNotConnected
	}
	if sess.Verified {
		s.mu.Unlock()
		return true, nil
	}
	address := sess.Account
	s.mu.Unlock()

	verified, err := s.ledger.VerifyIdentity(ctx, address)
	if err != nil {
		return false, fmt.Errorf("identity verification failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok && verified {
		sess.Verified = true
		log.Printf("🪪 [WALLET] session %s passed identity verification", sessionID)
	}
	return verified, nil
}

// IsVerified reports whether the session passed identity verification.
func (s *WalletService) IsVerified(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	return ok && sess.Verified
}

func shortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}
