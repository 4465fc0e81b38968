// services/ledger.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Connection failures the wallet layer must distinguish for user display.
var (
	ErrExtensionMissing = errors.New("no Polkadot extension found")
	ErrNoAccounts       = errors.New("no accounts found")
)

// Currency is a token a user can convert Vibe Points into.
type Currency string

const (
	CurrencyDOT Currency = "DOT"
	CurrencyKSM Currency = "KSM"
)

// ConversionRates are fixed token-per-VP exchange rates.
var ConversionRates = map[Currency]float64{
	CurrencyDOT: 0.01,
	CurrencyKSM: 0.1,
}

// LedgerAccount is what a successful wallet connection yields: an on-chain
// address and the Vibe Point balance held against it.
type LedgerAccount struct {
	Address    string
	VibePoints int
}

// Ledger is the chain-side capability the wallet and meetup workflows talk
// to. The simulated implementation below stands in for a real Polkadot
// client; both honor the same contract — an operation either fully succeeds
// or fails without partial effect, so callers mutate local state only after
// a successful return.
type Ledger interface {
	Connect(ctx context.Context) (LedgerAccount, error)
	SubmitConversion(ctx context.Context, address string, amount int, currency Currency) (float64, error)
	ConfirmStake(ctx context.Context, address, meetupID string, amount int) error
	VerifyIdentity(ctx context.Context, address string) (bool, error)
}

// SimulatedLedger fakes chain interaction with fixed delays and random
// balances. It always succeeds once input validation passes, and is safe
// for concurrent use.
type SimulatedLedger struct {
	Delay time.Duration
}

func NewSimulatedLedger() *SimulatedLedger {
	return &SimulatedLedger{Delay: 300 * time.Millisecond}
}

func (l *SimulatedLedger) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Connect returns the demo account with a random starting balance.
func (l *SimulatedLedger) Connect(ctx context.Context) (LedgerAccount, error) {
	if err := l.wait(ctx, l.Delay); err != nil {
		return LedgerAccount{}, err
	}
	return LedgerAccount{
		Address:    "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
		VibePoints: rand.Intn(1000),
	}, nil
}

func (l *SimulatedLedger) SubmitConversion(ctx context.Context, address string, amount int, currency Currency) (float64, error) {
	rate, ok := ConversionRates[currency]
	if !ok {
		return 0, fmt.Errorf("unsupported currency %q", currency)
	}
	if err := l.wait(ctx, l.Delay); err != nil {
		return 0, err
	}
	return float64(amount) * rate, nil
}

func (l *SimulatedLedger) ConfirmStake(ctx context.Context, address, meetupID string, amount int) error {
	return l.wait(ctx, l.Delay)
}

// VerifyIdentity simulates the KYC provider round-trip. The check is slower
// than other calls and always passes in the mock.
func (l *SimulatedLedger) VerifyIdentity(ctx context.Context, address string) (bool, error) {
	if err := l.wait(ctx, 5*l.Delay); err != nil {
		return false, err
	}
	return true, nil
}
