package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"minniemissions/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLedger answers instantly with fixed values so tests stay fast and
// deterministic.
type stubLedger struct {
	account       LedgerAccount
	connectErr    error
	conversionErr error
	stakeErr      error
	verified      bool
	verifyErr     error
}

func (l *stubLedger) Connect(ctx context.Context) (LedgerAccount, error) {
	if l.connectErr != nil {
		return LedgerAccount{}, l.connectErr
	}
	return l.account, nil
}

func (l *stubLedger) SubmitConversion(ctx context.Context, address string, amount int, currency Currency) (float64, error) {
	if l.conversionErr != nil {
		return 0, l.conversionErr
	}
	return float64(amount) * ConversionRates[currency], nil
}

func (l *stubLedger) ConfirmStake(ctx context.Context, address, meetupID string, amount int) error {
	return l.stakeErr
}

func (l *stubLedger) VerifyIdentity(ctx context.Context, address string) (bool, error) {
	if l.verifyErr != nil {
		return false, l.verifyErr
	}
	return l.verified, nil
}

func aliceLedger() *stubLedger {
	return &stubLedger{
		account: LedgerAccount{
			Address:    "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
			VibePoints: 500,
		},
		verified: true,
	}
}

func TestConnectBindsSession(t *testing.T) {
	svc := NewWalletService(aliceLedger(), store.NewStore())

	sess, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)
	assert.True(t, sess.Connected)
	assert.Equal(t, 500, sess.VibePoints)
	assert.Equal(t, "u1", sess.UserID) // address matches Alice's seed record

	// Reconnecting an open session is a no-op.
	again, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, sess, again)
}

func TestConnectErrorCategories(t *testing.T) {
	cases := []struct {
		err  error
		kind ConnectErrorKind
	}{
		{ErrExtensionMissing, ConnectErrExtensionMissing},
		{ErrNoAccounts, ConnectErrNoAccounts},
		{errors.New("boom"), ConnectErrOther},
	}
	for _, tc := range cases {
		svc := NewWalletService(&stubLedger{connectErr: tc.err}, store.NewStore())
		_, err := svc.Connect(context.Background(), "sess-1", "", "")
		require.Error(t, err)
		assert.Equal(t, tc.kind, CategorizeConnectError(err))
		assert.False(t, svc.Session("sess-1").Connected)
	}
}

func TestDisconnectClearsSession(t *testing.T) {
	svc := NewWalletService(aliceLedger(), store.NewStore())
	_, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)

	svc.Disconnect("sess-1")
	sess := svc.Session("sess-1")
	assert.False(t, sess.Connected)
	assert.Empty(t, sess.Account)
	assert.Zero(t, sess.VibePoints)
}

func TestConvertToTokenValidation(t *testing.T) {
	svc := NewWalletService(aliceLedger(), store.NewStore())

	// Not connected yet.
	_, err := svc.ConvertToToken(context.Background(), "sess-1", 10, CurrencyDOT)
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)

	_, err = svc.ConvertToToken(context.Background(), "sess-1", 0, CurrencyDOT)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.ConvertToToken(context.Background(), "sess-1", -5, CurrencyDOT)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.ConvertToToken(context.Background(), "sess-1", 501, CurrencyDOT)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	_, err = svc.ConvertToToken(context.Background(), "sess-1", 10, Currency("BTC"))
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	// None of the rejected calls touched the balance.
	assert.Equal(t, 500, svc.Session("sess-1").VibePoints)
}

func TestConvertToTokenArithmetic(t *testing.T) {
	svc := NewWalletService(aliceLedger(), store.NewStore())
	_, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)

	tokens, err := svc.ConvertToToken(context.Background(), "sess-1", 100, CurrencyDOT)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tokens, 1e-9) // 100 VP × 0.01
	assert.Equal(t, 400, svc.Session("sess-1").VibePoints)

	tokens, err = svc.ConvertToToken(context.Background(), "sess-1", 40, CurrencyKSM)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, tokens, 1e-9) // 40 VP × 0.1
	assert.Equal(t, 360, svc.Session("sess-1").VibePoints)
}

// barrierLedger holds every conversion until two calls are in flight, so
// both pass pre-validation against the same starting balance.
type barrierLedger struct {
	stubLedger
	inFlight sync.WaitGroup
}

func (l *barrierLedger) SubmitConversion(ctx context.Context, address string, amount int, currency Currency) (float64, error) {
	l.inFlight.Done()
	l.inFlight.Wait()
	return float64(amount) * ConversionRates[currency], nil
}

func TestConvertToTokenOverlappingNeverOverdraws(t *testing.T) {
	ledger := &barrierLedger{stubLedger: *aliceLedger()}
	ledger.inFlight.Add(2)
	svc := NewWalletService(ledger, store.NewStore())
	_, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.ConvertToToken(context.Background(), "sess-1", 400, CurrencyDOT)
			errs <- err
		}()
	}

	failed := 0
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.ErrorIs(t, err, ErrInsufficientBalance)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 100, svc.Session("sess-1").VibePoints)
}

func TestConvertToTokenLedgerFailureLeavesBalance(t *testing.T) {
	ledger := aliceLedger()
	ledger.conversionErr = errors.New("chain unavailable")
	svc := NewWalletService(ledger, store.NewStore())
	_, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)

	_, err = svc.ConvertToToken(context.Background(), "sess-1", 100, CurrencyDOT)
	require.Error(t, err)
	assert.Equal(t, 500, svc.Session("sess-1").VibePoints)
}

func TestSimulateVerification(t *testing.T) {
	svc := NewWalletService(aliceLedger(), store.NewStore())

	_, err := svc.SimulateVerification(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)
	assert.False(t, svc.IsVerified("sess-1"))

	verified, err := svc.SimulateVerification(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, verified)
	assert.True(t, svc.IsVerified("sess-1"))

	// Verification lasts only for the session lifetime.
	svc.Disconnect("sess-1")
	assert.False(t, svc.IsVerified("sess-1"))
}

func TestDebitStake(t *testing.T) {
	svc := NewWalletService(aliceLedger(), store.NewStore())
	_, err := svc.Connect(context.Background(), "sess-1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DebitStake("sess-1", 200))
	assert.Equal(t, 300, svc.Session("sess-1").VibePoints)

	assert.ErrorIs(t, svc.DebitStake("sess-1", 301), ErrInsufficientBalance)
	assert.ErrorIs(t, svc.DebitStake("sess-1", 0), ErrInvalidAmount)
	assert.ErrorIs(t, svc.DebitStake("other", 10), ErrNotConnected)
}
