package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedLedgerConcurrentConnect(t *testing.T) {
	l := &SimulatedLedger{Delay: time.Millisecond}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acct, err := l.Connect(context.Background())
			assert.NoError(t, err)
			assert.NotEmpty(t, acct.Address)
			assert.GreaterOrEqual(t, acct.VibePoints, 0)
			assert.Less(t, acct.VibePoints, 1000)
		}()
	}
	wg.Wait()
}

func TestSimulatedLedgerHonorsContext(t *testing.T) {
	l := NewSimulatedLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Connect(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = l.SubmitConversion(ctx, "addr", 10, CurrencyDOT)
	assert.ErrorIs(t, err, context.Canceled)
}
