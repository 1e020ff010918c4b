package connection

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedConnector_WaitsForDelay(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	connector := NewSimulatedConnector(clock, 2*time.Second, 3*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- connector.Connect(ctx, "Instagram", "a1") }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(1999 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("connect finished before its delay")
	default:
	}

	clock.Advance(time.Millisecond)
	assert.NoError(t, waitResult(t, done))
}

func TestSimulatedConnector_Extract(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	connector := NewSimulatedConnector(clock, 2*time.Second, 3*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- connector.Extract(ctx, "Instagram") }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(3 * time.Second)
	assert.NoError(t, waitResult(t, done))
}

func TestSimulatedConnector_Cancelled(t *testing.T) {
	t.Parallel()
	connector := NewSimulatedConnector(clockwork.NewFakeClock(), time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, connector.Connect(ctx, "Instagram", "a1"), context.Canceled)
}
