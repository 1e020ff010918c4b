package connection

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Connector performs the platform side of connect and extract.
type Connector interface {
	Connect(ctx context.Context, platformName, accountAddress string) error
	Extract(ctx context.Context, platformName string) error
}

// SimulatedConnector succeeds after fixed delays on its clock.
type SimulatedConnector struct {
	clock        clockwork.Clock
	connectDelay time.Duration
	extractDelay time.Duration
}

var _ Connector = (*SimulatedConnector)(nil)

func NewSimulatedConnector(clock clockwork.Clock, connectDelay, extractDelay time.Duration) *SimulatedConnector {
	return &SimulatedConnector{
		clock:        clock,
		connectDelay: connectDelay,
		extractDelay: extractDelay,
	}
}

func (c *SimulatedConnector) Connect(ctx context.Context, platformName, accountAddress string) error {
	return c.wait(ctx, c.connectDelay)
}

func (c *SimulatedConnector) Extract(ctx context.Context, platformName string) error {
	return c.wait(ctx, c.extractDelay)
}

func (c *SimulatedConnector) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-c.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
