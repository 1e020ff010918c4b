package connection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/armii/platform-admin/pkg/config"
	"github.com/armii/platform-admin/pkg/database"
)

const waitTimeout = 2 * time.Second

func newTestStorage(t *testing.T) Storage {
	t.Helper()
	db, err := database.Open(config.Database{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepo(db)
}

type pendingConnect struct {
	platformName   string
	accountAddress string
	release        chan error
}

// fakeConnector hands every Connect call to the test, which decides when and
// how it completes.
type fakeConnector struct {
	calls chan *pendingConnect

	mutex      sync.Mutex
	extracts   []string
	extractErr error
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{calls: make(chan *pendingConnect, 16)}
}

func (f *fakeConnector) Connect(ctx context.Context, platformName, accountAddress string) error {
	call := &pendingConnect{platformName: platformName, accountAddress: accountAddress, release: make(chan error, 1)}
	f.calls <- call
	select {
	case err := <-call.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeConnector) Extract(ctx context.Context, platformName string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.extracts = append(f.extracts, platformName)
	return f.extractErr
}

func (f *fakeConnector) extractCalls() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.extracts...)
}

func (f *fakeConnector) next(t *testing.T) *pendingConnect {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(waitTimeout):
		t.Fatal("connector was not called")
		return nil
	}
}

func waitResult(t *testing.T, result <-chan error) error {
	t.Helper()
	select {
	case err := <-result:
		return err
	case <-time.After(waitTimeout):
		t.Fatal("connect did not finish")
		return nil
	}
}

// gatedStorage holds the first Set of gateKey until release is closed.
type gatedStorage struct {
	Storage

	gateKey string
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedStorage(inner Storage, gateKey string) *gatedStorage {
	return &gatedStorage{
		Storage: inner,
		gateKey: gateKey,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedStorage) Set(ctx context.Context, key string, value any) error {
	if key == g.gateKey {
		gated := false
		g.once.Do(func() { gated = true })
		if gated {
			close(g.entered)
			<-g.release
		}
	}
	return g.Storage.Set(ctx, key, value)
}

// failingStorage fails every Set of failKey.
type failingStorage struct {
	Storage
	failKey string
}

func (f *failingStorage) Set(ctx context.Context, key string, value any) error {
	if key == f.failKey {
		return errors.New("storage unavailable")
	}
	return f.Storage.Set(ctx, key, value)
}
