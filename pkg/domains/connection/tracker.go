package connection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/armii/platform-admin/pkg/dtos"
	"github.com/armii/platform-admin/pkg/entities"
	"github.com/armii/platform-admin/pkg/errs"
	"github.com/jonboulle/clockwork"
)

// Tracker drives the per-platform select/connect/extract flow and keeps its
// outcome in Storage so it survives restarts. Platforms are independent.
type Tracker interface {
	Select(ctx context.Context, platformName, accountAddress string) (<-chan error, error)
	Connect(ctx context.Context, platformName, accountAddress string) <-chan error
	Extract(ctx context.Context, platformName string) error
	Restore(ctx context.Context) (map[string]<-chan error, error)

	IsRegistered(ctx context.Context, platformName string) (bool, error)
	IsConnected(ctx context.Context, platformName string) (bool, error)
	IsConnecting(platformName string) bool
	GetSelectedAccount(ctx context.Context, platformName string) (string, error)
	GetConnectedAccount(ctx context.Context, platformName string) (string, error)
	GetAllConnectedAccounts(ctx context.Context) (map[string]string, error)
	Status(ctx context.Context, platformName string) (dtos.ConnectionStatusDTO, error)

	Close()
}

type tracker struct {
	storage   Storage
	connector Connector
	clock     clockwork.Clock

	// guards connecting and generation
	mutex      sync.Mutex
	connecting map[string]uint64
	generation map[string]uint64

	// orders generations with the persisted selection; held by Select for
	// the whole write and by Connect while taking a generation
	selection sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTracker(storage Storage, connector Connector, clock clockwork.Clock) Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	return &tracker{
		storage:    storage,
		connector:  connector,
		clock:      clock,
		connecting: make(map[string]uint64),
		generation: make(map[string]uint64),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Select records the chosen address for the platform, marks it registered
// and starts a connect. The returned channel yields the connect outcome.
// Selects are serialized, so the last select to return is the
// one whose address ends up selected, registered and connected.
func (t *tracker) Select(ctx context.Context, platformName, accountAddress string) (<-chan error, error) {
	if err := validateSelection(platformName, accountAddress); err != nil {
		return nil, err
	}

	t.selection.Lock()
	defer t.selection.Unlock()

	gen, err := t.begin(platformName)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", platformName, err)
	}
	if err := t.persistSelection(ctx, platformName, accountAddress, gen); err != nil {
		t.abandon(platformName, gen)
		return nil, err
	}

	slog.InfoContext(ctx, "connection: account selected", "platform", platformName, "account", accountAddress)
	return t.run(ctx, platformName, accountAddress, gen), nil
}

func validateSelection(platformName, accountAddress string) error {
	var verr errs.ValidationError
	if strings.TrimSpace(platformName) == "" {
		verr.Add("platform_name", "must not be blank")
	}
	if strings.TrimSpace(accountAddress) == "" {
		verr.Add("account_address", "must not be blank")
	}
	return verr.Err()
}

// persistSelection writes the selection map entry and the registration record.
// The caller holds t.selection.
func (t *tracker) persistSelection(ctx context.Context, platformName, accountAddress string, gen uint64) error {
	selected, err := t.selected(ctx)
	if err != nil {
		return err
	}
	if !t.current(platformName, gen) {
		return fmt.Errorf("select %s: %w", platformName, errs.ErrSuperseded)
	}
	selected[platformName] = accountAddress
	if err := t.storage.Set(ctx, SelectedAccountsKey, selected); err != nil {
		return err
	}

	registration := entities.PlatformRegistration{
		PlatformName:   platformName,
		AccountAddress: accountAddress,
		RegisteredAt:   t.clock.Now().UTC(),
		IsRegistered:   true,
	}
	if !t.current(platformName, gen) {
		return fmt.Errorf("select %s: %w", platformName, errs.ErrSuperseded)
	}
	return t.storage.Set(ctx, registrationKey(platformName), registration)
}

func (t *tracker) selected(ctx context.Context) (map[string]string, error) {
	selected := make(map[string]string)
	if _, err := t.storage.Get(ctx, SelectedAccountsKey, &selected); err != nil {
		return nil, err
	}
	if selected == nil {
		selected = make(map[string]string)
	}
	return selected, nil
}

// begin takes the next generation for the platform and marks it connecting.
// Every successful begin is matched by run or abandon.
func (t *tracker) begin(platformName string) (uint64, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if err := t.ctx.Err(); err != nil {
		return 0, err
	}
	t.generation[platformName]++
	gen := t.generation[platformName]
	t.connecting[platformName] = gen
	t.wg.Add(1)
	return gen, nil
}

func (t *tracker) abandon(platformName string, gen uint64) {
	t.mutex.Lock()
	if t.connecting[platformName] == gen {
		delete(t.connecting, platformName)
	}
	t.mutex.Unlock()
	t.wg.Done()
}

func (t *tracker) current(platformName string, gen uint64) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.generation[platformName] == gen
}

// Connect marks the platform connecting and runs the connector in the
// background without touching the selection. The connect outlives ctx and is
// only cancelled by Close. A connect started later for the same platform
// supersedes this one: the superseded connect writes nothing and yields
// errs.ErrSuperseded.
func (t *tracker) Connect(ctx context.Context, platformName, accountAddress string) <-chan error {
	if err := validateSelection(platformName, accountAddress); err != nil {
		result := make(chan error, 1)
		result <- err
		return result
	}

	t.selection.Lock()
	gen, err := t.begin(platformName)
	t.selection.Unlock()
	if err != nil {
		result := make(chan error, 1)
		result <- fmt.Errorf("connect %s: %w", platformName, err)
		return result
	}

	return t.run(ctx, platformName, accountAddress, gen)
}

// run starts the connect taken by begin.
func (t *tracker) run(ctx context.Context, platformName, accountAddress string, gen uint64) <-chan error {
	result := make(chan error, 1)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(t.ctx, cancel)

	go func() {
		defer t.wg.Done()
		defer cancel()
		defer stop()
		result <- t.connect(runCtx, platformName, accountAddress, gen)
	}()

	return result
}

func (t *tracker) connect(ctx context.Context, platformName, accountAddress string, gen uint64) error {
	err := t.connector.Connect(ctx, platformName, accountAddress)

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.generation[platformName] != gen {
		slog.InfoContext(ctx, "connection: connect superseded", "platform", platformName, "account", accountAddress)
		return fmt.Errorf("connect %s: %w", platformName, errs.ErrSuperseded)
	}
	delete(t.connecting, platformName)

	if err != nil {
		slog.WarnContext(ctx, "connection: connect failed", "platform", platformName, "account", accountAddress, "error", err)
		return fmt.Errorf("connect %s: %w", platformName, err)
	}

	record := entities.PlatformConnection{
		PlatformName:   platformName,
		AccountAddress: accountAddress,
		ConnectedAt:    t.clock.Now().UTC(),
		IsConnected:    true,
		Status:         StatusConnected,
	}
	if err := t.storage.Set(ctx, connectionKey(platformName), record); err != nil {
		slog.ErrorContext(ctx, "connection: failed to persist connection", "platform", platformName, "error", err)
		return err
	}

	slog.InfoContext(ctx, "connection: connected", "platform", platformName, "account", accountAddress)
	return nil
}

// Extract runs the data extraction for a connected platform and blocks until
// it completes.
func (t *tracker) Extract(ctx context.Context, platformName string) error {
	record, ok, err := t.connection(ctx, platformName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("extract %s: %w", platformName, errs.ErrNoConnectedAccount)
	}

	if err := t.connector.Extract(ctx, platformName); err != nil {
		slog.WarnContext(ctx, "connection: extraction failed", "platform", platformName, "error", err)
		return fmt.Errorf("extract %s: %w", platformName, err)
	}

	slog.InfoContext(ctx, "connection: data extracted", "platform", platformName, "account", record.AccountAddress)
	return nil
}

// Restore reconnects every stored selection whose connected record is
// missing or holds a different address.
func (t *tracker) Restore(ctx context.Context) (map[string]<-chan error, error) {
	selected, err := t.selected(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]<-chan error)
	for platformName, accountAddress := range selected {
		record, connected, err := t.connection(ctx, platformName)
		if err != nil {
			return results, err
		}
		if connected && record.AccountAddress == accountAddress {
			continue
		}
		slog.InfoContext(ctx, "connection: restoring connection", "platform", platformName, "account", accountAddress)
		results[platformName] = t.Connect(ctx, platformName, accountAddress)
	}
	return results, nil
}

func (t *tracker) connection(ctx context.Context, platformName string) (entities.PlatformConnection, bool, error) {
	var record entities.PlatformConnection
	ok, err := t.storage.Get(ctx, connectionKey(platformName), &record)
	if err != nil || !ok {
		return entities.PlatformConnection{}, false, err
	}
	return record, record.IsConnected, nil
}

func (t *tracker) IsRegistered(ctx context.Context, platformName string) (bool, error) {
	var record entities.PlatformRegistration
	ok, err := t.storage.Get(ctx, registrationKey(platformName), &record)
	if err != nil {
		return false, err
	}
	return ok && record.IsRegistered, nil
}

func (t *tracker) IsConnected(ctx context.Context, platformName string) (bool, error) {
	_, ok, err := t.connection(ctx, platformName)
	return ok, err
}

func (t *tracker) IsConnecting(platformName string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	_, ok := t.connecting[platformName]
	return ok
}

// GetSelectedAccount returns "" when nothing was selected for the platform.
func (t *tracker) GetSelectedAccount(ctx context.Context, platformName string) (string, error) {
	selected, err := t.selected(ctx)
	if err != nil {
		return "", err
	}
	return selected[platformName], nil
}

// GetConnectedAccount returns "" when the platform is not connected.
func (t *tracker) GetConnectedAccount(ctx context.Context, platformName string) (string, error) {
	record, ok, err := t.connection(ctx, platformName)
	if err != nil || !ok {
		return "", err
	}
	return record.AccountAddress, nil
}

// GetAllConnectedAccounts maps platform name to connected address.
func (t *tracker) GetAllConnectedAccounts(ctx context.Context) (map[string]string, error) {
	keys, err := t.storage.Keys(ctx, ConnectionPrefix)
	if err != nil {
		return nil, err
	}
	accounts := make(map[string]string, len(keys))
	for _, key := range keys {
		record, ok, err := t.connection(ctx, strings.TrimPrefix(key, ConnectionPrefix))
		if err != nil {
			return nil, err
		}
		if ok {
			accounts[record.PlatformName] = record.AccountAddress
		}
	}
	return accounts, nil
}

func (t *tracker) Status(ctx context.Context, platformName string) (dtos.ConnectionStatusDTO, error) {
	status := dtos.ConnectionStatusDTO{
		PlatformName: platformName,
		IsConnecting: t.IsConnecting(platformName),
	}

	var err error
	if status.IsRegistered, err = t.IsRegistered(ctx, platformName); err != nil {
		return status, err
	}
	if status.SelectedAccount, err = t.GetSelectedAccount(ctx, platformName); err != nil {
		return status, err
	}
	if status.ConnectedAccount, err = t.GetConnectedAccount(ctx, platformName); err != nil {
		return status, err
	}
	status.IsConnected = status.ConnectedAccount != ""

	switch {
	case status.IsConnecting:
		status.State = entities.StateConnecting
	case status.IsConnected:
		status.State = entities.StateConnected
	case status.SelectedAccount != "":
		status.State = entities.StateSelected
	default:
		status.State = entities.StateUnselected
	}
	return status, nil
}

// Close cancels in-flight connects and waits for them to finish.
func (t *tracker) Close() {
	t.mutex.Lock()
	t.cancel()
	t.mutex.Unlock()
	t.wg.Wait()
}
