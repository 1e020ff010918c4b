package connection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armii/platform-admin/pkg/entities"
)

func TestRepo_GetMissingKey(t *testing.T) {
	t.Parallel()
	storage := newTestStorage(t)

	var dst map[string]string
	ok, err := storage.Get(context.Background(), SelectedAccountsKey, &dst)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, dst)
}

func TestRepo_SetOverwrites(t *testing.T) {
	t.Parallel()
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, SelectedAccountsKey, map[string]string{"Instagram": "a1"}))
	require.NoError(t, storage.Set(ctx, SelectedAccountsKey, map[string]string{"Instagram": "a2", "Gmail": "g1"}))

	var got map[string]string
	ok, err := storage.Get(ctx, SelectedAccountsKey, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"Instagram": "a2", "Gmail": "g1"}, got)
}

func TestRepo_RecordShape(t *testing.T) {
	t.Parallel()
	storage := newTestStorage(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, storage.Set(ctx, connectionKey("Instagram"), entities.PlatformConnection{
		PlatformName:   "Instagram",
		AccountAddress: "a1",
		ConnectedAt:    at,
		IsConnected:    true,
		Status:         StatusConnected,
	}))

	var raw map[string]any
	ok, err := storage.Get(ctx, "platformConnection_Instagram", &raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Instagram", raw["platformName"])
	assert.Equal(t, "a1", raw["accountAddress"])
	assert.Equal(t, "2025-03-01T12:00:00Z", raw["connectedAt"])
	assert.Equal(t, true, raw["isConnected"])
	assert.Equal(t, "connected", raw["status"])
}

func TestRepo_KeysAndDelete(t *testing.T) {
	t.Parallel()
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, connectionKey("Instagram"), entities.PlatformConnection{}))
	require.NoError(t, storage.Set(ctx, connectionKey("Gmail"), entities.PlatformConnection{}))
	require.NoError(t, storage.Set(ctx, registrationKey("Gmail"), entities.PlatformRegistration{}))
	require.NoError(t, storage.Set(ctx, "platformConnectionXGmail", true))

	keys, err := storage.Keys(ctx, ConnectionPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"platformConnection_Gmail", "platformConnection_Instagram"}, keys)

	require.NoError(t, storage.Delete(ctx, connectionKey("Gmail")))
	keys, err = storage.Keys(ctx, ConnectionPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"platformConnection_Instagram"}, keys)
}
