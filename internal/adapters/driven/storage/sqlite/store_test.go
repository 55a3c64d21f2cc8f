package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/storage/state"
	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	tempDir := t.TempDir()
	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store, tempDir
}

func TestNewStore_Success(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, "state.db"), store.Path())
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_Migrations(t *testing.T) {
	store, _ := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var name string
	err = store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='snap_state'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "snap_state", name)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_GetEmpty(t *testing.T) {
	store, _ := setupTestStore(t)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	err := store.Update(ctx, map[string]json.RawMessage{
		"auth": json.RawMessage(`{"token":"t1"}`),
	})
	require.NoError(t, err)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	require.Contains(t, got, "auth")
	assert.JSONEq(t, `{"token":"t1"}`, string(got["auth"]))
}

func TestStore_UpdateReplaces(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Update(ctx, map[string]json.RawMessage{"a": json.RawMessage(`1`)}))
	require.NoError(t, store.Update(ctx, map[string]json.RawMessage{"b": json.RawMessage(`2`)}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.NotContains(t, got, "a")
	assert.Equal(t, "2", string(got["b"]))
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	require.NoError(t, store.Update(ctx, map[string]json.RawMessage{"a": json.RawMessage(`1`)}))

	require.NoError(t, store.Clear(ctx))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CredentialSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	auth := &domain.AuthData{ID: 7, Email: "a@b.com", Token: "t1", RefreshToken: "r1", Expires: "2099-01-01T00:00:00Z"}

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, state.NewCredentialStore(first).Set(ctx, auth))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := state.NewCredentialStore(second).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth, got)
}

func TestStore_ClosedDatabaseErrors(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Update(context.Background(), nil))
	assert.Error(t, store.Clear(context.Background()))
}
