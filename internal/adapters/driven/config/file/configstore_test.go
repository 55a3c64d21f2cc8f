package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Path(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "teabag")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("api_url", "https://api.0xteabag.com"))
	require.NoError(t, store.Set("http_timeout", 12.5))
	require.NoError(t, store.Set("rate_limit", 3))
	require.NoError(t, store.Set("verbose", true))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.0xteabag.com", reopened.GetString("api_url"))
	assert.Equal(t, 12.5, reopened.GetFloat("http_timeout"))
	assert.Equal(t, 3, reopened.GetInt("rate_limit"))
	assert.Equal(t, 3.0, reopened.GetFloat("rate_limit"))
	assert.True(t, reopened.GetBool("verbose"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api_url", "x"))

	assert.Zero(t, store.GetInt("api_url"))
	assert.Zero(t, store.GetFloat("api_url"))
	assert.False(t, store.GetBool("api_url"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_FlattensTables(t *testing.T) {
	dir := t.TempDir()
	content := "node_env = \"staging\"\n\n[server]\naddr = \":8787\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "staging", store.GetString("node_env"))
	assert.Equal(t, ":8787", store.GetString("server.addr"))
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not = [valid"), 0o600))

	_, err := NewConfigStore(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("rate_limit", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetFloat("rate_limit")
		}()
	}
	wg.Wait()
}

func TestConfigStore_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	require.NoError(t, store.Watch(ctx, func() { changed <- struct{}{} }))

	require.NoError(t, os.WriteFile(store.Path(), []byte("snap_home = \"https://snap\"\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
	assert.Eventually(t, func() bool {
		return store.GetString("snap_home") == "https://snap"
	}, 5*time.Second, 10*time.Millisecond)
}
