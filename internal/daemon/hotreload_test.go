package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tzclock/internal/config"
)

func TestConfigWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 215\n"), 0o644))

	initial, err := config.LoadConfig(path)
	require.NoError(t, err)

	w := NewConfigWatcher(path, "", nil)
	w.SetDebounce(10 * time.Millisecond)

	var mu sync.Mutex
	var reloaded *config.Config
	w.SetReloadCallback(func(c *config.Config) {
		mu.Lock()
		reloaded = c
		mu.Unlock()
	})

	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 300\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloaded != nil && reloaded.Window.Width == 300
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 300, w.GetCurrentConfig().Window.Width)
}

func TestConfigWatcherKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 215\n"), 0o644))

	initial, err := config.LoadConfig(path)
	require.NoError(t, err)

	w := NewConfigWatcher(path, "", nil)
	w.SetDebounce(10 * time.Millisecond)

	errCh := make(chan error, 1)
	w.SetErrorCallback(func(err error) {
		select {
		case errCh <- err:
		default:
		}
	})

	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[window]\nanchor = \"sideways\"\n"), 0o644))

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected error callback")
	}
	assert.Same(t, initial, w.GetCurrentConfig())
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w := NewConfigWatcher(path, "", nil)
	w.SetDebounce(10 * time.Millisecond)

	called := make(chan struct{}, 1)
	w.SetReloadCallback(func(*config.Config) { called <- struct{}{} })

	require.NoError(t, w.Start(context.Background(), config.DefaultConfig()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-called:
		t.Fatal("unrelated file triggered reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConfigWatcherStopIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewConfigWatcher(filepath.Join(dir, "config.toml"), "", nil)
	require.NoError(t, w.Start(context.Background(), nil))
	w.Stop()
	w.Stop()
}

func TestConfigWatcherMissingDir(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "missing", "config.toml"), "", nil)
	err := w.Start(context.Background(), nil)
	var watchErr *WatchError
	assert.ErrorAs(t, err, &watchErr)
}
