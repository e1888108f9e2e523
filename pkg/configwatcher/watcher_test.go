package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"interviewai_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: a\n"), 0o644))

	reloaded := make(chan *config.Config, 1)
	w := New(path, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	w.debounce = 50 * time.Millisecond
	w.load = func(string) (*config.Config, error) {
		return &config.Config{AI: config.AIConfig{Model: "b"}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 等待监听就绪后再写入
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: b\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "b", cfg.AI.Model)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	assert.NoError(t, <-done)
}
