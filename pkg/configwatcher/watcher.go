package configwatcher

import (
	"context"
	"interviewai_backend/internal/config"
	"interviewai_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ConfigReloader func(cfg *config.Config)

// Watcher 监听配置文件变化，防抖后重新加载并回调
type Watcher struct {
	path     string
	debounce time.Duration
	load     func(dir string) (*config.Config, error)
	reloader ConfigReloader
}

func New(configPath string, reloader ConfigReloader) *Watcher {
	return &Watcher{
		path:     configPath,
		debounce: time.Second,
		load:     config.LoadConfig,
		reloader: reloader,
	}
}

// Run 阻塞直到 ctx 取消；监听目录以兼容编辑器的原子替换
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			newCfg, err := w.load(filepath.Dir(absPath))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("path", absPath))
			w.reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

// WatchConfig 后台启动监听
func WatchConfig(ctx context.Context, configPath string, reloader ConfigReloader) {
	go func() {
		if err := New(configPath, reloader).Run(ctx); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}
