package manager

import (
	"context"
	"fmt"
	"log/slog"

	"zerox/netpolicy/pkg/policy/engine"
)

// Manager wires a rule source, a file watcher and an engine together.
type Manager struct {
	engine   *engine.Engine
	source   engine.RuleSource
	watcher  *FileWatcher
	logger   *slog.Logger
	onReload func(err error)
}

// New creates a manager for the given engine and source.
func New(eng *engine.Engine, source engine.RuleSource, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		engine: eng,
		source: source,
		logger: logger,
	}
}

// SetReloadHook registers a callback invoked after every reload attempt
// with its outcome. Used to feed reload metrics.
func (m *Manager) SetReloadHook(fn func(err error)) {
	m.onReload = fn
}

// Reload forces a reload from the source.
func (m *Manager) Reload(ctx context.Context) error {
	err := m.engine.Reload(ctx, m.source)
	if m.onReload != nil {
		m.onReload(err)
	}
	return err
}

// Watch blocks, reloading the engine whenever the watched path changes,
// until the context is cancelled. The path is usually the same file the
// source reads; debouncing collapses rapid successive writes into one
// reload.
func (m *Manager) Watch(ctx context.Context, path string, config *FileWatcherConfig) error {
	if config == nil {
		config = DefaultFileWatcherConfig()
	}
	config.Path = path

	watcher, err := NewFileWatcher(config, m.logger)
	if err != nil {
		return fmt.Errorf("failed to create rules watcher: %w", err)
	}
	m.watcher = watcher

	return watcher.Watch(ctx, func() error {
		return m.Reload(ctx)
	})
}
