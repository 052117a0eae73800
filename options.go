package lazybones

import (
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

type Option func(*bindingConfig)

type bindingConfig struct {
	logger     *slog.Logger
	syncMode   SyncMode
	pool       *ants.Pool
	onDispatch []DispatchHook
	onInit     []InitHook
}

func newBindingConfig(opts []Option) *bindingConfig {
	cfg := &bindingConfig{
		logger:   slog.Default(),
		syncMode: SyncNone,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *bindingConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSyncMode selects how a lazily bound value guards its first realization.
func WithSyncMode(mode SyncMode) Option {
	return func(cfg *bindingConfig) {
		cfg.syncMode = mode
	}
}

// WithPool runs lifecycle jobs on p instead of the shared default pool.
func WithPool(p *ants.Pool) Option {
	return func(cfg *bindingConfig) {
		cfg.pool = p
	}
}

func WithDispatchObserver(hook DispatchHook) Option {
	return func(cfg *bindingConfig) {
		cfg.onDispatch = append(cfg.onDispatch, hook)
	}
}

func WithInitObserver(hook InitHook) Option {
	return func(cfg *bindingConfig) {
		cfg.onInit = append(cfg.onInit, hook)
	}
}
