package lifecycle

import "log/slog"

type Option func(*config)

type config struct {
	name   string
	logger *slog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		name:   "lifecycle",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithName labels the host in log records.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}
