package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recall-kv/recall/internal/config"
	"github.com/recall-kv/recall/internal/store"
)

// openStore resolves the effective configuration (defaults, config file,
// environment, then flags) and opens the selected backend.
func openStore(ctx context.Context, opts *RootOptions) (store.Store, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Flags are the last word.
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.RedisAddr != "" {
		cfg.Redis.Addr = opts.RedisAddr
	}
	if opts.DBPath != "" {
		cfg.SQLite.Path = opts.DBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendRedis:
		slog.Debug("opening redis store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return store.OpenRedis(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.BackendSQLite:
		slog.Debug("opening sqlite store", "path", cfg.SQLite.Path)
		return store.OpenSQLite(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("invalid backend %q", cfg.Backend)
	}
}
