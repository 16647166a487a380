package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Open constructs the backend named by cfg.Driver. An empty driver means
// diskv.
func Open(ctx context.Context, cfg *Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Driver {
	case "", DriverDiskv:
		return NewDiskv(cfg.Path)
	case DriverSQLite:
		path := cfg.DSN
		if path == "" {
			base, err := homedir.Expand(cfg.Path)
			if err != nil {
				return nil, fmt.Errorf("store: expand path %q: %w", cfg.Path, err)
			}
			path = filepath.Join(base, "riverline.db")
		}
		return NewSQLite(ctx, path)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.DSN)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
