package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindmesh/pkg/cache"
	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/storage"
)

// Config holds the CLI configuration, loaded from
// ~/.config/mindmesh/config.toml when present. Every field has a
// working default so a missing file means "file storage, no cache".
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Serve   ServeConfig   `toml:"serve"`
}

// StorageConfig selects the map persistence backend.
type StorageConfig struct {
	Backend  string `toml:"backend"`   // "file" (default) or "mongo"
	Dir      string `toml:"dir"`       // file backend: map directory
	MongoURI string `toml:"mongo_uri"` // mongo backend: connection URI
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`    // "null" (default), "file", or "redis"
	Dir       string `toml:"dir"`        // file backend: cache directory
	RedisAddr string `toml:"redis_addr"` // redis backend: host:port
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `toml:"addr"` // listen address, default ":8436"
}

const defaultServeAddr = ":8436"

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: "file"},
		Cache:   CacheConfig{Backend: "null"},
		Serve:   ServeConfig{Addr: defaultServeAddr},
	}
}

// configPath returns the default config file location.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindmesh", "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location if
// path is empty. A missing file yields the defaults; a malformed file
// is an error so a typo never silently falls back.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaultServeAddr
	}
	return cfg, nil
}

// openStore builds the map store the config selects.
func openStore(ctx context.Context, cfg Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "", "file":
		return storage.NewFileStore(cfg.Storage.Dir)
	case "mongo":
		if cfg.Storage.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "storage.mongo_uri is required for the mongo backend")
		}
		return storage.NewMongoStore(ctx, cfg.Storage.MongoURI)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown storage backend %q", cfg.Storage.Backend)
}

// openCache builds the render cache the config selects.
func openCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "", "null":
		return cache.NewNullCache(), nil
	case "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(home, ".cache", "mindmesh")
		}
		return cache.NewFileCache(dir)
	case "redis":
		if cfg.Cache.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Cache.Backend)
}
