package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mindmesh/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("storage backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Cache.Backend != "null" {
		t.Errorf("cache backend = %q, want null", cfg.Cache.Backend)
	}
	if cfg.Serve.Addr != defaultServeAddr {
		t.Errorf("serve addr = %q, want %q", cfg.Serve.Addr, defaultServeAddr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[serve]
addr = ":9000"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != "mongo" || cfg.Storage.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "[storage\nbackend =")
	if _, err := loadConfig(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Backend = "carrier-pigeon"
	if _, err := openStore(context.Background(), cfg); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOpenStoreMongoRequiresURI(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Backend = "mongo"
	if _, err := openStore(context.Background(), cfg); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOpenCacheNullDefault(t *testing.T) {
	c, err := openCache(context.Background(), defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if _, ok, _ := c.Get(context.Background(), "k"); ok {
		t.Error("default cache returned a hit")
	}
}
