package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/mindmesh/pkg/errors"
)

// FileCache keeps rendered artifacts on disk so repeated renders of an
// unchanged map are served without invoking Graphviz. Entries shard
// into subdirectories by key hash, and each file is a small JSON
// envelope holding the payload and its expiry.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create cache dir")
	}
	return &FileCache{dir: dir}, nil
}

// envelope wraps a cached artifact with its expiry. A zero Expires
// means the entry never expires; keys are content hashes, so stale
// entries are abandoned rather than invalidated.
type envelope struct {
	Payload []byte    `json:"payload"`
	Expires time.Time `json:"expires,omitempty"`
}

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorage, err, "read cache entry")
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Unreadable entry, drop it and report a miss.
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !env.Expires.IsZero() && time.Now().After(env.Expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return env.Payload, true, nil
}

func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{Payload: data}
	if ttl > 0 {
		env.Expires = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal cache entry")
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create cache shard")
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write cache entry")
	}
	return nil
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove cache entry")
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// entryPath shards entries as <dir>/<hash[:2]>/<hash[2:]>.json so a
// busy cache never piles every file into one directory.
func (c *FileCache) entryPath(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
