package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/observability"
	"github.com/matzehuels/mindmesh/pkg/snapshot"
)

// FileStore keeps each map as an indented JSON document in a local
// directory, named <mapID>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-backed map store.
// If baseDir is empty, defaults to ~/.config/mindmesh/maps/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "mindmesh", "maps")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create map dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) mapPath(mapID string) string {
	return filepath.Join(s.baseDir, mapID+".json")
}

func (s *FileStore) Load(ctx context.Context, mapID string) (_ snapshot.Snapshot, err error) {
	start := time.Now()
	defer func() { observability.Storage().OnLoad(ctx, "file", mapID, time.Since(start), err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.mapPath(mapID))
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.Snapshot{}, errors.New(errors.ErrCodeMapNotFound, "map %q not found", mapID)
		}
		return snapshot.Snapshot{}, errors.Wrap(errors.ErrCodeStorage, err, "read map file")
	}
	return snapshot.Unmarshal(data)
}

func (s *FileStore) Save(ctx context.Context, mapID string, snap snapshot.Snapshot) (err error) {
	start := time.Now()
	defer func() { observability.Storage().OnSave(ctx, "file", mapID, time.Since(start), err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := snapshot.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.mapPath(mapID), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write map file")
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read map dir")
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Delete(ctx context.Context, mapID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.mapPath(mapID)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove map file")
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for map files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
