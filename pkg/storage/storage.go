// Package storage persists mind map snapshots under user-chosen map IDs.
//
// Two backends are provided: FileStore keeps one JSON document per map
// in a local directory, MongoStore keeps one BSON document per map in a
// collection. Both implement Store and are selected via configuration.
package storage

import (
	"context"

	"github.com/matzehuels/mindmesh/pkg/snapshot"
)

// Store is the persistence boundary for mind maps.
//
// Load returns MAP_NOT_FOUND for unknown IDs. Save overwrites an
// existing map with the same ID. Map IDs are validated by the caller
// before they reach a Store.
type Store interface {
	Load(ctx context.Context, mapID string) (snapshot.Snapshot, error)
	Save(ctx context.Context, mapID string, snap snapshot.Snapshot) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, mapID string) error
	Close(ctx context.Context) error
}
