package storage

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/observability"
	"github.com/matzehuels/mindmesh/pkg/snapshot"
)

const (
	defaultDatabase   = "mindmesh"
	defaultCollection = "maps"
)

// mapDocument is the stored shape: the snapshot plus the map ID as _id,
// so upserts are natural and List is a projection.
type mapDocument struct {
	ID   string            `bson:"_id"`
	Snap snapshot.Snapshot `bson:"snapshot"`
}

// MongoStore keeps each map as one document in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it to fail fast on a bad
// URI. The caller owns the context deadline for the initial dial.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(defaultDatabase).Collection(defaultCollection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, mapID string) (_ snapshot.Snapshot, err error) {
	start := time.Now()
	defer func() { observability.Storage().OnLoad(ctx, "mongo", mapID, time.Since(start), err) }()

	var doc mapDocument
	err = s.coll.FindOne(ctx, bson.M{"_id": mapID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return snapshot.Snapshot{}, errors.New(errors.ErrCodeMapNotFound, "map %q not found", mapID)
	}
	if err != nil {
		return snapshot.Snapshot{}, errors.Wrap(errors.ErrCodeStorage, err, "find map")
	}
	return doc.Snap, nil
}

func (s *MongoStore) Save(ctx context.Context, mapID string, snap snapshot.Snapshot) (err error) {
	start := time.Now()
	defer func() { observability.Storage().OnSave(ctx, "mongo", mapID, time.Since(start), err) }()

	doc := mapDocument{ID: mapID, Snap: snap}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": mapID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "upsert map")
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list maps")
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode map id")
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "iterate maps")
	}
	return ids, nil
}

func (s *MongoStore) Delete(ctx context.Context, mapID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": mapID}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete map")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "disconnect mongodb")
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
