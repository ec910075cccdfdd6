package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
	"github.com/Firecargit/BizHub-saas/pkg/httputil"
	"github.com/Firecargit/BizHub-saas/pkg/page"
)

const pagesCollection = "pages"

// MongoStore persists page documents in MongoDB, one document per user,
// upserted by user id. Elements are stored as their JSON wire form so the
// typed content survives without a second bson mapping.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// pageRecord is the stored shape of a user's page.
type pageRecord struct {
	UserID    string    `bson:"_id"`
	Elements  string    `bson:"elements"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection. The ping
// is retried with backoff so a store starting alongside its database does
// not fail on the first refused connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	err = httputil.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(pagesCollection),
	}, nil
}

// Put upserts a user's page document.
func (s *MongoStore) Put(ctx context.Context, doc page.Document) error {
	elements, err := json.Marshal(doc.Elements)
	if err != nil {
		return fmt.Errorf("serialize elements: %w", err)
	}

	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": doc.UserID},
		bson.M{"$set": bson.M{
			"elements":   string(elements),
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert page for %s: %w", doc.UserID, err)
	}
	return nil
}

// Get returns the stored document for a user.
func (s *MongoStore) Get(ctx context.Context, userID string) (page.Document, error) {
	var rec pageRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return page.Document{}, errors.New(errors.ErrCodePageNotFound, "no page for user %s", userID)
	}
	if err != nil {
		return page.Document{}, fmt.Errorf("find page for %s: %w", userID, err)
	}

	records, err := page.UnmarshalRecords([]byte(rec.Elements))
	if err != nil {
		return page.Document{}, errors.Wrap(errors.ErrCodeLoadCorrupt, err, "stored page for %s is not decodable", userID)
	}
	return page.Document{UserID: userID, Elements: records}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ DocStore = (*MongoStore)(nil)
