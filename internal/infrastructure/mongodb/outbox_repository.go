package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/outbox"
)

// OutboxRepository implements outbox.Repository on MongoDB
type OutboxRepository struct {
	collection *mongo.Collection
}

// NewOutboxRepository creates the repository and ensures its indexes
func NewOutboxRepository(db *mongo.Database) *OutboxRepository {
	repo := &OutboxRepository{collection: db.Collection("outbox_events")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *OutboxRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "publishedAt", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "aggregateId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// SaveAll saves multiple outbox events in a single operation
func (r *OutboxRepository) SaveAll(ctx context.Context, events []*outbox.Event) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]interface{}, len(events))
	for i, event := range events {
		docs[i] = event
	}
	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("save outbox events: %w", err)
	}
	return nil
}

// FindUnpublished retrieves unpublished events below the retry cap, oldest
// first.
func (r *OutboxRepository) FindUnpublished(ctx context.Context, limit int) ([]*outbox.Event, error) {
	filter := bson.M{
		"publishedAt": bson.M{"$exists": false},
		"$or": []bson.M{
			{"retryCount": bson.M{"$lt": 10}},
			{"retryCount": bson.M{"$exists": false}},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find unpublished events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*outbox.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode outbox events: %w", err)
	}
	return events, nil
}

// MarkPublished marks an event as published
func (r *OutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	now := time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$set": bson.M{"publishedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("mark event published: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("outbox event not found: %s", eventID)
	}
	return nil
}

// IncrementRetry increments the retry count and records the last error
func (r *OutboxRepository) IncrementRetry(ctx context.Context, eventID string, errorMsg string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{
			"$inc": bson.M{"retryCount": 1},
			"$set": bson.M{"lastError": errorMsg},
		},
	)
	if err != nil {
		return fmt.Errorf("increment retry for event %s: %w", eventID, err)
	}
	return nil
}

// DeletePublished deletes published events older than the given age
func (r *OutboxRepository) DeletePublished(ctx context.Context, olderThanSeconds int64) error {
	cutoff := time.Now().UTC().Add(-time.Duration(olderThanSeconds) * time.Second)
	_, err := r.collection.DeleteMany(ctx, bson.M{
		"publishedAt": bson.M{"$exists": true, "$lt": cutoff},
	})
	if err != nil {
		return fmt.Errorf("delete published events: %w", err)
	}
	return nil
}
