package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// HistoryRepository implements domain.HistoryRepository on MongoDB
type HistoryRepository struct {
	collection *mongo.Collection
}

// NewHistoryRepository creates the repository and ensures its indexes
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	repo := &HistoryRepository{collection: db.Collection("history")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *HistoryRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "entityId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// SaveAll appends history entries
func (r *HistoryRepository) SaveAll(ctx context.Context, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}
	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("save history entries: %w", err)
	}
	return nil
}

// FindByEntityID returns the history of one entity, newest first
func (r *HistoryRepository) FindByEntityID(ctx context.Context, entityID string) ([]domain.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"entityId": entityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find history of %s: %w", entityID, err)
	}
	defer cursor.Close(ctx)

	var entries []domain.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode history entries: %w", err)
	}
	return entries, nil
}
