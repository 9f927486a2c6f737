package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// CarrierRepository implements domain.CarrierRepository on MongoDB
type CarrierRepository struct {
	collection *mongo.Collection
}

// NewCarrierRepository creates the repository and ensures its indexes
func NewCarrierRepository(db *mongo.Database) *CarrierRepository {
	repo := &CarrierRepository{collection: db.Collection("carriers")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *CarrierRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindByID returns one carrier, or nil when absent
func (r *CarrierRepository) FindByID(ctx context.Context, id string) (*domain.Carrier, error) {
	var carrier domain.Carrier
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&carrier)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find carrier %s: %w", id, err)
	}
	return &carrier, nil
}

// FindAll returns every carrier, sorted by title
func (r *CarrierRepository) FindAll(ctx context.Context) ([]*domain.Carrier, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find carriers: %w", err)
	}
	defer cursor.Close(ctx)

	var carriers []*domain.Carrier
	if err := cursor.All(ctx, &carriers); err != nil {
		return nil, fmt.Errorf("decode carriers: %w", err)
	}
	return carriers, nil
}

// Save upserts one carrier
func (r *CarrierRepository) Save(ctx context.Context, carrier *domain.Carrier) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": carrier.ID}, carrier, opts)
	if err != nil {
		return fmt.Errorf("save carrier %s: %w", carrier.ID, err)
	}
	return nil
}

// Delete removes one carrier
func (r *CarrierRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete carrier %s: %w", id, err)
	}
	return nil
}
