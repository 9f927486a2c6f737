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

// CarrierRequestStatRepository implements the carrier request statistics
// store on MongoDB.
type CarrierRequestStatRepository struct {
	collection *mongo.Collection
}

// NewCarrierRequestStatRepository creates the repository and ensures its indexes
func NewCarrierRequestStatRepository(db *mongo.Database) *CarrierRequestStatRepository {
	repo := &CarrierRequestStatRepository{collection: db.Collection("carrier_request_stats")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *CarrierRequestStatRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shippingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "carrierId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindByShippingID returns the stat row of one shipping, or nil
func (r *CarrierRequestStatRepository) FindByShippingID(ctx context.Context, shippingID string) (*domain.CarrierRequestDatesStat, error) {
	var stat domain.CarrierRequestDatesStat
	err := r.collection.FindOne(ctx, bson.M{"shippingId": shippingID}).Decode(&stat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find carrier request stat of %s: %w", shippingID, err)
	}
	return &stat, nil
}

// Save upserts one stat row
func (r *CarrierRequestStatRepository) Save(ctx context.Context, stat *domain.CarrierRequestDatesStat) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stat.ID}, stat, opts)
	if err != nil {
		return fmt.Errorf("save carrier request stat %s: %w", stat.ID, err)
	}
	return nil
}
