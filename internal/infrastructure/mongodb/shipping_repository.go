package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// ShippingRepository implements domain.ShippingRepository on MongoDB
type ShippingRepository struct {
	collection *mongo.Collection
}

// NewShippingRepository creates the repository and ensures its indexes
func NewShippingRepository(db *mongo.Database) *ShippingRepository {
	repo := &ShippingRepository{collection: db.Collection("shippings")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ShippingRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shippingNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "carrierId", Value: 1}}},
		{Keys: bson.D{{Key: "isPooling", Value: 1}, {Key: "syncedWithPooling", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindByID returns one shipping, or nil when absent
func (r *ShippingRepository) FindByID(ctx context.Context, id string) (*domain.Shipping, error) {
	var shipping domain.Shipping
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shipping)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find shipping %s: %w", id, err)
	}
	return &shipping, nil
}

// FindByNumber returns the shipping holding the given number, or nil
func (r *ShippingRepository) FindByNumber(ctx context.Context, number string) (*domain.Shipping, error) {
	var shipping domain.Shipping
	err := r.collection.FindOne(ctx, bson.M{"shippingNumber": number}).Decode(&shipping)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find shipping by number %s: %w", number, err)
	}
	return &shipping, nil
}

// FindByStatus returns all shippings in one lifecycle state
func (r *ShippingRepository) FindByStatus(ctx context.Context, status domain.ShippingStatus) ([]*domain.Shipping, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("find shippings by status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var shippings []*domain.Shipping
	if err := cursor.All(ctx, &shippings); err != nil {
		return nil, fmt.Errorf("decode shippings: %w", err)
	}
	return shippings, nil
}

// FindPoolingOutOfSync returns pooling shippings whose slot diverged from
// the remote, oldest first, for the reconciliation poller.
func (r *ShippingRepository) FindPoolingOutOfSync(ctx context.Context, limit int) ([]*domain.Shipping, error) {
	filter := bson.M{
		"isPooling":         true,
		"syncedWithPooling": false,
		"slotId":            bson.M{"$exists": true, "$ne": nil},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find out-of-sync pooling shippings: %w", err)
	}
	defer cursor.Close(ctx)

	var shippings []*domain.Shipping
	if err := cursor.All(ctx, &shippings); err != nil {
		return nil, fmt.Errorf("decode shippings: %w", err)
	}
	return shippings, nil
}

// Save upserts one shipping. The document is replaced as a whole so
// cleared optional fields, like a released slot id, actually disappear.
func (r *ShippingRepository) Save(ctx context.Context, shipping *domain.Shipping) error {
	shipping.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": shipping.ID}, shipping, opts)
	if err != nil {
		return fmt.Errorf("save shipping %s: %w", shipping.ID, err)
	}
	return nil
}
