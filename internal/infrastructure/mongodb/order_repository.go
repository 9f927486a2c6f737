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

// OrderRepository implements domain.OrderRepository on MongoDB
type OrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates the repository and ensures its indexes
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	repo := &OrderRepository{collection: db.Collection("orders")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *OrderRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "shippingId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindByID returns one order, or nil when absent
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &order, nil
}

// FindByShippingID returns the orders linked to one shipping
func (r *OrderRepository) FindByShippingID(ctx context.Context, shippingID string) ([]*domain.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"shippingId": shippingID})
	if err != nil {
		return nil, fmt.Errorf("find orders of shipping %s: %w", shippingID, err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// FindByShippingIDs loads the children of a whole save batch with one
// query, keyed by parent shipping id.
func (r *OrderRepository) FindByShippingIDs(ctx context.Context, shippingIDs []string) (map[string][]*domain.Order, error) {
	result := make(map[string][]*domain.Order, len(shippingIDs))
	if len(shippingIDs) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"shippingId": bson.M{"$in": shippingIDs}})
	if err != nil {
		return nil, fmt.Errorf("find orders of shippings: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	for _, o := range orders {
		if o.ShippingID == nil {
			continue
		}
		result[*o.ShippingID] = append(result[*o.ShippingID], o)
	}
	return result, nil
}

// Save upserts one order. The document is replaced as a whole so cleared
// optional fields, like a detached shipping link, actually disappear.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order, opts)
	if err != nil {
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}
	return nil
}
