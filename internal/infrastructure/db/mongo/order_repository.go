package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	db *mongo.Database
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

type mongoOrderItem struct {
	ProductID       primitive.ObjectID `bson:"product_id"`
	Name            string             `bson:"name"`
	Quantity        int                `bson:"quantity"`
	PriceAtPurchase float64            `bson:"price_at_purchase"`
}

type mongoOrder struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	Items          []mongoOrderItem   `bson:"items"`
	Total          float64            `bson:"total"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
}

func (o *mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, domain.OrderItem{
			ProductID:       item.ProductID.Hex(),
			Name:            item.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	return &domain.Order{
		ID:             o.ID.Hex(),
		UserID:         o.UserID,
		Items:          items,
		Total:          o.Total,
		Status:         domain.OrderStatus(o.Status),
		CreatedAt:      o.CreatedAt,
		IdempotencyKey: o.IdempotencyKey,
	}
}

// Place commits the order in a single transaction: every item's stock is
// decremented under a `stock >= quantity` precondition and the order document
// is inserted. Any precondition miss aborts the whole transaction, so stock
// can never go negative and no partial decrement survives a failure.
func (r *OrderRepository) Place(ctx context.Context, o *domain.Order) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	doc := mongoOrder{
		UserID:         o.UserID,
		Items:          make([]mongoOrderItem, 0, len(o.Items)),
		Total:          o.Total,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt.UTC(),
		IdempotencyKey: o.IdempotencyKey,
	}
	for _, item := range o.Items {
		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return &domain.InsufficientStockError{ProductName: item.Name}
		}
		doc.Items = append(doc.Items, mongoOrderItem{
			ProductID:       oid,
			Name:            item.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		for i, item := range doc.Items {
			res, err := r.db.Collection(collectionProducts).UpdateOne(sc,
				bson.M{"_id": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
				bson.M{"$inc": bson.M{"stock": -item.Quantity}},
			)
			if err != nil {
				return nil, fmt.Errorf("decrement stock: %w", err)
			}
			if res.MatchedCount == 0 {
				return nil, &domain.InsufficientStockError{ProductName: o.Items[i].Name}
			}
		}

		res, err := r.db.Collection(collectionOrders).InsertOne(sc, doc)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		return res.InsertedID, nil
	})
	if err != nil {
		return err
	}

	o.ID = result.(primitive.ObjectID).Hex()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.db.Collection(collectionOrders).FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mo.toDomain(), nil
}

// List returns orders newest first; empty userID returns every order.
func (r *OrderRepository) List(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	cursor, err := r.db.Collection(collectionOrders).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var mo mongoOrder
		if err := cursor.Decode(&mo); err != nil {
			return nil, err
		}
		orders = append(orders, mo.toDomain())
	}
	return orders, cursor.Err()
}

// UpdateStatus merges the new status into the document ($set, not replace).
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	res, err := r.db.Collection(collectionOrders).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes order queries rely on.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetSparse(true)},
	}

	_, err := r.db.Collection(collectionOrders).Indexes().CreateMany(ctx, indexes)
	return err
}
