package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

type cartItemDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName string             `bson:"CustomerName"`
	ProductName  string             `bson:"ProductName"`
	Quantity     int                `bson:"Quantity"`
	Price        money              `bson:"Price"`
}

func (d cartItemDocument) model() models.CartItem {
	return models.CartItem{
		CustomerName: d.CustomerName,
		ProductName:  d.ProductName,
		Quantity:     d.Quantity,
		Price:        d.Price.dec(),
	}
}

// MongoCarts implements CartRepository on the "CartItems" collection.
type MongoCarts struct {
	col *mongo.Collection
}

func NewMongoCarts(db *mongo.Database) *MongoCarts {
	return &MongoCarts{col: db.Collection(CartItemsCollection)}
}

func (r *MongoCarts) FindByCustomer(ctx context.Context, customer string) (_ []models.CartItem, err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "find_by_customer", time.Now(), &err)

	cur, err := r.col.Find(ctx,
		bson.M{"CustomerName": customer},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("MongoCarts.FindByCustomer: %w", err)
	}
	var docs []cartItemDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoCarts.FindByCustomer: %w", err)
	}

	return collection.Map(docs, cartItemDocument.model), nil
}

func (r *MongoCarts) Insert(ctx context.Context, item models.CartItem) (err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "insert", time.Now(), &err)

	doc := cartItemDocument{
		CustomerName: item.CustomerName,
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		Price:        money(item.Price),
	}
	if _, err = r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("MongoCarts.Insert: %w", mongoErr(err))
	}
	return nil
}

func (r *MongoCarts) Update(ctx context.Context, item models.CartItem) (err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "update", time.Now(), &err)

	res, err := r.col.UpdateOne(ctx,
		bson.M{"CustomerName": item.CustomerName, "ProductName": item.ProductName},
		bson.M{"$set": bson.M{"Quantity": item.Quantity}},
	)
	if err != nil {
		return fmt.Errorf("MongoCarts.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		err = ErrNotFound
		return fmt.Errorf("MongoCarts.Update: %w", err)
	}
	return nil
}

func (r *MongoCarts) DeleteAllForCustomer(ctx context.Context, customer string) (_ int64, err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "delete_all", time.Now(), &err)

	res, err := r.col.DeleteMany(ctx, bson.M{"CustomerName": customer})
	if err != nil {
		return 0, fmt.Errorf("MongoCarts.DeleteAllForCustomer: %w", err)
	}
	return res.DeletedCount, nil
}
