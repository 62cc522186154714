package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

type customerDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Password   string             `bson:"password"`
	TotalSpent money              `bson:"TotalSpent"`
}

func (d customerDocument) model() models.Customer {
	return models.Customer{Name: d.Name, Password: d.Password, TotalSpent: d.TotalSpent.dec()}
}

// MongoCustomers implements CustomerRepository on the "Customers" collection.
type MongoCustomers struct {
	col   *mongo.Collection
	match models.NameMatch
}

func NewMongoCustomers(db *mongo.Database, match models.NameMatch) *MongoCustomers {
	return &MongoCustomers{col: db.Collection(CustomersCollection), match: match}
}

func (r *MongoCustomers) FindAll(ctx context.Context) (_ []models.Customer, err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "find_all", time.Now(), &err)

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("MongoCustomers.FindAll: %w", err)
	}
	var docs []customerDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoCustomers.FindAll: %w", err)
	}

	return collection.Map(docs, customerDocument.model), nil
}

func (r *MongoCustomers) FindByName(ctx context.Context, name string) (_ models.Customer, err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "find_by_name", time.Now(), &err)

	var doc customerDocument
	if err = r.col.FindOne(ctx, nameFilter("name", name, r.match)).Decode(&doc); err != nil {
		return models.Customer{}, fmt.Errorf("MongoCustomers.FindByName: %w", mongoErr(err))
	}
	return doc.model(), nil
}

func (r *MongoCustomers) Insert(ctx context.Context, c models.Customer) (err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "insert", time.Now(), &err)

	doc := customerDocument{Name: c.Name, Password: c.Password, TotalSpent: money(c.TotalSpent)}
	if _, err = r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("MongoCustomers.Insert: %w", mongoErr(err))
	}
	return nil
}

func (r *MongoCustomers) AddSpend(ctx context.Context, name string, amount decimal.Decimal) (_ decimal.Decimal, err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "add_spend", time.Now(), &err)

	inc, err := primitive.ParseDecimal128(amount.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("MongoCustomers.AddSpend: %w", err)
	}

	var doc customerDocument
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$inc": bson.M{"TotalSpent": inc}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("MongoCustomers.AddSpend: %w", err)
	}
	return doc.TotalSpent.dec(), nil
}
