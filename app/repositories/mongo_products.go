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

type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"Name"`
	PriceSEK money              `bson:"PriceSEK"`
	PriceEUR money              `bson:"PriceEUR"`
	PriceCHF money              `bson:"PriceCHF"`
	Quantity int                `bson:"Quantity"`
}

func (d productDocument) model() models.Product {
	return models.Product{
		Name:     d.Name,
		PriceSEK: d.PriceSEK.dec(),
		Quantity: d.Quantity,
	}.Priced()
}

func newProductDocument(p models.Product) productDocument {
	p = p.Priced()
	return productDocument{
		Name:     p.Name,
		PriceSEK: money(p.PriceSEK),
		PriceEUR: money(p.PriceEUR),
		PriceCHF: money(p.PriceCHF),
		Quantity: p.Quantity,
	}
}

// MongoProducts implements ProductRepository on the "Products" collection.
type MongoProducts struct {
	col   *mongo.Collection
	match models.NameMatch
}

func NewMongoProducts(db *mongo.Database, match models.NameMatch) *MongoProducts {
	return &MongoProducts{col: db.Collection(ProductsCollection), match: match}
}

func (r *MongoProducts) FindAll(ctx context.Context) (_ []models.Product, err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "find_all", time.Now(), &err)

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("MongoProducts.FindAll: %w", err)
	}
	var docs []productDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoProducts.FindAll: %w", err)
	}

	return collection.Map(docs, productDocument.model), nil
}

func (r *MongoProducts) FindByName(ctx context.Context, name string) (_ models.Product, err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "find_by_name", time.Now(), &err)

	var doc productDocument
	if err = r.col.FindOne(ctx, nameFilter("Name", name, r.match)).Decode(&doc); err != nil {
		return models.Product{}, fmt.Errorf("MongoProducts.FindByName: %w", mongoErr(err))
	}
	return doc.model(), nil
}

func (r *MongoProducts) Insert(ctx context.Context, p models.Product) (err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "insert", time.Now(), &err)

	if _, err = r.col.InsertOne(ctx, newProductDocument(p)); err != nil {
		return fmt.Errorf("MongoProducts.Insert: %w", mongoErr(err))
	}
	return nil
}

func (r *MongoProducts) Update(ctx context.Context, p models.Product) (err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "update", time.Now(), &err)

	doc := newProductDocument(p)
	res, err := r.col.UpdateOne(ctx, nameFilter("Name", p.Name, r.match), bson.M{"$set": bson.M{
		"PriceSEK": doc.PriceSEK,
		"PriceEUR": doc.PriceEUR,
		"PriceCHF": doc.PriceCHF,
		"Quantity": doc.Quantity,
	}})
	if err != nil {
		return fmt.Errorf("MongoProducts.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		err = ErrNotFound
		return fmt.Errorf("MongoProducts.Update: %w", err)
	}
	return nil
}

func (r *MongoProducts) Delete(ctx context.Context, name string) (err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "delete", time.Now(), &err)

	res, err := r.col.DeleteOne(ctx, nameFilter("Name", name, r.match))
	if err != nil {
		return fmt.Errorf("MongoProducts.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		err = ErrNotFound
		return fmt.Errorf("MongoProducts.Delete: %w", err)
	}
	return nil
}
