package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
)

// NewMongoStore returns a Store over the three collections of db.
func NewMongoStore(db *mongo.Database, match models.NameMatch) *Store {
	return &Store{
		Products:  NewMongoProducts(db, match),
		Customers: NewMongoCustomers(db, match),
		Carts:     NewMongoCarts(db),
	}
}

// EnsureIndexes creates the unique indexes backing each collection's key.
// It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, match models.NameMatch) error {
	const op = "repositories.EnsureIndexes"

	unique := func(name string) *options.IndexOptions {
		o := options.Index().SetUnique(true).SetName(name)
		if match == models.MatchInsensitive {
			o.SetCollation(&options.Collation{Locale: "en", Strength: 2})
		}
		return o
	}

	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{CustomersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: unique("name_unique"),
		}},
		{ProductsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "Name", Value: 1}},
			Options: unique("name_unique"),
		}},
		{CartItemsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "CustomerName", Value: 1}, {Key: "ProductName", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("customer_product_unique"),
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("%s: %s: %w", op, s.collection, err)
		}
	}
	return nil
}

// nameFilter matches field against name under the given policy. The
// insensitive form tolerates surrounding whitespace in stored names.
func nameFilter(field, name string, match models.NameMatch) bson.M {
	if match == models.MatchExact {
		return bson.M{field: name}
	}
	pattern := `^\s*` + regexp.QuoteMeta(strings.TrimSpace(name)) + `\s*$`
	return bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}}
}

func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// money stores decimals as Decimal128 and accepts the double, string and
// integer encodings older documents may carry.
type money decimal.Decimal

func (m money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(decimal.Decimal(m).String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d)
}

func (m *money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	var (
		d   decimal.Decimal
		err error
	)
	switch t {
	case bsontype.Decimal128:
		d, err = decimal.NewFromString(raw.Decimal128().String())
	case bsontype.Double:
		d = decimal.NewFromFloat(raw.Double())
	case bsontype.String:
		d, err = decimal.NewFromString(strings.TrimSpace(raw.StringValue()))
	case bsontype.Int32:
		d = decimal.NewFromInt32(raw.Int32())
	case bsontype.Int64:
		d = decimal.NewFromInt(raw.Int64())
	case bsontype.Null, bsontype.Undefined:
		d = decimal.Zero
	default:
		return fmt.Errorf("repositories: cannot decode %s as money", t)
	}
	if err != nil {
		return fmt.Errorf("repositories: decode money: %w", err)
	}
	*m = money(d)
	return nil
}

func (m money) dec() decimal.Decimal { return decimal.Decimal(m) }
