package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/database"
)

// newMongoDB connects to MONGO_TEST_URI and returns a throwaway database.
func newMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	m, err := database.ConnectMongo(ctx, uri, fmt.Sprintf("grocerystore_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, EnsureIndexes(ctx, m.DB, models.MatchInsensitive))

	t.Cleanup(func() {
		_ = m.DB.Drop(context.Background())
		_ = m.Close(context.Background())
	})
	return m.DB
}

func TestMongoStore(t *testing.T) {
	t.Run("products", func(t *testing.T) { testProducts(t, NewMongoProducts(newMongoDB(t), models.MatchInsensitive)) })
	t.Run("customers", func(t *testing.T) { testCustomers(t, NewMongoCustomers(newMongoDB(t), models.MatchInsensitive)) })
	t.Run("carts", func(t *testing.T) { testCarts(t, NewMongoCarts(newMongoDB(t))) })
}

func TestMoney_DecodesLegacyEncodings(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want string
	}{
		{"double", 12.5, "12.5"},
		{"string", "12.99", "12.99"},
		{"int32", int32(7), "7"},
		{"int64", int64(150), "150"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := bson.Marshal(bson.M{"name": "Sara", "password": "123", "TotalSpent": tc.raw})
			require.NoError(t, err)

			var doc customerDocument
			require.NoError(t, bson.Unmarshal(data, &doc))
			assertDecimal(t, tc.want, doc.TotalSpent.dec())
		})
	}
}

func TestMoney_EncodesDecimal128(t *testing.T) {
	data, err := bson.Marshal(newProductDocument(models.Product{Name: "Apple", PriceSEK: dec("12.99"), Quantity: 1}))
	require.NoError(t, err)

	var raw bson.Raw = data
	v := raw.Lookup("PriceSEK")
	d, ok := v.Decimal128OK()
	require.True(t, ok)
	assert.Equal(t, "12.99", d.String())
	assert.Equal(t, "1.21", raw.Lookup("PriceEUR").Decimal128().String())
}

func TestNameFilter(t *testing.T) {
	exact := nameFilter("Name", "Apple", models.MatchExact)
	assert.Equal(t, bson.M{"Name": "Apple"}, exact)

	insensitive := nameFilter("Name", " a.b ", models.MatchInsensitive)
	assert.Contains(t, fmt.Sprint(insensitive), `a\.b`)
}
