package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/database"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.OpenSQL("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseSQL(db) })

	require.NoError(t, db.AutoMigrate(&CustomerRow{}, &ProductRow{}, &CartItemRow{}))
	return NewSQLStore(db, models.MatchInsensitive)
}

func TestSQLStore(t *testing.T) {
	t.Run("products", func(t *testing.T) { testProducts(t, newSQLiteStore(t).Products) })
	t.Run("customers", func(t *testing.T) { testCustomers(t, newSQLiteStore(t).Customers) })
	t.Run("carts", func(t *testing.T) { testCarts(t, newSQLiteStore(t).Carts) })
}

func TestSQLErr_TranslatesRecordNotFound(t *testing.T) {
	require.ErrorIs(t, sqlErr(gorm.ErrRecordNotFound), ErrNotFound)
}
