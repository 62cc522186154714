package migrations

import (
	"gorm.io/gorm"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_customers_table", &CreateCustomersTable{})
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000002_create_cart_items_table", &CreateCartItemsTable{})
}

// -------- 0001: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&repositories.CustomerRow{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&repositories.CustomerRow{})
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&repositories.ProductRow{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&repositories.ProductRow{})
}

// -------- 0003: cart items --------

type CreateCartItemsTable struct{}

func (m *CreateCartItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&repositories.CartItemRow{})
}

func (m *CreateCartItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&repositories.CartItemRow{})
}
