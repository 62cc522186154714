package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

// NewSQLStore returns a Store over the gorm tables. The schema comes from
// database/migrations.
func NewSQLStore(db *gorm.DB, match models.NameMatch) *Store {
	return &Store{
		Products:  &SQLProducts{db: db, match: match},
		Customers: &SQLCustomers{db: db, match: match},
		Carts:     &SQLCarts{db: db},
	}
}

// whereName scopes a query to column matching name under the policy.
func whereName(column string, name string, match models.NameMatch) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if match == models.MatchExact {
			return tx.Where(column+" = ?", name)
		}
		return tx.Where("LOWER(TRIM("+column+")) = ?", strings.ToLower(strings.TrimSpace(name)))
	}
}

func sqlErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// isUniqueViolation recognises constraint errors from drivers that gorm
// does not translate.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// SQLProducts implements ProductRepository.
type SQLProducts struct {
	db    *gorm.DB
	match models.NameMatch
}

func (r *SQLProducts) FindAll(ctx context.Context) (_ []models.Product, err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "find_all", time.Now(), &err)

	var rows []ProductRow
	if err = r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("SQLProducts.FindAll: %w", err)
	}
	return collection.Map(rows, productFromRow), nil
}

func (r *SQLProducts) FindByName(ctx context.Context, name string) (_ models.Product, err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "find_by_name", time.Now(), &err)

	var row ProductRow
	if err = r.db.WithContext(ctx).Scopes(whereName("name", name, r.match)).First(&row).Error; err != nil {
		return models.Product{}, fmt.Errorf("SQLProducts.FindByName: %w", sqlErr(err))
	}
	return productFromRow(row), nil
}

func (r *SQLProducts) Insert(ctx context.Context, p models.Product) (err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "insert", time.Now(), &err)

	// Unique indexes are case-sensitive on most dialects.
	var n int64
	if err = r.db.WithContext(ctx).Model(&ProductRow{}).Scopes(whereName("name", p.Name, r.match)).Count(&n).Error; err != nil {
		return fmt.Errorf("SQLProducts.Insert: %w", err)
	}
	if n > 0 {
		err = ErrDuplicate
		return fmt.Errorf("SQLProducts.Insert: %w", err)
	}

	row := productToRow(p)
	if err = r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("SQLProducts.Insert: %w", sqlErr(err))
	}
	return nil
}

func (r *SQLProducts) Update(ctx context.Context, p models.Product) (err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "update", time.Now(), &err)

	row := productToRow(p)
	res := r.db.WithContext(ctx).Model(&ProductRow{}).Scopes(whereName("name", p.Name, r.match)).
		Updates(map[string]interface{}{
			"price_sek": row.PriceSEK,
			"price_eur": row.PriceEUR,
			"price_chf": row.PriceCHF,
			"quantity":  row.Quantity,
		})
	if err = res.Error; err != nil {
		return fmt.Errorf("SQLProducts.Update: %w", err)
	}
	if res.RowsAffected == 0 {
		err = ErrNotFound
		return fmt.Errorf("SQLProducts.Update: %w", err)
	}
	return nil
}

func (r *SQLProducts) Delete(ctx context.Context, name string) (err error) {
	defer metrics.ObserveStoreOp(ProductsCollection, "delete", time.Now(), &err)

	res := r.db.WithContext(ctx).Scopes(whereName("name", name, r.match)).Delete(&ProductRow{})
	if err = res.Error; err != nil {
		return fmt.Errorf("SQLProducts.Delete: %w", err)
	}
	if res.RowsAffected == 0 {
		err = ErrNotFound
		return fmt.Errorf("SQLProducts.Delete: %w", err)
	}
	return nil
}

func productFromRow(row ProductRow) models.Product {
	return models.Product{Name: row.Name, PriceSEK: row.PriceSEK, Quantity: row.Quantity}.Priced()
}

func productToRow(p models.Product) ProductRow {
	p = p.Priced()
	return ProductRow{
		Name:     p.Name,
		PriceSEK: p.PriceSEK,
		PriceEUR: p.PriceEUR,
		PriceCHF: p.PriceCHF,
		Quantity: p.Quantity,
	}
}

// SQLCustomers implements CustomerRepository.
type SQLCustomers struct {
	db    *gorm.DB
	match models.NameMatch
}

func (r *SQLCustomers) FindAll(ctx context.Context) (_ []models.Customer, err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "find_all", time.Now(), &err)

	var rows []CustomerRow
	if err = r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("SQLCustomers.FindAll: %w", err)
	}
	return collection.Map(rows, customerFromRow), nil
}

func (r *SQLCustomers) FindByName(ctx context.Context, name string) (_ models.Customer, err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "find_by_name", time.Now(), &err)

	var row CustomerRow
	if err = r.db.WithContext(ctx).Scopes(whereName("name", name, r.match)).First(&row).Error; err != nil {
		return models.Customer{}, fmt.Errorf("SQLCustomers.FindByName: %w", sqlErr(err))
	}
	return customerFromRow(row), nil
}

func (r *SQLCustomers) Insert(ctx context.Context, c models.Customer) (err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "insert", time.Now(), &err)

	row := CustomerRow{Name: c.Name, Password: c.Password, TotalSpent: c.TotalSpent}
	if err = r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("SQLCustomers.Insert: %w", sqlErr(err))
	}
	return nil
}

func (r *SQLCustomers) AddSpend(ctx context.Context, name string, amount decimal.Decimal) (_ decimal.Decimal, err error) {
	defer metrics.ObserveStoreOp(CustomersCollection, "add_spend", time.Now(), &err)

	var total decimal.Decimal
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&CustomerRow{}).Where("name = ?", name).
			Update("total_spent", gorm.Expr("total_spent + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var row CustomerRow
		if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
			return err
		}
		total = row.TotalSpent.Round(2)
		return nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("SQLCustomers.AddSpend: %w", err)
	}
	return total, nil
}

// Numeric columns may come back as floats on sqlite.
func customerFromRow(row CustomerRow) models.Customer {
	return models.Customer{Name: row.Name, Password: row.Password, TotalSpent: row.TotalSpent.Round(2)}
}

// SQLCarts implements CartRepository.
type SQLCarts struct {
	db *gorm.DB
}

func (r *SQLCarts) FindByCustomer(ctx context.Context, customer string) (_ []models.CartItem, err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "find_by_customer", time.Now(), &err)

	var rows []CartItemRow
	if err = r.db.WithContext(ctx).Where("customer_name = ?", customer).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("SQLCarts.FindByCustomer: %w", err)
	}
	return collection.Map(rows, cartItemFromRow), nil
}

func cartItemFromRow(row CartItemRow) models.CartItem {
	return models.CartItem{
		CustomerName: row.CustomerName,
		ProductName:  row.ProductName,
		Quantity:     row.Quantity,
		Price:        row.Price.Round(2),
	}
}

func (r *SQLCarts) Insert(ctx context.Context, item models.CartItem) (err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "insert", time.Now(), &err)

	row := CartItemRow{
		CustomerName: item.CustomerName,
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		Price:        item.Price,
	}
	if err = r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("SQLCarts.Insert: %w", sqlErr(err))
	}
	return nil
}

func (r *SQLCarts) Update(ctx context.Context, item models.CartItem) (err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "update", time.Now(), &err)

	res := r.db.WithContext(ctx).Model(&CartItemRow{}).
		Where("customer_name = ? AND product_name = ?", item.CustomerName, item.ProductName).
		Update("quantity", item.Quantity)
	if err = res.Error; err != nil {
		return fmt.Errorf("SQLCarts.Update: %w", err)
	}
	if res.RowsAffected == 0 {
		err = ErrNotFound
		return fmt.Errorf("SQLCarts.Update: %w", err)
	}
	return nil
}

func (r *SQLCarts) DeleteAllForCustomer(ctx context.Context, customer string) (_ int64, err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "delete_all", time.Now(), &err)

	res := r.db.WithContext(ctx).Where("customer_name = ?", customer).Delete(&CartItemRow{})
	if err = res.Error; err != nil {
		return 0, fmt.Errorf("SQLCarts.DeleteAllForCustomer: %w", err)
	}
	return res.RowsAffected, nil
}
