package models

import "github.com/shopspring/decimal"

// Customer is a registered shopper. Password holds whatever the configured
// credential verifier stores: the plain secret or a bcrypt hash.
type Customer struct {
	Name       string          `json:"name"`
	Password   string          `json:"-"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}
