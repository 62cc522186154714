package services

import "github.com/shopspring/decimal"

// Tier is a customer's membership level, derived from total spend.
type Tier int

const (
	TierRegular Tier = iota
	TierBronze
	TierSilver
	TierGold
)

var (
	bronzeFrom = decimal.NewFromInt(150)
	silverFrom = decimal.NewFromInt(200)
	goldFrom   = decimal.NewFromInt(500)
)

// TierFor maps spend to a tier. Lower bounds are inclusive.
func TierFor(spent decimal.Decimal) Tier {
	switch {
	case spent.GreaterThanOrEqual(goldFrom):
		return TierGold
	case spent.GreaterThanOrEqual(silverFrom):
		return TierSilver
	case spent.GreaterThanOrEqual(bronzeFrom):
		return TierBronze
	default:
		return TierRegular
	}
}

func (t Tier) String() string {
	switch t {
	case TierGold:
		return "Gold Member!"
	case TierSilver:
		return "Silver Member!"
	case TierBronze:
		return "Bronze Member!"
	default:
		return "Regular Member!"
	}
}
