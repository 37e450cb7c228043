package kalshi

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var centsPerDollar = decimal.NewFromInt(100)

func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerDollar)
}

// OrderCost is the worst-case cost in dollars of count contracts at priceCents.
func OrderCost(count, priceCents int) decimal.Decimal {
	return CentsToDollars(int64(priceCents)).Mul(decimal.NewFromInt(int64(count)))
}

func NewClientOrderID() string {
	return uuid.NewString()
}
