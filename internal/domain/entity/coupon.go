package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon cupón de descuento de monto fijo.
type Coupon struct {
	ID             string
	Code           string
	DiscountAmount decimal.Decimal
	MinOrderValue  decimal.Decimal
	ExpiryDate     *time.Time
}

// IsExpired indica si el cupón venció en la fecha dada.
func (c *Coupon) IsExpired(at time.Time) bool {
	return c.ExpiryDate != nil && at.After(*c.ExpiryDate)
}
