package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionKey holds the id of the coupon attached to a session. An empty
// string means no coupon is attached.
const SessionKey = "coupon_id"

type Coupon struct {
	ID        string          `json:"id" db:"coupon_id"`
	Code      string          `json:"code" db:"code"`
	ValidFrom time.Time       `json:"validFrom" db:"valid_from"`
	ValidTo   time.Time       `json:"validTo" db:"valid_to"`
	Discount  decimal.Decimal `json:"discount" db:"discount"`
	Active    bool            `json:"active" db:"active"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Valid reports whether the coupon can be used at t. Both ends of the
// window are inclusive.
func (c Coupon) Valid(t time.Time) bool {
	return c.Active && !t.Before(c.ValidFrom) && !t.After(c.ValidTo)
}

type CouponApply struct {
	Code string `form:"code" validate:"required,max=50"`
}
