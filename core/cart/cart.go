// Package cart keeps a shopper's line items inside their session and
// prices them, applying the discount of an attached coupon.
//
// A Cart is a view over one request's session. It is built fresh for
// every request and never shared between goroutines.
package cart

import (
	"context"
	"encoding/gob"
	"time"

	"github.com/irsalhamdi/goshop/core/coupon"
	"github.com/irsalhamdi/goshop/core/product"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SessionKey holds the cart ledger inside the session.
const SessionKey = "cart"

var hundred = decimal.NewFromInt(100)

func init() {
	gob.Register([]Line{})
}

// Session is the part of the session manager the cart relies on.
// *scs.SessionManager satisfies it.
type Session interface {
	Get(ctx context.Context, key string) interface{}
	GetString(ctx context.Context, key string) string
	Put(ctx context.Context, key string, val interface{})
	Remove(ctx context.Context, key string)
}

// Store resolves the entities the ledger refers to. QueryCoupon returns a
// nil coupon when the id is unknown.
type Store interface {
	QueryProducts(ctx context.Context, ids []string) ([]product.Product, error)
	QueryCoupon(ctx context.Context, id string) (*coupon.Coupon, error)
}

// Line is what the session persists per product. The price is the one
// seen when the product was first added.
type Line struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

type Item struct {
	Product    product.Product `json:"product"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type Cart struct {
	sess     Session
	store    Store
	log      logrus.FieldLogger
	lines    []Line
	couponID string
}

// New loads the ledger from the session, writing an empty one back when
// the session has none yet.
func New(ctx context.Context, sess Session, store Store, log logrus.FieldLogger) *Cart {
	c := &Cart{
		sess:     sess,
		store:    store,
		log:      log,
		couponID: sess.GetString(ctx, coupon.SessionKey),
	}

	lines, ok := sess.Get(ctx, SessionKey).([]Line)
	if !ok {
		c.lines = []Line{}
		c.save(ctx)
		return c
	}

	c.lines = append([]Line{}, lines...)
	return c
}

// Add puts quantity of p into the cart. A product seen for the first time
// starts at zero. With override the quantity replaces the current one,
// otherwise it is added to it. The sign of quantity is not checked.
func (c *Cart) Add(ctx context.Context, p product.Product, quantity int, override bool) {
	i := c.index(p.ID)
	if i < 0 {
		c.lines = append(c.lines, Line{ProductID: p.ID, Price: p.Price})
		i = len(c.lines) - 1
	}

	if override {
		c.lines[i].Quantity = quantity
	} else {
		c.lines[i].Quantity += quantity
	}

	c.save(ctx)
}

func (c *Cart) Remove(ctx context.Context, productID string) {
	i := c.index(productID)
	if i < 0 {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.save(ctx)
}

// Items resolves every line's product with one batch query and returns
// the priced items in the order they were first added. Lines whose
// product no longer exists are left out and logged; the ledger keeps
// them.
func (c *Cart) Items(ctx context.Context) ([]Item, error) {
	items := make([]Item, 0, len(c.lines))
	if len(c.lines) == 0 {
		return items, nil
	}

	ids := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		ids = append(ids, l.ProductID)
	}

	products, err := c.store.QueryProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, l := range c.lines {
		p, ok := byID[l.ProductID]
		if !ok {
			c.log.WithField("product_id", l.ProductID).Warn("cart line refers to a missing product")
			continue
		}

		items = append(items, Item{
			Product:    p,
			Quantity:   l.Quantity,
			Price:      l.Price,
			TotalPrice: l.total(),
		})
	}

	return items, nil
}

// Lines returns a copy of the raw ledger.
func (c *Cart) Lines() []Line {
	return append([]Line{}, c.lines...)
}

// Len is the number of units in the cart, not the number of lines.
func (c *Cart) Len() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	tot := decimal.Zero
	for _, l := range c.lines {
		tot = tot.Add(l.total())
	}
	return tot
}

// Clear drops the ledger from the session. The coupon stays attached.
func (c *Cart) Clear(ctx context.Context) {
	c.lines = []Line{}
	c.sess.Remove(ctx, SessionKey)
}

// Coupon returns the attached coupon when it exists and is usable right
// now. Any lookup failure counts as no coupon.
func (c *Cart) Coupon(ctx context.Context) *coupon.Coupon {
	if c.couponID == "" {
		return nil
	}

	cp, err := c.store.QueryCoupon(ctx, c.couponID)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"coupon_id": c.couponID,
			"message":   err,
		}).Warn("resolving attached coupon")
		return nil
	}

	if cp == nil || !cp.Valid(time.Now()) {
		return nil
	}

	return cp
}

func (c *Cart) Discount(ctx context.Context) decimal.Decimal {
	return c.discount(c.Coupon(ctx))
}

func (c *Cart) PriceAfterDiscount(ctx context.Context) decimal.Decimal {
	return c.priceAfter(c.Coupon(ctx))
}

// discount and priceAfter price the cart against an already resolved
// coupon, so callers needing both see the same one.
func (c *Cart) discount(cp *coupon.Coupon) decimal.Decimal {
	if cp == nil {
		return decimal.Zero
	}

	return cp.Discount.Div(hundred).Mul(c.TotalPrice())
}

func (c *Cart) priceAfter(cp *coupon.Coupon) decimal.Decimal {
	return c.TotalPrice().Sub(c.discount(cp))
}

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) save(ctx context.Context) {
	c.sess.Put(ctx, SessionKey, append([]Line{}, c.lines...))
}

func (l Line) total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
