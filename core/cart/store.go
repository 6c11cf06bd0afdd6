package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/irsalhamdi/goshop/core/coupon"
	"github.com/irsalhamdi/goshop/core/product"
	"github.com/irsalhamdi/goshop/database"
	"github.com/jmoiron/sqlx"
)

// DBStore resolves cart lines against the product and coupon tables.
type DBStore struct {
	db sqlx.ExtContext
}

func NewStore(db sqlx.ExtContext) DBStore {
	return DBStore{db: db}
}

func (s DBStore) QueryProducts(ctx context.Context, ids []string) ([]product.Product, error) {
	products, err := product.FetchByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching cart products: %w", err)
	}
	return products, nil
}

func (s DBStore) QueryCoupon(ctx context.Context, id string) (*coupon.Coupon, error) {
	c, err := coupon.Fetch(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, database.ErrDBNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching cart coupon: %w", err)
	}
	return &c, nil
}
