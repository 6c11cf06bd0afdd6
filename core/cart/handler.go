package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/goshop/api/web"
	"github.com/irsalhamdi/goshop/api/weberr"
	"github.com/irsalhamdi/goshop/core/coupon"
	"github.com/irsalhamdi/goshop/core/product"
	"github.com/irsalhamdi/goshop/database"
	"github.com/irsalhamdi/goshop/validate"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ItemNew struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=20"`
	Override  bool   `json:"override"`
}

type Detail struct {
	Items              []Item          `json:"items"`
	Len                int             `json:"len"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	Coupon             *coupon.Coupon  `json:"coupon"`
	Discount           decimal.Decimal `json:"discount"`
	PriceAfterDiscount decimal.Decimal `json:"priceAfterDiscount"`
}

func detail(ctx context.Context, c *Cart) (Detail, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return Detail{}, fmt.Errorf("listing cart items: %w", err)
	}

	cp := c.Coupon(ctx)

	return Detail{
		Items:              items,
		Len:                c.Len(),
		TotalPrice:         c.TotalPrice(),
		Coupon:             cp,
		Discount:           c.discount(cp),
		PriceAfterDiscount: c.priceAfter(cp),
	}, nil
}

func HandleShow(db *sqlx.DB, sess *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	store := NewStore(db)

	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		d, err := detail(ctx, New(ctx, sess, store, log))
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, d, http.StatusOK)
	}
}

func HandleCreateItem(db *sqlx.DB, sess *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	store := NewStore(db)

	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err),
				weberr.WithFields(map[string]interface{}{"payload": in}))
		}

		if err := validate.CheckID(in.ProductID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed product id is not valid: %w", err))
		}

		p, err := product.Fetch(ctx, db, in.ProductID)
		if err != nil {
			if errors.Is(err, database.ErrDBNotFound) {
				return weberr.NotFound(fmt.Errorf("product[%s] not found: %w", in.ProductID, err))
			}
			return fmt.Errorf("fetching product[%s]: %w", in.ProductID, err)
		}

		c := New(ctx, sess, store, log)
		c.Add(ctx, p, in.Quantity, in.Override)

		d, err := detail(ctx, c)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, d, http.StatusOK)
	}
}

func HandleDeleteItem(db *sqlx.DB, sess *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	store := NewStore(db)

	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "product_id")

		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed product id is not valid: %w", err))
		}

		New(ctx, sess, store, log).Remove(ctx, id)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleDelete(db *sqlx.DB, sess *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	store := NewStore(db)

	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		New(ctx, sess, store, log).Clear(ctx)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
