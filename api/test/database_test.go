package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/irsalhamdi/goshop/core/coupon"
	"github.com/irsalhamdi/goshop/core/product"
	"github.com/irsalhamdi/goshop/database"
	"github.com/irsalhamdi/goshop/validate"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func TestTransaction(t *testing.T) {
	env, err := NewTestEnv(t, "transaction_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	newProduct := func(slug string) product.Product {
		return product.Product{
			ID:        validate.GenerateID(),
			Name:      slug,
			Slug:      slug,
			Price:     decimal.RequireFromString("3.00"),
			Available: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	committed := newProduct("committed")
	c := coupon.Coupon{
		ID:        validate.GenerateID(),
		Code:      "TOGETHER",
		ValidFrom: now,
		ValidTo:   now.Add(time.Hour),
		Discount:  decimal.NewFromInt(5),
		Active:    true,
		CreatedAt: now,
	}
	err = database.Transaction(env.DB, func(tx sqlx.ExtContext) error {
		if err := product.Create(ctx, tx, committed); err != nil {
			return err
		}
		return coupon.Create(ctx, tx, c)
	})
	if err != nil {
		t.Fatalf("committing: %v", err)
	}
	if _, err := product.Fetch(ctx, env.DB, committed.ID); err != nil {
		t.Fatalf("expected the committed product: %v", err)
	}
	if _, err := coupon.Fetch(ctx, env.DB, c.ID); err != nil {
		t.Fatalf("expected the committed coupon: %v", err)
	}

	rolled := newProduct("rolled-back")
	errAbort := errors.New("abort")
	err = database.Transaction(env.DB, func(tx sqlx.ExtContext) error {
		if err := product.Create(ctx, tx, rolled); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if _, err := product.Fetch(ctx, env.DB, rolled.ID); !errors.Is(err, database.ErrDBNotFound) {
		t.Fatalf("expected the product to be rolled back, got %v", err)
	}
}
