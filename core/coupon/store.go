package coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/goshop/database"
	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Coupon) error {
	const q = `
	INSERT INTO coupons
		(coupon_id, code, valid_from, valid_to, discount, active, created_at)
	VALUES
		(:coupon_id, :code, :valid_from, :valid_to, :discount, :active, :created_at)`

	if err := database.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting coupon: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Coupon, error) {
	in := struct {
		ID string `db:"coupon_id"`
	}{
		ID: id,
	}

	const q = `
	SELECT
		*
	FROM
		coupons
	WHERE
		coupon_id = :coupon_id`

	var c Coupon
	if err := database.NamedQueryStruct(ctx, db, q, in, &c); err != nil {
		return Coupon{}, fmt.Errorf("selecting coupon[%s]: %w", id, err)
	}

	return c, nil
}

// FetchActiveByCode matches code case-insensitively against coupons that
// are active and whose window contains now.
func FetchActiveByCode(ctx context.Context, db sqlx.ExtContext, code string, now time.Time) (Coupon, error) {
	in := struct {
		Code string    `db:"code"`
		Now  time.Time `db:"now"`
	}{
		Code: code,
		Now:  now,
	}

	const q = `
	SELECT
		*
	FROM
		coupons
	WHERE
		lower(code) = lower(:code) AND
		valid_from <= :now AND
		valid_to >= :now AND
		active = TRUE`

	var c Coupon
	if err := database.NamedQueryStruct(ctx, db, q, in, &c); err != nil {
		return Coupon{}, fmt.Errorf("selecting active coupon by code: %w", err)
	}

	return c, nil
}
