package coupon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/goshop/database"
	"github.com/jmoiron/sqlx"
)

type Session interface {
	Put(ctx context.Context, key string, val interface{})
}

// Finder looks up a coupon usable at now. A nil coupon with a nil error
// means nothing matched.
type Finder interface {
	FindActive(ctx context.Context, code string, now time.Time) (*Coupon, error)
}

type DBFinder struct {
	DB sqlx.ExtContext
}

func (f DBFinder) FindActive(ctx context.Context, code string, now time.Time) (*Coupon, error) {
	c, err := FetchActiveByCode(ctx, f.DB, code, now)
	if err != nil {
		if errors.Is(err, database.ErrDBNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Apply attaches the coupon matching code to the session, or clears the
// attachment when nothing matches. The session is left untouched when
// the lookup itself fails.
func Apply(ctx context.Context, sess Session, f Finder, code string, now time.Time) (*Coupon, error) {
	c, err := f.FindActive(ctx, code, now)
	if err != nil {
		return nil, fmt.Errorf("looking up coupon: %w", err)
	}

	if c == nil {
		sess.Put(ctx, SessionKey, "")
		return nil, nil
	}

	sess.Put(ctx, SessionKey, c.ID)
	return c, nil
}
