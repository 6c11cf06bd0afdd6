// Admin runs maintenance tasks against the shop database.
//
//	admin migrate
//	admin product <name> <price>
//	admin coupon <discount> <days> [code]
//	admin seed <name> <price> <discount> <days>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/goshop/config"
	"github.com/irsalhamdi/goshop/core/coupon"
	"github.com/irsalhamdi/goshop/core/product"
	"github.com/irsalhamdi/goshop/database"
	"github.com/irsalhamdi/goshop/random"
	"github.com/irsalhamdi/goshop/validate"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var errUsage = errors.New("usage: admin migrate | product <name> <price> | coupon <discount> <days> [code] | seed <name> <price> <discount> <days>")

type adminConfig struct {
	Args conf.Args
	DB   config.DB
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	const prefix = "GOSHOP"
	var cfg adminConfig
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Args.Num(0) {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migrations complete")

	case "product":
		p, err := addProduct(ctx, db, cfg.Args.Num(1), cfg.Args.Num(2))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"product_id": p.ID, "price": p.Price}).Info("product created")

	case "coupon":
		c, err := addCoupon(ctx, db, cfg.Args.Num(1), cfg.Args.Num(2), cfg.Args.Num(3))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"coupon_id": c.ID,
			"code":      c.Code,
			"discount":  c.Discount,
			"valid_to":  c.ValidTo,
		}).Info("coupon created")

	case "seed":
		p, c, err := seed(ctx, db, cfg.Args.Num(1), cfg.Args.Num(2), cfg.Args.Num(3), cfg.Args.Num(4))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"product_id": p.ID,
			"coupon_id":  c.ID,
			"code":       c.Code,
		}).Info("product and coupon created")

	default:
		return errUsage
	}

	return nil
}

func addProduct(ctx context.Context, db sqlx.ExtContext, name string, price string) (product.Product, error) {
	p, err := newProduct(name, price, time.Now().UTC())
	if err != nil {
		return product.Product{}, err
	}

	if err := product.Create(ctx, db, p); err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func addCoupon(ctx context.Context, db sqlx.ExtContext, discount string, days string, code string) (coupon.Coupon, error) {
	c, err := newCoupon(discount, days, code, time.Now().UTC())
	if err != nil {
		return coupon.Coupon{}, err
	}

	if err := coupon.Create(ctx, db, c); err != nil {
		return coupon.Coupon{}, err
	}

	return c, nil
}

// seed creates a product and a coupon in one transaction, so a bad
// coupon leaves no orphan product behind.
func seed(ctx context.Context, db *sqlx.DB, name, price, discount, days string) (product.Product, coupon.Coupon, error) {
	var p product.Product
	var c coupon.Coupon

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		var err error
		if p, err = addProduct(ctx, tx, name, price); err != nil {
			return fmt.Errorf("creating product: %w", err)
		}
		if c, err = addCoupon(ctx, tx, discount, days, ""); err != nil {
			return fmt.Errorf("creating coupon: %w", err)
		}
		return nil
	})
	if err != nil {
		return product.Product{}, coupon.Coupon{}, err
	}

	return p, c, nil
}

func newProduct(name string, price string, now time.Time) (product.Product, error) {
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return product.Product{}, fmt.Errorf("parsing price %q: %w", price, err)
	}
	if amount.IsNegative() {
		return product.Product{}, fmt.Errorf("price %s is negative", amount)
	}

	in := product.ProductNew{
		Name:  name,
		Slug:  strings.ToLower(strings.Join(strings.Fields(name), "-")),
		Price: amount,
	}
	if err := validate.Check(in); err != nil {
		return product.Product{}, fmt.Errorf("validating product: %w", err)
	}

	return product.Product{
		ID:          validate.GenerateID(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// newCoupon builds a coupon valid from now for the given number of days.
// An empty code gets a random one.
func newCoupon(discount string, days string, code string, now time.Time) (coupon.Coupon, error) {
	pct, err := decimal.NewFromString(discount)
	if err != nil {
		return coupon.Coupon{}, fmt.Errorf("parsing discount %q: %w", discount, err)
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return coupon.Coupon{}, fmt.Errorf("discount %s is not within [0, 100]", pct)
	}

	n, err := strconv.Atoi(days)
	if err != nil || n <= 0 {
		return coupon.Coupon{}, fmt.Errorf("days %q is not a positive number", days)
	}

	if code == "" {
		if code, err = random.Code(10); err != nil {
			return coupon.Coupon{}, fmt.Errorf("generating code: %w", err)
		}
	}

	if err := validate.Check(coupon.CouponApply{Code: code}); err != nil {
		return coupon.Coupon{}, fmt.Errorf("validating code: %w", err)
	}

	return coupon.Coupon{
		ID:        validate.GenerateID(),
		Code:      code,
		ValidFrom: now,
		ValidTo:   now.AddDate(0, 0, n),
		Discount:  pct,
		Active:    true,
		CreatedAt: now,
	}, nil
}
