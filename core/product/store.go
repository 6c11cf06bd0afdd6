package product

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/goshop/database"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func Create(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	INSERT INTO products
		(product_id, name, slug, description, image_url, price, available, created_at, updated_at)
	VALUES
		(:product_id, :name, :slug, :description, :image_url, :price, :available, :created_at, :updated_at)`

	if err := database.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	in := struct {
		ID string `db:"product_id"`
	}{
		ID: id,
	}

	const q = `
	SELECT
		*
	FROM
		products
	WHERE
		product_id = :product_id`

	var p Product
	if err := database.NamedQueryStruct(ctx, db, q, in, &p); err != nil {
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}

	return p, nil
}

// FetchByIDs resolves every id in a single query. Unknown ids are simply
// absent from the result.
func FetchByIDs(ctx context.Context, db sqlx.ExtContext, ids []string) ([]Product, error) {
	in := map[string]any{
		"ids": pq.Array(ids),
	}

	const q = `
	SELECT
		*
	FROM
		products
	WHERE
		product_id = ANY(:ids)`

	products := []Product{}
	if err := database.NamedQuerySlice(ctx, db, q, in, &products); err != nil {
		return nil, fmt.Errorf("selecting %d products: %w", len(ids), err)
	}

	return products, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `
	SELECT
		*
	FROM
		products
	WHERE
		available = TRUE
	ORDER BY
		name`

	products := []Product{}
	if err := database.NamedQuerySlice(ctx, db, q, struct{}{}, &products); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return products, nil
}
