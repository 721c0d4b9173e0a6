package postgres

import (
	"context"

	"github.com/polkiloo/quickmart/internal/domain/model"
)

type catalogRepository struct {
	storage *Storage
}

func (r *catalogRepository) Lookup(ctx context.Context, refs []string) (map[string]model.Product, error) {
	result := make(map[string]model.Product, len(refs))
	if len(refs) == 0 {
		return result, nil
	}

	rows, err := r.storage.pool.Query(ctx, `SELECT id, name, price, image_url FROM products WHERE id = ANY($1)`, refs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.Ref, &p.Name, &p.Price, &p.Image); err != nil {
			return nil, err
		}
		result[p.Ref] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

