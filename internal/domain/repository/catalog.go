package repository

import (
	"context"

	"github.com/polkiloo/quickmart/internal/domain/model"
)

// CatalogRepository resolves product references. Unknown references are absent from the result.
type CatalogRepository interface {
	Lookup(ctx context.Context, refs []string) (map[string]model.Product, error)
}
