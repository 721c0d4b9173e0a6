package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/polkiloo/quickmart/internal/domain/model"
	"github.com/polkiloo/quickmart/internal/domain/repository"
)

type cachedProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CachedCatalog is a read-through cache in front of another catalog.
// Cache failures are logged and treated as misses. Absent products are not cached.
type CachedCatalog struct {
	next   repository.CatalogRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalog wraps next with cache.
func NewCachedCatalog(next repository.CatalogRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) Lookup(ctx context.Context, refs []string) (map[string]model.Product, error) {
	result := make(map[string]model.Product, len(refs))
	missing := make([]string, 0, len(refs))
	for _, ref := range refs {
		if p, ok := c.get(ctx, ref); ok {
			result[ref] = p
			continue
		}
		missing = append(missing, ref)
	}
	if len(missing) == 0 {
		return result, nil
	}

	found, err := c.next.Lookup(ctx, missing)
	if err != nil {
		return nil, err
	}
	for ref, p := range found {
		result[ref] = p
		c.put(ctx, p)
	}
	return result, nil
}

func (c *CachedCatalog) get(ctx context.Context, ref string) (model.Product, bool) {
	raw, err := c.cache.Get(ctx, c.cache.GenerateKey(ref))
	if err != nil {
		c.logger.Warn("catalog cache read failed", slog.String("product", ref), slog.Any("error", err))
		return model.Product{}, false
	}
	if raw == "" {
		return model.Product{}, false
	}
	var cp cachedProduct
	if err := json.Unmarshal([]byte(raw), &cp); err != nil {
		c.logger.Warn("catalog cache entry corrupted", slog.String("product", ref), slog.Any("error", err))
		return model.Product{}, false
	}
	return model.Product{Ref: ref, Name: cp.Name, Price: cp.Price, Image: cp.Image}, true
}

func (c *CachedCatalog) put(ctx context.Context, p model.Product) {
	raw, err := json.Marshal(cachedProduct{Name: p.Name, Price: p.Price, Image: p.Image})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cache.GenerateKey(p.Ref), string(raw), c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", slog.String("product", p.Ref), slog.Any("error", err))
	}
}
