package catalog

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/quickmart/internal/config"
	"github.com/polkiloo/quickmart/internal/domain/repository"
)

const cacheNamespace = "quickmart"

// Module replaces the storage-backed catalog with the remote service and the
// Redis cache when they are configured.
var Module = fx.Decorate(decorateCatalog)

type catalogParams struct {
	fx.In

	Base      repository.CatalogRepository
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func decorateCatalog(p catalogParams) (repository.CatalogRepository, error) {
	catalog := p.Base
	if p.Config.CatalogServiceAddress != "" {
		client, err := NewHTTPClient(p.Config.CatalogServiceAddress, p.Logger)
		if err != nil {
			return nil, err
		}
		catalog = client
	}

	if p.Config.CatalogCacheAddress != "" {
		cache := NewRedisCache(p.Config.CatalogCacheAddress, cacheNamespace)
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return cache.Close()
			},
		})
		catalog = NewCachedCatalog(catalog, cache, p.Config.CatalogCacheTTL, p.Logger)
	}

	return catalog, nil
}
