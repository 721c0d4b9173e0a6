package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/quickmart/internal/adapter/catalog"
	"github.com/polkiloo/quickmart/internal/app"
	"github.com/polkiloo/quickmart/internal/config"
	"github.com/polkiloo/quickmart/internal/logger"
	"github.com/polkiloo/quickmart/internal/pkg/auth"
	"github.com/polkiloo/quickmart/internal/server/http/handlers"
	"github.com/polkiloo/quickmart/internal/server/http/router"
	"github.com/polkiloo/quickmart/internal/storage/postgres"
	"github.com/polkiloo/quickmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		catalog.Module,
		usecase.Module,
		fx.Provide(func(f *app.QuickmartFacade) handlers.QuickmartFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
