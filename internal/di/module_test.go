package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/quickmart/internal/app"
	"github.com/polkiloo/quickmart/internal/config"
	"github.com/polkiloo/quickmart/internal/domain/repository"
	"github.com/polkiloo/quickmart/internal/storage/postgres"
	"github.com/polkiloo/quickmart/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		CatalogCacheTTL: time.Minute,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}

	var (
		facade *app.QuickmartFacade
		engine *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(userRepo, fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(orderRepo, fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(test.HealthCheckerStub{}, fx.As(new(repository.HealthChecker)))),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected quickmart facade instance")
	}
	if engine == nil {
		t.Fatal("expected router instance")
	}
}
