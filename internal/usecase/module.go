package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/quickmart/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthOptions,
	newOrderOptions,
	NewAuthUseCase,
	NewOrderUseCase,
)

func newAuthOptions(cfg *config.Config) AuthOptions {
	return AuthOptions{AdminEmails: cfg.AdminEmails}
}

func newOrderOptions(cfg *config.Config) OrderOptions {
	return OrderOptions{ConcealForbidden: cfg.ConcealForbiddenOrders}
}
