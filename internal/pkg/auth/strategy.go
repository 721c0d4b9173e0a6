package auth

import (
	"time"

	"github.com/polkiloo/quickmart/internal/domain/model"
)

// Strategy issues and verifies tokens that carry the caller's principal.
type Strategy interface {
	IssueToken(principal model.Principal) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
