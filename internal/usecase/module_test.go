package usecase

import (
	"testing"

	"github.com/polkiloo/quickmart/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{AdminEmails: []string{"a@b.c"}, ConcealForbiddenOrders: true}

	if got := newAuthOptions(cfg); len(got.AdminEmails) != 1 || got.AdminEmails[0] != "a@b.c" {
		t.Fatalf("unexpected auth options: %+v", got)
	}
	if got := newOrderOptions(cfg); !got.ConcealForbidden {
		t.Fatalf("unexpected order options: %+v", got)
	}
}
