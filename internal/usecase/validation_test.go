package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
)

func TestParsePaymentStatus(t *testing.T) {
	cases := map[string]model.PaymentStatus{
		"pending": model.PaymentStatusPending,
		"Pending": model.PaymentStatusPending,
		"PAID":    model.PaymentStatusPaid,
		" Failed": model.PaymentStatusFailed,
	}
	for raw, want := range cases {
		got, err := ParsePaymentStatus(raw)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s err=%v", raw, want, got, err)
		}
	}

	for _, raw := range []string{"", "refunded"} {
		if _, err := ParsePaymentStatus(raw); !errors.Is(err, domainErrors.ErrMalformedUpdate) {
			t.Fatalf("%q: expected malformed update, got %v", raw, err)
		}
	}
}

func TestParseFulfillmentStatus(t *testing.T) {
	got, err := ParseFulfillmentStatus("  On The Way ")
	if err != nil || got != model.LegacyStatusOnTheWay {
		t.Fatalf("unexpected result %q err=%v", got, err)
	}

	got, err = ParseFulfillmentStatus("Processing")
	if err != nil || got != "Processing" {
		t.Fatalf("expected unknown label to be kept, got %q err=%v", got, err)
	}

	for _, raw := range []string{"", "   ", strings.Repeat("x", maxStatusLabelLength+1)} {
		if _, err := ParseFulfillmentStatus(raw); !errors.Is(err, domainErrors.ErrMalformedUpdate) {
			t.Fatalf("expected malformed update, got %v", err)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"  Ram  ":              "Ram",
		"<b>Ram</b> Bahadur":   "Ram Bahadur",
		"Tom & Jerry":          "Tom & Jerry",
		"<a href='x'>link</a>": "link",
	}
	for raw, want := range cases {
		if got := sanitizeText(raw); got != want {
			t.Fatalf("%q: expected %q, got %q", raw, want, got)
		}
	}
}
