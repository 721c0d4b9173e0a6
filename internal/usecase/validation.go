package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
)

const maxStatusLabelLength = 64

var paymentMethodAliases = map[string]model.PaymentMethod{
	"cash_on_delivery": model.PaymentMethodCashOnDelivery,
	"cod":              model.PaymentMethodCashOnDelivery,
	"mobile_wallet":    model.PaymentMethodMobileWallet,
	"khalti":           model.PaymentMethodMobileWallet,
	"credit_card":      model.PaymentMethodCreditCard,
	"debit_card":       model.PaymentMethodDebitCard,
}

var paymentStatusAliases = map[string]model.PaymentStatus{
	"pending": model.PaymentStatusPending,
	"paid":    model.PaymentStatusPaid,
	"failed":  model.PaymentStatusFailed,
}

// vocabularyKey folds "Cash on Delivery", "cash-on-delivery" and "cash_on_delivery" together.
func vocabularyKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	return key
}

// ParsePaymentMethod accepts both label vocabularies. An empty value selects cash on delivery.
func ParsePaymentMethod(raw string) (model.PaymentMethod, error) {
	if strings.TrimSpace(raw) == "" {
		return model.PaymentMethodCashOnDelivery, nil
	}
	if method, ok := paymentMethodAliases[vocabularyKey(raw)]; ok {
		return method, nil
	}
	return "", fmt.Errorf("%w: unsupported payment method %q", domainErrors.ErrMalformedOrder, raw)
}

// ParsePaymentStatus accepts pending, paid and failed in any letter case.
func ParsePaymentStatus(raw string) (model.PaymentStatus, error) {
	if status, ok := paymentStatusAliases[vocabularyKey(raw)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: unsupported payment status %q", domainErrors.ErrMalformedUpdate, raw)
}

// ParseFulfillmentStatus accepts any non-empty label. Unknown labels are kept as supplied
// and map to the initial progress.
func ParseFulfillmentStatus(raw string) (model.FulfillmentStatus, error) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return "", fmt.Errorf("%w: order status is empty", domainErrors.ErrMalformedUpdate)
	}
	if len(label) > maxStatusLabelLength {
		return "", fmt.Errorf("%w: order status is too long", domainErrors.ErrMalformedUpdate)
	}
	return model.FulfillmentStatus(label), nil
}
