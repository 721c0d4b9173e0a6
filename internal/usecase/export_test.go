package usecase

import "time"

// Test-only bridges for the external usecase_test package, which cannot
// live in package usecase because internal/test imports usecase.

var (
	NormalizeNow = normalizeNow
	Str          = str
	ValidInput   = validInput
)

func SetNow(uc *OrderUseCase, now func() time.Time) { uc.now = now }
