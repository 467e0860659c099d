package services

import (
	"errors"
	"fmt"
)

// Sentinel errors of the wallet/order engine. Controllers map these to
// HTTP statuses; none of them carries internal reference formats.
var (
	// ErrBundleNotFound is returned when a bundle is absent or inactive.
	ErrBundleNotFound = errors.New("bundle not found or inactive")

	// ErrWalletNotFound is returned for an unknown wallet id.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	// The wallet is left untouched.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrIntentNotFound is returned for an unknown gateway reference.
	ErrIntentNotFound = errors.New("deposit intent not found")

	// ErrIntentExpired is returned for an intent the sweep already
	// expired. The gateway is no longer consulted for it.
	ErrIntentExpired = errors.New("deposit intent expired")

	// ErrDepositFailed is the terminal gateway outcome. The ledger is
	// never touched for a failed deposit.
	ErrDepositFailed = errors.New("payment failed at gateway")

	// ErrNotYetConfirmed means the gateway has not settled the payment
	// yet. Callers retry with backoff; this is expected during polling.
	ErrNotYetConfirmed = errors.New("payment not yet confirmed")

	// ErrGatewayUnavailable marks a transient gateway error. Safe to
	// retry; it never results in a credit on its own.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayDisabled is returned when deposits are switched off in
	// configuration.
	ErrGatewayDisabled = errors.New("payment gateway is disabled")
)

// ValidationError signals bad input rejected before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
