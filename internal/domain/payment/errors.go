package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when a payment or reference is unknown or retired.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrListingNotFound is returned when the target listing does not exist.
	ErrListingNotFound = errors.New("listing not found")

	// ErrForbidden is returned when the actor may not act on the payment or listing.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyPaid is returned when the target is already covered by a successful payment.
	ErrAlreadyPaid = errors.New("already paid")

	// ErrAlreadyFinalized is returned when initializing a payment that already succeeded.
	ErrAlreadyFinalized = errors.New("payment already finalized")

	// ErrInvalidTransition is returned for a status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConcurrentUpdate is returned when another writer changed the payment first.
	ErrConcurrentUpdate = errors.New("payment was modified concurrently")

	// ErrValidation is returned for bad input: unknown kind, boost days or amount.
	ErrValidation = errors.New("validation error")

	// ErrInvalidBoostDuration is returned for boost days outside the price table.
	ErrInvalidBoostDuration = errors.New("invalid boost duration")

	// ErrGatewayUnavailable is a transient gateway failure. Nothing changed; retry is safe.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected is a permanent gateway refusal of the request.
	ErrGatewayRejected = errors.New("payment gateway rejected request")

	// ErrInvalidSignature is returned for a webhook that fails signature validation.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrEffectApplication is returned when the listing mutation failed.
	// The payment stays pending so a later verify or webhook retries it.
	ErrEffectApplication = errors.New("payment effect could not be applied")
)
