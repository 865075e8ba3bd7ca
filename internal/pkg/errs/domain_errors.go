package errs

import "errors"

// Domain-specific sentinel errors for the booking/offer usecase layers
var (
	// Slot / record store errors
	ErrSlotNotFound     = errors.New("slot not found")
	ErrStoreUnavailable = errors.New("record store unavailable")

	// Booking errors
	ErrNoActiveBooking = errors.New("no active booking")

	// Offer errors
	ErrOfferTooLow       = errors.New("offer does not exceed current price")
	ErrOfferExpired      = errors.New("offer expired")
	ErrNoPendingOffer    = errors.New("no pending offer")
	ErrResponderMismatch = errors.New("responder does not hold the active booking")

	// Payment errors
	ErrPaymentAuthorizationFailed = errors.New("payment authorization failed")
	ErrPaymentCaptureFailed       = errors.New("payment capture failed")

	// Notification errors
	ErrNotificationFailed = errors.New("ledger updated, notification failed")

	// Validation errors
	ErrInvalidLedger = errors.New("ledger validation failed")
)
