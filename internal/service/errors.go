package service

import "errors"

var (
	ErrBookingNotFound          = errors.New("booking not found")
	ErrNotBookingOwner          = errors.New("user is not the booking renter")
	ErrBookingNotModifiable     = errors.New("booking is not in a modifiable state")
	ErrInvalidDateRange         = errors.New("end date must be after start date")
	ErrPaymentMethodRequired    = errors.New("payment method is required for a supplement")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrInsufficientFunds        = errors.New("insufficient wallet balance")
	ErrInvalidCredentials       = errors.New("invalid email or password")
)
