package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrDeliveryFailed  = errors.New("delivery failed")
	ErrNoActiveCode    = errors.New("no active code")
	ErrCodeExpired     = errors.New("code expired")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrInvalidCode     = errors.New("invalid code")
)

// InvalidCodeError is returned on an OTP mismatch. It carries the number of
// attempts left before the next call hits the lockout.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("Invalid OTP. %d attempt(s) remaining.", e.Remaining)
}

// Is lets errors.Is(err, ErrInvalidCode) match mismatch errors.
func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

// ValidationError carries a user-facing message for rejected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is lets errors.Is(err, ErrValidation) match validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UserMessage maps an error to the string shown to end users. Internal
// detail never crosses this boundary; unknown errors collapse into a
// generic retry message.
func UserMessage(err error) string {
	var ic *InvalidCodeError
	if errors.As(err, &ic) {
		return ic.Error()
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, ErrNoActiveCode):
		return "No OTP found. Please request a new one."
	case errors.Is(err, ErrCodeExpired):
		return "OTP has expired. Please request a new one."
	case errors.Is(err, ErrTooManyAttempts):
		return "Too many failed attempts. Please request a new OTP."
	case errors.Is(err, ErrDeliveryFailed):
		return "Failed to send OTP. Please try again."
	case errors.Is(err, ErrNotFound):
		return "User not found"
	default:
		return "Something went wrong. Please try again."
	}
}
