package services

import "errors"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrNotFound  = errors.New("event not found")       // 404
	ErrForbidden = errors.New("not the event creator") // 403
	ErrGuest     = errors.New("guests cannot create events")
)

// ValidationError marks malformed or out-of-range input (maps to 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
