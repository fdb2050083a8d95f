package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when an operation needs at least one cart line.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrEmptyWishlist is returned when sharing a wishlist with no products.
	ErrEmptyWishlist = errors.New("wishlist is empty")
)

// ValidationError carries a message that is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given user-facing message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ValidationMessage returns the user-facing message when err is a ValidationError.
func ValidationMessage(err error) (string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}
