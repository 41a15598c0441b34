package lesson

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound means the lesson document does not exist.
	ErrNotFound = errors.New("lesson data not found")
	// ErrInvalid means the document could not be parsed or failed its checks.
	ErrInvalid = errors.New("lesson data invalid")
)

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is, or wraps, ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// invalidError keeps ErrInvalid in the chain while carrying the concrete cause.
type invalidError struct {
	cause error
}

func newInvalidError(cause error) error {
	return &invalidError{cause: cause}
}

func (e *invalidError) Error() string {
	return ErrInvalid.Error() + ": " + e.cause.Error()
}

func (e *invalidError) Is(target error) bool { return target == ErrInvalid }

func (e *invalidError) Unwrap() error { return e.cause }
