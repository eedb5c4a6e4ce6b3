package core

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violation")
	ErrIO         = errors.New("backing store unavailable")
	ErrFormat     = errors.New("malformed stored value")
	ErrClosed     = errors.New("calendar is closed")

	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrNegativeDuration    = errors.New("duration cannot be negative")
	ErrInvalidDuration     = errors.New("duration must be a finite number")
)

// KindOf returns a stable word describing the class of err.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConstraint), errors.Is(err, ErrInvalidCategoryType), errors.Is(err, ErrNegativeDuration),
		errors.Is(err, ErrInvalidDuration):
		return "constraint"
	case errors.Is(err, ErrIO), errors.Is(err, ErrClosed):
		return "io"
	case errors.Is(err, ErrFormat):
		return "format"
	default:
		return "internal"
	}
}
