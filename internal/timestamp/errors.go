package timestamp

import (
	"errors"
	"fmt"
)

// ErrNoTimestamp is returned by Extract when no pattern yields a plausible
// timestamp.
var ErrNoTimestamp = errors.New("no valid timestamp found")

// ErrInvalidDate is the cause recorded when an epoch value cannot be
// represented as a calendar date.
var ErrInvalidDate = errors.New("invalid date conversion")

// ConversionError reports that formatting an apparently valid timestamp
// failed. Error() always returns the user-facing message; the underlying
// cause is available through errors.Unwrap for diagnostics.
type ConversionError struct {
	Value int64
	Cause error
}

func (e *ConversionError) Error() string {
	return "Failed to convert timestamp"
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Detail returns the message including the cause, for logging.
func (e *ConversionError) Detail() string {
	if e.Cause == nil {
		return fmt.Sprintf("convert %d: failed", e.Value)
	}
	return fmt.Sprintf("convert %d: %v", e.Value, e.Cause)
}
