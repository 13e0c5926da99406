package extension

import (
	"errors"
	"fmt"
)

// ErrClipboardEmpty is the cause of a ClipboardError for an empty clipboard.
var ErrClipboardEmpty = errors.New("clipboard is empty")

// ClipboardError reports that clipboard text could not be obtained.
type ClipboardError struct {
	Cause error
}

func (e *ClipboardError) Error() string {
	if errors.Is(e.Cause, ErrClipboardEmpty) {
		return "Clipboard is empty. Copy a text with _ts value first."
	}
	return fmt.Sprintf("Failed to read clipboard: %v", e.Cause)
}

func (e *ClipboardError) Unwrap() error {
	return e.Cause
}

// DeliveryError reports that a message had no receiver. It is logged by
// senders and never shown to the user.
type DeliveryError struct {
	Message Message
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("no receiver for %s message %s", e.Message.Action, e.Message.ID)
}

// ExtractionError reports that the input held no plausible timestamp. Its
// message depends on where the text came from.
type ExtractionError struct {
	Source Source
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Source == SourceSelection {
		return "No valid timestamp found in selection"
	}
	return "No valid timestamp found. Copy a text containing _ts."
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// RecordError reports that a conversion succeeded but was not saved.
type RecordError struct {
	Cause error
}

func (e *RecordError) Error() string {
	return "Converted, but history could not be saved"
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
