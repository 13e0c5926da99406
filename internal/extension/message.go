// Package extension wires the conversion pipeline to its entry points: the
// context menu owned by Background, the message bus between Background and
// Page, and the clipboard button handled by Page.
package extension

import "github.com/google/uuid"

// Action names a message handled by the page.
type Action string

const (
	// ActionConvertTimestamp runs the clipboard pipeline. It carries no text.
	ActionConvertTimestamp Action = "convertTimestamp"
	// ActionConvertSelection runs the text pipeline on Message.Text.
	ActionConvertSelection Action = "convertSelection"
)

// Message is the envelope sent from Background (or any caller) to Page.
type Message struct {
	ID     string `json:"id"`
	Action Action `json:"action"`
	Text   string `json:"text,omitempty"`
}

// NewMessage creates a message with a fresh ID.
func NewMessage(action Action, text string) Message {
	return Message{
		ID:     uuid.NewString(),
		Action: action,
		Text:   text,
	}
}
