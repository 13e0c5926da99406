// Package clipboard gives read access to the system clipboard.
package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"github.com/zjrosen/tsconv/internal/log"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard access is not available")

// Reader reads text from a clipboard.
type Reader interface {
	ReadText(ctx context.Context) (string, error)
}

// System reads the OS clipboard through pbpaste, xclip, xsel or
// wl-paste, whichever is installed.
type System struct{}

// ReadText returns the clipboard contents. The read runs in its own
// goroutine so ctx can abandon a hung helper process.
func (System) ReadText(ctx context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := clipboard.ReadAll()
		done <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			log.ErrorErr(log.CatClipboard, "Clipboard read failed", r.err)
		}
		return r.text, r.err
	}
}

// Static is a Reader returning fixed content, for tests and for piping
// text in from the command line.
type Static struct {
	Text string
	Err  error
}

// ReadText returns s.Text and s.Err.
func (s Static) ReadText(context.Context) (string, error) {
	return s.Text, s.Err
}
