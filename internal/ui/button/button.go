// Package button renders the floating "convert copied _ts" button.
//
// Presses are debounced on the trailing edge: every press restarts the
// quiet period and only the last press of a burst emits PressedMsg.
package button

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tsconv/internal/ui/styles"
)

// ZoneID marks the button for mouse hit testing.
const ZoneID = "tsconv-convert-button"

const (
	DefaultLabel    = "Convert Copied _ts"
	DefaultDebounce = 300 * time.Millisecond
)

// PressedMsg is emitted once per debounced burst of presses.
type PressedMsg struct{}

type fireMsg struct{ seq int }

// Model holds the button state.
type Model struct {
	label    string
	debounce time.Duration
	hovered  bool
	seq      int
}

// New creates a button. Empty label and negative debounce fall back to
// the defaults.
func New(label string, debounce time.Duration) Model {
	if label == "" {
		label = DefaultLabel
	}
	if debounce < 0 {
		debounce = DefaultDebounce
	}
	return Model{label: label, debounce: debounce}
}

// Press registers a press and restarts the quiet period.
func (m Model) Press() (Model, tea.Cmd) {
	m.seq++
	seq := m.seq
	return m, tea.Tick(m.debounce, func(time.Time) tea.Msg { return fireMsg{seq: seq} })
}

// SetHovered updates the hover state.
func (m Model) SetHovered(hovered bool) Model {
	m.hovered = hovered
	return m
}

// Hovered reports whether the pointer is over the button.
func (m Model) Hovered() bool {
	return m.hovered
}

// Update handles mouse input and debounce timers.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fireMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, func() tea.Msg { return PressedMsg{} }

	case tea.MouseMsg:
		z := zone.Get(ZoneID)
		inside := z != nil && z.InBounds(msg)
		m.hovered = inside
		if inside && msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			return m.Press()
		}
	}
	return m, nil
}

// View renders the button wrapped in its click zone.
func (m Model) View() string {
	style := styles.ButtonStyle
	if m.hovered {
		style = styles.ButtonHoverStyle
	}
	return zone.Mark(ZoneID, style.Render(m.label))
}
