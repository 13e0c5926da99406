// Package toaster provides the single reusable notification toast.
//
// A toast moves through three phases: visible, hiding (drawn faded) and
// detached. Show always resets to visible and bumps a generation counter
// so that timers scheduled for an earlier toast are ignored.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/tsconv/internal/ui/overlay"
	"github.com/zjrosen/tsconv/internal/ui/styles"
)

// Kind selects the toast colour treatment.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

const (
	// DefaultDuration is how long a toast stays fully visible.
	DefaultDuration = 3 * time.Second
	// DefaultFade is the delay between hiding and detaching.
	DefaultFade = 300 * time.Millisecond
	// MaxWidth bounds the toast body before wrapping.
	MaxWidth = 44
)

// Options controls a single Show call. A zero Duration means DefaultDuration.
type Options struct {
	Kind     Kind
	Duration time.Duration
}

type phase int

const (
	phaseDetached phase = iota
	phaseVisible
	phaseHiding
)

// HideMsg starts the fade of toast generation Gen.
type HideMsg struct{ Gen int }

// DetachMsg removes toast generation Gen.
type DetachMsg struct{ Gen int }

// Model holds the toaster state.
type Model struct {
	message string
	kind    Kind
	phase   phase
	gen     int
	fade    time.Duration
}

// New creates a toaster with the default fade delay.
func New() Model {
	return Model{fade: DefaultFade}
}

// WithFade sets the hide-to-detach delay.
func (m Model) WithFade(d time.Duration) Model {
	if d >= 0 {
		m.fade = d
	}
	return m
}

// Show replaces any current toast and schedules its dismissal.
func (m Model) Show(message string, opts Options) (Model, tea.Cmd) {
	d := opts.Duration
	if d <= 0 {
		d = DefaultDuration
	}

	m.gen++
	m.message = message
	m.kind = opts.Kind
	m.phase = phaseVisible

	gen := m.gen
	return m, tea.Tick(d, func(time.Time) tea.Msg { return HideMsg{Gen: gen} })
}

// Dismiss starts hiding the current toast now.
func (m Model) Dismiss() (Model, tea.Cmd) {
	if m.phase != phaseVisible {
		return m, nil
	}
	return m.hide()
}

func (m Model) hide() (Model, tea.Cmd) {
	m.phase = phaseHiding
	gen := m.gen
	return m, tea.Tick(m.fade, func(time.Time) tea.Msg { return DetachMsg{Gen: gen} })
}

// Update handles the dismissal messages. Messages from a superseded
// generation are dropped.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case HideMsg:
		if msg.Gen == m.gen && m.phase == phaseVisible {
			return m.hide()
		}
	case DetachMsg:
		if msg.Gen == m.gen && m.phase == phaseHiding {
			m.phase = phaseDetached
			m.message = ""
		}
	}
	return m, nil
}

// Visible reports whether a toast is attached (visible or fading).
func (m Model) Visible() bool {
	return m.phase != phaseDetached
}

// Hiding reports whether the toast is fading out.
func (m Model) Hiding() bool {
	return m.phase == phaseHiding
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// Kind returns the current toast kind.
func (m Model) Kind() Kind {
	return m.kind
}

// Generation returns the number of toasts shown so far.
func (m Model) Generation() int {
	return m.gen
}

// View renders the toast box.
func (m Model) View() string {
	if !m.Visible() || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(styles.ToastTextColor).
		Background(background(m.kind))
	if m.phase == phaseHiding {
		style = style.Faint(true).Background(styles.ToastFadedColor)
	}

	return style.Render(wordwrap.String(m.message, MaxWidth))
}

func background(k Kind) lipgloss.TerminalColor {
	switch k {
	case KindSuccess:
		return styles.ToastSuccessBgColor
	case KindError:
		return styles.ToastErrorBgColor
	default:
		return styles.ToastInfoBgColor
	}
}

// Overlay draws the toast in the bottom-right corner of bg, above the
// convert button.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.BottomRight,
		PadX:     2,
		PadY:     4,
	}, fg, bg)
}
