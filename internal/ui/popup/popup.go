// Package popup renders the recent-conversions panel.
package popup

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/tsconv/internal/history"
	"github.com/zjrosen/tsconv/internal/keys"
	"github.com/zjrosen/tsconv/internal/ui/styles"
)

// ClearZoneID marks the clear action for mouse hit testing.
const ClearZoneID = "tsconv-popup-clear"

const (
	// DefaultRecent is how many records the panel lists.
	DefaultRecent = 3
	// Width is the panel's outer width.
	Width = 42

	emptyText = "No conversions yet"
	title     = "Recent Conversions"
)

// ClearRequestedMsg asks the owner to clear the stored history.
type ClearRequestedMsg struct{}

// ClosedMsg reports that the user closed the panel.
type ClosedMsg struct{}

// Model holds the panel state. It never mutates history itself.
type Model struct {
	recent int
	items  []history.Record
	err    error
}

// New creates a panel listing up to recent records.
func New(recent int) Model {
	if recent < 1 {
		recent = DefaultRecent
	}
	return Model{recent: recent}
}

// SetRecords replaces the listed records with the most recent of all.
func (m Model) SetRecords(all []history.Record) Model {
	m.items = history.MostRecent(all, m.recent)
	m.err = nil
	return m
}

// SetError shows a load failure instead of the list.
func (m Model) SetError(err error) Model {
	m.err = err
	return m
}

// Items returns the listed records, newest first.
func (m Model) Items() []history.Record {
	return m.items
}

// Update handles the panel's keys and the clear button.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Popup.Clear):
			return m, requestClear
		case key.Matches(msg, keys.Popup.Close):
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if z := zone.Get(ClearZoneID); z != nil && z.InBounds(msg) {
			return m, requestClear
		}
	}
	return m, nil
}

func requestClear() tea.Msg { return ClearRequestedMsg{} }

// View renders the panel.
func (m Model) View() string {
	inner := Width - 4
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.DangerButtonStyle.Render(truncate("Failed to load history: "+m.err.Error(), inner)))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(styles.MutedStyle.Render(emptyText))
		b.WriteString("\n")
	default:
		for i, r := range m.items {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(line("_ts:", strconv.FormatInt(r.OriginalValue, 10), inner))
			b.WriteString("\n")
			b.WriteString(line("Time:", r.Time(), inner))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(zone.Mark(ClearZoneID, styles.DangerButtonStyle.Render("[ Clear History ]")))
	b.WriteString("  ")
	b.WriteString(styles.HintStyle.Render("x clear · esc close"))

	return styles.PanelStyle.Width(Width - 2).Render(b.String())
}

func line(label, value string, width int) string {
	value = truncate(value, width-runewidth.StringWidth(label)-1)
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.LabelStyle.Render(label), " ", value)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
