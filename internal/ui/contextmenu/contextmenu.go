// Package contextmenu renders the right-click style menu offered for the
// current selection.
package contextmenu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tsconv/internal/keys"
	"github.com/zjrosen/tsconv/internal/ui/styles"
)

// Item is one menu entry.
type Item struct {
	ID    string
	Title string
}

// SelectedMsg reports the chosen item.
type SelectedMsg struct{ ID string }

// ClosedMsg reports that the menu was dismissed without a choice.
type ClosedMsg struct{}

// Model holds the menu state.
type Model struct {
	items  []Item
	cursor int
}

// New creates a menu over items.
func New(items []Item) Model {
	return Model{items: items}
}

// Items returns the entries.
func (m Model) Items() []Item {
	return m.items
}

// Cursor returns the highlighted index.
func (m Model) Cursor() int {
	return m.cursor
}

func zoneID(id string) string {
	return "tsconv-menu-" + id
}

// Update handles navigation and selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Menu.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Menu.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Menu.Select):
			if len(m.items) == 0 {
				return m, closed
			}
			return m, selected(m.items[m.cursor].ID)
		case key.Matches(msg, keys.Menu.Close):
			return m, closed
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, it := range m.items {
			if z := zone.Get(zoneID(it.ID)); z != nil && z.InBounds(msg) {
				return m, selected(it.ID)
			}
		}
		return m, closed
	}
	return m, nil
}

func selected(id string) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{ID: id} }
}

func closed() tea.Msg { return ClosedMsg{} }

// View renders the menu box.
func (m Model) View() string {
	if len(m.items) == 0 {
		return styles.PanelStyle.Render(styles.MutedStyle.Render("No actions for this selection"))
	}

	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.ButtonBgColor)
	lines := make([]string, len(m.items))
	for i, it := range m.items {
		row := "  " + it.Title
		if i == m.cursor {
			row = cursorStyle.Render("> " + it.Title)
		}
		lines[i] = zone.Mark(zoneID(it.ID), row)
	}
	return styles.PanelStyle.Render(strings.Join(lines, "\n"))
}
