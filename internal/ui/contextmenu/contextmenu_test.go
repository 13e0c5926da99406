package contextmenu

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

var items = []Item{
	{ID: "convert-timestamp", Title: "Convert Timestamp to IST"},
	{ID: "other", Title: "Other"},
}

func TestView(t *testing.T) {
	view := ansi.Strip(zone.Scan(New(items).View()))

	require.Contains(t, view, "> Convert Timestamp to IST")
	require.Contains(t, view, "  Other")
}

func TestView_Empty(t *testing.T) {
	require.Contains(t, ansi.Strip(New(nil).View()), "No actions")
}

func TestUpdate_NavigateAndSelect(t *testing.T) {
	m := New(items)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Cursor())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Cursor(), "cursor stops at last item")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.Cursor())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, SelectedMsg{ID: "convert-timestamp"}, cmd())
}

func TestUpdate_Close(t *testing.T) {
	_, cmd := New(items).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ClosedMsg{}, cmd())

	_, cmd = New(nil).Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ClosedMsg{}, cmd())
}
