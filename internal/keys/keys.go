// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// PageKeyMap is active while the text area has focus. Bindings avoid plain
// letters so they never collide with typing.
type PageKeyMap struct {
	ConvertClipboard key.Binding
	ContextMenu      key.Binding
	History          key.Binding
	DismissToast     key.Binding
	Help             key.Binding
	Quit             key.Binding
}

// ShortHelp implements help.KeyMap.
func (k PageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ConvertClipboard, k.ContextMenu, k.History, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k PageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ConvertClipboard, k.ContextMenu, k.History},
		{k.DismissToast, k.Help, k.Quit},
	}
}

// MenuKeyMap drives the context menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// PopupKeyMap drives the history panel.
type PopupKeyMap struct {
	Clear key.Binding
	Close key.Binding
}

// ShortHelp implements help.KeyMap.
func (k PopupKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Close}
}

// FullHelp implements help.KeyMap.
func (k PopupKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Page holds the main view bindings.
var Page = PageKeyMap{
	ConvertClipboard: key.NewBinding(
		key.WithKeys("f2", "ctrl+t"),
		key.WithHelp("f2", "convert copied _ts"),
	),
	ContextMenu: key.NewBinding(
		key.WithKeys("f10", "ctrl+o"),
		key.WithHelp("ctrl+o", "context menu"),
	),
	History: key.NewBinding(
		key.WithKeys("f3", "ctrl+y"),
		key.WithHelp("f3", "history"),
	),
	DismissToast: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Menu holds the context menu bindings.
var Menu = MenuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous item"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next item"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close menu"),
	),
}

// Popup holds the history panel bindings.
var Popup = PopupKeyMap{
	Clear: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "clear history"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "f3", "ctrl+y", "q"),
		key.WithHelp("esc", "close"),
	),
}
