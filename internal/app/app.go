// Package app contains the root application model.
package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tsconv/internal/config"
	"github.com/zjrosen/tsconv/internal/extension"
	"github.com/zjrosen/tsconv/internal/history"
	"github.com/zjrosen/tsconv/internal/keys"
	"github.com/zjrosen/tsconv/internal/log"
	"github.com/zjrosen/tsconv/internal/pubsub"
	"github.com/zjrosen/tsconv/internal/ui/button"
	"github.com/zjrosen/tsconv/internal/ui/contextmenu"
	"github.com/zjrosen/tsconv/internal/ui/logoverlay"
	"github.com/zjrosen/tsconv/internal/ui/overlay"
	"github.com/zjrosen/tsconv/internal/ui/popup"
	"github.com/zjrosen/tsconv/internal/ui/styles"
	"github.com/zjrosen/tsconv/internal/ui/toaster"
	"github.com/zjrosen/tsconv/internal/watcher"
)

// Services are the long-lived collaborators the model drives.
type Services struct {
	Config     config.Config
	Store      *history.Store
	Notifier   *toaster.Notifier
	Background *extension.Background
	Page       *extension.Page
	// Watcher is optional; nil disables cross-process refresh.
	Watcher *watcher.Watcher
	Debug   bool
}

// historyLoadedMsg carries a fresh read of the history.
type historyLoadedMsg struct {
	records []history.Record
	err     error
}

// handledMsg reports that a pipeline run or menu click finished.
type handledMsg struct{ err error }

// Model is the root application state.
type Model struct {
	services Services
	ctx      context.Context
	cancel   context.CancelFunc

	width  int
	height int

	input   textarea.Model
	help    help.Model
	button  button.Model
	toaster toaster.Model
	popup   popup.Model
	menu    contextmenu.Model

	popupOpen bool
	menuOpen  bool

	logOverlay logoverlay.Model

	toastListener   *pubsub.ContinuousListener[toaster.Notification]
	historyListener *pubsub.ContinuousListener[[]history.Record]
	watcherListener *pubsub.ContinuousListener[watcher.Event]
	logListener     *log.LogListener
}

// New creates the root model. Call Close when the program exits.
func New(s Services) Model {
	ctx, cancel := context.WithCancel(context.Background())

	input := textarea.New()
	input.Placeholder = "Paste or type text containing a _ts value, e.g. {\"_ts\": 1700000000}"
	input.ShowLineNumbers = false
	input.Focus()

	m := Model{
		services:        s,
		ctx:             ctx,
		cancel:          cancel,
		input:           input,
		help:            help.New(),
		button:          button.New(s.Config.Button.Label, s.Config.Button.Debounce),
		toaster:         toaster.New().WithFade(s.Config.Toast.Fade),
		popup:           popup.New(s.Config.History.Recent),
		logOverlay:      logoverlay.New(),
		toastListener:   pubsub.NewContinuousListener[toaster.Notification](ctx, s.Notifier),
		historyListener: pubsub.NewContinuousListener[[]history.Record](ctx, s.Store),
	}
	if s.Watcher != nil {
		m.watcherListener = pubsub.NewContinuousListener[watcher.Event](ctx, s.Watcher)
	}
	if s.Debug {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

// Close stops every listener.
func (m Model) Close() {
	m.cancel()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.toastListener.Listen(),
		m.historyListener.Listen(),
		m.loadHistory(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(msg.Width-2, 10))
		m.input.SetHeight(max(msg.Height-8, 3))
		m.help.Width = msg.Width
		m.logOverlay = m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case pubsub.Event[toaster.Notification]:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Payload.Message, msg.Payload.Options)
		return m, tea.Batch(cmd, m.toastListener.Listen())

	case pubsub.Event[[]history.Record]:
		m.popup = m.popup.SetRecords(msg.Payload)
		return m, m.historyListener.Listen()

	case pubsub.Event[watcher.Event]:
		log.Debug(log.CatWatcher, "Reloading history after external change", "path", msg.Payload.Path)
		return m, tea.Batch(m.loadHistory(), m.watcherListener.Listen())

	case log.LogEvent:
		m.logOverlay = m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Listen()

	case historyLoadedMsg:
		if msg.err != nil {
			m.popup = m.popup.SetError(msg.err)
		} else {
			m.popup = m.popup.SetRecords(msg.records)
		}
		return m, nil

	case handledMsg:
		return m, nil

	case toaster.HideMsg, toaster.DetachMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Update(msg)
		return m, cmd

	case button.PressedMsg:
		return m, m.handle(extension.NewMessage(extension.ActionConvertTimestamp, ""))

	case contextmenu.SelectedMsg:
		m.menuOpen = false
		return m, m.menuClicked(msg.ID, m.input.Value())

	case contextmenu.ClosedMsg:
		m.menuOpen = false
		return m, nil

	case popup.ClearRequestedMsg:
		return m, m.clearHistory()

	case popup.ClosedMsg:
		m.popupOpen = false
		m.input.Focus()
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.button, cmd = m.button.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Page.Quit) {
		return m, tea.Quit
	}

	if m.services.Debug && msg.String() == "ctrl+x" && !m.logOverlay.Visible() {
		m.logOverlay = m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.menuOpen {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.popupOpen {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Page.ConvertClipboard):
		var cmd tea.Cmd
		m.button, cmd = m.button.Press()
		return m, cmd

	case key.Matches(msg, keys.Page.ContextMenu):
		m.menu = contextmenu.New(m.menuItems())
		m.menuOpen = true
		return m, nil

	case key.Matches(msg, keys.Page.History):
		m.popupOpen = true
		m.input.Blur()
		return m, m.loadHistory()

	case key.Matches(msg, keys.Page.DismissToast):
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Dismiss()
		return m, cmd

	case key.Matches(msg, keys.Page.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.menuOpen {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.popupOpen {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}

	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonRight {
		m.menu = contextmenu.New(m.menuItems())
		m.menuOpen = true
		return m, nil
	}

	var cmd tea.Cmd
	m.button, cmd = m.button.Update(msg)
	return m, cmd
}

func (m Model) menuItems() []contextmenu.Item {
	registered := m.services.Background.Items(m.input.Value())
	items := make([]contextmenu.Item, len(registered))
	for i, it := range registered {
		items[i] = contextmenu.Item{ID: it.ID, Title: it.Title}
	}
	return items
}

// handle runs msg through the page directly, as the button does.
func (m Model) handle(msg extension.Message) tea.Cmd {
	page, ctx := m.services.Page, m.ctx
	return func() tea.Msg {
		return handledMsg{err: page.Handle(ctx, msg)}
	}
}

// menuClicked routes a menu click through the background, which forwards
// it to the page over the bus.
func (m Model) menuClicked(id, selection string) tea.Cmd {
	bg, ctx := m.services.Background, m.ctx
	return func() tea.Msg {
		return handledMsg{err: bg.OnMenuClicked(ctx, id, selection)}
	}
}

func (m Model) loadHistory() tea.Cmd {
	store, ctx := m.services.Store, m.ctx
	return func() tea.Msg {
		records, err := store.GetAll(ctx)
		return historyLoadedMsg{records: records, err: err}
	}
}

func (m Model) clearHistory() tea.Cmd {
	store, notifier, ctx := m.services.Store, m.services.Notifier, m.ctx
	return func() tea.Msg {
		if err := store.Clear(ctx); err != nil {
			log.ErrorErr(log.CatHistory, "Failed to clear history", err)
			notifier.Show("Failed to clear history", toaster.Options{Kind: toaster.KindError})
			return handledMsg{err: err}
		}
		notifier.Show("History cleared", toaster.Options{Kind: toaster.KindSuccess})
		return handledMsg{}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := styles.TitleStyle.Render("tsconv") + styles.MutedStyle.Render("  convert _ts values to IST")
	base := lipgloss.JoinVertical(lipgloss.Left, title, "", m.input.View(), "", m.help.View(keys.Page))
	base = padLines(base, m.height)

	view := overlay.Place(overlay.Config{
		Width: m.width, Height: m.height, Position: overlay.BottomRight, PadX: 2, PadY: 1,
	}, m.button.View(), base)
	view = m.toaster.Overlay(view, m.width, m.height)

	if m.popupOpen {
		view = overlay.Place(overlay.Config{
			Width: m.width, Height: m.height, Position: overlay.TopRight, PadX: 1, PadY: 1,
		}, m.popup.View(), view)
	}
	if m.menuOpen {
		view = overlay.Place(overlay.Config{
			Width: m.width, Height: m.height, Position: overlay.Center,
		}, m.menu.View(), view)
	}
	view = m.logOverlay.Overlay(view)

	return zone.Scan(view)
}

func padLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}
