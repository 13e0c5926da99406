package extension

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/zjrosen/tsconv/internal/log"
)

// MenuContext says when a menu item is offered.
type MenuContext string

// ContextSelection offers an item only while text is selected.
const ContextSelection MenuContext = "selection"

// MenuItemConvert is the id of the single registered menu item.
const MenuItemConvert = "convert-timestamp"

// MenuItem is a registered context-menu entry.
type MenuItem struct {
	ID       string
	Title    string
	Contexts []MenuContext
}

// Background owns the context-menu registry and forwards menu clicks to
// the page. It has no notification surface of its own.
type Background struct {
	bus *Bus

	mu    sync.RWMutex
	items []MenuItem
}

// NewBackground creates a background bound to bus.
func NewBackground(bus *Bus) *Background {
	return &Background{bus: bus}
}

// Install registers the convert menu item. Calling it again replaces the
// existing registration.
func (b *Background) Install() {
	b.Register(MenuItem{
		ID:       MenuItemConvert,
		Title:    "Convert Timestamp to IST",
		Contexts: []MenuContext{ContextSelection},
	})
}

// Register adds item, replacing any item with the same ID.
func (b *Background) Register(item MenuItem) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = slices.DeleteFunc(b.items, func(it MenuItem) bool { return it.ID == item.ID })
	b.items = append(b.items, item)
	log.Debug(log.CatExtension, "Menu item registered", "id", item.ID)
}

// Items returns the entries offered for the given selection. Selection
// items are hidden when nothing is selected.
func (b *Background) Items(selection string) []MenuItem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hasSelection := strings.TrimSpace(selection) != ""
	var out []MenuItem
	for _, it := range b.items {
		if slices.Contains(it.Contexts, ContextSelection) && !hasSelection {
			continue
		}
		out = append(out, it)
	}
	return out
}

// OnMenuClicked forwards a click on the convert item to the page as a
// convertSelection message. Other ids are ignored. A delivery failure is
// logged and returned; it is never shown to the user.
func (b *Background) OnMenuClicked(_ context.Context, id, selection string) error {
	if id != MenuItemConvert {
		return nil
	}

	msg := NewMessage(ActionConvertSelection, selection)
	if err := b.bus.Send(msg); err != nil {
		log.Warn(log.CatExtension, "Error sending selection to page", "error", err.Error())
		return err
	}
	return nil
}
