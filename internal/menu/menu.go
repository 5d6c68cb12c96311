package menu

import (
	"fmt"
	"slices"
)

// Delegate receives change notifications from a Menu. Renderers and
// exporters install one to learn when rows need redrawing or the tree
// needs re-layout.
type Delegate interface {
	// MenuItemChanged is called after any appearance-affecting mutation
	// of an item in the menu.
	MenuItemChanged(m *Menu, it *Item)
	// MenuLayoutChanged is called when items are added, removed, or the
	// menu's own presentation (title, highlight) changes shape.
	MenuLayoutChanged(m *Menu)
}

// Menu is an ordered container of items. It owns its items, maintains
// their back-references, and is the hub of the notification protocol:
// items report changes to it, and it forwards them to its delegate.
type Menu struct {
	title       string
	items       []*Item
	supermenu   *Menu
	autoenables bool
	highlighted *Item
	delegate    Delegate
}

// NewMenu returns an empty menu with the given title. Autoenabling is off:
// item enabled flags are honored as set unless the caller opts in to
// container-driven enabling.
func NewMenu(title string) *Menu {
	return &Menu{title: title}
}

// Title returns the menu title.
func (m *Menu) Title() string { return m.title }

// SetTitle sets the menu title.
func (m *Menu) SetTitle(title string) {
	if m.title == title {
		return
	}
	m.title = title
	m.layoutChanged()
}

// Delegate returns the installed delegate, or nil.
func (m *Menu) Delegate() Delegate { return m.delegate }

// SetDelegate installs the delegate receiving change notifications.
func (m *Menu) SetDelegate(d Delegate) {
	m.delegate = d
}

// AutoenablesItems reports whether the container drives item enabling.
func (m *Menu) AutoenablesItems() bool { return m.autoenables }

// SetAutoenablesItems turns container-driven enabling on or off. While it
// is on, Item.SetEnabled is a no-op for items of this menu.
func (m *Menu) SetAutoenablesItems(autoenables bool) {
	m.autoenables = autoenables
}

// Supermenu returns the menu containing the item this menu is attached to
// as a submenu, or nil for a root menu.
func (m *Menu) Supermenu() *Menu { return m.supermenu }

// setSupermenu records the parent back-reference. Called by submenu
// attachment and item insertion, never by users of the package.
func (m *Menu) setSupermenu(super *Menu) {
	m.supermenu = super
}

// Len returns the number of items.
func (m *Menu) Len() int { return len(m.items) }

// Items returns the items in order. The slice is a copy; the menu's own
// ordering cannot be mutated through it.
func (m *Menu) Items() []*Item {
	return slices.Clone(m.items)
}

// ItemAt returns the item at index, or nil when out of range.
func (m *Menu) ItemAt(index int) *Item {
	if index < 0 || index >= len(m.items) {
		return nil
	}
	return m.items[index]
}

// IndexOf returns the index of the item, or -1.
func (m *Menu) IndexOf(it *Item) int {
	return slices.Index(m.items, it)
}

// IndexOfItemWithSubmenu returns the index of the item holding sub as its
// submenu, or -1.
func (m *Menu) IndexOfItemWithSubmenu(sub *Menu) int {
	if sub == nil {
		return -1
	}
	for i, it := range m.items {
		if it.submenu == sub {
			return i
		}
	}
	return -1
}

// ItemWithTag returns the first item with the given tag, or nil.
func (m *Menu) ItemWithTag(tag int) *Item {
	for _, it := range m.items {
		if it.tag == tag {
			return it
		}
	}
	return nil
}

// ItemWithTitle returns the first item with the given title, or nil.
func (m *Menu) ItemWithTitle(title string) *Item {
	for _, it := range m.items {
		if it.title == title {
			return it
		}
	}
	return nil
}

// AddItem appends an item. The item must not already belong to a menu.
func (m *Menu) AddItem(it *Item) error {
	return m.InsertItem(it, len(m.items))
}

// InsertItem inserts an item at index and takes ownership: the item's
// back-reference is set, and an attached submenu is re-parented to this
// menu.
func (m *Menu) InsertItem(it *Item, index int) error {
	if it == nil {
		return fmt.Errorf("%w: nil item", ErrInvalidArgument)
	}
	if it.menu != nil {
		return fmt.Errorf("%w: item %q already belongs to a menu", ErrInvalidArgument, it.title)
	}
	if index < 0 || index > len(m.items) {
		return fmt.Errorf("%w: index %d out of range [0, %d]", ErrInvalidArgument, index, len(m.items))
	}
	m.items = slices.Insert(m.items, index, it)
	it.menu = m
	if it.submenu != nil {
		it.submenu.setSupermenu(m)
		if it.action == SubmenuAction {
			it.target = m
		}
	}
	m.layoutChanged()
	return nil
}

// RemoveItem removes the item and releases ownership.
func (m *Menu) RemoveItem(it *Item) error {
	idx := m.IndexOf(it)
	if idx < 0 {
		return fmt.Errorf("%w: item %q is not in this menu", ErrInvalidArgument, it.Title())
	}
	return m.RemoveItemAt(idx)
}

// RemoveItemAt removes the item at index.
func (m *Menu) RemoveItemAt(index int) error {
	if index < 0 || index >= len(m.items) {
		return fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidArgument, index, len(m.items))
	}
	it := m.items[index]
	m.items = slices.Delete(m.items, index, index+1)
	it.menu = nil
	if it.submenu != nil {
		it.submenu.setSupermenu(nil)
		if it.action == SubmenuAction {
			it.target = nil
		}
	}
	if m.highlighted == it {
		m.highlighted = nil
	}
	m.layoutChanged()
	return nil
}

// RemoveAllItems empties the menu.
func (m *Menu) RemoveAllItems() {
	for len(m.items) > 0 {
		// RemoveItemAt fires one layout notification per item; keep it,
		// renderers coalesce.
		_ = m.RemoveItemAt(len(m.items) - 1)
	}
}

// HighlightedItem returns the currently highlighted item, or nil.
func (m *Menu) HighlightedItem() *Item { return m.highlighted }

// SetHighlightedItem moves the highlight. Both the previously and newly
// highlighted rows are invalidated.
func (m *Menu) SetHighlightedItem(it *Item) {
	if m.highlighted == it {
		return
	}
	prev := m.highlighted
	m.highlighted = it
	if prev != nil {
		prev.noteChanged()
	}
	if it != nil {
		it.noteChanged()
	}
}

// Perform activates an item: it invokes the target/action pair with the
// item as sender. It returns false without invoking anything when the
// item is a separator, disabled, hidden behind an ancestor, a pure
// submenu launcher, or has no target.
func (m *Menu) Perform(it *Item) bool {
	if it == nil || it.separator || !it.enabled {
		return false
	}
	if it.IsHiddenOrHasHiddenAncestor() {
		return false
	}
	if !it.selectable() {
		return false
	}
	if it.target == nil {
		return false
	}
	it.target.PerformAction(it.action, it)
	return true
}

// PerformAction implements Performer. The container is the default target
// of submenu launchers; opening is presentation policy, so the container
// itself does nothing with the launch.
func (m *Menu) PerformAction(action string, sender *Item) {}

// itemChanged is the item-to-container half of the notification protocol.
func (m *Menu) itemChanged(it *Item) {
	if m.delegate != nil {
		m.delegate.MenuItemChanged(m, it)
	}
}

func (m *Menu) layoutChanged() {
	if m.delegate != nil {
		m.delegate.MenuLayoutChanged(m)
	}
}
