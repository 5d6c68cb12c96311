//go:build linux

// Package dbusmenu exports a menu tree over the session bus using the
// com.canonical.dbusmenu interface, the protocol consumed by desktop
// shells for global menus and status notifier items.
//
// The exporter installs itself as the delegate of every menu in the tree:
// item changes become ItemsPropertiesUpdated signals and structural
// changes bump the layout revision and emit LayoutUpdated.
package dbusmenu

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"menukit/internal/menu"
)

// D-Bus constants for the canonical menu protocol.
const (
	Interface = "com.canonical.dbusmenu"

	signalLayoutUpdated   = Interface + ".LayoutUpdated"
	signalItemsPropsReset = Interface + ".ItemsPropertiesUpdated"

	// rootID is the fixed node id of the menu root.
	rootID int32 = 0
)

// layoutNode is the (ia{sv}av) tuple returned by GetLayout.
type layoutNode struct {
	ID         int32
	Properties map[string]dbus.Variant
	Children   []dbus.Variant
}

// itemProperties is the (ia{sv}) tuple used by GetGroupProperties and the
// properties-updated signal.
type itemProperties struct {
	ID         int32
	Properties map[string]dbus.Variant
}

// Exporter publishes one menu tree on the session bus.
type Exporter struct {
	conn    *dbus.Conn
	busName string
	path    dbus.ObjectPath
	log     *slog.Logger

	mu       sync.Mutex
	root     *menu.Menu
	revision uint32
	items    map[int32]*menu.Item
	ids      map[*menu.Item]int32
	nextID   int32
}

// New connects to the session bus, claims busName, and exports the menu at
// objectPath.
func New(root *menu.Menu, busName string, objectPath dbus.ObjectPath, log *slog.Logger) (*Exporter, error) {
	e := newExporter(root, log)
	e.busName = busName
	e.path = objectPath

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbusmenu: connect to session bus: %w", err)
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("dbusmenu: request name %s: %w", busName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("dbusmenu: bus name %s already taken", busName)
	}

	if err := conn.Export(e, objectPath, Interface); err != nil {
		conn.Close()
		return nil, fmt.Errorf("dbusmenu: export: %w", err)
	}

	e.conn = conn
	e.log.Info("menu exported", "bus_name", busName, "path", string(objectPath))
	return e, nil
}

// newExporter builds an exporter around a tree without touching the bus.
func newExporter(root *menu.Menu, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	e := &Exporter{
		root: root,
		log:  log,
	}
	e.rebuild()
	return e
}

// Close releases the bus name and connection.
func (e *Exporter) Close() error {
	if e.conn == nil {
		return nil
	}
	if _, err := e.conn.ReleaseName(e.busName); err != nil {
		e.conn.Close()
		return fmt.Errorf("dbusmenu: release name: %w", err)
	}
	return e.conn.Close()
}

// SetMenu swaps the exported tree, as after a definition reload.
func (e *Exporter) SetMenu(root *menu.Menu) {
	e.mu.Lock()
	e.root = root
	e.rebuild()
	rev := e.revision
	e.mu.Unlock()
	e.emitLayoutUpdated(rev)
}

// rebuild reassigns node ids and delegate hooks for the whole tree.
// Callers hold e.mu (or own the exporter exclusively).
func (e *Exporter) rebuild() {
	e.items = make(map[int32]*menu.Item)
	e.ids = make(map[*menu.Item]int32)
	e.nextID = rootID + 1
	e.revision++
	e.hookMenu(e.root)
}

func (e *Exporter) hookMenu(m *menu.Menu) {
	if m == nil {
		return
	}
	m.SetDelegate(e)
	for _, it := range m.Items() {
		id := e.nextID
		e.nextID++
		e.items[id] = it
		e.ids[it] = id
		e.hookMenu(it.Submenu())
	}
}

// MenuItemChanged implements menu.Delegate. A change that attached a menu
// not yet in the id table is structural; everything else is a property
// update on one node.
func (e *Exporter) MenuItemChanged(m *menu.Menu, it *menu.Item) {
	e.mu.Lock()
	if sub := it.Submenu(); sub != nil && !e.knownMenuLocked(sub) {
		e.rebuild()
		rev := e.revision
		e.mu.Unlock()
		e.emitLayoutUpdated(rev)
		return
	}
	id, ok := e.ids[it]
	var props itemProperties
	if ok {
		props = itemProperties{ID: id, Properties: e.itemPropsLocked(it)}
	}
	e.mu.Unlock()

	if !ok || e.conn == nil {
		return
	}
	if err := e.conn.Emit(e.path, signalItemsPropsReset, []itemProperties{props}, []struct {
		ID    int32
		Names []string
	}{}); err != nil {
		e.log.Warn("emit properties update failed", "error", err)
	}
}

// MenuLayoutChanged implements menu.Delegate.
func (e *Exporter) MenuLayoutChanged(m *menu.Menu) {
	e.mu.Lock()
	e.rebuild()
	rev := e.revision
	e.mu.Unlock()
	e.emitLayoutUpdated(rev)
}

func (e *Exporter) knownMenuLocked(m *menu.Menu) bool {
	for _, it := range m.Items() {
		if _, ok := e.ids[it]; !ok {
			return false
		}
	}
	return true
}

func (e *Exporter) emitLayoutUpdated(revision uint32) {
	if e.conn == nil {
		return
	}
	if err := e.conn.Emit(e.path, signalLayoutUpdated, revision, rootID); err != nil {
		e.log.Warn("emit layout update failed", "error", err)
	}
}

// GetLayout returns the layout subtree under parentID. A recursionDepth of
// -1 means the whole subtree.
func (e *Exporter) GetLayout(parentID int32, recursionDepth int32, propertyNames []string) (uint32, layoutNode, *dbus.Error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, ok := e.layoutNodeLocked(parentID, recursionDepth)
	if !ok {
		return 0, layoutNode{}, dbus.MakeFailedError(fmt.Errorf("dbusmenu: unknown node %d", parentID))
	}
	return e.revision, node, nil
}

func (e *Exporter) layoutNodeLocked(id int32, depth int32) (layoutNode, bool) {
	var children []*menu.Item
	var props map[string]dbus.Variant

	if id == rootID {
		children = e.root.Items()
		props = map[string]dbus.Variant{
			"children-display": dbus.MakeVariant("submenu"),
		}
	} else {
		it, ok := e.items[id]
		if !ok {
			return layoutNode{}, false
		}
		props = e.itemPropsLocked(it)
		if sub := it.Submenu(); sub != nil {
			children = sub.Items()
		}
	}

	node := layoutNode{ID: id, Properties: props, Children: []dbus.Variant{}}
	if depth == 0 {
		return node, true
	}
	next := depth - 1
	if depth < 0 {
		next = -1
	}
	for _, child := range children {
		childNode, ok := e.layoutNodeLocked(e.ids[child], next)
		if !ok {
			continue
		}
		node.Children = append(node.Children, dbus.MakeVariant(childNode))
	}
	return node, true
}

// GetGroupProperties returns the properties of the requested nodes; an
// empty id list means every node.
func (e *Exporter) GetGroupProperties(ids []int32, propertyNames []string) ([]itemProperties, *dbus.Error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(ids) == 0 {
		ids = make([]int32, 0, len(e.items))
		for id := range e.items {
			ids = append(ids, id)
		}
	}
	out := make([]itemProperties, 0, len(ids))
	for _, id := range ids {
		if it, ok := e.items[id]; ok {
			out = append(out, itemProperties{ID: id, Properties: e.itemPropsLocked(it)})
		}
	}
	return out, nil
}

// GetProperty returns a single property of one node.
func (e *Exporter) GetProperty(id int32, name string) (dbus.Variant, *dbus.Error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, ok := e.items[id]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("dbusmenu: unknown node %d", id))
	}
	v, ok := e.itemPropsLocked(it)[name]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("dbusmenu: node %d has no property %q", id, name))
	}
	return v, nil
}

// Event handles input events from the shell. Clicks perform the item's
// action; hover moves the container highlight.
func (e *Exporter) Event(id int32, eventID string, data dbus.Variant, timestamp uint32) *dbus.Error {
	e.mu.Lock()
	it, ok := e.items[id]
	e.mu.Unlock()
	if !ok {
		return dbus.MakeFailedError(fmt.Errorf("dbusmenu: unknown node %d", id))
	}

	switch eventID {
	case "clicked":
		if m := it.Menu(); m != nil {
			performed := m.Perform(it)
			e.log.Debug("item clicked", "title", it.Title(), "performed", performed)
		}
	case "hovered":
		if m := it.Menu(); m != nil {
			m.SetHighlightedItem(it)
		}
	}
	return nil
}

// AboutToShow is called before the shell opens a submenu. The tree is
// always current, so no update is needed.
func (e *Exporter) AboutToShow(id int32) (bool, *dbus.Error) {
	return false, nil
}

// itemPropsLocked maps one item onto dbusmenu properties.
func (e *Exporter) itemPropsLocked(it *menu.Item) map[string]dbus.Variant {
	props := make(map[string]dbus.Variant)
	if it.IsSeparator() {
		props["type"] = dbus.MakeVariant("separator")
		return props
	}

	props["label"] = dbus.MakeVariant(dbusLabel(it.Title(), it.MnemonicLocation()))
	if !it.IsEnabled() {
		props["enabled"] = dbus.MakeVariant(false)
	}
	if it.IsHiddenOrHasHiddenAncestor() {
		props["visible"] = dbus.MakeVariant(false)
	}
	if img := it.Image(); img != "" {
		props["icon-name"] = dbus.MakeVariant(string(img))
	}
	if it.State() != menu.StateOff {
		props["toggle-type"] = dbus.MakeVariant("checkmark")
		props["toggle-state"] = dbus.MakeVariant(toggleState(it.State()))
	}
	if it.HasSubmenu() {
		props["children-display"] = dbus.MakeVariant("submenu")
	}
	if sc := shortcut(it.KeyEquivalent(), it.KeyEquivalentModifierMask()); sc != nil {
		props["shortcut"] = dbus.MakeVariant([][]string{sc})
	}
	return props
}

// toggleState maps a State onto the protocol's 0/1/other encoding; any
// value outside 0 and 1 reads as indeterminate.
func toggleState(s menu.State) int32 {
	switch s {
	case menu.StateOn:
		return 1
	case menu.StateMixed:
		return -1
	default:
		return 0
	}
}

// dbusLabel converts a title to the protocol's label form: '_' precedes
// the mnemonic character and literal underscores are doubled.
func dbusLabel(title string, mnemonicLoc int) string {
	var b strings.Builder
	for i, r := range []rune(title) {
		if i == mnemonicLoc {
			b.WriteByte('_')
		}
		if r == '_' {
			b.WriteString("__")
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// shortcut maps a key equivalent onto the protocol's modifier name lists.
func shortcut(key string, mods menu.ModifierMask) []string {
	if key == "" {
		return nil
	}
	var parts []string
	if mods&menu.ModControl != 0 {
		parts = append(parts, "Control")
	}
	if mods&menu.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if mods&menu.ModOption != 0 {
		parts = append(parts, "Alt")
	}
	if mods&menu.ModCommand != 0 {
		parts = append(parts, "Super")
	}
	return append(parts, key)
}
