package menu_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menukit/internal/menu"
)

// Test helpers

// recordingDelegate counts notifications from a menu.
type recordingDelegate struct {
	itemChanges   int
	layoutChanges int
	lastItem      *menu.Item
}

func (d *recordingDelegate) MenuItemChanged(m *menu.Menu, it *menu.Item) {
	d.itemChanges++
	d.lastItem = it
}

func (d *recordingDelegate) MenuLayoutChanged(m *menu.Menu) {
	d.layoutChanges++
}

// recordingPerformer records performed actions.
type recordingPerformer struct {
	actions []string
	senders []*menu.Item
}

func (p *recordingPerformer) PerformAction(action string, sender *menu.Item) {
	p.actions = append(p.actions, action)
	p.senders = append(p.senders, sender)
}

func (p *recordingPerformer) ArchiveRef() string { return "test-performer" }

func newOwnedItem(t *testing.T) (*menu.Menu, *menu.Item, *recordingDelegate) {
	t.Helper()
	m := menu.NewMenu("Test")
	it := menu.NewItem("Item", "doThing", "")
	require.NoError(t, m.AddItem(it))
	d := &recordingDelegate{}
	m.SetDelegate(d)
	return m, it, d
}

func TestNewItemDefaults(t *testing.T) {
	it := menu.NewItem("Open", "open", "o")

	assert.Equal(t, "Open", it.Title())
	assert.Equal(t, "open", it.Action())
	assert.Equal(t, "o", it.KeyEquivalent())
	assert.True(t, it.IsEnabled())
	assert.False(t, it.IsHidden())
	assert.False(t, it.IsSeparator())
	assert.False(t, it.IsAlternate())
	assert.Equal(t, 0, it.Tag())
	assert.Equal(t, menu.StateOff, it.State())
	assert.Equal(t, 0, it.IndentationLevel())
	assert.Equal(t, menu.NoMnemonic, it.MnemonicLocation())
	assert.Nil(t, it.Target())
	assert.Nil(t, it.Menu())
	assert.False(t, it.HasSubmenu())
}

func TestSeparatorItem(t *testing.T) {
	sep := menu.SeparatorItem()

	assert.True(t, sep.IsSeparator())
	assert.Empty(t, sep.Title())
	assert.Empty(t, sep.Action())
	assert.Nil(t, sep.Target())
}

func TestSetTitleResetsMnemonic(t *testing.T) {
	it := menu.NewItem("", "", "")
	it.SetTitleWithMnemonic("&File")
	require.Equal(t, 0, it.MnemonicLocation())

	it.SetTitle("Edit")
	assert.Equal(t, "Edit", it.Title())
	assert.Equal(t, menu.NoMnemonic, it.MnemonicLocation())
	assert.Empty(t, it.Mnemonic())
}

func TestSetTitleWithMnemonic(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantLoc   int
		wantChar  string
	}{
		{"leading marker", "&File", "File", 0, "F"},
		{"inner marker", "E&xit", "Exit", 1, "x"},
		{"no marker", "Open", "Open", menu.NoMnemonic, ""},
		{"trailing text", "Save &As…", "Save As…", 5, "A"},
		{"first of two markers", "Fish && Chips", "Fish & Chips", 5, "&"},
		{"multibyte prefix", "Über&menü", "Übermenü", 4, "m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := menu.NewItem("", "", "")
			it.SetTitleWithMnemonic(tc.input)

			assert.Equal(t, tc.wantTitle, it.Title())
			assert.Equal(t, tc.wantLoc, it.MnemonicLocation())
			assert.Equal(t, tc.wantChar, it.Mnemonic())
		})
	}
}

func TestIndentationLevel(t *testing.T) {
	it := menu.NewItem("x", "", "")

	require.NoError(t, it.SetIndentationLevel(3))
	assert.Equal(t, 3, it.IndentationLevel())

	// Above the cap: clamped, not rejected.
	require.NoError(t, it.SetIndentationLevel(99))
	assert.Equal(t, menu.MaxIndentationLevel, it.IndentationLevel())

	err := it.SetIndentationLevel(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, menu.ErrInvalidArgument))
	assert.Equal(t, menu.MaxIndentationLevel, it.IndentationLevel(), "rejected write must not apply")
}

func TestKeyEquivalentDisplay(t *testing.T) {
	tests := []struct {
		name string
		key  string
		mods menu.ModifierMask
		want string
	}{
		{"command only", "c", menu.ModCommand, "⌘C"},
		{"shift control", "x", menu.ModShift | menu.ModControl, "⇧^X"},
		{"all rendered", "s", menu.ModCommand | menu.ModShift | menu.ModControl, "⌘⇧^S"},
		{"empty key ignores mask", "", menu.ModCommand | menu.ModShift, ""},
		{"option carries no glyph", "a", menu.ModOption, "A"},
		{"already uppercase", "F", menu.ModCommand, "⌘F"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := menu.NewItem("x", "", tc.key)
			it.SetKeyEquivalentModifierMask(tc.mods)
			assert.Equal(t, tc.want, it.KeyEquivalentDisplay())
		})
	}
}

func TestIdempotentWritesDoNotNotify(t *testing.T) {
	_, it, d := newOwnedItem(t)
	it.SetImage("doc")
	it.SetState(menu.StateOn)
	d.itemChanges = 0

	rc := it.RowCache()
	rc.Refresh(it)
	require.False(t, rc.Dirty())

	it.SetTitle("Item")
	it.SetImage("doc")
	it.SetState(menu.StateOn)
	it.SetHidden(false)
	it.SetEnabled(true)
	it.SetFont("")
	it.SetOnStateImage("")

	assert.Zero(t, d.itemChanges, "no-op writes must not notify the container")
	assert.False(t, rc.Dirty(), "no-op writes must not dirty the row cache")
}

func TestAppearanceWritesNotifyAndDirty(t *testing.T) {
	_, it, d := newOwnedItem(t)
	rc := it.RowCache()
	rc.Refresh(it)

	it.SetTitle("Renamed")
	assert.Equal(t, 1, d.itemChanges)
	assert.Same(t, it, d.lastItem)
	assert.True(t, rc.Dirty())

	rc.Refresh(it)
	assert.Equal(t, "Renamed", rc.Title)

	it.SetState(menu.StateMixed)
	it.SetHidden(true)
	assert.Equal(t, 3, d.itemChanges)
}

func TestBookkeepingWritesAreSilent(t *testing.T) {
	_, it, d := newOwnedItem(t)
	rc := it.RowCache()
	rc.Refresh(it)

	it.SetTag(42)
	it.SetKeyEquivalent("k")
	it.SetKeyEquivalentModifierMask(menu.ModCommand)
	it.SetAlternate(true)
	it.SetToolTip("tip")
	it.SetRepresentedObject("payload")
	it.SetMnemonicLocation(0)
	require.NoError(t, it.SetIndentationLevel(2))
	it.SetTarget(&recordingPerformer{})
	it.SetAction("other")

	assert.Zero(t, d.itemChanges, "bookkeeping writes must not notify")
	assert.False(t, rc.Dirty(), "bookkeeping writes must not dirty the row cache")
}

func TestSetEnabledUnderAutoenablingMenu(t *testing.T) {
	m, it, d := newOwnedItem(t)
	m.SetAutoenablesItems(true)

	it.SetEnabled(false)
	assert.True(t, it.IsEnabled(), "autoenabling container owns the enabled flag")
	assert.Zero(t, d.itemChanges)

	m.SetAutoenablesItems(false)
	it.SetEnabled(false)
	assert.False(t, it.IsEnabled())
	assert.Equal(t, 1, d.itemChanges)
}

func TestSubmenuExclusivity(t *testing.T) {
	mx := menu.NewMenu("Owner X")
	x := menu.NewItem("X", "", "")
	require.NoError(t, mx.AddItem(x))
	y := menu.NewItem("Y", "", "")

	sub := menu.NewMenu("Shared")
	require.NoError(t, x.SetSubmenu(sub))
	require.Same(t, mx, sub.Supermenu())

	err := y.SetSubmenu(sub)
	require.Error(t, err)
	assert.True(t, errors.Is(err, menu.ErrInvalidArgument))
	assert.False(t, y.HasSubmenu())
	assert.Same(t, sub, x.Submenu(), "failed attach must not disturb the current parent")

	// Detach, then the second attach succeeds.
	require.NoError(t, x.SetSubmenu(nil))
	require.NoError(t, y.SetSubmenu(sub))
	assert.Same(t, sub, y.Submenu())
}

func TestSetSubmenuRebindsActionPair(t *testing.T) {
	m, it, d := newOwnedItem(t)
	it.SetTarget(&recordingPerformer{})
	it.SetAction("custom")

	sub := menu.NewMenu("Sub")
	require.NoError(t, it.SetSubmenu(sub))
	assert.Same(t, m, it.Target())
	assert.Equal(t, menu.SubmenuAction, it.Action())
	assert.Same(t, m, sub.Supermenu())
	assert.Equal(t, 1, d.itemChanges)

	// Assigning the submenu already held is a complete no-op.
	require.NoError(t, it.SetSubmenu(sub))
	assert.Equal(t, 1, d.itemChanges)

	require.NoError(t, it.SetSubmenu(nil))
	assert.Nil(t, it.Target())
	assert.Empty(t, it.Action())
	assert.Nil(t, sub.Supermenu())
	assert.Equal(t, 2, d.itemChanges)
}

func TestIsHiddenOrHasHiddenAncestor(t *testing.T) {
	root := menu.NewMenu("Root")
	launcher := menu.NewItem("File", "", "")
	require.NoError(t, root.AddItem(launcher))

	sub := menu.NewMenu("File")
	require.NoError(t, launcher.SetSubmenu(sub))
	leaf := menu.NewItem("Open", "open", "")
	require.NoError(t, sub.AddItem(leaf))

	assert.False(t, leaf.IsHiddenOrHasHiddenAncestor())

	launcher.SetHidden(true)
	assert.False(t, leaf.IsHidden())
	assert.True(t, leaf.IsHiddenOrHasHiddenAncestor())

	launcher.SetHidden(false)
	leaf.SetHidden(true)
	assert.True(t, leaf.IsHiddenOrHasHiddenAncestor())
}

func TestIsHighlighted(t *testing.T) {
	m := menu.NewMenu("Test")
	a := menu.NewItem("A", "", "")
	b := menu.NewItem("B", "", "")
	require.NoError(t, m.AddItem(a))
	require.NoError(t, m.AddItem(b))

	assert.False(t, a.IsHighlighted())

	m.SetHighlightedItem(a)
	assert.True(t, a.IsHighlighted())
	assert.False(t, b.IsHighlighted())

	m.SetHighlightedItem(b)
	assert.False(t, a.IsHighlighted())
	assert.True(t, b.IsHighlighted())
}

func TestPerform(t *testing.T) {
	m := menu.NewMenu("Test")
	p := &recordingPerformer{}

	it := menu.NewItem("Run", "run", "")
	it.SetTarget(p)
	require.NoError(t, m.AddItem(it))

	require.True(t, m.Perform(it))
	require.Equal(t, []string{"run"}, p.actions)
	assert.Same(t, it, p.senders[0])

	// Disabled items never fire.
	it.SetEnabled(false)
	assert.False(t, m.Perform(it))

	// Separators never fire.
	assert.False(t, m.Perform(menu.SeparatorItem()))

	// A pure submenu launcher is not selectable...
	launcher := menu.NewItem("More", "", "")
	require.NoError(t, m.AddItem(launcher))
	require.NoError(t, launcher.SetSubmenu(menu.NewMenu("More")))
	assert.False(t, m.Perform(launcher))

	// ...until its action pair is overridden.
	launcher.SetTarget(p)
	launcher.SetAction("more")
	assert.True(t, m.Perform(launcher))
	assert.Equal(t, []string{"run", "more"}, p.actions)
}
