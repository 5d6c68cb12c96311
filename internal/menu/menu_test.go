package menu_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menukit/internal/menu"
)

func TestAddInsertRemove(t *testing.T) {
	m := menu.NewMenu("Edit")
	d := &recordingDelegate{}
	m.SetDelegate(d)

	cut := menu.NewItem("Cut", "cut", "x")
	paste := menu.NewItem("Paste", "paste", "v")
	require.NoError(t, m.AddItem(cut))
	require.NoError(t, m.AddItem(paste))
	require.Equal(t, 2, m.Len())
	assert.Equal(t, 2, d.layoutChanges)

	copyItem := menu.NewItem("Copy", "copy", "c")
	require.NoError(t, m.InsertItem(copyItem, 1))
	assert.Same(t, copyItem, m.ItemAt(1))
	assert.Same(t, paste, m.ItemAt(2))
	assert.Same(t, m, copyItem.Menu())

	require.NoError(t, m.RemoveItem(copyItem))
	assert.Nil(t, copyItem.Menu())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, -1, m.IndexOf(copyItem))
}

func TestInsertRejectsOwnedItem(t *testing.T) {
	a := menu.NewMenu("A")
	b := menu.NewMenu("B")
	it := menu.NewItem("x", "", "")
	require.NoError(t, a.AddItem(it))

	err := b.AddItem(it)
	require.Error(t, err)
	assert.True(t, errors.Is(err, menu.ErrInvalidArgument))
	assert.Same(t, a, it.Menu())
}

func TestInsertIndexOutOfRange(t *testing.T) {
	m := menu.NewMenu("Test")
	err := m.InsertItem(menu.NewItem("x", "", ""), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, menu.ErrInvalidArgument))

	err = m.InsertItem(menu.NewItem("x", "", ""), -1)
	require.Error(t, err)
}

func TestItemLookup(t *testing.T) {
	m := menu.NewMenu("View")
	a := menu.NewItem("Zoom In", "zoomIn", "+")
	a.SetTag(10)
	b := menu.NewItem("Zoom Out", "zoomOut", "-")
	b.SetTag(20)
	require.NoError(t, m.AddItem(a))
	require.NoError(t, m.AddItem(b))

	assert.Same(t, b, m.ItemWithTag(20))
	assert.Nil(t, m.ItemWithTag(99))
	assert.Same(t, a, m.ItemWithTitle("Zoom In"))
	assert.Nil(t, m.ItemWithTitle("Zoom"))
	assert.Nil(t, m.ItemAt(5))
}

func TestIndexOfItemWithSubmenu(t *testing.T) {
	m := menu.NewMenu("Root")
	plain := menu.NewItem("Plain", "", "")
	launcher := menu.NewItem("More", "", "")
	require.NoError(t, m.AddItem(plain))
	require.NoError(t, m.AddItem(launcher))

	sub := menu.NewMenu("More")
	require.NoError(t, launcher.SetSubmenu(sub))

	assert.Equal(t, 1, m.IndexOfItemWithSubmenu(sub))
	assert.Equal(t, -1, m.IndexOfItemWithSubmenu(menu.NewMenu("Other")))
	assert.Equal(t, -1, m.IndexOfItemWithSubmenu(nil))
}

func TestInsertReparentsAttachedSubmenu(t *testing.T) {
	it := menu.NewItem("More", "", "")
	sub := menu.NewMenu("More")
	require.NoError(t, it.SetSubmenu(sub))
	require.Nil(t, sub.Supermenu(), "unowned item's submenu has no supermenu yet")
	require.Nil(t, it.Target())

	m := menu.NewMenu("Root")
	require.NoError(t, m.AddItem(it))
	assert.Same(t, m, sub.Supermenu())
	assert.Same(t, m, it.Target(), "launcher target follows the owning menu")

	require.NoError(t, m.RemoveItem(it))
	assert.Nil(t, sub.Supermenu())
	assert.Nil(t, it.Target())
}

func TestRemoveAllItems(t *testing.T) {
	m := menu.NewMenu("Test")
	a := menu.NewItem("A", "", "")
	b := menu.NewItem("B", "", "")
	require.NoError(t, m.AddItem(a))
	require.NoError(t, m.AddItem(b))
	m.SetHighlightedItem(b)

	m.RemoveAllItems()
	assert.Zero(t, m.Len())
	assert.Nil(t, a.Menu())
	assert.Nil(t, b.Menu())
	assert.Nil(t, m.HighlightedItem())
}

func TestHighlightInvalidatesBothRows(t *testing.T) {
	m := menu.NewMenu("Test")
	a := menu.NewItem("A", "", "")
	b := menu.NewItem("B", "", "")
	require.NoError(t, m.AddItem(a))
	require.NoError(t, m.AddItem(b))

	ra := a.RowCache()
	rb := b.RowCache()
	ra.Refresh(a)
	rb.Refresh(b)

	m.SetHighlightedItem(a)
	assert.True(t, ra.Dirty())
	assert.False(t, rb.Dirty())

	ra.Refresh(a)
	m.SetHighlightedItem(b)
	assert.True(t, ra.Dirty(), "previous highlight is invalidated")
	assert.True(t, rb.Dirty(), "new highlight is invalidated")

	// Re-highlighting the same item coalesces to nothing.
	ra.Refresh(a)
	rb.Refresh(b)
	m.SetHighlightedItem(b)
	assert.False(t, rb.Dirty())
}

func TestItemsReturnsCopy(t *testing.T) {
	m := menu.NewMenu("Test")
	require.NoError(t, m.AddItem(menu.NewItem("A", "", "")))

	items := m.Items()
	items[0] = nil
	assert.NotNil(t, m.ItemAt(0))
}
