package menu

// RowCache is the cached on-screen representation of one item. It is
// created on first access, owned exclusively by its item, and never
// archived. Appearance mutations mark it dirty; repeated marks coalesce
// into the single flag. Renderers call Refresh to recompute the cached
// strings and clear the flag.
type RowCache struct {
	dirty bool

	Title      string
	KeyDisplay string
	StateImage Image
	Indent     int
}

// Dirty reports whether the cache is out of date with its item.
func (c *RowCache) Dirty() bool {
	return c.dirty
}

func (c *RowCache) markDirty() {
	c.dirty = true
}

// Refresh recomputes the cached presentation fields from the item and
// clears the dirty flag.
func (c *RowCache) Refresh(it *Item) {
	c.Title = it.Title()
	c.KeyDisplay = it.KeyEquivalentDisplay()
	c.StateImage = it.stateImage()
	c.Indent = it.IndentationLevel()
	c.dirty = false
}
