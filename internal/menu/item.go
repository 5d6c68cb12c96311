package menu

import (
	"fmt"
)

// Image names an image resource. The package never loads pixels; renderers
// resolve names against their own asset pipeline. The empty name means no
// image.
type Image string

// Font names a font resource, empty meaning the menu default.
type Font string

// NoMnemonic is the mnemonic location of an item whose title carries no
// mnemonic character.
const NoMnemonic = -1

// MaxIndentationLevel is the largest indentation an item can carry; larger
// requests are clamped.
const MaxIndentationLevel = 15

// Item is one row of a menu: a command, a toggle, a submenu launcher, or a
// separator.
//
// Mutators follow one protocol: a write of the value already held is a
// complete no-op; otherwise the value is applied (validated or clamped
// where applicable), the row cache is marked dirty if it has been created,
// and the owning menu is notified. Mutators documented as silent skip the
// dirty mark and the notification because they change behavior, not the
// rendered row.
type Item struct {
	separator bool

	title    string
	font     Font
	target   Performer
	action   string
	enabled  bool
	hidden   bool
	tag      int
	state    State
	alternate bool

	image           Image
	alternateImage  Image
	onStateImage    Image
	offStateImage   Image
	mixedStateImage Image

	submenu *Menu
	// menu is the owning container. The item never owns it; the container
	// sets and clears it on insert and remove.
	menu *Menu

	keyEquivalent string
	modifiers     ModifierMask
	mnemonicLoc   int

	indent      int
	toolTip     string
	represented any
	customView  any

	row *RowCache
}

// NewItem returns an item with the given title, action name, and key
// equivalent. The item is enabled, visible, stateless, and unowned.
func NewItem(title, action, keyEquivalent string) *Item {
	return &Item{
		title:         title,
		action:        action,
		keyEquivalent: keyEquivalent,
		enabled:       true,
		mnemonicLoc:   NoMnemonic,
	}
}

// SeparatorItem returns a separator: a content-free row used purely as a
// visual divider. The separator flag is immutable.
func SeparatorItem() *Item {
	return &Item{
		separator:   true,
		enabled:     true,
		mnemonicLoc: NoMnemonic,
	}
}

// IsSeparator reports whether the item is a separator.
func (it *Item) IsSeparator() bool { return it.separator }

// Menu returns the owning container, or nil for an unowned item.
func (it *Item) Menu() *Menu { return it.menu }

// noteChanged marks the row cache dirty if it exists and notifies the
// owning menu. Creating the cache is never forced by a mutation.
func (it *Item) noteChanged() {
	if it.row != nil {
		it.row.markDirty()
	}
	if it.menu != nil {
		it.menu.itemChanged(it)
	}
}

// Title returns the display title.
func (it *Item) Title() string { return it.title }

// SetTitle sets the display title. Any mnemonic recorded by
// SetTitleWithMnemonic is discarded; only the mnemonic-aware mutator can
// establish one.
func (it *Item) SetTitle(title string) {
	it.mnemonicLoc = NoMnemonic
	if it.title == title {
		return
	}
	it.title = title
	it.noteChanged()
}

// SetTitleWithMnemonic sets the title from a string whose first '&' marks
// the mnemonic character. The marker is removed from the stored title and
// its index recorded. Without a marker this behaves exactly like SetTitle.
func (it *Item) SetTitleWithMnemonic(title string) {
	runes := []rune(title)
	loc := NoMnemonic
	for i, r := range runes {
		if r == '&' {
			loc = i
			break
		}
	}
	if loc == NoMnemonic {
		it.SetTitle(title)
		return
	}
	stripped := string(append(runes[:loc:loc], runes[loc+1:]...))
	it.mnemonicLoc = loc
	if it.title == stripped {
		return
	}
	it.title = stripped
	it.noteChanged()
}

// Mnemonic returns the mnemonic character of the title, or "" when none
// was recorded.
func (it *Item) Mnemonic() string {
	if it.mnemonicLoc == NoMnemonic {
		return ""
	}
	runes := []rune(it.title)
	if it.mnemonicLoc < 0 || it.mnemonicLoc >= len(runes) {
		return ""
	}
	return string(runes[it.mnemonicLoc])
}

// MnemonicLocation returns the rune index of the mnemonic character in the
// title, or NoMnemonic.
func (it *Item) MnemonicLocation() int { return it.mnemonicLoc }

// SetMnemonicLocation records the mnemonic index directly. Silent.
func (it *Item) SetMnemonicLocation(loc int) {
	it.mnemonicLoc = loc
}

// Font returns the item's font reference.
func (it *Item) Font() Font { return it.font }

// SetFont sets the font the row is drawn with.
func (it *Item) SetFont(f Font) {
	if it.font == f {
		return
	}
	it.font = f
	it.noteChanged()
}

// Target returns the receiver half of the action pair.
func (it *Item) Target() Performer { return it.target }

// SetTarget sets the action receiver. Silent.
func (it *Item) SetTarget(t Performer) {
	it.target = t
}

// Action returns the named operation sent to the target.
func (it *Item) Action() string { return it.action }

// SetAction sets the named operation. Silent.
func (it *Item) SetAction(action string) {
	it.action = action
}

// IsEnabled reports whether the item can be selected.
func (it *Item) IsEnabled() bool { return it.enabled }

// SetEnabled sets the enabled flag. When the owning menu autoenables its
// items the call is ignored entirely: enabling policy belongs to the
// container, and the value is not applied.
func (it *Item) SetEnabled(enabled bool) {
	if it.menu != nil && it.menu.AutoenablesItems() {
		return
	}
	if it.enabled == enabled {
		return
	}
	it.enabled = enabled
	it.noteChanged()
}

// IsHidden reports whether the item itself is hidden.
func (it *Item) IsHidden() bool { return it.hidden }

// SetHidden sets the hidden flag.
func (it *Item) SetHidden(hidden bool) {
	if it.hidden == hidden {
		return
	}
	it.hidden = hidden
	it.noteChanged()
}

// IsHiddenOrHasHiddenAncestor reports whether the item is hidden, or any
// item on the supermenu chain through which it is reachable is. The walk
// ends at the root menu.
func (it *Item) IsHiddenOrHasHiddenAncestor() bool {
	if it.hidden {
		return true
	}
	if it.menu == nil {
		return false
	}
	super := it.menu.Supermenu()
	if super == nil {
		return false
	}
	idx := super.IndexOfItemWithSubmenu(it.menu)
	if idx < 0 {
		return false
	}
	return super.ItemAt(idx).IsHiddenOrHasHiddenAncestor()
}

// Tag returns the caller-defined identifier.
func (it *Item) Tag() int { return it.tag }

// SetTag sets the caller-defined identifier. Silent.
func (it *Item) SetTag(tag int) {
	it.tag = tag
}

// State returns the toggle state.
func (it *Item) State() State { return it.state }

// SetState sets the toggle state.
func (it *Item) SetState(s State) {
	if it.state == s {
		return
	}
	it.state = s
	it.noteChanged()
}

// Image returns the item's image.
func (it *Item) Image() Image { return it.image }

// SetImage sets the item's image.
func (it *Item) SetImage(img Image) {
	if it.image == img {
		return
	}
	it.image = img
	it.noteChanged()
}

// AlternateImage returns the image shown while the item is highlighted.
func (it *Item) AlternateImage() Image { return it.alternateImage }

// SetAlternateImage sets the image shown while the item is highlighted.
func (it *Item) SetAlternateImage(img Image) {
	if it.alternateImage == img {
		return
	}
	it.alternateImage = img
	it.noteChanged()
}

// OnStateImage returns the image drawn when the state is StateOn.
func (it *Item) OnStateImage() Image { return it.onStateImage }

// SetOnStateImage sets the StateOn image.
func (it *Item) SetOnStateImage(img Image) {
	if it.onStateImage == img {
		return
	}
	it.onStateImage = img
	it.noteChanged()
}

// OffStateImage returns the image drawn when the state is StateOff.
func (it *Item) OffStateImage() Image { return it.offStateImage }

// SetOffStateImage sets the StateOff image.
func (it *Item) SetOffStateImage(img Image) {
	if it.offStateImage == img {
		return
	}
	it.offStateImage = img
	it.noteChanged()
}

// MixedStateImage returns the image drawn when the state is StateMixed.
func (it *Item) MixedStateImage() Image { return it.mixedStateImage }

// SetMixedStateImage sets the StateMixed image.
func (it *Item) SetMixedStateImage(img Image) {
	if it.mixedStateImage == img {
		return
	}
	it.mixedStateImage = img
	it.noteChanged()
}

// stateImage returns the image for the current state.
func (it *Item) stateImage() Image {
	switch it.state {
	case StateOn:
		return it.onStateImage
	case StateMixed:
		return it.mixedStateImage
	default:
		return it.offStateImage
	}
}

// HasSubmenu reports whether a submenu is attached.
func (it *Item) HasSubmenu() bool { return it.submenu != nil }

// Submenu returns the attached submenu, or nil.
func (it *Item) Submenu() *Menu { return it.submenu }

// SetSubmenu attaches a submenu, or detaches the current one when sub is
// nil. A menu can be the submenu of at most one item: attaching a menu
// that already has a supermenu fails with ErrInvalidArgument, even if the
// caller currently holds it through another item — detach first. On
// attach the target/action pair is rebound to the container's submenu
// launcher; on detach both are cleared.
func (it *Item) SetSubmenu(sub *Menu) error {
	if it.submenu == sub {
		return nil
	}
	if sub != nil && sub.Supermenu() != nil {
		return fmt.Errorf("%w: menu %q is already attached as a submenu", ErrInvalidArgument, sub.Title())
	}
	if it.submenu != nil {
		it.submenu.setSupermenu(nil)
	}
	it.submenu = sub
	if sub != nil {
		sub.setSupermenu(it.menu)
		it.target = performerOrNil(it.menu)
		it.action = SubmenuAction
	} else {
		it.target = nil
		it.action = ""
	}
	it.noteChanged()
	return nil
}

// selectable reports whether activating the item should perform its
// action. An item is selectable unless it is purely a submenu launcher:
// it has a submenu and its action pair is still the container-bound
// default.
func (it *Item) selectable() bool {
	if it.submenu == nil {
		return true
	}
	return it.action != SubmenuAction || it.target != performerOrNil(it.menu)
}

// KeyEquivalent returns the shortcut key string.
func (it *Item) KeyEquivalent() string { return it.keyEquivalent }

// SetKeyEquivalent sets the shortcut key string. Silent; the displayed
// form is derived on demand, never cached.
func (it *Item) SetKeyEquivalent(key string) {
	it.keyEquivalent = key
}

// KeyEquivalentModifierMask returns the shortcut modifier bits.
func (it *Item) KeyEquivalentModifierMask() ModifierMask { return it.modifiers }

// SetKeyEquivalentModifierMask sets the shortcut modifier bits. Silent.
func (it *Item) SetKeyEquivalentModifierMask(mods ModifierMask) {
	it.modifiers = mods
}

// KeyEquivalentDisplay returns the canonical display form of the shortcut,
// "" when no key is set.
func (it *Item) KeyEquivalentDisplay() string {
	return keyEquivalentDisplay(it.keyEquivalent, it.modifiers)
}

// IsAlternate reports whether the item is an alternate for the item above
// it.
func (it *Item) IsAlternate() bool { return it.alternate }

// SetAlternate sets the alternate flag. Silent.
func (it *Item) SetAlternate(alternate bool) {
	it.alternate = alternate
}

// IndentationLevel returns the indentation level, always within
// [0, MaxIndentationLevel].
func (it *Item) IndentationLevel() int { return it.indent }

// SetIndentationLevel sets the indentation level. Negative levels are
// rejected with ErrInvalidArgument; levels above MaxIndentationLevel are
// clamped. Silent.
func (it *Item) SetIndentationLevel(level int) error {
	if level < 0 {
		return fmt.Errorf("%w: indentation level %d is negative", ErrInvalidArgument, level)
	}
	if level > MaxIndentationLevel {
		level = MaxIndentationLevel
	}
	it.indent = level
	return nil
}

// ToolTip returns the tooltip text.
func (it *Item) ToolTip() string { return it.toolTip }

// SetToolTip sets the tooltip text. Silent.
func (it *Item) SetToolTip(tip string) {
	it.toolTip = tip
}

// RepresentedObject returns the arbitrary value the item stands for.
func (it *Item) RepresentedObject() any { return it.represented }

// SetRepresentedObject attaches an arbitrary value to the item. Silent.
func (it *Item) SetRepresentedObject(obj any) {
	it.represented = obj
}

// View returns the custom row renderer, or nil when the item uses the
// menu's standard row drawing.
func (it *Item) View() any { return it.customView }

// SetView installs a custom row renderer.
func (it *Item) SetView(view any) {
	if it.customView == view {
		return
	}
	it.customView = view
	it.noteChanged()
}

// IsHighlighted reports whether the item is the owning menu's currently
// highlighted item. Pure delegation; the item keeps no highlight state.
func (it *Item) IsHighlighted() bool {
	return it.menu != nil && it.menu.HighlightedItem() == it
}

// RowCache returns the item's presentation cache, creating it on first
// access. The cache starts dirty so the first renderer pass fills it.
func (it *Item) RowCache() *RowCache {
	if it.row == nil {
		it.row = &RowCache{dirty: true}
	}
	return it.row
}
