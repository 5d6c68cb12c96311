package menu

import (
	"menukit/internal/archive"
)

// Archive keys. The bag is order-insensitive; only the owner-before-submenu
// decode rule below depends on sequencing.
const (
	keySeparator     = "separator"
	keyTitle         = "title"
	keyFont          = "font"
	keyTarget        = "target"
	keyAction        = "action"
	keyEnabled       = "enabled"
	keyHidden        = "hidden"
	keyTag           = "tag"
	keyState         = "state"
	keyImage         = "image"
	keyAlternateImg  = "alternateImage"
	keyOnStateImg    = "onStateImage"
	keyOffStateImg   = "offStateImage"
	keyMixedStateImg = "mixedStateImage"
	keySubmenu       = "submenu"
	keyKeyEquivalent = "keyEquivalent"
	keyModifiers     = "keyModifiers"
	keyMnemonicLoc   = "mnemonicLocation"
	keyAlternate     = "alternate"
	keyIndent        = "indentationLevel"
	keyToolTip       = "toolTip"
	keyRepresented   = "representedObject"

	keyAutoenables = "autoenables"
	keyItems       = "items"
)

// DecodeOptions control how archived references are rebound to live
// objects.
type DecodeOptions struct {
	// ResolveTarget maps an archived target reference to a live Performer.
	// When nil, or when it returns nil, the decoded item has no target.
	ResolveTarget func(ref string) Performer
}

// Encode archives the item. Values equal to their documented default are
// omitted, with three exceptions: the separator flag is written whenever
// true, and title, target, and action are written unconditionally since
// none of them has a universal default worth omitting. The row cache and
// any custom view are presentation state and never archived.
func (it *Item) Encode() archive.Archive {
	a := archive.New()
	if it.separator {
		a.Put(keySeparator, true)
	}
	a.Put(keyTitle, it.title)
	a.Put(keyTarget, targetRef(it.target))
	a.Put(keyAction, it.action)
	a.SetString(keyFont, string(it.font), "")
	a.SetBool(keyEnabled, it.enabled, true)
	a.SetBool(keyHidden, it.hidden, false)
	a.SetInt(keyTag, it.tag, 0)
	a.SetInt(keyState, int(it.state), int(StateOff))
	a.SetString(keyImage, string(it.image), "")
	a.SetString(keyAlternateImg, string(it.alternateImage), "")
	a.SetString(keyOnStateImg, string(it.onStateImage), "")
	a.SetString(keyOffStateImg, string(it.offStateImage), "")
	a.SetString(keyMixedStateImg, string(it.mixedStateImage), "")
	a.SetString(keyKeyEquivalent, it.keyEquivalent, "")
	a.SetInt(keyModifiers, int(it.modifiers), 0)
	a.SetInt(keyMnemonicLoc, it.mnemonicLoc, NoMnemonic)
	a.SetBool(keyAlternate, it.alternate, false)
	a.SetInt(keyIndent, it.indent, 0)
	a.SetString(keyToolTip, it.toolTip, "")
	if it.represented != nil {
		a.Put(keyRepresented, it.represented)
	}
	if it.submenu != nil {
		a.Put(keySubmenu, it.submenu.Encode())
	}
	return a
}

// DecodeItem rebuilds an item from an archive. Absent keys fall back to
// their defaults rather than failing. The owner back-reference is bound
// before the submenu is restored: reattachment rebinds the target/action
// pair through the owning container, so the order matters.
func DecodeItem(a archive.Archive, owner *Menu, opts *DecodeOptions) (*Item, error) {
	it := &Item{mnemonicLoc: NoMnemonic}
	it.menu = owner

	it.separator = a.Bool(keySeparator, false)
	it.title = a.String(keyTitle, "")
	it.action = a.String(keyAction, "")
	if opts != nil && opts.ResolveTarget != nil {
		if ref := a.String(keyTarget, ""); ref != "" {
			it.target = opts.ResolveTarget(ref)
		}
	}
	it.font = Font(a.String(keyFont, ""))
	it.enabled = a.Bool(keyEnabled, true)
	it.hidden = a.Bool(keyHidden, false)
	it.tag = a.Int(keyTag, 0)
	it.state = State(a.Int(keyState, int(StateOff)))
	it.image = Image(a.String(keyImage, ""))
	it.alternateImage = Image(a.String(keyAlternateImg, ""))
	it.onStateImage = Image(a.String(keyOnStateImg, ""))
	it.offStateImage = Image(a.String(keyOffStateImg, ""))
	it.mixedStateImage = Image(a.String(keyMixedStateImg, ""))
	it.keyEquivalent = a.String(keyKeyEquivalent, "")
	it.modifiers = ModifierMask(a.Int(keyModifiers, 0))
	it.mnemonicLoc = a.Int(keyMnemonicLoc, NoMnemonic)
	it.alternate = a.Bool(keyAlternate, false)
	it.indent = clampIndent(a.Int(keyIndent, 0))
	it.toolTip = a.String(keyToolTip, "")
	if v, ok := a.Value(keyRepresented); ok {
		it.represented = v
	}

	if sub, ok := a.Child(keySubmenu); ok {
		subMenu, err := DecodeMenu(sub, opts)
		if err != nil {
			return nil, err
		}
		if err := it.SetSubmenu(subMenu); err != nil {
			return nil, err
		}
	}
	return it, nil
}

// Encode archives the menu and, recursively, its items and submenus.
func (m *Menu) Encode() archive.Archive {
	a := archive.New()
	a.Put(keyTitle, m.title)
	a.SetBool(keyAutoenables, m.autoenables, false)
	items := make([]archive.Archive, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, it.Encode())
	}
	a.SetList(keyItems, items)
	return a
}

// DecodeMenu rebuilds a menu tree from an archive.
func DecodeMenu(a archive.Archive, opts *DecodeOptions) (*Menu, error) {
	m := NewMenu(a.String(keyTitle, ""))
	m.autoenables = a.Bool(keyAutoenables, false)
	for _, ia := range a.List(keyItems) {
		it, err := DecodeItem(ia, m, opts)
		if err != nil {
			return nil, err
		}
		m.items = append(m.items, it)
	}
	return m, nil
}

func targetRef(t Performer) string {
	if r, ok := t.(Referencer); ok {
		return r.ArchiveRef()
	}
	return ""
}

func clampIndent(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxIndentationLevel {
		return MaxIndentationLevel
	}
	return level
}
