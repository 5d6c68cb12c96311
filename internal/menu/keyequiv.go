package menu

import "strings"

// ModifierMask is a bitmask of keyboard modifiers attached to an item's
// key equivalent.
type ModifierMask uint32

// Modifier bits.
const (
	ModShift ModifierMask = 1 << iota
	ModControl
	ModOption
	ModCommand
)

// State is the toggle state of an item.
type State int

// Item states.
const (
	StateOff State = iota
	StateOn
	StateMixed
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateOn:
		return "on"
	case StateMixed:
		return "mixed"
	}
	return "unknown"
}

// keyEquivalentDisplay renders a key equivalent for display. The string is
// built right to left: the uppercased key, then ^ for Control, ⇧ for
// Shift, and ⌘ for Command prepended last so it reads ⌘⇧^KEY. The Option
// bit is carried in the mask but has no glyph here.
func keyEquivalentDisplay(key string, mods ModifierMask) string {
	if key == "" {
		return ""
	}
	s := strings.ToUpper(key)
	if mods&ModControl != 0 {
		s = "^" + s
	}
	if mods&ModShift != 0 {
		s = "⇧" + s
	}
	if mods&ModCommand != 0 {
		s = "⌘" + s
	}
	return s
}
