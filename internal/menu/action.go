package menu

// Performer executes a named operation on behalf of a menu item. The item
// is passed as context so one receiver can serve many items.
type Performer interface {
	PerformAction(action string, sender *Item)
}

// SubmenuAction is the operation bound to an item when a submenu is
// attached. Items carrying this action with their container as target are
// submenu launchers, not selectable commands.
const SubmenuAction = "submenuAction"

// Referencer lets a target identify itself with a stable name so the
// target half of an action pair survives archiving. Targets that do not
// implement it are archived as an empty reference.
type Referencer interface {
	ArchiveRef() string
}

// performerOrNil converts a possibly-nil *Menu into a Performer without
// producing a typed-nil interface value.
func performerOrNil(m *Menu) Performer {
	if m == nil {
		return nil
	}
	return m
}
