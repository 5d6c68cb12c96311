package definition

import (
	"fmt"

	"menukit/internal/menu"
)

// Build constructs a live menu tree from a definition. Every non-separator
// item with an action name is targeted at performer; submenu launchers get
// their container-bound pair from attachment.
func Build(def *Menu, performer menu.Performer) (*menu.Menu, error) {
	if def == nil {
		return nil, fmt.Errorf("definition: nil definition")
	}
	m := menu.NewMenu(def.Title)
	if err := buildItems(m, def.Items, performer); err != nil {
		return nil, err
	}
	// Autoenabling is applied after the items are built so the definition's
	// disabled flags land before the container takes the enabled flag over.
	m.SetAutoenablesItems(def.Autoenables)
	return m, nil
}

func buildItems(m *menu.Menu, items []Item, performer menu.Performer) error {
	for _, di := range items {
		if di.Separator {
			if err := m.AddItem(menu.SeparatorItem()); err != nil {
				return err
			}
			continue
		}

		it := menu.NewItem("", di.Action, di.Key)
		it.SetTitleWithMnemonic(di.Title)
		if di.Action != "" {
			it.SetTarget(performer)
		}

		mods, err := parseModifiers(di.Modifiers)
		if err != nil {
			return fmt.Errorf("definition: item %q: %w", di.Title, err)
		}
		it.SetKeyEquivalentModifierMask(mods)

		state, err := parseState(di.State)
		if err != nil {
			return fmt.Errorf("definition: item %q: %w", di.Title, err)
		}
		it.SetState(state)

		it.SetTag(di.Tag)
		it.SetToolTip(di.ToolTip)
		it.SetAlternate(di.Alternate)
		it.SetHidden(di.Hidden)
		it.SetEnabled(!di.Disabled)
		it.SetImage(menu.Image(di.Image))
		if err := it.SetIndentationLevel(di.Indent); err != nil {
			return fmt.Errorf("definition: item %q: %w", di.Title, err)
		}

		if err := m.AddItem(it); err != nil {
			return err
		}

		if len(di.Items) > 0 {
			sub := menu.NewMenu(it.Title())
			if err := buildItems(sub, di.Items, performer); err != nil {
				return err
			}
			if err := it.SetSubmenu(sub); err != nil {
				return err
			}
		}
	}
	return nil
}
