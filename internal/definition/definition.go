// Package definition loads declarative menu files and builds live menu
// trees from them.
//
// Formats are selected by file extension: .json (validated against the
// embedded schema), .toml, and .yaml/.yml. A definition names actions
// symbolically; Build binds them to a caller-supplied Performer.
package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"menukit/internal/menu"
)

// Menu is the root of a definition file.
type Menu struct {
	// Title is the menu title. Required.
	Title string `toml:"title" json:"title" yaml:"title"`

	// Autoenables hands the enabled flag of every item to the container.
	Autoenables bool `toml:"autoenables" json:"autoenables,omitempty" yaml:"autoenables"`

	// Items is the ordered list of entries.
	Items []Item `toml:"items" json:"items,omitempty" yaml:"items"`
}

// Item is one entry of a definition. An '&' in the title marks the
// mnemonic character.
type Item struct {
	Title string `toml:"title" json:"title,omitempty" yaml:"title"`

	// Separator makes the entry a divider; all other fields are ignored.
	Separator bool `toml:"separator" json:"separator,omitempty" yaml:"separator"`

	// Action is the operation name bound at build time.
	Action string `toml:"action" json:"action,omitempty" yaml:"action"`

	// Key and Modifiers describe the key equivalent. Modifier names:
	// cmd, shift, ctrl, alt.
	Key       string   `toml:"key" json:"key,omitempty" yaml:"key"`
	Modifiers []string `toml:"modifiers" json:"modifiers,omitempty" yaml:"modifiers"`

	// State is off, on, or mixed. Empty means off.
	State string `toml:"state" json:"state,omitempty" yaml:"state"`

	Tag       int    `toml:"tag" json:"tag,omitempty" yaml:"tag"`
	Indent    int    `toml:"indent" json:"indent,omitempty" yaml:"indent"`
	ToolTip   string `toml:"tooltip" json:"tooltip,omitempty" yaml:"tooltip"`
	Hidden    bool   `toml:"hidden" json:"hidden,omitempty" yaml:"hidden"`
	Disabled  bool   `toml:"disabled" json:"disabled,omitempty" yaml:"disabled"`
	Alternate bool   `toml:"alternate" json:"alternate,omitempty" yaml:"alternate"`
	Image     string `toml:"image" json:"image,omitempty" yaml:"image"`

	// Items, when present, make the entry a submenu launcher.
	Items []Item `toml:"items" json:"items,omitempty" yaml:"items"`
}

// Parse loads a definition file, selecting the format by extension.
func Parse(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("definition: unsupported format %q", filepath.Ext(path))
	}
}

// ParseTOML parses a TOML definition.
func ParseTOML(data []byte) (*Menu, error) {
	var def Menu
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("definition: parse toml: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ParseYAML parses a YAML definition.
func ParseYAML(data []byte) (*Menu, error) {
	var def Menu
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("definition: parse yaml: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Menu) validate() error {
	if d.Title == "" {
		return fmt.Errorf("definition: menu title is required")
	}
	return validateItems(d.Items, d.Title)
}

func validateItems(items []Item, path string) error {
	for i, it := range items {
		where := fmt.Sprintf("%s[%d]", path, i)
		if it.Separator {
			continue
		}
		if _, err := parseState(it.State); err != nil {
			return fmt.Errorf("definition: %s: %w", where, err)
		}
		if _, err := parseModifiers(it.Modifiers); err != nil {
			return fmt.Errorf("definition: %s: %w", where, err)
		}
		if it.Indent < 0 || it.Indent > menu.MaxIndentationLevel {
			return fmt.Errorf("definition: %s: indent %d out of range [0, %d]", where, it.Indent, menu.MaxIndentationLevel)
		}
		if err := validateItems(it.Items, where); err != nil {
			return err
		}
	}
	return nil
}

func parseState(s string) (menu.State, error) {
	switch s {
	case "", "off":
		return menu.StateOff, nil
	case "on":
		return menu.StateOn, nil
	case "mixed":
		return menu.StateMixed, nil
	}
	return menu.StateOff, fmt.Errorf("unknown state %q", s)
}

func parseModifiers(names []string) (menu.ModifierMask, error) {
	var mask menu.ModifierMask
	for _, name := range names {
		switch name {
		case "cmd":
			mask |= menu.ModCommand
		case "shift":
			mask |= menu.ModShift
		case "ctrl":
			mask |= menu.ModControl
		case "alt":
			mask |= menu.ModOption
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mask, nil
}
