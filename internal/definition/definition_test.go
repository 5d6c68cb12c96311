package definition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menukit/internal/definition"
	"menukit/internal/menu"
)

// recordingPerformer records performed actions.
type recordingPerformer struct {
	actions []string
}

func (p *recordingPerformer) PerformAction(action string, sender *menu.Item) {
	p.actions = append(p.actions, action)
}

func writeDefinition(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const jsonDef = `{
  "title": "File",
  "items": [
    {"title": "&Open…", "action": "open", "key": "o", "modifiers": ["cmd"]},
    {"title": "Open &Recent", "items": [
      {"title": "Clear Menu", "action": "clearRecent"}
    ]},
    {"separator": true},
    {"title": "Show Grid", "action": "toggleGrid", "state": "on", "tag": 7},
    {"title": "Secret", "action": "secret", "hidden": true, "disabled": true}
  ]
}`

const tomlDef = `title = "File"

[[items]]
title = "&Open…"
action = "open"
key = "o"
modifiers = ["cmd"]

[[items]]
separator = true

[[items]]
title = "Indented"
action = "indented"
indent = 2
`

const yamlDef = `title: File
autoenables: true
items:
  - title: "&Open…"
    action: open
    key: o
    modifiers: [cmd, shift]
  - title: Nested
    items:
      - title: Inner
        action: inner
`

func TestParseJSON(t *testing.T) {
	path := writeDefinition(t, "menu.json", jsonDef)
	def, err := definition.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "File", def.Title)
	require.Len(t, def.Items, 5)
	assert.Equal(t, "open", def.Items[0].Action)
	assert.True(t, def.Items[2].Separator)
	assert.Equal(t, "on", def.Items[3].State)
	require.Len(t, def.Items[1].Items, 1)
}

func TestParseJSONSchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"items": []}`},
		{"unknown field", `{"title": "X", "colour": "red"}`},
		{"bad modifier", `{"title": "X", "items": [{"title": "A", "modifiers": ["hyper"]}]}`},
		{"bad state", `{"title": "X", "items": [{"title": "A", "state": "sideways"}]}`},
		{"indent above cap", `{"title": "X", "items": [{"title": "A", "indent": 40}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := definition.ParseJSON([]byte(tc.body))
			require.Error(t, err)
		})
	}
}

func TestParseTOML(t *testing.T) {
	path := writeDefinition(t, "menu.toml", tomlDef)
	def, err := definition.Parse(path)
	require.NoError(t, err)

	require.Len(t, def.Items, 3)
	assert.True(t, def.Items[1].Separator)
	assert.Equal(t, 2, def.Items[2].Indent)
}

func TestParseYAML(t *testing.T) {
	path := writeDefinition(t, "menu.yaml", yamlDef)
	def, err := definition.Parse(path)
	require.NoError(t, err)

	assert.True(t, def.Autoenables)
	require.Len(t, def.Items, 2)
	assert.Equal(t, []string{"cmd", "shift"}, def.Items[0].Modifiers)
}

func TestParseUnsupportedExtension(t *testing.T) {
	path := writeDefinition(t, "menu.ini", "title=File")
	_, err := definition.Parse(path)
	require.Error(t, err)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := definition.ParseTOML([]byte("title = \"X\"\n[[items]]\ntitle = \"A\"\nstate = \"sideways\"\n"))
	require.Error(t, err)

	_, err = definition.ParseTOML([]byte("title = \"X\"\n[[items]]\ntitle = \"A\"\nmodifiers = [\"hyper\"]\n"))
	require.Error(t, err)

	_, err = definition.ParseTOML([]byte("[[items]]\ntitle = \"A\"\n"))
	require.Error(t, err, "missing menu title")
}

func TestBuild(t *testing.T) {
	def, err := definition.ParseJSON([]byte(jsonDef))
	require.NoError(t, err)

	p := &recordingPerformer{}
	m, err := definition.Build(def, p)
	require.NoError(t, err)

	assert.Equal(t, "File", m.Title())
	require.Equal(t, 5, m.Len())

	open := m.ItemAt(0)
	assert.Equal(t, "Open…", open.Title())
	assert.Equal(t, 0, open.MnemonicLocation())
	assert.Equal(t, "o", open.KeyEquivalent())
	assert.Equal(t, menu.ModCommand, open.KeyEquivalentModifierMask())
	assert.Equal(t, "⌘O", open.KeyEquivalentDisplay())

	recent := m.ItemAt(1)
	require.True(t, recent.HasSubmenu())
	assert.Equal(t, "Open Recent", recent.Title())
	assert.Equal(t, menu.SubmenuAction, recent.Action())
	assert.Same(t, m, recent.Submenu().Supermenu())
	assert.Equal(t, "Clear Menu", recent.Submenu().ItemAt(0).Title())

	assert.True(t, m.ItemAt(2).IsSeparator())

	grid := m.ItemAt(3)
	assert.Equal(t, menu.StateOn, grid.State())
	assert.Same(t, grid, m.ItemWithTag(7))

	secret := m.ItemAt(4)
	assert.True(t, secret.IsHidden())
	assert.False(t, secret.IsEnabled())

	require.True(t, m.Perform(open))
	assert.Equal(t, []string{"open"}, p.actions)
}

func TestBuildAutoenables(t *testing.T) {
	def, err := definition.ParseYAML([]byte(yamlDef))
	require.NoError(t, err)

	m, err := definition.Build(def, &recordingPerformer{})
	require.NoError(t, err)
	assert.True(t, m.AutoenablesItems())
}

func TestBuildNil(t *testing.T) {
	_, err := definition.Build(nil, nil)
	require.Error(t, err)
}
