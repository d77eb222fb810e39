package toolbar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func list(ids ...string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func abcDocs() mapDocs {
	return mapDocs{"Win": {"default_items": list("A", "B", "C")}}
}

func TestMerger_HelperContribution(t *testing.T) {
	export := newHelper(".export", "Action", "Action")
	docs := mapDocs{"Win": {
		"default_items": list("Save", "Print"),
		"helpers":       map[string]any{".export": list("Action")},
	}}
	m := NewMerger(newRegistry(export), docs, memStore{})

	cfg := m.Resolve(newOwner("Win"))
	assert.Equal(t, []string{"Save", "Print", "Action.export"}, cfg.ItemOrder)
	assert.Equal(t, []string{"Save", "Print", "Action.export"}, cfg.DefaultItems)
	assert.Equal(t, []string{"Save", "Print", "Action.export", SeparatorItemIdentifier, SpacerItemIdentifier}, cfg.AllowedItems)
	assert.True(t, cfg.IsAllowed("Action.export"))
	assert.False(t, cfg.Degraded)
	assert.Empty(t, cfg.Diagnostics)
}

func TestMerger_PersistedOrder(t *testing.T) {
	tests := []struct {
		name      string
		persisted []string
		known     []string
		want      []string
	}{
		{name: "reordered prefix", persisted: []string{"B", "A"}, want: []string{"B", "A", "C"}},
		{name: "unknown item dropped", persisted: []string{"D", "A"}, want: []string{"A", "B", "C"}},
		{name: "standard items kept", persisted: []string{"B", "Separator", "A", "Separator"}, want: []string{"B", "Separator", "A", "Separator", "C"}},
		{name: "duplicates collapsed", persisted: []string{"C", "C"}, want: []string{"C", "A", "B"}},
		{name: "empty record", persisted: []string{}, want: []string{"A", "B", "C"}},
		{name: "known default left out", persisted: []string{"B", "A"}, known: []string{"A", "B", "C"}, want: []string{"B", "A"}},
		{name: "default added since save", persisted: []string{"B"}, known: []string{"A", "B"}, want: []string{"B", "C"}},
		{name: "everything hidden", persisted: []string{}, known: []string{"A", "B", "C"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := memStore{"Win": {Items: tt.persisted, Known: tt.known}}
			cfg := NewMerger(newRegistry(), abcDocs(), prefs).Resolve(newOwner("Win"))
			assert.Equal(t, tt.want, cfg.ItemOrder)
			assert.Equal(t, []string{"A", "B", "C"}, cfg.DefaultItems)
			assert.False(t, cfg.IsAllowed("D"))
		})
	}
}

func TestMerger_PaletteOnlyItems(t *testing.T) {
	docs := mapDocs{"Win": {
		"default_items": list("A", "B"),
		"allowed_items": list("Copy", "Separator"),
	}}

	cfg := NewMerger(newRegistry(), docs, memStore{}).Resolve(newOwner("Win"))
	assert.Equal(t, []string{"A", "B"}, cfg.ItemOrder)
	assert.Equal(t, []string{"A", "B", "Copy", SeparatorItemIdentifier, SpacerItemIdentifier}, cfg.AllowedItems)

	prefs := memStore{"Win": {Items: []string{"Copy", "B"}}}
	cfg = NewMerger(newRegistry(), docs, prefs).Resolve(newOwner("Win"))
	assert.Equal(t, []string{"Copy", "B", "A"}, cfg.ItemOrder)
}

func TestMerger_StaticDictionary(t *testing.T) {
	static := map[string]any{"default_items": list("X", "Y")}

	t.Run("used when autosave is disabled", func(t *testing.T) {
		o := newOwner("Win")
		o.autosave = false
		o.static = static

		cfg := NewMerger(newRegistry(), mapDocs{}, memStore{}).Resolve(o)
		assert.Equal(t, []string{"X", "Y"}, cfg.ItemOrder)
		assert.False(t, cfg.Degraded)
		assert.False(t, cfg.Autosaves)
	})

	t.Run("ignored when autosave is enabled", func(t *testing.T) {
		o := newOwner("Win")
		o.static = static

		cfg := NewMerger(newRegistry(), mapDocs{}, memStore{}).Resolve(o)
		assert.Empty(t, cfg.ItemOrder)
		assert.True(t, cfg.Degraded)
		require.Len(t, cfg.Diagnostics, 1)
		assert.ErrorIs(t, cfg.Diagnostics[0], ErrConfigurationMissing)
		assert.Equal(t, []string{SeparatorItemIdentifier, SpacerItemIdentifier}, cfg.AllowedItems)
	})

	t.Run("document wins over dictionary", func(t *testing.T) {
		o := newOwner("Win")
		o.autosave = false
		o.static = static

		cfg := NewMerger(newRegistry(), abcDocs(), memStore{}).Resolve(o)
		assert.Equal(t, []string{"A", "B", "C"}, cfg.ItemOrder)
	})

	t.Run("no record uses document defaults", func(t *testing.T) {
		o := newOwner("Win")
		o.static = static

		cfg := NewMerger(newRegistry(), abcDocs(), memStore{}).Resolve(o)
		assert.Equal(t, []string{"A", "B", "C"}, cfg.ItemOrder)
	})

	t.Run("record ignored without autosave", func(t *testing.T) {
		o := newOwner("Win")
		o.autosave = false

		prefs := memStore{"Win": {Items: []string{"C"}}}
		cfg := NewMerger(newRegistry(), abcDocs(), prefs).Resolve(o)
		assert.Equal(t, []string{"A", "B", "C"}, cfg.ItemOrder)
	})
}

type failingDocs struct{ err error }

func (d failingDocs) Load(string) (map[string]any, error) { return nil, d.err }

func TestMerger_DocumentReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	cfg := NewMerger(newRegistry(), failingDocs{err: readErr}, nil).Resolve(newOwner("Win"))

	assert.True(t, cfg.Degraded)
	require.Len(t, cfg.Diagnostics, 2)
	assert.ErrorIs(t, cfg.Diagnostics[0], readErr)
	assert.ErrorIs(t, cfg.Diagnostics[1], ErrConfigurationMissing)
}

func TestMerger_ToolbarIdentifier(t *testing.T) {
	prefs := memStore{
		"Win":    {Items: []string{"C"}},
		"Custom": {Items: []string{"B"}},
	}
	m := NewMerger(newRegistry(), abcDocs(), prefs)

	cfg := m.Resolve(newOwner("Win"))
	assert.Equal(t, "Win", cfg.ToolbarIdentifier)
	assert.Equal(t, []string{"C", "A", "B"}, cfg.ItemOrder)

	cfg = m.Resolve(&overridingOwner{fakeOwner: newOwner("Win"), id: "Custom"})
	assert.Equal(t, "Win", cfg.ConfigurationName)
	assert.Equal(t, "Custom", cfg.ToolbarIdentifier)
	assert.Equal(t, []string{"B", "A", "C"}, cfg.ItemOrder)

	cfg = m.Resolve(&overridingOwner{fakeOwner: newOwner("Win"), id: "Win"})
	assert.Equal(t, "Win", cfg.ToolbarIdentifier)
}

func TestMerger_DisplayModePrecedence(t *testing.T) {
	owner := newOwner("Win")
	owner.mode = DisplayModeIconOnly

	cfg := NewMerger(newRegistry(), abcDocs(), memStore{}).Resolve(owner)
	assert.Equal(t, DisplayModeIconOnly, cfg.DisplayMode, "owner default")

	docs := mapDocs{"Win": {"display_mode": "label", "default_items": list("A")}}
	cfg = NewMerger(newRegistry(), docs, memStore{}).Resolve(owner)
	assert.Equal(t, DisplayModeLabelOnly, cfg.DisplayMode, "document")

	prefs := memStore{"Win": {DisplayMode: DisplayModeIconAndLabel, HasDisplayMode: true}}
	cfg = NewMerger(newRegistry(), docs, prefs).Resolve(owner)
	assert.Equal(t, DisplayModeIconAndLabel, cfg.DisplayMode, "persisted")
	assert.Equal(t, []string{"A"}, cfg.ItemOrder, "a record without items keeps the defaults")
}

func TestMerger_AllowsCustomization(t *testing.T) {
	tests := []struct {
		name  string
		owner bool
		doc   any
		want  bool
	}{
		{name: "owner allows", owner: true, want: true},
		{name: "document forbids", owner: true, doc: false, want: false},
		{name: "owner forbids", owner: false, doc: true, want: false},
		{name: "document allows", owner: true, doc: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := map[string]any{"default_items": list("A")}
			if tt.doc != nil {
				tree["allows_customization"] = tt.doc
			}
			o := newOwner("Win")
			o.custom = tt.owner

			cfg := NewMerger(newRegistry(), mapDocs{"Win": tree}, nil).Resolve(o)
			assert.Equal(t, tt.want, cfg.AllowsCustomization)
		})
	}
}

func TestMerger_VersionCompatibility(t *testing.T) {
	docs := mapDocs{"Win": {"version": "2.1.0", "default_items": list("A", "B", "C")}}

	tests := []struct {
		name  string
		saved string
		want  []string
	}{
		{name: "same major", saved: "2.0.0", want: []string{"C", "A", "B"}},
		{name: "prefixed version", saved: "v2.3.1", want: []string{"C", "A", "B"}},
		{name: "older major", saved: "1.4.0", want: []string{"A", "B", "C"}},
		{name: "newer major", saved: "3.0.0", want: []string{"A", "B", "C"}},
		{name: "unversioned record", saved: "", want: []string{"C", "A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := memStore{"Win": {
				Items:          []string{"C"},
				Version:        tt.saved,
				DisplayMode:    DisplayModeLabelOnly,
				HasDisplayMode: true,
			}}
			cfg := NewMerger(newRegistry(), docs, prefs).Resolve(newOwner("Win"))
			assert.Equal(t, "2.1.0", cfg.Version)
			assert.Equal(t, tt.want, cfg.ItemOrder)
			assert.Equal(t, DisplayModeLabelOnly, cfg.DisplayMode)
		})
	}
}

func TestMerger_MalformedEntries(t *testing.T) {
	docs := mapDocs{"Win": {
		"version":              5,
		"display_mode":         "sideways",
		"allows_customization": "yes",
		"default_items":        []any{"A", 3, "", "B"},
		"items": map[string]any{
			"A": map[string]any{"label": "Alpha"},
			"B": "not a table",
			"C": map[string]any{"label": 7},
		},
	}}
	owner := newOwner("Win")
	owner.mode = DisplayModeIconOnly

	cfg := NewMerger(newRegistry(), docs, nil).Resolve(owner)
	assert.Equal(t, []string{"A", "B"}, cfg.ItemOrder)
	assert.Equal(t, DisplayModeIconOnly, cfg.DisplayMode)
	assert.True(t, cfg.AllowsCustomization)
	assert.Empty(t, cfg.Version)
	assert.False(t, cfg.Degraded)

	require.Len(t, cfg.Diagnostics, 7)
	for _, err := range cfg.Diagnostics {
		assert.ErrorIs(t, err, ErrMalformedEntry)
	}

	info, ok := cfg.builtinInfo("A")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", info.Label)
}

func TestMerger_HelperSelection(t *testing.T) {
	export := newHelper(".export", "ExportTemplate", "Text", "Markdown", "HTML")
	scripts := newHelper(".script", "ScriptTemplate", "lint", "count")

	t.Run("registration order then document order", func(t *testing.T) {
		docs := mapDocs{"Win": {
			"default_items": list("Save"),
			"helpers": map[string]any{
				".export": list("HTML", "Text"),
				".script": list("count"),
			},
		}}
		cfg := NewMerger(newRegistry(scripts, export), docs, nil).Resolve(newOwner("Win"))
		assert.Equal(t, []string{"Save", "count.script", "HTML.export", "Text.export"}, cfg.ItemOrder)
	})

	t.Run("wildcard selects every item", func(t *testing.T) {
		docs := mapDocs{"Win": {"helpers": map[string]any{".export": list("*")}}}
		cfg := NewMerger(newRegistry(export), docs, nil).Resolve(newOwner("Win"))
		assert.Equal(t, []string{"Text.export", "Markdown.export", "HTML.export"}, cfg.ItemOrder)
	})

	t.Run("names the helper does not provide", func(t *testing.T) {
		docs := mapDocs{"Win": {"helpers": map[string]any{".export": list("PDF", "Text")}}}
		cfg := NewMerger(newRegistry(export), docs, nil).Resolve(newOwner("Win"))
		assert.Equal(t, []string{"Text.export"}, cfg.ItemOrder)
		require.Len(t, cfg.Diagnostics, 1)
		assert.ErrorIs(t, cfg.Diagnostics[0], ErrMalformedEntry)
	})

	t.Run("unregistered namespace", func(t *testing.T) {
		docs := mapDocs{"Win": {
			"default_items": list("Save"),
			"helpers":       map[string]any{".missing": list("X")},
		}}
		cfg := NewMerger(newRegistry(export), docs, nil).Resolve(newOwner("Win"))
		assert.Equal(t, []string{"Save"}, cfg.ItemOrder)
		require.Len(t, cfg.Diagnostics, 1)
		assert.Contains(t, cfg.Diagnostics[0].Error(), ".missing")
		assert.False(t, cfg.IsAllowed("X.missing"))
	})

	t.Run("helper items positioned in defaults", func(t *testing.T) {
		docs := mapDocs{"Win": {
			"default_items": list("Save", "HTML.export", "Print", "PDF.export"),
			"helpers":       map[string]any{".export": list("Text", "HTML")},
		}}
		cfg := NewMerger(newRegistry(export), docs, nil).Resolve(newOwner("Win"))
		assert.Equal(t, []string{"Save", "HTML.export", "Print", "Text.export"}, cfg.ItemOrder)
		require.Len(t, cfg.Diagnostics, 1)
		assert.Contains(t, cfg.Diagnostics[0].Error(), "PDF.export")
	})

	t.Run("helper items are not built-ins", func(t *testing.T) {
		docs := mapDocs{"Win": {
			"helpers": map[string]any{".export": list("Text")},
			"items": map[string]any{
				"ExportTemplate": map[string]any{"label": "Export"},
				"Text.export":    map[string]any{"label": "Plain text"},
			},
		}}
		cfg := NewMerger(newRegistry(export), docs, nil).Resolve(newOwner("Win"))
		_, ok := cfg.builtinInfo("Text.export")
		assert.False(t, ok)
		_, ok = cfg.builtinInfo("ExportTemplate")
		assert.True(t, ok, "templates without a helper-owned suffix stay in the catalogue")
	})
}

func TestMerger_NilStores(t *testing.T) {
	cfg := NewMerger(nil, nil, nil).Resolve(newOwner("Win"))
	assert.True(t, cfg.Degraded)
	assert.Empty(t, cfg.ItemOrder)
}
