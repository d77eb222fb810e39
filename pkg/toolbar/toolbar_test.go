package toolbar

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func customizable(store CustomizationStore, owner *fakeOwner) *Toolbar {
	export := newHelper(".export", "ExportTemplate", "Text", "HTML")
	c := NewController(owner, newRegistry(export), editorDocs(), store, WithLocale("en"), WithImageService(fakeImages{}))
	return c.CreateToolbar()
}

func TestToolbar_SetItemIdentifiersSaves(t *testing.T) {
	store := new(MockCustomizationStore)
	store.On("Load", "Editor").Return(nil, false)
	store.On("Save", "Editor", mock.MatchedBy(func(c *Customization) bool {
		return assert.ObjectsAreEqual([]string{"HTML.export", "Separator", "Separator", "Save"}, c.Items) &&
			c.Version == "1.0.0" && !c.HasDisplayMode
	})).Return().Once()

	tb := customizable(store, newOwner("Editor"))
	changed := 0
	tb.OnChanged(func() { changed++ })

	err := tb.SetItemIdentifiers([]string{"HTML.export", "Bogus", "Separator", "Separator", "Save", "Save"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HTML.export", "Separator", "Separator", "Save"}, tb.ItemIdentifiers())
	assert.Equal(t, 1, changed)
	store.AssertExpectations(t)
}

func TestToolbar_SetItemIdentifiersWithoutAutosave(t *testing.T) {
	store := new(MockCustomizationStore)
	owner := newOwner("Editor")
	owner.autosave = false

	tb := customizable(store, owner)
	require.NoError(t, tb.SetItemIdentifiers([]string{"Print"}))
	assert.Equal(t, []string{"Print"}, tb.ItemIdentifiers())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Load", mock.Anything)
}

func TestToolbar_CustomizationDisabled(t *testing.T) {
	store := memStore{}
	owner := newOwner("Editor")
	owner.custom = false

	tb := customizable(store, owner)
	before := tb.ItemIdentifiers()

	assert.ErrorIs(t, tb.SetItemIdentifiers([]string{"Print"}), ErrCustomizationDisabled)
	assert.ErrorIs(t, tb.ResetToDefaults(), ErrCustomizationDisabled)
	assert.Equal(t, before, tb.ItemIdentifiers())
	assert.Empty(t, store)
}

func TestToolbar_ResetToDefaults(t *testing.T) {
	store := memStore{}
	tb := customizable(store, newOwner("Editor"))

	require.NoError(t, tb.SetItemIdentifiers([]string{"Copy"}))
	assert.Equal(t, []string{"Copy"}, store["Editor"].Items)

	require.NoError(t, tb.ResetToDefaults())
	assert.Equal(t, []string{"Save", "Separator", "Print", "Text.export", "HTML.export"}, tb.ItemIdentifiers())
	assert.Equal(t, tb.ItemIdentifiers(), store["Editor"].Items)
}

func TestToolbar_CustomizationSurvivesRestart(t *testing.T) {
	store := memStore{}
	tb := customizable(store, newOwner("Editor"))
	require.NoError(t, tb.SetItemIdentifiers([]string{"Print", "Save"}))
	tb.SetDisplayMode(DisplayModeIconOnly)

	tb = customizable(store, newOwner("Editor"))
	assert.Equal(t, []string{"Print", "Save"}, tb.ItemIdentifiers())
	assert.Equal(t, DisplayModeIconOnly, tb.DisplayMode())
}

func TestToolbar_RemovedDefaultStaysHidden(t *testing.T) {
	store := memStore{}
	tb := customizable(store, newOwner("Editor"))
	require.NoError(t, tb.SetItemIdentifiers([]string{"Save", "Separator", "Print"}))
	assert.Equal(t, []string{"Save", "Print", "Text.export", "HTML.export"}, store["Editor"].Known)

	tb = customizable(store, newOwner("Editor"))
	assert.Equal(t, []string{"Save", "Separator", "Print"}, tb.ItemIdentifiers())
	assert.NotContains(t, tb.ItemIdentifiers(), "Text.export")
}

func TestToolbar_NewDefaultAppearsAfterRestart(t *testing.T) {
	store := memStore{"Editor": {
		Items:   []string{"Print", "Save"},
		Version: "1.0.0",
		Known:   []string{"Save", "Print", "Text.export"},
	}}

	tb := customizable(store, newOwner("Editor"))
	assert.Equal(t, []string{"Print", "Save", "HTML.export"}, tb.ItemIdentifiers())
}

func TestToolbar_SetDisplayMode(t *testing.T) {
	store := memStore{}
	tb := customizable(store, newOwner("Editor"))
	changed := 0
	tb.OnChanged(func() { changed++ })

	tb.SetDisplayMode(DisplayModeLabelOnly)
	assert.Equal(t, DisplayModeLabelOnly, tb.DisplayMode())
	require.Contains(t, store, "Editor")
	assert.True(t, store["Editor"].HasDisplayMode)
	assert.Equal(t, DisplayModeLabelOnly, store["Editor"].DisplayMode)
	assert.Equal(t, 1, changed)

	tb.SetDisplayMode(DisplayModeLabelOnly)
	tb.SetDisplayMode(DisplayMode(9))
	assert.Equal(t, 1, changed, "no-op changes are ignored")

	require.NoError(t, tb.SetItemIdentifiers([]string{"Save"}))
	assert.True(t, store["Editor"].HasDisplayMode, "item changes keep the saved display mode")
	assert.Equal(t, DisplayModeLabelOnly, store["Editor"].DisplayMode)
}

func TestToolbar_Widget(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	owner := newOwner("Editor")
	owner.mode = DisplayModeIconOnly
	tb := customizable(memStore{}, owner)

	view := tb.Widget()
	require.Len(t, view.Items, 5)
	assert.IsType(t, &widget.ToolbarAction{}, view.Items[0])
	assert.IsType(t, &widget.ToolbarSeparator{}, view.Items[1])
	assert.IsType(t, &labeledAction{}, view.Items[2], "items without an icon keep their label")
	assert.IsType(t, &widget.ToolbarAction{}, view.Items[3])
	assert.Same(t, view, tb.Widget())

	tb.SetDisplayMode(DisplayModeLabelOnly)
	require.Len(t, view.Items, 5)
	label, ok := view.Items[0].(*labeledAction)
	require.True(t, ok)
	assert.Equal(t, "Save", label.label)
	assert.Nil(t, label.icon)

	tb.SetDisplayMode(DisplayModeIconAndLabel)
	label, ok = view.Items[0].(*labeledAction)
	require.True(t, ok)
	assert.Equal(t, "Save", label.label)
	assert.NotNil(t, label.icon)

	require.NoError(t, tb.SetItemIdentifiers([]string{"Spacer", "Save"}))
	require.Len(t, view.Items, 2)
	assert.IsType(t, &widget.ToolbarSpacer{}, view.Items[0])
}

func TestToolbar_DisabledItem(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	export := newHelper(".export", "ExportTemplate", "Text", "HTML")
	export.finalize = func(item *Item, _ *Toolbar, _ bool) *Item {
		item.Enabled = false
		return item
	}
	owner := newOwner("Editor")
	owner.mode = DisplayModeIconOnly
	c := NewController(owner, newRegistry(export), editorDocs(), memStore{}, WithImageService(fakeImages{}))
	view := c.CreateToolbar().Widget()

	require.Len(t, view.Items, 5)
	disabled, ok := view.Items[3].(*labeledAction)
	require.True(t, ok)
	assert.Empty(t, disabled.label)
	button, ok := disabled.ToolbarObject().(*widget.Button)
	require.True(t, ok)
	assert.True(t, button.Disabled())
}

func TestDisplayMode(t *testing.T) {
	for _, m := range DisplayModes() {
		parsed, err := ParseDisplayMode(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	m, err := ParseDisplayMode(" Icon ")
	assert.NoError(t, err)
	assert.Equal(t, DisplayModeIconOnly, m)

	_, err = ParseDisplayMode("sideways")
	assert.ErrorIs(t, err, ErrMalformedEntry)

	assert.Equal(t, DisplayModeIconAndLabel, DisplayModeDefault.Effective())
	assert.Equal(t, DisplayModeLabelOnly, DisplayModeLabelOnly.Effective())
	assert.False(t, DisplayMode(-1).Valid())
	assert.Equal(t, "DisplayMode(7)", DisplayMode(7).String())
}
