package toolbar

import (
	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/mock"
)

// fakeOwner is a window owning a toolbar.
type fakeOwner struct {
	name      string
	custom    bool
	autosave  bool
	mode      DisplayMode
	static    map[string]any
	actions   map[string]func()
	activated []string
}

func newOwner(name string) *fakeOwner {
	return &fakeOwner{name: name, custom: true, autosave: true}
}

func (o *fakeOwner) ToolbarConfigurationName() string               { return o.name }
func (o *fakeOwner) ShouldAllowUserToolbarCustomization() bool      { return o.custom }
func (o *fakeOwner) ShouldAutosaveToolbarConfiguration() bool       { return o.autosave }
func (o *fakeOwner) DefaultToolbarDisplayMode() DisplayMode         { return o.mode }
func (o *fakeOwner) ToolbarConfigurationDictionary() map[string]any { return o.static }

func (o *fakeOwner) ToolbarAction(name string) func() {
	if fn, ok := o.actions[name]; ok {
		return fn
	}
	return func() { o.activated = append(o.activated, name) }
}

// overridingOwner persists its toolbar under a custom identifier.
type overridingOwner struct {
	*fakeOwner
	id string
}

func (o *overridingOwner) ToolbarIdentifier() string { return o.id }

// mapDocs is an in-memory DocumentStore.
type mapDocs map[string]map[string]any

func (d mapDocs) Load(name string) (map[string]any, error) {
	tree, ok := d[name]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return tree, nil
}

// memStore is an in-memory CustomizationStore.
type memStore map[string]*Customization

func (s memStore) Load(id string) (*Customization, bool) {
	c, ok := s[id]
	return c, ok
}

func (s memStore) Save(id string, c *Customization) {
	s[id] = c
}

// MockCustomizationStore is a mock implementation of CustomizationStore.
type MockCustomizationStore struct {
	mock.Mock
}

func (m *MockCustomizationStore) Load(id string) (*Customization, bool) {
	args := m.Called(id)
	c, _ := args.Get(0).(*Customization)
	return c, args.Bool(1)
}

func (m *MockCustomizationStore) Save(id string, c *Customization) {
	m.Called(id, c)
}

// fakeHelper contributes a fixed list of items.
type fakeHelper struct {
	ext       string
	template  string
	names     []string
	finalized []bool
	finalize  func(item *Item, tb *Toolbar, willInsert bool) *Item
	describe  map[string]*ItemInfo
}

func newHelper(ext, template string, names ...string) *fakeHelper {
	return &fakeHelper{ext: ext, template: template, names: names}
}

func (h *fakeHelper) NamespaceExtension() string { return h.ext }
func (h *fakeHelper) TemplateIdentifier() string { return h.template }
func (h *fakeHelper) AllowedItems() []string     { return h.names }

func (h *fakeHelper) Finalize(item *Item, tb *Toolbar, willInsert bool) *Item {
	h.finalized = append(h.finalized, willInsert)
	if h.finalize != nil {
		return h.finalize(item, tb, willInsert)
	}
	return item
}

// describingHelper also implements Describer.
type describingHelper struct {
	*fakeHelper
}

func (h describingHelper) Describe(name string) *ItemInfo {
	return h.describe[name]
}

// valueHelper is a helper whose dynamic type cannot be compared.
type valueHelper struct {
	ext   string
	names []string
}

func (h valueHelper) NamespaceExtension() string                    { return h.ext }
func (h valueHelper) TemplateIdentifier() string                    { return "Value" }
func (h valueHelper) AllowedItems() []string                        { return h.names }
func (h valueHelper) Finalize(item *Item, _ *Toolbar, _ bool) *Item { return item }

// fakeImages resolves every name except "missing".
type fakeImages struct{}

func (fakeImages) Lookup(name string) fyne.Resource {
	if name == "missing" {
		return nil
	}
	return fyne.NewStaticResource(name+".svg", []byte("<svg/>"))
}

func newRegistry(helpers ...Helper) *Registry {
	r := NewRegistry()
	for _, h := range helpers {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
	r.Seal()
	return r
}
