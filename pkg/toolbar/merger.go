package toolbar

import (
	"errors"
	"fmt"

	"github.com/dixieflatline76/Shelf/util/log"
)

// Configuration is the resolved toolbar state for one window.
type Configuration struct {
	ConfigurationName   string
	ToolbarIdentifier   string
	Version             string   // document version, empty if the document has none
	ItemOrder           []string // effective order shown to the user
	DefaultItems        []string // document order including helper items, without customization
	AllowedItems        []string // everything the palette may offer
	DisplayMode         DisplayMode
	AllowsCustomization bool
	Autosaves           bool
	Degraded            bool    // true when no document or static dictionary was found
	Diagnostics         []error // entries skipped during resolution

	declared  map[string]ItemInfo // every entry of the items table, including templates
	builtins  map[string]ItemInfo
	localized map[string]map[string]ItemInfo
	allowed   map[string]bool
}

// IsAllowed reports whether id may appear in the toolbar.
func (c *Configuration) IsAllowed(id string) bool {
	return IsStandardItem(id) || c.allowed[id]
}

// builtinInfo returns the document metadata for a built-in item.
func (c *Configuration) builtinInfo(id string) (ItemInfo, bool) {
	info, ok := c.builtins[id]
	return info, ok
}

func (c *Configuration) addDiagnostic(err error) {
	c.Diagnostics = append(c.Diagnostics, err)
	log.Printf("Toolbar %q: %v", c.ConfigurationName, err)
}

// Merger resolves the effective configuration of a window's toolbar from the
// toolbar document, the registered helpers and any persisted customization.
type Merger struct {
	registry *Registry
	docs     DocumentStore
	prefs    CustomizationStore
}

// NewMerger creates a merger. docs and prefs may be nil.
func NewMerger(r *Registry, docs DocumentStore, prefs CustomizationStore) *Merger {
	if r == nil {
		r = NewRegistry()
	}
	return &Merger{registry: r, docs: docs, prefs: prefs}
}

// Resolve produces the configuration for the owner's toolbar. It never fails:
// problems are recorded in Diagnostics and the result degrades to a smaller,
// valid configuration.
func (m *Merger) Resolve(o Owner) *Configuration {
	cfg := &Configuration{
		ConfigurationName:   o.ToolbarConfigurationName(),
		ToolbarIdentifier:   toolbarIdentifier(o),
		DisplayMode:         o.DefaultToolbarDisplayMode(),
		AllowsCustomization: o.ShouldAllowUserToolbarCustomization(),
		Autosaves:           o.ShouldAutosaveToolbarConfiguration(),
		allowed:             make(map[string]bool),
	}

	doc := parseDocument(m.loadTree(cfg, o), cfg.addDiagnostic)
	cfg.Version = doc.version
	cfg.declared = doc.items
	cfg.localized = doc.localized
	if doc.hasDisplayMode {
		cfg.DisplayMode = doc.displayMode
	}
	if doc.allowsCustomization != nil && !*doc.allowsCustomization {
		cfg.AllowsCustomization = false
	}

	helperItems := m.helperItems(cfg, doc)
	cfg.DefaultItems = m.defaultItems(cfg, doc, helperItems)
	cfg.builtins = m.builtinCatalogue(doc)
	cfg.AllowedItems = allowedItems(cfg.DefaultItems, doc.allowedItems, cfg)
	for _, id := range cfg.AllowedItems {
		cfg.allowed[id] = true
	}

	cfg.ItemOrder = append([]string(nil), cfg.DefaultItems...)
	if cfg.Autosaves && m.prefs != nil {
		if rec, ok := m.prefs.Load(cfg.ToolbarIdentifier); ok && rec != nil {
			m.applyCustomization(cfg, rec)
		}
	}
	return cfg
}

// loadTree finds the document for the configuration, falling back to the
// owner's static dictionary when autosave is disabled.
func (m *Merger) loadTree(cfg *Configuration, o Owner) map[string]any {
	if m.docs != nil {
		tree, err := m.docs.Load(cfg.ConfigurationName)
		switch {
		case err == nil && tree != nil:
			return tree
		case err != nil && !errors.Is(err, ErrDocumentNotFound):
			cfg.addDiagnostic(fmt.Errorf("loading document: %w", err))
		}
	}

	if !cfg.Autosaves {
		if static := o.ToolbarConfigurationDictionary(); static != nil {
			return static
		}
	}

	cfg.Degraded = true
	cfg.addDiagnostic(fmt.Errorf("%w: no document named %q", ErrConfigurationMissing, cfg.ConfigurationName))
	return nil
}

// helperItems returns the qualified items contributed by helpers the document
// references, in registration order and then document order.
func (m *Merger) helperItems(cfg *Configuration, doc *document) []string {
	var out []string
	for _, h := range m.registry.Helpers() {
		names, ok := doc.helpers[h.NamespaceExtension()]
		if !ok {
			continue
		}

		allowed := h.AllowedItems()
		allowedSet := make(map[string]bool, len(allowed))
		for _, name := range allowed {
			allowedSet[name] = true
		}

		for _, name := range names {
			if name == AllHelperItems {
				for _, a := range allowed {
					out = appendUnique(out, Qualify(h, a))
				}
				continue
			}
			if !allowedSet[name] {
				cfg.addDiagnostic(malformed(keyHelpers+"."+h.NamespaceExtension(), "helper does not provide %q", name))
				continue
			}
			out = appendUnique(out, Qualify(h, name))
		}
	}

	for _, ext := range doc.helperExtensions() {
		if _, ok := m.registry.Helper(ext); !ok {
			cfg.addDiagnostic(fmt.Errorf("no helper registered for %q, its items are omitted", ext))
		}
	}
	return out
}

// defaultItems lays out the document defaults. Helper items may be positioned
// explicitly in default_items; the rest are appended after the built-ins.
func (m *Merger) defaultItems(cfg *Configuration, doc *document, helperItems []string) []string {
	contributed := make(map[string]bool, len(helperItems))
	for _, id := range helperItems {
		contributed[id] = true
	}

	var out []string
	for _, id := range doc.defaultItems {
		switch {
		case IsStandardItem(id):
			out = append(out, id)
		case contributed[id]:
			out = appendUnique(out, id)
		default:
			if _, owned := m.registry.Owner(id); owned {
				cfg.addDiagnostic(malformed(keyDefaultItems, "%q is not contributed by its helper", id))
				continue
			}
			out = appendUnique(out, id)
		}
	}
	for _, id := range helperItems {
		out = appendUnique(out, id)
	}
	return out
}

// builtinCatalogue collects metadata for every item the document declares
// that no helper owns.
func (m *Merger) builtinCatalogue(doc *document) map[string]ItemInfo {
	out := make(map[string]ItemInfo, len(doc.items))
	for id, info := range doc.items {
		if _, owned := m.registry.Owner(id); owned {
			continue
		}
		out[id] = info
	}
	for _, list := range [][]string{doc.defaultItems, doc.allowedItems} {
		for _, id := range list {
			if IsStandardItem(id) {
				continue
			}
			if _, owned := m.registry.Owner(id); owned {
				continue
			}
			if _, ok := out[id]; !ok {
				out[id] = ItemInfo{}
			}
		}
	}
	return out
}

// applyCustomization orders items by the persisted record. Persisted items that
// are no longer allowed are dropped. Defaults missing from both the record's
// items and its known set are new since the save and are appended in document
// order; a default that was known but left out stays hidden.
func (m *Merger) applyCustomization(cfg *Configuration, rec *Customization) {
	if rec.HasDisplayMode && rec.DisplayMode.Valid() {
		cfg.DisplayMode = rec.DisplayMode
	}
	if !compatibleVersions(rec.Version, cfg.Version) {
		log.Printf("Toolbar %q: ignoring customization saved for version %s, document is %s", cfg.ToolbarIdentifier, rec.Version, cfg.Version)
		return
	}
	if rec.Items == nil {
		return
	}

	order := make([]string, 0, len(rec.Items)+len(cfg.DefaultItems))
	for _, id := range rec.Items {
		if !cfg.IsAllowed(id) {
			continue
		}
		if IsStandardItem(id) {
			order = append(order, id)
			continue
		}
		order = appendUnique(order, id)
	}
	known := make(map[string]bool, len(rec.Known))
	for _, id := range rec.Known {
		known[id] = true
	}
	for _, id := range cfg.DefaultItems {
		if IsStandardItem(id) || known[id] {
			continue
		}
		order = appendUnique(order, id)
	}
	cfg.ItemOrder = order
}

// allowedItems is the union of defaults, palette-only built-ins and the standard items.
func allowedItems(defaults, paletteOnly []string, cfg *Configuration) []string {
	var out []string
	for _, id := range defaults {
		if !IsStandardItem(id) {
			out = appendUnique(out, id)
		}
	}
	for _, id := range paletteOnly {
		if IsStandardItem(id) {
			continue
		}
		if _, ok := cfg.builtins[id]; !ok {
			continue
		}
		out = appendUnique(out, id)
	}
	return append(out, SeparatorItemIdentifier, SpacerItemIdentifier)
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}
