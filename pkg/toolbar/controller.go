package toolbar

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"

	"github.com/dixieflatline76/Shelf/util/log"
)

// State is the construction state of a controller's toolbar.
type State int

const (
	StateUninitialized State = iota // no toolbar yet
	StateCreating                   // construction in progress
	StateReady                      // toolbar built and cached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreating:
		return "creating"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Controller builds and serves the toolbar of one window. It is the toolbar's
// delegate and answers item metadata queries.
type Controller struct {
	owner    Owner
	resolver *Resolver
	merger   *Merger
	prefs    CustomizationStore
	images   ImageService
	locale   fyne.Locale

	state   State
	toolbar *Toolbar
	config  *Configuration
}

// Option configures a Controller.
type Option func(*Controller)

// WithImageService sets the image service handed to the toolbar for icon lookups.
func WithImageService(s ImageService) Option {
	return func(c *Controller) {
		c.images = s
	}
}

// WithLocale overrides the system locale used for localized item metadata.
func WithLocale(l fyne.Locale) Option {
	return func(c *Controller) {
		c.locale = l
	}
}

// NewController creates the toolbar controller for owner.
func NewController(owner Owner, registry *Registry, docs DocumentStore, prefs CustomizationStore, opts ...Option) *Controller {
	if registry == nil {
		registry = NewRegistry()
	}
	c := &Controller{
		owner:    owner,
		resolver: NewResolver(registry),
		merger:   NewMerger(registry, docs, prefs),
		prefs:    prefs,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.locale == "" {
		c.locale = lang.SystemLocale()
	}
	return c
}

// Owner returns the window-owning object this controller serves.
func (c *Controller) Owner() Owner {
	return c.owner
}

// State returns the construction state.
func (c *Controller) State() State {
	return c.state
}

// IsCreatingToolbar reports whether construction is in progress.
func (c *Controller) IsCreatingToolbar() bool {
	return c.state == StateCreating
}

// Configuration returns the resolved configuration, resolving it if needed.
func (c *Controller) Configuration() *Configuration {
	return c.configuration()
}

// Toolbar returns the window's toolbar, creating it on first use.
func (c *Controller) Toolbar() *Toolbar {
	if c.toolbar != nil {
		return c.toolbar
	}
	return c.CreateToolbar()
}

// CreateToolbar builds the toolbar once. Later calls return the cached toolbar
// without doing any work. A call made while construction is in progress, for
// example from a helper's Finalize, is ignored and returns nil.
func (c *Controller) CreateToolbar() *Toolbar {
	switch c.state {
	case StateReady:
		return c.toolbar
	case StateCreating:
		log.Debugf("Toolbar %q: ignoring re-entrant construction", c.owner.ToolbarConfigurationName())
		return nil
	}

	c.state = StateCreating
	defer func() {
		if c.toolbar != nil {
			c.state = StateReady
			return
		}
		c.state = StateUninitialized
		c.config = nil
	}()

	cfg := c.merger.Resolve(c.owner)
	c.config = cfg

	tb := NewToolbar(cfg.ToolbarIdentifier)
	tb.SetOwner(c.owner)
	tb.SetDelegate(c)
	tb.SetImageService(c.images)
	tb.displayMode = cfg.DisplayMode
	tb.SetAllowsUserCustomization(cfg.AllowsCustomization)
	if cfg.Autosaves {
		tb.SetAutosavesConfiguration(c.prefs, cfg.Version)
	}
	tb.loadItems(cfg.ItemOrder)

	c.toolbar = tb
	return tb
}

// ToolbarInfoForItem returns the metadata for id, or nil if neither the
// document nor a helper knows the identifier. Callers omit such items.
func (c *Controller) ToolbarInfoForItem(id string) *ItemInfo {
	return c.info(id, false)
}

// LocalizedToolbarInfoForItem is ToolbarInfoForItem with the document's
// localized metadata for the controller locale applied where present.
func (c *Controller) LocalizedToolbarInfoForItem(id string) *ItemInfo {
	return c.info(id, true)
}

// AllowedItemIdentifiers implements Delegate.
func (c *Controller) AllowedItemIdentifiers(_ *Toolbar) []string {
	return append([]string(nil), c.configuration().AllowedItems...)
}

// DefaultItemIdentifiers implements Delegate.
func (c *Controller) DefaultItemIdentifiers(_ *Toolbar) []string {
	return append([]string(nil), c.configuration().DefaultItems...)
}

// ItemForIdentifier implements Delegate. Helper items are passed through the
// helper's Finalize; willInsert is false for palette previews.
func (c *Controller) ItemForIdentifier(tb *Toolbar, id string, willInsert bool) *Item {
	info := c.LocalizedToolbarInfoForItem(id)
	if info == nil {
		return nil
	}

	item := NewItem(id)
	item.Label = info.Label
	item.PaletteLabel = info.PaletteLabel
	item.ToolTip = info.ToolTip
	item.IconName = info.ImageName
	if info.ActionName != "" {
		if target, ok := c.owner.(ActionTarget); ok {
			item.Action = target.ToolbarAction(info.ActionName)
		}
	}

	if info.Helper == nil {
		return item
	}
	return c.finalize(info.Helper, item, tb, willInsert)
}

// finalize runs a helper's Finalize, omitting the item if the helper panics.
func (c *Controller) finalize(h Helper, item *Item, tb *Toolbar, willInsert bool) (out *Item) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Toolbar %q: helper %T failed to finalize %q: %v", c.owner.ToolbarConfigurationName(), h, item.Identifier, r)
			out = nil
		}
	}()
	return h.Finalize(item, tb, willInsert)
}

func (c *Controller) configuration() *Configuration {
	if c.config == nil {
		c.config = c.merger.Resolve(c.owner)
	}
	return c.config
}

// info layers the metadata sources for id. Helper items start from the
// template entry and the helper's own description; an entry for the qualified
// identifier overrides both.
func (c *Controller) info(id string, localized bool) *ItemInfo {
	if IsStandardItem(id) {
		return &ItemInfo{Label: id}
	}

	cfg := c.configuration()
	if builtin, ok := cfg.builtinInfo(id); ok {
		info := builtin
		if localized {
			info = c.localize(cfg, id, info)
		}
		if info.Label == "" {
			info.Label = id
		}
		return &info
	}

	h, name, ok := c.resolver.Unqualify(id)
	if !ok {
		return nil
	}

	template := h.TemplateIdentifier()
	info := cfg.declared[template]
	if localized {
		info = c.localize(cfg, template, info)
	}
	if d, ok := h.(Describer); ok {
		if desc := d.Describe(name); desc != nil {
			info = info.overlay(*desc)
		}
	}
	if specific, ok := cfg.declared[id]; ok {
		info = info.overlay(specific)
	}
	if localized {
		info = c.localize(cfg, id, info)
	}
	if info.Label == "" {
		info.Label = name
	}
	info.Helper = h
	return &info
}

// localize overlays the localized table of id that best matches the locale.
func (c *Controller) localize(cfg *Configuration, id string, info ItemInfo) ItemInfo {
	if loc, ok := c.matchLocale(cfg.localized[id]); ok {
		return info.overlay(loc)
	}
	return info
}

func (c *Controller) matchLocale(tables map[string]ItemInfo) (ItemInfo, bool) {
	if len(tables) == 0 {
		return ItemInfo{}, false
	}
	want, err := language.Parse(string(c.locale))
	if err != nil {
		return ItemInfo{}, false
	}

	keys := make([]string, 0, len(tables))
	for k := range tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]language.Tag, 0, len(keys))
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			log.Debugf("Toolbar: skipping localization %q: %v", k, err)
			continue
		}
		tags = append(tags, tag)
		names = append(names, k)
	}
	if len(tags) == 0 {
		return ItemInfo{}, false
	}

	_, idx, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return ItemInfo{}, false
	}
	return tables[names[idx]], true
}
