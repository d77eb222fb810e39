package toolbar

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/Shelf/util/log"
)

// Delegate supplies a toolbar with its items. The toolbar calls back into its
// delegate whenever it needs identifiers or has to build an item.
type Delegate interface {
	AllowedItemIdentifiers(tb *Toolbar) []string                     // Everything the palette may offer.
	DefaultItemIdentifiers(tb *Toolbar) []string                     // Order used when the toolbar is reset.
	ItemForIdentifier(tb *Toolbar, id string, willInsert bool) *Item // Builds one item, nil to omit it.
}

// Toolbar is the live toolbar of one window. It owns the item list and the
// fyne widget presenting it, and persists user changes when autosaving.
type Toolbar struct {
	identifier          string
	owner               Owner
	delegate            Delegate
	displayMode         DisplayMode
	allowsCustomization bool
	autosaves           bool
	store               CustomizationStore
	images              ImageService
	version             string

	itemIDs   []string
	items     []*Item
	view      *widget.Toolbar
	listeners []func()
}

// NewToolbar creates an empty toolbar persisted under identifier.
func NewToolbar(identifier string) *Toolbar {
	return &Toolbar{identifier: identifier}
}

// Identifier returns the key the toolbar's customization is stored under.
func (t *Toolbar) Identifier() string {
	return t.identifier
}

// Owner returns the window-owning object the toolbar belongs to.
func (t *Toolbar) Owner() Owner {
	return t.owner
}

// SetOwner sets the window-owning object the toolbar belongs to.
func (t *Toolbar) SetOwner(o Owner) {
	t.owner = o
}

// Delegate returns the toolbar's delegate.
func (t *Toolbar) Delegate() Delegate {
	return t.delegate
}

// SetDelegate sets the object supplying the toolbar's items.
func (t *Toolbar) SetDelegate(d Delegate) {
	t.delegate = d
}

// SetImageService sets the service used to resolve item icon names.
func (t *Toolbar) SetImageService(s ImageService) {
	t.images = s
}

// DisplayMode returns the current display mode.
func (t *Toolbar) DisplayMode() DisplayMode {
	return t.displayMode
}

// SetDisplayMode changes the display mode on behalf of the user.
func (t *Toolbar) SetDisplayMode(m DisplayMode) {
	if !m.Valid() || m == t.displayMode {
		return
	}
	t.displayMode = m
	t.refreshView()
	t.save(true)
	t.notify()
}

// AllowsUserCustomization reports whether the user may change the items.
func (t *Toolbar) AllowsUserCustomization() bool {
	return t.allowsCustomization
}

// SetAllowsUserCustomization enables or disables user customization.
func (t *Toolbar) SetAllowsUserCustomization(allow bool) {
	t.allowsCustomization = allow
}

// AutosavesConfiguration reports whether user changes are persisted.
func (t *Toolbar) AutosavesConfiguration() bool {
	return t.autosaves && t.store != nil
}

// SetAutosavesConfiguration persists later user changes to store, stamped with
// the document version. A nil store turns autosave off.
func (t *Toolbar) SetAutosavesConfiguration(store CustomizationStore, version string) {
	t.store = store
	t.version = version
	t.autosaves = store != nil
}

// ItemIdentifiers returns the identifiers of the items currently shown.
func (t *Toolbar) ItemIdentifiers() []string {
	out := make([]string, len(t.itemIDs))
	copy(out, t.itemIDs)
	return out
}

// Items returns the items currently shown.
func (t *Toolbar) Items() []*Item {
	out := make([]*Item, len(t.items))
	copy(out, t.items)
	return out
}

// PaletteItems builds every allowed item for display in a customization palette.
// Items are finalized with willInsert false.
func (t *Toolbar) PaletteItems() []*Item {
	if t.delegate == nil {
		return nil
	}
	var out []*Item
	for _, id := range t.delegate.AllowedItemIdentifiers(t) {
		if item := t.delegate.ItemForIdentifier(t, id, false); item != nil {
			out = append(out, item)
		}
	}
	return out
}

// SetItemIdentifiers replaces the items on behalf of the user. Identifiers the
// delegate does not allow are ignored.
func (t *Toolbar) SetItemIdentifiers(ids []string) error {
	if !t.allowsCustomization {
		return ErrCustomizationDisabled
	}
	t.loadItems(t.filterAllowed(ids))
	t.save(false)
	return nil
}

// ResetToDefaults restores the delegate's default items.
func (t *Toolbar) ResetToDefaults() error {
	if !t.allowsCustomization {
		return ErrCustomizationDisabled
	}
	if t.delegate == nil {
		return nil
	}
	t.loadItems(t.delegate.DefaultItemIdentifiers(t))
	t.save(false)
	return nil
}

// OnChanged registers fn to be called after the items or display mode change.
func (t *Toolbar) OnChanged(fn func()) {
	t.listeners = append(t.listeners, fn)
}

// Widget returns the fyne toolbar presenting the items, creating it on first use.
func (t *Toolbar) Widget() *widget.Toolbar {
	if t.view == nil {
		t.view = widget.NewToolbar()
		t.refreshView()
	}
	return t.view
}

// loadItems asks the delegate for every identifier and keeps the items it returns.
func (t *Toolbar) loadItems(ids []string) {
	t.itemIDs = make([]string, 0, len(ids))
	t.items = make([]*Item, 0, len(ids))
	for _, id := range ids {
		var item *Item
		if t.delegate != nil {
			item = t.delegate.ItemForIdentifier(t, id, true)
		}
		if item == nil {
			log.Debugf("Toolbar %q: omitting item %q", t.identifier, id)
			continue
		}
		t.itemIDs = append(t.itemIDs, id)
		t.items = append(t.items, item)
	}
	t.refreshView()
	t.notify()
}

func (t *Toolbar) filterAllowed(ids []string) []string {
	if t.delegate == nil {
		return nil
	}
	allowed := make(map[string]bool)
	for _, id := range t.delegate.AllowedItemIdentifiers(t) {
		allowed[id] = true
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsStandardItem(id) {
			out = append(out, id)
			continue
		}
		if !allowed[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// save writes the current state to the customization store.
func (t *Toolbar) save(displayModeChanged bool) {
	if !t.AutosavesConfiguration() {
		return
	}
	rec := &Customization{
		Items:   t.ItemIdentifiers(),
		Version: t.version,
		Known:   t.knownDefaults(),
	}
	if prev, ok := t.store.Load(t.identifier); ok && prev != nil && prev.HasDisplayMode {
		rec.DisplayMode = prev.DisplayMode
		rec.HasDisplayMode = true
	}
	if displayModeChanged {
		rec.DisplayMode = t.displayMode
		rec.HasDisplayMode = true
	}
	t.store.Save(t.identifier, rec)
}

// knownDefaults lists the non-standard default identifiers the delegate offers.
func (t *Toolbar) knownDefaults() []string {
	known := []string{}
	if t.delegate == nil {
		return known
	}
	for _, id := range t.delegate.DefaultItemIdentifiers(t) {
		if !IsStandardItem(id) {
			known = appendUnique(known, id)
		}
	}
	return known
}

func (t *Toolbar) notify() {
	for _, fn := range t.listeners {
		fn()
	}
}

func (t *Toolbar) refreshView() {
	if t.view == nil {
		return
	}
	objects := make([]widget.ToolbarItem, 0, len(t.items))
	for _, it := range t.items {
		objects = append(objects, t.toolbarItem(it))
	}
	t.view.Items = objects
	t.view.Refresh()
}

// toolbarItem converts an item to the fyne toolbar item matching the display mode.
func (t *Toolbar) toolbarItem(it *Item) widget.ToolbarItem {
	switch {
	case it.IsSeparator():
		return widget.NewToolbarSeparator()
	case it.IsSpacer():
		return widget.NewToolbarSpacer()
	}

	icon := it.Icon
	if icon == nil && it.IconName != "" && t.images != nil {
		icon = t.images.Lookup(it.IconName)
	}

	mode := t.displayMode.Effective()
	if mode == DisplayModeIconOnly && icon != nil && it.Enabled {
		return widget.NewToolbarAction(icon, it.activate)
	}

	label := it.DisplayLabel(false)
	switch mode {
	case DisplayModeLabelOnly:
		icon = nil
	case DisplayModeIconOnly:
		if icon != nil {
			label = ""
		}
	}
	return &labeledAction{label: label, icon: icon, onActivated: it.activate, disabled: !it.Enabled}
}

// labeledAction is a toolbar item showing a label, optionally next to an icon.
type labeledAction struct {
	label       string
	icon        fyne.Resource
	onActivated func()
	disabled    bool
}

// ToolbarObject gets a button to render this item.
func (a *labeledAction) ToolbarObject() fyne.CanvasObject {
	b := widget.NewButtonWithIcon(a.label, a.icon, a.onActivated)
	b.Importance = widget.LowImportance
	if a.disabled {
		b.Disable()
	}
	return b
}
