package toolbar

import "fyne.io/fyne/v2"

// DocumentStore reads named toolbar documents into a generic tree.
// Load returns ErrDocumentNotFound when no document has the given name.
type DocumentStore interface {
	Load(name string) (map[string]any, error)
}

// Customization is the persisted user state of one toolbar.
type Customization struct {
	Items          []string
	DisplayMode    DisplayMode
	HasDisplayMode bool
	Version        string // document version the record was saved against
	// Known lists the defaults the user had been offered when the record was
	// saved. A nil Known marks a record written before it was tracked.
	Known          []string
}

// CustomizationStore persists customization keyed by toolbar identifier.
type CustomizationStore interface {
	Load(toolbarID string) (*Customization, bool)
	Save(toolbarID string, c *Customization)
}

// ImageService looks up images by name. Lookup returns nil for unknown names.
type ImageService interface {
	Lookup(name string) fyne.Resource
}
