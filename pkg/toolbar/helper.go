package toolbar

// Helper is the interface that must be implemented by every toolbar helper module.
type Helper interface {
	NamespaceExtension() string                              // Suffix appended to every item the helper owns.
	TemplateIdentifier() string                              // Identifier whose metadata describes the helper's items.
	AllowedItems() []string                                  // Logical item names the helper can contribute.
	Finalize(item *Item, tb *Toolbar, willInsert bool) *Item // Completes an item before insertion or palette display.
}

// Describer is an optional interface for helpers that describe items themselves
// instead of relying on the template metadata.
type Describer interface {
	Describe(name string) *ItemInfo
}
