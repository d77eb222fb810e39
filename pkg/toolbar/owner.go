package toolbar

// Owner is implemented by the window-owning object a toolbar belongs to.
type Owner interface {
	ToolbarConfigurationName() string               // Name of the toolbar document.
	ShouldAllowUserToolbarCustomization() bool      // Whether the user may rearrange the toolbar.
	ShouldAutosaveToolbarConfiguration() bool       // Whether customization is persisted.
	DefaultToolbarDisplayMode() DisplayMode         // Display mode used when nothing else specifies one.
	ToolbarConfigurationDictionary() map[string]any // Static configuration used when autosave is disabled.
}

// IdentifierOverrider is an optional interface for owners that persist their
// toolbar under a key other than the configuration name.
type IdentifierOverrider interface {
	ToolbarIdentifier() string
}

// ActionTarget is an optional interface for owners that bind named document actions.
type ActionTarget interface {
	ToolbarAction(name string) func()
}

// toolbarIdentifier returns the persistence key for the owner's toolbar.
func toolbarIdentifier(o Owner) string {
	if ov, ok := o.(IdentifierOverrider); ok {
		return ov.ToolbarIdentifier()
	}
	return o.ToolbarConfigurationName()
}
