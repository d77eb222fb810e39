package config

import "fyne.io/fyne/v2"

// AppConfig holds the application-wide configuration
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// Preferences returns the underlying preferences store
func (c *AppConfig) Preferences() fyne.Preferences {
	return c.prefs
}

// ToolbarDisplayModeKey is the key for the default toolbar display mode preference
const ToolbarDisplayModeKey = "toolbar_display_mode"

// GetToolbarDisplayMode returns the display mode windows use when their toolbar document has none.
// The value is a toolbar.DisplayMode; 0 means the platform default.
func (c *AppConfig) GetToolbarDisplayMode() int {
	return c.prefs.IntWithFallback(ToolbarDisplayModeKey, 0)
}

// SetToolbarDisplayMode sets the default toolbar display mode
func (c *AppConfig) SetToolbarDisplayMode(mode int) {
	c.prefs.SetInt(ToolbarDisplayModeKey, mode)
}

// ToolbarAutosaveKey is the key for the toolbar autosave preference
const ToolbarAutosaveKey = "toolbar_autosave_enabled"

// GetToolbarAutosaveEnabled returns whether toolbar customization is remembered between sessions
func (c *AppConfig) GetToolbarAutosaveEnabled() bool {
	return c.prefs.BoolWithFallback(ToolbarAutosaveKey, true)
}

// SetToolbarAutosaveEnabled sets whether toolbar customization is remembered between sessions
func (c *AppConfig) SetToolbarAutosaveEnabled(enabled bool) {
	c.prefs.SetBool(ToolbarAutosaveKey, enabled)
}

// ToolbarCustomizationKey is the key for the toolbar customization preference
const ToolbarCustomizationKey = "toolbar_customization_enabled"

// GetToolbarCustomizationEnabled returns whether users may rearrange toolbars
func (c *AppConfig) GetToolbarCustomizationEnabled() bool {
	return c.prefs.BoolWithFallback(ToolbarCustomizationKey, true)
}

// SetToolbarCustomizationEnabled sets whether users may rearrange toolbars
func (c *AppConfig) SetToolbarCustomizationEnabled(enabled bool) {
	c.prefs.SetBool(ToolbarCustomizationKey, enabled)
}

// ScriptsEnabledKey is the key for the toolbar scripts preference
const ScriptsEnabledKey = "toolbar_scripts_enabled"

// GetScriptsEnabled returns whether scripts found in the scripts directory are offered as toolbar items
func (c *AppConfig) GetScriptsEnabled() bool {
	return c.prefs.BoolWithFallback(ScriptsEnabledKey, true)
}

// SetScriptsEnabled sets whether scripts are offered as toolbar items
func (c *AppConfig) SetScriptsEnabled(enabled bool) {
	c.prefs.SetBool(ScriptsEnabledKey, enabled)
}
