package store

import (
	"fyne.io/fyne/v2"

	"github.com/dixieflatline76/Shelf/pkg/toolbar"
)

// Preference key suffixes. Every key is "toolbar.<identifier>.<suffix>".
const (
	prefKeyPrefix      = "toolbar."
	prefSavedSuffix    = ".saved"
	prefItemsSuffix    = ".items"
	prefModeSuffix     = ".display_mode"
	prefVersionSuffix  = ".version"
	prefKnownSuffix    = ".known"
	noDisplayModeValue = -1
)

// PreferencesStore persists toolbar customization in fyne preferences.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore creates a customization store backed by prefs.
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Load implements toolbar.CustomizationStore.
func (s *PreferencesStore) Load(toolbarID string) (*toolbar.Customization, bool) {
	key := prefKeyPrefix + toolbarID
	if !s.prefs.BoolWithFallback(key+prefSavedSuffix, false) {
		return nil, false
	}

	c := &toolbar.Customization{
		Items:   s.prefs.StringListWithFallback(key+prefItemsSuffix, []string{}),
		Version: s.prefs.StringWithFallback(key+prefVersionSuffix, ""),
	}
	if known := s.prefs.StringList(key + prefKnownSuffix); len(known) > 0 {
		c.Known = known
	}
	if mode := toolbar.DisplayMode(s.prefs.IntWithFallback(key+prefModeSuffix, noDisplayModeValue)); mode.Valid() {
		c.DisplayMode = mode
		c.HasDisplayMode = true
	}
	return c, true
}

// Save implements toolbar.CustomizationStore.
func (s *PreferencesStore) Save(toolbarID string, c *toolbar.Customization) {
	if c == nil {
		s.Remove(toolbarID)
		return
	}
	key := prefKeyPrefix + toolbarID
	items := c.Items
	if items == nil {
		items = []string{}
	}
	s.prefs.SetStringList(key+prefItemsSuffix, items)
	s.prefs.SetString(key+prefVersionSuffix, c.Version)
	if c.Known != nil {
		s.prefs.SetStringList(key+prefKnownSuffix, c.Known)
	} else {
		s.prefs.RemoveValue(key + prefKnownSuffix)
	}
	if c.HasDisplayMode {
		s.prefs.SetInt(key+prefModeSuffix, int(c.DisplayMode))
	} else {
		s.prefs.RemoveValue(key + prefModeSuffix)
	}
	s.prefs.SetBool(key+prefSavedSuffix, true)
}

// Remove forgets the customization of a toolbar.
func (s *PreferencesStore) Remove(toolbarID string) {
	key := prefKeyPrefix + toolbarID
	for _, suffix := range []string{prefSavedSuffix, prefItemsSuffix, prefModeSuffix, prefVersionSuffix, prefKnownSuffix} {
		s.prefs.RemoveValue(key + suffix)
	}
}
