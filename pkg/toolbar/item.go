package toolbar

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
)

// Standard item identifiers. They are always allowed and may appear more than once.
const (
	SeparatorItemIdentifier = "Separator"
	SpacerItemIdentifier    = "Spacer"
)

// IsStandardItem reports whether id names one of the standard items.
func IsStandardItem(id string) bool {
	return id == SeparatorItemIdentifier || id == SpacerItemIdentifier
}

// DisplayMode controls how items are presented in the toolbar.
type DisplayMode int

const (
	DisplayModeDefault DisplayMode = iota
	DisplayModeIconAndLabel
	DisplayModeIconOnly
	DisplayModeLabelOnly
)

var displayModeNames = []string{"default", "icon_and_label", "icon", "label"}

// String returns the document spelling of the display mode.
func (m DisplayMode) String() string {
	if m < 0 || int(m) >= len(displayModeNames) {
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
	return displayModeNames[m]
}

// Valid reports whether m is one of the known display modes.
func (m DisplayMode) Valid() bool {
	return m >= DisplayModeDefault && m <= DisplayModeLabelOnly
}

// Effective maps DisplayModeDefault to the mode actually used for rendering.
func (m DisplayMode) Effective() DisplayMode {
	if m == DisplayModeDefault || !m.Valid() {
		return DisplayModeIconAndLabel
	}
	return m
}

// DisplayModes returns every display mode in declaration order.
func DisplayModes() []DisplayMode {
	return []DisplayMode{DisplayModeDefault, DisplayModeIconAndLabel, DisplayModeIconOnly, DisplayModeLabelOnly}
}

// ParseDisplayMode parses the document spelling of a display mode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range displayModeNames {
		if s == name {
			return DisplayMode(i), nil
		}
	}
	return DisplayModeDefault, fmt.Errorf("%w: unknown display mode %q", ErrMalformedEntry, s)
}

// ItemInfo is the metadata describing a toolbar item.
type ItemInfo struct {
	Label        string
	PaletteLabel string
	ToolTip      string
	ImageName    string
	ActionName   string
	Helper       Helper // nil for built-in items
}

// overlay returns a copy of info with the non-empty text fields of other applied.
func (info ItemInfo) overlay(other ItemInfo) ItemInfo {
	if other.Label != "" {
		info.Label = other.Label
	}
	if other.PaletteLabel != "" {
		info.PaletteLabel = other.PaletteLabel
	}
	if other.ToolTip != "" {
		info.ToolTip = other.ToolTip
	}
	if other.ImageName != "" {
		info.ImageName = other.ImageName
	}
	if other.ActionName != "" {
		info.ActionName = other.ActionName
	}
	return info
}

// Item is a live toolbar item.
type Item struct {
	Identifier   string
	Label        string
	PaletteLabel string
	ToolTip      string
	IconName     string
	Icon         fyne.Resource // takes precedence over IconName
	Action       func()
	Enabled      bool
}

// NewItem creates an enabled item with the given identifier.
func NewItem(identifier string) *Item {
	return &Item{Identifier: identifier, Enabled: true}
}

// IsSeparator reports whether the item is a separator.
func (it *Item) IsSeparator() bool {
	return it.Identifier == SeparatorItemIdentifier
}

// IsSpacer reports whether the item is a flexible spacer.
func (it *Item) IsSpacer() bool {
	return it.Identifier == SpacerItemIdentifier
}

// DisplayLabel returns the label to show in the palette, falling back to the item label.
func (it *Item) DisplayLabel(palette bool) string {
	if palette && it.PaletteLabel != "" {
		return it.PaletteLabel
	}
	if it.Label != "" {
		return it.Label
	}
	return it.Identifier
}

// activate runs the item's action if the item is enabled.
func (it *Item) activate() {
	if it.Enabled && it.Action != nil {
		it.Action()
	}
}
