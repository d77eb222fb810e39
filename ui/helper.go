package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/Shelf/pkg/toolbar"
)

// createSectionTitleLabel creates a label for a settings section
func createSectionTitleLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.HighImportance
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// createSettingTitleLabel creates a label for a setting title
func createSettingTitleLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.MediumImportance
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// createSettingDescriptionLabel creates a label for a setting description
func createSettingDescriptionLabel(desc string) *widget.Label {
	label := widget.NewLabel(desc)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = widget.LowImportance
	label.TextStyle = fyne.TextStyle{Italic: true}
	return label
}

// displayModeLabel returns the menu and settings text of a display mode.
func displayModeLabel(m toolbar.DisplayMode) string {
	switch m {
	case toolbar.DisplayModeIconAndLabel:
		return "Icon and Label"
	case toolbar.DisplayModeIconOnly:
		return "Icon Only"
	case toolbar.DisplayModeLabelOnly:
		return "Label Only"
	default:
		return "Default"
	}
}

// displayModeOptions returns the labels of every display mode in declaration order.
func displayModeOptions() []string {
	modes := toolbar.DisplayModes()
	options := make([]string, len(modes))
	for i, m := range modes {
		options[i] = displayModeLabel(m)
	}
	return options
}
