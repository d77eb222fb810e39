package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// rowLayout places a label in the first third of a row and a control in the rest.
type rowLayout struct {
	label   fyne.CanvasObject
	control fyne.CanvasObject
}

// MinSize calculates the minimum size.
func (r *rowLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	l, c := r.label.MinSize(), r.control.MinSize()
	return fyne.NewSize(l.Width+c.Width, fyne.Max(l.Height, c.Height))
}

// Layout arranges the label and the control.
func (r *rowLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	labelWidth := size.Width / 3

	r.label.Resize(fyne.NewSize(labelWidth, r.label.MinSize().Height))
	r.control.Resize(fyne.NewSize(size.Width-labelWidth, r.control.MinSize().Height))

	r.label.Move(fyne.NewPos(0, 0))
	r.control.Move(fyne.NewPos(labelWidth, 0))
}

// newSettingRow creates a row with a setting label on the left and its control on the right.
func newSettingRow(label, control fyne.CanvasObject) *fyne.Container {
	return container.New(&rowLayout{label: label, control: control}, label, control)
}
