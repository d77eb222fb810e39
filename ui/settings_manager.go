package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// selectSetting describes a setting chosen from a list of options.
type selectSetting struct {
	name         string
	label        string
	help         string
	options      []string
	initialValue int
	applyFunc    func(int)
}

// boolSetting describes an on/off setting.
type boolSetting struct {
	name         string
	label        string
	help         string
	initialValue bool
	applyFunc    func(bool)
}

// buttonSetting describes an action guarded by a confirmation dialog.
type buttonSetting struct {
	label          string
	help           string
	buttonText     string
	confirmTitle   string
	confirmMessage string
	onPressed      func()
}

// settingsManager collects pending setting changes and applies them together.
type settingsManager struct {
	pending     map[string]func()
	applyButton *widget.Button
	window      fyne.Window
}

// newSettingsManager creates a settings manager for the given preferences window.
func newSettingsManager(window fyne.Window) *settingsManager {
	sm := &settingsManager{
		pending: make(map[string]func()),
		window:  window,
	}
	sm.applyButton = widget.NewButton("Apply Changes", sm.apply)
	sm.applyButton.Disable()
	return sm
}

func (sm *settingsManager) apply() {
	for _, fn := range sm.pending {
		fn()
	}
	sm.pending = make(map[string]func())
	sm.checkAndEnableApply()
}

func (sm *settingsManager) setPending(name string, fn func()) {
	if fn == nil {
		delete(sm.pending, name)
	} else {
		sm.pending[name] = fn
	}
	sm.checkAndEnableApply()
}

func (sm *settingsManager) checkAndEnableApply() {
	if len(sm.pending) > 0 {
		sm.applyButton.Enable()
	} else {
		sm.applyButton.Disable()
	}
}

// addSelect adds a select setting to parent.
func (sm *settingsManager) addSelect(cfg *selectSetting, parent *fyne.Container) *widget.Select {
	sel := widget.NewSelect(cfg.options, nil)
	sel.SetSelectedIndex(cfg.initialValue)
	sel.OnChanged = func(string) {
		idx := sel.SelectedIndex()
		if idx == cfg.initialValue {
			sm.setPending(cfg.name, nil)
			return
		}
		sm.setPending(cfg.name, func() {
			cfg.applyFunc(idx)
			cfg.initialValue = idx
		})
	}

	parent.Add(newSettingRow(createSettingTitleLabel(cfg.label), sel))
	if cfg.help != "" {
		parent.Add(createSettingDescriptionLabel(cfg.help))
	}
	return sel
}

// addBool adds a check box setting to parent.
func (sm *settingsManager) addBool(cfg *boolSetting, parent *fyne.Container) *widget.Check {
	check := widget.NewCheck("", nil)
	check.SetChecked(cfg.initialValue)
	check.OnChanged = func(b bool) {
		if b == cfg.initialValue {
			sm.setPending(cfg.name, nil)
			return
		}
		sm.setPending(cfg.name, func() {
			cfg.applyFunc(b)
			cfg.initialValue = b
		})
	}

	parent.Add(newSettingRow(createSettingTitleLabel(cfg.label), check))
	if cfg.help != "" {
		parent.Add(createSettingDescriptionLabel(cfg.help))
	}
	return check
}

// addButtonWithConfirmation adds a button that runs cfg.onPressed once the user confirms.
func (sm *settingsManager) addButtonWithConfirmation(cfg *buttonSetting, parent *fyne.Container) *widget.Button {
	button := widget.NewButton(cfg.buttonText, func() {
		dialog.ShowConfirm(cfg.confirmTitle, cfg.confirmMessage, func(ok bool) {
			if ok {
				cfg.onPressed()
			}
		}, sm.window)
	})

	parent.Add(newSettingRow(createSettingTitleLabel(cfg.label), button))
	if cfg.help != "" {
		parent.Add(createSettingDescriptionLabel(cfg.help))
	}
	return button
}
