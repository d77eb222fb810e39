package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/Shelf/asset"
	"github.com/dixieflatline76/Shelf/config"
	"github.com/dixieflatline76/Shelf/pkg/toolbar"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/helpers/export"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/store"
	"github.com/dixieflatline76/Shelf/util/log"
)

// ShelfApp represents the application
type ShelfApp struct {
	app      fyne.App
	assetMgr *asset.Manager
	cfg      *config.AppConfig
	registry *toolbar.Registry
	docs     toolbar.DocumentStore
	custom   *store.PreferencesStore
	exporter *export.Helper
	trayMenu *fyne.Menu
	windows  []*DocumentWindow
}

// NewShelfApp creates the application. The registry must already hold every
// toolbar helper; docs supplies the toolbar documents.
func NewShelfApp(a fyne.App, assetMgr *asset.Manager, registry *toolbar.Registry, docs toolbar.DocumentStore) *ShelfApp {
	if !registry.Sealed() {
		log.Println("Toolbar helper registry was not sealed, sealing it now")
		registry.Seal()
	}
	sa := &ShelfApp{
		app:      a,
		assetMgr: assetMgr,
		cfg:      config.NewAppConfig(a.Preferences()),
		registry: registry,
		docs:     docs,
		custom:   store.NewPreferencesStore(a.Preferences()),
		exporter: export.New(),
	}
	if icon, err := assetMgr.GetIcon("shelf.svg"); err == nil {
		a.SetIcon(icon)
	}
	sa.CreateTrayMenu()
	return sa
}

// CreateTrayMenu creates the tray menu for the application on desktops that have one
func (sa *ShelfApp) CreateTrayMenu() {
	desk, ok := sa.app.(desktop.App)
	if !ok {
		log.Debug("Tray icon not supported on this platform")
		return
	}

	trayMenu := fyne.NewMenu(
		config.AppName,
		sa.createMenuItem("New Editor", func() {
			sa.NewWindow(EditorToolbar).Show()
		}, "documentCreate"),
		sa.createMenuItem("New Viewer", func() {
			sa.NewWindow(ViewerToolbar).Show()
		}, "visibility"),
		fyne.NewMenuItemSeparator(),
		sa.createMenuItem("Preferences", func() {
			sa.CreatePreferencesWindow()
		}, "settings"),
		fyne.NewMenuItemSeparator(),
		sa.createMenuItem("Quit", func() {
			sa.app.Quit()
		}, "cancel"),
	)
	desk.SetSystemTrayMenu(trayMenu)
	if icon := sa.assetMgr.Lookup("shelf"); icon != nil {
		desk.SetSystemTrayIcon(icon)
	}
	sa.trayMenu = trayMenu
}

func (sa *ShelfApp) createMenuItem(label string, action func(), iconName string) *fyne.MenuItem {
	mi := fyne.NewMenuItem(label, action)
	mi.Icon = sa.assetMgr.Lookup(iconName)
	return mi
}

// NewWindow opens a document window whose toolbar is described by the named configuration.
func (sa *ShelfApp) NewWindow(configName string) *DocumentWindow {
	w := newDocumentWindow(sa, configName)
	sa.windows = append(sa.windows, w)
	w.win.SetOnClosed(func() {
		sa.forget(w)
	})
	return w
}

// Windows returns the open document windows.
func (sa *ShelfApp) Windows() []*DocumentWindow {
	return append([]*DocumentWindow(nil), sa.windows...)
}

func (sa *ShelfApp) forget(w *DocumentWindow) {
	w.removePrintFile()
	for i, open := range sa.windows {
		if open == w {
			sa.windows = append(sa.windows[:i], sa.windows[i+1:]...)
			return
		}
	}
}

// ResetSavedToolbars forgets the customization of every toolbar and puts the
// toolbars of open windows back to their defaults.
func (sa *ShelfApp) ResetSavedToolbars() {
	for _, w := range sa.windows {
		tb := w.Toolbar()
		if !tb.AllowsUserCustomization() {
			continue
		}
		if err := tb.ResetToDefaults(); err != nil {
			log.Printf("Failed to reset toolbar %s: %v", tb.Identifier(), err)
		}
	}
	// Resetting saves, so the records go last.
	for _, name := range toolbarNames {
		sa.custom.Remove(name)
	}
	log.Println("Saved toolbar customization removed")
}

// createToolbarPreferences builds the toolbar section of the preferences window.
func (sa *ShelfApp) createToolbarPreferences(sm *settingsManager) *fyne.Container {
	prefs := container.NewVBox()
	prefs.Add(createSectionTitleLabel("Toolbar Preferences"))
	prefs.Add(createSettingDescriptionLabel("These settings apply to windows opened after the changes are applied."))
	prefs.Add(widget.NewSeparator())

	sm.addSelect(&selectSetting{
		name:         config.ToolbarDisplayModeKey,
		label:        "Default display mode:",
		help:         "Used when a toolbar document does not choose a display mode.",
		options:      displayModeOptions(),
		initialValue: sa.cfg.GetToolbarDisplayMode(),
		applyFunc:    sa.cfg.SetToolbarDisplayMode,
	}, prefs)

	sm.addBool(&boolSetting{
		name:         config.ToolbarCustomizationKey,
		label:        "Allow customization:",
		help:         "Let toolbars be rearranged from the View menu.",
		initialValue: sa.cfg.GetToolbarCustomizationEnabled(),
		applyFunc:    sa.cfg.SetToolbarCustomizationEnabled,
	}, prefs)

	sm.addBool(&boolSetting{
		name:         config.ToolbarAutosaveKey,
		label:        "Remember toolbars:",
		help:         "Keep toolbar customization between sessions.",
		initialValue: sa.cfg.GetToolbarAutosaveEnabled(),
		applyFunc:    sa.cfg.SetToolbarAutosaveEnabled,
	}, prefs)

	sm.addBool(&boolSetting{
		name:         config.ScriptsEnabledKey,
		label:        "Script items:",
		help:         fmt.Sprintf("Offer the scripts in ~/%s as toolbar items. Takes effect after a restart.", config.ScriptsSubDir),
		initialValue: sa.cfg.GetScriptsEnabled(),
		applyFunc:    sa.cfg.SetScriptsEnabled,
	}, prefs)

	prefs.Add(widget.NewSeparator())
	sm.addButtonWithConfirmation(&buttonSetting{
		label:          "Saved toolbars:",
		help:           "Every toolbar, including those of open windows, returns to the layout of its document.",
		buttonText:     "Reset",
		confirmTitle:   "Please Confirm",
		confirmMessage: "Forget the customization of every toolbar?",
		onPressed:      sa.ResetSavedToolbars,
	}, prefs)

	return prefs
}

// CreatePreferencesWindow creates and displays the preferences window.
func (sa *ShelfApp) CreatePreferencesWindow() fyne.Window {
	prefsWindow := sa.app.NewWindow(fmt.Sprintf("%s Preferences", config.AppName))
	prefsWindow.Resize(fyne.NewSize(prefsWindowWidth, prefsWindowHeight))
	prefsWindow.CenterOnScreen()

	sm := newSettingsManager(prefsWindow)
	toolbarPrefs := sa.createToolbarPreferences(sm)
	closeButton := widget.NewButton("Close", func() {
		prefsWindow.Close()
	})

	footer := container.NewHBox(layout.NewSpacer(), sm.applyButton, closeButton)
	prefsWindow.SetContent(container.NewBorder(nil, footer, nil, nil, container.NewVScroll(toolbarPrefs)))
	prefsWindow.Show()
	return prefsWindow
}

// Preferences returns the preferences for the application
func (sa *ShelfApp) Preferences() fyne.Preferences {
	return sa.app.Preferences()
}

// Run runs the application
func (sa *ShelfApp) Run() {
	sa.app.Run()
	for _, w := range sa.windows {
		w.removePrintFile()
	}
}
