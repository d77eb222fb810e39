package ui

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/Shelf/config"
	"github.com/dixieflatline76/Shelf/pkg/toolbar"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/helpers/export"
	"github.com/dixieflatline76/Shelf/util/log"
)

// DocumentWindow is a window editing one Markdown document. It owns the
// window's toolbar and binds the document actions its items name.
type DocumentWindow struct {
	sa         *ShelfApp
	configName string
	win        fyne.Window
	editor     *widget.Entry
	title      string
	controller *toolbar.Controller
	viewMenu   *fyne.Menu
	modeItems  map[toolbar.DisplayMode]*fyne.MenuItem
	printFile  string // reused by every print of this window
}

func newDocumentWindow(sa *ShelfApp, configName string) *DocumentWindow {
	w := &DocumentWindow{
		sa:         sa,
		configName: configName,
		title:      untitled,
		editor:     widget.NewMultiLineEntry(),
		modeItems:  make(map[toolbar.DisplayMode]*fyne.MenuItem),
	}
	w.editor.Wrapping = fyne.TextWrapWord
	w.editor.SetPlaceHolder("Write Markdown here")
	if configName == ViewerToolbar {
		w.editor.Disable()
	}

	w.win = sa.app.NewWindow(w.windowTitle())
	w.win.Resize(fyne.NewSize(documentWindowWidth, documentWindowHeight))
	w.controller = toolbar.NewController(w, sa.registry, sa.docs, sa.custom, toolbar.WithImageService(sa.assetMgr))

	tb := w.controller.Toolbar()
	tb.OnChanged(w.refreshViewMenu)
	w.win.SetMainMenu(fyne.NewMainMenu(w.createFileMenu(), w.createViewMenu()))
	w.win.SetContent(container.NewBorder(tb.Widget(), nil, nil, nil, w.editor))
	return w
}

// Show shows the window.
func (w *DocumentWindow) Show() {
	w.win.Show()
}

// Window returns the fyne window.
func (w *DocumentWindow) Window() fyne.Window {
	return w.win
}

// Toolbar returns the window's toolbar.
func (w *DocumentWindow) Toolbar() *toolbar.Toolbar {
	return w.controller.Toolbar()
}

// Controller returns the window's toolbar controller.
func (w *DocumentWindow) Controller() *toolbar.Controller {
	return w.controller
}

// ToolbarConfigurationName implements toolbar.Owner.
func (w *DocumentWindow) ToolbarConfigurationName() string {
	return w.configName
}

// ShouldAllowUserToolbarCustomization implements toolbar.Owner.
func (w *DocumentWindow) ShouldAllowUserToolbarCustomization() bool {
	return w.sa.cfg.GetToolbarCustomizationEnabled()
}

// ShouldAutosaveToolbarConfiguration implements toolbar.Owner.
func (w *DocumentWindow) ShouldAutosaveToolbarConfiguration() bool {
	return w.sa.cfg.GetToolbarAutosaveEnabled()
}

// DefaultToolbarDisplayMode implements toolbar.Owner.
func (w *DocumentWindow) DefaultToolbarDisplayMode() toolbar.DisplayMode {
	mode := toolbar.DisplayMode(w.sa.cfg.GetToolbarDisplayMode())
	if !mode.Valid() {
		return toolbar.DisplayModeDefault
	}
	return mode
}

// ToolbarConfigurationDictionary implements toolbar.Owner. It is used when no
// toolbar document can be found and customization is not remembered.
func (w *DocumentWindow) ToolbarConfigurationDictionary() map[string]any {
	return map[string]any{
		"default_items": []any{"New", "Open", "Save"},
		"items": map[string]any{
			"New":  map[string]any{"image": "documentCreate", "action": "new"},
			"Open": map[string]any{"image": "folderOpen", "action": "open"},
			"Save": map[string]any{"image": "documentSave", "action": "save"},
		},
	}
}

// ToolbarAction implements toolbar.ActionTarget.
func (w *DocumentWindow) ToolbarAction(name string) func() {
	switch name {
	case "new":
		return func() { w.sa.NewWindow(w.configName).Show() }
	case "open":
		return w.open
	case "save":
		return w.save
	case "print":
		return w.print
	case "copy":
		return w.copy
	case "paste":
		return w.paste
	case "help":
		return w.help
	default:
		log.Printf("Toolbar %q: unknown action %q", w.configName, name)
		return nil
	}
}

// DocumentTitle implements export.Document.
func (w *DocumentWindow) DocumentTitle() string {
	return w.title
}

// DocumentText implements export.Document.
func (w *DocumentWindow) DocumentText() string {
	return w.editor.Text
}

// SetDocumentText replaces the document text.
func (w *DocumentWindow) SetDocumentText(text string) {
	w.editor.SetText(text)
}

// SaveExport implements export.Document by asking the user where to store the file.
func (w *DocumentWindow) SaveExport(name string, data []byte) error {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if _, err := writer.Write(data); err != nil {
			dialog.ShowError(fmt.Errorf("writing %s: %w", writer.URI().Name(), err), w.win)
		}
	}, w.win)
	d.SetFileName(name)
	d.Show()
	return nil
}

func (w *DocumentWindow) windowTitle() string {
	return fmt.Sprintf("%s - %s", w.title, config.AppName)
}

func (w *DocumentWindow) setTitle(title string) {
	w.title = title
	w.win.SetTitle(w.windowTitle())
}

func (w *DocumentWindow) open() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("reading %s: %w", reader.URI().Name(), err), w.win)
			return
		}
		w.editor.SetText(string(data))
		w.setTitle(strings.TrimSuffix(reader.URI().Name(), reader.URI().Extension()))
	}, w.win)
}

func (w *DocumentWindow) save() {
	if err := w.SaveExport(export.FileName(w.title, ".md"), []byte(w.DocumentText())); err != nil {
		dialog.ShowError(err, w.win)
	}
}

// print renders the document as a web page and opens it, leaving printing to the browser.
func (w *DocumentWindow) print() {
	data, err := w.sa.exporter.Render(export.HTML, w.title, []byte(w.DocumentText()))
	if err != nil {
		dialog.ShowError(err, w.win)
		return
	}
	if w.printFile == "" {
		f, err := os.CreateTemp("", strings.ToLower(config.AppName)+"-*.html")
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		f.Close()
		w.printFile = f.Name()
	}
	if err := os.WriteFile(w.printFile, data, 0600); err != nil {
		dialog.ShowError(err, w.win)
		return
	}
	p := filepath.ToSlash(w.printFile)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := &url.URL{Scheme: "file", Path: p}
	if err := w.sa.app.OpenURL(u); err != nil {
		dialog.ShowError(err, w.win)
	}
}

// removePrintFile deletes the page the last print handed to the browser.
func (w *DocumentWindow) removePrintFile() {
	if w.printFile == "" {
		return
	}
	if err := os.Remove(w.printFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to remove print file %s: %v", w.printFile, err)
	}
	w.printFile = ""
}

func (w *DocumentWindow) copy() {
	w.editor.TypedShortcut(&fyne.ShortcutCopy{Clipboard: w.sa.app.Clipboard()})
}

func (w *DocumentWindow) paste() {
	w.editor.TypedShortcut(&fyne.ShortcutPaste{Clipboard: w.sa.app.Clipboard()})
}

func (w *DocumentWindow) help() {
	dialog.ShowInformation("Toolbar Help",
		"Use the View menu to change how toolbar items are shown, choose which items appear, or go back to the default toolbar.",
		w.win)
}

func (w *DocumentWindow) createFileMenu() *fyne.Menu {
	return fyne.NewMenu("File",
		fyne.NewMenuItem("New", w.ToolbarAction("new")),
		fyne.NewMenuItem("Open…", w.open),
		fyne.NewMenuItem("Save…", w.save),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { w.sa.CreatePreferencesWindow() }),
	)
}

func (w *DocumentWindow) createViewMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, mode := range toolbar.DisplayModes() {
		mode := mode
		item := fyne.NewMenuItem(displayModeLabel(mode), func() {
			w.Toolbar().SetDisplayMode(mode)
		})
		w.modeItems[mode] = item
		items = append(items, item)
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Customize Toolbar…", w.showCustomizeDialog),
		fyne.NewMenuItem("Reset Toolbar", w.resetToolbar),
	)
	w.viewMenu = fyne.NewMenu("View", items...)
	w.refreshViewMenu()
	return w.viewMenu
}

func (w *DocumentWindow) refreshViewMenu() {
	if w.viewMenu == nil {
		return
	}
	tb := w.Toolbar()
	for mode, item := range w.modeItems {
		item.Checked = mode == tb.DisplayMode()
	}
	for _, item := range w.viewMenu.Items {
		if item.Label == "Customize Toolbar…" || item.Label == "Reset Toolbar" {
			item.Disabled = !tb.AllowsUserCustomization()
		}
	}
	w.viewMenu.Refresh()
}

func (w *DocumentWindow) resetToolbar() {
	if err := w.Toolbar().ResetToDefaults(); err != nil {
		dialog.ShowError(err, w.win)
	}
}

// showCustomizeDialog lets the user pick which palette items the toolbar shows.
func (w *DocumentWindow) showCustomizeDialog() {
	tb := w.Toolbar()
	options, ids := paletteOptions(tb.PaletteItems())

	selected := make([]string, 0, len(options))
	current := make(map[string]bool)
	for _, id := range tb.ItemIdentifiers() {
		current[id] = true
	}
	for i, id := range ids {
		if current[id] {
			selected = append(selected, options[i])
		}
	}

	group := widget.NewCheckGroup(options, nil)
	group.SetSelected(selected)

	dialog.ShowCustomConfirm("Customize Toolbar", "Apply", "Cancel", container.NewVScroll(group), func(ok bool) {
		if !ok {
			return
		}
		chosen := make(map[string]bool)
		for i, opt := range options {
			for _, s := range group.Selected {
				if s == opt {
					chosen[ids[i]] = true
				}
			}
		}
		if err := tb.SetItemIdentifiers(customizedOrder(tb.ItemIdentifiers(), ids, chosen)); err != nil {
			dialog.ShowError(err, w.win)
		}
	}, w.win)
}

// paletteOptions returns unique option labels for the non-standard palette
// items together with the identifier each label stands for.
func paletteOptions(palette []*toolbar.Item) (options, ids []string) {
	seen := make(map[string]bool)
	for _, it := range palette {
		if toolbar.IsStandardItem(it.Identifier) {
			continue
		}
		label := it.DisplayLabel(true)
		if seen[label] {
			label = fmt.Sprintf("%s (%s)", label, it.Identifier)
		}
		seen[label] = true
		options = append(options, label)
		ids = append(ids, it.Identifier)
	}
	return options, ids
}

// customizedOrder keeps the current order of the chosen items, leaves standard
// items where they are and appends newly chosen items in palette order.
func customizedOrder(current, palette []string, chosen map[string]bool) []string {
	order := make([]string, 0, len(current)+len(palette))
	present := make(map[string]bool)
	for _, id := range current {
		if toolbar.IsStandardItem(id) || chosen[id] {
			order = append(order, id)
			present[id] = true
		}
	}
	for _, id := range palette {
		if chosen[id] && !present[id] {
			order = append(order, id)
		}
	}
	return order
}
