// Command check_toolbars resolves every toolbar document against the
// registered helpers and reports the entries that would be skipped.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"

	"github.com/dixieflatline76/Shelf/asset"
	"github.com/dixieflatline76/Shelf/pkg/toolbar"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/helpers/export"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/helpers/scripts"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/store"
)

// lintOwner resolves a document as an autosaving window with no static fallback.
type lintOwner struct {
	name string
}

func (o lintOwner) ToolbarConfigurationName() string               { return o.name }
func (o lintOwner) ShouldAllowUserToolbarCustomization() bool      { return true }
func (o lintOwner) ShouldAutosaveToolbarConfiguration() bool       { return true }
func (o lintOwner) DefaultToolbarDisplayMode() toolbar.DisplayMode { return toolbar.DisplayModeDefault }
func (o lintOwner) ToolbarConfigurationDictionary() map[string]any { return nil }

func main() {
	dir := flag.String("dir", "", "directory holding toolbar documents (default: the embedded documents)")
	scriptDir := flag.String("scripts", "", "scripts directory whose items documents may reference")
	flag.Parse()

	var fsys fs.FS
	if *dir != "" {
		fsys = os.DirFS(*dir)
	} else {
		fsys = asset.NewManager().ToolbarFS()
	}

	registry := toolbar.NewRegistry()
	if err := registry.Register(export.New()); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	if *scriptDir != "" {
		if err := registry.Register(scripts.New(*scriptDir, 0)); err != nil {
			color.Red("Error: %v\n", err)
			os.Exit(1)
		}
	}
	registry.Seal()

	problems, err := check(os.Stdout, store.NewDocumentStore(fsys, "."), registry)
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	if problems > 0 {
		os.Exit(1)
	}
}

// check resolves every document in docs and prints its item order and
// diagnostics to w. It returns the number of diagnostics found.
func check(w io.Writer, docs *store.DocumentStore, registry *toolbar.Registry) (int, error) {
	names, err := docs.Names()
	if err != nil {
		return 0, fmt.Errorf("listing toolbar documents: %w", err)
	}
	if len(names) == 0 {
		return 0, fmt.Errorf("no toolbar documents found")
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	merger := toolbar.NewMerger(registry, docs, nil)
	problems := 0
	for _, name := range names {
		cfg := merger.Resolve(lintOwner{name: name})

		cyan.Fprintf(w, "%s", name)
		if cfg.Version != "" {
			fmt.Fprintf(w, " (version %s)", cfg.Version)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  display mode: %s, customizable: %t\n", cfg.DisplayMode, cfg.AllowsCustomization)
		fmt.Fprint(w, "  items:")
		for _, id := range cfg.ItemOrder {
			green.Fprintf(w, " %s", id)
		}
		fmt.Fprintln(w)

		for _, d := range cfg.Diagnostics {
			red.Fprintf(w, "  %v\n", d)
		}
		problems += len(cfg.Diagnostics)
	}
	return problems, nil
}
