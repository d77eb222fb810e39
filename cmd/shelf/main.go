package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/dixieflatline76/Shelf/asset"
	"github.com/dixieflatline76/Shelf/config"
	"github.com/dixieflatline76/Shelf/pkg/toolbar"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/helpers/export"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/helpers/scripts"
	"github.com/dixieflatline76/Shelf/pkg/toolbar/store"
	"github.com/dixieflatline76/Shelf/ui"
	"github.com/dixieflatline76/Shelf/util/log"
)

func main() {
	acquired, err := acquireLock()
	if err != nil {
		log.Fatalf("Failed to check for another running instance: %v", err)
	}
	if !acquired {
		fmt.Printf("Another instance of %s is already running.\n", config.AppName)
		os.Exit(0)
	}
	defer releaseLock()

	a := app.NewWithID(config.AppID)
	cfg := config.NewAppConfig(a.Preferences())
	assetMgr := asset.NewManager()

	registry, err := newRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to register toolbar helpers: %v", err)
	}

	sa := ui.NewShelfApp(a, assetMgr, registry, newDocumentStore(assetMgr))
	sa.NewWindow(ui.EditorToolbar).Show()
	sa.Run()
}

// newRegistry registers every toolbar helper and seals the registry.
func newRegistry(cfg *config.AppConfig) (*toolbar.Registry, error) {
	registry := toolbar.NewRegistry()
	if err := registry.Register(export.New()); err != nil {
		return nil, err
	}

	if cfg.GetScriptsEnabled() {
		dir, err := config.UserPath(config.ScriptsSubDir)
		if err != nil {
			log.Printf("Script items disabled: %v", err)
		} else if err := registry.Register(scripts.New(dir, 0)); err != nil {
			return nil, err
		}
	}

	registry.Seal()
	log.Printf("Registered %d toolbar helpers", registry.Len())
	return registry, nil
}

// newDocumentStore looks for toolbar documents in the user directory first and
// falls back to the documents embedded in the binary.
func newDocumentStore(assetMgr *asset.Manager) toolbar.DocumentStore {
	chain := store.Chain{}
	if dir, err := config.UserPath(config.ToolbarsSubDir); err == nil {
		chain = append(chain, store.NewDocumentStore(os.DirFS(dir), "."))
	} else {
		log.Printf("User toolbar documents unavailable: %v", err)
	}
	return append(chain, store.NewDocumentStore(assetMgr.ToolbarFS(), "."))
}
