package asset

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/dixieflatline76/Shelf/util/log"
)

//go:embed icons/* toolbars/*
var assets embed.FS

// ToolbarDir is the directory of the embedded toolbar documents.
const ToolbarDir = "toolbars"

// Manager manages the loading of UI assets.
type Manager struct {
	theme fyne.Theme
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{theme: theme.DefaultTheme()}
}

// GetIcon loads and returns embedded icon asset by name.
func (am *Manager) GetIcon(name string) (fyne.Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("icon name is empty")
	}
	if path.Ext(name) == "" {
		name += ".svg"
	}

	iconData, err := assets.ReadFile("icons/" + name)
	if err != nil {
		return nil, err
	}

	return fyne.NewStaticResource(name, iconData), nil
}

// Lookup returns the icon called name, trying the embedded icons first and the
// theme icons second. It returns nil if neither has one.
func (am *Manager) Lookup(name string) fyne.Resource {
	if name == "" {
		return nil
	}
	if res, err := am.GetIcon(name); err == nil {
		return res
	}
	if res := am.theme.Icon(fyne.ThemeIconName(strings.TrimSuffix(name, path.Ext(name)))); res != nil {
		return res
	}
	log.Debugf("No icon named %q", name)
	return nil
}

// ToolbarFS returns the embedded toolbar documents.
func (am *Manager) ToolbarFS() fs.FS {
	sub, err := fs.Sub(assets, ToolbarDir)
	if err != nil {
		// only fails for invalid paths, ToolbarDir is a constant
		panic(err)
	}
	return sub
}
