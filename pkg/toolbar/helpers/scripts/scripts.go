// Package scripts provides the toolbar helper that turns every executable in a
// scripts directory into a toolbar item. A script reads the document on stdin
// and its output replaces the document.
package scripts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/dixieflatline76/Shelf/pkg/toolbar"
	"github.com/dixieflatline76/Shelf/util/log"
)

const (
	// Extension is the namespace extension of script items.
	Extension = ".script"
	// Template is the identifier whose document metadata describes every script item.
	Template = "ScriptTemplate"
	// IconName is the image used when the document names none.
	IconName = "script"
	// DefaultTimeout bounds a single script run.
	DefaultTimeout = 10 * time.Second

	waitDelay = 500 * time.Millisecond
)

// Document is implemented by toolbar owners whose text scripts can rewrite.
type Document interface {
	DocumentText() string
	SetDocumentText(text string)
}

// Helper contributes one toolbar item per script.
type Helper struct {
	dir     string
	timeout time.Duration
	scripts map[string]string // item name -> file name
	names   []string
}

// New creates a helper for the scripts in dir. A missing directory yields a
// helper without items.
func New(dir string, timeout time.Duration) *Helper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	h := &Helper{dir: dir, timeout: timeout}
	if err := h.Reload(); err != nil {
		log.Printf("Scripts: %v", err)
	}
	return h
}

// Reload rescans the scripts directory.
func (h *Helper) Reload() error {
	h.scripts = make(map[string]string)
	h.names = nil

	entries, err := fs.ReadDir(os.DirFS(h.dir), ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading scripts directory %s: %w", h.dir, err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if name == "" {
			continue
		}
		if existing, ok := h.scripts[name]; ok {
			log.Printf("Scripts: ignoring %s, %s already provides %q", e.Name(), existing, name)
			continue
		}
		h.scripts[name] = e.Name()
		h.names = append(h.names, name)
	}
	sort.Strings(h.names)
	log.Debugf("Scripts: found %d in %s", len(h.names), h.dir)
	return nil
}

// NamespaceExtension implements toolbar.Helper.
func (h *Helper) NamespaceExtension() string {
	return Extension
}

// TemplateIdentifier implements toolbar.Helper.
func (h *Helper) TemplateIdentifier() string {
	return Template
}

// AllowedItems implements toolbar.Helper.
func (h *Helper) AllowedItems() []string {
	return append([]string(nil), h.names...)
}

// Describe implements toolbar.Describer.
func (h *Helper) Describe(name string) *toolbar.ItemInfo {
	file, ok := h.scripts[name]
	if !ok {
		return nil
	}
	return &toolbar.ItemInfo{Label: name, ToolTip: "Run " + file}
}

// Finalize implements toolbar.Helper.
func (h *Helper) Finalize(item *toolbar.Item, tb *toolbar.Toolbar, willInsert bool) *toolbar.Item {
	name := strings.TrimSuffix(item.Identifier, Extension)
	if _, ok := h.scripts[name]; !ok {
		return nil
	}
	if item.IconName == "" && item.Icon == nil {
		item.IconName = IconName
	}
	if !willInsert {
		return item
	}

	doc, ok := tb.Owner().(Document)
	if !ok {
		item.Enabled = false
		return item
	}
	item.Action = func() {
		input := doc.DocumentText()
		go func() {
			out, err := h.Run(context.Background(), name, input)
			if err != nil {
				log.Printf("Script %s failed: %v", name, err)
				return
			}
			fyne.Do(func() {
				doc.SetDocumentText(out)
			})
		}()
	}
	return item
}

// Run executes the named script with input on stdin and returns its stdout.
func (h *Helper) Run(ctx context.Context, name, input string) (string, error) {
	file, ok := h.scripts[name]
	if !ok {
		return "", fmt.Errorf("no script named %q", name)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, filepath.Join(h.dir, file))
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s: %w", file, ctx.Err())
		}
		return "", fmt.Errorf("%s: %w: %s", file, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
