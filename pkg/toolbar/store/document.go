package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dixieflatline76/Shelf/pkg/toolbar"
)

// DocumentSuffix is appended to a configuration name to form the document file name.
const DocumentSuffix = ".toolbar"

// decoder parses one document format into a generic tree.
type decoder func(data []byte) (map[string]any, error)

// formats lists the supported document extensions in lookup order.
var formats = []struct {
	ext    string
	decode decoder
}{
	{".toml", decodeTOML},
	{".yaml", decodeYAML},
	{".yml", decodeYAML},
}

// DocumentStore reads toolbar documents from a file system.
type DocumentStore struct {
	fsys fs.FS
	dir  string
}

// NewDocumentStore creates a store reading "<name>.toolbar.{toml,yaml,yml}" files from dir in fsys.
func NewDocumentStore(fsys fs.FS, dir string) *DocumentStore {
	if dir == "" {
		dir = "."
	}
	return &DocumentStore{fsys: fsys, dir: dir}
}

// Load implements toolbar.DocumentStore.
func (s *DocumentStore) Load(name string) (map[string]any, error) {
	if name == "" || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid name %q", toolbar.ErrDocumentNotFound, name)
	}

	for _, f := range formats {
		file := path.Join(s.dir, name+DocumentSuffix+f.ext)
		data, err := fs.ReadFile(s.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading toolbar document %s: %w", file, err)
		}

		tree, err := f.decode(data)
		if err != nil {
			return nil, fmt.Errorf("parsing toolbar document %s: %w", file, err)
		}
		if tree == nil {
			tree = make(map[string]any)
		}
		return tree, nil
	}
	return nil, fmt.Errorf("%w: %q", toolbar.ErrDocumentNotFound, name)
}

// Names lists the configuration names of every document in the store.
func (s *DocumentStore) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, f := range formats {
			base, ok := strings.CutSuffix(e.Name(), DocumentSuffix+f.ext)
			if ok && base != "" {
				if !seen[base] {
					seen[base] = true
					names = append(names, base)
				}
				break
			}
		}
	}
	return names, nil
}

func decodeTOML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Chain searches several document stores in order. The first store that has a
// document with the requested name wins.
type Chain []toolbar.DocumentStore

// Load implements toolbar.DocumentStore.
func (c Chain) Load(name string) (map[string]any, error) {
	for _, s := range c {
		if s == nil {
			continue
		}
		tree, err := s.Load(name)
		if errors.Is(err, toolbar.ErrDocumentNotFound) {
			continue
		}
		return tree, err
	}
	return nil, fmt.Errorf("%w: %q", toolbar.ErrDocumentNotFound, name)
}
