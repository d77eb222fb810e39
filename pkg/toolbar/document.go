package toolbar

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Document keys.
const (
	keyVersion             = "version"
	keyDisplayMode         = "display_mode"
	keyAllowsCustomization = "allows_customization"
	keyDefaultItems        = "default_items"
	keyAllowedItems        = "allowed_items"
	keyHelpers             = "helpers"
	keyItems               = "items"
	keyLocalized           = "localized"

	keyLabel        = "label"
	keyPaletteLabel = "palette_label"
	keyToolTip      = "tooltip"
	keyImage        = "image"
	keyAction       = "action"
)

// AllHelperItems in a helpers entry selects every item the helper allows.
const AllHelperItems = "*"

// document is the typed view of a toolbar document tree.
type document struct {
	version             string
	displayMode         DisplayMode
	hasDisplayMode      bool
	allowsCustomization *bool
	defaultItems        []string
	allowedItems        []string
	helpers             map[string][]string
	items               map[string]ItemInfo
	localized           map[string]map[string]ItemInfo // identifier -> language tag -> info
}

// parseDocument converts a generic tree into a document. Entries that cannot be
// interpreted are reported to diag and skipped.
func parseDocument(tree map[string]any, diag func(error)) *document {
	doc := &document{
		helpers:   make(map[string][]string),
		items:     make(map[string]ItemInfo),
		localized: make(map[string]map[string]ItemInfo),
	}
	if tree == nil {
		return doc
	}

	if v, ok := tree[keyVersion]; ok {
		s, isString := v.(string)
		switch {
		case !isString:
			diag(malformed(keyVersion, "expected a string, got %T", v))
		case !semver.IsValid(canonicalVersion(s)):
			diag(malformed(keyVersion, "%q is not a semantic version", s))
		default:
			doc.version = s
		}
	}

	if v, ok := tree[keyDisplayMode]; ok {
		s, isString := v.(string)
		if !isString {
			diag(malformed(keyDisplayMode, "expected a string, got %T", v))
		} else if mode, err := ParseDisplayMode(s); err != nil {
			diag(err)
		} else {
			doc.displayMode = mode
			doc.hasDisplayMode = true
		}
	}

	if v, ok := tree[keyAllowsCustomization]; ok {
		if b, isBool := v.(bool); isBool {
			doc.allowsCustomization = &b
		} else {
			diag(malformed(keyAllowsCustomization, "expected a boolean, got %T", v))
		}
	}

	doc.defaultItems = stringList(tree[keyDefaultItems], keyDefaultItems, diag)
	doc.allowedItems = stringList(tree[keyAllowedItems], keyAllowedItems, diag)

	if v, ok := tree[keyHelpers]; ok {
		section, isMap := asMap(v)
		if !isMap {
			diag(malformed(keyHelpers, "expected a table, got %T", v))
		}
		for ext, names := range section {
			if ext == "" {
				diag(malformed(keyHelpers, "empty namespace extension"))
				continue
			}
			doc.helpers[ext] = stringList(names, keyHelpers+"."+ext, diag)
		}
	}

	if v, ok := tree[keyItems]; ok {
		section, isMap := asMap(v)
		if !isMap {
			diag(malformed(keyItems, "expected a table, got %T", v))
		}
		for id, raw := range section {
			entry, isMap := asMap(raw)
			if !isMap {
				diag(malformed(keyItems+"."+id, "expected a table, got %T", raw))
				continue
			}
			doc.items[id] = itemInfo(entry, keyItems+"."+id, diag)
			if loc, ok := entry[keyLocalized]; ok {
				doc.localized[id] = localizedInfo(loc, keyItems+"."+id+"."+keyLocalized, diag)
			}
		}
	}

	return doc
}

// helperExtensions returns the namespace extensions referenced by the document, sorted.
func (d *document) helperExtensions() []string {
	exts := make([]string, 0, len(d.helpers))
	for ext := range d.helpers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func itemInfo(entry map[string]any, path string, diag func(error)) ItemInfo {
	var info ItemInfo
	fields := []struct {
		key string
		dst *string
	}{
		{keyLabel, &info.Label},
		{keyPaletteLabel, &info.PaletteLabel},
		{keyToolTip, &info.ToolTip},
		{keyImage, &info.ImageName},
		{keyAction, &info.ActionName},
	}
	for _, f := range fields {
		v, ok := entry[f.key]
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			diag(malformed(path+"."+f.key, "expected a string, got %T", v))
			continue
		}
		*f.dst = s
	}
	return info
}

func localizedInfo(v any, path string, diag func(error)) map[string]ItemInfo {
	out := make(map[string]ItemInfo)
	section, ok := asMap(v)
	if !ok {
		diag(malformed(path, "expected a table, got %T", v))
		return out
	}
	for tag, raw := range section {
		entry, isMap := asMap(raw)
		if !isMap {
			diag(malformed(path+"."+tag, "expected a table, got %T", raw))
			continue
		}
		out[tag] = itemInfo(entry, path+"."+tag, diag)
	}
	return out
}

// stringList reads a list of non-empty strings, skipping anything else.
func stringList(v any, path string, diag func(error)) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(list))
		for _, s := range list {
			if s == "" {
				diag(malformed(path, "empty identifier"))
				continue
			}
			out = append(out, s)
		}
		return out
	case []any:
		out := make([]string, 0, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok || s == "" {
				diag(malformed(fmt.Sprintf("%s[%d]", path, i), "expected a non-empty string, got %#v", e))
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		diag(malformed(path, "expected a list, got %T", v))
		return nil
	}
}

// asMap accepts the map shapes produced by the TOML and YAML decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedEntry, path, fmt.Sprintf(format, args...))
}

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// compatibleVersions reports whether a record saved against version saved can
// be applied to a document at version current. Missing or invalid versions
// are treated as compatible.
func compatibleVersions(saved, current string) bool {
	sv, cv := canonicalVersion(saved), canonicalVersion(current)
	if !semver.IsValid(sv) || !semver.IsValid(cv) {
		return true
	}
	return semver.Major(sv) == semver.Major(cv)
}
