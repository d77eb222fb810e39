// Command bump_toolbar raises the version of toolbar documents. A major bump
// makes every window discard the item order users saved for the old version.
package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/fatih/color"
)

// Version represents a semantic version with major, minor, and patch components.
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Prefix string // "v" or ""
}

// versionLine matches the top-level version entry of a TOML or YAML toolbar document.
var versionLine = regexp.MustCompile(`(?m)^(version\s*[=:]\s*["']?)(v?)(\d+)\.(\d+)\.(\d+)(["']?)`)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bump_toolbar <bump-type> <document>...")
		fmt.Println("Where <bump-type> is one of: patch, minor, major")
		os.Exit(1)
	}

	bumpType := os.Args[1]
	failed := false
	for _, file := range os.Args[2:] {
		from, to, err := bumpFile(file, bumpType)
		if err != nil {
			color.Red("%s: %v\n", file, err)
			failed = true
			continue
		}
		color.Green("%s: %s -> %s\n", file, from, to)
		if bumpType == "major" {
			color.Yellow("  saved customization of this toolbar will be discarded\n")
		}
	}
	if failed {
		os.Exit(1)
	}
}

// bumpFile rewrites the version entry of a toolbar document in place.
func bumpFile(filename, bumpType string) (Version, Version, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Version{}, Version{}, err
	}
	out, from, to, err := bumpDocument(data, bumpType)
	if err != nil {
		return Version{}, Version{}, err
	}

	info, err := os.Stat(filename)
	if err != nil {
		return Version{}, Version{}, err
	}
	return from, to, os.WriteFile(filename, out, info.Mode().Perm())
}

// bumpDocument returns data with its version entry bumped.
func bumpDocument(data []byte, bumpType string) ([]byte, Version, Version, error) {
	m := versionLine.FindSubmatchIndex(data)
	if m == nil {
		return nil, Version{}, Version{}, fmt.Errorf("no version entry")
	}

	from, err := parseVersion(string(data[m[4]:m[5]]), string(data[m[6]:m[7]]), string(data[m[8]:m[9]]), string(data[m[10]:m[11]]))
	if err != nil {
		return nil, Version{}, Version{}, err
	}
	to, err := bumpVersion(from, bumpType)
	if err != nil {
		return nil, Version{}, Version{}, err
	}

	out := make([]byte, 0, len(data)+2)
	out = append(out, data[:m[4]]...)
	out = append(out, to.String()...)
	out = append(out, data[m[11]:]...)
	return out, from, to, nil
}

// parseVersion builds a Version from its matched components.
func parseVersion(prefix, major, minor, patch string) (Version, error) {
	v := Version{Prefix: prefix}
	for _, c := range []struct {
		s   string
		dst *int
	}{{major, &v.Major}, {minor, &v.Minor}, {patch, &v.Patch}} {
		n, err := strconv.Atoi(c.s)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", c.s, err)
		}
		*c.dst = n
	}
	return v, nil
}

// bumpVersion increments the version based on the bump type.
func bumpVersion(v Version, bumpType string) (Version, error) {
	switch bumpType {
	case "patch":
		v.Patch++
	case "minor":
		v.Minor++
		v.Patch = 0
	case "major":
		v.Major++
		v.Minor = 0
		v.Patch = 0
	default:
		return v, fmt.Errorf("invalid bump type: %s", bumpType)
	}
	return v, nil
}

// String returns the formatted version string (e.g., "1.2.4").
func (v Version) String() string {
	return fmt.Sprintf("%s%d.%d.%d", v.Prefix, v.Major, v.Minor, v.Patch)
}
