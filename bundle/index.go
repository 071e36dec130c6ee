// Package bundle discovers icon files and packs them into a resource bundle.
package bundle

import (
	"sort"
	"strings"

	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/pkg/errors"
)

var (
	// ErrNotIcon is returned for files that are not SVG icons.
	ErrNotIcon = errors.New("non-icon file")
	// ErrDuplicate is returned when two files map to the same icon name.
	ErrDuplicate = errors.New("icon exists twice")
	// ErrNotFound is returned when a requested shipped icon does not exist.
	ErrNotFound = errors.New("icon not found in shipped icons")
)

const svgSuffix = ".svg"

// IconName derives the icon name from an SVG file name by removing every
// trailing -symbolic.svg, then every trailing .svg.
func IconName(fileName string) (string, error) {
	if !strings.HasSuffix(fileName, svgSuffix) {
		return "", errors.Wrapf(ErrNotIcon, "%q", fileName)
	}

	name := trimAll(fileName, iconpath.SymbolicSuffix)
	name = trimAll(name, svgSuffix)

	if name == "" {
		return "", errors.Wrapf(ErrNotIcon, "%q has no name", fileName)
	}

	return name, nil
}

func trimAll(s, suffix string) string {
	for strings.HasSuffix(s, suffix) {
		s = s[:len(s)-len(suffix)]
	}
	return s
}

// Icon is a discovered icon.
type Icon struct {
	Name string
	Path string
}

// Index maps icon names to the files they were found in. Names are unique.
type Index struct {
	icons map[string]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		icons: map[string]string{},
	}
}

// Add adds an icon. Adding a name twice is an error.
func (ix *Index) Add(name, path string) error {
	if prev, ok := ix.icons[name]; ok {
		return errors.Wrapf(ErrDuplicate, "%q at %s and %s", name, prev, path)
	}
	ix.icons[name] = path
	return nil
}

// Len returns the number of icons.
func (ix *Index) Len() int {
	return len(ix.icons)
}

// Lookup returns the file of the icon name.
func (ix *Index) Lookup(name string) (string, bool) {
	path, ok := ix.icons[name]
	return path, ok
}

// Icons returns all icons sorted by name.
func (ix *Index) Icons() []Icon {
	icons := make([]Icon, 0, len(ix.icons))
	for name, path := range ix.icons {
		icons = append(icons, Icon{Name: name, Path: path})
	}

	sort.Slice(icons, func(i, j int) bool {
		return icons[i].Name < icons[j].Name
	})

	return icons
}

// Names returns all icon names, sorted.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.icons))
	for name := range ix.icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
