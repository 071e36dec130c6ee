// Package gtk3 adds icon bundles to the GTK 3 icon theme.
package gtk3

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v3"
	"github.com/diamondburned/gtkicons/icons"
	"github.com/pkg/errors"
)

// Initialize initializes GTK and adds the theme paths of b to the default icon
// theme. It does not register b itself.
func Initialize(b *icons.Bundle) error {
	gtk.Init()

	theme := gtk.IconThemeGetDefault()
	if theme == nil {
		return errors.New("No default icon theme")
	}

	for _, path := range b.ThemePaths() {
		theme.AddResourcePath(path)
	}

	return nil
}
