// Package gtk4 adds icon bundles to the GTK 4 icon theme.
package gtk4

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gtkicons/icons"
	"github.com/pkg/errors"
)

// Initialize initializes GTK and adds the theme paths of b to the icon theme
// of the default display. It does not register b itself.
func Initialize(b *icons.Bundle) error {
	gtk.Init()

	display := gdk.DisplayGetDefault()
	if display == nil {
		return errors.New("No default display")
	}

	theme := gtk.IconThemeGetForDisplay(display)
	for _, path := range b.ThemePaths() {
		theme.AddResourcePath(path)
	}

	return nil
}
