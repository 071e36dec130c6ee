// Package icons registers generated icon bundles with GIO at runtime.
package icons

import (
	"sync"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/diamondburned/gtkicons/internal/log"
	"github.com/pkg/errors"
)

// Bundle is a GResource bundle of icons stored under one prefix.
type Bundle struct {
	data   []byte
	prefix string

	once sync.Once
	err  error
}

// NewBundle wraps bundle data whose icons live under prefix.
func NewBundle(data []byte, prefix string) *Bundle {
	return &Bundle{
		data:   data,
		prefix: prefix,
	}
}

// Prefix returns the resource prefix of the icons.
func (b *Bundle) Prefix() string {
	return b.prefix
}

// ThemePaths returns the paths to add to an icon theme.
func (b *Bundle) ThemePaths() []string {
	return iconpath.ThemePaths(b.prefix)
}

// Register registers the bundle with GIO. Only the first call does any work;
// later calls return the first result.
func (b *Bundle) Register() error {
	b.once.Do(func() {
		b.err = register(b.data)
		if b.err == nil {
			log.Debugln("Registered icon bundle under", b.prefix)
		}
	})
	return b.err
}

// MustRegister is Register that panics on failure.
func (b *Bundle) MustRegister() {
	if err := b.Register(); err != nil {
		log.Panicln("Failed to register icon bundle:", err)
	}
}

func register(data []byte) error {
	res, err := gio.NewResourceFromData(glib.NewBytes(data))
	if err != nil {
		return errors.Wrap(err, "Failed to create resource")
	}

	gio.ResourcesRegister(res)
	return nil
}
