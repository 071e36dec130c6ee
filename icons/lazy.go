package icons

import (
	"sync"

	"github.com/diamondburned/gtkicons/gresource"
	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/diamondburned/gtkicons/internal/log"
)

// LazyIcon is an icon name whose bundle is registered the first time the name
// is used.
type LazyIcon struct {
	name   string
	bundle *Bundle
	svg    []byte

	once sync.Once
}

// Lazy returns a handle for the icon name stored in b.
func Lazy(b *Bundle, name string) *LazyIcon {
	return &LazyIcon{name: name, bundle: b}
}

// NewLazyIcon returns a handle for a standalone SVG. On first use it is packed
// into its own bundle under the general prefix and registered.
func NewLazyIcon(name string, svg []byte) *LazyIcon {
	return &LazyIcon{name: name, svg: svg}
}

func (i *LazyIcon) init() {
	i.once.Do(func() {
		if i.bundle == nil {
			data, err := gresource.Build([]gresource.FileData{
				gresource.NewFileData(iconpath.GeneralPrefix+i.name+".svg", i.svg, true, true),
			})
			if err != nil {
				log.Panicln("Failed to build resource bundle:", err)
			}

			i.bundle = NewBundle(data, iconpath.GeneralPrefix)
			i.svg = nil
		}

		i.bundle.MustRegister()
		log.Debugln("Registered icon:", i.name)
	})
}

// Name registers the icon if needed and returns its name.
func (i *LazyIcon) Name() string {
	i.init()
	return i.name
}

// String implements fmt.Stringer.
func (i *LazyIcon) String() string {
	return i.Name()
}
