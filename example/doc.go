// Package example bundles the icons in ./icons. Run go generate to produce
// resources.gresource and icons_gen.go, which exposes ListAdd and
// WindowClose.
package example

//go:generate go run github.com/diamondburned/gtkicons -config icons.toml
