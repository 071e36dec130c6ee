// Package iconpath computes the resource paths icons are stored under and the
// icon theme search paths that resolve them.
package iconpath

import "strings"

const (
	// GeneralPrefix is used when neither an application ID nor a base
	// resource path is configured.
	GeneralPrefix = "/org/gtkicons/icons/scalable/actions/"

	// Subpath is appended to the application's base resource path.
	Subpath = "icons/scalable/actions/"

	// SymbolicSuffix is the file suffix of stored icons.
	SymbolicSuffix = "-symbolic.svg"
)

// Prefix returns the resource prefix for an application. A base resource path
// takes precedence over the application ID.
func Prefix(appID, baseResourcePath string) string {
	switch {
	case baseResourcePath != "":
		if !strings.HasSuffix(baseResourcePath, "/") {
			baseResourcePath += "/"
		}
		return baseResourcePath + Subpath
	case appID != "":
		return "/" + strings.ReplaceAll(appID, ".", "/") + "/" + Subpath
	default:
		return GeneralPrefix
	}
}

// ThemePaths returns the resource paths to register with an icon theme for
// icons stored under prefix: the icons root and the prefix itself.
func ThemePaths(prefix string) []string {
	root := strings.TrimSuffix(prefix, "scalable/actions/")
	if root == prefix {
		return []string{prefix}
	}
	return []string{root, prefix}
}

// Resource returns the resource path of the icon name under prefix.
func Resource(prefix, name string) string {
	return prefix + name + SymbolicSuffix
}

// Symbolic returns the icon theme name of a stored icon.
func Symbolic(name string) string {
	return name + "-symbolic"
}
