// Package codegen writes the Go source that exposes a bundle's icons by name.
package codegen

import (
	"bytes"
	"go/token"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/diamondburned/gtkicons/bundle"
	"github.com/diamondburned/gtkicons/config"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

// Header marks generated files.
const Header = "// Code generated by gtkicons. DO NOT EDIT."

// ImportPath is the import path of this module.
const ImportPath = "github.com/diamondburned/gtkicons"

// reserved identifiers are declared by the generated file itself.
var reserved = map[string]bool{
	"Initialize": true,
}

// Options describe the file to generate.
type Options struct {
	Package          string
	AppID            string
	BaseResourcePath string
	Toolkit          config.Toolkit
	Lazy             bool

	// ArchiveName is the file name of the bundle, embedded with go:embed.
	// It must be in the same directory as the generated file.
	ArchiveName string
	// Icons are the bundled icons. Paths are only used in documentation.
	Icons []bundle.Icon
}

// Const is a single generated icon declaration.
type Const struct {
	Ident string
	Name  string
	Path  string
}

// Identifier converts an icon name into an exported Go identifier. Names may
// only contain ASCII letters and digits separated by '-', '_', '.' or spaces,
// since strcase drops any other rune.
func Identifier(name string) (string, error) {
	for _, r := range name {
		if !isNameRune(r) {
			return "", errors.Errorf("icon %q has %q, which cannot be part of a Go identifier", name, r)
		}
	}

	ident := strcase.ToCamel(name)

	if r, _ := utf8.DecodeRuneInString(ident); !unicode.IsLetter(r) || reserved[ident] {
		ident = "Icon" + ident
	}

	if !token.IsIdentifier(ident) || !token.IsExported(ident) {
		return "", errors.Errorf("icon %q does not map to an exported Go identifier (got %q)", name, ident)
	}

	return ident, nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.', r == ' ':
		return true
	default:
		return false
	}
}

// Consts maps icons to declarations. Two icons mapping to the same identifier
// is an error.
func Consts(icons []bundle.Icon) ([]Const, error) {
	consts := make([]Const, 0, len(icons))
	seen := make(map[string]string, len(icons))

	for _, icon := range icons {
		ident, err := Identifier(icon.Name)
		if err != nil {
			return nil, err
		}

		if other, ok := seen[ident]; ok {
			return nil, errors.Errorf("icons %q and %q both map to identifier %s", other, icon.Name, ident)
		}
		seen[ident] = icon.Name

		consts = append(consts, Const{
			Ident: ident,
			Name:  icon.Name,
			Path:  icon.Path,
		})
	}

	return consts, nil
}

var fileTemplate = template.Must(template.New("icons").Parse(`{{ .Header }}

package {{ .Package }}

import (
	_ "embed"

	"{{ .ImportPath }}/iconpath"
	"{{ .ImportPath }}/icons"
	"{{ .ImportPath }}/icons/{{ .Toolkit }}"
)

const (
	appID            = {{ printf "%q" .AppID }}
	baseResourcePath = {{ printf "%q" .BaseResourcePath }}
)

//go:embed {{ .ArchiveName }}
var resourceData []byte

var bundle = icons.NewBundle(resourceData, iconpath.Prefix(appID, baseResourcePath))
{{ range .Consts }}
// {{ .Ident }} is the icon name of the icon {{ printf "%q" .Name }}, found at {{ .Path }}.
{{- if $.Lazy }}
var {{ .Ident }} = icons.Lazy(bundle, {{ printf "%q" .Name }})
{{- else }}
const {{ .Ident }} = {{ printf "%q" .Name }}
{{- end }}
{{ end }}
// Initialize brings up {{ .Toolkit }} and adds the bundled icons to its icon
// theme.{{ if .Lazy }} The bundle itself is registered when an icon name is
// first used.{{ end }}
func Initialize() {
	{{- if not .Lazy }}
	bundle.MustRegister()
	{{- end }}
	if err := {{ .Toolkit }}.Initialize(bundle); err != nil {
		panic(err)
	}
}
`))

// Generate renders and formats the source file.
func Generate(opts Options) ([]byte, error) {
	consts, err := Consts(opts.Icons)
	if err != nil {
		return nil, err
	}

	if opts.ArchiveName == "" {
		return nil, errors.New("missing archive name")
	}

	var buf bytes.Buffer
	err = fileTemplate.Execute(&buf, struct {
		Options
		Header     string
		ImportPath string
		Consts     []Const
	}{
		Options:    opts,
		Header:     Header,
		ImportPath: ImportPath,
		Consts:     consts,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to render template")
	}

	src, err := imports.Process("icons_gen.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to format generated source")
	}

	return src, nil
}
