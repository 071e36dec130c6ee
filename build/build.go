// Package build runs the icon bundling pipeline: it loads the config, collects
// the icons, writes the resource bundle and generates the Go source naming
// them.
package build

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/diamondburned/gtkicons/bundle"
	"github.com/diamondburned/gtkicons/codegen"
	"github.com/diamondburned/gtkicons/config"
	"github.com/diamondburned/gtkicons/internal/log"
	"github.com/google/renameio/v2"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

const (
	DefaultArchiveName = "resources.gresource"
	DefaultSourceName  = "icons_gen.go"
)

// Options configure a build. Empty fields take their defaults.
type Options struct {
	// ConfigPath is the config file; defaults to icons.toml in the working
	// directory.
	ConfigPath string
	// OutDir receives both outputs; defaults to $GTKICONS_OUT_DIR, then to
	// the config directory.
	OutDir string
	// Package overrides the package name of the generated file.
	Package string

	ArchiveName string
	SourceName  string

	// Print writes the generated source to Stdout instead of writing any
	// file.
	Print  bool
	Stdout io.Writer
}

// Result describes a finished build.
type Result struct {
	Icons   int
	Prefix  string
	Archive string
	Source  string
}

func (opts *Options) defaults() {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.FileName
	}
	if opts.ArchiveName == "" {
		opts.ArchiveName = DefaultArchiveName
	}
	if opts.SourceName == "" {
		opts.SourceName = DefaultSourceName
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
}

// Run runs the whole pipeline. Nothing is written unless every stage
// succeeds, and both outputs are fully written to temporary files before
// either one is replaced.
func Run(opts Options) (*Result, error) {
	opts.defaults()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	if opts.Package != "" {
		cfg.Package = opts.Package
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Invalid icon config")
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = env.OutDir
	}
	if outDir == "" {
		outDir = cfg.Dir
	}

	log.Debugln("Canonical config dir:", cfg.Dir)
	log.Debugln("Output dir:", outDir)

	ix, err := bundle.Collect(cfg)
	if err != nil {
		return nil, err
	}

	prefix := cfg.Prefix()

	archive, err := bundle.Archive(ix, prefix)
	if err != nil {
		return nil, err
	}

	shipped := cfg.Resolve(cfg.ShippedIconsFolder)

	icons := ix.Icons()
	for i, icon := range icons {
		icons[i].Path = docPath(cfg.Dir, shipped, icon.Path)
	}

	src, err := codegen.Generate(codegen.Options{
		Package:          cfg.Package,
		AppID:            cfg.AppID,
		BaseResourcePath: cfg.BaseResourcePath,
		Toolkit:          cfg.Toolkit,
		Lazy:             cfg.Lazy,
		ArchiveName:      opts.ArchiveName,
		Icons:            icons,
	})
	if err != nil {
		return nil, err
	}

	r := &Result{
		Icons:   ix.Len(),
		Prefix:  prefix,
		Archive: filepath.Join(outDir, opts.ArchiveName),
		Source:  filepath.Join(outDir, opts.SourceName),
	}

	if opts.Print {
		return r, printSource(opts.Stdout, src)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrap(err, "Failed to make output directory")
	}
	// Source first, so a source that cannot be replaced leaves the old
	// archive untouched.
	if err := writeFiles([]output{
		{r.Source, src},
		{r.Archive, archive},
	}); err != nil {
		return nil, err
	}

	return r, nil
}

// docPath shortens path for generated documentation so it does not depend on
// where the repository or the shipped icons are checked out. Paths below the
// config directory are relative to it, then paths below the shipped folder
// are relative to that.
func docPath(dir, shipped, path string) string {
	if rel, ok := relativePath(dir, path); ok {
		return rel
	}
	if shipped != "" {
		if rel, ok := relativePath(shipped, path); ok {
			return rel
		}
	}
	return filepath.ToSlash(path)
}

func relativePath(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

type output struct {
	path string
	data []byte
}

// writeFiles writes every output to a pending file next to its target, then
// atomically replaces the targets in order.
func writeFiles(outputs []output) error {
	pending := make([]*renameio.PendingFile, 0, len(outputs))
	defer func() {
		for _, p := range pending {
			if err := p.Cleanup(); err != nil {
				log.Debugln("Failed to clean up pending file:", err)
			}
		}
	}()

	for _, out := range outputs {
		p, err := renameio.NewPendingFile(out.path, renameio.WithPermissions(0644))
		if err != nil {
			return errors.Wrapf(err, "Failed to create %s", out.path)
		}
		pending = append(pending, p)

		if _, err := p.Write(out.data); err != nil {
			return errors.Wrapf(err, "Failed to write %s", out.path)
		}
	}

	for i, p := range pending {
		if err := p.CloseAtomicallyReplace(); err != nil {
			return errors.Wrapf(err, "Failed to replace %s", outputs[i].path)
		}
	}

	return nil
}

// printSource writes src to w, highlighted when w is a terminal.
func printSource(w io.Writer, src []byte) error {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return quick.Highlight(w, string(src), "go", "terminal256", "monokai")
	}

	_, err := w.Write(src)
	return err
}
