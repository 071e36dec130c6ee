package bundle

import (
	"os"
	"path/filepath"

	"github.com/diamondburned/gtkicons/config"
	"github.com/diamondburned/gtkicons/gresource"
	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/diamondburned/gtkicons/internal/log"
	"github.com/pkg/errors"
)

// ScanFolder adds every file in dir to ix. Every entry must be an SVG icon.
func ScanFolder(ix *Index, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "Couldn't open icon folder")
	}

	for _, entry := range entries {
		name, err := IconName(entry.Name())
		if err != nil {
			return errors.Wrapf(err, "in %s", dir)
		}

		if err := ix.Add(name, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	log.Debugf("Found %d icons in %s", len(entries), dir)
	return nil
}

// AddShipped looks up names in the category directories of shippedDir and
// adds them to ix. The first category that has <name>-symbolic.svg wins.
func AddShipped(ix *Index, shippedDir string, names []string) error {
	entries, err := os.ReadDir(shippedDir)
	if err != nil {
		return errors.Wrap(err, "Couldn't open folder of shipped icons")
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(shippedDir, entry.Name()))
		}
	}

	for _, name := range names {
		path, ok := findShipped(dirs, name)
		if !ok {
			return errors.Wrapf(ErrNotFound, "%q", name)
		}

		if err := ix.Add(name, path); err != nil {
			return err
		}
	}

	return nil
}

func findShipped(dirs []string, name string) (string, bool) {
	file := name + iconpath.SymbolicSuffix

	for _, dir := range dirs {
		path := filepath.Join(dir, file)
		if s, err := os.Stat(path); err == nil && s.Mode().IsRegular() {
			return path, true
		}
	}

	return "", false
}

// Collect builds the index described by cfg: the custom icons folder first,
// then the listed shipped icons. A name present in both is an error.
func Collect(cfg *config.Config) (*Index, error) {
	defer log.Benchmark("Collecting icons")()

	ix := NewIndex()

	if cfg.IconsFolder != "" {
		if err := ScanFolder(ix, cfg.Resolve(cfg.IconsFolder)); err != nil {
			return nil, err
		}
	}

	if len(cfg.Icons) > 0 {
		if cfg.ShippedIconsFolder == "" {
			return nil, errors.New("Could not find shipped icons folder")
		}
		if err := AddShipped(ix, cfg.Resolve(cfg.ShippedIconsFolder), cfg.Icons); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// Archive packs every icon in ix into a GResource bundle under prefix. Icons
// are compressed and stripped of blank XML text.
func Archive(ix *Index, prefix string) ([]byte, error) {
	defer log.Benchmark("Building archive")()

	icons := ix.Icons()
	files := make([]gresource.FileData, 0, len(icons))

	for _, icon := range icons {
		f, err := gresource.FromFile(iconpath.Resource(prefix, icon.Name), icon.Path, true, true)
		if err != nil {
			return nil, errors.Wrapf(err, "icon %q", icon.Name)
		}
		files = append(files, f)
	}

	return gresource.Build(files)
}
