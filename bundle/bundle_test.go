package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diamondburned/gtkicons/config"
	"github.com/diamondburned/gtkicons/gresource"
	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M0 0h16v16H0z"/>
</svg>
`

func TestIconName(t *testing.T) {
	tests := []struct {
		file string
		name string
	}{
		{"go-home.svg", "go-home"},
		{"go-home-symbolic.svg", "go-home"},
		{"a.b.svg", "a.b"},
		{"symbolic.svg", "symbolic"},
		{"x-symbolic-symbolic.svg", "x-symbolic"},
		{"a.svg.svg", "a"},
		{"a.svg-symbolic.svg", "a"},
		{"a-symbolic.svg-symbolic.svg", "a"},
	}

	for _, test := range tests {
		name, err := IconName(test.file)
		if err != nil {
			t.Errorf("IconName(%q) failed: %v", test.file, err)
			continue
		}
		if name != test.name {
			t.Errorf("IconName(%q) = %q, want %q", test.file, name, test.name)
		}
	}

	for _, file := range []string{"README.md", "icon.png", "icon.SVG", ".svg", ".svg.svg", "-symbolic.svg", "dir"} {
		if _, err := IconName(file); !errors.Is(err, ErrNotIcon) {
			t.Errorf("IconName(%q) returned %v, want ErrNotIcon", file, err)
		}
	}
}

func TestIndex(t *testing.T) {
	ix := NewIndex()
	for _, name := range []string{"b", "c", "a"} {
		if err := ix.Add(name, "/"+name+".svg"); err != nil {
			t.Fatal("Failed to add:", err)
		}
	}

	if err := ix.Add("a", "/other/a.svg"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Adding a duplicate returned %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, ix.Names()); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}

	if path, ok := ix.Lookup("a"); !ok || path != "/a.svg" {
		t.Fatalf("Lookup(a) = (%q, %v); the duplicate must not replace it", path, ok)
	}
}

// fixture lays out files relative to a temporary directory and returns it.
func fixture(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, file := range files {
		path := filepath.Join(dir, file)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal("Failed to mkdir:", err)
		}
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			t.Fatal("Failed to write:", err)
		}
	}

	return dir
}

func TestCollect(t *testing.T) {
	dir := fixture(t,
		"icons/custom-one.svg",
		"icons/custom-two-symbolic.svg",
		"shipped/actions/go-home-symbolic.svg",
		"shipped/places/go-home-symbolic.svg",
		"shipped/places/folder-symbolic.svg",
	)

	cfg := &config.Config{
		Dir:                dir,
		IconsFolder:        "icons",
		Icons:              []string{"folder", "go-home"},
		ShippedIconsFolder: "shipped",
	}

	ix, err := Collect(cfg)
	if err != nil {
		t.Fatal("Failed to collect:", err)
	}

	expect := []Icon{
		{"custom-one", filepath.Join(dir, "icons/custom-one.svg")},
		{"custom-two", filepath.Join(dir, "icons/custom-two-symbolic.svg")},
		{"folder", filepath.Join(dir, "shipped/places/folder-symbolic.svg")},
		{"go-home", filepath.Join(dir, "shipped/actions/go-home-symbolic.svg")},
	}

	if diff := cmp.Diff(expect, ix.Icons()); diff != "" {
		t.Fatalf("Icons mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectDuplicate(t *testing.T) {
	tests := map[string][]string{
		"within folder": {
			"icons/go-home.svg",
			"icons/go-home-symbolic.svg",
		},
		"across sources": {
			"icons/go-home.svg",
			"shipped/actions/go-home-symbolic.svg",
		},
	}

	for name, files := range tests {
		dir := fixture(t, files...)
		cfg := &config.Config{
			Dir:                dir,
			IconsFolder:        "icons",
			Icons:              []string{"go-home"},
			ShippedIconsFolder: filepath.Join(dir, "shipped"),
		}
		if err := os.MkdirAll(cfg.ShippedIconsFolder, 0755); err != nil {
			t.Fatal("Failed to mkdir:", err)
		}

		if name == "within folder" {
			cfg.Icons = nil
		}

		if _, err := Collect(cfg); !errors.Is(err, ErrDuplicate) {
			t.Errorf("%s: expected ErrDuplicate, got %v", name, err)
		}
	}
}

func TestCollectErrors(t *testing.T) {
	dir := fixture(t,
		"icons/notes.txt",
		"shipped/actions/go-home-symbolic.svg",
	)

	cfg := &config.Config{Dir: dir, IconsFolder: "icons"}
	if _, err := Collect(cfg); !errors.Is(err, ErrNotIcon) {
		t.Errorf("Non-icon file returned %v", err)
	}

	cfg = &config.Config{Dir: dir, IconsFolder: "missing"}
	if _, err := Collect(cfg); err == nil {
		t.Error("Expected an error for a missing icon folder")
	}

	cfg = &config.Config{Dir: dir, Icons: []string{"edit-copy"}, ShippedIconsFolder: "shipped"}
	if _, err := Collect(cfg); !errors.Is(err, ErrNotFound) {
		t.Errorf("Missing shipped icon returned %v", err)
	}

	cfg = &config.Config{Dir: dir, Icons: []string{"go-home"}}
	if _, err := Collect(cfg); err == nil {
		t.Error("Expected an error without a shipped icons folder")
	}
}

func TestArchive(t *testing.T) {
	dir := fixture(t,
		"icons/a.svg",
		"icons/b-symbolic.svg",
		"icons/c.svg",
	)

	ix := NewIndex()
	if err := ScanFolder(ix, filepath.Join(dir, "icons")); err != nil {
		t.Fatal("Failed to scan:", err)
	}

	const prefix = "/com/example/App/icons/scalable/actions/"

	data, err := Archive(ix, prefix)
	if err != nil {
		t.Fatal("Failed to archive:", err)
	}

	r, err := gresource.Read(data)
	if err != nil {
		t.Fatal("Failed to read archive:", err)
	}

	files, err := r.Files()
	if err != nil {
		t.Fatal("Failed to list archive:", err)
	}

	var expect []string
	for _, name := range ix.Names() {
		expect = append(expect, iconpath.Resource(prefix, name))
	}

	if diff := cmp.Diff(expect, files); diff != "" {
		t.Fatalf("Archive mismatch (-want +got):\n%s", diff)
	}

	stripped, err := gresource.StripBlanks([]byte(svg))
	if err != nil {
		t.Fatal("Failed to strip:", err)
	}

	for _, file := range files {
		b, err := r.Open(file)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", file, err)
		}
		if string(b) != string(stripped) {
			t.Errorf("%s = %q, want %q", file, b, stripped)
		}
	}
}
