package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("Failed to write file:", err)
	}
	return path
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app_id = "com.example.App"
icons_folder = "icons"
icons = ["go-home", "edit-copy"]
shipped_icons_folder = "/usr/share/shipped"
package = "appicons"
`)

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatal("Failed to load:", err)
	}

	expect := &Config{
		AppID:              "com.example.App",
		IconsFolder:        "icons",
		Icons:              []string{"go-home", "edit-copy"},
		ShippedIconsFolder: "/usr/share/shipped",
		Package:            "appicons",
		Toolkit:            GTK4,
	}

	if diff := cmp.Diff(expect, cfg, cmpopts.IgnoreFields(Config{}, "Dir")); diff != "" {
		t.Fatalf("Config mismatch (-want +got):\n%s", diff)
	}

	if !filepath.IsAbs(cfg.Dir) {
		t.Errorf("Dir %q is not absolute", cfg.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}
	if p := cfg.Prefix(); p != "/com/example/App/icons/scalable/actions/" {
		t.Errorf("Prefix = %q", p)
	}
	if r := cfg.Resolve("icons"); r != filepath.Join(cfg.Dir, "icons") {
		t.Errorf("Resolve = %q", r)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "icons.yaml", `
base_resource_path: /org/example/
icons_folder: data/icons
toolkit: gtk3
lazy: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal("Failed to load:", err)
	}

	if cfg.Toolkit != GTK3 || !cfg.Lazy || cfg.IconsFolder != "data/icons" {
		t.Fatalf("Unexpected config: %+v", cfg)
	}
	if p := cfg.Prefix(); p != "/org/example/icons/scalable/actions/" {
		t.Errorf("Prefix = %q", p)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDir(dir); err == nil {
		t.Error("Expected an error for a missing config")
	}

	unknown := writeFile(t, dir, "unknown.toml", `icon_folder = "icons"`)
	if _, err := Load(unknown); err == nil {
		t.Error("Expected an error for an unknown TOML key")
	}

	unknownYAML := writeFile(t, dir, "unknown.yml", `icon_folder: icons`)
	if _, err := Load(unknownYAML); err == nil {
		t.Error("Expected an error for an unknown YAML key")
	}

	broken := writeFile(t, dir, "broken.toml", `icons = [`)
	if _, err := Load(broken); err == nil {
		t.Error("Expected an error for broken TOML")
	}
}

func TestValidate(t *testing.T) {
	base := Config{IconsFolder: "icons", Package: "icons", Toolkit: GTK4}

	tests := map[string]func(c *Config){
		"toolkit":      func(c *Config) { c.Toolkit = "qt" },
		"no sources":   func(c *Config) { c.IconsFolder = "" },
		"no shipped":   func(c *Config) { c.Icons = []string{"go-home"} },
		"no package":   func(c *Config) { c.Package = "" },
		"bad package":  func(c *Config) { c.Package = "my-icons" },
		"keyword-like": func(c *Config) { c.Package = "1icons" },
	}

	for name, mutate := range tests {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GTKICONS_SHIPPED_FOLDER", "shipped")
	t.Setenv("GOPACKAGE", "fromgenerate")
	t.Setenv("GTKICONS_DEBUG", "true")

	e, err := ParseEnv()
	if err != nil {
		t.Fatal("Failed to parse env:", err)
	}
	if !e.Debug {
		t.Error("Debug not parsed")
	}

	cfg := &Config{}
	if err := cfg.ApplyEnv(e); err != nil {
		t.Fatal("Failed to apply env:", err)
	}

	if cfg.Package != "fromgenerate" {
		t.Errorf("Package = %q", cfg.Package)
	}
	if !filepath.IsAbs(cfg.ShippedIconsFolder) || filepath.Base(cfg.ShippedIconsFolder) != "shipped" {
		t.Errorf("ShippedIconsFolder = %q", cfg.ShippedIconsFolder)
	}

	// Values from the file win.
	cfg = &Config{Package: "fromfile", ShippedIconsFolder: "/file"}
	if err := cfg.ApplyEnv(e); err != nil {
		t.Fatal("Failed to apply env:", err)
	}
	if cfg.Package != "fromfile" || cfg.ShippedIconsFolder != "/file" {
		t.Errorf("Environment overrode the file: %+v", cfg)
	}
}
