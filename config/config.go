package config

import (
	"bytes"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up by LoadDir.
const FileName = "icons.toml"

// Toolkit is the GTK major version the generated code registers icons with.
type Toolkit string

const (
	GTK4 Toolkit = "gtk4"
	GTK3 Toolkit = "gtk3"
)

// Config describes one icon bundle.
type Config struct {
	// AppID is the application ID, e.g. com.example.App. It determines the
	// resource prefix when BaseResourcePath is empty.
	AppID string `toml:"app_id" yaml:"app_id"`
	// BaseResourcePath is the application's resource base path, e.g.
	// /com/example/App/.
	BaseResourcePath string `toml:"base_resource_path" yaml:"base_resource_path"`
	// IconsFolder is a directory of custom SVG icons, relative to the config
	// file.
	IconsFolder string `toml:"icons_folder" yaml:"icons_folder"`
	// Icons lists names looked up in ShippedIconsFolder.
	Icons []string `toml:"icons" yaml:"icons"`
	// ShippedIconsFolder holds category directories of <name>-symbolic.svg
	// files.
	ShippedIconsFolder string `toml:"shipped_icons_folder" yaml:"shipped_icons_folder"`

	Package string  `toml:"package" yaml:"package"`
	Toolkit Toolkit `toml:"toolkit" yaml:"toolkit"`
	Lazy    bool    `toml:"lazy" yaml:"lazy"`

	// Dir is the directory the config was loaded from.
	Dir string `toml:"-" yaml:"-"`
}

// Env holds the environment overrides.
type Env struct {
	ShippedIconsFolder string `env:"GTKICONS_SHIPPED_FOLDER"`
	OutDir             string `env:"GTKICONS_OUT_DIR"`
	Debug              bool   `env:"GTKICONS_DEBUG"`
	// Package is set by go generate.
	Package string `env:"GOPACKAGE"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, "Failed to parse environment")
	}
	return e, nil
}

// LoadDir loads icons.toml from dir.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Load reads a TOML or YAML config file. The format is picked from the file
// extension; anything that is not .yaml or .yml is decoded as TOML.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Couldn't read icon config")
	}

	cfg := &Config{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)

		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "Couldn't parse icon config %s", path)
		}

	default:
		md, err := toml.Decode(string(b), cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't parse icon config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("Unknown key %q in icon config %s", undecoded[0].String(), path)
		}
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get config directory")
	}
	cfg.Dir = dir

	if cfg.Toolkit == "" {
		cfg.Toolkit = GTK4
	}

	return cfg, nil
}

// ApplyEnv fills in fields the config file left empty.
func (c *Config) ApplyEnv(e Env) error {
	if c.ShippedIconsFolder == "" && e.ShippedIconsFolder != "" {
		abs, err := filepath.Abs(e.ShippedIconsFolder)
		if err != nil {
			return errors.Wrap(err, "Failed to resolve shipped icons folder")
		}
		c.ShippedIconsFolder = abs
	}

	if c.Package == "" {
		c.Package = e.Package
	}

	return nil
}

// Validate checks that the config describes a bundle that can be built.
func (c *Config) Validate() error {
	switch c.Toolkit {
	case GTK4, GTK3:
	default:
		return errors.Errorf("Unknown toolkit %q, expected %q or %q", c.Toolkit, GTK4, GTK3)
	}

	if c.IconsFolder == "" && len(c.Icons) == 0 {
		return errors.New("Config names neither icons_folder nor icons")
	}

	if len(c.Icons) > 0 && c.ShippedIconsFolder == "" {
		return errors.New("Config lists icons but no shipped icons folder is set")
	}

	if c.Package == "" {
		return errors.New("Package name is not set; run through go generate or set package")
	}
	if !token.IsIdentifier(c.Package) {
		return errors.Errorf("Package name %q is not a valid identifier", c.Package)
	}

	return nil
}

// Resolve returns path relative to the config directory unless it is
// absolute.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Prefix returns the resource prefix icons are stored under.
func (c *Config) Prefix() string {
	return iconpath.Prefix(c.AppID, c.BaseResourcePath)
}

// ThemePaths returns the icon theme search paths for Prefix.
func (c *Config) ThemePaths() []string {
	return iconpath.ThemePaths(c.Prefix())
}
