package main

import (
	"flag"
	"os"

	"github.com/diamondburned/gtkicons/build"
	"github.com/diamondburned/gtkicons/config"
	"github.com/diamondburned/gtkicons/internal/log"
)

var (
	configPath string
	outDir     string
	pkgName    string
	printSrc   bool
	debug      bool
	inspect    string
)

func init() {
	flag.StringVar(&configPath, "config", config.FileName, "Icon config file (TOML or YAML)")
	flag.StringVar(&outDir, "out", "", "Output directory, defaults to the config directory")
	flag.StringVar(&pkgName, "package", "", "Package name of the generated file, defaults to $GOPACKAGE")
	flag.BoolVar(&printSrc, "print", false, "Print the generated source instead of writing files")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&inspect, "inspect", "", "List the contents of a .gresource file and exit")
}

func main() {
	flag.Parse()
	LoadEnvs()

	if debug {
		log.EnableDebug = true
	}

	if inspect != "" {
		if err := Inspect(os.Stdout, inspect); err != nil {
			log.Fatalln("Failed to inspect resource bundle:", err)
		}
		return
	}

	r, err := build.Run(build.Options{
		ConfigPath: configPath,
		OutDir:     outDir,
		Package:    pkgName,
		Print:      printSrc,
	})
	if err != nil {
		log.Fatalln("Failed to build icons:", err)
	}

	if !printSrc {
		log.Infof("Bundled %d icons under %s into %s", r.Icons, r.Prefix, r.Archive)
	}
}
