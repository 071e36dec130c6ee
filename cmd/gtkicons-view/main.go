// Command gtkicons-view previews the icons an icon config bundles.
package main

import (
	"flag"

	"github.com/diamondburned/gotk4-handy/pkg/handy"
	"github.com/diamondburned/gotk4/pkg/gtk/v3"
	"github.com/diamondburned/gtkicons/bundle"
	"github.com/diamondburned/gtkicons/config"
	"github.com/diamondburned/gtkicons/iconpath"
	"github.com/diamondburned/gtkicons/icons"
	"github.com/diamondburned/gtkicons/icons/gtk3"
	"github.com/diamondburned/gtkicons/internal/log"
	"github.com/skratchdot/open-golang/open"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", config.FileName, "Icon config file (TOML or YAML)")
	flag.BoolVar(&log.EnableDebug, "debug", false, "Enable debug logging")
}

func loadBundle() (*icons.Bundle, []bundle.Icon) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln("Failed to load config:", err)
	}

	env, err := config.ParseEnv()
	if err != nil {
		log.Fatalln("Failed to read environment:", err)
	}
	if err := cfg.ApplyEnv(env); err != nil {
		log.Fatalln("Failed to apply environment:", err)
	}

	ix, err := bundle.Collect(cfg)
	if err != nil {
		log.Fatalln("Failed to collect icons:", err)
	}

	data, err := bundle.Archive(ix, cfg.Prefix())
	if err != nil {
		log.Fatalln("Failed to build archive:", err)
	}

	return icons.NewBundle(data, cfg.Prefix()), ix.Icons()
}

func newIconButton(icon bundle.Icon) *gtk.Button {
	img := gtk.NewImageFromIconName(iconpath.Symbolic(icon.Name), int(gtk.IconSizeDialog))

	label := gtk.NewLabel(icon.Name)
	label.SetMaxWidthChars(16)
	label.SetLineWrap(true)

	box := gtk.NewBox(gtk.OrientationVertical, 6)
	box.Add(img)
	box.Add(label)

	btn := gtk.NewButton()
	btn.SetRelief(gtk.ReliefNone)
	btn.SetTooltipText(icon.Path)
	btn.Add(box)
	btn.Connect("clicked", func() {
		if err := open.Start(icon.Path); err != nil {
			log.Errorln("Failed to open", icon.Path+":", err)
		}
	})

	return btn
}

func main() {
	flag.Parse()

	b, all := loadBundle()
	b.MustRegister()

	if err := gtk3.Initialize(b); err != nil {
		log.Fatalln("Failed to initialize GTK:", err)
	}
	handy.Init()

	flow := gtk.NewFlowBox()
	flow.SetSelectionMode(gtk.SelectionNone)
	flow.SetHomogeneous(true)
	flow.SetMaxChildrenPerLine(8)
	for _, icon := range all {
		flow.Add(newIconButton(icon))
	}

	scroll := gtk.NewScrolledWindow(nil, nil)
	scroll.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scroll.Add(flow)

	h := handy.NewHeaderBar()
	h.SetTitle("Icons")
	h.SetSubtitle(b.Prefix())
	h.SetShowCloseButton(true)

	w := gtk.NewWindow(gtk.WindowToplevel)
	w.SetTitlebar(h)
	w.SetDefaultSize(720, 540)
	w.Add(scroll)
	w.Connect("destroy", func() { gtk.MainQuit() })
	w.ShowAll()

	log.Infof("Showing %d icons", len(all))
	gtk.Main()
}
