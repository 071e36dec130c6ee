package main

import (
	"github.com/diamondburned/gtkicons/config"
	"github.com/diamondburned/gtkicons/internal/log"
)

func LoadEnvs() {
	e, err := config.ParseEnv()
	if err != nil {
		log.Fatalln("Failed to read environment:", err)
	}

	if e.Debug {
		log.EnableDebug = true
	}
}
