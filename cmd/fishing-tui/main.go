package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/jesseruder/beneaththesurface/internal/config"
	"github.com/jesseruder/beneaththesurface/internal/tui"
)

func main() {
	envFile := flag.String("env", "", "settings file (default .env)")
	demo := flag.Bool("demo", false, "start with the autopilot playing")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *demo {
		settings.Demo = true
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()

	app, err := tui.New(screen, settings)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	app.Run()
	screen.Fini()
}
