package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jesseruder/beneaththesurface/internal/config"
	"github.com/jesseruder/beneaththesurface/internal/game"
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

	g, err := game.New(settings)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle(settings.WindowTitle)
	ebiten.SetWindowSize(settings.WindowWidth, settings.WindowHeight)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
