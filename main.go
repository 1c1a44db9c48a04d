package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/focallock/focus"
	"github.com/milk9111/focallock/internal/log"
	"github.com/milk9111/focallock/prefabs"
)

func main() {
	sceneName := flag.String("scene", "dolly.yaml", "scene document: a path on disk or a name in prefabs/scenes")
	prefsPath := flag.String("prefs", "", "preferences yaml overriding the scene's preferences block")
	level := flag.String("log", "info", "log level (debug, info, warn, error)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	log.Init(*level)

	var prefs *focus.Config
	if *prefsPath != "" {
		cfg, err := prefabs.LoadPreferences(*prefsPath)
		if err != nil {
			log.Error("load preferences", "path", *prefsPath, "err", err)
			os.Exit(1)
		}
		prefs = &cfg
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("focallock")

	game, err := NewGame(*sceneName, prefs)
	if err != nil {
		log.Error("load scene", "scene", *sceneName, "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
