// Command bake keys (or clears) focal-length keyframes for a camera over the
// scene's frame range and writes the resulting scene document.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/focus"
	"github.com/milk9111/focallock/internal/log"
	"github.com/milk9111/focallock/prefabs"
)

type options struct {
	scene  string
	camera string
	all    bool
	clear  bool
	out    string
	prefs  string
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "dolly.yaml", "scene document: a path on disk or a name in prefabs/scenes")
	flag.StringVar(&opts.camera, "camera", "", "camera to bake (default: the active camera)")
	flag.BoolVar(&opts.all, "all", false, "bake every camera with an enabled lock")
	flag.BoolVar(&opts.clear, "clear", false, "remove focal-length keys instead of inserting them")
	flag.StringVar(&opts.out, "out", "", "output path (default: stdout)")
	flag.StringVar(&opts.prefs, "prefs", "", "preferences yaml overriding the scene's preferences block")
	level := flag.String("log", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*level)
	if err := run(opts); err != nil {
		log.Error("bake", "err", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	loaded, err := prefabs.LoadScene(opts.scene)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	if opts.prefs != "" {
		if cfg, err = prefabs.LoadPreferences(opts.prefs); err != nil {
			return err
		}
	}
	s := loaded.Scene

	cams, err := selectCameras(loaded, opts)
	if err != nil {
		return err
	}
	engine := focus.New(s, cfg)
	engine.RestoreShiftLock(loaded.ShiftLock.X, loaded.ShiftLock.Y)
	engine.Subscribe(s.Bus())
	defer engine.Close()
	s.Load()

	for _, cam := range cams {
		var n int
		if opts.clear {
			n, err = engine.ClearBake(cam)
		} else {
			n, err = engine.Bake(cam)
		}
		if err != nil {
			return err
		}
		log.Info("baked", "camera", s.Name(cam), "keys", n, "clear", opts.clear)
	}

	data, err := prefabs.Marshal(prefabs.Snapshot(s, engine))
	if err != nil {
		return err
	}
	if opts.out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(opts.out, data, 0o644)
}

func selectCameras(loaded *prefabs.Loaded, opts options) ([]ecs.Entity, error) {
	s := loaded.Scene
	switch {
	case opts.all:
		var out []ecs.Entity
		for _, cam := range s.Cameras() {
			if lock, ok := s.FocalLock(cam); ok && lock.Enabled {
				out = append(out, cam)
			}
		}
		return out, nil
	case opts.camera != "":
		cam, ok := s.Lookup(opts.camera)
		if !ok {
			return nil, fmt.Errorf("unknown camera %q", opts.camera)
		}
		return []ecs.Entity{cam}, nil
	default:
		cam, ok := s.ActiveCamera()
		if !ok {
			return nil, focus.ErrNoActiveCamera
		}
		return []ecs.Entity{cam}, nil
	}
}
