package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"github.com/milk9111/focallock/internal/log"
	"github.com/milk9111/focallock/prefabs"
	"github.com/milk9111/focallock/scene"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	statusFrames = 180
)

type Game struct {
	sceneName string
	// scenePath is the scene's file on disk, empty for embedded scenes.
	scenePath string
	prefs     *focus.Config

	loaded  *prefabs.Loaded
	scene   *scene.Scene
	engine  *focus.Engine
	redraw  *ecs.Subscription
	watcher *prefabs.Watcher

	ui    *ebitenui.UI
	panel *panel

	frames     int
	playing    bool
	lastRedraw int
	status     string
	statusTTL  int
	logger     *slog.Logger
}

func NewGame(sceneName string, prefs *focus.Config) (*Game, error) {
	g := &Game{
		sceneName: sceneName,
		scenePath: resolveScenePath(sceneName),
		prefs:     prefs,
		logger:    log.With("pkg", "viewer"),
	}
	if err := g.load(); err != nil {
		return nil, err
	}

	if g.scenePath != "" {
		w, err := prefabs.WatchScene(g.scenePath)
		if err != nil {
			g.logger.Warn("scene watcher disabled", "path", g.scenePath, "err", err)
		} else {
			g.watcher = w
		}
	}

	g.ui, g.panel = newPanel(g)
	return g, nil
}

// resolveScenePath finds the file backing name so edits can be watched.
func resolveScenePath(name string) string {
	for _, p := range []string{name, filepath.Join("prefabs", "scenes", name)} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// load builds the scene and a fresh engine subscribed to it, replacing any
// previous pair.
func (g *Game) load() error {
	name := g.sceneName
	if g.scenePath != "" {
		name = g.scenePath
	}
	loaded, err := prefabs.LoadScene(name)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	if g.prefs != nil {
		cfg = *g.prefs
	}

	g.closeScene()
	g.loaded = loaded
	g.scene = loaded.Scene
	g.engine = focus.New(g.scene, cfg)
	g.engine.RestoreShiftLock(loaded.ShiftLock.X, loaded.ShiftLock.Y)
	g.engine.Subscribe(g.scene.Bus())
	g.redraw = g.scene.Bus().Subscribe(ecs.EventRedraw, func() { g.lastRedraw = g.frames })
	g.scene.Load()

	locked, total := g.engine.LockSummary()
	g.logger.Info("scene loaded", "scene", name, "locked", locked, "cameras", total)
	return nil
}

func (g *Game) closeScene() {
	if g.engine != nil {
		g.engine.Close()
	}
	g.redraw.Close()
}

func (g *Game) Close() {
	g.closeScene()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	if g.statusTTL > 0 {
		g.statusTTL--
	}

	g.drainWatcher()
	g.handleKeys()
	g.ui.Update()

	if g.playing {
		g.step(1)
	}
	g.panel.refresh(g)
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.handleChange(ch)
		case err := <-g.watcher.Errors:
			g.logger.Warn("watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) handleChange(ch prefabs.Change) {
	switch ch.Kind {
	case prefabs.SceneChanged:
		if filepath.Clean(ch.Path) != filepath.Clean(g.scenePath) {
			return
		}
		if err := g.load(); err != nil {
			g.setStatus("reload failed: " + err.Error())
			return
		}
		g.setStatus("scene reloaded")
	case prefabs.ScriptChanged:
		n, err := g.reloadScript(ch.Path)
		if err != nil {
			g.setStatus("script reload failed: " + err.Error())
			return
		}
		if n > 0 {
			g.setStatus("script reloaded: " + filepath.Base(ch.Path))
		}
	}
}

// reloadScript swaps in the new source for every entity running the changed
// script and re-evaluates the current frame.
func (g *Game) reloadScript(path string) (int, error) {
	base := filepath.Base(path)
	var scripts []*component.MotionScript
	ecs.ForEach(g.scene.World(), component.MotionScriptComponent.Kind(), func(_ ecs.Entity, ms *component.MotionScript) {
		if filepath.Base(ms.Path) == base {
			scripts = append(scripts, ms)
		}
	})
	if len(scripts) == 0 {
		return 0, nil
	}

	src, err := prefabs.LoadScript(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	for _, ms := range scripts {
		ms.Source = src
	}
	g.scene.SetFrame(g.scene.Frame())
	return len(scripts), nil
}

func (g *Game) handleKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.playing = !g.playing
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.nextCamera()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.nextTarget()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.toggleLock()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.toggleTracking()
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.toggleShift(component.AxisY)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.toggleShift(component.AxisX)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.clearOthers(shift)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		if shift {
			g.clearBake()
		} else {
			g.bake()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.copyState()
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTTL = statusFrames
	g.logger.Debug(msg)
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g)
	drawHUD(screen, g)
	g.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
