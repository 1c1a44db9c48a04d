package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/focallock/ecs"
	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/focus"
	"golang.org/x/image/colornames"
)

const (
	// pixels per world unit in the top-down view
	viewScale = 14.0
	// full-frame sensor width in mm, for the field-of-view wedge
	sensorWidth = 36.0
	wedgeLength = 6.0
)

// toScreen maps the world XY plane onto the viewport left of the panel,
// +Y up.
func toScreen(p mgl64.Vec3) (float32, float32) {
	cx := float64(baseWidth-panelWidth) / 2
	cy := float64(baseHeight) / 2
	return float32(cx + p[0]*viewScale), float32(cy - p[1]*viewScale)
}

func drawScene(screen *ebiten.Image, g *Game) {
	s := g.scene
	screen.Fill(colornames.Darkslategray)

	ecs.ForEach(s.World(), component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if ecs.Has(s.World(), e, component.CameraComponent.Kind()) {
			return
		}
		x, y := toScreen(t.Location)
		vector.FillCircle(screen, x, y, 6, colornames.Skyblue, true)
		ebitenutil.DebugPrintAt(screen, s.Name(e), int(x)+8, int(y)-8)
	})

	active, _ := s.ActiveCamera()
	for _, cam := range s.Cameras() {
		pose, err := s.CameraPose(cam)
		if err != nil {
			continue
		}
		x, y := toScreen(pose.Position)
		clr := colornames.Lightgrey
		if cam == active {
			clr = colornames.Gold
		}

		if lock, ok := s.FocalLock(cam); ok && lock.Enabled {
			if target, err := s.ObjectPosition(ecs.FromRef(lock.Target)); err == nil {
				tx, ty := toScreen(target)
				vector.StrokeLine(screen, x, y, tx, ty, 1, colornames.Tomato, true)
			}
		}

		drawWedge(screen, x, y, pose, clr)
		vector.StrokeRect(screen, x-5, y-5, 10, 10, 2, clr, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.1fmm", s.Name(cam), pose.FocalLength), int(x)+8, int(y)+4)
	}
}

// drawWedge draws the horizontal field of view: a longer lens gives a
// narrower wedge.
func drawWedge(screen *ebiten.Image, x, y float32, pose focus.CameraPose, clr color.Color) {
	fwd := focus.ForwardAxis(pose.Orientation)
	flat := mgl64.Vec2{fwd[0], fwd[1]}
	if flat.Len() < 1e-6 || pose.FocalLength <= 0 {
		return
	}
	flat = flat.Normalize()
	half := math.Atan(sensorWidth / 2 / pose.FocalLength)
	for _, a := range []float64{-half, half} {
		dir := mgl64.Rotate2D(a).Mul2x1(flat).Mul(wedgeLength * viewScale)
		vector.StrokeLine(screen, x, y, x+float32(dir[0]), y-float32(dir[1]), 1, clr, true)
	}
}

func drawHUD(screen *ebiten.Image, g *Game) {
	s := g.scene
	start, end := s.FrameRange()
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d [%d..%d]", s.Frame(), start, end)
	if g.playing {
		b.WriteString("  playing")
	}
	b.WriteByte('\n')

	if cam, ok := s.ActiveCamera(); ok {
		pose, _ := s.CameraPose(cam)
		lock, _ := g.engine.Lock(cam)
		fmt.Fprintf(&b, "camera %s  lens %.2fmm  shift %.3f, %.3f\n", s.Name(cam), pose.FocalLength, pose.ShiftX, pose.ShiftY)
		target := s.Name(ecs.FromRef(lock.Target))
		if target == "" {
			target = "-"
		}
		fmt.Fprintf(&b, "lock %v  target %s  track %v  ratio %.4f\n", lock.Enabled, target, lock.Track, lock.Ratio)
	}
	locked, total := g.engine.LockSummary()
	x, y := g.engine.ShiftLock()
	fmt.Fprintf(&b, "enabled on %d/%d  shift lock x:%v y:%v  last redraw %d\n", locked, total, x, y, g.lastRedraw)
	if g.statusTTL > 0 {
		b.WriteString(g.status)
		b.WriteByte('\n')
	}
	b.WriteString("\nspace play  <- -> step  tab camera  f target  l lock  t track\nx/y shift lock  c clear (shift: all)  b bake (shift: clear)  s save  k copy")
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)
}
