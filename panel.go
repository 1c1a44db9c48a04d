package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/focallock/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const panelWidth = 220

// panel is the right-hand column of operators. Only the summary text
// changes after construction.
type panel struct {
	summary *widget.Text
}

// newPanel builds the operator column. Buttons use colored nine-slices and
// the built-in basic font, so no theme assets are needed.
func newPanel(g *Game) (*ebitenui.UI, *panel) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	title := widget.NewText(
		widget.TextOpts.Text("Focal Lock", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	summary := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(stretch),
	)

	button := func(label string, fn func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(stretch),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				fn()
			}),
		)
	}

	column := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, baseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	column.AddChild(title)
	column.AddChild(summary)
	column.AddChild(button("Lock", g.toggleLock))
	column.AddChild(button("Next Target", g.nextTarget))
	column.AddChild(button("Track", g.toggleTracking))
	column.AddChild(button("Shift Lock Y", func() { g.toggleShift(component.AxisY) }))
	column.AddChild(button("Shift Lock X", func() { g.toggleShift(component.AxisX) }))
	column.AddChild(button("Clear All Other", func() { g.clearOthers(false) }))
	column.AddChild(button("Clear All", func() { g.clearOthers(true) }))
	column.AddChild(button("Bake", g.bake))
	column.AddChild(button("Clear Bake", g.clearBake))
	column.AddChild(button("Next Camera", g.nextCamera))
	column.AddChild(button("Play / Pause", func() { g.playing = !g.playing }))
	column.AddChild(button("Save", g.save))
	column.AddChild(button("Copy State", g.copyState))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(column)

	return &ebitenui.UI{Container: root}, &panel{summary: summary}
}

func (p *panel) refresh(g *Game) {
	locked, total := g.engine.LockSummary()
	x, y := g.engine.ShiftLock()
	p.summary.Label = fmt.Sprintf("Enabled on %d/%d\nShift lock x:%s y:%s", locked, total, onOff(x), onOff(y))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
