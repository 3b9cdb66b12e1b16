package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/logicgates/ecs/system"
)

// HUD is the overlay with the level switch button and the solved counter.
type HUD struct {
	UI      *ebitenui.UI
	status  *widget.Text
	variant *widget.Text
	last    *widget.Text
}

// NewHUD builds a small top-left panel. onSwitch runs when the "Switch level"
// button is clicked.
func NewHUD(onSwitch func()) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	variant := widget.NewText(
		widget.TextOpts.Text("Level 1", &face, white),
	)
	status := widget.NewText(
		widget.TextOpts.Text("Solved 0/0", &face, white),
	)
	last := widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)
	switchBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnPressed, Pressed: btnPressed}),
		widget.ButtonOpts.Text("Switch level", &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onSwitch != nil {
				onSwitch()
			}
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(variant)
	panel.AddChild(status)
	panel.AddChild(last)
	panel.AddChild(switchBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &HUD{
		UI:      &ebitenui.UI{Container: root},
		status:  status,
		variant: variant,
		last:    last,
	}
}

// SetStatus refreshes the labels.
func (h *HUD) SetStatus(status system.PuzzleStatus) {
	if h == nil {
		return
	}
	h.variant.Label = fmt.Sprintf("Level %d", status.Variant)
	h.status.Label = fmt.Sprintf("Solved %d/%d", status.Solved, status.Total)
	if status.Complete {
		h.status.Label += " (complete)"
	}
	h.last.Label = status.Last
}
