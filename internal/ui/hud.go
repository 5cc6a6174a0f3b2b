//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"tilegen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the map. Clicking a +/-
// button pushes the new value into the sim, which regenerates.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int

	pixel *ebiten.Image
}

type hudControlState struct {
	control  core.ParameterControl
	value    float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

var (
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimTextColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	disabledColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
			minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
			h.controls = append(h.controls, hudControlState{control: ctrl, top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes control values from the sim and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.refreshValues()
	h.handleInput()
}

func (h *HUD) refreshValues() {
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	values := map[string]string{}
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			values[p.Key] = p.Value
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		parsed, err := strconv.ParseFloat(values[state.control.Key], 64)
		state.hasValue = err == nil
		state.value = parsed
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	pt := image.Pt(px, my)
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pt.In(state.minusRect):
			h.adjust(state, -1)
			return
		case pt.In(state.plusRect):
			h.adjust(state, 1)
			return
		}
	}
}

func (h *HUD) adjust(state *hudControlState, dir int) {
	target, ok := stepTarget(state.control, state.value, dir)
	if !ok {
		return
	}
	var applied bool
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil {
			applied = h.intSetter.SetIntParameter(state.control.Key, int(target))
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil {
			applied = h.floatSetter.SetFloatParameter(state.control.Key, target)
		}
	}
	if applied {
		state.value = target
	}
}

// Draw paints the HUD panel anchored to the right edge of the map view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, "Terrain", face, panelPadding, headerY, textColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+lineHeight, dimTextColor)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		y := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, textColor)

		value, col := "--", dimTextColor
		if state.hasValue {
			value, col = formatControl(state.control, state.value), textColor
		}
		valueX := state.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, valueX, y, col)

		_, canDec := stepTarget(state.control, state.value, -1)
		_, canInc := stepTarget(state.control, state.value, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && canDec)
		h.drawButton(state.plusRect, "+", state.hasValue && canInc)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonColor, textColor
	if !enabled {
		bg, fg = disabledColor, dimTextColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
