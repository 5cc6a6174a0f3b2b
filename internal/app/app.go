//go:build ebiten

package app

import (
	"image/color"
	"time"

	"tilegen/internal/core"
	"tilegen/internal/render"
	"tilegen/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxStepsPerFrame bounds catch-up after a stalled frame.
const maxStepsPerFrame = 8

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a staged generator to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep
	palette []color.RGBA

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided generator.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	gp := render.NewGridPainter(size.W, size.H)
	g := &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim, gp, cfg.Scale),
		pacer:   core.NewFixedStep(cfg.Rate),
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	if cfg.HUDWidth > 0 {
		g.hud = ui.NewHUD(sim, cfg.HUDWidth)
		g.hudWidth = cfg.HUDWidth
	}
	return g
}

// Reset reinitializes the generator with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

func (g *Game) finished() bool {
	f, ok := g.sim.(core.Finisher)
	return ok && f.Done()
}

// Update handles per-frame input and advances generation at the paced rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		for !g.finished() {
			g.sim.Step()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	if g.hud != nil {
		g.hud.Update(g.mapWidth())
	}

	steps := g.pacer.Steps(maxStepsPerFrame)
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = 1
		g.tickOnce = false
	}
	for i := 0; i < steps && !g.finished(); i++ {
		g.sim.Step()
	}
	return nil
}

// Draw renders the current map.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	if g.hud != nil {
		g.hud.Draw(screen, g.mapWidth(), g.scale)
	}
}

func (g *Game) mapWidth() int { return g.sim.Size().W * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.mapWidth() + g.hudWidth, s.H * g.scale
}
