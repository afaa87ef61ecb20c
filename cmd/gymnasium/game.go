package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerunner/common"
	"github.com/milk9111/freerunner/phys"
	"github.com/milk9111/freerunner/phys/chipmunk"
	"github.com/milk9111/freerunner/player"
	"github.com/milk9111/freerunner/tuning"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickRate = 1.0 / 60.0
	gravity  = 9.81

	// pixels per meter
	viewScale = 42.0
)

type Game struct {
	world *chipmunk.World
	body  *chipmunk.Body
	ctrl  *player.Controller

	sounds  *synth
	watcher *tuning.Watcher
	tuning  string

	labels []label

	// jump height tracker: records Y when leaving the ground and the
	// peak reached before landing again.
	jumpStartY  float64
	jumpPeakY   float64
	lastJumpH   float64
	wasGrounded bool

	lastEvent string
}

func NewGame(tuningPath string, mute bool) (*Game, error) {
	cfg, err := tuning.Load(tuningPath)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}

	world := chipmunk.NewWorld(gravity)
	labels := buildCourse(world, cfg)

	spawn := mgl64.Vec3{0, cfg.StandHeight/2 + 0.1, 0}
	body := world.NewPlayerBody(spawn, cfg.Radius, cfg.StandHeight, cfg.PlayerLayer, cfg.CollisionMask)

	ctrl, err := player.New(world, body, cfg)
	if err != nil {
		return nil, err
	}

	watcher, err := tuning.NewWatcher(filepath.Dir(tuningPath))
	if err != nil {
		log.Printf("tuning watcher disabled: %v", err)
		watcher = nil
	}

	return &Game{
		world:       world,
		body:        body,
		ctrl:        ctrl,
		sounds:      newSynth(mute),
		watcher:     watcher,
		tuning:      tuningPath,
		labels:      labels,
		wasGrounded: true,
	}, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollTuning()

	events := g.ctrl.Tick(tickRate, pollInput())
	g.world.Step(tickRate)
	g.sounds.handle(events)

	for _, ev := range events {
		g.lastEvent = ev.Kind.String()
	}

	g.trackJump()
	return nil
}

// pollTuning applies edited tuning files between ticks.
func (g *Game) pollTuning() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			if filepath.Base(name) != filepath.Base(g.tuning) {
				continue
			}
			cfg, err := tuning.Load(g.tuning)
			if err != nil {
				log.Printf("reload tuning: %v", err)
				continue
			}
			if err := g.ctrl.SetConfig(cfg); err != nil {
				log.Printf("apply tuning: %v", err)
				continue
			}
			log.Printf("tuning reloaded from %s", name)
		case err := <-g.watcher.Errors:
			log.Printf("tuning watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) trackJump() {
	grounded := g.ctrl.Grounded()
	y := g.ctrl.Position().Y()

	if grounded && !g.wasGrounded {
		g.lastJumpH = g.jumpPeakY - g.jumpStartY
	}
	if !grounded && g.wasGrounded {
		g.jumpStartY = y
		g.jumpPeakY = y
	}
	if !grounded && y > g.jumpPeakY {
		g.jumpPeakY = y
	}
	g.wasGrounded = grounded
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	pos := g.ctrl.Position()
	camX, camY := pos.X(), pos.Y()+1

	toScreen := func(wx, wy float64) (float32, float32) {
		sx := (wx-camX)*viewScale + baseWidth/2
		sy := baseHeight/2 - (wy-camY)*viewScale
		return float32(sx), float32(sy)
	}

	g.world.Space().EachShape(func(shape *cp.Shape) {
		clr := shapeColor(shape)
		switch s := shape.Class.(type) {
		case *cp.Segment:
			// Static segments live on the identity static body, so
			// endpoints are already world coordinates.
			x0, y0 := toScreen(s.A().X, s.A().Y)
			x1, y1 := toScreen(s.B().X, s.B().Y)
			vector.StrokeLine(screen, x0, y0, x1, y1, 3, clr, true)
		case *cp.PolyShape:
			bb := shape.BB()
			x, y := toScreen(bb.L, bb.T)
			w := float32((bb.R - bb.L) * viewScale)
			h := float32((bb.T - bb.B) * viewScale)
			vector.DrawFilledRect(screen, x, y, w, h, clr, true)
		}
	})

	// Player capsule drawn as a rounded box in the mode's color.
	radius := g.ctrl.Config().Radius
	height := g.ctrl.Config().StandHeight
	if g.ctrl.Crouched() {
		height = g.ctrl.Config().CrouchHeight
	}
	px, py := toScreen(pos.X()-radius, pos.Y()+height/2)
	vector.DrawFilledRect(screen, px, py,
		float32(2*radius*viewScale), float32(height*viewScale),
		modeColor(g.ctrl.Mode()), true)

	for _, l := range g.labels {
		lx, ly := toScreen(l.pos.X(), l.pos.Y())
		if lx < -100 || lx > baseWidth+100 {
			continue
		}
		ebitenutil.DebugPrintAt(screen, l.text, int(lx), int(ly))
	}

	speed := common.HorizontalLen(g.ctrl.Velocity())
	hud := fmt.Sprintf(
		"Mode:  %s\nSpeed: %.1f m/s\nJump:  %.2f m\nEvent: %s\nFPS:   %.0f\n\nA/D move  Space jump  Shift sprint  Ctrl crouch",
		g.ctrl.Mode(), speed, g.lastJumpH, g.lastEvent, ebiten.ActualFPS(),
	)
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func shapeColor(shape *cp.Shape) color.Color {
	if tag, ok := shape.UserData.(phys.SurfaceTag); ok {
		switch tag {
		case phys.TagLadder:
			return colornames.Goldenrod
		case phys.TagForceSlide:
			return colornames.Orangered
		case phys.TagLedgeGrabbable:
			return colornames.Slategray
		}
	}
	return colornames.Darkseagreen
}

func modeColor(m player.Mode) color.Color {
	switch m {
	case player.ModeSprint:
		return colornames.Orange
	case player.ModeCrouch:
		return colornames.Khaki
	case player.ModeSlide, player.ModeForcedSlide:
		return colornames.Tomato
	case player.ModeAir, player.ModeWallJump:
		return colornames.Skyblue
	case player.ModeLedgeGrab, player.ModeLedgeClimb:
		return colornames.Plum
	case player.ModeLadder:
		return colornames.Gold
	default:
		return colornames.White
	}
}
