package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
	"github.com/df07/go-light-simulator/pkg/scene"
	"github.com/df07/go-light-simulator/pkg/simulator"
)

// App is an interactive demo: an emitter orbits through the chosen scene
// while the simulator's tracers continuously redraw the light field. It
// implements ebiten.Game and plays the role of the host tick loop, pushing
// a fresh snapshot into the simulator every update.
type App struct {
	sim     *simulator.Simulator
	surface *Surface

	width, height      int
	worldMin, worldMax core.Vec2

	buildScene func(emitterPos core.Vec2) *scene.Scene
	angle      float64
}

// NewApp creates the demo app and starts its simulator
func NewApp(width, height int, config simulator.Config, logger core.Logger) *App {
	target := NewSurface()
	return &App{
		sim:        simulator.New(target, config, logger),
		surface:    target,
		width:      width,
		height:     height,
		worldMin:   core.NewVec2(-50, -50),
		worldMax:   core.NewVec2(50, 50),
		buildScene: orbitScene,
	}
}

// Update implements ebiten.Game: advance the orbit and push a new snapshot
func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.angle += 0.01
	a.surface.Clear()
	a.sim.Reset(a.buildScene(core.UnitFromAngle(a.angle).Multiply(25)))
	return nil
}

// Draw implements ebiten.Game: stroke every visible segment
func (a *App) Draw(screen *ebiten.Image) {
	for _, segment := range a.surface.Snapshot() {
		x0, y0 := a.toScreen(segment.Start)
		x1, y1 := a.toScreen(segment.End)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, segment.Color.ToRGBA(), true)
	}
}

// Layout implements ebiten.Game
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Run opens the window and blocks until it is closed, then stops the
// simulator's tracer pool.
func (a *App) Run(title string) error {
	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetWindowTitle(title)
	err := ebiten.RunGame(a)
	a.sim.Stop()
	return err
}

func (a *App) toScreen(p core.Vec2) (float32, float32) {
	spanX := a.worldMax.X - a.worldMin.X
	spanY := a.worldMax.Y - a.worldMin.Y
	x := (p.X - a.worldMin.X) / spanX * float64(a.width)
	y := (a.worldMax.Y - p.Y) / spanY * float64(a.height)
	return float32(x), float32(y)
}

// orbitScene rebuilds the demo scene with the emitter at the given position
func orbitScene(emitterPos core.Vec2) *scene.Scene {
	s := scene.NewScene()

	emitter, err := geometry.NewCircle(emitterPos, 3)
	if err != nil {
		panic(err)
	}
	add(s, scene.Object{
		ID:          1,
		Shape:       emitter,
		Interaction: scene.Emitter{Color: core.NewColor(255, 220, 150)},
	})

	glass, err := geometry.NewCircle(core.NewVec2(0, 0), 10)
	if err != nil {
		panic(err)
	}
	add(s, scene.Object{
		ID:          2,
		Shape:       glass,
		Interaction: scene.Collider{Material: scene.NewGlass(1.5)},
	})

	walls, err := geometry.NewBox(core.NewVec2(-48, -48), core.NewVec2(48, 48))
	if err != nil {
		panic(err)
	}
	add(s, scene.Object{
		ID:          3,
		Shape:       walls,
		Interaction: scene.Collider{Material: scene.NewMirror(core.NewColor(150, 150, 170))},
	})

	return s
}

func add(s *scene.Scene, obj scene.Object) {
	if err := s.Add(obj); err != nil {
		panic(err)
	}
}
