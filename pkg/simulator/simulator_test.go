package simulator

import (
	"sync"
	"testing"
	"time"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
	"github.com/df07/go-light-simulator/pkg/scene"
	"github.com/df07/go-light-simulator/pkg/surface"
)

// noopSurface discards everything drawn into it
type noopSurface struct{}

func (noopSurface) OpenSession() surface.Session { return noopSession{} }

type noopSession struct{}

func (noopSession) Draw(core.LightSegment) {}
func (noopSession) Commit()                {}

func demoScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.NewScene()

	circle, err := geometry.NewCircle(core.NewVec2(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(scene.Object{
		ID:          1,
		Shape:       circle,
		Interaction: scene.Emitter{Color: core.NewColor(255, 0, 0)},
	}); err != nil {
		t.Fatal(err)
	}

	box, err := geometry.NewBox(core.NewVec2(-50, -50), core.NewVec2(50, 50))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(scene.Object{
		ID:          2,
		Shape:       box,
		Interaction: scene.Collider{Material: scene.NewMirror(core.NewColor(200, 200, 200))},
	}); err != nil {
		t.Fatal(err)
	}
	return s
}

// Two tracers, a no-op surface, one reset of an empty scene, immediate stop:
// the pool must shut down cleanly.
func TestSimulatorImmediateShutdown(t *testing.T) {
	sim := New(noopSurface{}, DefaultConfig(), nil)
	sim.Reset(scene.NewScene())

	stopped := make(chan struct{})
	go func() {
		sim.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Simulator did not stop cleanly")
	}
}

func TestSimulatorStopWithoutReset(t *testing.T) {
	sim := New(noopSurface{}, DefaultConfig(), nil)

	stopped := make(chan struct{})
	go func() {
		sim.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Simulator did not stop before any reset")
	}
}

func TestSimulatorDoubleStopPanics(t *testing.T) {
	sim := New(noopSurface{}, DefaultConfig(), nil)
	sim.Stop()

	defer func() {
		if recover() == nil {
			t.Error("Expected second Stop to panic")
		}
	}()
	sim.Stop()
}

func TestSimulatorTracesIntoSurface(t *testing.T) {
	target := surface.NewCPUSurface(100, 100, core.NewVec2(-50, -50), core.NewVec2(50, 50))

	config := DefaultConfig()
	config.SegmentBudget = 500
	config.JobSize = 50

	sim := New(target, config, nil)
	sim.Reset(demoScene(t))

	deadline := time.Now().Add(5 * time.Second)
	for target.SegmentCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Simulator produced no segments")
		}
		time.Sleep(time.Millisecond)
	}
	sim.Stop()

	if count := target.SegmentCount(); count > 500 {
		t.Errorf("Pool committed %d segments, exceeding the snapshot budget of 500", count)
	}
}

func TestSimulatorRepeatedResets(t *testing.T) {
	target := surface.NewCPUSurface(64, 64, core.NewVec2(-50, -50), core.NewVec2(50, 50))

	config := DefaultConfig()
	config.SegmentBudget = 200
	config.JobSize = 20

	sim := New(target, config, nil)

	// Drive several frames the way a host tick loop would
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			target.Clear()
			sim.Reset(demoScene(t))
			time.Sleep(5 * time.Millisecond)
		}
	}()
	wg.Wait()
	sim.Stop()

	// Per-frame output never exceeds one snapshot budget plus one stale
	// in-flight job per tracer committed after the final clear.
	if count := target.SegmentCount(); count > 200+2*20 {
		t.Errorf("Final frame holds %d segments, more than a budget plus in-flight jobs", count)
	}
}
