package simulator

import (
	"sync/atomic"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/scene"
	"github.com/df07/go-light-simulator/pkg/surface"
	"github.com/df07/go-light-simulator/pkg/tracer"
)

// Config contains configuration for the simulator's tracer pool
type Config struct {
	NumTracers    int   // Number of worker threads (tracers) to run
	SegmentBudget int   // Total segments traced per scene snapshot
	JobSize       int   // Largest segment quota handed to a tracer at once
	Seed          int64 // Base seed for the tracers' samplers
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumTracers:    2,
		SegmentBudget: tracer.DefaultSegmentBudget,
		JobSize:       tracer.DefaultJobSize,
		Seed:          1,
	}
}

// Simulator owns the drawing surface, the shared job producer, and a
// fixed-size pool of tracers draining it. Tracers start running as soon as
// the simulator is created; the host pushes a scene snapshot per tick via
// Reset and must call Stop before discarding the simulator.
type Simulator struct {
	surface  surface.Surface
	producer *tracer.JobProducer
	tracers  []*tracer.Tracer
	logger   core.Logger
	stopped  atomic.Bool
}

// New creates a simulator and immediately starts its tracer pool
func New(target surface.Surface, config Config, logger core.Logger) *Simulator {
	if config.NumTracers <= 0 {
		config.NumTracers = DefaultConfig().NumTracers
	}
	if logger == nil {
		logger = core.NewStdoutLogger()
	}

	producer := tracer.NewJobProducer(config.SegmentBudget, config.JobSize)

	sim := &Simulator{
		surface:  target,
		producer: producer,
		logger:   logger,
	}
	for i := 0; i < config.NumTracers; i++ {
		sim.tracers = append(sim.tracers, tracer.NewTracer(producer, target, config.Seed+int64(i), logger))
	}
	return sim
}

// Reset pushes a new scene snapshot into the shared job producer, refilling
// the pool's work budget. The simulator is the producer's only writer. The
// snapshot must not be modified after this call.
func (s *Simulator) Reset(snapshot *scene.Scene) {
	s.producer.Reset(snapshot)
}

// Stop shuts down the tracer pool, blocking until every worker thread has
// exited. The simulator is dead afterwards; stopping twice panics.
func (s *Simulator) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		panic("simulator: Stop called twice")
	}

	for _, t := range s.tracers {
		t.Stop()
	}
	s.tracers = nil
}

// Surface returns the drawing surface the pool commits into
func (s *Simulator) Surface() surface.Surface {
	return s.surface
}

// PendingWork returns the unassigned portion of the current snapshot's
// segment budget. Zero means the pool has picked up all outstanding work.
func (s *Simulator) PendingWork() int {
	return s.producer.Remaining()
}
