package tracer

import (
	"math/rand"
	"sync/atomic"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/surface"
)

// Tracer is a live handle over one worker goroutine. The goroutine drains
// jobs from a shared producer, traces them, and commits the resulting
// segments through a surface session, until Stop is called.
type Tracer struct {
	producer *JobProducer
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopped  atomic.Bool
}

// NewTracer creates a tracer and starts its worker goroutine immediately.
// The seed makes the worker's sampling reproducible; give each tracer in a
// pool its own seed.
func NewTracer(producer *JobProducer, target surface.Surface, seed int64, logger core.Logger) *Tracer {
	t := &Tracer{
		producer: producer,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
	go t.run(target, sampler, logger)
	return t
}

// Stop signals the worker to exit at its next poll point and blocks until
// the goroutine has terminated. The handle is dead afterwards: stopping a
// tracer twice is a broken invariant and panics.
func (t *Tracer) Stop() {
	if !t.stopped.CompareAndSwap(false, true) {
		panic("tracer: Stop called twice on the same handle")
	}

	close(t.stopCh)
	// The worker may be parked in WaitForWork; wake it so it can observe
	// the stop signal.
	t.producer.Wake()
	<-t.doneCh
}

// run is the main worker loop, running on the tracer's goroutine
func (t *Tracer) run(target surface.Surface, sampler core.Sampler, logger core.Logger) {
	defer close(t.doneCh)

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		job, ok := t.producer.TakeJob()
		if !ok {
			// No work for the current snapshot; park until a Reset (or a
			// shutdown Wake) and re-check the stop signal.
			t.producer.WaitForWork(t.stopCh)
			continue
		}

		t.process(job, target, sampler, logger)
	}
}

// process traces one job and commits its output. A panic while tracing is
// non-fatal to the pool: the job's output is dropped, the error is logged,
// and the worker moves on.
func (t *Tracer) process(job Job, target surface.Surface, sampler core.Sampler, logger core.Logger) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Printf("tracer: dropping job after trace failure: %v\n", r)
		}
	}()

	segments := Trace(job.Scene, job.SegmentsToProduce, sampler)
	if len(segments) == 0 {
		return
	}

	session := target.OpenSession()
	for _, segment := range segments {
		session.Draw(segment)
	}
	session.Commit()
}
