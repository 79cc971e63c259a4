package tracer

import (
	"sync"

	"github.com/df07/go-light-simulator/pkg/scene"
)

// Job is a bounded unit of trace work: a frozen scene snapshot plus the
// number of segments the tracer should produce from it. A job is consumed
// exactly once by exactly one tracer.
type Job struct {
	// Scene is the snapshot current at the time the job was taken. Shared
	// read-only across jobs; never mutated after Reset hands it over.
	Scene *scene.Scene

	// SegmentsToProduce is this job's share of the snapshot's budget.
	SegmentsToProduce int
}

// JobProducer is the single shared source of trace work for a pool of
// tracers. One writer (the simulator) replaces the snapshot via Reset while
// any number of tracers drain it via TakeJob. All state lives under one
// mutex and every critical section is O(1); no tracing happens while the
// lock is held.
type JobProducer struct {
	mu   sync.Mutex
	cond *sync.Cond

	snapshot  *scene.Scene
	remaining int // Segments left in the current snapshot's budget
	budget    int // Total segment budget granted per Reset
	jobSize   int // Largest quota handed out per TakeJob call
}

// NewJobProducer creates a job producer that grants budget segments per
// snapshot, carved into jobs of at most jobSize segments each.
func NewJobProducer(budget, jobSize int) *JobProducer {
	if budget <= 0 {
		budget = DefaultSegmentBudget
	}
	if jobSize <= 0 || jobSize > budget {
		jobSize = budget
	}
	p := &JobProducer{
		budget:  budget,
		jobSize: jobSize,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Default work sizing: enough segments per snapshot to light a scene, in
// quotas small enough that a pool of tracers shares each snapshot.
const (
	DefaultSegmentBudget = 4096
	DefaultJobSize       = 256
)

// Reset replaces the current snapshot, refills the outstanding-work budget,
// and wakes every tracer waiting for work. Atomic with respect to
// concurrent TakeJob calls: no tracer ever observes a half-updated
// snapshot.
func (p *JobProducer) Reset(snapshot *scene.Scene) {
	p.mu.Lock()
	p.snapshot = snapshot
	p.remaining = p.budget
	p.mu.Unlock()
	p.cond.Broadcast()
}

// TakeJob returns the next bounded unit of work for the current snapshot,
// or false once the snapshot's budget is exhausted. Never blocks; tracers
// decide how to wait (see WaitForWork).
func (p *JobProducer) TakeJob() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snapshot == nil || p.remaining <= 0 {
		return Job{}, false
	}

	quota := p.jobSize
	if quota > p.remaining {
		quota = p.remaining
	}
	p.remaining -= quota

	return Job{Scene: p.snapshot, SegmentsToProduce: quota}, true
}

// WaitForWork blocks the calling tracer until work may be available or stop
// is closed. Returns immediately if work is already available. A return is
// a hint, not a guarantee of work: callers re-check their stop signal and
// call TakeJob again.
//
// The stop check runs under the producer's mutex, and Wake broadcasts under
// the same mutex, so a shutdown wake cannot slip between the check and the
// wait.
func (p *JobProducer) WaitForWork(stop <-chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.snapshot == nil || p.remaining <= 0 {
		select {
		case <-stop:
			return
		default:
		}
		p.cond.Wait()
	}
}

// Wake releases every tracer blocked in WaitForWork without adding work.
// Used during shutdown so stopping workers can observe their stop signal.
func (p *JobProducer) Wake() {
	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Remaining returns the unassigned portion of the current snapshot's budget
func (p *JobProducer) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remaining
}
