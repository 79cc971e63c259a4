// Package display provides a windowed drawing backend on top of ebiten.
// It implements the same surface contract as the CPU backend, so the
// simulator's tracers can commit into a live window without knowing the
// difference.
package display

import (
	"sync"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/surface"
)

// Surface keeps the most recently committed light segments for the render
// loop to stroke each frame. Safe for concurrent sessions from any tracer
// goroutine.
type Surface struct {
	mu       sync.Mutex
	segments []core.LightSegment
}

// NewSurface creates an empty display surface
func NewSurface() *Surface {
	return &Surface{}
}

// OpenSession implements surface.Surface
func (s *Surface) OpenSession() surface.Session {
	return &session{surface: s}
}

// Snapshot returns a copy of the visible segments for drawing
func (s *Surface) Snapshot() []core.LightSegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	segments := make([]core.LightSegment, len(s.segments))
	copy(segments, s.segments)
	return segments
}

// Clear discards the visible segments at the start of a new frame
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = s.segments[:0]
}

type session struct {
	surface   *Surface
	buffer    []core.LightSegment
	committed bool
}

func (se *session) Draw(segment core.LightSegment) {
	se.buffer = append(se.buffer, segment)
}

func (se *session) Commit() {
	if se.committed {
		panic("display: session committed twice")
	}
	se.committed = true

	se.surface.mu.Lock()
	se.surface.segments = append(se.surface.segments, se.buffer...)
	se.surface.mu.Unlock()
	se.buffer = nil
}
