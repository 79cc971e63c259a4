package surface

import (
	"image"
	"math"
	"sync"

	"github.com/df07/go-light-simulator/pkg/core"
)

// CPUSurface rasterizes committed light segments into an RGBA image on the
// CPU. Segments accumulate additively, so paths crossing the same pixels
// brighten it toward white.
type CPUSurface struct {
	width, height      int
	worldMin, worldMax core.Vec2

	mu       sync.Mutex
	segments []core.LightSegment
}

// NewCPUSurface creates a CPU surface mapping the world-space rectangle
// [worldMin, worldMax] onto a width x height pixel grid.
func NewCPUSurface(width, height int, worldMin, worldMax core.Vec2) *CPUSurface {
	return &CPUSurface{
		width:    width,
		height:   height,
		worldMin: worldMin,
		worldMax: worldMax,
	}
}

// OpenSession implements Surface
func (s *CPUSurface) OpenSession() Session {
	return &cpuSession{surface: s}
}

// SegmentCount returns the number of committed segments
func (s *CPUSurface) SegmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segments)
}

// Segments returns a copy of the committed segments. Because commits are
// atomic, the copy is always a union of fully committed sessions.
func (s *CPUSurface) Segments() []core.LightSegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	segments := make([]core.LightSegment, len(s.segments))
	copy(segments, s.segments)
	return segments
}

// Clear discards all committed segments, typically between frames
func (s *CPUSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = s.segments[:0]
}

// Image rasterizes the committed segments into a new RGBA image
func (s *CPUSurface) Image() *image.RGBA {
	segments := s.Segments()

	// Accumulate into a float buffer so overlapping segments saturate
	// smoothly instead of wrapping.
	accum := make([]float64, s.width*s.height*3)
	for _, segment := range segments {
		s.plotSegment(accum, segment)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 0; i < s.width*s.height; i++ {
		img.Pix[i*4] = clampToByte(accum[i*3])
		img.Pix[i*4+1] = clampToByte(accum[i*3+1])
		img.Pix[i*4+2] = clampToByte(accum[i*3+2])
		img.Pix[i*4+3] = 255
	}
	return img
}

// plotSegment walks the segment in pixel space with a DDA and adds its color
// to every pixel it crosses.
func (s *CPUSurface) plotSegment(accum []float64, segment core.LightSegment) {
	x0, y0 := s.toPixel(segment.Start)
	x1, y1 := s.toPixel(segment.End)

	// Escaped rays extend far past the viewport; clip first so the DDA
	// never steps through offscreen space.
	x0, y0, x1, y1, visible := s.clipToViewport(x0, y0, x1, y1)
	if !visible {
		return
	}

	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	dx := (x1 - x0) / float64(steps)
	dy := (y1 - y0) / float64(steps)

	r := float64(segment.Color.R)
	g := float64(segment.Color.G)
	b := float64(segment.Color.B)

	x, y := x0, y0
	for i := 0; i <= steps; i++ {
		px, py := int(x), int(y)
		if px >= 0 && px < s.width && py >= 0 && py < s.height {
			idx := (py*s.width + px) * 3
			accum[idx] += r
			accum[idx+1] += g
			accum[idx+2] += b
		}
		x += dx
		y += dy
	}
}

// clipToViewport trims a pixel-space segment to the image rectangle using
// Liang-Barsky. Reports false when the segment lies entirely offscreen.
func (s *CPUSurface) clipToViewport(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	dx := x1 - x0
	dy := y1 - y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, float64(s.width) - x0},
		{-dy, y0},
		{dy, float64(s.height) - y0},
	}
	for _, edge := range edges {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// toPixel maps a world-space point to (possibly out-of-bounds) pixel space
func (s *CPUSurface) toPixel(p core.Vec2) (float64, float64) {
	spanX := s.worldMax.X - s.worldMin.X
	spanY := s.worldMax.Y - s.worldMin.Y
	px := (p.X - s.worldMin.X) / spanX * float64(s.width)
	// Pixel rows grow downward while world Y grows upward
	py := (s.worldMax.Y - p.Y) / spanY * float64(s.height)
	return px, py
}

func clampToByte(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// cpuSession buffers draws privately and appends them to the surface's
// committed segments in one locked step.
type cpuSession struct {
	surface   *CPUSurface
	buffer    []core.LightSegment
	committed bool
}

// Draw implements Session
func (cs *cpuSession) Draw(segment core.LightSegment) {
	cs.buffer = append(cs.buffer, segment)
}

// Commit implements Session
func (cs *cpuSession) Commit() {
	if cs.committed {
		panic("surface: session committed twice")
	}
	cs.committed = true

	cs.surface.mu.Lock()
	cs.surface.segments = append(cs.surface.segments, cs.buffer...)
	cs.surface.mu.Unlock()
	cs.buffer = nil
}
