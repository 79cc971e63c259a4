package core

// LightSegment is one straight light-path fragment produced by tracing a
// single ray bounce. Segments are immutable values: produced by a tracer,
// handed to a surface session, and never modified after creation.
type LightSegment struct {
	Start Vec2
	End   Vec2
	Color Color
}

// NewLightSegment creates a new light segment
func NewLightSegment(start, end Vec2, color Color) LightSegment {
	return LightSegment{Start: start, End: end, Color: color}
}

// Length returns the length of the segment
func (s LightSegment) Length() float64 {
	return s.End.Subtract(s.Start).Length()
}
