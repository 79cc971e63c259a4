package scene

import (
	"fmt"

	"github.com/df07/go-light-simulator/pkg/core"
)

// Material describes how a collider interacts with incoming light
type Material struct {
	// Reflects acts as a per-channel percentage of each color to reflect
	Reflects core.Color

	// Diffusion in [0, 1] controls how far reflected rays deviate from the
	// mirror angle. 0 is a perfect mirror, 1 scatters across the hemisphere.
	Diffusion float64

	// Opacity in [0, 1] is the probability that a ray is stopped at the
	// boundary instead of transmitted. 0 is fully transparent, 1 is opaque.
	Opacity float64

	// IndexOfRefraction bends transmitted rays per Snell's law. Vacuum is 1.
	IndexOfRefraction float64
}

// NewMirror creates a fully opaque material reflecting the given channels
func NewMirror(reflects core.Color) Material {
	return Material{
		Reflects:          reflects,
		Diffusion:         0,
		Opacity:           1,
		IndexOfRefraction: 1,
	}
}

// NewGlass creates a transparent material with the given refractive index
func NewGlass(indexOfRefraction float64) Material {
	return Material{
		Reflects:          core.NewColor(255, 255, 255),
		Diffusion:         0,
		Opacity:           0,
		IndexOfRefraction: indexOfRefraction,
	}
}

// Validate rejects parameters outside their documented ranges
func (m Material) Validate() error {
	if m.Diffusion < 0 || m.Diffusion > 1 {
		return fmt.Errorf("material diffusion must be in [0,1], got %g", m.Diffusion)
	}
	if m.Opacity < 0 || m.Opacity > 1 {
		return fmt.Errorf("material opacity must be in [0,1], got %g", m.Opacity)
	}
	if m.IndexOfRefraction < 1 {
		return fmt.Errorf("material index of refraction must be >= 1, got %g", m.IndexOfRefraction)
	}
	return nil
}
