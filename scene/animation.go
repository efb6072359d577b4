package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"glprimer/math"
)

// Composition selects how the model-view matrix is assembled.
type Composition string

const (
	// ComposeOrbit places the object with orbit · tilt · translate · spin · scale:
	// the object spins about its own X axis, is pushed CameraDistance in
	// front of the camera, tilted towards the viewer and carried around the
	// Y axis.
	ComposeOrbit Composition = "orbit"
	// ComposeSpinOnly uses the spin rotation alone as the model-view matrix
	// and leaves the object at the origin.
	ComposeSpinOnly Composition = "spin"
)

// Animation holds the static parameters of the animated transform. Angles
// are in radians and speeds in radians per second.
type Animation struct {
	OrbitSpeed     float32     `yaml:"orbit_speed"`
	SpinSpeed      float32     `yaml:"spin_speed"`
	Scale          float32     `yaml:"scale"`
	Tilt           float32     `yaml:"tilt"`
	CameraDistance float32     `yaml:"camera_distance"`
	FieldOfView    float32     `yaml:"fov"`
	Aspect         float32     `yaml:"aspect"` // 0 follows the viewport
	Near           float32     `yaml:"near"`
	Far            float32     `yaml:"far"`
	Composition    Composition `yaml:"composition"`
}

func DefaultAnimation() Animation {
	return Animation{
		OrbitSpeed:     math32.Pi / 8,
		SpinSpeed:      math32.Pi / 2,
		Scale:          1,
		Tilt:           math32.Pi / 10,
		CameraDistance: 3,
		FieldOfView:    math32.Pi / 2,
		Aspect:         1,
		Near:           0.1,
		Far:            100,
		Composition:    ComposeOrbit,
	}
}

// Validate rejects an unknown composition. Degenerate numeric parameters
// are accepted and simply produce a degenerate image.
func (a Animation) Validate() error {
	switch a.Composition {
	case ComposeOrbit, ComposeSpinOnly:
		return nil
	default:
		return fmt.Errorf("unknown composition %q", a.Composition)
	}
}

// Frame is the transform state for one rendered frame.
type Frame struct {
	Time float32
	R    math.Mat4 // object rotation only, for normals
	P    math.Mat4
	MV   math.Mat4
}

// Frame computes the matrices for time t, in seconds since the loop
// started. viewportAspect is used when the animation has no fixed aspect.
// The result depends only on its inputs.
func (a Animation) Frame(t, viewportAspect float32) Frame {
	aspect := a.Aspect
	if aspect <= 0 {
		aspect = viewportAspect
	}

	spin := math.Mat4RotationX(a.SpinSpeed * t)

	f := Frame{
		Time: t,
		R:    spin,
		P:    math.Mat4Perspective(a.FieldOfView, aspect, a.Near, a.Far),
	}

	switch a.Composition {
	case ComposeSpinOnly:
		f.MV = spin
	default:
		f.MV = a.Placement(a.OrbitSpeed * t).Mul(spin).Mul(math.Mat4Scale(a.Scale))
	}
	return f
}

// Placement returns orbit · tilt · translate for the given orbit angle:
// everything in the model-view matrix outside the object's own spin.
func (a Animation) Placement(orbitAngle float32) math.Mat4 {
	orbit := math.Mat4RotationY(orbitAngle)
	tilt := math.Mat4RotationX(a.Tilt)
	translate := math.Mat4Translation(0, 0, -a.CameraDistance)
	return orbit.Mul(tilt).Mul(translate)
}
