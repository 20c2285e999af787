// Package confetti generates the particles of a confetti explosion and
// derives, once per particle, the motion parameters an animation layer
// needs to play it back.
//
// The motion of every particle is described by three layered animations:
//   - a horizontal arc towards a landing point (cubic-bezier X1..X4)
//   - a vertical fall towards the floor (cubic-bezier Y1..Y4)
//   - a continuous spin around one of six fixed rotation axes
//
// All randomness is drawn when the parameters are computed. The result is a
// plain value and must be cached by the owner; recomputing it reshuffles a
// particle that is already in flight.
package confetti

import "time"

// Particle is a single confetti piece before any motion is derived.
type Particle struct {
	Color  string  // CSS color string, cycled from the configured palette
	Degree float64 // launch direction in [0, 360), 0 being straight up
}

// Axis is a rotate3d axis made of 0/1 flags.
type Axis [3]int

// zAxis 纯 Z 轴旋转：对圆形没有视觉效果，圆形不会选用它
var zAxis = Axis{0, 0, 1}

// rotationAxes lists the selectable axes. Dual-axis spins look a bit more
// natural, single-axis ones a bit dumber.
var rotationAxes = [...]Axis{
	{1, 1, 0},
	{1, 0, 1},
	{0, 1, 1},
	{1, 0, 0},
	{0, 1, 0},
	zAxis,
}

// RotationAxes returns the six axes a particle may spin around.
func RotationAxes() []Axis {
	return append([]Axis(nil), rotationAxes[:]...)
}

// IsZ reports whether a is the pure z-axis.
func (a Axis) IsZ() bool { return a == zAxis }

// MotionParameters is the per-particle animation record.
//
// Bezier coefficients are the control points of two CSS-style timing
// functions: cubic-bezier(X1, X2, X3, X4) for the horizontal arc and
// cubic-bezier(Y1, Y2, Y3, Y4) for the fall.
type MotionParameters struct {
	Color string

	LandingPoint  float64       // px, horizontal offset where the particle ends up
	ChaosDuration time.Duration // total animation time for this particle

	X1, X2, X3, X4 float64
	Y1, Y2, Y3, Y4 float64

	Width  float64 // px
	Height float64 // px
	Circle bool

	Axis             Axis
	RotationDuration time.Duration // one full spin

	Crazy bool // picked for x-axis jitter
}

// BorderRadius returns the CSS border radius for the particle shape.
func (m MotionParameters) BorderRadius() string {
	if m.Circle {
		return "50%"
	}
	return "0"
}
