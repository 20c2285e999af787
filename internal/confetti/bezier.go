package confetti

import "math"

// CubicBezier is a CSS cubic-bezier timing function with fixed end points
// (0,0) and (1,1) and control points (X1,Y1), (X2,Y2).
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// ExplosionCurve returns the timing function of the horizontal arc.
func (m MotionParameters) ExplosionCurve() CubicBezier {
	return CubicBezier{X1: m.X1, Y1: m.X2, X2: m.X3, Y2: m.X4}
}

// FallCurve returns the timing function of the vertical fall.
func (m MotionParameters) FallCurve() CubicBezier {
	return CubicBezier{X1: m.Y1, Y1: m.Y2, X2: m.Y3, Y2: m.Y4}
}

const (
	newtonIterations = 8
	bisectIterations = 32
	solveEpsilon     = 1e-7
)

// Eval returns the eased progress for linear time progress t in [0, 1].
// t outside the range is clamped.
func (b CubicBezier) Eval(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if b.X1 == b.Y1 && b.X2 == b.Y2 {
		return t
	}
	return sampleCurve(b.Y1, b.Y2, b.solveX(t))
}

// solveX finds the curve parameter s whose x coordinate equals x.
func (b CubicBezier) solveX(x float64) float64 {
	// Newton-Raphson first, it converges in a few steps for typical curves.
	s := x
	for i := 0; i < newtonIterations; i++ {
		dx := sampleCurve(b.X1, b.X2, s) - x
		if math.Abs(dx) < solveEpsilon {
			return s
		}
		d := sampleDerivative(b.X1, b.X2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= dx / d
	}

	// Fall back to bisection, x(s) is monotonic for control x in [0, 1].
	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bisectIterations; i++ {
		v := sampleCurve(b.X1, b.X2, s)
		if math.Abs(v-x) < solveEpsilon {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// sampleCurve evaluates one coordinate of the bezier with end points 0 and 1.
func sampleCurve(p1, p2, s float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return ((a*s+b)*s + c) * s
}

func sampleDerivative(p1, p2, s float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return (3*a*s+2*b)*s + c
}
