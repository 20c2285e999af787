package confetti

import (
	"math"
	"time"
)

// Pose is the state of one particle at a point in time, relative to the
// burst origin. Screen y grows downwards.
type Pose struct {
	X, Y          float64 // top-left corner of the particle box, px
	Width, Height float64
	Circle        bool
	Axis          Axis
	Angle         float64 // current spin in degrees, [0, 360)
	Progress      float64 // linear flight progress in [0, 1]
	Color         string
}

// Point is a projected 2D vertex.
type Point struct {
	X, Y float64
}

// Sample 计算粒子在 elapsed 时刻的姿态
//
// 参数：
//   - m: 粒子的运动参数
//   - stageHeight: 舞台高度，即粒子下落的距离
//   - elapsed: 距离挂载的时间
//
// 返回：
//   - Pose: 位置、尺寸、旋转角度和进度
//
// 横向弧线和下落都在 ChaosDuration 内完成，之后保持终点值；旋转无限循环。
// ChaosDuration 不为正时视为飞行已经结束。
func Sample(m MotionParameters, stageHeight float64, elapsed time.Duration) Pose {
	progress := 1.0
	if m.ChaosDuration > 0 {
		progress = clamp01(float64(elapsed) / float64(m.ChaosDuration))
	}

	angle := 0.0
	if m.RotationDuration > 0 && elapsed > 0 {
		turns := float64(elapsed) / float64(m.RotationDuration)
		angle = (turns - math.Floor(turns)) * 360
	}

	return Pose{
		X:        m.LandingPoint * m.ExplosionCurve().Eval(progress),
		Y:        stageHeight * m.FallCurve().Eval(progress),
		Width:    m.Width,
		Height:   m.Height,
		Circle:   m.Circle,
		Axis:     m.Axis,
		Angle:    angle,
		Progress: progress,
		Color:    m.Color,
	}
}

// Center returns the center of the particle box.
func (p Pose) Center() Point {
	return Point{X: p.X + p.Width/2, Y: p.Y + p.Height/2}
}

// Outline returns the particle silhouette after rotating it around its axis
// and projecting it orthographically onto the screen. Rectangles yield four
// corners; circles yield an ellipse with the given number of segments.
func (p Pose) Outline(segments int) []Point {
	hw, hh := p.Width/2, p.Height/2

	var local [][2]float64
	if p.Circle {
		if segments < 3 {
			segments = 3
		}
		local = make([][2]float64, segments)
		for i := range local {
			a := 2 * math.Pi * float64(i) / float64(segments)
			local[i] = [2]float64{hw * math.Cos(a), hh * math.Sin(a)}
		}
	} else {
		local = [][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	}

	rot := newRotation(p.Axis, p.Angle)
	c := p.Center()
	out := make([]Point, len(local))
	for i, v := range local {
		x, y := rot.apply(v[0], v[1])
		out[i] = Point{X: c.X + x, Y: c.Y + y}
	}
	return out
}

// ProjectedArea returns the fraction of the face still visible after the
// spin, 1 when facing the viewer and 0 when seen edge-on.
func (p Pose) ProjectedArea() float64 {
	rot := newRotation(p.Axis, p.Angle)
	ax, ay := rot.apply(1, 0)
	bx, by := rot.apply(0, 1)
	return math.Abs(ax*by - ay*bx)
}

// rotation is a 3x3 rotation matrix; only the columns acting on the z=0
// plane and the x/y rows are kept since the result is projected anyway.
type rotation struct {
	m00, m01 float64
	m10, m11 float64
}

// newRotation builds the rotate3d(axis, degrees) matrix using Rodrigues' formula.
func newRotation(axis Axis, degrees float64) rotation {
	x, y, z := float64(axis[0]), float64(axis[1]), float64(axis[2])
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return rotation{m00: 1, m11: 1}
	}
	x, y, z = x/n, y/n, z/n

	theta := degrees * math.Pi / 180
	s, c := math.Sin(theta), math.Cos(theta)
	t := 1 - c

	return rotation{
		m00: t*x*x + c,
		m01: t*x*y - s*z,
		m10: t*x*y + s*z,
		m11: t*y*y + c,
	}
}

func (r rotation) apply(x, y float64) (float64, float64) {
	return r.m00*x + r.m01*y, r.m10*x + r.m11*y
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
