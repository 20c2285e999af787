package confetti

import (
	"math"
	"time"

	"github.com/decker502/confetti/pkg/config"
)

// Tuning constants of the explosion.
const (
	RotationSpeedMin        = 200 * time.Millisecond // fastest full spin
	RotationSpeedMax        = 800 * time.Millisecond // slowest full spin
	CrazyParticlesFrequency = 0.1                    // share of particles with curvy, unpredictable paths
	CrazyParticleCraziness  = 0.3                    // how far crazy particles deviate
	BezierMedian            = 0.5                    // mid-point for smooth motion paths
	MaxDurationChaos        = 1000                   // ms shaved off at most per particle
)

// ComputeMotionParameters 计算单个粒子的运动参数
//
// 参数：
//   - p: 粒子（发射角度和颜色）
//   - cfg: 已解析的爆炸配置，使用其中的 Force、Duration、ParticleSize、
//     ParticlesShape 和 StageWidth
//   - src: 随机源，按固定顺序抽取
//
// 返回：
//   - MotionParameters: 该粒子的动画参数记录
//
// 每次调用都会消耗新的随机数，因此同一次爆炸中每个粒子只计算一次并缓存结果。
func ComputeMotionParameters(p Particle, cfg config.Config, src Source) MotionParameters {
	// 左右翻转后的角度距离：侧向发射(90/270)为 0 或 180，上下发射为 90
	reflected := math.Abs(rotateDegree(p.Degree, 90) - 180)

	m := MotionParameters{
		Color:        p.Color,
		LandingPoint: mapRange(reflected, 0, 180, -cfg.StageWidth/2, cfg.StageWidth/2),
	}

	spin := float64(RotationSpeedMax - RotationSpeedMin)
	m.RotationDuration = RotationSpeedMin + time.Duration(src.Float64()*spin)

	m.Axis = rotationAxes[randomInt(src, len(rotationAxes)-1)]

	chaos := randomInt(src, MaxDurationChaos)
	m.ChaosDuration = cfg.Duration - time.Duration(chaos)*time.Millisecond

	m.Crazy = src.Float64() < CrazyParticlesFrequency

	switch cfg.ParticlesShape {
	case config.ShapeRectangles:
		m.Circle = false
	case config.ShapeCircles:
		m.Circle = true
	default:
		m.Circle = !m.Axis.IsZ() && coinFlip(src)
	}

	// x 轴扰动：疯狂粒子先偏离目标再回归
	if m.Crazy {
		m.X1 = roundTo(src.Float64()*CrazyParticleCraziness, 2)
	}
	m.X2 = -m.X1
	m.X3 = m.X1
	// x 轴弧度：侧向发射的粒子弧线为 1，上下发射的为 0
	m.X4 = roundTo(math.Abs(mapRange(reflected, 0, 180, -1, 1)), 4)

	// 粒子到达爆炸曲线终点的快慢
	m.Y1 = roundTo(src.Float64()*BezierMedian, 4)
	// 进入自由落体前的上冲距离
	overshoot := src.Float64() * cfg.Force
	if !coinFlip(src) {
		overshoot = -overshoot
	}
	m.Y2 = roundTo(overshoot, 4)
	// 从爆炸过渡到自由落体的时机
	m.Y3 = BezierMedian
	// 自由落体的缓动程度：向下发射(接近 180 度)的粒子下落最快
	fall := mapRange(math.Abs(p.Degree-180), 0, 180, cfg.Force, -cfg.Force)
	m.Y4 = roundTo(math.Max(fall, 0), 4)

	if m.Circle {
		m.Width = cfg.ParticleSize
		m.Height = cfg.ParticleSize
	} else {
		m.Width = float64(randomInt(src, 4)) + cfg.ParticleSize/2
		m.Height = float64(randomInt(src, 2)) + cfg.ParticleSize
	}

	return m
}

// ComputeAll 按顺序计算所有粒子的运动参数，结果与 particles 下标一一对应
func ComputeAll(particles []Particle, cfg config.Config, src Source) []MotionParameters {
	out := make([]MotionParameters, len(particles))
	for i, p := range particles {
		out[i] = ComputeMotionParameters(p, cfg, src)
	}
	return out
}
