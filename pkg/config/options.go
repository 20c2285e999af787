package config

import (
	"math"
	"time"
)

// ParticleShape 粒子形状模式
type ParticleShape string

const (
	ShapeMix        ParticleShape = "mix"        // 圆形与矩形混合
	ShapeCircles    ParticleShape = "circles"    // 全部为圆形
	ShapeRectangles ParticleShape = "rectangles" // 全部为矩形
)

// Default values applied when the caller leaves a field unset.
const (
	DefaultParticleCount = 150
	DefaultDuration      = 3500 // ms
	DefaultParticleSize  = 12   // px, max height for rectangles, diameter for circles
	DefaultForce         = 0.5  // 0-1, roughly the vertical force of the initial explosion
	DefaultStageHeight   = 800  // px the particles fall from the explosion point
	DefaultStageWidth    = 1600 // px of horizontal spread
)

// DefaultColors 默认的四种彩纸颜色
var DefaultColors = []string{"#FFC700", "#FF0000", "#2E3191", "#41BBC7"}

// Options 调用方提供的爆炸参数
//
// 所有字段都是可选的：nil 表示使用默认值。
// 数值字段使用 float64，以便校验器区分"整数覆盖"和"小数覆盖"。
type Options struct {
	ParticleCount          *float64       `yaml:"particleCount,omitempty"`
	Duration               *float64       `yaml:"duration,omitempty"`
	Colors                 []string       `yaml:"colors,omitempty"`
	ParticleSize           *float64       `yaml:"particleSize,omitempty"`
	Force                  *float64       `yaml:"force,omitempty"`
	StageHeight            *float64       `yaml:"stageHeight,omitempty"`
	StageWidth             *float64       `yaml:"stageWidth,omitempty"`
	ParticlesShape         *ParticleShape `yaml:"particlesShape,omitempty"`
	ShouldDestroyAfterDone *bool          `yaml:"shouldDestroyAfterDone,omitempty"`

	// colorsMalformed is set by the decoders when the source held a
	// colors value that was not a list of strings.
	colorsMalformed bool
}

// Config is the immutable per-burst configuration produced by Resolve.
type Config struct {
	ParticleCount          int
	Duration               time.Duration
	Colors                 []string
	ParticleSize           float64
	Force                  float64
	StageHeight            float64
	StageWidth             float64
	ParticlesShape         ParticleShape
	ShouldDestroyAfterDone bool
}

// Float returns a pointer to v, for building Options literals.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Shape returns a pointer to s.
func Shape(s ParticleShape) *ParticleShape { return &s }

// Defaults 返回全部使用默认值的配置
func Defaults() Config {
	return Options{}.Resolve()
}

// Resolve 把参数覆盖到默认值上，得到不可变的 Config
//
// 粒子数量向零截断，负数和 NaN 视为 0 个粒子，超过 MaxInt32 的按 MaxInt32 处理。
// Resolve 本身不做校验，调用方应先调用 Validate。
func (o Options) Resolve() Config {
	cfg := Config{
		ParticleCount:          DefaultParticleCount,
		Duration:               millis(DefaultDuration),
		Colors:                 append([]string(nil), DefaultColors...),
		ParticleSize:           DefaultParticleSize,
		Force:                  DefaultForce,
		StageHeight:            DefaultStageHeight,
		StageWidth:             DefaultStageWidth,
		ParticlesShape:         ShapeMix,
		ShouldDestroyAfterDone: true,
	}

	if o.ParticleCount != nil {
		cfg.ParticleCount = truncateCount(*o.ParticleCount)
	}
	if o.Duration != nil {
		cfg.Duration = millis(*o.Duration)
	}
	if o.Colors != nil {
		cfg.Colors = append([]string(nil), o.Colors...)
	}
	if o.ParticleSize != nil {
		cfg.ParticleSize = *o.ParticleSize
	}
	if o.Force != nil {
		cfg.Force = *o.Force
	}
	if o.StageHeight != nil {
		cfg.StageHeight = *o.StageHeight
	}
	if o.StageWidth != nil {
		cfg.StageWidth = *o.StageWidth
	}
	if o.ParticlesShape != nil {
		cfg.ParticlesShape = *o.ParticlesShape
	}
	if o.ShouldDestroyAfterDone != nil {
		cfg.ShouldDestroyAfterDone = *o.ShouldDestroyAfterDone
	}
	return cfg
}

// Merge overlays every field set in over onto o and returns the result.
// Used when a preset is combined with command-line overrides.
func (o Options) Merge(over Options) Options {
	out := o
	if over.ParticleCount != nil {
		out.ParticleCount = over.ParticleCount
	}
	if over.Duration != nil {
		out.Duration = over.Duration
	}
	if over.Colors != nil || over.colorsMalformed {
		out.Colors = over.Colors
		out.colorsMalformed = over.colorsMalformed
	}
	if over.ParticleSize != nil {
		out.ParticleSize = over.ParticleSize
	}
	if over.Force != nil {
		out.Force = over.Force
	}
	if over.StageHeight != nil {
		out.StageHeight = over.StageHeight
	}
	if over.StageWidth != nil {
		out.StageWidth = over.StageWidth
	}
	if over.ParticlesShape != nil {
		out.ParticlesShape = over.ParticlesShape
	}
	if over.ShouldDestroyAfterDone != nil {
		out.ShouldDestroyAfterDone = over.ShouldDestroyAfterDone
	}
	return out
}

// Clone 返回参数的深拷贝
//
// 指针字段和 Colors 切片都会重新分配，修改返回值不会影响 o。
func (o Options) Clone() Options {
	out := o
	out.ParticleCount = cloneFloat(o.ParticleCount)
	out.Duration = cloneFloat(o.Duration)
	out.ParticleSize = cloneFloat(o.ParticleSize)
	out.Force = cloneFloat(o.Force)
	out.StageHeight = cloneFloat(o.StageHeight)
	out.StageWidth = cloneFloat(o.StageWidth)
	if o.Colors != nil {
		out.Colors = append([]string{}, o.Colors...)
	}
	if o.ParticlesShape != nil {
		out.ParticlesShape = Shape(*o.ParticlesShape)
	}
	if o.ShouldDestroyAfterDone != nil {
		out.ShouldDestroyAfterDone = Bool(*o.ShouldDestroyAfterDone)
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}

// DurationMillis 返回以毫秒表示的持续时间
func (c Config) DurationMillis() float64 {
	return float64(c.Duration) / float64(time.Millisecond)
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func truncateCount(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
