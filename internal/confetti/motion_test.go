package confetti

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/confetti/pkg/config"
)

// scriptedSource replays a fixed sequence of draws and fails the test when
// the code under test asks for more than were scripted.
type scriptedSource struct {
	t      *testing.T
	values []float64
	next   int
}

func script(t *testing.T, values ...float64) *scriptedSource {
	return &scriptedSource{t: t, values: values}
}

func (s *scriptedSource) Float64() float64 {
	s.t.Helper()
	if s.next >= len(s.values) {
		s.t.Fatalf("random source exhausted after %d draws", len(s.values))
	}
	v := s.values[s.next]
	s.next++
	return v
}

func (s *scriptedSource) remaining() int { return len(s.values) - s.next }

func TestComputeMotionParameters_CrazyCircle(t *testing.T) {
	cfg := config.Defaults()
	src := script(t,
		0.5,  // rotation speed
		0.0,  // axis index -> (1,1,0)
		0.5,  // duration chaos -> 500ms
		0.05, // crazy
		0.7,  // circle coin flip
		0.5,  // x1 jitter
		0.4,  // y1
		0.5,  // y2 magnitude
		0.9,  // y2 sign
	)

	m := ComputeMotionParameters(Particle{Color: "#FFC700", Degree: 0}, cfg, src)
	assert.Zero(t, src.remaining())

	assert.Equal(t, "#FFC700", m.Color)
	assert.InDelta(t, 0, m.LandingPoint, 1e-9)
	assert.Equal(t, 500*time.Millisecond, m.RotationDuration)
	assert.Equal(t, Axis{1, 1, 0}, m.Axis)
	assert.Equal(t, 3000*time.Millisecond, m.ChaosDuration)
	assert.True(t, m.Crazy)
	assert.True(t, m.Circle)

	assert.Equal(t, 0.15, m.X1)
	assert.Equal(t, -0.15, m.X2)
	assert.Equal(t, 0.15, m.X3)
	assert.Equal(t, 0.0, m.X4)

	assert.Equal(t, 0.2, m.Y1)
	assert.Equal(t, 0.25, m.Y2)
	assert.Equal(t, 0.5, m.Y3)
	assert.Equal(t, 0.0, m.Y4)

	assert.Equal(t, 12.0, m.Width)
	assert.Equal(t, 12.0, m.Height)
	assert.Equal(t, "50%", m.BorderRadius())
}

func TestComputeMotionParameters_ForcedRectangle(t *testing.T) {
	cfg := config.Options{ParticlesShape: config.Shape(config.ShapeRectangles)}.Resolve()
	src := script(t,
		0.0,  // rotation speed
		0.99, // axis index -> z
		0.0,  // duration chaos
		0.5,  // not crazy
		0.0,  // y1
		0.2,  // y2 magnitude
		0.3,  // y2 sign -> negative
		0.99, // width jitter -> 4
		0.5,  // height jitter -> 1
	)

	m := ComputeMotionParameters(Particle{Degree: 90}, cfg, src)
	assert.Zero(t, src.remaining())

	assert.InDelta(t, -800, m.LandingPoint, 1e-9)
	assert.Equal(t, 200*time.Millisecond, m.RotationDuration)
	assert.Equal(t, Axis{0, 0, 1}, m.Axis)
	assert.Equal(t, 3500*time.Millisecond, m.ChaosDuration)
	assert.False(t, m.Crazy)
	assert.False(t, m.Circle)

	assert.Zero(t, m.X1)
	assert.Zero(t, m.X2)
	assert.Zero(t, m.X3)
	assert.Equal(t, 1.0, m.X4)

	assert.Equal(t, 0.0, m.Y1)
	assert.Equal(t, -0.1, m.Y2)
	assert.Equal(t, 0.0, m.Y4)

	assert.Equal(t, 10.0, m.Width)
	assert.Equal(t, 13.0, m.Height)
	assert.Equal(t, "0", m.BorderRadius())
}

// z 轴旋转的粒子在 mix 模式下不会抛硬币，也不会成为圆形
func TestComputeMotionParameters_ZAxisSkipsCircleFlip(t *testing.T) {
	cfg := config.Defaults()
	src := script(t,
		0.1,  // rotation speed
		0.99, // z axis
		0.1,  // chaos
		0.9,  // not crazy
		0.3,  // y1
		0.1,  // y2 magnitude
		0.9,  // y2 sign
		0.0,  // width jitter
		0.0,  // height jitter
	)

	m := ComputeMotionParameters(Particle{Degree: 180}, cfg, src)
	assert.Zero(t, src.remaining())
	assert.False(t, m.Circle)
	assert.Equal(t, 6.0, m.Width)
	assert.Equal(t, 12.0, m.Height)
	assert.Equal(t, 0.15, m.Y1)
	assert.Equal(t, 0.05, m.Y2)
	assert.Equal(t, 0.5, m.Y4, "a particle launched straight down falls hardest")
}

func TestComputeMotionParameters_ForcedCircleDrawsNoCoin(t *testing.T) {
	cfg := config.Options{ParticlesShape: config.Shape(config.ShapeCircles)}.Resolve()
	src := script(t, 0.2, 0.99, 0.2, 0.5, 0.1, 0.1, 0.1)

	m := ComputeMotionParameters(Particle{Degree: 45}, cfg, src)
	assert.Zero(t, src.remaining())
	assert.True(t, m.Circle, "circles mode wins even on the z axis")
	assert.Equal(t, cfg.ParticleSize, m.Width)
	assert.Equal(t, cfg.ParticleSize, m.Height)
}

func TestLandingPointSymmetry(t *testing.T) {
	cfg := config.Options{StageWidth: config.Float(1000)}.Resolve()
	src := NewSeededSource(7)

	tests := []struct {
		degree float64
		want   float64
	}{
		{0, 0},
		{180, 0},
		{90, -500},
		{270, 500},
		{45, -250},
		{315, 250},
	}
	for _, tt := range tests {
		m := ComputeMotionParameters(Particle{Degree: tt.degree}, cfg, src)
		assert.InDelta(t, tt.want, m.LandingPoint, 1e-9, "degree %v", tt.degree)
	}
}

func TestMotionParameterBounds(t *testing.T) {
	configs := []config.Config{
		config.Defaults(),
		config.Options{Force: config.Float(1), ParticleCount: config.Float(97)}.Resolve(),
		config.Options{Force: config.Float(0), Duration: config.Float(800)}.Resolve(),
		config.Options{Force: config.Float(0.25), ParticleSize: config.Float(30)}.Resolve(),
	}

	src := NewSeededSource(42)
	for _, cfg := range configs {
		particles := CreateParticles(cfg.ParticleCount, cfg.Colors)
		all := ComputeAll(particles, cfg, src)
		require.Len(t, all, cfg.ParticleCount)

		for i, m := range all {
			assert.GreaterOrEqual(t, m.X4, 0.0, "x4 #%d", i)
			assert.LessOrEqual(t, m.X4, 1.0, "x4 #%d", i)
			assert.GreaterOrEqual(t, m.Y4, 0.0, "y4 #%d", i)
			assert.LessOrEqual(t, m.Y4, cfg.Force, "y4 #%d", i)
			assert.GreaterOrEqual(t, m.Y1, 0.0, "y1 #%d", i)
			assert.LessOrEqual(t, m.Y1, 0.5, "y1 #%d", i)
			assert.LessOrEqual(t, abs(m.Y2), cfg.Force, "y2 #%d", i)
			assert.Equal(t, 0.5, m.Y3)

			if m.Crazy {
				assert.GreaterOrEqual(t, m.X1, 0.0)
				assert.LessOrEqual(t, m.X1, 0.3)
			} else {
				assert.Zero(t, m.X1, "x1 #%d", i)
				assert.Zero(t, m.X2, "x2 #%d", i)
				assert.Zero(t, m.X3, "x3 #%d", i)
			}
			assert.Equal(t, -m.X1, m.X2)
			assert.Equal(t, m.X1, m.X3)

			assert.GreaterOrEqual(t, m.RotationDuration, RotationSpeedMin)
			assert.LessOrEqual(t, m.RotationDuration, RotationSpeedMax)
			assert.LessOrEqual(t, m.ChaosDuration, cfg.Duration)
			assert.GreaterOrEqual(t, m.ChaosDuration, cfg.Duration-time.Second)
			assert.Contains(t, RotationAxes(), m.Axis)

			if m.Circle {
				assert.False(t, m.Axis.IsZ(), "circles never spin on the z axis in mix mode")
			}
		}
	}
}

func TestShapeForcing(t *testing.T) {
	src := NewSeededSource(3)

	circles := config.Options{ParticlesShape: config.Shape(config.ShapeCircles)}.Resolve()
	for _, m := range ComputeAll(CreateParticles(circles.ParticleCount, circles.Colors), circles, src) {
		assert.True(t, m.Circle)
		assert.Equal(t, circles.ParticleSize, m.Width)
		assert.Equal(t, circles.ParticleSize, m.Height)
		assert.Equal(t, "50%", m.BorderRadius())
	}

	rects := config.Options{ParticlesShape: config.Shape(config.ShapeRectangles)}.Resolve()
	for _, m := range ComputeAll(CreateParticles(rects.ParticleCount, rects.Colors), rects, src) {
		assert.False(t, m.Circle)
		assert.Equal(t, "0", m.BorderRadius())
		assert.GreaterOrEqual(t, m.Width, rects.ParticleSize/2)
		assert.LessOrEqual(t, m.Width, rects.ParticleSize/2+4)
		assert.GreaterOrEqual(t, m.Height, rects.ParticleSize)
		assert.LessOrEqual(t, m.Height, rects.ParticleSize+2)
	}
}

func TestMixModeProducesBothShapes(t *testing.T) {
	cfg := config.Defaults()
	all := ComputeAll(CreateParticles(cfg.ParticleCount, cfg.Colors), cfg, NewSeededSource(11))

	var circles int
	for _, m := range all {
		if m.Circle {
			circles++
		}
	}
	assert.Greater(t, circles, 0)
	assert.Less(t, circles, len(all))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.01, roundTo(1.005, 2))
	assert.Equal(t, 0.1235, roundTo(0.12345, 4))
	assert.Equal(t, -0.1, roundTo(-0.1, 4))
	assert.Equal(t, 0.0, roundTo(0, 2))
}

func TestRandomIntCoversInclusiveRange(t *testing.T) {
	assert.Equal(t, 0, randomInt(script(t, 0), 4))
	assert.Equal(t, 4, randomInt(script(t, 0.9999), 4))
	assert.Equal(t, 2, randomInt(script(t, 0.5), 4))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
