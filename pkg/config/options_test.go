package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 150, cfg.ParticleCount)
	assert.Equal(t, 3500*time.Millisecond, cfg.Duration)
	assert.Equal(t, []string{"#FFC700", "#FF0000", "#2E3191", "#41BBC7"}, cfg.Colors)
	assert.Equal(t, 12.0, cfg.ParticleSize)
	assert.Equal(t, 0.5, cfg.Force)
	assert.Equal(t, 800.0, cfg.StageHeight)
	assert.Equal(t, 1600.0, cfg.StageWidth)
	assert.Equal(t, ShapeMix, cfg.ParticlesShape)
	assert.True(t, cfg.ShouldDestroyAfterDone)
	assert.Equal(t, 3500.0, cfg.DurationMillis())
}

func TestResolve_OverridesDefaults(t *testing.T) {
	opts := Options{
		ParticleCount:          Float(20),
		Duration:               Float(1000),
		Colors:                 []string{"red"},
		ParticleSize:           Float(8),
		Force:                  Float(0.3),
		StageHeight:            Float(400),
		StageWidth:             Float(900),
		ParticlesShape:         Shape(ShapeCircles),
		ShouldDestroyAfterDone: Bool(false),
	}
	cfg := opts.Resolve()

	assert.Equal(t, 20, cfg.ParticleCount)
	assert.Equal(t, time.Second, cfg.Duration)
	assert.Equal(t, []string{"red"}, cfg.Colors)
	assert.Equal(t, 8.0, cfg.ParticleSize)
	assert.Equal(t, 0.3, cfg.Force)
	assert.Equal(t, 400.0, cfg.StageHeight)
	assert.Equal(t, 900.0, cfg.StageWidth)
	assert.Equal(t, ShapeCircles, cfg.ParticlesShape)
	assert.False(t, cfg.ShouldDestroyAfterDone)
}

func TestResolve_DoesNotAliasColors(t *testing.T) {
	colors := []string{"#000000"}
	cfg := Options{Colors: colors}.Resolve()
	colors[0] = "#FFFFFF"
	assert.Equal(t, "#000000", cfg.Colors[0])

	cfg = Defaults()
	cfg.Colors[0] = "changed"
	assert.Equal(t, "#FFC700", DefaultColors[0])
}

func TestResolve_ParticleCountTruncation(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1.9, 1},
		{0.5, 0},
		{-1.5, 0},
		{-3, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Options{ParticleCount: Float(tt.in)}.Resolve().ParticleCount, "count %v", tt.in)
	}
}

func TestMerge(t *testing.T) {
	base := Options{ParticleCount: Float(10), Colors: []string{"#111111"}}
	over := Options{ParticleCount: Float(30), Force: Float(0.9)}

	got := base.Merge(over)
	require.NotNil(t, got.ParticleCount)
	assert.Equal(t, 30.0, *got.ParticleCount)
	assert.Equal(t, 0.9, *got.Force)
	assert.Equal(t, []string{"#111111"}, got.Colors)

	malformed, err := ParseOptionsYAML([]byte("colors: red\n"))
	require.NoError(t, err)
	assert.False(t, Validate(base.Merge(malformed)))
}

func TestClone(t *testing.T) {
	orig := Options{
		ParticleCount:          Float(10),
		Colors:                 []string{"#111111"},
		ParticlesShape:         Shape(ShapeCircles),
		ShouldDestroyAfterDone: Bool(true),
	}
	c := orig.Clone()
	assert.Equal(t, orig, c)

	*c.ParticleCount = 99
	c.Colors[0] = "#222222"
	*c.ParticlesShape = ShapeRectangles
	*c.ShouldDestroyAfterDone = false

	assert.Equal(t, 10.0, *orig.ParticleCount)
	assert.Equal(t, "#111111", orig.Colors[0])
	assert.Equal(t, ShapeCircles, *orig.ParticlesShape)
	assert.True(t, *orig.ShouldDestroyAfterDone)
	assert.Nil(t, c.Force)

	malformed, err := ParseOptionsYAML([]byte("colors: red\n"))
	require.NoError(t, err)
	assert.False(t, Validate(malformed.Clone()), "the malformed colors flag survives a copy")
}

func TestParseOptionsYAML(t *testing.T) {
	opts, err := ParseOptionsYAML([]byte(`
particleCount: 42
duration: 2000
colors: ["#FFFFFF", "#000000"]
force: 0.7
particlesShape: rectangles
shouldDestroyAfterDone: false
`))
	require.NoError(t, err)

	require.NotNil(t, opts.ParticleCount)
	assert.Equal(t, 42.0, *opts.ParticleCount)
	assert.Equal(t, 2000.0, *opts.Duration)
	assert.Equal(t, []string{"#FFFFFF", "#000000"}, opts.Colors)
	assert.Equal(t, 0.7, *opts.Force)
	assert.Equal(t, ShapeRectangles, *opts.ParticlesShape)
	assert.False(t, *opts.ShouldDestroyAfterDone)
	assert.Nil(t, opts.ParticleSize)
	assert.Nil(t, opts.StageWidth)
	assert.True(t, Validate(opts))
}

func TestParseOptionsYAML_MalformedColors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"scalar", "colors: \"#FFFFFF\"\n"},
		{"mapping", "colors:\n  a: \"#FFFFFF\"\n"},
		{"nested list", "colors:\n  - [\"#FFFFFF\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)

			opts, err := ParseOptionsYAML([]byte(tt.doc))
			require.NoError(t, err, "malformed colors are reported by the validator")

			err = Check(opts)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "colors", verr.Field)
		})
	}
}

func TestParseOptionsYAML_NullColorsIsUnset(t *testing.T) {
	opts, err := ParseOptionsYAML([]byte("colors: ~\n"))
	require.NoError(t, err)
	assert.Nil(t, opts.Colors)
	assert.NoError(t, Check(opts))
}

func TestParseOptionsYAML_BadNumber(t *testing.T) {
	_, err := ParseOptionsYAML([]byte("particleCount: lots\n"))
	assert.Error(t, err)
}

func TestParseOptionsINI(t *testing.T) {
	opts, err := ParseOptionsINI(`
[confetti]
particleCount = 64
colors = "#FFC700"
colors = "#41BBC7"
particlesShape = circles
force = 0.25
shouldDestroyAfterDone = false
`)
	require.NoError(t, err)

	assert.Equal(t, 64.0, *opts.ParticleCount)
	assert.Equal(t, []string{"#FFC700", "#41BBC7"}, opts.Colors)
	assert.Equal(t, ShapeCircles, *opts.ParticlesShape)
	assert.Equal(t, 0.25, *opts.Force)
	assert.False(t, *opts.ShouldDestroyAfterDone)
	assert.Nil(t, opts.Duration)
}

func TestParseOptionsINI_Errors(t *testing.T) {
	_, err := ParseOptionsINI("[confetti]\nduration = soon\n")
	assert.Error(t, err)

	_, err = ParseOptionsINI("[confetti]\nshouldDestroyAfterDone = maybe\n")
	assert.Error(t, err)

	_, err = ParseOptionsINI("[confetti]\nunknownField = 1\n")
	assert.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "burst.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("particleCount: 12\n"), 0o644))
	opts, err := LoadOptions(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 12.0, *opts.ParticleCount)

	iniPath := filepath.Join(dir, "burst.ini")
	require.NoError(t, os.WriteFile(iniPath, []byte("[confetti]\nstageWidth = 300\n"), 0o644))
	opts, err = LoadOptions(iniPath)
	require.NoError(t, err)
	assert.Equal(t, 300.0, *opts.StageWidth)

	_, err = LoadOptions(filepath.Join(dir, "burst.json"))
	assert.ErrorContains(t, err, "unsupported options file type")

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
