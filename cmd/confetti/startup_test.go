package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/preset"
)

func TestStartupOptions_FileOverridesPreset(t *testing.T) {
	store, err := preset.NewStore(nil)
	require.NoError(t, err)
	require.NoError(t, store.Save("base", config.Options{
		ParticleCount: config.Float(60),
		Force:         config.Float(0.2),
	}))

	path := filepath.Join(t.TempDir(), "burst.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particleCount: 90\nparticlesShape: circles\n"), 0o644))

	opts, err := startupOptions(store, "base", path)
	require.NoError(t, err)

	cfg := opts.Resolve()
	assert.Equal(t, 90, cfg.ParticleCount)
	assert.Equal(t, 0.2, cfg.Force)
	assert.Equal(t, config.ShapeCircles, cfg.ParticlesShape)
}

func TestStartupOptions_Errors(t *testing.T) {
	store, _ := preset.NewStore(nil)

	_, err := startupOptions(store, "missing", "")
	assert.ErrorIs(t, err, preset.ErrNotFound)

	_, err = startupOptions(store, "", filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "unsupported options file type")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: -5\n"), 0o644))
	_, err = startupOptions(store, "", path)
	assert.ErrorContains(t, err, "duration")
}

func TestStartupOptions_Empty(t *testing.T) {
	store, _ := preset.NewStore(nil)
	opts, err := startupOptions(store, "", "")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), opts.Resolve())
}

func TestPresetNames(t *testing.T) {
	names := presetNames([]string{"mine", "storm"})
	assert.Equal(t, []string{"mine", "storm", "bubbles", "classic", "gentle", "ribbons"}, names)
}

func TestCycle(t *testing.T) {
	names := []string{"a", "b", "c"}
	assert.Equal(t, "b", cycle(names, "a", 1))
	assert.Equal(t, "a", cycle(names, "c", 1))
	assert.Equal(t, "c", cycle(names, "a", -1))
	assert.Equal(t, "a", cycle(names, "zzz", 1))
	assert.Equal(t, "", cycle(nil, "a", 1))
}
