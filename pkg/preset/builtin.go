package preset

import (
	"sort"

	"github.com/decker502/confetti/pkg/config"
)

// 内置预设，存储中同名预设优先
var builtins = map[string]config.Options{
	"classic": {},
	"gentle": {
		ParticleCount: config.Float(80),
		Force:         config.Float(0.3),
		Duration:      config.Float(4500),
	},
	"bubbles": {
		ParticlesShape: config.Shape(config.ShapeCircles),
		ParticleSize:   config.Float(10),
		Colors:         []string{"#41BBC7", "#7FDBFF", "#FFFFFF"},
	},
	"ribbons": {
		ParticlesShape: config.Shape(config.ShapeRectangles),
		ParticleSize:   config.Float(18),
		Force:          config.Float(0.8),
	},
	"storm": {
		ParticleCount: config.Float(400),
		Force:         config.Float(1),
		StageWidth:    config.Float(2400),
	},
}

// Builtins returns the names of the built-in presets, sorted.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
