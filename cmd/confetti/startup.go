package main

import (
	"fmt"
	"sort"

	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/preset"
)

// presetLoader is the part of preset.Store the startup path needs.
type presetLoader interface {
	Load(name string) (config.Options, error)
}

// startupOptions combines the named preset with the options file; fields
// set in the file win. Either source may be empty.
func startupOptions(store presetLoader, presetName, configPath string) (config.Options, error) {
	var opts config.Options
	if presetName != "" {
		p, err := store.Load(presetName)
		if err != nil {
			return config.Options{}, err
		}
		opts = p
	}
	if configPath != "" {
		fileOpts, err := config.LoadOptions(configPath)
		if err != nil {
			return config.Options{}, err
		}
		opts = opts.Merge(fileOpts)
	}
	if err := config.Check(opts); err != nil {
		return config.Options{}, fmt.Errorf("startup options: %w", err)
	}
	return opts, nil
}

// presetNames lists saved presets followed by the built-ins not shadowed
// by a saved preset.
func presetNames(saved []string) []string {
	seen := make(map[string]bool, len(saved))
	out := append([]string(nil), saved...)
	for _, n := range saved {
		seen[n] = true
	}
	var rest []string
	for _, n := range preset.Builtins() {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// cycle returns the entry delta steps away from current, wrapping around.
// An unknown current starts from the first entry.
func cycle(names []string, current string, delta int) string {
	if len(names) == 0 {
		return ""
	}
	idx := -1
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return names[0]
	}
	idx = ((idx+delta)%len(names) + len(names)) % len(names)
	return names[idx]
}
