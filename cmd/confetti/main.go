// Command confetti is a desktop viewer for confetti bursts.
//
// Usage:
//
//	go run ./cmd/confetti [flags]
//
// Flags:
//
//	-config <file>       Options file (.yaml/.yml or .ini/.gcfg/.cfg)
//	-preset <name>       Start with a saved or built-in preset
//	-save-preset <name>  Save the startup options as a preset and exit
//	-mute                Start muted
//	-seed <n>            Deterministic randomness (0 = random)
//	-verbose             Keep logging after startup
//
// Controls:
//
//	Mouse Click / Space  - Fire a burst
//	R                    - Restart every burst with fresh randomness
//	C                    - Clear all bursts
//	Left/Right Arrow     - Previous/next preset
//	O                    - Open an options file
//	S                    - Save the current options as a preset
//	M                    - Toggle sound
//	Q/Escape             - Quit
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/preset"
	"github.com/decker502/confetti/pkg/sound"
)

const appName = "confetti"

var (
	configFlag     = flag.String("config", "", "Options file (.yaml, .yml, .ini, .gcfg, .cfg)")
	presetFlag     = flag.String("preset", "", "Preset to start with")
	savePresetFlag = flag.String("save-preset", "", "Save the startup options under this name and exit")
	muteFlag       = flag.Bool("mute", false, "Start muted")
	seedFlag       = flag.Int64("seed", 0, "Random seed (0 = random)")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	log.Println("=== Confetti Viewer ===")

	store := preset.Open(appName)
	presetName := *presetFlag
	opts, err := startupOptions(store, presetName, *configFlag)
	if err != nil {
		log.Fatalf("Failed to load options: %v", err)
	}

	// 未指定参数时沿用上次选择的预设（已被删除则忽略）
	if presetName == "" && *configFlag == "" {
		if settings, err := store.LoadSettings(); err == nil && settings.LastPreset != "" {
			if last, err := startupOptions(store, settings.LastPreset, ""); err == nil {
				opts, presetName = last, settings.LastPreset
			}
		}
	}

	if *savePresetFlag != "" {
		if err := store.Save(*savePresetFlag, opts); err != nil {
			log.Fatalf("Failed to save preset: %v", err)
		}
		log.Printf("Preset %q saved", *savePresetFlag)
		os.Exit(0)
	}

	var src confetti.Source
	if *seedFlag != 0 {
		src = confetti.NewSeededSource(*seedFlag)
	}

	player := sound.NewPlayer(preset.DefaultSettings().Volume)
	if err := player.Init(); err != nil {
		// 没有声音也能运行
		log.Printf("Audio initialization failed: %v", err)
	}
	defer player.Close()

	viewer := NewViewer(store, player, src, opts, presetName)
	if *muteFlag {
		viewer.settings.Muted = true
		player.SetMuted(true)
	}

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Confetti")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
