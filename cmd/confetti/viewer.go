package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/burst"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
	"github.com/decker502/confetti/pkg/preset"
	"github.com/decker502/confetti/pkg/sound"
	"github.com/decker502/confetti/pkg/systems"
	"github.com/decker502/confetti/pkg/systems/render"
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

// dialogResult 对话框在后台 goroutine 中完成后回传给 Update
type dialogResult struct {
	apply func(v *Viewer)
}

// Viewer implements ebiten.Game for the confetti viewer.
type Viewer struct {
	entityManager *ecs.EntityManager
	burstSystem   *systems.BurstSystem
	renderSystem  *render.ConfettiRenderSystem

	store    *preset.Store
	player   *sound.Player
	settings preset.ViewerSettings

	options    config.Options
	presetName string

	dialogs    chan dialogResult
	dialogOpen bool

	statusMessage string
}

// NewViewer wires the ECS, the preset store and the sound player.
func NewViewer(store *preset.Store, player *sound.Player, src confetti.Source, opts config.Options, presetName string) *Viewer {
	em := ecs.NewEntityManager()
	palette := confetti.NewPalette()

	v := &Viewer{
		entityManager: em,
		burstSystem:   systems.NewBurstSystem(em, src),
		renderSystem:  render.NewConfettiRenderSystem(em, palette),
		store:         store,
		player:        player,
		options:       opts,
		presetName:    presetName,
		dialogs:       make(chan dialogResult, 1),
	}

	settings, err := store.LoadSettings()
	if err != nil {
		log.Printf("[Viewer] Warning: %v (using defaults)", err)
	}
	v.settings = settings
	player.SetMuted(settings.Muted)
	player.SetVolume(settings.Volume)

	v.burstSystem.OnSpawn = func(_ ecs.EntityID, b *burst.Burst) {
		player.PlayPop(len(b.Particles()))
	}

	v.statusMessage = "Click or press Space to fire"
	return v
}

// Update handles input and advances every burst by one tick.
func (v *Viewer) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	select {
	case res := <-v.dialogs:
		v.dialogOpen = false
		res.apply(v)
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.fire(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.fire(screenWidth/2, screenHeight/3)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.burstSystem.Restart()
		v.player.PlayPop(v.burstSystem.ParticleCount())
		v.statusMessage = "Restarted all bursts"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		n := v.burstSystem.Clear()
		v.statusMessage = fmt.Sprintf("Cleared %d bursts", n)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		v.toggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.switchPreset(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.switchPreset(-1)
	}
	if !v.dialogOpen {
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			v.openOptionsDialog()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			v.savePresetDialog()
		}
	}

	v.burstSystem.Update(dt)
	v.entityManager.RemoveMarkedEntities()
	return nil
}

func (v *Viewer) fire(x, y float64) {
	if _, ok := v.burstSystem.Spawn(v.options, v.presetName, x, y); !ok {
		v.statusMessage = "Current options are invalid, see log"
		return
	}
	v.statusMessage = fmt.Sprintf("Fired %q at (%.0f, %.0f)", v.presetLabel(), x, y)
}

func (v *Viewer) toggleMute() {
	v.settings.Muted = !v.settings.Muted
	v.player.SetMuted(v.settings.Muted)
	if err := v.store.SaveSettings(v.settings); err != nil {
		log.Printf("[Viewer] Failed to save settings: %v", err)
	}
	if v.settings.Muted {
		v.statusMessage = "Sound off"
	} else {
		v.statusMessage = "Sound on"
	}
}

func (v *Viewer) switchPreset(delta int) {
	name := cycle(presetNames(v.store.Names()), v.presetName, delta)
	if name == "" {
		return
	}
	opts, err := v.store.Load(name)
	if err != nil {
		v.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	v.options, v.presetName = opts, name
	v.settings.LastPreset = name
	if err := v.store.SaveSettings(v.settings); err != nil {
		log.Printf("[Viewer] Failed to save settings: %v", err)
	}
	v.statusMessage = fmt.Sprintf("Preset: %s", name)
}

// openOptionsDialog 在后台打开文件选择框，结果在下一帧应用
func (v *Viewer) openOptionsDialog() {
	v.dialogOpen = true
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open confetti options"),
			zenity.FileFilters{{
				Name:     "Options",
				Patterns: []string{"*.yaml", "*.yml", "*.ini", "*.gcfg", "*.cfg"},
			}},
		)
		v.dialogs <- dialogResult{apply: func(v *Viewer) {
			if err != nil {
				if !errors.Is(err, zenity.ErrCanceled) {
					v.statusMessage = fmt.Sprintf("Error: %v", err)
				}
				return
			}
			opts, err := config.LoadOptions(path)
			if err == nil {
				err = config.Check(opts)
			}
			if err != nil {
				log.Printf("[Viewer] Failed to load %s: %v", path, err)
				v.statusMessage = fmt.Sprintf("Error: %v", err)
				return
			}
			v.options, v.presetName = opts, ""
			v.statusMessage = fmt.Sprintf("Loaded %s", path)
		}}
	}()
}

// savePresetDialog 询问预设名称并保存当前参数
func (v *Viewer) savePresetDialog() {
	v.dialogOpen = true
	opts := v.options
	go func() {
		name, err := zenity.Entry("Preset name:", zenity.Title("Save confetti preset"))
		v.dialogs <- dialogResult{apply: func(v *Viewer) {
			if err != nil {
				if !errors.Is(err, zenity.ErrCanceled) {
					v.statusMessage = fmt.Sprintf("Error: %v", err)
				}
				return
			}
			if err := v.store.Save(name, opts); err != nil {
				v.statusMessage = fmt.Sprintf("Error: %v", err)
				return
			}
			v.presetName = name
			v.statusMessage = fmt.Sprintf("Saved preset %q", name)
		}}
	}()
}

func (v *Viewer) presetLabel() string {
	if v.presetName == "" {
		return "custom"
	}
	return v.presetName
}

// Draw renders the bursts and the overlay.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{25, 25, 38, 255})
	v.renderSystem.Draw(screen)

	cfg := v.options.Resolve()
	lines := []string{
		fmt.Sprintf("Preset: %s   Bursts: %d   Particles: %d   TPS: %.0f",
			v.presetLabel(), v.burstSystem.ActiveBursts(), v.burstSystem.ParticleCount(), ebiten.ActualTPS()),
		fmt.Sprintf("count=%d duration=%s force=%.2f size=%.0f shape=%s stage=%.0fx%.0f",
			cfg.ParticleCount, cfg.Duration, cfg.Force, cfg.ParticleSize, cfg.ParticlesShape, cfg.StageWidth, cfg.StageHeight),
		v.statusMessage,
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*20)
	}

	controls := "Click/Space = Fire  R = Restart  C = Clear  <-/-> = Preset  O = Open  S = Save  M = Mute  Q = Quit"
	ebitenutil.DebugPrintAt(screen, controls, 10, screenHeight-30)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
