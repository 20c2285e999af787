// Command confetti-term fires confetti bursts in a terminal.
//
// Usage:
//
//	go run ./cmd/confetti-term [flags]
//
// Controls:
//
//	Mouse Click  - Fire a burst at the cursor
//	Space        - Fire a burst near the top center
//	r            - Restart every burst
//	c            - Clear all bursts
//	m            - Toggle sound
//	q/Escape     - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/burst"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
	"github.com/decker502/confetti/pkg/preset"
	"github.com/decker502/confetti/pkg/sound"
	"github.com/decker502/confetti/pkg/systems"
	"github.com/decker502/confetti/pkg/termview"
)

var (
	configFlag = flag.String("config", "", "Options file (.yaml, .yml, .ini, .gcfg, .cfg)")
	presetFlag = flag.String("preset", "", "Preset to fire")
	seedFlag   = flag.Int64("seed", 0, "Random seed (0 = random)")
	fpsFlag    = flag.Int("fps", 30, "Frames per second")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
	logFlag    = flag.String("log", "", "Write logs to this file instead of discarding them")
)

// termApp 终端版主循环的状态
type termApp struct {
	screen   tcell.Screen
	em       *ecs.EntityManager
	bursts   *systems.BurstSystem
	renderer *termview.Renderer
	player   *sound.Player

	options config.Options
	status  string

	// 上一次鼠标事件时左键是否按下，用于只在按下瞬间发射
	mouseDown bool
}

// audioDevice is the part of sound.Player the startup sequence needs.
type audioDevice interface {
	Init() error
	SetMuted(muted bool)
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load options: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	var src confetti.Source
	if *seedFlag != 0 {
		src = confetti.NewSeededSource(*seedFlag)
	}

	player := sound.NewPlayer(preset.DefaultSettings().Volume)
	startPlayer(player, *muteFlag)
	defer player.Close()

	app := newTermApp(screen, src, player, opts)
	app.run()
}

// startPlayer 打开音频设备并设置初始静音状态
//
// 即使以静音启动也会打开设备，之后按 m 可以恢复声音。
func startPlayer(p audioDevice, muted bool) {
	p.SetMuted(muted)
	if err := p.Init(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
}

func loadOptions() (config.Options, error) {
	var opts config.Options
	if *presetFlag != "" {
		p, err := preset.Open("confetti").Load(*presetFlag)
		if err != nil {
			return opts, err
		}
		opts = p
	}
	if *configFlag != "" {
		fileOpts, err := config.LoadOptions(*configFlag)
		if err != nil {
			return opts, err
		}
		opts = opts.Merge(fileOpts)
	}
	return opts, config.Check(opts)
}

func newTermApp(screen tcell.Screen, src confetti.Source, player *sound.Player, opts config.Options) *termApp {
	em := ecs.NewEntityManager()
	app := &termApp{
		screen:   screen,
		em:       em,
		bursts:   systems.NewBurstSystem(em, src),
		renderer: termview.NewRenderer(em, nil),
		player:   player,
		options:  opts,
		status:   "click or space to fire, q to quit",
	}
	app.bursts.OnSpawn = func(_ ecs.EntityID, b *burst.Burst) {
		player.PlayPop(len(b.Particles()))
	}
	return app
}

func (a *termApp) run() {
	fps := *fpsFlag
	if fps <= 0 {
		fps = 30
	}
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.bursts.Update(now.Sub(last).Seconds())
			last = now
			a.em.RemoveMarkedEntities()
			a.draw()
		}
	}
}

func (a *termApp) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			cols, rows := a.screen.Size()
			w, h := a.renderer.PixelSize(cols, rows)
			a.fire(w/2, h/4)
		case 'r':
			a.bursts.Restart()
			a.status = "restarted"
		case 'c':
			a.status = fmt.Sprintf("cleared %d bursts", a.bursts.Clear())
		case 'm':
			a.player.SetMuted(!a.player.Muted())
			a.status = fmt.Sprintf("muted: %v", a.player.Muted())
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		justPressed := pressed && !a.mouseDown
		a.mouseDown = pressed
		if justPressed {
			col, row := ev.Position()
			x := (float64(col) + 0.5) * a.renderer.CellWidth
			y := (float64(row) + 0.5) * a.renderer.CellHeight
			a.fire(x, y)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *termApp) fire(x, y float64) {
	if _, ok := a.bursts.Spawn(a.options, *presetFlag, x, y); ok {
		a.status = fmt.Sprintf("%d bursts, %d particles", a.bursts.ActiveBursts(), a.bursts.ParticleCount())
	}
}

func (a *termApp) draw() {
	a.renderer.Draw(a.screen)

	_, rows := a.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range []rune(a.status) {
		a.screen.SetContent(i, rows-1, r, nil, style)
	}
	a.screen.Show()
}
