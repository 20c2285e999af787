// Package termview draws confetti bursts onto a terminal with tcell.
//
// Burst coordinates are in pixels; the renderer maps them to character
// cells using a fixed cell size. Each particle becomes one glyph at the
// cell under its center, colored with the particle's color.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/ecs"
)

// Default cell metrics of a typical terminal font, in px.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Particle glyphs.
const (
	GlyphCircle = '●'
	GlyphWide   = '▬'
	GlyphTall   = '▮'
	GlyphEdge   = '·' // 侧面朝向观察者，几乎不可见
)

// edgeOnArea 投影面积低于该比例时按侧面绘制
const edgeOnArea = 0.25

// Renderer 终端彩纸渲染器
type Renderer struct {
	entityManager *ecs.EntityManager
	palette       *confetti.Palette

	CellWidth  float64
	CellHeight float64
	Background tcell.Style
}

// NewRenderer creates a renderer with the default cell metrics.
func NewRenderer(em *ecs.EntityManager, palette *confetti.Palette) *Renderer {
	if palette == nil {
		palette = confetti.NewPalette()
	}
	return &Renderer{
		entityManager: em,
		palette:       palette,
		CellWidth:     DefaultCellWidth,
		CellHeight:    DefaultCellHeight,
		Background:    tcell.StyleDefault,
	}
}

// PixelSize returns the pixel extent of a screen of cols x rows cells.
func (r *Renderer) PixelSize(cols, rows int) (float64, float64) {
	return float64(cols) * r.CellWidth, float64(rows) * r.CellHeight
}

// CellAt maps a pixel position to the cell containing it.
func (r *Renderer) CellAt(x, y float64) (int, int) {
	return int(math.Floor(x / r.CellWidth)), int(math.Floor(y / r.CellHeight))
}

// Draw clears screen and draws every visible burst. It returns the number
// of particles that landed on screen. The caller calls Show.
func (r *Renderer) Draw(screen tcell.Screen) int {
	screen.Fill(' ', r.Background)
	cols, rows := screen.Size()

	drawn := 0
	for _, id := range ecs.GetEntitiesWith2[*components.BurstComponent, *components.PositionComponent](r.entityManager) {
		bc, _ := ecs.GetComponent[*components.BurstComponent](r.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)

		for _, pose := range bc.Burst.Poses() {
			c := pose.Center()
			col, row := r.CellAt(pos.X+c.X, pos.Y+c.Y)
			if col < 0 || row < 0 || col >= cols || row >= rows {
				continue
			}
			screen.SetContent(col, row, Glyph(pose), nil, r.style(pose.Color))
			drawn++
		}
	}
	return drawn
}

func (r *Renderer) style(name string) tcell.Style {
	rgba, _ := r.palette.Lookup(name)
	fg := tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
	return r.Background.Foreground(fg)
}

// Glyph picks the character for a particle pose.
func Glyph(p confetti.Pose) rune {
	if p.Circle {
		return GlyphCircle
	}
	if p.ProjectedArea() < edgeOnArea {
		return GlyphEdge
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Outline(4) {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	if maxX-minX > maxY-minY {
		return GlyphWide
	}
	return GlyphTall
}
