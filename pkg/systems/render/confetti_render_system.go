// Package render draws confetti bursts with ebiten. It is kept apart from
// package systems so that non-graphical hosts do not link ebiten.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/ecs"
)

const (
	// DefaultCircleSegments 圆形粒子的多边形边数
	DefaultCircleSegments = 12

	// 一次 DrawTriangles 的顶点上限（uint16 索引）
	maxBatchVertices = 65535
)

// ConfettiRenderSystem 把所有爆炸的粒子批量绘制成纯色多边形
//
// 每个粒子按当前姿态投影成凸多边形（矩形 4 顶点，圆形为椭圆），
// 以三角扇形式写入共享顶点数组，纹理统一使用 1x1 白色子图，
// 颜色通过顶点色设置。
type ConfettiRenderSystem struct {
	entityManager *ecs.EntityManager
	palette       *confetti.Palette

	// CircleSegments is the polygon resolution used for circles.
	CircleSegments int

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewConfettiRenderSystem creates the render system.
func NewConfettiRenderSystem(em *ecs.EntityManager, palette *confetti.Palette) *ConfettiRenderSystem {
	if palette == nil {
		palette = confetti.NewPalette()
	}
	return &ConfettiRenderSystem{
		entityManager:  em,
		palette:        palette,
		CircleSegments: DefaultCircleSegments,
		vertices:       make([]ebiten.Vertex, 0, 4096),
		indices:        make([]uint16, 0, 8192),
	}
}

// Draw renders every visible burst onto screen.
func (s *ConfettiRenderSystem) Draw(screen *ebiten.Image) {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	s.vertices, s.indices = s.vertices[:0], s.indices[:0]
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}

	for _, id := range ecs.GetEntitiesWith2[*components.BurstComponent, *components.PositionComponent](s.entityManager) {
		bc, _ := ecs.GetComponent[*components.BurstComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		for _, pose := range bc.Burst.Poses() {
			c, _ := s.palette.Lookup(pose.Color)
			outline := pose.Outline(s.CircleSegments)
			if len(s.vertices)+len(outline) > maxBatchVertices {
				screen.DrawTriangles(s.vertices, s.indices, s.white, op)
				s.vertices, s.indices = s.vertices[:0], s.indices[:0]
			}
			s.vertices, s.indices = AppendPolygon(s.vertices, s.indices, outline, pos.X, pos.Y, c)
		}
	}

	if len(s.vertices) > 0 {
		screen.DrawTriangles(s.vertices, s.indices, s.white, op)
	}
}

// AppendPolygon appends a convex polygon translated by (ox, oy) as a
// triangle fan. Polygons with fewer than three points are skipped.
func AppendPolygon(vs []ebiten.Vertex, is []uint16, pts []confetti.Point, ox, oy float64, c color.RGBA) ([]ebiten.Vertex, []uint16) {
	if len(pts) < 3 {
		return vs, is
	}

	r := float32(c.R) / 0xff
	g := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	a := float32(c.A) / 0xff

	base := uint16(len(vs))
	for _, p := range pts {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(ox + p.X),
			DstY:   float32(oy + p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, base, base+uint16(i), base+uint16(i+1))
	}
	return vs, is
}
