package components

import "github.com/decker502/confetti/pkg/burst"

// BurstComponent 挂载在实体上的一次彩纸爆炸
//
// 实体的 PositionComponent 是爆炸原点（屏幕坐标），粒子姿态相对原点计算。
type BurstComponent struct {
	Burst *burst.Burst
	// Preset is the name of the preset the burst was fired with, empty for
	// the default options.
	Preset string
}
