package confetti

// CreateParticles 生成 count 个均匀分布在圆周上的粒子
//
// 第 i 个粒子的角度为 i*(360/count)，颜色按下标循环取自 colors。
// count <= 0 时返回空切片；colors 为空时粒子颜色为空字符串。
func CreateParticles(count int, colors []string) []Particle {
	if count <= 0 {
		return []Particle{}
	}

	increment := 360 / float64(count)
	particles := make([]Particle, count)
	for i := range particles {
		particles[i].Degree = float64(i) * increment
		if len(colors) > 0 {
			particles[i].Color = colors[i%len(colors)]
		}
	}
	return particles
}
