package systems

import (
	"log"
	"time"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/burst"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
)

// BurstSystem 管理所有彩纸爆炸实体
//
// 所有爆炸挂在同一个 FrameClock 上，Update 每帧推进时钟，
// 到期的爆炸由自身的销毁定时器切换到 destroyed，然后在这里被回收。
type BurstSystem struct {
	entityManager *ecs.EntityManager
	clock         *burst.FrameClock
	src           confetti.Source

	// OnSpawn is called after a valid burst has been mounted.
	OnSpawn func(id ecs.EntityID, b *burst.Burst)
}

// NewBurstSystem creates the system. A nil src uses the default generator.
func NewBurstSystem(em *ecs.EntityManager, src confetti.Source) *BurstSystem {
	return &BurstSystem{
		entityManager: em,
		clock:         burst.NewFrameClock(),
		src:           src,
	}
}

// Clock returns the scheduler every burst is mounted on.
func (s *BurstSystem) Clock() *burst.FrameClock { return s.clock }

// Spawn 在 (x, y) 处发射一次爆炸
//
// 参数：
//   - opts: 爆炸参数
//   - preset: 预设名称，仅用于记录
//   - x, y: 爆炸中心的屏幕坐标
//
// 返回：
//   - ecs.EntityID: 新实体的 ID
//   - bool: 参数非法时为 false，此时不会创建实体，ID 为 0
func (s *BurstSystem) Spawn(opts config.Options, preset string, x, y float64) (ecs.EntityID, bool) {
	b := burst.New(opts, s.src)
	if !b.Valid() {
		log.Printf("[BurstSystem] options rejected, nothing spawned")
		return 0, false
	}

	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	s.entityManager.AddComponent(id, &components.BurstComponent{Burst: b, Preset: preset})

	b.OnDestroyed = func() {
		s.entityManager.DestroyEntity(id)
	}
	b.Mount(s.clock)

	log.Printf("[BurstSystem] spawned burst %d at (%.0f, %.0f): %d particles", id, x, y, len(b.Particles()))
	if s.OnSpawn != nil {
		s.OnSpawn(id, b)
	}
	return id, true
}

// Update advances the shared clock by deltaTime seconds and marks finished
// bursts for removal.
func (s *BurstSystem) Update(deltaTime float64) {
	s.clock.Advance(time.Duration(deltaTime * float64(time.Second)))

	for _, id := range ecs.GetEntitiesWith1[*components.BurstComponent](s.entityManager) {
		bc, ok := ecs.GetComponent[*components.BurstComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if !bc.Burst.Visible() {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Restart re-rolls every live burst and restarts its destroy timer.
func (s *BurstSystem) Restart() {
	for _, b := range s.bursts() {
		b.Restart()
	}
}

// Clear unmounts every burst. Their pending timers are cancelled so no
// destroy fires afterwards.
func (s *BurstSystem) Clear() int {
	ids := ecs.GetEntitiesWith1[*components.BurstComponent](s.entityManager)
	for _, id := range ids {
		if bc, ok := ecs.GetComponent[*components.BurstComponent](s.entityManager, id); ok {
			bc.Burst.Unmount()
		}
		s.entityManager.DestroyEntity(id)
	}
	if len(ids) > 0 {
		log.Printf("[BurstSystem] cleared %d bursts", len(ids))
	}
	return len(ids)
}

// ActiveBursts returns the number of bursts still rendering.
func (s *BurstSystem) ActiveBursts() int {
	n := 0
	for _, b := range s.bursts() {
		if b.Visible() {
			n++
		}
	}
	return n
}

// ParticleCount returns the number of particles across all live bursts.
func (s *BurstSystem) ParticleCount() int {
	n := 0
	for _, b := range s.bursts() {
		n += len(b.Particles())
	}
	return n
}

func (s *BurstSystem) bursts() []*burst.Burst {
	ids := ecs.GetEntitiesWith1[*components.BurstComponent](s.entityManager)
	out := make([]*burst.Burst, 0, len(ids))
	for _, id := range ids {
		if bc, ok := ecs.GetComponent[*components.BurstComponent](s.entityManager, id); ok {
			out = append(out, bc.Burst)
		}
	}
	return out
}
