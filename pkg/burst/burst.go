// Package burst owns the lifecycle of a single confetti explosion: the
// validated configuration, the particles, their cached motion parameters
// and the one-shot timer that removes the effect once it is done.
//
// A burst is driven from a single goroutine (the host's event loop). It is
// not safe for concurrent use.
package burst

import (
	"time"

	"github.com/decker502/confetti/internal/confetti"
	"github.com/decker502/confetti/pkg/config"
)

// State 爆炸效果的生命周期状态
type State int

const (
	// StateRendering is the state from mount until the destroy timer fires.
	StateRendering State = iota
	// StateDestroyed is terminal; the particles have been discarded.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Burst is one confetti explosion.
type Burst struct {
	options config.Options
	config  config.Config
	valid   bool
	src     confetti.Source

	particles []confetti.Particle
	motion    []confetti.MotionParameters

	state   State
	visible bool

	scheduler Scheduler
	stopTimer func() bool
	mountedAt time.Duration
	clock     func() time.Duration
	torndown  bool

	// OnDestroyed is called once when the burst transitions to destroyed.
	OnDestroyed func()
}

// New 创建一次爆炸
//
// 参数：
//   - opts: 调用方提供的爆炸参数
//   - src: 随机源，为 nil 时使用进程级随机数生成器
//
// 返回：
//   - *Burst: 爆炸实例
//
// 参数合法时立即生成粒子并为每个粒子计算一次运动参数；
// 参数非法时记录校验日志，返回的爆炸不持有粒子，也永远不会渲染。
func New(opts config.Options, src confetti.Source) *Burst {
	if src == nil {
		src = confetti.DefaultSource()
	}
	b := &Burst{
		options: opts,
		valid:   config.Validate(opts),
		src:     src,
		state:   StateRendering,
		visible: true,
	}
	b.config = opts.Resolve()
	b.generate()
	return b
}

func (b *Burst) generate() {
	if !b.valid {
		b.particles, b.motion = nil, nil
		return
	}
	b.particles = confetti.CreateParticles(b.config.ParticleCount, b.config.Colors)
	b.motion = confetti.ComputeAll(b.particles, b.config, b.src)
}

// Mount 把爆炸挂载到调度器上
//
// 参数：
//   - s: 一次性定时调度器，通常是宿主循环推进的 FrameClock
//
// ShouldDestroyAfterDone 为 true 时，挂载后 Duration 到期即转入 StateDestroyed。
// 重复挂载或挂载已卸载的爆炸不会产生任何效果。
func (b *Burst) Mount(s Scheduler) {
	if b.torndown || b.scheduler != nil {
		return
	}
	b.scheduler = s
	if c, ok := s.(interface{ Now() time.Duration }); ok {
		b.clock = c.Now
		b.mountedAt = c.Now()
	}
	b.schedule()
}

func (b *Burst) schedule() {
	if !b.config.ShouldDestroyAfterDone || b.state == StateDestroyed {
		return
	}
	b.stopTimer = b.scheduler.AfterFunc(b.config.Duration, b.destroy)
}

func (b *Burst) destroy() {
	if b.torndown || b.state == StateDestroyed {
		return
	}
	b.stopTimer = nil
	b.state = StateDestroyed
	b.visible = false
	b.particles, b.motion = nil, nil
	if b.OnDestroyed != nil {
		b.OnDestroyed()
	}
}

// Unmount 卸载爆炸
//
// 总是取消尚未触发的销毁定时器，调用后不会再发生任何状态转换。
// 卸载后的爆炸不可见，也不能再次挂载。
func (b *Burst) Unmount() {
	if b.torndown {
		return
	}
	b.cancelTimer()
	b.torndown = true
	b.particles, b.motion = nil, nil
}

func (b *Burst) cancelTimer() {
	if b.stopTimer != nil {
		b.stopTimer()
		b.stopTimer = nil
	}
}

// Restart recomputes particles and motion parameters with fresh randomness
// and, while mounted, restarts the destroy timer. Destroyed or torn-down
// bursts are not restarted.
func (b *Burst) Restart() {
	if b.torndown || b.state == StateDestroyed {
		return
	}
	b.cancelTimer()
	b.generate()
	if b.scheduler != nil {
		if b.clock != nil {
			b.mountedAt = b.clock()
		}
		b.schedule()
	}
}

// Valid reports whether the options passed validation.
func (b *Burst) Valid() bool { return b.valid }

// State returns the lifecycle state.
func (b *Burst) State() State { return b.state }

// Visible reports whether the host should render the particle tree.
func (b *Burst) Visible() bool {
	return b.visible && b.valid && !b.torndown
}

// Mounted reports whether the burst is attached and not torn down.
func (b *Burst) Mounted() bool { return b.scheduler != nil && !b.torndown }

// Config returns the resolved configuration.
func (b *Burst) Config() config.Config { return b.config }

// Options returns the options the burst was created from.
func (b *Burst) Options() config.Options { return b.options }

// Particles returns the particle set; nil once destroyed or torn down.
func (b *Burst) Particles() []confetti.Particle { return b.particles }

// Motion returns the cached motion parameters, index-aligned with Particles.
func (b *Burst) Motion() []confetti.MotionParameters { return b.motion }

// Elapsed returns the time since mount when the scheduler exposes a clock.
func (b *Burst) Elapsed() time.Duration {
	if b.clock == nil {
		return 0
	}
	return b.clock() - b.mountedAt
}

// Poses samples every particle at the current elapsed time.
func (b *Burst) Poses() []confetti.Pose {
	if !b.Visible() {
		return nil
	}
	elapsed := b.Elapsed()
	poses := make([]confetti.Pose, len(b.motion))
	for i, m := range b.motion {
		poses[i] = confetti.Sample(m, b.config.StageHeight, elapsed)
	}
	return poses
}

// ContainerVars returns the animation variables of the wrapping element.
func (b *Burst) ContainerVars() map[string]string {
	return confetti.ContainerVars(b.config.StageHeight)
}
