package burst

import (
	"sort"
	"time"
)

// Scheduler runs one-shot deferred callbacks. The returned stop function
// cancels the callback and reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// FrameClock 帧驱动的单线程调度器
//
// 宿主循环（ebiten Update、终端 ticker）每帧调用 Advance 推进时间，
// 到期的回调在 Advance 内按到期顺序同步执行，不会启动任何 goroutine。
type FrameClock struct {
	now    time.Duration
	nextID uint64
	timers []*frameTimer
}

type frameTimer struct {
	id  uint64
	due time.Duration
	fn  func()
}

// NewFrameClock creates a clock starting at zero.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Now returns the time elapsed since the clock was created.
func (c *FrameClock) Now() time.Duration { return c.now }

// Pending returns the number of scheduled callbacks that have not fired.
func (c *FrameClock) Pending() int { return len(c.timers) }

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *FrameClock) AfterFunc(d time.Duration, f func()) func() bool {
	if d < 0 {
		d = 0
	}
	c.nextID++
	t := &frameTimer{id: c.nextID, due: c.now + d, fn: f}
	c.timers = append(c.timers, t)

	return func() bool { return c.remove(t.id) }
}

// Advance moves the clock forward by dt and fires every callback that is
// due. Callbacks scheduled from inside a callback are considered on the
// same call if they are already due.
func (c *FrameClock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}

	for {
		due := c.popDue()
		if due == nil {
			return
		}
		due.fn()
	}
}

// popDue removes and returns the earliest due timer, or nil.
func (c *FrameClock) popDue() *frameTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].due < c.timers[j].due
	})
	first := c.timers[0]
	if first.due > c.now {
		return nil
	}
	c.timers = c.timers[1:]
	return first
}

func (c *FrameClock) remove(id uint64) bool {
	for i, t := range c.timers {
		if t.id == id {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
