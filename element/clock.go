package element

import "time"

// Clock 提供单调时间，信号灯的相位计时依赖于此
type Clock interface {
	Now() time.Time
}

// Stepper 由随时间步推进的虚拟时钟实现
type Stepper interface {
	Step()
}

// SystemClock 使用真实时间
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// VirtualClock 每个时间步前进固定时长，用于可复现的模拟和测试
type VirtualClock struct {
	now  time.Time
	tick time.Duration
}

// NewVirtualClock 创建虚拟时钟，tick为每个时间步对应的时长
func NewVirtualClock(tick time.Duration) *VirtualClock {
	return &VirtualClock{now: time.Unix(0, 0), tick: tick}
}

func (c *VirtualClock) Now() time.Time { return c.now }

// Step 前进一个时间步
func (c *VirtualClock) Step() { c.now = c.now.Add(c.tick) }

// Advance 前进指定时长
func (c *VirtualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
