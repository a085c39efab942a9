package element

import (
	"time"

	"crossroadSim/config"
)

// Observation 是世界每个时间步提供给信号灯的观测量，数组按Approach下标
type Observation struct {
	Queues           [4]int  // 各方向停在停车点的车辆数
	Congested        [4]bool // 各方向是否拥堵
	Occupied         bool    // 是否有车辆包围盒与路口重叠
	StopLineOccupied bool    // 是否有车辆压在任一方向的路口边界线上
}

// SwitchReason 表示信号切换的原因
type SwitchReason int

const (
	ReasonTimeout    SwitchReason = iota // 相位时长用尽
	ReasonEmptyQueue                     // 绿灯方向持续无车等待，提前放行下一方向
	ReasonClearance                      // 路口仍有车辆，进入全红清空
	ReasonCleared                        // 全红结束，路口已清空
	ReasonIdle                           // 路口没有车辆，强制全红
)

func (r SwitchReason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonEmptyQueue:
		return "empty-queue"
	case ReasonClearance:
		return "clearance"
	case ReasonCleared:
		return "cleared"
	case ReasonIdle:
		return "idle"
	}
	return "unknown"
}

// SignalChange 描述一次信号切换
type SignalChange struct {
	From     Signal
	To       Signal
	Reason   SwitchReason
	Duration time.Duration // 新相位的时长
	At       time.Time
}

// TrafficLightController 按 North → South → East → West 轮转放行
// 相位时长根据排队情况自适应调整，切换时若路口未清空则插入全红相位
type TrafficLightController struct {
	current     Signal
	beforeClear Approach // 进入全红前的绿灯方向

	phaseDuration  time.Duration
	basePhase      time.Duration
	minPhase       time.Duration
	maxPhase       time.Duration
	clearance      time.Duration
	emptyGrace     time.Duration
	busyBonus      time.Duration
	congestedBonus time.Duration
	shorten        time.Duration
	busyThreshold  int

	lastSwitch    time.Time
	emptySince    time.Time
	emptyTracking bool

	clock    Clock
	onChange []func(SignalChange)
}

// NewTrafficLightController 创建信号灯，初始为北向绿灯
func NewTrafficLightController(cfg config.TrafficLightConfig, clock Clock) *TrafficLightController {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TrafficLightController{
		current:        SignalNorth,
		beforeClear:    North,
		phaseDuration:  cfg.BasePhase(),
		basePhase:      cfg.BasePhase(),
		minPhase:       cfg.MinPhase(),
		maxPhase:       cfg.MaxPhase(),
		clearance:      cfg.Clearance(),
		emptyGrace:     cfg.EmptyGrace(),
		busyBonus:      cfg.BusyBonus(),
		congestedBonus: cfg.CongestedBonus(),
		shorten:        cfg.Shorten(),
		busyThreshold:  cfg.BusyThreshold,
		lastSwitch:     clock.Now(),
		clock:          clock,
	}
}

// Signal 返回当前通行权状态
func (c *TrafficLightController) Signal() Signal {
	return c.current
}

// PhaseDuration 返回当前相位时长
func (c *TrafficLightController) PhaseDuration() time.Duration {
	return c.phaseDuration
}

// Elapsed 返回当前相位已持续的时间
func (c *TrafficLightController) Elapsed() time.Duration {
	return c.clock.Now().Sub(c.lastSwitch)
}

// OnChange 注册信号切换回调
func (c *TrafficLightController) OnChange(fn func(SignalChange)) {
	c.onChange = append(c.onChange, fn)
}

// Update 根据本时间步的观测量更新信号状态
func (c *TrafficLightController) Update(obs Observation) {
	now := c.clock.Now()
	elapsed := now.Sub(c.lastSwitch)

	// 全红相位：时长用尽且路口清空后，放行进入全红前方向的下一个方向
	if c.current == SignalClearance {
		if elapsed >= c.phaseDuration && !obs.Occupied {
			c.grant(c.beforeClear.Next(), obs, now, ReasonCleared)
		}
		return
	}

	green, _ := c.current.Approach()
	emptyRelease := false
	if obs.Queues[green] == 0 {
		if !c.emptyTracking {
			c.emptyTracking = true
			c.emptySince = now
		} else if now.Sub(c.emptySince) >= c.emptyGrace {
			emptyRelease = true
		}
	} else {
		c.emptyTracking = false
	}

	timedOut := elapsed >= c.phaseDuration
	if !timedOut && !emptyRelease {
		return
	}

	if obs.Occupied || obs.StopLineOccupied {
		c.enterClearance(now, ReasonClearance)
		return
	}

	reason := ReasonTimeout
	if !timedOut {
		reason = ReasonEmptyQueue
	}
	c.grant(green.Next(), obs, now, reason)
}

// ForceClearance 强制进入全红相位，已处于全红时不做任何改变
func (c *TrafficLightController) ForceClearance() {
	if c.current == SignalClearance {
		return
	}
	c.enterClearance(c.clock.Now(), ReasonIdle)
}

func (c *TrafficLightController) enterClearance(now time.Time, reason SwitchReason) {
	from := c.current
	c.beforeClear, _ = c.current.Approach()
	c.current = SignalClearance
	c.phaseDuration = c.clearance
	c.lastSwitch = now
	c.emptyTracking = false
	c.notify(from, reason, now)
}

func (c *TrafficLightController) grant(next Approach, obs Observation, now time.Time, reason SwitchReason) {
	from := c.current
	c.current = next.Signal()
	c.phaseDuration = c.adaptivePhase(obs.Queues[next], obs.Congested[next])
	c.lastSwitch = now
	c.emptyTracking = false
	c.notify(from, reason, now)
}

// adaptivePhase 按即将获得绿灯方向的排队情况计算相位时长，结果不超过maxPhase
func (c *TrafficLightController) adaptivePhase(waiting int, congested bool) time.Duration {
	d := c.basePhase
	switch {
	case congested:
		d = c.basePhase + c.congestedBonus
	case waiting > c.busyThreshold:
		d = c.basePhase + c.busyBonus
	case waiting == 0:
		d = max(c.basePhase-c.shorten, c.minPhase)
	}
	return min(d, c.maxPhase)
}

func (c *TrafficLightController) notify(from Signal, reason SwitchReason, now time.Time) {
	change := SignalChange{
		From:     from,
		To:       c.current,
		Reason:   reason,
		Duration: c.phaseDuration,
		At:       now,
	}
	for _, fn := range c.onChange {
		fn(change)
	}
}
