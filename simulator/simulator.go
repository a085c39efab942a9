package simulator

import (
	"time"

	"crossroadSim/config"
	"crossroadSim/element"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// World 持有路口内的全部车辆和唯一的信号灯控制器
// 车辆只能由SpawnVehicle创建，只能在每个时间步末尾的移除阶段销毁
type World struct {
	cfg        *config.Config
	layout     element.Layout
	clock      element.Clock
	controller *element.TrafficLightController
	rng        *rand.Rand
	seed       uint64
	workers    int

	vehicles []*element.Vehicle // 按生成顺序排列
	stopped  []bool             // 上一时间步各车辆是否停车，与vehicles一一对应

	nextID  uint64
	tick    int
	spawned uint64
	evicted int

	observers []Observer
}

// Option 配置World的可选参数
type Option func(*World)

// WithClock 指定时钟，默认使用每个时间步前进 1/tickRate 秒的虚拟时钟
func WithClock(clock element.Clock) Option {
	return func(w *World) { w.clock = clock }
}

// WithSeed 指定随机种子，覆盖配置中的种子
func WithSeed(seed uint64) Option {
	return func(w *World) { w.seed = seed }
}

// WithObserver 注册事件观察者
func WithObserver(o Observer) Option {
	return func(w *World) { w.observers = append(w.observers, o) }
}

// NewWorld 创建一个空的路口，cfg为nil时使用默认配置
func NewWorld(cfg *config.Config, opts ...Option) *World {
	if cfg == nil {
		cfg = config.Default()
	}
	w := &World{
		cfg:     cfg,
		layout:  element.NewLayout(cfg.Geometry),
		seed:    cfg.Simulation.Seed,
		workers: cfg.Simulation.Workers,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.clock == nil {
		w.clock = element.NewVirtualClock(cfg.Simulation.TickDuration())
	}
	if w.seed == 0 {
		w.seed = uint64(time.Now().UnixNano())
	}
	w.rng = rand.New(rand.NewSource(w.seed))

	w.controller = element.NewTrafficLightController(cfg.TrafficLight, w.clock)
	w.controller.OnChange(func(change element.SignalChange) {
		for _, o := range w.observers {
			o.OnSignalChange(change, w.tick)
		}
	})
	return w
}

// Tick 推进一个时间步
// 依次执行：观测、更新信号灯、判定停车、移动车辆、移除驶出的车辆
func (w *World) Tick() {
	if s, ok := w.clock.(element.Stepper); ok {
		s.Step()
	}
	w.tick++

	// 路口没有车辆时保持全红
	if len(w.vehicles) == 0 {
		w.controller.ForceClearance()
		return
	}

	w.controller.Update(w.observe())
	w.processVehicles()
	w.evictVehicles()
}

// observe 扫描全部车辆，计算信号灯的输入
func (w *World) observe() element.Observation {
	obs := element.Observation{
		Occupied: lo.SomeBy(w.vehicles, func(v *element.Vehicle) bool {
			return w.layout.InIntersection(v.Position())
		}),
		StopLineOccupied: lo.SomeBy(w.vehicles, func(v *element.Vehicle) bool {
			return w.layout.OnStopLine(v.Approach(), v.Position())
		}),
	}
	// 全红期间也要给出各方向的排队情况，放行时按新方向计算相位时长
	for _, a := range element.Approaches {
		obs.Queues[a] = w.QueueLength(a)
		obs.Congested[a] = w.IsCongested(a)
	}
	return obs
}

// AddObserver 在创建后注册观察者
func (w *World) AddObserver(o Observer) {
	w.observers = append(w.observers, o)
}

// Signal 返回当前通行权状态
func (w *World) Signal() element.Signal {
	return w.controller.Signal()
}

// PhaseDuration 返回当前相位时长
func (w *World) PhaseDuration() time.Duration {
	return w.controller.PhaseDuration()
}

// PhaseElapsed 返回当前相位已持续的时间
func (w *World) PhaseElapsed() time.Duration {
	return w.controller.Elapsed()
}

// Now 返回世界时钟的当前时间
func (w *World) Now() time.Time {
	return w.clock.Now()
}

func (w *World) Layout() element.Layout { return w.layout }
func (w *World) TickCount() int         { return w.tick }
func (w *World) VehicleCount() int      { return len(w.vehicles) }
func (w *World) Seed() uint64           { return w.seed }

// Vehicles 返回全部车辆的快照，按生成顺序排列
func (w *World) Vehicles() []element.VehicleView {
	return lo.Map(w.vehicles, func(v *element.Vehicle, _ int) element.VehicleView {
		return v.View()
	})
}

// QueueLength 返回方向上停在停车点等待通行的车辆数
func (w *World) QueueLength(a element.Approach) int {
	return lo.CountBy(w.vehicles, func(v *element.Vehicle) bool {
		return v.Approach() == a && v.PathIndex() == element.StopWaypoint
	})
}

// IsCongested 判断方向是否拥堵：尚未驶过停车点的车辆数达到车道容量
func (w *World) IsCongested(a element.Approach) bool {
	queued := lo.CountBy(w.vehicles, func(v *element.Vehicle) bool {
		return v.Approach() == a && v.PathIndex() <= element.StopWaypoint
	})
	return queued >= w.layout.Capacity(a)
}
