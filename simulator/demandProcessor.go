package simulator

import (
	"time"

	"crossroadSim/config"
	"crossroadSim/element"

	"golang.org/x/exp/rand"
)

// Demand 产生车辆生成请求
// 手动请求与连续随机生成共用同一个冷却时间，冷却期内的请求被忽略
type Demand struct {
	world    *World
	interval time.Duration
	weights  [4]float64
	rng      *rand.Rand

	enabled   bool
	lastSpawn time.Time
	spawned   bool // 是否已有过生成请求
}

// NewDemand 创建生成器，随机方向的选择使用独立的随机源
func NewDemand(w *World, cfg config.DemandConfig, seed uint64) *Demand {
	return &Demand{
		world:    w,
		interval: cfg.SpawnInterval(),
		weights:  cfg.Weights,
		rng:      rand.New(rand.NewSource(seed)),
		enabled:  cfg.Enabled,
	}
}

// Enabled 返回是否处于连续随机生成状态
func (d *Demand) Enabled() bool {
	return d.enabled
}

// Toggle 切换连续随机生成，返回切换后的状态
func (d *Demand) Toggle() bool {
	d.enabled = !d.enabled
	return d.enabled
}

// Request 请求在指定方向生成一辆车
// 冷却期内或被世界拒绝时返回false
func (d *Demand) Request(a element.Approach) bool {
	now := d.world.Now()
	if d.spawned && now.Sub(d.lastSpawn) < d.interval {
		return false
	}
	d.spawned = true
	d.lastSpawn = now
	return d.world.SpawnVehicle(a)
}

// SpawnRandom 按权重随机选择方向并请求生成
func (d *Demand) SpawnRandom() bool {
	return d.Request(d.randomApproach())
}

// Step 在连续随机生成开启时请求生成一辆车
func (d *Demand) Step() bool {
	if !d.enabled {
		return false
	}
	return d.SpawnRandom()
}

// randomApproach 按权重选择方向，权重全为0时均匀选择
func (d *Demand) randomApproach() element.Approach {
	var total float64
	for _, w := range d.weights {
		total += w
	}
	if total <= 0 {
		return element.Approaches[d.rng.Intn(len(element.Approaches))]
	}

	dice := d.rng.Float64() * total
	for i, w := range d.weights {
		if dice < w {
			return element.Approaches[i]
		}
		dice -= w
	}
	return element.Approaches[len(element.Approaches)-1]
}
