package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config 保存所有配置项的顶级结构
type Config struct {
	Simulation   SimulationConfig   `json:"simulation"`
	Geometry     GeometryConfig     `json:"geometry"`
	TrafficLight TrafficLightConfig `json:"trafficLight"`
	Demand       DemandConfig       `json:"demand"`
	Logging      LoggingConfig      `json:"logging"`
	Viewer       ViewerConfig       `json:"viewer"`
}

// SimulationConfig 保存模拟相关的配置项
type SimulationConfig struct {
	TickRate int    `json:"tickRate"` // 每秒时间步数
	MaxTicks int    `json:"maxTicks"` // 无界面运行时的总时间步
	Seed     uint64 `json:"seed"`     // 随机种子，0表示按当前时间生成
	Workers  int    `json:"workers"`  // 停车判定阶段的并发协程数
	Runs     int    `json:"runs"`     // 独立重复实验次数
}

// GeometryConfig 保存路口几何参数，核心与渲染层共用
type GeometryConfig struct {
	WindowWidth  float64 `json:"windowWidth"`
	WindowHeight float64 `json:"windowHeight"`
	RoadWidth    float64 `json:"roadWidth"`
	VehicleSize  float64 `json:"vehicleSize"`
	SafetyGap    float64 `json:"safetyGap"`
	StepDistance float64 `json:"stepDistance"` // 每个时间步的行驶距离
	SnapEpsilon  float64 `json:"snapEpsilon"`  // 小于该距离视为到达路径点
	StopOffset   float64 `json:"stopOffset"`   // 停车点与路口边界的距离
	EvictMargin  float64 `json:"evictMargin"`  // 超出窗口该距离后移除车辆

	// 为true时，驶离路口的最后一段路径也进行碰撞制动
	BrakeOnExitLeg bool `json:"brakeOnExitLeg"`
}

// TrafficLightConfig 保存交通信号灯相关的配置项，单位均为毫秒
type TrafficLightConfig struct {
	BasePhaseMs      int `json:"basePhaseMs"`
	MinPhaseMs       int `json:"minPhaseMs"`
	MaxPhaseMs       int `json:"maxPhaseMs"`
	ClearanceMs      int `json:"clearanceMs"`
	EmptyGraceMs     int `json:"emptyGraceMs"`
	BusyThreshold    int `json:"busyThreshold"`
	BusyBonusMs      int `json:"busyBonusMs"`
	CongestedBonusMs int `json:"congestedBonusMs"`
	ShortenMs        int `json:"shortenMs"`
}

// DemandConfig 保存随机生成车辆相关的配置项
type DemandConfig struct {
	Enabled         bool `json:"enabled"`
	SpawnIntervalMs int  `json:"spawnIntervalMs"`

	// 各方向的生成权重，顺序为 North, South, East, West
	Weights [4]float64 `json:"weights"`
}

// LoggingConfig 保存日志记录相关的配置项
type LoggingConfig struct {
	LogDir                 string `json:"logDir"`
	DataDir                string `json:"dataDir"`
	IntervalWriteToLog     int    `json:"intervalWriteToLog"`
	IntervalWriteOtherData int    `json:"intervalWriteOtherData"`
	TraceEnabled           bool   `json:"traceEnabled"` // 是否按采样间隔记录车辆轨迹
}

// ViewerConfig 保存图形界面相关的配置项
type ViewerConfig struct {
	Enabled   bool   `json:"enabled"`
	WallClock bool   `json:"wallClock"`
	Title     string `json:"title"`
}

var globalConfig *Config

// LoadConfig loads configuration from the specified JSON file
func LoadConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	applyDefaults(config)
	if err := config.Validate(); err != nil {
		return err
	}

	globalConfig = config
	return nil
}

// GetConfig returns the global configuration instance
func GetConfig() *Config {
	return globalConfig
}

// Default 返回全部使用默认值的配置
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	config.Demand.Enabled = true
	return config
}

func applyDefaults(config *Config) {
	// 模拟参数
	if config.Simulation.TickRate <= 0 {
		config.Simulation.TickRate = 60
	}
	if config.Simulation.MaxTicks <= 0 {
		config.Simulation.MaxTicks = 60 * 60 * 10 // 十分钟
	}
	if config.Simulation.Workers <= 0 {
		config.Simulation.Workers = 1
	}
	if config.Simulation.Runs <= 0 {
		config.Simulation.Runs = 1
	}

	// 几何参数
	g := &config.Geometry
	if g.WindowWidth <= 0 {
		g.WindowWidth = 800
	}
	if g.WindowHeight <= 0 {
		g.WindowHeight = 600
	}
	if g.RoadWidth <= 0 {
		g.RoadWidth = 100
	}
	if g.VehicleSize <= 0 {
		g.VehicleSize = 20
	}
	if g.SafetyGap <= 0 {
		g.SafetyGap = 10
	}
	if g.StepDistance <= 0 {
		g.StepDistance = 5
	}
	if g.SnapEpsilon <= 0 {
		g.SnapEpsilon = 5
	}
	if g.StopOffset <= 0 {
		g.StopOffset = 5
	}
	if g.EvictMargin <= 0 {
		g.EvictMargin = 40
	}

	// 信号灯参数
	tl := &config.TrafficLight
	if tl.BasePhaseMs <= 0 {
		tl.BasePhaseMs = 3000
	}
	if tl.MinPhaseMs <= 0 {
		tl.MinPhaseMs = 1000
	}
	if tl.MaxPhaseMs <= 0 {
		tl.MaxPhaseMs = 10000
	}
	if tl.ClearanceMs <= 0 {
		tl.ClearanceMs = 2000
	}
	if tl.EmptyGraceMs <= 0 {
		tl.EmptyGraceMs = 500
	}
	if tl.BusyThreshold <= 0 {
		tl.BusyThreshold = 5
	}
	if tl.BusyBonusMs <= 0 {
		tl.BusyBonusMs = 2000
	}
	if tl.CongestedBonusMs <= 0 {
		tl.CongestedBonusMs = 5000
	}
	if tl.ShortenMs <= 0 {
		tl.ShortenMs = 1000
	}

	// 生成参数
	if config.Demand.SpawnIntervalMs <= 0 {
		config.Demand.SpawnIntervalMs = 250
	}
	var total float64
	for _, w := range config.Demand.Weights {
		total += w
	}
	if total <= 0 {
		config.Demand.Weights = [4]float64{1, 1, 1, 1}
	}

	// 输出参数
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = "./log"
	}
	if config.Logging.DataDir == "" {
		config.Logging.DataDir = "./data"
	}
	if config.Logging.IntervalWriteToLog <= 0 {
		config.Logging.IntervalWriteToLog = 600
	}
	if config.Logging.IntervalWriteOtherData <= 0 {
		config.Logging.IntervalWriteOtherData = 60
	}

	if config.Viewer.Title == "" {
		config.Viewer.Title = "Road Intersection"
	}
}

// Validate 检查参数之间的约束关系
func (c *Config) Validate() error {
	g := c.Geometry
	if g.RoadWidth >= g.WindowWidth || g.RoadWidth >= g.WindowHeight {
		return fmt.Errorf("road width %.0f does not fit window %.0fx%.0f", g.RoadWidth, g.WindowWidth, g.WindowHeight)
	}
	if g.VehicleSize*2 > g.RoadWidth {
		return fmt.Errorf("vehicle size %.0f does not fit a lane of road width %.0f", g.VehicleSize, g.RoadWidth)
	}
	// 步长大于吸附距离时车辆会越过路径点
	if g.StepDistance > g.SnapEpsilon {
		return fmt.Errorf("step distance %.1f exceeds snap epsilon %.1f", g.StepDistance, g.SnapEpsilon)
	}
	tl := c.TrafficLight
	if tl.MinPhaseMs > tl.BasePhaseMs || tl.BasePhaseMs > tl.MaxPhaseMs {
		return fmt.Errorf("phase durations must satisfy min <= base <= max, got %d/%d/%d", tl.MinPhaseMs, tl.BasePhaseMs, tl.MaxPhaseMs)
	}
	for i, w := range c.Demand.Weights {
		if w < 0 {
			return fmt.Errorf("demand weight %d is negative", i)
		}
	}
	return nil
}

// TickDuration 返回一个时间步对应的时长
func (s SimulationConfig) TickDuration() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func (tl TrafficLightConfig) BasePhase() time.Duration      { return ms(tl.BasePhaseMs) }
func (tl TrafficLightConfig) MinPhase() time.Duration       { return ms(tl.MinPhaseMs) }
func (tl TrafficLightConfig) MaxPhase() time.Duration       { return ms(tl.MaxPhaseMs) }
func (tl TrafficLightConfig) Clearance() time.Duration      { return ms(tl.ClearanceMs) }
func (tl TrafficLightConfig) EmptyGrace() time.Duration     { return ms(tl.EmptyGraceMs) }
func (tl TrafficLightConfig) BusyBonus() time.Duration      { return ms(tl.BusyBonusMs) }
func (tl TrafficLightConfig) CongestedBonus() time.Duration { return ms(tl.CongestedBonusMs) }
func (tl TrafficLightConfig) Shorten() time.Duration        { return ms(tl.ShortenMs) }

// SpawnInterval 返回两次生成车辆之间的最短间隔
func (d DemandConfig) SpawnInterval() time.Duration {
	return ms(d.SpawnIntervalMs)
}
