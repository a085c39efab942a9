package simulator

import (
	"fmt"
	"time"

	"crossroadSim/element"
	"crossroadSim/log"
	"crossroadSim/recorder"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SystemState 是某一时间步的系统状态快照
// 包括车辆数量、各方向排队和拥堵情况、停车统计等关键指标
type SystemState struct {
	Tick           int
	Signal         element.Signal
	PhaseDuration  time.Duration
	Vehicles       int
	Spawned        uint64
	Evicted        int
	InIntersection int
	Stopped        int // 上一时间步停车的车辆数
	Queues         [4]int
	Congested      [4]bool

	MeanStoppedTicks float64
	MaxStoppedTicks  int
}

// State 采样当前系统状态
func (w *World) State() SystemState {
	s := SystemState{
		Tick:          w.tick,
		Signal:        w.controller.Signal(),
		PhaseDuration: w.controller.PhaseDuration(),
		Vehicles:      len(w.vehicles),
		Spawned:       w.spawned,
		Evicted:       w.evicted,
		Stopped:       lo.Count(w.stopped, true),
	}
	s.InIntersection = lo.CountBy(w.vehicles, func(v *element.Vehicle) bool {
		return w.layout.InIntersection(v.Position())
	})
	for _, a := range element.Approaches {
		s.Queues[a] = w.QueueLength(a)
		s.Congested[a] = w.IsCongested(a)
	}

	if len(w.vehicles) > 0 {
		stopped := lo.Map(w.vehicles, func(v *element.Vehicle, _ int) float64 {
			return float64(v.StoppedTicks())
		})
		s.MeanStoppedTicks = stat.Mean(stopped, nil)
		s.MaxStoppedTicks = int(floats.Max(stopped))
	}
	return s
}

// RecordData 将状态交给recorder缓存
func (s SystemState) RecordData(rec *recorder.Recorder) {
	rec.RecordSystemData(recorder.SystemRecord{
		Tick:             s.Tick,
		Signal:           s.Signal.String(),
		PhaseMs:          s.PhaseDuration.Milliseconds(),
		Vehicles:         s.Vehicles,
		Spawned:          s.Spawned,
		Evicted:          s.Evicted,
		InIntersection:   s.InIntersection,
		Stopped:          s.Stopped,
		Queues:           s.Queues,
		Congested:        lo.Count(s.Congested[:], true),
		MeanStoppedTicks: s.MeanStoppedTicks,
		MaxStoppedTicks:  s.MaxStoppedTicks,
	})
}

// LogStatus 输出系统状态日志
func (s SystemState) LogStatus(tickRate int) {
	log.WriteLog(fmt.Sprintf("Tick: %d, SimTime: %v, Signal: %s (%v), Vehicles: %d, InIntersection: %d, Stopped: %d, Queues: %v, Spawned: %d, Evicted: %d, MeanStopped: %.2f",
		s.Tick, log.ConvertTimeStepToTime(s.Tick, tickRate), s.Signal, s.PhaseDuration,
		s.Vehicles, s.InIntersection, s.Stopped, s.Queues, s.Spawned, s.Evicted, s.MeanStoppedTicks))
}
