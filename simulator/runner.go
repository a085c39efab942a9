package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crossroadSim/config"
	"crossroadSim/log"
	"crossroadSim/recorder"

	"github.com/google/uuid"
)

// Runner 是无界面的模拟主循环
// 每个Runner拥有独立的World、生成器和记录器，多个Runner可以并发运行
type Runner struct {
	cfg    *config.Config
	runID  string
	world  *World
	demand *Demand
	rec    *recorder.Recorder
}

// NewRunner 创建一次模拟运行，输出文件以运行标识命名
func NewRunner(cfg *config.Config, seed uint64) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	runID := uuid.NewString()

	rec, err := recorder.NewRecorder(recorder.NewDataFiles(cfg.Logging.DataDir, runID, cfg.Logging.TraceEnabled))
	if err != nil {
		return nil, fmt.Errorf("init recorder for run %s: %w", runID, err)
	}

	world := NewWorld(cfg, WithSeed(seed), WithObserver(rec))
	return &Runner{
		cfg:    cfg,
		runID:  runID,
		world:  world,
		demand: NewDemand(world, cfg.Demand, world.Seed()+1),
		rec:    rec,
	}, nil
}

func (r *Runner) RunID() string                { return r.runID }
func (r *Runner) World() *World                { return r.world }
func (r *Runner) Demand() *Demand              { return r.demand }
func (r *Runner) Recorder() *recorder.Recorder { return r.rec }

// Run 运行 maxTicks 个时间步
// 按间隔输出日志并写入数据，ctx取消时写入已缓存的数据后返回
func (r *Runner) Run(ctx context.Context) error {
	sim := r.cfg.Simulation
	logInterval := r.cfg.Logging.IntervalWriteToLog
	dataInterval := r.cfg.Logging.IntervalWriteOtherData

	log.WriteLog(fmt.Sprintf("Run %s start, Seed: %d, MaxTicks: %d", r.runID, r.world.Seed(), sim.MaxTicks))
	startTime := time.Now()

	for step := 0; step < sim.MaxTicks; step++ {
		if err := ctx.Err(); err != nil {
			log.WriteLog(fmt.Sprintf("Run %s interrupted at tick %d", r.runID, r.world.TickCount()))
			return errors.Join(fmt.Errorf("run %s: %w", r.runID, err), r.finishSimulation())
		}

		r.demand.Step()
		r.world.Tick()

		tick := r.world.TickCount()
		if dataInterval > 0 && tick%dataInterval == 0 {
			r.world.State().RecordData(r.rec)
			r.recordTrace(tick)
			if err := r.writeData(); err != nil {
				return fmt.Errorf("run %s: %w", r.runID, err)
			}
		}
		if logInterval > 0 && tick%logInterval == 0 {
			r.world.State().LogStatus(sim.TickRate)
		}
	}

	log.WriteLog(fmt.Sprintf("Run %s finished %d ticks in %v", r.runID, r.world.TickCount(), time.Since(startTime)))
	return r.finishSimulation()
}
