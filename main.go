package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"crossroadSim/config"
	"crossroadSim/element"
	"crossroadSim/log"
	"crossroadSim/simulator"
	"crossroadSim/utils"
	"crossroadSim/viewer"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path of the JSON config file")
	flag.Parse()

	// 加载配置文件
	if err := config.LoadConfig(*configPath); err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// 生成唯一的初始化时间标识
	initTime := time.Now().Format("2006010215040506")

	logFile := filepath.Join(cfg.Logging.LogDir, initTime+".log")
	if err := log.InitLog(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "init log: %v\n", err)
	}
	defer log.CloseLog()

	log.LogEnvironment()
	log.LogSimParameters(cfg)

	var err error
	if cfg.Viewer.Enabled {
		err = runViewer(cfg)
	} else {
		err = runHeadless(cfg)
	}
	if err != nil {
		log.WriteLog(fmt.Sprintf("Simulation finished with error: %v", err))
	}
	log.WriteLog("---------------------------------- Completed ----------------------------------")
}

// runViewer 以图形界面运行单个世界，时间步由ebiten驱动
func runViewer(cfg *config.Config) error {
	var opts []simulator.Option
	if cfg.Viewer.WallClock {
		opts = append(opts, simulator.WithClock(element.SystemClock{}))
	}
	world := simulator.NewWorld(cfg, opts...)
	demand := simulator.NewDemand(world, cfg.Demand, world.Seed()+1)

	log.WriteLog(fmt.Sprintf("Viewer start, Seed: %d, WallClock: %v", world.Seed(), cfg.Viewer.WallClock))
	return viewer.Run(cfg, world, demand)
}

// runHeadless 在工作池中并发运行多次独立实验，第i次实验使用种子 seed+i
func runHeadless(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	pool := utils.NewWorkerPool(ctx, cfg.Simulation.Runs)
	log.WriteLog(fmt.Sprintf("Concurrent runs: %d, Base seed: %d", pool.Workers(), seed))
	log.WriteLog("----------------------------------Simulation Start----------------------------------")

	for i := 0; i < cfg.Simulation.Runs; i++ {
		runSeed := seed + uint64(i)
		submitted := pool.Submit(func(ctx context.Context) error {
			runner, err := simulator.NewRunner(cfg, runSeed)
			if err != nil {
				return err
			}
			return runner.Run(ctx)
		})
		if !submitted {
			log.WriteLog(fmt.Sprintf("Run with seed %d was not submitted", runSeed))
		}
	}

	log.WriteLog("正在停止工作池...")
	err := pool.Stop()
	log.WriteLog("工作池已停止")
	return err
}
