// Package log 负责运行日志的写入，同时输出到标准输出和日志文件
package log

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"crossroadSim/config"
)

var (
	logger  = golog.New(os.Stdout, "", golog.LstdFlags)
	logFile *os.File
	logMu   sync.Mutex
)

// InitLog 初始化日志文件，之后的日志同时写入文件和标准输出
func InitLog(filename string) error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	logger.SetOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

// WriteLog 写入一行日志
func WriteLog(message string) {
	logMu.Lock()
	defer logMu.Unlock()
	logger.Println(message)
}

// CloseLog 关闭日志文件，恢复为仅输出到标准输出
func CloseLog() {
	logMu.Lock()
	defer logMu.Unlock()

	logger.SetOutput(os.Stdout)
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetOutput 替换日志输出，主要用于测试
func SetOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logger.SetOutput(w)
}

// LogEnvironment 记录运行环境
func LogEnvironment() {
	WriteLog(fmt.Sprintf("Go: %s, OS/Arch: %s/%s, CPUs: %d, GOMAXPROCS: %d",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0)))
}

// LogSimParameters 记录模拟参数
func LogSimParameters(cfg *config.Config) {
	WriteLog(fmt.Sprintf("TickRate: %d, MaxTicks: %d, Seed: %d, Workers: %d, Runs: %d",
		cfg.Simulation.TickRate, cfg.Simulation.MaxTicks, cfg.Simulation.Seed,
		cfg.Simulation.Workers, cfg.Simulation.Runs))
	g := cfg.Geometry
	WriteLog(fmt.Sprintf("Window: %.0fx%.0f, RoadWidth: %.0f, VehicleSize: %.0f, SafetyGap: %.0f, Step: %.1f",
		g.WindowWidth, g.WindowHeight, g.RoadWidth, g.VehicleSize, g.SafetyGap, g.StepDistance))
	tl := cfg.TrafficLight
	WriteLog(fmt.Sprintf("Phase base/min/max: %v/%v/%v, Clearance: %v, EmptyGrace: %v",
		tl.BasePhase(), tl.MinPhase(), tl.MaxPhase(), tl.Clearance(), tl.EmptyGrace()))
	WriteLog(fmt.Sprintf("Demand enabled: %v, SpawnInterval: %v, Weights: %v",
		cfg.Demand.Enabled, cfg.Demand.SpawnInterval(), cfg.Demand.Weights))
}

// ConvertTimeStepToTime 将时间步换算为模拟时长
func ConvertTimeStepToTime(timeStep, tickRate int) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Duration(timeStep) * time.Second / time.Duration(tickRate)
}
