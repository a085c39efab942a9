// Package recorder 把模拟过程中的行程、信号切换、系统状态和车辆轨迹缓存起来，
// 按间隔追加写入CSV文件
package recorder

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

// DataFiles 保存一次模拟输出的CSV文件路径
type DataFiles struct {
	Trip   string
	Signal string
	System string
	Trace  string // 为空时不记录轨迹
}

// NewDataFiles 根据输出目录和运行标识生成文件路径
func NewDataFiles(dir, runID string, trace bool) DataFiles {
	files := DataFiles{
		Trip:   filepath.Join(dir, fmt.Sprintf("%s_TripData.csv", runID)),
		Signal: filepath.Join(dir, fmt.Sprintf("%s_SignalData.csv", runID)),
		System: filepath.Join(dir, fmt.Sprintf("%s_SystemData.csv", runID)),
	}
	if trace {
		files.Trace = filepath.Join(dir, fmt.Sprintf("%s_TraceData.csv", runID))
	}
	return files
}

// Recorder 缓存一次模拟产生的全部数据
// 车辆和信号事件通过观察者回调进入缓存，Flush时统一写入文件
type Recorder struct {
	files DataFiles

	tripCache   [][]string
	tripMu      sync.Mutex
	tripIndex   int64
	signalCache [][]string
	signalMu    sync.Mutex
	systemCache [][]string
	systemMu    sync.Mutex
	traceCache  [][]string
	traceMu     sync.Mutex
}

// NewRecorder 创建记录器并写入各CSV文件的表头
func NewRecorder(files DataFiles) (*Recorder, error) {
	inits := []struct {
		file   string
		header []string
	}{
		{files.Trip, tripHeader},
		{files.Signal, signalHeader},
		{files.System, systemHeader},
		{files.Trace, traceHeader},
	}
	for _, in := range inits {
		if in.file == "" {
			continue
		}
		if err := initializeCSV(in.file, in.header); err != nil {
			return nil, err
		}
	}
	return &Recorder{files: files}, nil
}

// Files 返回输出文件路径
func (r *Recorder) Files() DataFiles {
	return r.files
}

// TraceEnabled 判断是否记录车辆轨迹
func (r *Recorder) TraceEnabled() bool {
	return r.files.Trace != ""
}

// Flush 将所有缓存写入文件并清空缓存
func (r *Recorder) Flush() error {
	return errors.Join(
		r.writeTripData(),
		r.writeSignalData(),
		r.writeSystemData(),
		r.writeTraceData(),
	)
}

// writeCache 将缓存追加到文件，文件被删除时重新写入表头
func writeCache(filename string, header []string, mu *sync.Mutex, cache *[][]string) error {
	mu.Lock()
	defer mu.Unlock()
	if filename == "" || len(*cache) == 0 {
		return nil
	}
	if !fileExists(filename) {
		if err := initializeCSV(filename, header); err != nil {
			return err
		}
	}
	if err := appendToCSV(filename, *cache); err != nil {
		return err
	}
	*cache = make([][]string, 0)
	return nil
}
