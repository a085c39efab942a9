package recorder

import (
	"fmt"
	"strconv"
)

var systemHeader = []string{
	"Tick", "Signal", "Phase Ms", "Vehicles", "Spawned", "Evicted", "In Intersection", "Stopped",
	"Queue North", "Queue South", "Queue East", "Queue West", "Congested", "Mean Stopped Ticks", "Max Stopped Ticks",
}

// SystemRecord 是某一时间步的系统状态采样
type SystemRecord struct {
	Tick             int
	Signal           string
	PhaseMs          int64
	Vehicles         int
	Spawned          uint64
	Evicted          int
	InIntersection   int
	Stopped          int
	Queues           [4]int
	Congested        int // 拥堵的方向数
	MeanStoppedTicks float64
	MaxStoppedTicks  int
}

// RecordSystemData 缓存一条系统状态采样
func (r *Recorder) RecordSystemData(rec SystemRecord) {
	r.systemMu.Lock()
	defer r.systemMu.Unlock()
	r.systemCache = append(r.systemCache, []string{
		strconv.Itoa(rec.Tick),
		rec.Signal,
		strconv.FormatInt(rec.PhaseMs, 10),
		strconv.Itoa(rec.Vehicles),
		strconv.FormatUint(rec.Spawned, 10),
		strconv.Itoa(rec.Evicted),
		strconv.Itoa(rec.InIntersection),
		strconv.Itoa(rec.Stopped),
		strconv.Itoa(rec.Queues[0]),
		strconv.Itoa(rec.Queues[1]),
		strconv.Itoa(rec.Queues[2]),
		strconv.Itoa(rec.Queues[3]),
		strconv.Itoa(rec.Congested),
		fmt.Sprintf("%.2f", rec.MeanStoppedTicks),
		strconv.Itoa(rec.MaxStoppedTicks),
	})
}

func (r *Recorder) writeSystemData() error {
	return writeCache(r.files.System, systemHeader, &r.systemMu, &r.systemCache)
}
