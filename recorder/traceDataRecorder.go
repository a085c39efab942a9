package recorder

import (
	"fmt"
	"strconv"

	"crossroadSim/element"
)

var traceHeader = []string{"Vehicle ID", "Tick", "X", "Y", "Path Index", "Stopped Ticks", "Tag"}

// 轨迹点标记
const (
	TagSpawn    = "spawn"
	TagPeriodic = "periodic"
	TagEvict    = "evict"
)

// RecordTrace 记录一批车辆在同一时间步的位置
// 未启用轨迹记录时直接返回
func (r *Recorder) RecordTrace(vehicles []element.VehicleView, tick int, tag string) {
	if !r.TraceEnabled() || len(vehicles) == 0 {
		return
	}

	rows := make([][]string, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []string{
			strconv.FormatUint(v.ID, 10),
			strconv.Itoa(tick),
			fmt.Sprintf("%.1f", v.Position.X),
			fmt.Sprintf("%.1f", v.Position.Y),
			strconv.Itoa(v.PathIndex),
			strconv.Itoa(v.StoppedTicks),
			tag,
		})
	}

	r.traceMu.Lock()
	defer r.traceMu.Unlock()
	r.traceCache = append(r.traceCache, rows...)
}

func (r *Recorder) writeTraceData() error {
	return writeCache(r.files.Trace, traceHeader, &r.traceMu, &r.traceCache)
}
