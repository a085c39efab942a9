package recorder

import (
	"strconv"
	"strings"
	"sync/atomic"

	"crossroadSim/element"

	"gonum.org/v1/gonum/spatial/r2"
)

var tripHeader = []string{
	"Trip ID", "Vehicle ID", "Approach", "Turn", "Spawn Tick", "Evict Tick", "Travel Ticks", "Stopped Ticks", "Passed", "Path",
}

// OnSpawn 记录生成时的轨迹点，行程数据在车辆移除时一次性写入
func (r *Recorder) OnSpawn(vehicle element.VehicleView, tick int) {
	r.RecordTrace([]element.VehicleView{vehicle}, tick, TagSpawn)
}

// OnEvict 记录一次完整的行程
func (r *Recorder) OnEvict(vehicle element.VehicleView, tick int) {
	r.RecordTrace([]element.VehicleView{vehicle}, tick, TagEvict)

	r.tripMu.Lock()
	defer r.tripMu.Unlock()
	r.tripCache = append(r.tripCache, r.getTripData(vehicle, tick))
}

func (r *Recorder) getTripData(vehicle element.VehicleView, tick int) []string {
	idx := atomic.AddInt64(&r.tripIndex, 1)

	return []string{
		strconv.FormatInt(idx, 10),             // 行程序号
		strconv.FormatUint(vehicle.ID, 10),     // 车辆 ID
		vehicle.Approach.String(),              // 驶入方向
		vehicle.Turn.String(),                  // 转向
		strconv.Itoa(vehicle.SpawnTick),        // 生成时间步
		strconv.Itoa(tick),                     // 移除时间步
		strconv.Itoa(tick - vehicle.SpawnTick), // 在系统内的时间步数
		strconv.Itoa(vehicle.StoppedTicks),     // 停车时间步数
		strconv.FormatBool(vehicle.Passed),     // 是否走完全部路径
		formatPath(vehicle.Path),               // 路径点
	}
}

// formatPath 将路径格式化为字符串
func formatPath(path []r2.Vec) string {
	if len(path) == 0 {
		return "[]"
	}

	points := make([]string, len(path))
	for i, p := range path {
		points[i] = "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
	}

	return "[" + strings.Join(points, ",") + "]"
}

func (r *Recorder) writeTripData() error {
	return writeCache(r.files.Trip, tripHeader, &r.tripMu, &r.tripCache)
}
