package simulator

import (
	"crossroadSim/element"
	"crossroadSim/recorder"

	"github.com/samber/lo"
)

// recordTrace 记录当前仍在行驶的车辆位置
// 未启用轨迹记录时不做任何事
func (r *Runner) recordTrace(tick int) {
	if !r.rec.TraceEnabled() {
		return
	}
	moving := lo.Filter(r.world.Vehicles(), func(v element.VehicleView, _ int) bool {
		return !v.Passed
	})
	r.rec.RecordTrace(moving, tick, recorder.TagPeriodic)
}
