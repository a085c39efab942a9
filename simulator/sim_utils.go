package simulator

import (
	"fmt"
	"time"

	"crossroadSim/log"
)

// writeData 将记录器的缓存写入文件
func (r *Runner) writeData() error {
	if err := r.rec.Flush(); err != nil {
		log.WriteLog(fmt.Sprintf("Run %s data write failed: %v", r.runID, err))
		return err
	}
	return nil
}

// finishSimulation 完成模拟，写入最后的数据
// 记录写入操作的时间消耗
func (r *Runner) finishSimulation() error {
	// 最后一个时间步不在采样间隔上时补充一条状态
	tick := r.world.TickCount()
	if interval := r.cfg.Logging.IntervalWriteOtherData; interval <= 0 || tick == 0 || tick%interval != 0 {
		r.world.State().RecordData(r.rec)
	}

	startTime := time.Now()
	if err := r.writeData(); err != nil {
		return err
	}
	log.WriteLog(fmt.Sprintf("Run %s final data write completed in %v", r.runID, time.Since(startTime)))
	return nil
}
