package simulator

import (
	"sync"

	"crossroadSim/element"

	"gonum.org/v1/gonum/spatial/r2"
)

// processVehicles 处理所有车辆的移动
// 先基于本时间步开始时的快照判定每辆车是否停车，再统一移动，判定结果与处理顺序无关
func (w *World) processVehicles() {
	stops := w.decideStops(w.controller.Signal())

	for i, vehicle := range w.vehicles {
		if vehicle.Passed() {
			continue
		}
		if stops[i] {
			vehicle.Hold()
			continue
		}
		vehicle.Advance(w.layout.StepDistance, w.layout.SnapEpsilon)
	}
	w.stopped = stops
}

// decideStops 判定每辆车在本时间步是否停车
// 车辆较多且配置了多个工作协程时并发判定，每个协程只写入自己负责的下标
func (w *World) decideStops(signal element.Signal) []bool {
	n := len(w.vehicles)
	stops := make([]bool, n)
	boxes := make([]r2.Box, n)
	for i, vehicle := range w.vehicles {
		boxes[i] = w.layout.VehicleBox(vehicle.Position())
	}

	numWorkers := min(w.workers, n)
	if numWorkers <= 1 {
		for i := range w.vehicles {
			stops[i] = w.shouldStop(i, signal, boxes)
		}
		return stops
	}

	var wg sync.WaitGroup
	wg.Add(n)

	// 创建工作通道
	indexChan := make(chan int, numWorkers)

	// 启动工作协程
	for k := 0; k < numWorkers; k++ {
		go func() {
			for i := range indexChan {
				stops[i] = w.shouldStop(i, signal, boxes)
				wg.Done()
			}
		}()
	}

	// 分发任务
	for i := range w.vehicles {
		indexChan <- i
	}

	// 关闭通道并等待所有任务完成
	close(indexChan)
	wg.Wait()

	return stops
}

// shouldStop 判定第i辆车是否停车，只读取车辆状态和boxes快照
// 停在停车点且本方向没有通行权时停车；向前一步后的包围盒外扩安全间距与其他车辆重叠时停车
func (w *World) shouldStop(i int, signal element.Signal, boxes []r2.Box) bool {
	vehicle := w.vehicles[i]
	if vehicle.Passed() {
		return false
	}

	pos := vehicle.Position()
	atBorder := vehicle.PathIndex() == element.StopWaypoint && !w.layout.InIntersection(pos)
	if atBorder && !signal.Allows(vehicle.Approach()) {
		return true
	}

	// 驶离路口的最后一段不做碰撞制动
	if vehicle.OnExitLeg() && !w.cfg.Geometry.BrakeOnExitLeg {
		return false
	}

	ahead := element.Inflate(w.layout.VehicleBox(vehicle.Projected(w.layout.StepDistance, w.layout.SnapEpsilon)), w.layout.SafetyGap)
	for j, box := range boxes {
		if j == i || w.vehicles[j].Passed() {
			continue
		}
		if element.Overlaps(ahead, box) {
			return true
		}
	}
	return false
}

// evictVehicles 移除超出窗口边缘一定距离、或已到达终点且完全离开窗口的车辆
func (w *World) evictVehicles() {
	keptVehicles := w.vehicles[:0]
	keptStopped := w.stopped[:0]

	for i, vehicle := range w.vehicles {
		pos := vehicle.Position()
		if w.layout.BeyondMargin(pos) || (vehicle.AtTerminal() && w.layout.OffScreen(pos)) {
			w.evicted++
			view := vehicle.View()
			for _, o := range w.observers {
				o.OnEvict(view, w.tick)
			}
			continue
		}
		keptVehicles = append(keptVehicles, vehicle)
		keptStopped = append(keptStopped, w.stopped[i])
	}

	// 释放被移除车辆的引用
	clear(w.vehicles[len(keptVehicles):])
	w.vehicles = keptVehicles
	w.stopped = keptStopped
}
