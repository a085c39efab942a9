package simulator

import "crossroadSim/element"

// Observer 接收世界中发生的事件
// 回调在Tick或SpawnVehicle所在的协程中同步执行，实现中不应再调用World的修改方法
type Observer interface {
	OnSpawn(vehicle element.VehicleView, tick int)
	OnSignalChange(change element.SignalChange, tick int)
	OnEvict(vehicle element.VehicleView, tick int)
}

// BaseObserver 提供空实现，嵌入后只需覆盖关心的回调
type BaseObserver struct{}

func (BaseObserver) OnSpawn(element.VehicleView, int)         {}
func (BaseObserver) OnSignalChange(element.SignalChange, int) {}
func (BaseObserver) OnEvict(element.VehicleView, int)         {}
