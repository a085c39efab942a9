package simulator

import (
	"crossroadSim/element"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/spatial/r2"
)

// SpawnVehicle 在指定方向生成一辆随机转向的车辆
// 方向拥堵或生成点附近已有车辆时不生成，返回false
func (w *World) SpawnVehicle(a element.Approach) bool {
	if !a.Valid() || w.IsCongested(a) {
		return false
	}

	spawn := element.GeneratePath(w.layout, a, element.Straight)[element.SpawnWaypoint]
	if last, ok := w.lastSpawned(a); ok {
		if r2.Norm(r2.Sub(last.Position(), spawn)) < w.layout.Spacing() {
			return false
		}
	}

	w.addVehicle(a, w.randomTurn())
	return true
}

// addVehicle 在方向的生成点放置一辆车，不做任何准入检查
func (w *World) addVehicle(a element.Approach, t element.Turn) *element.Vehicle {
	w.nextID++
	vehicle := element.NewVehicle(w.nextID, a, t, element.GeneratePath(w.layout, a, t), w.tick)
	w.vehicles = append(w.vehicles, vehicle)
	w.stopped = append(w.stopped, false)
	w.spawned++

	view := vehicle.View()
	for _, o := range w.observers {
		o.OnSpawn(view, w.tick)
	}
	return vehicle
}

// lastSpawned 返回该方向上最近生成且仍在路口中的车辆
func (w *World) lastSpawned(a element.Approach) (*element.Vehicle, bool) {
	vehicle, _, ok := lo.FindLastIndexOf(w.vehicles, func(v *element.Vehicle) bool {
		return v.Approach() == a
	})
	return vehicle, ok
}

func (w *World) randomTurn() element.Turn {
	return element.Turns[w.rng.Intn(len(element.Turns))]
}
