package element

import "gonum.org/v1/gonum/spatial/r2"

// 路径点在路径中的位置
const (
	SpawnWaypoint    = 0 // 生成点，位于驶入边界外一个车身处
	StopWaypoint     = 1 // 停车点，位于路口边界外StopOffset处
	InteriorWaypoint = 2 // 路口内部的转弯点或中心点
)

// GeneratePath 生成指定方向和转向的车辆路径
// 路径依次为：生成点、停车点、路口内部点、驶出窗口后的终点
// 左右转向以驾驶员视角为准，车辆靠右行驶
func GeneratePath(l Layout, a Approach, t Turn) []r2.Vec {
	half := l.VehicleSize / 2
	in := l.Intersection

	// 各车道左上角坐标
	southX := l.SouthboundX - half
	northX := l.NorthboundX - half
	eastY := l.EastboundY - half
	westY := l.WestboundY - half
	centerX := (in.Min.X+in.Max.X)/2 - half
	centerY := (in.Min.Y+in.Max.Y)/2 - half

	// 四个驶出终点
	exitNorth := r2.Vec{X: northX, Y: -l.VehicleSize}
	exitSouth := r2.Vec{X: southX, Y: l.Height + l.VehicleSize}
	exitEast := r2.Vec{X: l.Width + l.VehicleSize, Y: eastY}
	exitWest := r2.Vec{X: -l.VehicleSize, Y: westY}

	var spawn, stop, straight r2.Vec
	var left, right [2]r2.Vec

	switch a {
	case North:
		spawn = r2.Vec{X: southX, Y: -l.VehicleSize}
		stop = r2.Vec{X: southX, Y: in.Min.Y - l.VehicleSize - l.StopOffset}
		straight = r2.Vec{X: southX, Y: centerY}
		left = [2]r2.Vec{{X: southX, Y: eastY}, exitEast}
		right = [2]r2.Vec{{X: southX, Y: westY}, exitWest}
		if t == Straight {
			return []r2.Vec{spawn, stop, straight, exitSouth}
		}
	case South:
		spawn = r2.Vec{X: northX, Y: l.Height + l.VehicleSize}
		stop = r2.Vec{X: northX, Y: in.Max.Y + l.StopOffset}
		straight = r2.Vec{X: northX, Y: centerY}
		left = [2]r2.Vec{{X: northX, Y: westY}, exitWest}
		right = [2]r2.Vec{{X: northX, Y: eastY}, exitEast}
		if t == Straight {
			return []r2.Vec{spawn, stop, straight, exitNorth}
		}
	case East:
		spawn = r2.Vec{X: l.Width + l.VehicleSize, Y: westY}
		stop = r2.Vec{X: in.Max.X + l.StopOffset, Y: westY}
		straight = r2.Vec{X: centerX, Y: westY}
		left = [2]r2.Vec{{X: southX, Y: westY}, exitSouth}
		right = [2]r2.Vec{{X: northX, Y: westY}, exitNorth}
		if t == Straight {
			return []r2.Vec{spawn, stop, straight, exitWest}
		}
	case West:
		spawn = r2.Vec{X: -l.VehicleSize, Y: eastY}
		stop = r2.Vec{X: in.Min.X - l.VehicleSize - l.StopOffset, Y: eastY}
		straight = r2.Vec{X: centerX, Y: eastY}
		left = [2]r2.Vec{{X: northX, Y: eastY}, exitNorth}
		right = [2]r2.Vec{{X: southX, Y: eastY}, exitSouth}
		if t == Straight {
			return []r2.Vec{spawn, stop, straight, exitEast}
		}
	default:
		panic("element: path requested for invalid approach " + a.String())
	}

	if t == Left {
		return []r2.Vec{spawn, stop, left[0], left[1]}
	}
	return []r2.Vec{spawn, stop, right[0], right[1]}
}
