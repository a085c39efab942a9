package element

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Vehicle 表示路口中的一辆车
type Vehicle struct {
	id           uint64   // 车辆唯一标识，单调递增
	approach     Approach // 驶入方向
	turn         Turn     // 转向
	pos          r2.Vec   // 当前位置（包围盒左上角）
	passed       bool     // 是否已走完全部路径
	path         []r2.Vec // 路径点
	pathIndex    int      // 最近到达的路径点下标，目标为path[pathIndex+1]
	spawnTick    int      // 生成时的时间步
	stoppedTicks int      // 累计停车的时间步数
}

// NewVehicle 创建一辆位于路径起点的车辆
func NewVehicle(id uint64, a Approach, t Turn, path []r2.Vec, spawnTick int) *Vehicle {
	if len(path) < 2 {
		panic("element: vehicle path needs at least two waypoints")
	}
	p := make([]r2.Vec, len(path))
	copy(p, path)
	return &Vehicle{
		id:        id,
		approach:  a,
		turn:      t,
		pos:       p[0],
		path:      p,
		spawnTick: spawnTick,
	}
}

func (v *Vehicle) ID() uint64         { return v.id }
func (v *Vehicle) Approach() Approach { return v.approach }
func (v *Vehicle) Turn() Turn         { return v.turn }
func (v *Vehicle) Position() r2.Vec   { return v.pos }
func (v *Vehicle) Passed() bool       { return v.passed }
func (v *Vehicle) PathIndex() int     { return v.pathIndex }
func (v *Vehicle) SpawnTick() int     { return v.spawnTick }
func (v *Vehicle) StoppedTicks() int  { return v.stoppedTicks }

// Path 返回路径副本
func (v *Vehicle) Path() []r2.Vec {
	result := make([]r2.Vec, len(v.path))
	copy(result, v.path)
	return result
}

// AtTerminal 判断是否已到达路径终点
func (v *Vehicle) AtTerminal() bool {
	return v.pathIndex >= len(v.path)-1
}

// OnExitLeg 判断车辆是否已驶上通往终点的最后一段路径
func (v *Vehicle) OnExitLeg() bool {
	return v.pathIndex >= len(v.path)-2
}

// Target 返回下一个目标路径点，到达终点后返回终点本身
func (v *Vehicle) Target() r2.Vec {
	if v.AtTerminal() {
		return v.path[len(v.path)-1]
	}
	return v.path[v.pathIndex+1]
}

// Projected 返回车辆按 Advance 的规则前进一步后的位置，不修改车辆状态
func (v *Vehicle) Projected(step, epsilon float64) r2.Vec {
	if v.AtTerminal() {
		return v.pos
	}
	d := r2.Sub(v.Target(), v.pos)
	dist := r2.Norm(d)
	if dist < epsilon {
		return v.Target()
	}
	return r2.Add(v.pos, r2.Scale(step, r2.Unit(d)))
}

// Advance 沿路径前进一步
// 距目标小于epsilon时吸附到目标点并推进路径下标，到达终点后标记为passed
func (v *Vehicle) Advance(step, epsilon float64) {
	if v.passed {
		return
	}
	if v.AtTerminal() {
		v.passed = true
		return
	}
	target := v.Target()
	d := r2.Sub(target, v.pos)
	dist := r2.Norm(d)
	if dist < epsilon {
		v.pos = target
		v.pathIndex++
		return
	}
	v.pos = r2.Add(v.pos, r2.Scale(step, r2.Unit(d)))
}

// Hold 记录一个停车的时间步
func (v *Vehicle) Hold() {
	v.stoppedTicks++
}

// SetPosition 直接设置车辆位置，仅用于测试和场景构造
func (v *Vehicle) SetPosition(pos r2.Vec) {
	v.pos = pos
}

// VehicleView 是车辆的只读快照，供渲染和记录使用
type VehicleView struct {
	ID           uint64
	Approach     Approach
	Turn         Turn
	Position     r2.Vec
	Passed       bool
	PathIndex    int
	SpawnTick    int
	StoppedTicks int
	Path         []r2.Vec
}

// View 返回车辆快照
func (v *Vehicle) View() VehicleView {
	return VehicleView{
		ID:           v.id,
		Approach:     v.approach,
		Turn:         v.turn,
		Position:     v.pos,
		Passed:       v.passed,
		PathIndex:    v.pathIndex,
		SpawnTick:    v.spawnTick,
		StoppedTicks: v.stoppedTicks,
		Path:         v.Path(),
	}
}
