package element

import (
	"math"

	"crossroadSim/config"

	"gonum.org/v1/gonum/spatial/r2"
)

// Layout 描述路口的几何布局，核心逻辑与渲染层共用同一份参数
// 车辆位置均为其包围盒的左上角坐标，y轴向下
type Layout struct {
	Width, Height float64
	RoadWidth     float64
	RoadX, RoadY  float64 // 竖直与水平道路的起始坐标
	Intersection  r2.Box

	// 四条车道的中心线
	NorthboundX float64
	SouthboundX float64
	EastboundY  float64
	WestboundY  float64

	VehicleSize  float64
	SafetyGap    float64
	StopOffset   float64
	EvictMargin  float64
	StepDistance float64
	SnapEpsilon  float64
}

// NewLayout 根据几何配置计算路口布局
func NewLayout(g config.GeometryConfig) Layout {
	roadX := (g.WindowWidth - g.RoadWidth) / 2
	roadY := (g.WindowHeight - g.RoadWidth) / 2
	return Layout{
		Width:     g.WindowWidth,
		Height:    g.WindowHeight,
		RoadWidth: g.RoadWidth,
		RoadX:     roadX,
		RoadY:     roadY,
		Intersection: r2.Box{
			Min: r2.Vec{X: roadX, Y: roadY},
			Max: r2.Vec{X: roadX + g.RoadWidth, Y: roadY + g.RoadWidth},
		},
		NorthboundX:  roadX + g.RoadWidth*3/4,
		SouthboundX:  roadX + g.RoadWidth/4,
		EastboundY:   roadY + g.RoadWidth*3/4,
		WestboundY:   roadY + g.RoadWidth/4,
		VehicleSize:  g.VehicleSize,
		SafetyGap:    g.SafetyGap,
		StopOffset:   g.StopOffset,
		EvictMargin:  g.EvictMargin,
		StepDistance: g.StepDistance,
		SnapEpsilon:  g.SnapEpsilon,
	}
}

// VehicleBox 返回位于pos处车辆的包围盒
func (l Layout) VehicleBox(pos r2.Vec) r2.Box {
	return r2.Box{Min: pos, Max: r2.Vec{X: pos.X + l.VehicleSize, Y: pos.Y + l.VehicleSize}}
}

// Overlaps 判断两个包围盒是否有面积重叠，仅接触边界不算重叠
func Overlaps(a, b r2.Box) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Inflate 将包围盒向四周各扩展d
func Inflate(b r2.Box, d float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: r2.Vec{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// InIntersection 判断车辆包围盒是否与路口区域重叠
func (l Layout) InIntersection(pos r2.Vec) bool {
	return Overlaps(l.VehicleBox(pos), l.Intersection)
}

// OnStopLine 判断车辆是否正压在其驶入方向的路口边界线上
func (l Layout) OnStopLine(a Approach, pos r2.Vec) bool {
	box := l.VehicleBox(pos)
	in := l.Intersection
	switch a {
	case North:
		return box.Min.Y <= in.Min.Y && box.Max.Y > in.Min.Y
	case South:
		return box.Max.Y >= in.Max.Y && box.Min.Y < in.Max.Y
	case East:
		return box.Max.X >= in.Max.X && box.Min.X < in.Max.X
	case West:
		return box.Min.X <= in.Min.X && box.Max.X > in.Min.X
	}
	return false
}

// OffScreen 判断车辆包围盒是否完全位于窗口之外
func (l Layout) OffScreen(pos r2.Vec) bool {
	box := l.VehicleBox(pos)
	return box.Max.X <= 0 || box.Min.X >= l.Width || box.Max.Y <= 0 || box.Min.Y >= l.Height
}

// BeyondMargin 判断车辆是否已超出窗口边缘EvictMargin以外
func (l Layout) BeyondMargin(pos r2.Vec) bool {
	m := l.EvictMargin
	return pos.X <= -m || pos.X >= l.Width+m || pos.Y <= -m || pos.Y >= l.Height+m
}

// LaneLength 返回方向驶入车道在路口之前的长度
func (l Layout) LaneLength(a Approach) float64 {
	switch a {
	case North, South:
		return l.RoadY
	default:
		return l.RoadX
	}
}

// Capacity 返回驶入车道可容纳的排队车辆数
func (l Layout) Capacity(a Approach) int {
	return int(math.Floor(l.LaneLength(a) / (l.VehicleSize + l.SafetyGap)))
}

// Spacing 返回同一车道上相邻车辆之间的最小间距
func (l Layout) Spacing() float64 {
	return l.VehicleSize + l.SafetyGap
}
