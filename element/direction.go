package element

import "fmt"

// Approach 表示车辆驶入路口的方向
type Approach int

const (
	North Approach = iota // 从北侧驶入，向南行驶
	South                 // 从南侧驶入，向北行驶
	East                  // 从东侧驶入，向西行驶
	West                  // 从西侧驶入，向东行驶
)

// Approaches 按信号灯轮转顺序列出全部方向
var Approaches = [4]Approach{North, South, East, West}

// Next 返回轮转顺序中的下一个方向 North → South → East → West → North
func (a Approach) Next() Approach {
	return Approaches[(int(a)+1)%len(Approaches)]
}

// Signal 返回该方向绿灯对应的信号状态
func (a Approach) Signal() Signal {
	return Signal(a)
}

// Valid 判断是否为合法方向
func (a Approach) Valid() bool {
	return a >= North && a <= West
}

func (a Approach) String() string {
	switch a {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Approach(%d)", int(a))
}

// Turn 表示车辆在路口的转向
type Turn int

const (
	Left Turn = iota
	Right
	Straight
)

// Turns 列出全部转向，用于均匀随机选择
var Turns = [3]Turn{Left, Right, Straight}

func (t Turn) String() string {
	switch t {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Straight:
		return "Straight"
	}
	return fmt.Sprintf("Turn(%d)", int(t))
}

// Signal 表示信号灯的通行权状态：四个方向之一获得绿灯，或全红清空
type Signal int

const (
	SignalNorth Signal = Signal(North)
	SignalSouth Signal = Signal(South)
	SignalEast  Signal = Signal(East)
	SignalWest  Signal = Signal(West)

	// SignalClearance 全红清空相位，不授予任何方向通行权
	SignalClearance Signal = 4
)

// Approach 返回获得绿灯的方向，全红时第二个返回值为false
func (s Signal) Approach() (Approach, bool) {
	if s == SignalClearance {
		return 0, false
	}
	return Approach(s), true
}

// Allows 判断该信号状态下指定方向是否可以通行
func (s Signal) Allows(a Approach) bool {
	green, ok := s.Approach()
	return ok && green == a
}

func (s Signal) String() string {
	if s == SignalClearance {
		return "AllRed"
	}
	return Approach(s).String()
}
