package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewVehicle(t *testing.T) {
	path := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 10}}
	v := NewVehicle(3, West, Left, path, 42)

	assert.Equal(t, uint64(3), v.ID())
	assert.Equal(t, West, v.Approach())
	assert.Equal(t, Left, v.Turn())
	assert.Equal(t, path[0], v.Position())
	assert.Equal(t, 0, v.PathIndex())
	assert.Equal(t, 42, v.SpawnTick())
	assert.False(t, v.Passed())

	// 修改传入路径不影响车辆
	path[1] = r2.Vec{X: 99, Y: 99}
	assert.Equal(t, r2.Vec{X: 0, Y: 10}, v.Target())

	assert.Panics(t, func() { NewVehicle(1, North, Left, []r2.Vec{{}}, 0) })
}

func TestVehicleAdvance(t *testing.T) {
	path := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 7, Y: 10}}
	v := NewVehicle(1, North, Left, path, 0)

	v.Advance(5, 5)
	assert.Equal(t, r2.Vec{X: 0, Y: 5}, v.Position())
	assert.Equal(t, 0, v.PathIndex())

	v.Advance(5, 5)
	assert.Equal(t, r2.Vec{X: 0, Y: 10}, v.Position())
	assert.Equal(t, 0, v.PathIndex())

	// 到达路径点后吸附并推进下标
	v.Advance(5, 5)
	assert.Equal(t, r2.Vec{X: 0, Y: 10}, v.Position())
	assert.Equal(t, 1, v.PathIndex())
	assert.True(t, v.OnExitLeg())

	v.Advance(5, 5)
	assert.InDelta(t, 5.0, v.Position().X, 1e-9)

	// 剩余距离2，小于epsilon
	v.Advance(5, 5)
	assert.Equal(t, r2.Vec{X: 7, Y: 10}, v.Position())
	assert.True(t, v.AtTerminal())
	assert.False(t, v.Passed())

	v.Advance(5, 5)
	assert.True(t, v.Passed())
	assert.Equal(t, r2.Vec{X: 7, Y: 10}, v.Position())

	v.Advance(5, 5)
	assert.Equal(t, 2, v.PathIndex())
}

func TestVehicleProjected(t *testing.T) {
	path := []r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 0}}
	v := NewVehicle(1, East, Straight, path, 0)

	// 不超过目标点
	assert.Equal(t, r2.Vec{X: 3, Y: 0}, v.Projected(5, 5))
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, v.Position())

	v.SetPosition(r2.Vec{X: 3, Y: 0})
	assert.Equal(t, r2.Vec{X: 3, Y: 0}, v.Projected(5, 5))
}

func TestVehicleProjectedMatchesAdvance(t *testing.T) {
	l := testLayout()
	steps := []struct{ step, epsilon float64 }{{5, 5}, {3, 5}, {2, 7}}
	for _, s := range steps {
		for _, turn := range Turns {
			v := NewVehicle(1, West, turn, GeneratePath(l, West, turn), 0)
			for !v.AtTerminal() {
				want := v.Projected(s.step, s.epsilon)
				v.Advance(s.step, s.epsilon)
				require.Equal(t, want, v.Position(), "step %v epsilon %v turn %v", s.step, s.epsilon, turn)
			}
		}
	}
}

func TestVehicleFollowsGeneratedPath(t *testing.T) {
	l := testLayout()
	for _, a := range Approaches {
		for _, turn := range Turns {
			path := GeneratePath(l, a, turn)
			v := NewVehicle(1, a, turn, path, 0)
			last := v.PathIndex()
			for i := 0; i < 1000 && !v.Passed(); i++ {
				v.Advance(l.StepDistance, l.SnapEpsilon)
				require.GreaterOrEqual(t, v.PathIndex(), last)
				last = v.PathIndex()
			}
			assert.True(t, v.Passed(), "%v %v", a, turn)
			assert.Equal(t, path[len(path)-1], v.Position())
		}
	}
}

func TestVehicleHoldAndView(t *testing.T) {
	v := NewVehicle(9, South, Right, GeneratePath(testLayout(), South, Right), 5)
	v.Hold()
	v.Hold()

	view := v.View()
	assert.Equal(t, uint64(9), view.ID)
	assert.Equal(t, 2, view.StoppedTicks)
	assert.Equal(t, 5, view.SpawnTick)
	assert.Len(t, view.Path, 4)

	view.Path[0] = r2.Vec{}
	assert.NotEqual(t, r2.Vec{}, v.Path()[0])
}
