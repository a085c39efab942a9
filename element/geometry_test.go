package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestOverlaps(t *testing.T) {
	a := r2.Box{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 20, Y: 20}}

	assert.True(t, Overlaps(a, r2.Box{Min: r2.Vec{X: 10, Y: 10}, Max: r2.Vec{X: 30, Y: 30}}))
	// 仅边界接触
	assert.False(t, Overlaps(a, r2.Box{Min: r2.Vec{X: 20, Y: 0}, Max: r2.Vec{X: 40, Y: 20}}))
	assert.False(t, Overlaps(a, r2.Box{Min: r2.Vec{X: 0, Y: 25}, Max: r2.Vec{X: 20, Y: 45}}))
	// 包含
	assert.True(t, Overlaps(a, r2.Box{Min: r2.Vec{X: 5, Y: 5}, Max: r2.Vec{X: 6, Y: 6}}))
}

func TestInflate(t *testing.T) {
	b := Inflate(r2.Box{Min: r2.Vec{X: 10, Y: 10}, Max: r2.Vec{X: 30, Y: 30}}, 10)
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, b.Min)
	assert.Equal(t, r2.Vec{X: 40, Y: 40}, b.Max)
}

func TestInIntersection(t *testing.T) {
	l := testLayout()
	assert.True(t, l.InIntersection(r2.Vec{X: 390, Y: 290}))
	assert.True(t, l.InIntersection(r2.Vec{X: 335, Y: 240}))  // 角部重叠
	assert.False(t, l.InIntersection(r2.Vec{X: 330, Y: 290})) // 右边界恰好为350
	assert.False(t, l.InIntersection(r2.Vec{X: 390, Y: 350})) // 上边界恰好为350
}

func TestOnStopLine(t *testing.T) {
	l := testLayout()

	assert.True(t, l.OnStopLine(North, r2.Vec{X: 365, Y: 240}))
	assert.False(t, l.OnStopLine(North, r2.Vec{X: 365, Y: 230}))
	assert.False(t, l.OnStopLine(North, r2.Vec{X: 365, Y: 255}))

	assert.True(t, l.OnStopLine(South, r2.Vec{X: 415, Y: 340}))
	assert.False(t, l.OnStopLine(South, r2.Vec{X: 415, Y: 355}))

	assert.True(t, l.OnStopLine(East, r2.Vec{X: 440, Y: 265}))
	assert.False(t, l.OnStopLine(East, r2.Vec{X: 455, Y: 265}))

	assert.True(t, l.OnStopLine(West, r2.Vec{X: 340, Y: 315}))
	assert.False(t, l.OnStopLine(West, r2.Vec{X: 325, Y: 315}))

	assert.False(t, l.OnStopLine(Approach(9), r2.Vec{X: 340, Y: 315}))
}

func TestOffScreenAndMargin(t *testing.T) {
	l := testLayout()

	assert.False(t, l.OffScreen(r2.Vec{X: 0, Y: 0}))
	assert.False(t, l.OffScreen(r2.Vec{X: -19, Y: 100}))
	assert.True(t, l.OffScreen(r2.Vec{X: -20, Y: 100}))
	assert.True(t, l.OffScreen(r2.Vec{X: 800, Y: 100}))
	assert.True(t, l.OffScreen(r2.Vec{X: 100, Y: 600}))

	assert.False(t, l.BeyondMargin(r2.Vec{X: -20, Y: 100}))
	assert.True(t, l.BeyondMargin(r2.Vec{X: -40, Y: 100}))
	assert.True(t, l.BeyondMargin(r2.Vec{X: 100, Y: 640}))
	assert.False(t, l.BeyondMargin(r2.Vec{X: 820, Y: 100}))
}

func TestLaneCapacity(t *testing.T) {
	l := testLayout()
	assert.Equal(t, 30.0, l.Spacing())
	assert.Equal(t, 250.0, l.LaneLength(South))
	assert.Equal(t, 350.0, l.LaneLength(West))
	assert.Equal(t, 8, l.Capacity(South))
	assert.Equal(t, 11, l.Capacity(West))
}
