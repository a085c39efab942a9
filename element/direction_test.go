package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproachNext(t *testing.T) {
	assert.Equal(t, South, North.Next())
	assert.Equal(t, East, South.Next())
	assert.Equal(t, West, East.Next())
	assert.Equal(t, North, West.Next())
}

func TestSignalMapping(t *testing.T) {
	for _, a := range Approaches {
		s := a.Signal()
		back, ok := s.Approach()
		assert.True(t, ok)
		assert.Equal(t, a, back)
		assert.True(t, s.Allows(a))
		assert.False(t, s.Allows(a.Next()))
	}

	_, ok := SignalClearance.Approach()
	assert.False(t, ok)
	for _, a := range Approaches {
		assert.False(t, SignalClearance.Allows(a))
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "North", North.String())
	assert.Equal(t, "West", SignalWest.String())
	assert.Equal(t, "AllRed", SignalClearance.String())
	assert.Equal(t, "Straight", Straight.String())
	assert.Equal(t, "Approach(9)", Approach(9).String())
	assert.False(t, Approach(9).Valid())
}
