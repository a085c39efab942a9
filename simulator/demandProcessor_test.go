package simulator

import (
	"testing"

	"crossroadSim/config"
	"crossroadSim/element"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemandCooldown(t *testing.T) {
	w := newTestWorld()
	d := NewDemand(w, config.Default().Demand, 1)

	require.True(t, d.Request(element.North))
	assert.False(t, d.Request(element.South))

	// 15个时间步不足250ms
	for i := 0; i < 15; i++ {
		w.Tick()
	}
	assert.False(t, d.Request(element.South))

	w.Tick()
	assert.True(t, d.Request(element.South))
	assert.Equal(t, 2, w.VehicleCount())
}

func TestDemandRejectedRequestStillCoolsDown(t *testing.T) {
	w := newTestWorld()
	d := NewDemand(w, config.Default().Demand, 1)

	require.True(t, w.SpawnVehicle(element.West))
	// 生成点被占用，世界拒绝生成
	assert.False(t, d.Request(element.West))
	assert.False(t, d.Request(element.East))
	assert.Equal(t, 1, w.VehicleCount())
}

func TestDemandToggle(t *testing.T) {
	w := newTestWorld()
	d := NewDemand(w, config.Default().Demand, 1)
	require.True(t, d.Enabled())

	assert.False(t, d.Toggle())
	assert.False(t, d.Step())
	assert.Equal(t, 0, w.VehicleCount())

	assert.True(t, d.Toggle())
	assert.True(t, d.Step())
	assert.Equal(t, 1, w.VehicleCount())
}

func TestDemandWeights(t *testing.T) {
	w := newTestWorld()
	cfg := config.Default().Demand
	cfg.Weights = [4]float64{0, 0, 1, 0}
	d := NewDemand(w, cfg, 5)

	for i := 0; i < 100; i++ {
		assert.Equal(t, element.East, d.randomApproach())
	}

	// 权重全为0时均匀选择
	d.weights = [4]float64{}
	seen := map[element.Approach]bool{}
	for i := 0; i < 200; i++ {
		seen[d.randomApproach()] = true
	}
	assert.Len(t, seen, 4)
}

func TestDemandStepSpawnsContinuously(t *testing.T) {
	w := newTestWorld()
	d := NewDemand(w, config.Default().Demand, 3)

	for i := 0; i < 600; i++ {
		d.Step()
		w.Tick()
	}
	s := w.State()
	// 10秒内最多请求40次
	assert.LessOrEqual(t, s.Spawned, uint64(40))
	assert.Greater(t, s.Spawned, uint64(10))
}
