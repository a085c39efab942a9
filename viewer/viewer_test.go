package viewer

import (
	"testing"

	"crossroadSim/config"
	"crossroadSim/element"
	"crossroadSim/simulator"

	"github.com/stretchr/testify/assert"
)

func TestSpawnKeysCoverAllApproaches(t *testing.T) {
	seen := map[element.Approach]bool{}
	for _, sk := range spawnKeys {
		seen[sk.approach] = true
	}
	assert.Len(t, seen, 4)
}

func TestTurnColorsDistinct(t *testing.T) {
	assert.NotEqual(t, turnColor(element.Left), turnColor(element.Right))
	assert.NotEqual(t, turnColor(element.Left), turnColor(element.Straight))
	assert.NotEqual(t, turnColor(element.Right), turnColor(element.Straight))
}

func TestSignalColor(t *testing.T) {
	assert.Equal(t, greenColor, signalColor(element.SignalEast, element.East))
	assert.Equal(t, redColor, signalColor(element.SignalEast, element.West))
	for _, a := range element.Approaches {
		assert.Equal(t, redColor, signalColor(element.SignalClearance, a))
	}
}

func TestHUDLine(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Seed = 1
	w := simulator.NewWorld(cfg)
	w.SpawnVehicle(element.North)

	assert.Equal(t, "Signal: North 0.0s/3.0s  Vehicles: 1  Tick: 0  Generation: on", hudLine(w, true))
	assert.Contains(t, hudLine(w, false), "Generation: off")
}
