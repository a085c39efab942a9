package simulator

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"crossroadSim/config"
	"crossroadSim/log"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, filename string) [][]string {
	t.Helper()
	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func newRunnerConfig(t *testing.T) *config.Config {
	log.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.Simulation.MaxTicks = 600
	cfg.Logging.DataDir = t.TempDir()
	cfg.Logging.IntervalWriteOtherData = 60
	cfg.Logging.IntervalWriteToLog = 300
	cfg.Logging.TraceEnabled = true
	return cfg
}

func TestRunnerRun(t *testing.T) {
	cfg := newRunnerConfig(t)
	r, err := NewRunner(cfg, 3)
	require.NoError(t, err)

	_, err = uuid.Parse(r.RunID())
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), r.World().Seed())

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 600, r.World().TickCount())

	files := r.Recorder().Files()
	assert.Equal(t, cfg.Logging.DataDir, filepath.Dir(files.System))

	// 表头加上每60个时间步一条采样
	system := readCSV(t, files.System)
	assert.Len(t, system, 1+10)
	assert.Equal(t, "60", system[1][0])

	signals := readCSV(t, files.Signal)
	assert.Greater(t, len(signals), 1)

	trips := readCSV(t, files.Trip)
	assert.Greater(t, len(trips), 1)
	assert.Equal(t, len(trips)-1, r.World().State().Evicted)

	trace := readCSV(t, files.Trace)
	assert.Greater(t, len(trace), 1)
}

func TestRunnerCancelled(t *testing.T) {
	cfg := newRunnerConfig(t)
	r, err := NewRunner(cfg, 3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.World().TickCount())

	// 取消时仍写入最终状态
	assert.Len(t, readCSV(t, r.Recorder().Files().System), 2)
}

func TestRunnerDistinctRuns(t *testing.T) {
	cfg := newRunnerConfig(t)
	a, err := NewRunner(cfg, 1)
	require.NoError(t, err)
	b, err := NewRunner(cfg, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID(), b.RunID())
	assert.NotEqual(t, a.Recorder().Files().Trip, b.Recorder().Files().Trip)
}

func TestNewRunnerError(t *testing.T) {
	cfg := newRunnerConfig(t)
	blocker := filepath.Join(cfg.Logging.DataDir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.Logging.DataDir = filepath.Join(blocker, "sub")

	_, err := NewRunner(cfg, 1)
	assert.Error(t, err)
}
