//go:build linux

package proc

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Sample(t *testing.T) {
	r := newFakeRoot(t)
	r.write(uptimePath, "90061.00 1000.00\n")
	r.write(loadavgPath, "1.00 0.50 0.25 1/100 1234\n")
	r.write(statPath, "cpu  100 0 100 800 0 0 0 0 0 0\n")
	r.write(meminfoPath, "MemTotal: 16777216 kB\nMemAvailable: 8388608 kB\n")
	r.task("1", "init", "S (sleeping)", 0)
	r.task("2", "worker", "R (running)", 33)

	col := NewCollector(r.dir)
	assert.Equal(t, r.dir, col.Root())

	// first tick: counters unchanged since construction
	snap, err := col.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.CPUUsage)
	assert.Equal(t, "1 days, 1 hours, 1 minutes, 1 seconds", FormatUptime(snap.Uptime))
	assert.Equal(t, LoadAverage{One: 1, Five: 0.5, Fifteen: 0.25}, snap.Load)
	assert.InDelta(t, 8.0, snap.Memory.UsedGB, 1e-12)
	assert.Equal(t, 2, snap.Tasks.Total)
	assert.Len(t, snap.Tasks.Active, 1)
	assert.False(t, snap.At.IsZero())

	// second tick: 200 more jiffies, 50 of them idle
	r.write(statPath, "cpu  175 0 175 850 0 0 0 0 0 0\n")
	snap, err = col.Sample(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.75, snap.CPUUsage, 1e-12)
	assert.Equal(t, CPUSample{Total: 1200, Idle: 850}, snap.CPU)

	// counter reset
	r.write(statPath, "cpu  1 0 1 8 0 0 0 0 0 0\n")
	snap, err = col.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.CPUUsage)
}

func TestCollector_SampleMissingMetricsDegrade(t *testing.T) {
	r := newFakeRoot(t)
	r.task("3", "only", "R (running)", 0)

	snap, err := NewCollector(r.dir).Sample(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.Uptime)
	assert.Equal(t, LoadAverage{}, snap.Load)
	assert.Equal(t, MemoryStats{}, snap.Memory)
	assert.Equal(t, 1, snap.Tasks.Running)
}

func TestCollector_SampleRootGone(t *testing.T) {
	r := newFakeRoot(t)
	col := NewCollector(r.dir)
	require.NoError(t, os.RemoveAll(r.dir))

	_, err := col.Sample(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTaskRoot))
}

func TestCollector_SampleCanceled(t *testing.T) {
	col := NewCollector(newFakeRoot(t).dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := col.Sample(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCollector_LiveHost(t *testing.T) {
	if _, err := os.Stat("/proc/stat"); err != nil {
		t.Skip("no procfs on this host")
	}
	col := NewCollector("")
	time.Sleep(20 * time.Millisecond)

	snap, err := col.Sample(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.CPUUsage, 0.0)
	assert.LessOrEqual(t, snap.CPUUsage, 1.0)
	assert.Greater(t, snap.Memory.TotalGB, 0.0)
	assert.GreaterOrEqual(t, snap.Tasks.Total, 1)
	assert.Len(t, snap.Tasks.Active, snap.Tasks.Running+snap.Tasks.Waiting+snap.Tasks.Stopped+snap.Tasks.Zombie)
}
