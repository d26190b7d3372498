//go:build linux

package monitor

import (
	"fmt"
	"math"
	"testing"

	"github.com/ja7ad/inspector/pkg/system/proc"
	"github.com/ja7ad/inspector/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(cpu float64, usedKiB, totalKiB uint64, tasks, active int) proc.Snapshot {
	s := proc.Snapshot{CPUUsage: cpu}
	s.Memory.Total = types.FromKiB(totalKiB)
	s.Memory.Available = types.FromKiB(totalKiB - usedKiB)
	s.Memory.TotalGB = s.Memory.Total.GB()
	s.Memory.UsedGB = s.Memory.Total.Sub(s.Memory.Available).GB()
	s.Load = proc.LoadAverage{One: cpu * 4}
	s.Tasks.Total = tasks
	s.Tasks.Active = make([]proc.TaskInfo, active)
	return s
}

func TestAccumulator_Sequence_WithLogs(t *testing.T) {
	acc := New(nil)

	snaps := []proc.Snapshot{
		snapshot(0.10, 4<<20, 16<<20, 300, 1),
		snapshot(0.25, 6<<20, 16<<20, 310, 3),
		snapshot(0.50, 8<<20, 16<<20, 320, 2),
		snapshot(0.80, 12<<20, 16<<20, 330, 6),
	}

	var sumCPU, sumMem float64
	t.Logf("# tick,  cpu,  mem | tasks active")
	for i, s := range snaps {
		res := acc.Apply(s)
		require.InDelta(t, s.CPUUsage, res.CPUUsage, 1e-12, "no smoothing by default (tick %d)", i)
		sumCPU += res.CPUUsage
		sumMem += res.MemUsage
		t.Logf("%5d, %4.2f, %4.2f | %5d %6d", i+1, res.CPUUsage, res.MemUsage, res.Tasks, res.Active)
	}

	avg := acc.Averages()
	n := float64(len(snaps))
	assert.Equal(t, 4, acc.Count())
	assert.InDelta(t, sumCPU/n, avg.CPUUsage, 1e-12)
	assert.InDelta(t, sumMem/n, avg.MemUsage, 1e-12)
	assert.InDelta(t, 1.65, avg.LoadOne, 1e-12)
	assert.Equal(t, 315, avg.Tasks)
	assert.Equal(t, 3, avg.Active)
	assert.Equal(t, 0.80, acc.PeakCPU())
}

func TestAccumulator_Smoothing(t *testing.T) {
	acc := New(&Config{Alpha: 0.5})

	assert.InDelta(t, 0.2, acc.Apply(snapshot(0.2, 1, 2, 1, 0)).CPUUsage, 1e-12)
	assert.InDelta(t, 0.5, acc.Apply(snapshot(0.8, 1, 2, 1, 0)).CPUUsage, 1e-12)
	assert.InDelta(t, 0.25, acc.Apply(snapshot(0.0, 1, 2, 1, 0)).CPUUsage, 1e-12)
}

func TestAccumulator_ClampsAndDefaults(t *testing.T) {
	// out of range alpha falls back to no smoothing
	acc := New(&Config{Alpha: 3})
	assert.Nil(t, acc.ema)

	res := acc.Apply(proc.Snapshot{CPUUsage: math.NaN()})
	assert.Equal(t, 0.0, res.CPUUsage)
	assert.Equal(t, 0.0, res.MemUsage, "zero total memory reads as unused")

	res = acc.Apply(proc.Snapshot{CPUUsage: 7})
	assert.Equal(t, 1.0, res.CPUUsage)
}

func TestAccumulator_EmptyAverages(t *testing.T) {
	assert.Equal(t, Result{}, New(nil).Averages())
}

func ExampleAccumulator() {
	acc := New(&Config{Alpha: 0})
	s := proc.Snapshot{CPUUsage: 0.5}
	s.Memory.TotalGB, s.Memory.UsedGB = 16, 4
	r := acc.Apply(s)
	fmt.Printf("cpu=%.2f mem=%.2f\n", r.CPUUsage, r.MemUsage)
	// Output: cpu=0.50 mem=0.25
}
