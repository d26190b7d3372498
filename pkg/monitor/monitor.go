//go:build linux

package monitor

import (
	"github.com/ja7ad/inspector/pkg/system/proc"
	"github.com/ja7ad/inspector/pkg/system/util"
)

// Accumulator turns snapshots into display values and keeps running
// averages for the end-of-session summary.
type Accumulator struct {
	cfg   *Config
	ema   *util.EMA
	count int

	sumCPU    float64
	sumMem    float64
	sumLoad   float64
	sumTasks  float64
	sumActive float64
	peakCPU   float64
}

// New creates an accumulator with the given config.
// Alpha outside [0..1] is treated as unset and defaulted.
func New(cfg *Config) *Accumulator {
	base := _defaultConfig()

	if cfg != nil && cfg.Alpha >= 0 && cfg.Alpha <= 1 {
		base.Alpha = cfg.Alpha
	}

	a := &Accumulator{cfg: base}
	if base.Alpha > 0 {
		a.ema = util.NewEMA(base.Alpha)
	}
	return a
}

// Apply folds one snapshot into the running totals and returns its display
// values.
func (a *Accumulator) Apply(snap proc.Snapshot) Result {
	cpu := util.Clamp01(snap.CPUUsage)
	if a.ema != nil {
		cpu = util.Clamp01(a.ema.Next(cpu))
	}

	res := Result{
		CPUUsage: cpu,
		MemUsage: snap.Memory.UsedFraction(),
		LoadOne:  snap.Load.One,
		Tasks:    snap.Tasks.Total,
		Active:   len(snap.Tasks.Active),
	}

	a.count++
	a.sumCPU += res.CPUUsage
	a.sumMem += res.MemUsage
	a.sumLoad += res.LoadOne
	a.sumTasks += float64(res.Tasks)
	a.sumActive += float64(res.Active)
	if res.CPUUsage > a.peakCPU {
		a.peakCPU = res.CPUUsage
	}
	return res
}

// Count returns how many snapshots have been applied.
func (a *Accumulator) Count() int { return a.count }

// PeakCPU returns the highest CPU usage seen so far.
func (a *Accumulator) PeakCPU() float64 { return a.peakCPU }

// Averages returns the mean of every Result field over all applied
// snapshots. Task counts are rounded down.
func (a *Accumulator) Averages() Result {
	if a.count == 0 {
		return Result{}
	}
	n := float64(a.count)
	return Result{
		CPUUsage: a.sumCPU / n,
		MemUsage: a.sumMem / n,
		LoadOne:  a.sumLoad / n,
		Tasks:    int(a.sumTasks / n),
		Active:   int(a.sumActive / n),
	}
}
