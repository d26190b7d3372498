//go:build linux

package proc

import (
	"fmt"
	"math"
	"strings"

	"github.com/ja7ad/inspector/pkg/system/util"
	"github.com/ja7ad/inspector/pkg/types"
)

// LoadAverage holds the 1, 5 and 15 minute run-queue averages.
type LoadAverage struct {
	One     float64
	Five    float64
	Fifteen float64
}

// CPUSample is a pair of aggregate jiffy counters from /proc/stat.
// Both are monotonic; utilization comes from the delta of two samples.
type CPUSample struct {
	Total uint64
	Idle  uint64
}

// MemoryStats reports memory in gigabytes (1024 base) alongside the raw sizes.
type MemoryStats struct {
	Total     types.Bytes
	Available types.Bytes
	TotalGB   float64
	UsedGB    float64
}

// UsedFraction returns UsedGB/TotalGB in [0,1].
func (m MemoryStats) UsedFraction() float64 {
	return util.Clamp01(util.SafeDiv(m.UsedGB, m.TotalGB))
}

// Uptime returns the system uptime in seconds, or 0 if it cannot be read.
func Uptime(root string) float64 {
	line, err := util.ReadLine(path(root, uptimePath))
	if err != nil {
		return 0
	}
	v := parseFloat(util.NextToken(&line, " \t"))
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

const (
	secsPerMinute = 60
	secsPerHour   = 60 * secsPerMinute
	secsPerDay    = 24 * secsPerHour
	secsPerYear   = 365 * secsPerDay
)

// FormatUptime renders seconds as "Y years, D days, H hours, M minutes,
// S seconds". Years, days and hours are left out while zero; minutes and
// seconds are always present. Fractions are truncated.
func FormatUptime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	t := int64(seconds)

	years := t / secsPerYear
	t %= secsPerYear
	days := t / secsPerDay
	t %= secsPerDay
	hours := t / secsPerHour
	t %= secsPerHour
	mins := t / secsPerMinute
	secs := t % secsPerMinute

	var b strings.Builder
	if years > 0 {
		fmt.Fprintf(&b, "%d years, ", years)
	}
	if days > 0 {
		fmt.Fprintf(&b, "%d days, ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%d hours, ", hours)
	}
	fmt.Fprintf(&b, "%d minutes, %d seconds", mins, secs)
	return b.String()
}

// ReadLoadAverage parses the first three fields of <root>/loadavg. Missing
// or malformed fields stay zero.
func ReadLoadAverage(root string) LoadAverage {
	var lavg LoadAverage
	line, err := util.ReadLine(path(root, loadavgPath))
	if err != nil {
		return lavg
	}
	for _, dst := range []*float64{&lavg.One, &lavg.Five, &lavg.Fifteen} {
		tok := util.NextToken(&line, " \t")
		if tok == "" {
			break
		}
		v := parseFloat(tok)
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		*dst = v
	}
	return lavg
}

// ReadCPUSample reads the aggregate "cpu" line of <root>/stat:
//
//	cpu  user nice system idle iowait irq softirq steal guest guest_nice
//
// Idle is the fourth counter and Total the sum of all of them. An
// unreadable file gives a zero sample.
func ReadCPUSample(root string) CPUSample {
	var s CPUSample
	_ = util.ScanLines(path(root, statPath), func(line string) bool {
		rest := line
		if util.NextToken(&rest, " \t") != "cpu" {
			return true
		}
		for i := 0; ; i++ {
			tok := util.NextToken(&rest, " \t")
			if tok == "" {
				break
			}
			v := parseUint(tok)
			if i == 3 {
				s.Idle = v
			}
			s.Total += v
		}
		return false
	})
	return s
}

// CPUUsage returns 1 - Δidle/Δtotal in [0,1]. A zero total delta, a
// counter that went backwards, or an idle delta larger than the total
// delta all yield exactly 0.
func CPUUsage(prev, curr CPUSample) float64 {
	if curr.Total <= prev.Total || curr.Idle < prev.Idle {
		return 0
	}
	dTotal := util.DeltaU64(curr.Total, prev.Total)
	dIdle := util.DeltaU64(curr.Idle, prev.Idle)
	if dIdle > dTotal {
		return 0
	}
	usage := 1 - util.SafeDiv(float64(dIdle), float64(dTotal))
	if math.IsNaN(usage) || usage < 0 {
		return 0
	}
	return util.Clamp01(usage)
}

// SampleCPU reads the current counters and returns the usage since prev
// together with the new sample, which the caller keeps for the next call.
func SampleCPU(root string, prev CPUSample) (float64, CPUSample) {
	curr := ReadCPUSample(root)
	return CPUUsage(prev, curr), curr
}

// ReadMemoryStats parses MemTotal and MemAvailable from <root>/meminfo.
// Used memory is Total-Available and never drops below zero, even when the
// kernel transiently reports more available than total memory.
func ReadMemoryStats(root string) MemoryStats {
	var total, avail uint64
	_ = util.ScanLines(path(root, meminfoPath), func(line string) bool {
		label, value, ok := util.SplitLabel(line)
		if !ok {
			return true
		}
		switch label {
		case "MemTotal":
			total = parseUint(util.NextToken(&value, " \t"))
		case "MemAvailable":
			avail = parseUint(util.NextToken(&value, " \t"))
		}
		return true
	})

	m := MemoryStats{
		Total:     types.FromKiB(total),
		Available: types.FromKiB(avail),
	}
	m.TotalGB = m.Total.GB()
	m.UsedGB = m.Total.Sub(m.Available).GB()
	return m
}
