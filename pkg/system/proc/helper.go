//go:build linux

package proc

import (
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultRoot is where the kernel exposes process information.
const DefaultRoot = "/proc"

// Relative record paths under the root.
const (
	hostnamePath  = "sys/kernel/hostname"
	osreleasePath = "sys/kernel/osrelease"
	cpuinfoPath   = "cpuinfo"
	uptimePath    = "uptime"
	loadavgPath   = "loadavg"
	statPath      = "stat"
	meminfoPath   = "meminfo"
	statusFile    = "status"
)

func path(root string, elem ...string) string {
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

// parseFloat is atof-like: garbage yields 0.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseUint is atol-like for counters: garbage or negatives yield 0.
func parseUint(s string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
