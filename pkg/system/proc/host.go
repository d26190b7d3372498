//go:build linux

package proc

import (
	"errors"
	"strings"

	"github.com/ja7ad/inspector/pkg/system/cgroup"
	"github.com/ja7ad/inspector/pkg/system/util"
)

// HostInfo identifies the machine. It is read once at startup.
type HostInfo struct {
	Hostname      string
	KernelVersion string
	CPUModel      string
	CPUUnits      int
	Cgroup        string
}

// Hostname reads <root>/sys/kernel/hostname.
func Hostname(root string) (string, error) {
	p := path(root, hostnamePath)
	line, err := util.ReadLine(p)
	if err != nil {
		return "", notFound(p, err)
	}
	return strings.TrimSpace(line), nil
}

// KernelVersion reads <root>/sys/kernel/osrelease and keeps the version
// prefix only: "6.8.0-45-generic" becomes "6.8.0".
func KernelVersion(root string) (string, error) {
	p := path(root, osreleasePath)
	line, err := util.ReadLine(p)
	if err != nil {
		return "", notFound(p, err)
	}
	version, _, _ := strings.Cut(strings.TrimSpace(line), "-")
	return version, nil
}

// CPUModel returns the value of the last "model name" line in cpuinfo.
// SMP systems repeat the line once per core; the final one wins.
func CPUModel(root string) (string, error) {
	p := path(root, cpuinfoPath)
	var model string
	err := util.ScanLines(p, func(line string) bool {
		if label, value, ok := util.SplitLabel(line); ok && label == "model name" {
			model = value
		}
		return true
	})
	if err != nil {
		return "", notFound(p, err)
	}
	return model, nil
}

// CPUUnits counts the "processor" lines in cpuinfo. A missing file counts
// as zero units.
func CPUUnits(root string) int {
	var n int
	_ = util.ScanLines(path(root, cpuinfoPath), func(line string) bool {
		if label, _, ok := util.SplitLabel(line); ok && label == "processor" {
			n++
		}
		return true
	})
	return n
}

// ReadHostInfo fills every field it can. The returned error joins the
// failures of the individual extractors; the HostInfo is usable either way.
func ReadHostInfo(root string) (HostInfo, error) {
	var (
		info HostInfo
		errs []error
		err  error
	)
	if info.Hostname, err = Hostname(root); err != nil {
		errs = append(errs, err)
	}
	if info.KernelVersion, err = KernelVersion(root); err != nil {
		errs = append(errs, err)
	}
	if info.CPUModel, err = CPUModel(root); err != nil {
		errs = append(errs, err)
	}
	info.CPUUnits = CPUUnits(root)

	if ver, _, err := cgroup.Detect(root); err == nil {
		info.Cgroup = ver.String()
	} else {
		info.Cgroup = cgroup.Unsupported.String()
	}
	return info, errors.Join(errs...)
}
