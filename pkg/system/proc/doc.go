// Package proc extracts host and task statistics from the text records the
// Linux kernel exposes under /proc. Every reader takes the root directory as
// its first argument, so tests (or a chroot'ed monitor) can point it at a
// synthetic tree that mirrors the expected relative paths.
//
// Overview
//
//   - Static info (host.go), read once at startup:
//     Hostname       : sys/kernel/hostname, first line
//     KernelVersion  : sys/kernel/osrelease, version prefix before the first '-'
//     CPUModel       : cpuinfo, value of the last "model name" line
//     CPUUnits       : cpuinfo, number of "processor" lines (0 if absent)
//     ReadHostInfo   : all of the above plus the cgroup mode, best-effort
//
//   - Dynamic metrics (metrics.go), read every polling cycle:
//     Uptime          : uptime, first field in seconds
//     FormatUptime    : "1 days, 1 hours, 1 minutes, 1 seconds"
//     ReadLoadAverage : loadavg, 1/5/15 minute averages
//     ReadCPUSample   : stat, aggregate total and idle jiffies
//     CPUUsage        : 1 - Δidle/Δtotal between two samples
//     ReadMemoryStats : meminfo, MemTotal and MemAvailable in GB
//
//   - Tasks (tasks.go):
//     ReadTasks walks the numeric directories, parses <pid>/status and
//     classifies each task by its State line. Running, disk-sleep, stopped,
//     tracing-stop and zombie tasks are listed in TaskStats.Active; sleeping
//     and idle tasks are only counted.
//
//   - Collector (collector.go):
//     Sample(ctx) (Snapshot, error) reads one full snapshot and carries the
//     previous CPU sample forward. Use it from a ticker loop.
//
// Errors (errs.go)
//
//	ErrNotFound   : a static record could not be opened (Hostname, KernelVersion, CPUModel, ReadTask)
//	ErrNoTaskRoot : the task root itself is unreadable (ReadTasks, Collector.Sample)
//
// Dynamic readers never fail: a monitor must keep drawing with partial data,
// so unreadable files give zero values, and CPUUsage collapses a zero,
// negative or NaN delta to 0.
//
// Example: one-shot sampling
//
//	/*
//	col := proc.NewCollector(proc.DefaultRoot)
//	time.Sleep(time.Second)
//	snap, err := col.Sample(ctx)
//	if err != nil { log.Fatal(err) }
//	fmt.Printf("cpu=%.1f%% mem=%.2f/%.2f GB tasks=%d\n",
//	    snap.CPUUsage*100, snap.Memory.UsedGB, snap.Memory.TotalGB, snap.Tasks.Total)
//	*/
//
// Package import path: github.com/ja7ad/inspector/pkg/system/proc
package proc
