//go:build linux

package proc

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snapshot is everything read during one polling cycle.
type Snapshot struct {
	At       time.Time
	Uptime   float64
	Load     LoadAverage
	CPU      CPUSample
	CPUUsage float64 // in [0,1], since the previous Sample
	Memory   MemoryStats
	Tasks    TaskStats
}

// Collector reads snapshots from one root and keeps the previous CPU sample
// between calls. It is not safe for concurrent use; serialize Sample calls.
type Collector struct {
	root string
	prev CPUSample
}

// NewCollector seeds the CPU baseline so that the first Sample reports the
// usage since construction rather than since boot.
func NewCollector(root string) *Collector {
	if root == "" {
		root = DefaultRoot
	}
	return &Collector{root: root, prev: ReadCPUSample(root)}
}

// Root returns the directory the collector reads from.
func (c *Collector) Root() string { return c.root }

// Sample reads uptime, load, CPU, memory and tasks. The task walk runs
// alongside the metric reads. Metric read failures degrade to zero values;
// the returned error is either ctx's or the task enumerator's.
func (c *Collector) Sample(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{At: time.Now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tasks, err := ReadTasks(c.root)
		if err != nil {
			return err
		}
		snap.Tasks = tasks
		return nil
	})
	g.Go(func() error {
		for _, read := range []func(){
			func() { snap.Uptime = Uptime(c.root) },
			func() { snap.Load = ReadLoadAverage(c.root) },
			func() { snap.CPUUsage, snap.CPU = SampleCPU(c.root, c.prev) },
			func() { snap.Memory = ReadMemoryStats(c.root) },
		} {
			if err := ctx.Err(); err != nil {
				return err
			}
			read()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	c.prev = snap.CPU
	return snap, nil
}
