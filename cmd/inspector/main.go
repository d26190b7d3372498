//go:build linux

package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ja7ad/inspector/pkg/config"
	"github.com/ja7ad/inspector/pkg/monitor"
	"github.com/ja7ad/inspector/pkg/render"
	"github.com/ja7ad/inspector/pkg/system/cgroup"
	"github.com/ja7ad/inspector/pkg/system/proc"
	"github.com/ja7ad/inspector/pkg/system/users"
)

type row struct {
	RunID     string    `json:"run_id"`
	At        time.Time `json:"time"`
	UptimeSec float64   `json:"uptime_sec"`
	Load1     float64   `json:"load_1"`
	Load5     float64   `json:"load_5"`
	Load15    float64   `json:"load_15"`
	CPU       float64   `json:"cpu"`
	MemUsedGB float64   `json:"mem_used_gb"`
	MemTotGB  float64   `json:"mem_total_gb"`
	Tasks     int       `json:"tasks"`
	Running   int       `json:"running"`
	Waiting   int       `json:"waiting"`
	Sleeping  int       `json:"sleeping"`
	Stopped   int       `json:"stopped"`
	Zombie    int       `json:"zombie"`
}

var csvHeader = []string{
	"run_id", "time", "uptime_sec", "load_1", "load_5", "load_15", "cpu",
	"mem_used_gb", "mem_total_gb", "tasks", "running", "waiting", "sleeping", "stopped", "zombie",
}

func (r row) csv() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	i := strconv.Itoa
	return []string{
		r.RunID, r.At.Format(time.RFC3339), f(r.UptimeSec), f(r.Load1), f(r.Load5), f(r.Load15), f(r.CPU),
		f(r.MemUsedGB), f(r.MemTotGB), i(r.Tasks), i(r.Running), i(r.Waiting), i(r.Sleeping), i(r.Stopped), i(r.Zombie),
	}
}

func main() {
	var (
		cfg        = config.Default()
		configPath string
	)

	root := &cobra.Command{
		Use:   "inspector",
		Short: "Periodic procfs system monitor",
		Long: `The inspector tool samples the Linux process-information tree (/proc)
on a fixed interval and reports host identity, CPU and memory utilization,
load averages and the state of every task.

Examples:
  inspector -i 2s -s 0 --tasks
  inspector --root /host/proc --json out/run.json --csv out/run.csv
  inspector --config inspector.yaml --samples 10`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := mergeConfigFile(cmd.Flags(), &cfg, configPath); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, os.Stdout)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file; flags given explicitly win over it")
	bindFlags(root.Flags(), &cfg)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func bindFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Root, "root", cfg.Root, "procfs root directory")
	fs.StringVar(&cfg.Passwd, "passwd", cfg.Passwd, "account file used to resolve task owners")
	fs.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "sampling interval (e.g. 1s, 500ms)")
	fs.IntVarP(&cfg.Samples, "samples", "s", cfg.Samples, "number of samples to collect (0 = run until Ctrl-C)")
	fs.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "number of initial samples to skip from display and averages")
	fs.Float64Var(&cfg.EMA, "ema", cfg.EMA, "EMA alpha for CPU usage smoothing [0..1]")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "format output as a table instead of CSV-like lines")
	fs.BoolVar(&cfg.Tasks, "tasks", cfg.Tasks, "print the active (non-sleeping) tasks every sample")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "maximum task rows per sample (0 = all)")
	fs.StringVar(&cfg.CSV, "csv", cfg.CSV, "write per-tick rows to CSV file")
	fs.StringVar(&cfg.JSON, "json", cfg.JSON, "write per-tick rows to JSON file")
}

// mergeConfigFile loads path over the defaults, then re-applies the flags
// the user set explicitly.
func mergeConfigFile(fs *pflag.FlagSet, cfg *config.Config, path string) error {
	changed := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		if f.Name != "config" {
			changed[f.Name] = f.Value.String()
		}
	})

	fileCfg, err := config.Load(path)
	if err != nil {
		return err
	}
	*cfg = fileCfg

	for name, val := range changed {
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return nil
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	runID := uuid.NewString()

	host, err := proc.ReadHostInfo(cfg.Root)
	if err != nil {
		slog.Warn("host info incomplete", "err", err)
	}
	if unified, err := cgroup.IsUnified(cgroup.DefaultMount); err == nil && unified && host.Cgroup == cgroup.Unsupported.String() {
		host.Cgroup = cgroup.V2.String()
	}
	fmt.Fprintf(out, _console, host.Hostname, host.KernelVersion, host.CPUModel, host.CPUUnits, host.Cgroup,
		runID, time.Now().Format("2006-01-02 15:04:05"))

	col := proc.NewCollector(cfg.Root)
	acc := monitor.New(&monitor.Config{Alpha: cfg.EMA})
	resolver := users.NewResolver(cfg.Passwd)

	// file outputs
	var (
		csvF  *os.File
		csvW  *csv.Writer
		jsonF *os.File
	)
	if cfg.CSV != "" {
		if csvF, err = createOutput(cfg.CSV); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		defer csvF.Close()
		csvW = csv.NewWriter(csvF)
		_ = csvW.Write(csvHeader)
		csvW.Flush()
	}
	if cfg.JSON != "" {
		if jsonF, err = createOutput(cfg.JSON); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		defer jsonF.Close()
		_, _ = jsonF.WriteString("[\n")
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if cfg.Pretty {
		printTableHeader(tw)
	} else {
		fmt.Fprintln(out, "# time, uptime, load1, load5, load15, cpu, mem_used_gb, mem_total_gb, tasks, running, waiting, sleeping, stopped, zombie")
	}

	// Ctrl-C handling
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	writeN := 0 // rows written so far, for JSON commas
	sampleN := 0

loop:
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted")
			break loop

		case <-ticker.C:
			snap, err := col.Sample(ctx)
			if err != nil {
				if ctx.Err() != nil {
					break loop
				}
				slog.Warn("sample error", "err", err)
				continue
			}

			sampleN++
			if cfg.Warmup > 0 && sampleN <= cfg.Warmup {
				continue
			}

			res := acc.Apply(snap)
			r := newRow(runID, snap, res)

			if cfg.Pretty {
				printTableRow(tw, r, res)
			} else {
				printCsvLike(out, r)
			}
			if cfg.Tasks {
				printTasks(out, snap.Tasks, resolver, cfg.Limit)
			}

			if csvW != nil {
				_ = csvW.Write(r.csv())
				csvW.Flush()
			}
			if jsonF != nil {
				b, _ := json.MarshalIndent(r, "  ", "  ")
				if writeN > 0 {
					_, _ = jsonF.WriteString(",\n")
				}
				_, _ = jsonF.WriteString("  ")
				_, _ = jsonF.Write(b)
				writeN++
			}

			// stop condition counts only post-warmup samples
			if cfg.Samples > 0 && (sampleN-cfg.Warmup) >= cfg.Samples {
				break loop
			}
		}
	}

	if jsonF != nil {
		_, _ = jsonF.WriteString("\n]\n")
	}

	avg := acc.Averages()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "inspector avg (over %d samples of ~%s):\n", acc.Count(), cfg.Interval)
	fmt.Fprintf(out, "- cpu:     %s (peak %.1f%%)\n", render.PercentageBar(avg.CPUUsage), acc.PeakCPU()*100)
	fmt.Fprintf(out, "- memory:  %s\n", render.PercentageBar(avg.MemUsage))
	fmt.Fprintf(out, "- load 1m: %.2f\n", avg.LoadOne)
	fmt.Fprintf(out, "- tasks:   %d (%d active)\n", avg.Tasks, avg.Active)
	fmt.Fprintln(out)

	return nil
}

func createOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func newRow(runID string, snap proc.Snapshot, res monitor.Result) row {
	return row{
		RunID:     runID,
		At:        snap.At,
		UptimeSec: snap.Uptime,
		Load1:     snap.Load.One,
		Load5:     snap.Load.Five,
		Load15:    snap.Load.Fifteen,
		CPU:       res.CPUUsage,
		MemUsedGB: snap.Memory.UsedGB,
		MemTotGB:  snap.Memory.TotalGB,
		Tasks:     snap.Tasks.Total,
		Running:   snap.Tasks.Running,
		Waiting:   snap.Tasks.Waiting,
		Sleeping:  snap.Tasks.Sleeping,
		Stopped:   snap.Tasks.Stopped,
		Zombie:    snap.Tasks.Zombie,
	}
}

func printTableHeader(tw *tabwriter.Writer) {
	fmt.Fprintln(tw, "TIME\tUPTIME\tLOAD (1/5/15)\tCPU\tMEM (GB)\tTASKS\tR/D/S/T/Z")
	fmt.Fprintln(tw, "----\t------\t-------------\t---\t--------\t-----\t---------")
	tw.Flush()
}

func printTableRow(tw *tabwriter.Writer, r row, res monitor.Result) {
	fmt.Fprintf(tw, "%s\t%s\t%.2f %.2f %.2f\t%s\t%.2f/%.2f %s\t%d\t%d/%d/%d/%d/%d\n",
		r.At.Format("2006-01-02 15:04:05"), proc.FormatUptime(r.UptimeSec),
		r.Load1, r.Load5, r.Load15,
		render.PercentageBar(res.CPUUsage),
		r.MemUsedGB, r.MemTotGB, render.PercentageBar(res.MemUsage),
		r.Tasks, r.Running, r.Waiting, r.Sleeping, r.Stopped, r.Zombie,
	)
	tw.Flush()
}

func printCsvLike(out io.Writer, r row) {
	fmt.Fprintf(out, "%s, %.0f, %.2f, %.2f, %.2f, %.4f, %.3f, %.3f, %d, %d, %d, %d, %d, %d\n",
		r.At.Format(time.RFC3339), r.UptimeSec, r.Load1, r.Load5, r.Load15, r.CPU,
		r.MemUsedGB, r.MemTotGB, r.Tasks, r.Running, r.Waiting, r.Sleeping, r.Stopped, r.Zombie)
}

func printTasks(out io.Writer, ts proc.TaskStats, resolver *users.Resolver, limit int) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  PID\tUSER\tSTATE\tNAME")
	for i, t := range ts.Active {
		if limit > 0 && i >= limit {
			fmt.Fprintf(tw, "  ...\t\t\t(%d more)\n", len(ts.Active)-limit)
			break
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", t.PID, resolver.Lookup(t.UID), t.State, t.Name)
	}
	tw.Flush()
}

const _console = `Inspector - procfs System Monitor

       Host: %s
       Kernel: %s
       CPU: %s (%d units)
       Cgroup: %s
       Run: %s

Inspector report as of %s:

`
