//go:build linux

package proc

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ja7ad/inspector/pkg/system/util"
)

// MaxTaskName is the longest task name kept in a TaskInfo.
const MaxTaskName = 25

// TaskState is the scheduler state of a task as reported in its status record.
type TaskState int

const (
	Unknown TaskState = iota
	Running
	DiskSleep
	Sleeping
	TracingStop
	Stopped
	Zombie
	Idle
)

func (s TaskState) String() string {
	switch s {
	case Running:
		return "running"
	case DiskSleep:
		return "disk sleep"
	case Sleeping:
		return "sleeping"
	case TracingStop:
		return "tracing stop"
	case Stopped:
		return "stopped"
	case Zombie:
		return "zombie"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// Active reports whether tasks in this state belong in TaskStats.Active.
// Sleeping and idle tasks only count towards the aggregates.
func (s TaskState) Active() bool {
	switch s {
	case Running, DiskSleep, TracingStop, Stopped, Zombie:
		return true
	default:
		return false
	}
}

// statePhrases is checked in order; "disk sleep" must be tried before
// "sleeping" and "tracing stop" before "stopped".
var statePhrases = []struct {
	phrase string
	state  TaskState
}{
	{"running", Running},
	{"disk sleep", DiskSleep},
	{"sleeping", Sleeping},
	{"idle", Idle},
	{"tracing stop", TracingStop},
	{"stopped", Stopped},
	{"zombie", Zombie},
}

// ClassifyState maps the free text of a "State:" line, e.g. "S (sleeping)",
// to a TaskState.
func ClassifyState(text string) TaskState {
	for _, p := range statePhrases {
		if strings.Contains(text, p.phrase) {
			return p.state
		}
	}
	return Unknown
}

// TaskInfo describes one task seen during a single enumeration pass.
type TaskInfo struct {
	PID   int
	Name  string
	UID   int
	State TaskState
}

// TaskStats aggregates one pass over the task directories.
// len(Active) == Running+Waiting+Stopped+Zombie.
type TaskStats struct {
	Total    int
	Running  int
	Waiting  int // uninterruptible disk sleep
	Sleeping int // sleeping and idle
	Stopped  int // stopped and tracing stop
	Zombie   int

	Active []TaskInfo
}

func (ts *TaskStats) add(t TaskInfo) {
	switch t.State {
	case Running:
		ts.Running++
	case DiskSleep:
		ts.Waiting++
	case Sleeping, Idle:
		ts.Sleeping++
	case TracingStop, Stopped:
		ts.Stopped++
	case Zombie:
		ts.Zombie++
	}
	if t.State.Active() {
		ts.Active = append(ts.Active, t)
	}
}

// ReadTask parses <root>/<pid>/status.
func ReadTask(root string, pid int) (TaskInfo, error) {
	p := path(root, strconv.Itoa(pid), statusFile)
	info := TaskInfo{PID: pid}
	err := util.ScanLines(p, func(line string) bool {
		label, value, ok := util.SplitLabel(line)
		if !ok {
			return true
		}
		switch label {
		case "Name":
			info.Name = util.Truncate(value, MaxTaskName)
		case "Uid":
			// real, effective, saved, filesystem
			if uid, err := strconv.Atoi(util.NextToken(&value, " \t")); err == nil && uid >= 0 {
				info.UID = uid
			}
		case "State":
			info.State = ClassifyState(value)
		}
		return true
	})
	if err != nil {
		return TaskInfo{PID: pid}, notFound(p, err)
	}
	return info, nil
}

// ReadTasks walks every numerically named directory under root and
// classifies its task. A task whose status record cannot be read (it may
// have exited since the listing) is counted in Total only. The only error
// is an unreadable root. Active is ordered by PID.
func ReadTasks(root string) (TaskStats, error) {
	var ts TaskStats

	dir := path(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ts, fmt.Errorf("%w: %w", ErrNoTaskRoot, notFound(dir, err))
	}

	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || !util.IsDigits(e.Name()) {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	slices.Sort(pids)

	for _, pid := range pids {
		ts.Total++
		info, err := ReadTask(root, pid)
		if err != nil {
			continue
		}
		ts.add(info)
	}
	return ts, nil
}
