//go:build linux

package cgroup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

type Version int

const (
	Unsupported Version = iota // non-Linux or no cgroup mounts
	V1                         // legacy multi-hierarchy cgroup v1
	V2                         // unified cgroup v2
	Hybrid                     // both v1 and v2 present
)

// DefaultMount is where systemd mounts the unified hierarchy.
const DefaultMount = "/sys/fs/cgroup"

func (v Version) String() string {
	switch v {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	case Hybrid:
		return "cgroup hybrid"
	default:
		return "unsupported"
	}
}

// Detect returns the cgroup version and a human-readable detail string for
// the process whose procfs is mounted at root (normally /proc).
//
// It parses <root>/self/mountinfo looking for cgroup filesystems.
// The line format has a " - fstype " separator; we only care about fstype.
func Detect(root string) (Version, string, error) {
	if root == "" {
		root = "/proc"
	}
	f, err := os.Open(filepath.Join(root, "self", "mountinfo"))
	if err != nil {
		return Unsupported, "", fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var (
		v1Pts []string
		v2Pts []string
		sc    = bufio.NewScanner(f)
	)
	for sc.Scan() {
		fstype, mountPoint, ok := parseMountinfo(sc.Text())
		if !ok {
			continue
		}
		switch fstype {
		case "cgroup2":
			v2Pts = append(v2Pts, mountPoint)
		case "cgroup":
			v1Pts = append(v1Pts, mountPoint)
		}
	}
	if err := sc.Err(); err != nil {
		return Unsupported, "", fmt.Errorf("scan mountinfo: %w", err)
	}

	switch {
	case len(v1Pts) > 0 && len(v2Pts) > 0:
		return Hybrid, fmt.Sprintf("cgroup2 on %v; cgroup v1 on %v",
			strings.Join(v2Pts, ","), strings.Join(v1Pts, ",")), nil
	case len(v2Pts) > 0:
		return V2, fmt.Sprintf("cgroup2 on %v", strings.Join(v2Pts, ",")), nil
	case len(v1Pts) > 0:
		return V1, fmt.Sprintf("cgroup v1 on %v", strings.Join(v1Pts, ",")), nil
	default:
		return Unsupported, "no cgroup mounts found", nil
	}
}

// parseMountinfo extracts the filesystem type and mount point of one line:
//
//	<id> <parent> <maj:min> <root> <mountpoint> <opts> [optional...] - <fstype> <source> <superopts>
//
// Ref: man 5 proc
func parseMountinfo(line string) (fstype, mountPoint string, ok bool) {
	const sep = " - "
	i := strings.LastIndex(line, sep)
	if i < 0 {
		return "", "", false
	}
	tail := strings.Fields(line[i+len(sep):])
	pre := strings.Fields(line[:i])
	if len(tail) < 1 || len(pre) < 5 {
		return "", "", false
	}
	return tail[0], pre[4], true
}

// IsUnified reports whether path is the mount point of a cgroup2 filesystem,
// by checking the statfs magic rather than parsing mount tables.
func IsUnified(path string) (bool, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false, fmt.Errorf("statfs %s: %w", path, err)
	}
	return st.Type == unix.CGROUP2_SUPER_MAGIC, nil
}
