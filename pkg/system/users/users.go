//go:build linux

// Package users maps numeric user ids to account names by scanning the
// colon-delimited account file (passwd(5)).
package users

import (
	"strconv"
	"strings"
	"sync"

	"github.com/ja7ad/inspector/pkg/system/util"
)

const (
	// DefaultPasswd is the system account file.
	DefaultPasswd = "/etc/passwd"

	// MaxNameLen is the longest name Lookup returns.
	MaxNameLen = 15
)

// Resolver looks names up in one account file and remembers the answers.
// It is safe for concurrent use.
type Resolver struct {
	path string

	mu    sync.Mutex
	cache map[int]string
}

// NewResolver returns a resolver backed by path, or DefaultPasswd if empty.
func NewResolver(path string) *Resolver {
	if path == "" {
		path = DefaultPasswd
	}
	return &Resolver{path: path, cache: make(map[int]string)}
}

// Lookup returns the name of the first account whose uid field equals uid,
// truncated to MaxNameLen. Without a match, or if the file is unreadable,
// it returns the uid in lower-case hex.
func (r *Resolver) Lookup(uid int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.cache[uid]; ok {
		return name
	}
	name, ok := r.scan(uid)
	if !ok {
		name = strconv.FormatInt(int64(uid), 16)
	}
	r.cache[uid] = name
	return name
}

// Forget drops cached answers, e.g. after the account file changed.
func (r *Resolver) Forget() {
	r.mu.Lock()
	r.cache = make(map[int]string)
	r.mu.Unlock()
}

func (r *Resolver) scan(uid int) (string, bool) {
	var (
		name  string
		found bool
	)
	_ = util.ScanLines(r.path, func(line string) bool {
		// name:password:uid:gid:gecos:home:shell
		fields := strings.SplitN(line, ":", 4)
		if len(fields) < 3 || fields[0] == "" {
			return true
		}
		id, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || id != uid {
			return true
		}
		name, found = util.Truncate(fields[0], MaxNameLen), true
		return false // first match wins
	})
	return name, found
}
