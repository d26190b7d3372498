//go:build linux

package util

import (
	"bufio"
	"os"
	"strings"
)

// ReadLine returns the first line of the file at path without its line
// terminator. An empty file yields "".
func ReadLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return "", sc.Err()
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

// ScanLines calls fn for every line of the file at path until fn returns
// false or the file ends. Open errors are returned as-is so callers can
// check them with errors.Is(err, fs.ErrNotExist).
func ScanLines(path string, fn func(line string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if !fn(sc.Text()) {
			break
		}
	}
	return sc.Err()
}

// SplitLabel splits a "label: value" record line at the first colon.
// Both halves are trimmed of surrounding whitespace.
func SplitLabel(line string) (label, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

// NextToken returns the next non-empty token of *s, where tokens are
// separated by any rune in delim, and advances *s past it. It returns ""
// once *s holds no more tokens.
func NextToken(s *string, delim string) string {
	rest := strings.TrimLeft(*s, delim)
	if rest == "" {
		*s = ""
		return ""
	}
	i := strings.IndexAny(rest, delim)
	if i < 0 {
		*s = ""
		return rest
	}
	*s = rest[i:]
	return rest[:i]
}

// IsDigits reports whether name is non-empty and made of ASCII digits only,
// which is how task directories are named.
func IsDigits(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
