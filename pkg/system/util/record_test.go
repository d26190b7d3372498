//go:build linux

package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "record")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadLine(t *testing.T) {
	t.Run("first_line_only", func(t *testing.T) {
		p := writeFile(t, "box-01\nignored\n")
		got, err := ReadLine(p)
		require.NoError(t, err)
		assert.Equal(t, "box-01", got)
	})
	t.Run("no_trailing_newline", func(t *testing.T) {
		p := writeFile(t, "6.8.0-45-generic")
		got, err := ReadLine(p)
		require.NoError(t, err)
		assert.Equal(t, "6.8.0-45-generic", got)
	})
	t.Run("empty", func(t *testing.T) {
		got, err := ReadLine(writeFile(t, ""))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := ReadLine(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestScanLines_StopsEarly(t *testing.T) {
	p := writeFile(t, "a\nb\nc\nd\n")

	var seen []string
	err := ScanLines(p, func(line string) bool {
		seen = append(seen, line)
		return line != "b"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestSplitLabel(t *testing.T) {
	cases := []struct {
		line         string
		label, value string
		ok           bool
	}{
		{"model name\t: Intel(R) Xeon(R) CPU @ 2.20GHz", "model name", "Intel(R) Xeon(R) CPU @ 2.20GHz", true},
		{"Name:\tkworker/0:1H", "Name", "kworker/0:1H", true},
		{"MemTotal:       16777216 kB", "MemTotal", "16777216 kB", true},
		{"processor\t: 0", "processor", "0", true},
		{"no colon here", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			label, value, ok := SplitLabel(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.label, label)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestNextToken(t *testing.T) {
	s := "cpu  10 20\t30 "
	assert.Equal(t, "cpu", NextToken(&s, " \t"))
	assert.Equal(t, "10", NextToken(&s, " \t"))
	assert.Equal(t, "20", NextToken(&s, " \t"))
	assert.Equal(t, "30", NextToken(&s, " \t"))
	assert.Equal(t, "", NextToken(&s, " \t"))
	assert.Equal(t, "", NextToken(&s, " \t"), "exhausted input stays exhausted")
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("1"))
	assert.True(t, IsDigits("4194304"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("self"))
	assert.False(t, IsDigits("12a"))
	assert.False(t, IsDigits("-1"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 25))
	assert.Equal(t, "abcde", Truncate("abcdefgh", 5))
	assert.Equal(t, "héllo", Truncate("héllo wörld", 5))
	assert.Equal(t, "", Truncate("abc", 0))
}
