//go:build linux

// Package render formats sampled values for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/ja7ad/inspector/pkg/system/util"
)

const (
	barCells   = 20 // one cell per 5%
	cellFilled = '#'
	cellEmpty  = '-'

	// fillThreshold lets a cell that is mostly covered render as filled.
	fillThreshold = 0.89
)

// PercentageBar renders a fraction as "[#####---------------] 25.0%".
// The percentage is clamped to [0,100]; NaN and negatives read as 0.
func PercentageBar(frac float64) string {
	perc := util.ClampRange(frac*100, 0, 100)
	inc := perc / 5

	var b strings.Builder
	b.Grow(barCells + 9)
	b.WriteByte('[')
	for i := 0; i < barCells; i++ {
		if inc >= fillThreshold {
			b.WriteByte(cellFilled)
			inc--
		} else {
			b.WriteByte(cellEmpty)
		}
	}
	b.WriteString("] ")
	fmt.Fprintf(&b, "%.1f%%", perc)
	return b.String()
}
