// Package utils carries the small formatting and colour helpers the
// renderer and log sanitiser share, adapted from the teacher's
// pkg/utils/utils.go.
package utils

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// FormatDecimalBytes renders a byte count using decimal (base-1000)
// units, matching spec.md §8's boundary cases exactly: 0 -> "0 B",
// 999 -> "999 B", 1000 -> "1.00 kB", 1_000_000 -> "1.00 MB",
// 1_000_000_000 -> "1.00 GB". Unlike the teacher's FormatDecimalBytes,
// the unit is space-separated and sub-kB values are printed as whole
// bytes rather than with two decimal places.
func FormatDecimalBytes(b uint64) string {
	if b < 1000 {
		return fmt.Sprintf("%d B", b)
	}
	units := []string{"kB", "MB", "GB", "TB", "PB", "EB"}
	n := float64(b) / 1000
	for _, unit := range units[:len(units)-1] {
		if n < 1000 {
			return fmt.Sprintf("%.2f %s", n, unit)
		}
		n /= 1000
	}
	return fmt.Sprintf("%.2f %s", n, units[len(units)-1])
}

// FormatCPUPercent renders a cpu percentage zero-padded to five
// characters plus "%", per spec.md §8 ("always 'NN.NN%' zero-padded to
// five chars plus '%'").
func FormatCPUPercent(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	s := fmt.Sprintf("%.2f", pct)
	// zero-pad the integer part so the whole numeric portion is 5 chars
	// wide, e.g. "5.00" -> "05.00", "100.00" is already 6 and left as-is.
	for len(s) < 5 {
		s = "0" + s
	}
	return s + "%"
}

// WithPadding right-pads str with spaces up to padding display columns,
// ignoring any ANSI colour codes already present (teacher:
// pkg/utils/utils.go WithPadding).
func WithPadding(str string, padding int) string {
	plain := Decolorise(str)
	width := runewidth.StringWidth(plain)
	if padding < width {
		return str
	}
	return str + strings.Repeat(" ", padding-width)
}

// Decolorise strips ANSI SGR escape sequences from str.
func Decolorise(str string) string {
	var b strings.Builder
	b.Grow(len(str))
	for i := 0; i < len(str); i++ {
		if str[i] == 0x1b && i+1 < len(str) && str[i+1] == '[' {
			j := i + 2
			for j < len(str) && str[j] != 'm' && str[j] != 'K' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(str[i])
	}
	return b.String()
}

// ColoredString colours str with the given colour.Attribute, the way
// the teacher's ColoredString does (FgWhite is treated as "no colour"
// so light-themed terminals aren't forced to white-on-white).
func ColoredString(str string, attr color.Attribute) string {
	if attr == color.FgWhite {
		return str
	}
	return color.New(attr).SprintFunc()(str)
}
