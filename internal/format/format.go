// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// format.go - human-readable sizes, durations and table layout.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Size renders a byte count in human-readable form (1.5 KB, 2.3 MB).
func Size(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Duration renders an uptime-style duration (2d 3h 14m).
func Duration(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// Percent renders a ratio as a fixed-width percentage.
func Percent(v float64) string {
	return fmt.Sprintf("%5.1f%%", v)
}

// Table renders rows as runewidth-aligned columns. The first row is
// treated as a header when header is true. An empty input renders as
// an empty string.
func Table(rows [][]string, header bool) string {
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			// No trailing padding on the last column.
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)+2))
			}
		}
		b.WriteByte('\n')
		if header && r == 0 {
			for i, w := range widths {
				b.WriteString(strings.Repeat("-", w))
				if i < len(widths)-1 {
					b.WriteString("  ")
				}
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Columns lays names out in columns that fit the given width, the way
// ls presents a directory.
func Columns(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	colWidth := 0
	for _, name := range names {
		if w := runewidth.StringWidth(name); w > colWidth {
			colWidth = w
		}
	}
	colWidth += 2

	perRow := width / colWidth
	if perRow < 1 {
		perRow = 1
	}

	var b strings.Builder
	for i, name := range names {
		b.WriteString(name)
		if (i+1)%perRow == 0 || i == len(names)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteString(strings.Repeat(" ", colWidth-runewidth.StringWidth(name)))
		}
	}
	return b.String()
}
