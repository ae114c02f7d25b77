/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// FormatTimestamp renders t as "October 14th, 2026 3:04 PM".
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d %s",
		t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year(), t.Format("3:04 PM"))
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// wrapText wraps text to fit within the given width, up to maxLines.
// Text that does not fit ends in "...".
func wrapText(text string, width int, maxLines int) []string {
	if width <= 0 {
		width = 80
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		runes := []rune(strings.TrimRight(paragraph, "\r"))
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}
		for len(runes) > width {
			// Prefer breaking at a space in the second half of the line
			breakPoint := width
			if runes[width] != ' ' {
				for i := width - 1; i >= width/2; i-- {
					if runes[i] == ' ' {
						breakPoint = i
						break
					}
				}
			}

			lines = append(lines, string(runes[:breakPoint]))
			runes = []rune(strings.TrimLeft(string(runes[breakPoint:]), " "))
		}
		if len(runes) > 0 {
			lines = append(lines, string(runes))
		}
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		if len(last) > width-3 && width > 3 {
			last = last[:width-3]
		}
		lines[maxLines-1] = string(last) + "..."
	}

	return lines
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// singleLine collapses whitespace so content fits on one row.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// padRight pads a rendered string to width visible cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
