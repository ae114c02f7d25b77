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
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adaryorg/clipvault/internal/config"
	"github.com/adaryorg/clipvault/internal/storage"
)

// Palette is a set of hex colours for one theme.
type Palette struct {
	Name       string
	Foreground string
	Muted      string
	Accent     string
	Border     string
	SelectedFg string
	SelectedBg string
	Warning    string
	Pinned     string
	DefaultTag string
	Syntax     string // chroma style
}

var (
	darkPalette = Palette{
		Name:       config.ThemeDark,
		Foreground: "#E0E0E0",
		Muted:      "#808080",
		Accent:     "#AF87FF",
		Border:     "#00AFFF",
		SelectedFg: "#FFFFFF",
		SelectedBg: "#5F00AF",
		Warning:    "#FF5F5F",
		Pinned:     "#FFD75F",
		DefaultTag: "#4E4E4E",
		Syntax:     "monokai",
	}
	lightPalette = Palette{
		Name:       config.ThemeLight,
		Foreground: "#1C1C1C",
		Muted:      "#6C6C6C",
		Accent:     "#5F00AF",
		Border:     "#005FAF",
		SelectedFg: "#000000",
		SelectedBg: "#D7D7FF",
		Warning:    "#AF0000",
		Pinned:     "#AF5F00",
		DefaultTag: "#D0D0D0",
		Syntax:     "github",
	}
)

func PaletteFor(theme string) Palette {
	if theme == config.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// PresetColors are cycled through by the tag manager.
var PresetColors = []string{
	"#E74C3C", "#E67E22", "#F1C40F", "#2ECC71",
	"#1ABC9C", "#3498DB", "#9B59B6", "#95A5A6",
}

// NextPresetColor returns the preset after current, wrapping around.
// Unknown or empty colours start at the first preset.
func NextPresetColor(current string) string {
	for i, c := range PresetColors {
		if strings.EqualFold(c, current) {
			return PresetColors[(i+1)%len(PresetColors)]
		}
	}
	return PresetColors[0]
}

// ParseHexColor parses "#RRGGBB".
func ParseHexColor(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// ContrastText picks black or white text for the given background using
// perceived brightness.
func ContrastText(background string) string {
	r, g, b, ok := ParseHexColor(background)
	if !ok {
		return "#FFFFFF"
	}
	brightness := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if brightness > 186 {
		return "#000000"
	}
	return "#FFFFFF"
}

// styles holds the lipgloss styles derived from a palette.
type styles struct {
	palette Palette

	Frame    lipgloss.Style
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Warning  lipgloss.Style
	Pinned   lipgloss.Style
	Key      lipgloss.Style
	Popup    lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		palette: p,
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(p.SelectedFg)).Background(lipgloss.Color(p.SelectedBg)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)).Bold(true),
		Pinned:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Pinned)).Bold(true),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(1, 2),
	}
}

// tagColor returns the chip background for a tag.
func (s styles) tagColor(tag storage.Tag) string {
	if _, _, _, ok := ParseHexColor(tag.Color); ok {
		return tag.Color
	}
	return s.palette.DefaultTag
}

func (s styles) tagChip(tag storage.Tag) string {
	bg := s.tagColor(tag)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(ContrastText(bg))).
		Padding(0, 1).
		Render(tag.Name)
}

// footer renders "key: action | key: action" hints.
func (s styles) footer(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.Key.Render(pairs[i])+s.Muted.Render(": "+pairs[i+1]))
	}
	return strings.Join(parts, s.Muted.Render(" | "))
}
