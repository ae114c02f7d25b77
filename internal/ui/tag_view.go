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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adaryorg/clipvault/internal/state"
	"github.com/adaryorg/clipvault/internal/storage"
)

// tagView is the tag manager table.
type tagView struct {
	cursor int
}

type tagResponse struct {
	tag storage.Tag

	showClips       bool
	createRequested bool
	editRequested   bool
	cycleColor      bool
	resetColor      bool
	deleteRequested bool
	back            bool
}

func (v *tagView) clamp(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *tagView) handleKey(msg tea.KeyMsg, tags []storage.Tag) tagResponse {
	var resp tagResponse

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		return resp
	case "down", "j":
		if v.cursor < len(tags)-1 {
			v.cursor++
		}
		return resp
	case "n":
		resp.createRequested = true
		return resp
	case "esc":
		resp.back = true
		return resp
	}

	if v.cursor < 0 || v.cursor >= len(tags) {
		return resp
	}
	resp.tag = tags[v.cursor]

	switch msg.String() {
	case "enter":
		resp.showClips = true
	case "e":
		resp.editRequested = true
	case "c":
		resp.cycleColor = true
	case "R":
		resp.resetColor = true
	case "x", "delete":
		resp.deleteRequested = true
	}
	return resp
}

func renderTagView(v *tagView, s *state.State, st styles, width, height int) string {
	if len(s.Tags) == 0 {
		return st.Muted.Render("No tags yet. Press n to create one.")
	}

	nameWidth := 4
	for _, tag := range s.Tags {
		if w := lipgloss.Width(tag.Name); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > width/2 {
		nameWidth = width / 2
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(padRight("Name", nameWidth+2) + padRight("Clips", 8) + "Color"))
	b.WriteString("\n")

	rows := height - 1
	if rows < 1 {
		rows = 1
	}
	start := 0
	if v.cursor >= rows {
		start = v.cursor - rows + 1
	}
	end := start + rows
	if end > len(s.Tags) {
		end = len(s.Tags)
	}

	for i := start; i < end; i++ {
		tag := s.Tags[i]
		color := tag.Color
		if color == "" {
			color = "default"
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(st.tagColor(tag))).Render("  ")
		row := padRight(truncate(tag.Name, nameWidth), nameWidth+2) +
			padRight(fmt.Sprintf("%d", s.TagCounts[tag.ID]), 8) +
			swatch + " " + color
		if i == v.cursor {
			row = st.Selected.Render(padRight(row, width))
		} else {
			row = st.Text.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
