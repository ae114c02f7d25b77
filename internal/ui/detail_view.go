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
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/clipvault/internal/storage"
)

// detailView shows one clip in full with syntax highlighting.
type detailView struct {
	clip     storage.Clip
	lines    []string
	language string
	scroll   int
}

type detailResponse struct {
	closed          bool
	copied          bool
	pinToggled      bool
	deleteRequested bool
}

func newDetailView(clip storage.Clip, palette Palette, basicColors bool) *detailView {
	lines, language := newHighlighter(palette, basicColors).render(clip.Content)
	return &detailView{clip: clip, lines: lines, language: language}
}

func (v *detailView) maxScroll(height int) int {
	max := len(v.lines) - height
	if max < 0 {
		return 0
	}
	return max
}

func (v *detailView) handleKey(msg tea.KeyMsg, height int) detailResponse {
	var resp detailResponse
	if height < 1 {
		height = 1
	}

	switch msg.String() {
	case "esc", "q", "v":
		resp.closed = true
	case "enter", "c":
		resp.copied = true
	case "p":
		resp.pinToggled = true
	case "x":
		resp.deleteRequested = true
	case "up", "k":
		if v.scroll > 0 {
			v.scroll--
		}
	case "down", "j":
		if v.scroll < v.maxScroll(height) {
			v.scroll++
		}
	case "pgup":
		v.scroll -= height
		if v.scroll < 0 {
			v.scroll = 0
		}
	case "pgdown":
		v.scroll += height
		if v.scroll > v.maxScroll(height) {
			v.scroll = v.maxScroll(height)
		}
	case "home":
		v.scroll = 0
	case "end":
		v.scroll = v.maxScroll(height)
	}
	return resp
}

func renderDetailView(v *detailView, tags []storage.Tag, caps TerminalCapabilities, st styles, width, height int) string {
	var b strings.Builder

	header := st.Muted.Render(FormatTimestamp(v.clip.Timestamp))
	if v.clip.Pinned {
		header = st.Pinned.Render(caps.PinMarker()+" pinned") + "  " + header
	}
	if v.language != "" {
		header += "  " + st.Accent.Render("["+v.language+"]")
	}
	for _, tag := range tags {
		header += " " + st.tagChip(tag)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	height -= 2
	if height < 1 {
		height = 1
	}

	end := v.scroll + height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	for i := v.scroll; i < end; i++ {
		line := strings.ReplaceAll(v.lines[i], "\t", "    ")
		b.WriteString(truncateRendered(line, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
