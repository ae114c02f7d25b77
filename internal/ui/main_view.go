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

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/adaryorg/clipvault/internal/state"
	"github.com/adaryorg/clipvault/internal/storage"
)

const (
	previewLines = 2
	cardHeight   = previewLines + 2 // header, preview, spacer
)

// mainView is the clip list with its selection and quick filter.
type mainView struct {
	cursor int
	offset int

	filtering   bool
	filterInput textinput.Model
	filter      string
	matches     []int // indexes into the state's clips; nil when unfiltered
}

type mainResponse struct {
	clip storage.Clip

	copied              bool
	pinToggled          bool
	deleteRequested     bool
	addTagRequested     bool
	removeTagRequested  bool
	createClipRequested bool
	viewRequested       bool
	clearSource         bool
}

func newMainView() mainView {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Placeholder = "fuzzy match"
	input.CharLimit = 128
	return mainView{filterInput: input}
}

// visible returns the clips shown after the quick filter.
func (v *mainView) visible(clips []storage.Clip) []storage.Clip {
	if v.matches == nil {
		return clips
	}
	out := make([]storage.Clip, 0, len(v.matches))
	for _, i := range v.matches {
		if i < len(clips) {
			out = append(out, clips[i])
		}
	}
	return out
}

// refilter recomputes matches after the clip list or filter changed.
func (v *mainView) refilter(clips []storage.Clip) {
	if v.filter == "" {
		v.matches = nil
	} else {
		data := make([]string, len(clips))
		for i, c := range clips {
			data[i] = c.Content
		}
		found := fuzzy.Find(v.filter, data)
		v.matches = make([]int, len(found))
		for i, match := range found {
			v.matches[i] = match.Index
		}
	}
	v.clamp(len(v.visible(clips)))
}

func (v *mainView) clamp(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *mainView) selected(clips []storage.Clip) (storage.Clip, bool) {
	shown := v.visible(clips)
	if v.cursor < 0 || v.cursor >= len(shown) {
		return storage.Clip{}, false
	}
	return shown[v.cursor], true
}

// selectID moves the cursor onto the clip with the given id, if shown.
func (v *mainView) selectID(clips []storage.Clip, id int64) {
	for i, c := range v.visible(clips) {
		if c.ID == id {
			v.cursor = i
			return
		}
	}
}

func (v *mainView) handleKey(msg tea.KeyMsg, clips []storage.Clip, pageSize int) (mainResponse, tea.Cmd) {
	var resp mainResponse

	if v.filtering {
		switch msg.String() {
		case "esc":
			v.filtering = false
			v.filter = ""
			v.filterInput.Blur()
			v.filterInput.SetValue("")
			v.refilter(clips)
			return resp, nil
		case "enter":
			v.filtering = false
			v.filterInput.Blur()
			return resp, nil
		case "up", "down":
			// Navigation keeps working while typing
		default:
			var cmd tea.Cmd
			v.filterInput, cmd = v.filterInput.Update(msg)
			v.filter = v.filterInput.Value()
			v.cursor = 0
			v.refilter(clips)
			return resp, cmd
		}
	}

	shown := v.visible(clips)
	if pageSize < 1 {
		pageSize = 1
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		return resp, nil
	case "down", "j":
		if v.cursor < len(shown)-1 {
			v.cursor++
		}
		return resp, nil
	case "pgup":
		v.cursor -= pageSize
		v.clamp(len(shown))
		return resp, nil
	case "pgdown":
		v.cursor += pageSize
		v.clamp(len(shown))
		return resp, nil
	case "home":
		v.cursor = 0
		return resp, nil
	case "end":
		v.cursor = len(shown) - 1
		v.clamp(len(shown))
		return resp, nil
	case "f":
		v.filtering = true
		v.filterInput.SetValue(v.filter)
		v.filterInput.CursorEnd()
		return resp, v.filterInput.Focus()
	case "n":
		resp.createClipRequested = true
		return resp, nil
	case "esc":
		if v.filter != "" {
			v.filter = ""
			v.filterInput.SetValue("")
			v.refilter(clips)
		} else {
			resp.clearSource = true
		}
		return resp, nil
	}

	clip, ok := v.selected(clips)
	if !ok {
		return resp, nil
	}
	resp.clip = clip

	switch msg.String() {
	case "enter", "c":
		resp.copied = true
	case "p":
		resp.pinToggled = true
	case "x", "delete":
		resp.deleteRequested = true
	case "+":
		resp.addTagRequested = true
	case "-":
		resp.removeTagRequested = true
	case "v":
		resp.viewRequested = true
	}
	return resp, nil
}

func renderMainView(v *mainView, s *state.State, showContent bool, caps TerminalCapabilities, st styles, width, height int) string {
	var b strings.Builder

	if v.filtering || v.filter != "" {
		if v.filtering {
			b.WriteString(v.filterInput.View())
		} else {
			b.WriteString(st.Accent.Render("Filter: "+v.filter) + st.Muted.Render("  (esc to clear)"))
		}
		b.WriteString("\n")
		height--
	}

	shown := v.visible(s.Clips)
	if len(shown) == 0 {
		if v.filter != "" {
			b.WriteString(st.Muted.Render("No clips match the filter"))
		} else {
			b.WriteString(st.Muted.Render("No clipboard entries yet"))
		}
		return b.String()
	}

	perPage := height / cardHeight
	if perPage < 1 {
		perPage = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+perPage {
		v.offset = v.cursor - perPage + 1
	}
	if v.offset > len(shown)-1 {
		v.offset = 0
	}

	end := v.offset + perPage
	if end > len(shown) {
		end = len(shown)
	}

	for i := v.offset; i < end; i++ {
		b.WriteString(renderClipCard(shown[i], s.TagsForClip(shown[i].ID), s, i == v.cursor, showContent, caps, st, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderClipCard(clip storage.Clip, tagNames []string, s *state.State, selected, showContent bool, caps TerminalCapabilities, st styles, width int) string {
	marker := "  "
	if clip.Pinned {
		marker = st.Pinned.Render(caps.PinMarker()) + " "
	}

	header := marker + st.Muted.Render(FormatTimestamp(clip.Timestamp))
	for _, name := range tagNames {
		tag, ok := s.TagByName(name)
		if !ok {
			tag = storage.Tag{Name: name}
		}
		header += " " + st.tagChip(tag)
	}

	var body []string
	if showContent {
		for _, line := range wrapText(clip.Content, width-2, previewLines) {
			body = append(body, "  "+line)
		}
	} else {
		body = []string{"  " + st.Muted.Italic(true).Render("Content hidden")}
	}
	for len(body) < previewLines {
		body = append(body, "")
	}

	lines := append([]string{header}, body...)
	for i, line := range lines {
		if selected {
			lines[i] = st.Selected.Render(padRight(line, width))
		} else if i > 0 {
			lines[i] = st.Text.Render(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
