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

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/clipvault/internal/storage"
)

type popupKind int

const (
	popupCreateTag popupKind = iota
	popupEditTag
	popupAssignTag
	popupRemoveTag
	popupCreateClip
	popupConfirm
)

type confirmTarget int

const (
	confirmClip confirmTarget = iota
	confirmTag
	confirmAll
)

// popup is a modal overlay. Only one is open at a time.
type popup struct {
	kind    popupKind
	title   string
	message string
	err     string

	name    textinput.Model
	color   textinput.Model
	focus   int
	content textarea.Model

	// choices for assign/remove
	tags   []storage.Tag
	cursor int
	moved  bool

	// every tag, for exact-name lookups when assigning
	known []storage.Tag

	clipID  int64
	tagID   int64
	confirm confirmTarget
}

type popupResponse struct {
	closed    bool
	submitted bool

	kind    popupKind
	name    string
	color   string
	content string
	clipID  int64
	tagID   int64
	confirm confirmTarget
}

func newNameInput(placeholder, value string) textinput.Model {
	input := textinput.New()
	input.Prompt = "Name: "
	input.Placeholder = placeholder
	input.CharLimit = 64
	input.SetValue(value)
	input.CursorEnd()
	return input
}

func newCreateTagPopup() (*popup, tea.Cmd) {
	p := &popup{kind: popupCreateTag, title: "Create tag", name: newNameInput("tag name", "")}
	return p, p.name.Focus()
}

func newEditTagPopup(tag storage.Tag) (*popup, tea.Cmd) {
	color := textinput.New()
	color.Prompt = "Color: "
	color.Placeholder = "#RRGGBB or empty for default"
	color.CharLimit = 7
	color.SetValue(tag.Color)

	p := &popup{
		kind:  popupEditTag,
		title: "Edit tag",
		name:  newNameInput("tag name", tag.Name),
		color: color,
		tagID: tag.ID,
	}
	return p, p.name.Focus()
}

// newAssignTagPopup offers the tags not yet on the clip. Typing filters
// the list. Enter assigns the tag whose name equals the input, or the
// highlighted choice once the cursor has been moved, and otherwise
// creates a tag with the typed name.
func newAssignTagPopup(clipID int64, all []storage.Tag, current []string) (*popup, tea.Cmd) {
	have := make(map[string]bool, len(current))
	for _, name := range current {
		have[name] = true
	}
	var choices []storage.Tag
	for _, tag := range all {
		if !have[tag.Name] {
			choices = append(choices, tag)
		}
	}

	p := &popup{
		kind:   popupAssignTag,
		title:  "Assign tag",
		name:   newNameInput("filter or new tag name", ""),
		tags:   choices,
		known:  all,
		clipID: clipID,
	}
	return p, p.name.Focus()
}

func newRemoveTagPopup(clipID int64, tags []storage.Tag) *popup {
	return &popup{kind: popupRemoveTag, title: "Remove tag", tags: tags, clipID: clipID}
}

func newCreateClipPopup(width int) (*popup, tea.Cmd) {
	content := textarea.New()
	content.Placeholder = "Clip content"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	w := width - 12
	if w < 20 {
		w = 20
	}
	content.SetWidth(w)
	content.SetHeight(8)

	p := &popup{kind: popupCreateClip, title: "Create clip", content: content}
	return p, p.content.Focus()
}

func newConfirmPopup(target confirmTarget, message string, clipID, tagID int64) *popup {
	return &popup{
		kind:    popupConfirm,
		title:   "Confirm delete",
		message: message,
		confirm: target,
		clipID:  clipID,
		tagID:   tagID,
	}
}

// filteredTags returns the assign choices matching the typed name.
func (p *popup) filteredTags() []storage.Tag {
	query := strings.ToLower(strings.TrimSpace(p.name.Value()))
	if query == "" {
		return p.tags
	}
	var out []storage.Tag
	for _, tag := range p.tags {
		if strings.Contains(strings.ToLower(tag.Name), query) {
			out = append(out, tag)
		}
	}
	return out
}

func (p *popup) tagNamed(name string) (storage.Tag, bool) {
	for _, tag := range p.known {
		if strings.EqualFold(tag.Name, name) {
			return tag, true
		}
	}
	return storage.Tag{}, false
}

func (p *popup) response() popupResponse {
	return popupResponse{kind: p.kind, clipID: p.clipID, tagID: p.tagID, confirm: p.confirm}
}

func (p *popup) handleKey(msg tea.KeyMsg) (popupResponse, tea.Cmd) {
	resp := p.response()

	if msg.String() == "esc" {
		resp.closed = true
		return resp, nil
	}

	switch p.kind {
	case popupConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			resp.submitted = true
		case "n", "N":
			resp.closed = true
		}
		return resp, nil

	case popupCreateClip:
		if msg.String() == "ctrl+s" {
			if strings.TrimSpace(p.content.Value()) == "" {
				p.err = "Content is required"
				return resp, nil
			}
			resp.submitted = true
			resp.content = p.content.Value()
			return resp, nil
		}
		var cmd tea.Cmd
		p.content, cmd = p.content.Update(msg)
		return resp, cmd

	case popupRemoveTag:
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.tags)-1 {
				p.cursor++
			}
		case "enter":
			if p.cursor < len(p.tags) {
				resp.submitted = true
				resp.tagID = p.tags[p.cursor].ID
				resp.name = p.tags[p.cursor].Name
			}
		}
		return resp, nil

	case popupAssignTag:
		switch msg.String() {
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			p.moved = true
			return resp, nil
		case "down":
			if p.cursor < len(p.filteredTags())-1 {
				p.cursor++
			}
			p.moved = true
			return resp, nil
		case "enter":
			name := strings.TrimSpace(p.name.Value())
			if tag, ok := p.tagNamed(name); ok && name != "" {
				resp.submitted = true
				resp.tagID = tag.ID
				resp.name = tag.Name
				return resp, nil
			}

			choices := p.filteredTags()
			if (p.moved || name == "") && p.cursor < len(choices) {
				resp.submitted = true
				resp.tagID = choices[p.cursor].ID
				resp.name = choices[p.cursor].Name
				return resp, nil
			}
			if name == "" {
				p.err = "Type a tag name"
				return resp, nil
			}
			resp.submitted = true
			resp.tagID = 0
			resp.name = name
			return resp, nil
		}
		var cmd tea.Cmd
		p.name, cmd = p.name.Update(msg)
		p.cursor = 0
		p.moved = false
		p.err = ""
		return resp, cmd

	case popupCreateTag:
		if msg.String() == "enter" {
			name := strings.TrimSpace(p.name.Value())
			if name == "" {
				p.err = "Name is required"
				return resp, nil
			}
			resp.submitted = true
			resp.name = name
			return resp, nil
		}
		var cmd tea.Cmd
		p.name, cmd = p.name.Update(msg)
		p.err = ""
		return resp, cmd

	case popupEditTag:
		switch msg.String() {
		case "tab", "shift+tab":
			if p.focus == 0 {
				p.focus = 1
				p.name.Blur()
				return resp, p.color.Focus()
			}
			p.focus = 0
			p.color.Blur()
			return resp, p.name.Focus()
		case "enter":
			name := strings.TrimSpace(p.name.Value())
			if name == "" {
				p.err = "Name is required"
				return resp, nil
			}
			resp.submitted = true
			resp.name = name
			resp.color = strings.TrimSpace(p.color.Value())
			return resp, nil
		}
		var cmd tea.Cmd
		if p.focus == 0 {
			p.name, cmd = p.name.Update(msg)
		} else {
			p.color, cmd = p.color.Update(msg)
		}
		p.err = ""
		return resp, cmd
	}

	return resp, nil
}

func renderPopup(p *popup, st styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(p.title))
	b.WriteString("\n\n")

	var hints string
	switch p.kind {
	case popupConfirm:
		b.WriteString(st.Text.Render(p.message))
		hints = st.footer("y", "delete", "n/esc", "cancel")
	case popupCreateClip:
		b.WriteString(p.content.View())
		hints = st.footer("ctrl+s", "save", "esc", "cancel")
	case popupCreateTag:
		b.WriteString(p.name.View())
		hints = st.footer("enter", "create", "esc", "cancel")
	case popupEditTag:
		b.WriteString(p.name.View())
		b.WriteString("\n")
		b.WriteString(p.color.View())
		hints = st.footer("tab", "switch field", "enter", "save", "esc", "cancel")
	case popupAssignTag:
		b.WriteString(p.name.View())
		b.WriteString("\n")
		choices := p.filteredTags()
		name := strings.TrimSpace(p.name.Value())
		_, exists := p.tagNamed(name)
		switch {
		case name != "" && !exists && !p.moved:
			b.WriteString("\n" + st.Muted.Render("enter creates tag \""+name+"\", ↓ picks a match"))
		case len(choices) == 0 && name == "":
			b.WriteString("\n" + st.Muted.Render("No other tags"))
		}
		cursor := p.cursor
		if name != "" && !p.moved {
			cursor = -1
		}
		b.WriteString(renderTagChoices(choices, cursor, st))
		hints = st.footer("enter", "assign", "esc", "cancel")
	case popupRemoveTag:
		if len(p.tags) == 0 {
			b.WriteString(st.Muted.Render("This clip has no tags"))
		}
		b.WriteString(renderTagChoices(p.tags, p.cursor, st))
		hints = st.footer("enter", "remove", "esc", "cancel")
	}

	if p.err != "" {
		b.WriteString("\n\n" + st.Warning.Render(p.err))
	}
	b.WriteString("\n\n" + hints)
	return st.Popup.Render(b.String())
}

func renderTagChoices(tags []storage.Tag, cursor int, st styles) string {
	var b strings.Builder
	for i, tag := range tags {
		b.WriteString("\n")
		if i == cursor {
			b.WriteString(st.Accent.Render("> ") + st.tagChip(tag))
		} else {
			b.WriteString("  " + st.tagChip(tag))
		}
	}
	return b.String()
}
