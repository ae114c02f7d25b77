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
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adaryorg/clipvault/internal/state"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptDate
)

const dateLayout = "2006-01-02"

// topPanel owns the search and date prompts and the global shortcuts.
type topPanel struct {
	prompt promptKind
	input  textinput.Model
	err    string
}

type topPanelResponse struct {
	handled bool

	searchSubmitted bool
	query           string
	dateSubmitted   bool
	date            time.Time
	shiftDays       int
	todayRequested  bool

	toggleContent    bool
	toggleTheme      bool
	showTags         bool
	showSettings     bool
	refreshRequested bool
	quitRequested    bool
}

func newTopPanel() topPanel {
	input := textinput.New()
	input.CharLimit = 256
	return topPanel{input: input}
}

func (p *topPanel) active() bool {
	return p.prompt != promptNone
}

func (p *topPanel) open(kind promptKind, value string) tea.Cmd {
	p.prompt = kind
	p.err = ""
	switch kind {
	case promptSearch:
		p.input.Prompt = "Search: "
		p.input.Placeholder = "text to find"
	case promptDate:
		p.input.Prompt = "Date: "
		p.input.Placeholder = "YYYY-MM-DD, today or yesterday"
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *topPanel) close() {
	p.prompt = promptNone
	p.err = ""
	p.input.Blur()
	p.input.SetValue("")
}

// handleKey processes a key while the panel has focus or as a global
// shortcut. handled is false when the key belongs to the active view.
func (p *topPanel) handleKey(msg tea.KeyMsg, now time.Time) (topPanelResponse, tea.Cmd) {
	if p.active() {
		return p.handlePromptKey(msg, now)
	}

	resp := topPanelResponse{handled: true}
	var cmd tea.Cmd

	switch msg.String() {
	case "/":
		cmd = p.open(promptSearch, "")
	case "d":
		cmd = p.open(promptDate, now.Format(dateLayout))
	case "[":
		resp.shiftDays = -1
	case "]":
		resp.shiftDays = 1
	case "t":
		resp.todayRequested = true
	case "h":
		resp.toggleContent = true
	case "T":
		resp.toggleTheme = true
	case "g":
		resp.showTags = true
	case "s":
		resp.showSettings = true
	case "r":
		resp.refreshRequested = true
	case "q":
		resp.quitRequested = true
	default:
		resp.handled = false
	}
	return resp, cmd
}

func (p *topPanel) handlePromptKey(msg tea.KeyMsg, now time.Time) (topPanelResponse, tea.Cmd) {
	resp := topPanelResponse{handled: true}

	switch msg.String() {
	case "esc":
		p.close()
		return resp, nil
	case "enter":
		value := strings.TrimSpace(p.input.Value())
		switch p.prompt {
		case promptSearch:
			resp.searchSubmitted = true
			resp.query = value
			p.close()
		case promptDate:
			day, err := parseDate(value, now)
			if err != nil {
				p.err = "Invalid date, use YYYY-MM-DD"
				return resp, nil
			}
			resp.dateSubmitted = true
			resp.date = day
			p.close()
		}
		return resp, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return resp, cmd
}

func parseDate(value string, now time.Time) (time.Time, error) {
	switch strings.ToLower(value) {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	return time.ParseInLocation(dateLayout, value, time.Local)
}

func renderTopPanel(p topPanel, s *state.State, showContent bool, st styles, width int) string {
	title := st.Title.Render("ClipVault") + st.Muted.Render("  ·  ") + st.Accent.Render(s.SourceLabel())

	var flags []string
	if !showContent {
		flags = append(flags, "content hidden")
	}
	flags = append(flags, st.palette.Name)
	title += "  " + st.Muted.Render("["+strings.Join(flags, ", ")+"]")

	var second string
	switch {
	case p.active():
		second = p.input.View()
		if p.err != "" {
			second += "  " + st.Warning.Render(p.err)
		}
	default:
		second = st.footer("/", "search", "d", "date", "[ ]", "prev/next day", "t", "today",
			"g", "tags", "s", "settings", "h", "hide/show", "T", "theme", "r", "refresh")
	}

	return truncateRendered(title, width) + "\n" + truncateRendered(second, width)
}

// truncateRendered keeps styled single-line output within width.
func truncateRendered(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
