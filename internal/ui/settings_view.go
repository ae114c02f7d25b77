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

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/clipvault/internal/config"
)

type settingsOption int

const (
	optionAutoHide settingsOption = iota
	optionShowContent
	optionTheme
	optionResetSettings
	optionDeleteAll
	optionCount
)

type settingsView struct {
	cursor int
}

type settingsResponse struct {
	toggleAutoHide     bool
	toggleContent      bool
	toggleTheme        bool
	resetSettings      bool
	deleteAllRequested bool
	back               bool
}

func (v *settingsView) handleKey(msg tea.KeyMsg) settingsResponse {
	var resp settingsResponse

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < int(optionCount)-1 {
			v.cursor++
		}
	case "esc":
		resp.back = true
	case "enter", " ":
		switch settingsOption(v.cursor) {
		case optionAutoHide:
			resp.toggleAutoHide = true
		case optionShowContent:
			resp.toggleContent = true
		case optionTheme:
			resp.toggleTheme = true
		case optionResetSettings:
			resp.resetSettings = true
		case optionDeleteAll:
			resp.deleteAllRequested = true
		}
	}
	return resp
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func renderSettingsView(v *settingsView, settings config.Settings, clipCount int, st styles, width int) string {
	labels := []string{
		"Hide after copy: " + onOff(settings.AutoHide),
		"Show clip content: " + onOff(settings.ShowContent),
		"Theme: " + settings.Theme,
		"Reset user settings",
		"Delete all entries",
	}

	var b strings.Builder
	for i, label := range labels {
		row := "  " + label
		switch {
		case i == v.cursor:
			row = st.Selected.Render(padRight("> "+label, width))
		case settingsOption(i) == optionDeleteAll:
			row = st.Warning.Render(row)
		default:
			row = st.Text.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(pluralize(clipCount, "clip") + " in view"))
	return b.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
