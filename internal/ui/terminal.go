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
	"os"
	"strconv"
	"strings"
)

// TerminalCapabilities holds information about what the terminal can display
type TerminalCapabilities struct {
	SupportsUnicode bool
	SupportsColor   bool
	Supports256     bool
}

// DetectTerminalCapabilities analyzes the current terminal's capabilities
func DetectTerminalCapabilities() TerminalCapabilities {
	term := strings.ToLower(os.Getenv("TERM"))
	termProgram := strings.ToLower(os.Getenv("TERM_PROGRAM"))

	caps := TerminalCapabilities{
		SupportsUnicode: detectUnicodeSupport(term, termProgram),
		SupportsColor:   detectColorSupport(term),
	}
	caps.Supports256 = caps.SupportsColor && detectExtendedColors(term)
	return caps
}

// PinMarker returns the glyph shown next to pinned clips.
func (c TerminalCapabilities) PinMarker() string {
	if c.SupportsUnicode {
		return "★"
	}
	return "*"
}

func detectUnicodeSupport(term, termProgram string) bool {
	unicodeTerminals := []string{
		"xterm-256color", "screen-256color", "tmux-256color",
		"alacritty", "kitty", "iterm2", "vscode",
		"gnome-terminal", "konsole", "wezterm", "ghostty",
	}

	for _, supportedTerm := range unicodeTerminals {
		if strings.Contains(term, supportedTerm) || strings.Contains(termProgram, supportedTerm) {
			return true
		}
	}

	lang := strings.ToUpper(os.Getenv("LANG"))
	lcAll := strings.ToUpper(os.Getenv("LC_ALL"))
	if strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8") {
		return true
	}

	if term == "" || strings.Contains(term, "dumb") || strings.Contains(term, "linux") {
		return false
	}

	return true
}

func detectColorSupport(term string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.Contains(term, "dumb") || strings.Contains(term, "unknown") {
		return false
	}
	return true
}

// detectExtendedColors reports whether 256-colour escapes are safe to use.
func detectExtendedColors(term string) bool {
	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return true
	}

	modernIndicators := []string{
		"ITERM_SESSION_ID",
		"KITTY_WINDOW_ID",
		"ALACRITTY_SOCKET",
		"WEZTERM_PANE",
		"GHOSTTY_RESOURCES_DIR",
	}
	for _, indicator := range modernIndicators {
		if os.Getenv(indicator) != "" {
			return true
		}
	}

	if colors := os.Getenv("COLORS"); colors != "" {
		if numColors, err := strconv.Atoi(colors); err == nil {
			return numColors >= 256
		}
	}

	if strings.Contains(term, "256") || strings.Contains(term, "color") {
		return true
	}
	if term == "linux" || term == "vt100" || term == "vt220" || term == "xterm" {
		return false
	}

	return true
}
