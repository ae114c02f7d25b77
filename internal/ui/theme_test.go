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
	"testing"

	"github.com/adaryorg/clipvault/internal/config"
	"github.com/adaryorg/clipvault/internal/storage"
)

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := ParseHexColor("#FF8000")
	if !ok || r != 255 || g != 128 || b != 0 {
		t.Errorf("Expected (255,128,0,true), got (%d,%d,%d,%v)", r, g, b, ok)
	}

	for _, invalid := range []string{"", "FF8000", "#FFF", "#GGGGGG", "#FF80001"} {
		if _, _, _, ok := ParseHexColor(invalid); ok {
			t.Errorf("ParseHexColor(%q) should fail", invalid)
		}
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		background string
		expected   string
	}{
		{"#FFFFFF", "#000000"},
		{"#000000", "#FFFFFF"},
		{"#F1C40F", "#000000"}, // yellow, brightness ~189
		{"#3498DB", "#FFFFFF"}, // blue
		{"#BBBBBB", "#000000"},
		{"bogus", "#FFFFFF"},
	}

	for _, test := range tests {
		if got := ContrastText(test.background); got != test.expected {
			t.Errorf("ContrastText(%q) = %q, expected %q", test.background, got, test.expected)
		}
	}
}

func TestNextPresetColor(t *testing.T) {
	if NextPresetColor("") != PresetColors[0] {
		t.Error("Empty color should start at the first preset")
	}
	if NextPresetColor("#123456") != PresetColors[0] {
		t.Error("Unknown color should start at the first preset")
	}
	if NextPresetColor(PresetColors[0]) != PresetColors[1] {
		t.Error("Expected second preset after the first")
	}
	if NextPresetColor(PresetColors[len(PresetColors)-1]) != PresetColors[0] {
		t.Error("Expected wrap around to the first preset")
	}
	if NextPresetColor("#e74c3c") != PresetColors[1] {
		t.Error("Preset matching should ignore case")
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor(config.ThemeLight).Name != config.ThemeLight {
		t.Error("Expected light palette")
	}
	if PaletteFor("anything").Name != config.ThemeDark {
		t.Error("Expected dark palette fallback")
	}
}

func TestTagColorFallsBackToPalette(t *testing.T) {
	st := newStyles(darkPalette)

	if got := st.tagColor(storage.Tag{Name: "plain"}); got != darkPalette.DefaultTag {
		t.Errorf("Expected default tag color, got %q", got)
	}
	if got := st.tagColor(storage.Tag{Name: "red", Color: "#FF0000"}); got != "#FF0000" {
		t.Errorf("Expected custom tag color, got %q", got)
	}
}
