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
	"testing"
)

func withEnv(t *testing.T, key, value string) {
	original, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, original)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestDetectColorSupport(t *testing.T) {
	withEnv(t, "NO_COLOR", "")

	tests := []struct {
		term     string
		expected bool
	}{
		{"xterm-256color", true},
		{"screen", true},
		{"dumb", false},
		{"unknown", false},
	}

	for _, test := range tests {
		if got := detectColorSupport(test.term); got != test.expected {
			t.Errorf("detectColorSupport(%q) = %v, expected %v", test.term, got, test.expected)
		}
	}

	withEnv(t, "NO_COLOR", "1")
	if detectColorSupport("xterm-256color") {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestDetectUnicodeSupport(t *testing.T) {
	withEnv(t, "LANG", "C")
	withEnv(t, "LC_ALL", "")

	if !detectUnicodeSupport("xterm-kitty", "") {
		t.Error("Expected kitty to support unicode")
	}
	if detectUnicodeSupport("linux", "") {
		t.Error("Expected linux console without UTF-8 locale to be ASCII only")
	}

	withEnv(t, "LANG", "en_US.UTF-8")
	if !detectUnicodeSupport("linux", "") {
		t.Error("Expected UTF-8 locale to enable unicode")
	}
}

func TestPinMarker(t *testing.T) {
	if (TerminalCapabilities{SupportsUnicode: true}).PinMarker() != "★" {
		t.Error("Expected star marker for unicode terminals")
	}
	if (TerminalCapabilities{}).PinMarker() != "*" {
		t.Error("Expected ASCII marker for basic terminals")
	}
}
