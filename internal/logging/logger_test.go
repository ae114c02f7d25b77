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

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetAndGetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info")

	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"invalid", "info"},
		{"", "info"},
	}

	for _, test := range tests {
		SetLevel(test.input)
		if GetLevel() != test.expected {
			t.Errorf("SetLevel(%q): expected %q, got %q", test.input, test.expected, GetLevel())
		}
	}
}

func TestLogFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug")

	tests := []struct {
		name    string
		logFunc func(string, ...interface{})
		level   string
	}{
		{"Debug", Debug, "debug"},
		{"Info", Info, "info"},
		{"Warn", Warn, "warn"},
		{"Error", Error, "error"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf.Reset()
			test.logFunc("test message %s", "arg")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
			}
			if entry["level"] != test.level {
				t.Errorf("Expected level %q, got %v", test.level, entry["level"])
			}
			if entry["message"] != "test message arg" {
				t.Errorf("Expected formatted message, got %v", entry["message"])
			}
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")

	Debug("debug message")
	Info("info message")
	if buf.Len() != 0 {
		t.Errorf("Expected debug and info to be filtered, got %q", buf.String())
	}

	Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Error("Warn should log when level is WARN")
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "nested", "clipvault.log")

	err := InitLogger(Options{
		File:       logFile,
		Level:      "info",
		MaxSize:    1,
		MaxAge:     1,
		MaxBackups: 1,
	})
	if err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, "info") })

	Info("written to %s", "file")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("Expected log file to contain message, got %q", string(data))
	}
}
