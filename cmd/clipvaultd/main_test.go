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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adaryorg/clipvault/internal/config"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })
	return tmpDir
}

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "clipvaultd version") {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := setTestHome(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Watcher.IntervalMs != config.DefaultIntervalMs {
		t.Errorf("Expected default interval, got %d", cfg.Watcher.IntervalMs)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "clipvault", "config.toml")); err != nil {
		t.Errorf("Expected default config file: %v", err)
	}
}

func TestOpenStoreHonoursConfiguredPath(t *testing.T) {
	home := setTestHome(t)

	cfg := config.Default()
	cfg.Database.Path = "~/data/history.db"

	store, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()

	if store.Path() != filepath.Join(home, "data", "history.db") {
		t.Errorf("Unexpected database path: %s", store.Path())
	}
}
