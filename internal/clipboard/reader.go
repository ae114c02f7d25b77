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

package clipboard

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// Reader returns the current textual clipboard content.
type Reader interface {
	ReadText() (string, error)
}

// SystemReader reads the desktop clipboard, using wl-paste on Wayland and
// the native clipboard API everywhere else.
type SystemReader struct {
	useWayland bool
}

func NewSystemReader() *SystemReader {
	return &SystemReader{useWayland: isWaylandSession()}
}

func (r *SystemReader) ReadText() (string, error) {
	if r.useWayland {
		return readWayland()
	}
	if err := ensureInit(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func readWayland() (string, error) {
	output, err := exec.Command("wl-paste", "--no-newline").Output()
	if err != nil {
		return "", fmt.Errorf("wl-paste failed: %w", err)
	}
	return string(output), nil
}

func ensureInit() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	return initErr
}

func isWaylandSession() bool {
	return os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("XDG_SESSION_TYPE") == "wayland"
}

// Copy places content on the system clipboard.
func Copy(content string) error {
	if isWaylandSession() {
		return copyWayland(content)
	}
	return copyX11(content)
}

func copyWayland(content string) error {
	cmd := exec.Command("wl-copy")
	cmd.Stdin = strings.NewReader(content)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy failed: %w", err)
	}
	return nil
}

func copyX11(content string) error {
	// CLIPBOARD serves Ctrl+V, PRIMARY serves middle click and Shift+Insert.
	if err := atotto.WriteAll(content); err != nil {
		return err
	}

	cmd := exec.Command("xclip", "-selection", "primary")
	cmd.Stdin = strings.NewReader(content)
	cmd.Run() // PRIMARY is optional

	return nil
}
