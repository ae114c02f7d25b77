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

package tray

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adaryorg/clipvault/internal/logging"
)

// Launcher starts the interactive UI.
type Launcher interface {
	Launch() error
}

// TerminalLauncher runs the UI binary inside a terminal emulator as
// `<terminal> -e <ui>`.
type TerminalLauncher struct {
	Terminal string
	UIPath   string
}

func (l TerminalLauncher) Launch() error {
	if l.Terminal == "" {
		return errors.New("no terminal configured")
	}
	if l.UIPath == "" {
		return errors.New("ui binary not found")
	}

	cmd := exec.Command(l.Terminal, "-e", l.UIPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.Terminal, err)
	}
	logging.Info("Launched UI (pid %d)", cmd.Process.Pid)

	// Reap the child so it does not linger as a zombie
	go cmd.Wait()
	return nil
}

// FindUI looks for the named binary next to the running executable and
// then on $PATH.
func FindUI(name string) (string, error) {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return exec.LookPath(name)
}
