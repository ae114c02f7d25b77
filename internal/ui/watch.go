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
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/adaryorg/clipvault/internal/logging"
)

// dbChangedMsg is delivered when the database file changes on disk.
type dbChangedMsg struct{}

// dbWatcher turns filesystem writes to the database (and its journal)
// into a coalescing signal.
type dbWatcher struct {
	watcher *fsnotify.Watcher
	changes chan struct{}
}

func watchDatabase(dbPath string) (*dbWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &dbWatcher{
		watcher: watcher,
		changes: make(chan struct{}, 1),
	}
	go w.loop(filepath.Base(dbPath))
	return w, nil
}

func (w *dbWatcher) loop(base string) {
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("Database watch error: %v", err)
		}
	}
}

// wait blocks until the next change. It yields nil once the watcher closes.
func (w *dbWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.changes; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

func (w *dbWatcher) Close() error {
	return w.watcher.Close()
}
