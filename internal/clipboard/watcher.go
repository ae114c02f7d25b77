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
	"context"
	"strings"
	"sync"
	"time"

	"github.com/adaryorg/clipvault/internal/logging"
)

const DefaultInterval = 500 * time.Millisecond

// ChangeCallback receives every newly observed clipboard value.
type ChangeCallback func(content string, observedAt time.Time)

// Watcher polls a Reader and reports content changes.
type Watcher struct {
	reader   Reader
	callback ChangeCallback
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastSeen string
}

func NewWatcher(reader Reader, callback ChangeCallback) *Watcher {
	return &Watcher{
		reader:   reader,
		callback: callback,
		interval: DefaultInterval,
		now:      time.Now,
	}
}

// SetInterval changes the poll period. Non-positive values are ignored.
func (w *Watcher) SetInterval(interval time.Duration) {
	if interval > 0 {
		w.interval = interval
	}
}

func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Start polls until ctx is cancelled and returns ctx.Err().
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logging.Info("Clipboard watcher started (interval %s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Clipboard watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll performs a single read and reports whether the callback fired.
func (w *Watcher) Poll() bool {
	content, err := w.reader.ReadText()
	if err != nil {
		logging.Debug("Clipboard read failed: %v", err)
		return false
	}

	if strings.TrimSpace(content) == "" {
		return false
	}

	w.mu.Lock()
	if content == w.lastSeen {
		w.mu.Unlock()
		return false
	}
	w.lastSeen = content
	w.mu.Unlock()

	logging.Debug("Clipboard changed (len=%d): %s", len(content), truncateForLog(content))
	if w.callback != nil {
		w.callback(content, w.now())
	}
	return true
}

func truncateForLog(content string) string {
	const maxLen = 50
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen-3]) + "..."
}
