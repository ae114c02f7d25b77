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
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

type fakeReader struct {
	mu     sync.Mutex
	values []string
	errs   []error
	index  int
}

func (f *fakeReader) ReadText() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.index >= len(f.values) {
		if len(f.values) == 0 {
			return "", nil
		}
		return f.values[len(f.values)-1], nil
	}
	value := f.values[f.index]
	var err error
	if f.index < len(f.errs) {
		err = f.errs[f.index]
	}
	f.index++
	return value, err
}

type recorder struct {
	mu     sync.Mutex
	events []string
	times  []time.Time
}

func (r *recorder) record(content string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, content)
	r.times = append(r.times, at)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func pollAll(w *Watcher, n int) {
	for i := 0; i < n; i++ {
		w.Poll()
	}
}

func TestIdenticalReadsProduceOneEvent(t *testing.T) {
	rec := &recorder{}
	watcher := NewWatcher(&fakeReader{values: []string{"hello", "hello"}}, rec.record)

	pollAll(watcher, 2)

	if rec.count() != 1 {
		t.Errorf("Expected 1 event, got %d", rec.count())
	}
}

func TestDifferentReadsProduceTwoEvents(t *testing.T) {
	rec := &recorder{}
	watcher := NewWatcher(&fakeReader{values: []string{"first", "second"}}, rec.record)

	pollAll(watcher, 2)

	if rec.count() != 2 {
		t.Fatalf("Expected 2 events, got %d", rec.count())
	}
	if rec.events[0] != "first" || rec.events[1] != "second" {
		t.Errorf("Unexpected events %v", rec.events)
	}
}

func TestNonConsecutiveDuplicatesAreReported(t *testing.T) {
	rec := &recorder{}
	watcher := NewWatcher(&fakeReader{values: []string{"A", "B", "A"}}, rec.record)

	pollAll(watcher, 3)

	if rec.count() != 3 {
		t.Errorf("Expected 3 events for A, B, A; got %d", rec.count())
	}
}

func TestBlankReadsAreIgnored(t *testing.T) {
	rec := &recorder{}
	reader := &fakeReader{values: []string{"", "   ", "\n\t", "text", "  "}}
	watcher := NewWatcher(reader, rec.record)

	pollAll(watcher, 5)

	if rec.count() != 1 || rec.events[0] != "text" {
		t.Errorf("Expected only 'text' to be reported, got %v", rec.events)
	}
}

func TestWhitespaceVariantIsAChange(t *testing.T) {
	rec := &recorder{}
	watcher := NewWatcher(&fakeReader{values: []string{"value", "value "}}, rec.record)

	pollAll(watcher, 2)

	if rec.count() != 2 {
		t.Errorf("Expected exact comparison to report 2 events, got %d", rec.count())
	}
}

func TestReadErrorsAreSkipped(t *testing.T) {
	rec := &recorder{}
	reader := &fakeReader{
		values: []string{"", "after error"},
		errs:   []error{errors.New("clipboard unavailable"), nil},
	}
	watcher := NewWatcher(reader, rec.record)

	if watcher.Poll() {
		t.Error("Expected failed read to report no event")
	}
	if !watcher.Poll() {
		t.Error("Expected watcher to recover after a read error")
	}
	if rec.count() != 1 {
		t.Errorf("Expected 1 event, got %d", rec.count())
	}
}

func TestCallbackReceivesObservationTime(t *testing.T) {
	rec := &recorder{}
	watcher := NewWatcher(&fakeReader{values: []string{"timed"}}, rec.record)
	fixed := time.Date(2026, time.October, 14, 15, 4, 0, 0, time.Local)
	watcher.now = func() time.Time { return fixed }

	watcher.Poll()

	if rec.count() != 1 || !rec.times[0].Equal(fixed) {
		t.Errorf("Expected event at %v, got %v", fixed, rec.times)
	}
}

func TestSetInterval(t *testing.T) {
	watcher := NewWatcher(&fakeReader{}, nil)

	if watcher.Interval() != DefaultInterval {
		t.Errorf("Expected default interval %v, got %v", DefaultInterval, watcher.Interval())
	}

	watcher.SetInterval(-time.Second)
	if watcher.Interval() != DefaultInterval {
		t.Errorf("Negative interval should be ignored, got %v", watcher.Interval())
	}

	watcher.SetInterval(50 * time.Millisecond)
	if watcher.Interval() != 50*time.Millisecond {
		t.Errorf("Expected 50ms, got %v", watcher.Interval())
	}
}

func TestStartPollsUntilCancelled(t *testing.T) {
	rec := &recorder{}
	watcher := NewWatcher(&fakeReader{values: []string{"one", "two"}}, rec.record)
	watcher.SetInterval(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Start(ctx)
	}()

	deadline := time.Now().Add(time.Second)
	for rec.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watcher did not stop within timeout")
	}

	if rec.count() != 2 {
		t.Errorf("Expected 2 events, got %d", rec.count())
	}
}

func TestStartTimeout(t *testing.T) {
	watcher := NewWatcher(&fakeReader{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := watcher.Start(ctx); err != context.DeadlineExceeded {
		t.Errorf("Expected context.DeadlineExceeded error, got %v", err)
	}
}

func TestTruncateForLog(t *testing.T) {
	short := "short"
	if truncateForLog(short) != short {
		t.Errorf("Short content should be unchanged")
	}

	long := ""
	for i := 0; i < 100; i++ {
		long += "x"
	}
	if got := truncateForLog(long); len(got) != 50 {
		t.Errorf("Expected truncated length 50, got %d", len(got))
	}

	umlauts := strings.Repeat("ü", 60)
	got := truncateForLog(umlauts)
	if !utf8.ValidString(got) {
		t.Errorf("Truncation split a multi-byte rune: %q", got)
	}
	if utf8.RuneCountInString(got) != 50 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected 47 runes plus ellipsis, got %q", got)
	}
}

func TestCopy(t *testing.T) {
	// Depends on a running display server
	if err := Copy("test clipboard content"); err != nil {
		t.Logf("Copy failed (expected in headless environments): %v", err)
	}
}
