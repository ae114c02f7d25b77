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

package maintenance

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adaryorg/clipvault/internal/logging"
)

// Store is the part of the storage layer maintenance needs.
type Store interface {
	TrimToLimit(max int) (int64, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

type Options struct {
	Schedule      string
	MaxEntries    int
	RetentionDays int
}

// Result reports what a single run removed.
type Result struct {
	Trimmed int64
	Pruned  int64
}

// Scheduler periodically trims and prunes the clip history.
type Scheduler struct {
	store Store
	opts  Options
	cron  *cron.Cron
	now   func() time.Time
}

func New(store Store, opts Options) *Scheduler {
	return &Scheduler{
		store: store,
		opts:  opts,
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Enabled reports whether any job would do work.
func (s *Scheduler) Enabled() bool {
	return s.opts.MaxEntries > 0 || s.opts.RetentionDays > 0
}

// Start registers the job and starts the cron loop. It is a no-op when
// both limits are zero.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		logging.Info("Maintenance disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.opts.Schedule, func() { s.RunOnce() }); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.opts.Schedule, err)
	}
	s.cron.Start()
	logging.Info("Maintenance scheduled (%s, max %d entries, %d day retention)",
		s.opts.Schedule, s.opts.MaxEntries, s.opts.RetentionDays)
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce applies both limits immediately.
func (s *Scheduler) RunOnce() Result {
	var result Result

	if s.opts.MaxEntries > 0 {
		n, err := s.store.TrimToLimit(s.opts.MaxEntries)
		if err != nil {
			logging.Error("Failed to trim clip history: %v", err)
		} else {
			result.Trimmed = n
		}
	}

	if s.opts.RetentionDays > 0 {
		cutoff := s.now().AddDate(0, 0, -s.opts.RetentionDays)
		n, err := s.store.PruneOlderThan(cutoff)
		if err != nil {
			logging.Error("Failed to prune old clips: %v", err)
		} else {
			result.Pruned = n
		}
	}

	if result.Trimmed > 0 || result.Pruned > 0 {
		logging.Info("Maintenance removed %d clips over the limit and %d expired clips", result.Trimmed, result.Pruned)
	}
	return result
}
