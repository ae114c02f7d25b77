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

package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/adaryorg/clipvault/internal/logging"
	"github.com/adaryorg/clipvault/internal/storage"
)

// Store is the subset of storage.Storage the application state drives.
type Store interface {
	SaveClip(content string, timestamp time.Time) (int64, error)
	LoadRecentClips(limit int) ([]storage.Clip, error)
	LoadClipsForDate(day time.Time) ([]storage.Clip, error)
	LoadClipsForTag(tagID int64) ([]storage.Clip, error)
	SearchClips(query string, limit int) ([]storage.Clip, error)
	TogglePin(id int64) error
	DeleteClip(id int64) error
	CreateTag(name string) (int64, error)
	UpdateTag(id int64, name, color string) error
	UpdateTagColor(id int64, color string) error
	DeleteTag(id int64) error
	AssignTag(clipID, tagID int64) error
	UnassignTag(clipID, tagID int64) error
	LoadTags() ([]storage.Tag, error)
	LoadClipTags() (map[int64][]string, error)
	CountClipsForTag(tagID int64) (int, error)
	Reset() error
}

// Source selects which clips are displayed.
type Source int

const (
	SourceRecent Source = iota
	SourceDate
	SourceTag
	SourceSearch
)

// State holds the collections the UI renders. Every mutation writes
// through the store and then reloads what it touched.
type State struct {
	store Store
	now   func() time.Time

	Clips     []storage.Clip
	Tags      []storage.Tag
	ClipTags  map[int64][]string
	TagCounts map[int64]int

	RecentLimit int

	source Source
	date   time.Time
	tag    storage.Tag
	query  string
}

func New(store Store, recentLimit int) *State {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	s := &State{
		store:       store,
		now:         time.Now,
		RecentLimit: recentLimit,
		ClipTags:    map[int64][]string{},
		TagCounts:   map[int64]int{},
	}
	s.date = startOfDay(s.now())
	return s
}

// Reload refreshes every collection.
func (s *State) Reload() {
	s.ReloadTags()
	s.ReloadClips()
}

// ReloadClips refreshes the clip list for the current source and the
// clip to tag-name map.
func (s *State) ReloadClips() {
	var clips []storage.Clip
	var err error

	switch s.source {
	case SourceDate:
		clips, err = s.store.LoadClipsForDate(s.date)
	case SourceTag:
		clips, err = s.store.LoadClipsForTag(s.tag.ID)
	case SourceSearch:
		clips, err = s.store.SearchClips(s.query, s.RecentLimit)
	default:
		clips, err = s.store.LoadRecentClips(s.RecentLimit)
	}
	if err != nil {
		logging.Error("Failed to load clips: %v", err)
		clips = nil
	}
	s.Clips = clips

	clipTags, err := s.store.LoadClipTags()
	if err != nil {
		logging.Error("Failed to load clip tags: %v", err)
		clipTags = map[int64][]string{}
	}
	s.ClipTags = clipTags
}

// ReloadTags refreshes the tag list and per-tag clip counts.
func (s *State) ReloadTags() {
	tags, err := s.store.LoadTags()
	if err != nil {
		logging.Error("Failed to load tags: %v", err)
		tags = nil
	}
	s.Tags = tags

	counts := make(map[int64]int, len(tags))
	for _, tag := range tags {
		n, err := s.store.CountClipsForTag(tag.ID)
		if err != nil {
			logging.Warn("Failed to count clips for tag %q: %v", tag.Name, err)
			continue
		}
		counts[tag.ID] = n
	}
	s.TagCounts = counts

	if s.source == SourceTag {
		if tag, ok := s.TagByID(s.tag.ID); ok {
			s.tag = tag
		} else {
			s.source = SourceRecent
		}
	}
}

func (s *State) Source() Source   { return s.source }
func (s *State) Date() time.Time  { return s.date }
func (s *State) Tag() storage.Tag { return s.tag }
func (s *State) Query() string    { return s.query }

func (s *State) ShowRecent() {
	s.source = SourceRecent
	s.query = ""
	s.ReloadClips()
}

func (s *State) ShowDate(day time.Time) {
	s.source = SourceDate
	s.date = startOfDay(day)
	s.ReloadClips()
}

func (s *State) ShowToday() {
	s.ShowDate(s.now())
}

// ShiftDate moves the date filter by the given number of days, switching
// to the date source if another one was active.
func (s *State) ShiftDate(days int) {
	s.ShowDate(s.date.AddDate(0, 0, days))
}

func (s *State) ShowTag(tag storage.Tag) {
	s.source = SourceTag
	s.tag = tag
	s.ReloadClips()
}

// Search filters by substring. An empty query returns to recent clips.
func (s *State) Search(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.ShowRecent()
		return
	}
	s.source = SourceSearch
	s.query = query
	s.ReloadClips()
}

// SourceLabel describes the active source for the top panel.
func (s *State) SourceLabel() string {
	switch s.source {
	case SourceDate:
		return "Date: " + s.date.Format("Mon Jan 2, 2006")
	case SourceTag:
		return "Tag: " + s.tag.Name
	case SourceSearch:
		return fmt.Sprintf("Search: %q", s.query)
	default:
		return fmt.Sprintf("Recent (%d)", s.RecentLimit)
	}
}

func (s *State) TagsForClip(clipID int64) []string {
	return s.ClipTags[clipID]
}

func (s *State) TagByID(id int64) (storage.Tag, bool) {
	for _, tag := range s.Tags {
		if tag.ID == id {
			return tag, true
		}
	}
	return storage.Tag{}, false
}

func (s *State) TagByName(name string) (storage.Tag, bool) {
	for _, tag := range s.Tags {
		if tag.Name == name {
			return tag, true
		}
	}
	return storage.Tag{}, false
}

// CreateClip stores content typed by the user as a new clip.
func (s *State) CreateClip(content string) error {
	if strings.TrimSpace(content) == "" {
		return storage.ErrEmptyContent
	}
	if _, err := s.store.SaveClip(content, s.now()); err != nil {
		return s.fail("create clip", err)
	}
	s.ReloadClips()
	return nil
}

func (s *State) DeleteClip(id int64) error {
	if err := s.store.DeleteClip(id); err != nil {
		return s.fail("delete clip", err)
	}
	s.ReloadClips()
	s.ReloadTags()
	return nil
}

func (s *State) TogglePin(id int64) error {
	if err := s.store.TogglePin(id); err != nil {
		return s.fail("toggle pin", err)
	}
	s.ReloadClips()
	return nil
}

func (s *State) AssignTag(clipID, tagID int64) error {
	if err := s.store.AssignTag(clipID, tagID); err != nil {
		return s.fail("assign tag", err)
	}
	s.ReloadClips()
	s.ReloadTags()
	return nil
}

func (s *State) UnassignTag(clipID, tagID int64) error {
	if err := s.store.UnassignTag(clipID, tagID); err != nil {
		return s.fail("remove tag", err)
	}
	s.ReloadClips()
	s.ReloadTags()
	return nil
}

func (s *State) CreateTag(name string) (int64, error) {
	id, err := s.store.CreateTag(name)
	if err != nil {
		return 0, s.fail("create tag", err)
	}
	s.ReloadTags()
	return id, nil
}

func (s *State) UpdateTag(id int64, name, color string) error {
	if err := s.store.UpdateTag(id, name, color); err != nil {
		return s.fail("update tag", err)
	}
	s.ReloadTags()
	s.ReloadClips()
	return nil
}

func (s *State) UpdateTagColor(id int64, color string) error {
	if err := s.store.UpdateTagColor(id, color); err != nil {
		return s.fail("update tag color", err)
	}
	s.ReloadTags()
	return nil
}

func (s *State) DeleteTag(id int64) error {
	if err := s.store.DeleteTag(id); err != nil {
		return s.fail("delete tag", err)
	}
	s.ReloadTags()
	s.ReloadClips()
	return nil
}

// Reset deletes every clip and tag.
func (s *State) Reset() error {
	if err := s.store.Reset(); err != nil {
		return s.fail("reset", err)
	}
	s.source = SourceRecent
	s.query = ""
	s.Reload()
	return nil
}

func (s *State) fail(action string, err error) error {
	logging.Error("Failed to %s: %v", action, err)
	return fmt.Errorf("failed to %s: %w", action, err)
}

func startOfDay(t time.Time) time.Time {
	start, _ := storage.DayBounds(t)
	return start
}
