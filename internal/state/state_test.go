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
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/adaryorg/clipvault/internal/storage"
)

func createTestState(t *testing.T) (*State, *storage.Storage) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "clips.db"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	s := New(store, 20)
	s.Reload()
	return s, store
}

func clipContents(clips []storage.Clip) []string {
	var out []string
	for _, c := range clips {
		out = append(out, c.Content)
	}
	return out
}

func TestNewDefaultsRecentLimit(t *testing.T) {
	s := New(nil, 0)
	if s.RecentLimit != 20 {
		t.Errorf("Expected default limit 20, got %d", s.RecentLimit)
	}
	if s.Source() != SourceRecent {
		t.Errorf("Expected recent source, got %v", s.Source())
	}
}

func TestCreateClipReloads(t *testing.T) {
	s, _ := createTestState(t)

	if err := s.CreateClip("typed by hand"); err != nil {
		t.Fatalf("CreateClip failed: %v", err)
	}
	if len(s.Clips) != 1 || s.Clips[0].Content != "typed by hand" {
		t.Errorf("Expected new clip in state, got %v", clipContents(s.Clips))
	}

	if err := s.CreateClip("   "); !errors.Is(err, storage.ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent for blank clip, got %v", err)
	}
}

func TestTogglePinReorders(t *testing.T) {
	s, store := createTestState(t)
	base := time.Unix(1700000000, 0)
	old, _ := store.SaveClip("old", base)
	store.SaveClip("new", base.Add(time.Minute))
	s.ReloadClips()

	if err := s.TogglePin(old); err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if s.Clips[0].Content != "old" || !s.Clips[0].Pinned {
		t.Errorf("Expected pinned clip first, got %+v", s.Clips[0])
	}
}

func TestDeleteClipUpdatesCounts(t *testing.T) {
	s, store := createTestState(t)
	clipID, _ := store.SaveClip("tagged", time.Unix(1700000000, 0))

	tagID, err := s.CreateTag("work")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := s.AssignTag(clipID, tagID); err != nil {
		t.Fatalf("AssignTag failed: %v", err)
	}
	if s.TagCounts[tagID] != 1 {
		t.Errorf("Expected tag count 1, got %d", s.TagCounts[tagID])
	}
	if names := s.TagsForClip(clipID); len(names) != 1 || names[0] != "work" {
		t.Errorf("Expected clip to carry 'work', got %v", names)
	}

	if err := s.DeleteClip(clipID); err != nil {
		t.Fatalf("DeleteClip failed: %v", err)
	}
	if len(s.Clips) != 0 {
		t.Errorf("Expected no clips, got %v", clipContents(s.Clips))
	}
	if s.TagCounts[tagID] != 0 {
		t.Errorf("Expected tag count 0 after delete, got %d", s.TagCounts[tagID])
	}
}

func TestUnassignTag(t *testing.T) {
	s, store := createTestState(t)
	clipID, _ := store.SaveClip("tagged", time.Unix(1700000000, 0))
	tagID, _ := s.CreateTag("temp")
	s.AssignTag(clipID, tagID)

	if err := s.UnassignTag(clipID, tagID); err != nil {
		t.Fatalf("UnassignTag failed: %v", err)
	}
	if len(s.TagsForClip(clipID)) != 0 {
		t.Errorf("Expected no tags, got %v", s.TagsForClip(clipID))
	}
}

func TestCreateTagErrorsAreWrapped(t *testing.T) {
	s, _ := createTestState(t)
	s.CreateTag("dup")

	_, err := s.CreateTag("dup")
	if !errors.Is(err, storage.ErrDuplicateTag) {
		t.Errorf("Expected ErrDuplicateTag, got %v", err)
	}
	if len(s.Tags) != 1 {
		t.Errorf("Expected 1 tag, got %d", len(s.Tags))
	}
}

func TestUpdateTagRefreshesClipTags(t *testing.T) {
	s, store := createTestState(t)
	clipID, _ := store.SaveClip("content", time.Unix(1700000000, 0))
	tagID, _ := s.CreateTag("before")
	s.AssignTag(clipID, tagID)

	if err := s.UpdateTag(tagID, "after", "#112233"); err != nil {
		t.Fatalf("UpdateTag failed: %v", err)
	}

	tag, ok := s.TagByName("after")
	if !ok || tag.Color != "#112233" {
		t.Errorf("Expected renamed tag with color, got %+v (found=%v)", tag, ok)
	}
	if names := s.TagsForClip(clipID); len(names) != 1 || names[0] != "after" {
		t.Errorf("Expected clip tags to show new name, got %v", names)
	}

	if err := s.UpdateTagColor(tagID, ""); err != nil {
		t.Fatalf("UpdateTagColor failed: %v", err)
	}
	if tag, _ := s.TagByID(tagID); tag.Color != "" {
		t.Errorf("Expected color reset, got %q", tag.Color)
	}
}

func TestShowTagAndDeleteFallsBackToRecent(t *testing.T) {
	s, store := createTestState(t)
	base := time.Unix(1700000000, 0)
	tagged, _ := store.SaveClip("tagged", base)
	store.SaveClip("plain", base.Add(time.Minute))
	tagID, _ := s.CreateTag("filter")
	s.AssignTag(tagged, tagID)

	tag, _ := s.TagByID(tagID)
	s.ShowTag(tag)
	if s.Source() != SourceTag {
		t.Fatalf("Expected tag source, got %v", s.Source())
	}
	if got := clipContents(s.Clips); len(got) != 1 || got[0] != "tagged" {
		t.Errorf("Expected only tagged clip, got %v", got)
	}
	if s.SourceLabel() != "Tag: filter" {
		t.Errorf("Unexpected label %q", s.SourceLabel())
	}

	if err := s.DeleteTag(tagID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if s.Source() != SourceRecent {
		t.Errorf("Expected fallback to recent source, got %v", s.Source())
	}
	if len(s.Clips) != 2 {
		t.Errorf("Expected both clips after tag deletion, got %v", clipContents(s.Clips))
	}
}

func TestDateNavigation(t *testing.T) {
	s, store := createTestState(t)
	day := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.Local)
	store.SaveClip("yesterday", day.Add(-time.Hour))
	store.SaveClip("today", day.Add(9*time.Hour))

	s.ShowDate(day.Add(15 * time.Hour))
	if !s.Date().Equal(day) {
		t.Errorf("Expected date normalized to midnight, got %v", s.Date())
	}
	if got := clipContents(s.Clips); len(got) != 1 || got[0] != "today" {
		t.Errorf("Expected today's clip, got %v", got)
	}

	s.ShiftDate(-1)
	if got := clipContents(s.Clips); len(got) != 1 || got[0] != "yesterday" {
		t.Errorf("Expected yesterday's clip, got %v", got)
	}

	s.now = func() time.Time { return day.Add(20 * time.Hour) }
	s.ShowToday()
	if !s.Date().Equal(day) {
		t.Errorf("Expected today, got %v", s.Date())
	}

	s.ShowRecent()
	if s.Source() != SourceRecent || len(s.Clips) != 2 {
		t.Errorf("Expected recent clips, got source %v with %d clips", s.Source(), len(s.Clips))
	}
}

func TestSearch(t *testing.T) {
	s, store := createTestState(t)
	base := time.Unix(1700000000, 0)
	store.SaveClip("needle in haystack", base)
	store.SaveClip("hay only", base.Add(time.Minute))

	s.Search("NEEDLE")
	if s.Source() != SourceSearch {
		t.Fatalf("Expected search source, got %v", s.Source())
	}
	if got := clipContents(s.Clips); len(got) != 1 || got[0] != "needle in haystack" {
		t.Errorf("Unexpected search results %v", got)
	}

	s.Search("  ")
	if s.Source() != SourceRecent {
		t.Errorf("Expected blank search to restore recent source, got %v", s.Source())
	}
}

func TestRecentLimitApplies(t *testing.T) {
	s, store := createTestState(t)
	base := time.Unix(1700000000, 0)
	for i := 0; i < 30; i++ {
		store.SaveClip("clip", base.Add(time.Duration(i)*time.Second))
	}

	s.ReloadClips()
	if len(s.Clips) != 20 {
		t.Errorf("Expected 20 recent clips, got %d", len(s.Clips))
	}
}

func TestReset(t *testing.T) {
	s, store := createTestState(t)
	clipID, _ := store.SaveClip("content", time.Unix(1700000000, 0))
	tagID, _ := s.CreateTag("tag")
	s.AssignTag(clipID, tagID)
	s.Search("content")

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(s.Clips) != 0 || len(s.Tags) != 0 || len(s.ClipTags) != 0 {
		t.Errorf("Expected empty state, got %d clips, %d tags", len(s.Clips), len(s.Tags))
	}
	if s.Source() != SourceRecent {
		t.Errorf("Expected recent source after reset, got %v", s.Source())
	}
}

type failingStore struct {
	Store
}

func (failingStore) LoadRecentClips(int) ([]storage.Clip, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) LoadClipTags() (map[int64][]string, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) LoadTags() ([]storage.Tag, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) TogglePin(int64) error {
	return storage.ErrNotFound
}

func TestStorageErrorsFallBackToEmpty(t *testing.T) {
	s := New(failingStore{}, 20)
	s.Reload()

	if s.Clips != nil || len(s.Tags) != 0 {
		t.Errorf("Expected empty collections, got %d clips, %d tags", len(s.Clips), len(s.Tags))
	}
	if s.ClipTags == nil {
		t.Error("Expected non-nil clip tag map")
	}

	if err := s.TogglePin(1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected wrapped ErrNotFound, got %v", err)
	}
}
