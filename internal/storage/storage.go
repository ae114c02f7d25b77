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

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyName    = errors.New("tag name is empty")
	ErrEmptyContent = errors.New("clip content is empty")
	ErrDuplicateTag = errors.New("tag already exists")
	ErrInvalidColor = errors.New("color must be #RRGGBB")
)

// driverName is go-sqlite3 plus a Unicode-aware fold() SQL function. The
// built-in LIKE only folds ASCII.
const driverName = "sqlite3_clipvault"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", fold, true)
		},
	})
}

func fold(s string) string {
	return strings.ToLower(s)
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Clip is a captured clipboard text snapshot.
type Clip struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Pinned    bool      `json:"pinned"`
}

// Tag is a user-defined label. An empty Color means the default color.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Storage wraps the SQLite database. Every operation takes mu for the
// duration of its single statement.
type Storage struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// DefaultPath returns the database location under the user's config dir.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "clipvault", "clips.db"), nil
}

// New opens the database at the default location.
func New() (*Storage, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens (creating if needed) the database file at path and makes sure
// the schema exists.
func Open(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// The daemon and the UI share this file, hence the busy timeout.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{db: db, path: path}
	if err := s.Init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Storage) Path() string {
	return s.path
}

// Init creates the schema. It is safe to call repeatedly.
func (s *Storage) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS clips (
			id INTEGER PRIMARY KEY,
			content TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			pinned INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			color TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS clip_tags (
			clip_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (clip_id, tag_id),
			FOREIGN KEY (clip_id) REFERENCES clips(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clips_timestamp ON clips(timestamp)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	// Files created before tag colors existed lack the column; the error for
	// an already present column is expected.
	s.db.Exec("ALTER TABLE tags ADD COLUMN color TEXT")

	return nil
}

const clipColumns = "clips.id, clips.content, clips.timestamp, clips.pinned"
const clipOrder = "ORDER BY clips.pinned DESC, clips.timestamp DESC, clips.id DESC"

// SaveClip inserts an unpinned clip and returns its id.
func (s *Storage) SaveClip(content string, timestamp time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO clips (content, timestamp, pinned) VALUES (?, ?, 0)", content, timestamp.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LoadRecentClips returns up to limit clips, pinned first, newest first.
func (s *Storage) LoadRecentClips(limit int) ([]Clip, error) {
	return s.queryClips("SELECT "+clipColumns+" FROM clips "+clipOrder+" LIMIT ?", limit)
}

// LoadClipsBetween returns clips with start <= timestamp < end.
func (s *Storage) LoadClipsBetween(start, end time.Time) ([]Clip, error) {
	return s.queryClips("SELECT "+clipColumns+" FROM clips WHERE timestamp >= ? AND timestamp < ? "+clipOrder,
		start.Unix(), end.Unix())
}

// LoadClipsForDate returns the clips captured on the given local calendar day.
func (s *Storage) LoadClipsForDate(day time.Time) ([]Clip, error) {
	start, end := DayBounds(day)
	return s.LoadClipsBetween(start, end)
}

// DayBounds returns local midnight of day and of the following day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	local := day.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}

// LoadClipsForTag returns every clip carrying the tag.
func (s *Storage) LoadClipsForTag(tagID int64) ([]Clip, error) {
	return s.queryClips("SELECT "+clipColumns+` FROM clips
		INNER JOIN clip_tags ON clips.id = clip_tags.clip_id
		WHERE clip_tags.tag_id = ? `+clipOrder, tagID)
}

// SearchClips returns up to limit clips whose content contains query,
// ignoring case (including non-ASCII letters).
func (s *Storage) SearchClips(query string, limit int) ([]Clip, error) {
	pattern := "%" + escapeLike(fold(query)) + "%"
	return s.queryClips("SELECT "+clipColumns+` FROM clips
		WHERE fold(content) LIKE ? ESCAPE '\' `+clipOrder+" LIMIT ?", pattern, limit)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// GetClip returns a single clip.
func (s *Storage) GetClip(id int64) (*Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow("SELECT "+clipColumns+" FROM clips WHERE id = ?", id)
	clip, err := scanClip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

// Count returns the number of stored clips.
func (s *Storage) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM clips").Scan(&count)
	return count, err
}

// TogglePin flips the pinned flag of a clip.
func (s *Storage) TogglePin(id int64) error {
	return s.execAffecting("UPDATE clips SET pinned = NOT pinned WHERE id = ?", id)
}

// DeleteClip removes a clip and, through the cascade, its tag associations.
func (s *Storage) DeleteClip(id int64) error {
	return s.execAffecting("DELETE FROM clips WHERE id = ?", id)
}

// CreateTag inserts a tag and returns its id.
func (s *Storage) CreateTag(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO tags (name) VALUES (?)", name)
	if err != nil {
		return 0, translateConstraint(err)
	}
	return res.LastInsertId()
}

// RenameTag changes a tag's name.
func (s *Storage) RenameTag(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.execAffecting("UPDATE tags SET name = ? WHERE id = ?", name, id)
}

// UpdateTagColor sets a tag's color. An empty color resets it to the default.
func (s *Storage) UpdateTagColor(id int64, color string) error {
	if err := validateColor(color); err != nil {
		return err
	}
	return s.execAffecting("UPDATE tags SET color = ? WHERE id = ?", nullable(color), id)
}

// UpdateTag renames and recolors a tag in one statement.
func (s *Storage) UpdateTag(id int64, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := validateColor(color); err != nil {
		return err
	}
	return s.execAffecting("UPDATE tags SET name = ?, color = ? WHERE id = ?", name, nullable(color), id)
}

// DeleteTag removes a tag and its associations. Clips are kept.
func (s *Storage) DeleteTag(id int64) error {
	return s.execAffecting("DELETE FROM tags WHERE id = ?", id)
}

// AssignTag attaches a tag to a clip. Assigning twice is a no-op.
func (s *Storage) AssignTag(clipID, tagID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("INSERT OR IGNORE INTO clip_tags (clip_id, tag_id) VALUES (?, ?)", clipID, tagID)
	if err != nil {
		return translateConstraint(err)
	}
	return nil
}

// UnassignTag detaches a tag from a clip.
func (s *Storage) UnassignTag(clipID, tagID int64) error {
	return s.execAffecting("DELETE FROM clip_tags WHERE clip_id = ? AND tag_id = ?", clipID, tagID)
}

// LoadTags returns every tag ordered by name.
func (s *Storage) LoadTags() ([]Tag, error) {
	return s.queryTags("SELECT id, name, color FROM tags ORDER BY name ASC")
}

// LoadTagsForClip returns the tags of one clip ordered by name.
func (s *Storage) LoadTagsForClip(clipID int64) ([]Tag, error) {
	return s.queryTags(`SELECT tags.id, tags.name, tags.color FROM tags
		INNER JOIN clip_tags ON tags.id = clip_tags.tag_id
		WHERE clip_tags.clip_id = ?
		ORDER BY tags.name ASC`, clipID)
}

// LoadClipTags maps every tagged clip id to its tag names, alphabetically.
func (s *Storage) LoadClipTags() (map[int64][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT clip_tags.clip_id, tags.name FROM clip_tags
		INNER JOIN tags ON clip_tags.tag_id = tags.id
		ORDER BY tags.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var clipID int64
		var name string
		if err := rows.Scan(&clipID, &name); err != nil {
			return nil, err
		}
		result[clipID] = append(result[clipID], name)
	}
	return result, rows.Err()
}

// CountClipsForTag returns how many clips carry the tag.
func (s *Storage) CountClipsForTag(tagID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM clip_tags WHERE tag_id = ?", tagID).Scan(&count)
	return count, err
}

// Reset empties every table and reclaims the freed space.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []string{
		"DELETE FROM clip_tags",
		"DELETE FROM clips",
		"DELETE FROM tags",
		"VACUUM",
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return nil
}

// PruneOlderThan deletes unpinned clips captured before cutoff and returns
// how many were removed.
func (s *Storage) PruneOlderThan(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM clips WHERE pinned = 0 AND timestamp < ?", cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TrimToLimit keeps the newest max unpinned clips. Pinned clips are never
// trimmed.
func (s *Storage) TrimToLimit(max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM clips
		WHERE pinned = 0 AND id NOT IN (
			SELECT id FROM clips WHERE pinned = 0
			ORDER BY timestamp DESC, id DESC
			LIMIT ?
		)`, max)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) execAffecting(query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return translateConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) queryClips(query string, args ...any) ([]Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, rows.Err()
}

func (s *Storage) queryTags(query string, args ...any) ([]Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		var color sql.NullString
		if err := rows.Scan(&tag.ID, &tag.Name, &color); err != nil {
			return nil, err
		}
		tag.Color = color.String
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClip(row scanner) (Clip, error) {
	var clip Clip
	var ts int64
	if err := row.Scan(&clip.ID, &clip.Content, &ts, &clip.Pinned); err != nil {
		return Clip{}, err
	}
	clip.Timestamp = time.Unix(ts, 0)
	return clip, nil
}

func validateColor(color string) error {
	if color == "" || colorPattern.MatchString(color) {
		return nil
	}
	return ErrInvalidColor
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func translateConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateTag
	}
	return err
}
