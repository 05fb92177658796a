package postview

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/postview/corpus"
)

// Store wraps a SQLite database holding the corpus archive (the last
// successfully loaded corpus, in source order) and the load audit log. It
// never stores view state: the display list is always recomputed, and the
// active tag / sort order live only in memory.
type Store struct {
	db *sql.DB
}

// LoadRecord is one entry of the load audit log.
type LoadRecord struct {
	At       time.Time
	Source   string
	Outcome  string // "ok", "transport", "format", or "malformed"
	Error    string
	Posts    int
	Duration time.Duration
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS archive (
    ord INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    date TEXT NOT NULL,
    content TEXT NOT NULL,
    has_image INTEGER NOT NULL DEFAULT 0,
    image_src TEXT NOT NULL DEFAULT '',
    image_alt TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS loads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at TEXT NOT NULL,
    source TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    posts INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

// SaveSnapshot replaces the archived corpus with posts, preserving source
// order through the ord column. The swap is transactional so a reader never
// sees a partial corpus.
func (s *Store) SaveSnapshot(posts []corpus.Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM archive`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO archive (ord, title, slug, date, content, has_image, image_src, image_alt, tags) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range posts {
		hasImage, src, alt := 0, "", ""
		if p.Image != nil {
			hasImage, src, alt = 1, p.Image.Src, p.Image.Alt
		}
		if _, err := stmt.Exec(i, p.Title, p.Slug, p.Date.Raw, p.Content, hasImage, src, alt, encodeTags(p.Tags)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSnapshot restores the archived corpus in its original order. Dates are
// re-normalized from the raw source strings, so the invalid-date sentinel
// survives the round trip.
func (s *Store) LoadSnapshot() ([]corpus.Post, error) {
	rows, err := s.db.Query(`SELECT title, slug, date, content, has_image, image_src, image_alt, tags FROM archive ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []corpus.Post
	for rows.Next() {
		var title, slug, date, content, src, alt, tags string
		var hasImage int
		if err := rows.Scan(&title, &slug, &date, &content, &hasImage, &src, &alt, &tags); err != nil {
			return nil, err
		}
		p := corpus.Post{
			Title:   title,
			Slug:    slug,
			Date:    corpus.ParseDate(date),
			Content: content,
			Tags:    decodeTags(tags),
		}
		if hasImage == 1 {
			p.Image = &corpus.Image{Src: src, Alt: alt}
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// RecordLoad appends one entry to the load audit log.
func (s *Store) RecordLoad(rec LoadRecord) error {
	_, err := s.db.Exec(`INSERT INTO loads (at, source, outcome, error, posts, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.At.UTC().Format(time.RFC3339), rec.Source, rec.Outcome, rec.Error, rec.Posts, rec.Duration.Milliseconds())
	return err
}

// RecentLoads returns the latest n audit entries, newest first.
func (s *Store) RecentLoads(n int) ([]LoadRecord, error) {
	rows, err := s.db.Query(`SELECT at, source, outcome, error, posts, duration_ms FROM loads ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []LoadRecord
	for rows.Next() {
		var at, source, outcome, errText string
		var posts int
		var durationMS int64
		if err := rows.Scan(&at, &source, &outcome, &errText, &posts, &durationMS); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("postview: corrupt load timestamp %q: %w", at, err)
		}
		recs = append(recs, LoadRecord{
			At:       ts,
			Source:   source,
			Outcome:  outcome,
			Error:    errText,
			Posts:    posts,
			Duration: time.Duration(durationMS) * time.Millisecond,
		})
	}
	return recs, rows.Err()
}

// encodeTags packs a tag list into a comma-delimited string (e.g. ",go,web,").
// Tags are stored verbatim; case and duplicates survive the round trip.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

// decodeTags unpacks a comma-delimited tag string into a slice.
func decodeTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	return strings.Split(tagString, ",")
}
