package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	date       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	mood       TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT '[]',
	is_private INTEGER NOT NULL DEFAULT 1,
	summary    TEXT NOT NULL DEFAULT '',
	emotion    TEXT NOT NULL DEFAULT '',
	score      REAL NOT NULL DEFAULT 0.5,
	keywords   TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
`

// SQLite is the primary entry store.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database and applies the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// Add inserts the entry, assigning an id and creation time when missing.
func (s *SQLite) Add(e *models.Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	tagsJSON, _ := json.Marshal(e.Tags)
	keywordsJSON, _ := json.Marshal(e.Keywords)

	_, err := s.conn.Exec(`
		INSERT INTO entries (id, title, content, date, created_at, mood, tags, is_private, summary, emotion, score, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.Content, e.Date, e.CreatedAt, e.Mood, string(tagsJSON),
		e.IsPrivate, e.Summary, e.Sentiment.Emotion, e.Sentiment.Score, string(keywordsJSON))
	if err != nil {
		return "", fmt.Errorf("store: insert entry: %w", err)
	}
	return e.ID, nil
}

const selectColumns = `id, title, content, date, created_at, mood, tags, is_private, summary, emotion, score, keywords`

// List returns at most limit entries ordered by the given field.
func (s *SQLite) List(limit int, orderBy string, descending bool) ([]*models.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	column := orderColumn(orderBy)
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	rows, err := s.conn.Query(fmt.Sprintf(`
		SELECT `+selectColumns+`
		FROM entries
		ORDER BY %s %s
		LIMIT ?
	`, column, direction), limit)
	if err != nil {
		return nil, fmt.Errorf("store: list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// orderColumn whitelists sortable columns; anything else sorts by creation.
func orderColumn(field string) string {
	switch field {
	case OrderByDate, OrderByScore, OrderByCreatedAt:
		return field
	default:
		return OrderByCreatedAt
	}
}

// Get returns a single entry by id.
func (s *SQLite) Get(id string) (*models.Entry, error) {
	row := s.conn.QueryRow(`SELECT `+selectColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get entry: %w", err)
	}
	return e, nil
}

// Update replaces the stored record for id with e.
func (s *SQLite) Update(id string, e *models.Entry) error {
	tagsJSON, _ := json.Marshal(e.Tags)
	keywordsJSON, _ := json.Marshal(e.Keywords)

	res, err := s.conn.Exec(`
		UPDATE entries
		SET title = ?, content = ?, date = ?, mood = ?, tags = ?, is_private = ?,
		    summary = ?, emotion = ?, score = ?, keywords = ?
		WHERE id = ?
	`, e.Title, e.Content, e.Date, e.Mood, string(tagsJSON), e.IsPrivate,
		e.Summary, e.Sentiment.Emotion, e.Sentiment.Score, string(keywordsJSON), id)
	if err != nil {
		return fmt.Errorf("store: update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes an entry by id.
func (s *SQLite) Delete(id string) error {
	res, err := s.conn.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Search performs a LIKE-based match over title, content, summary, and tags.
func (s *SQLite) Search(query string, limit int) ([]*models.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := s.conn.Query(`
		SELECT `+selectColumns+`
		FROM entries
		WHERE title LIKE ? OR content LIKE ? OR summary LIKE ? OR tags LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var e models.Entry
	var tagsJSON, keywordsJSON string
	err := row.Scan(&e.ID, &e.Title, &e.Content, &e.Date, &e.CreatedAt, &e.Mood,
		&tagsJSON, &e.IsPrivate, &e.Summary, &e.Sentiment.Emotion, &e.Sentiment.Score, &keywordsJSON)
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &e.Tags)
	_ = json.Unmarshal([]byte(keywordsJSON), &e.Keywords)
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]*models.Entry, error) {
	var out []*models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
