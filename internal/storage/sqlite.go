package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"jarvis_bot/internal/model"
	"jarvis_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Profile loads the stored preference profile. A missing or corrupt record
// falls back to the hard-coded defaults instead of propagating.
func (s *SQLite) Profile(ctx context.Context) (*model.Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	var p model.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return model.DefaultProfile(), nil
	}
	return &p, nil
}

// SaveProfile replaces the whole stored profile record in one statement, so
// a concurrent reader never observes a half-written document.
func (s *SQLite) SaveProfile(ctx context.Context, p *model.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	now := time.Now().UTC().Format(timeLayout)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profile (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// AppendInteraction inserts a record and evicts the oldest entries beyond
// the retention cap in the same transaction.
func (s *SQLite) AppendInteraction(ctx context.Context, rec model.Interaction) error {
	categories, err := json.Marshal(stringsOrEmpty(rec.Categories))
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	authors, err := json.Marshal(stringsOrEmpty(rec.Authors))
	if err != nil {
		return fmt.Errorf("marshal authors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interactions
		 (created_at, domain, item_id, kind, rating, feedback, title, attribution, category, categories, authors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC().Format(timeLayout), string(rec.Domain), rec.ItemID, string(rec.Kind),
		rec.Rating, rec.Feedback, rec.Title, rec.Attribution, rec.Category,
		string(categories), string(authors),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM interactions
		 WHERE id NOT IN (SELECT id FROM interactions ORDER BY id DESC LIMIT ?)`,
		MaxInteractions,
	)
	if err != nil {
		return fmt.Errorf("evict old interactions: %w", err)
	}
	return tx.Commit()
}

// RecentInteractions returns the newest limit records for a domain, oldest
// first.
func (s *SQLite) RecentInteractions(ctx context.Context, domain model.Domain, limit int) ([]model.Interaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, domain, item_id, kind, rating, feedback, title, attribution, category, categories, authors
		 FROM interactions WHERE domain = ? ORDER BY id DESC LIMIT ?`,
		string(domain), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recs, err := scanInteractions(rows)
	if err != nil {
		return nil, err
	}
	reverse(recs)
	return recs, nil
}

// ListInteractions returns every retained record, oldest first.
func (s *SQLite) ListInteractions(ctx context.Context) ([]model.Interaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, domain, item_id, kind, rating, feedback, title, attribution, category, categories, authors
		 FROM interactions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanInteractions(rows)
}

func scanInteractions(rows *sql.Rows) ([]model.Interaction, error) {
	var recs []model.Interaction
	for rows.Next() {
		var rec model.Interaction
		var createdStr, domainStr, kindStr, categoriesStr, authorsStr string
		err := rows.Scan(&rec.ID, &createdStr, &domainStr, &rec.ItemID, &kindStr,
			&rec.Rating, &rec.Feedback, &rec.Title, &rec.Attribution, &rec.Category,
			&categoriesStr, &authorsStr)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		// A malformed timestamp leaves the zero value; aggregation skips it.
		rec.Timestamp, _ = time.Parse(timeLayout, createdStr)
		rec.Domain = model.Domain(domainStr)
		rec.Kind = model.InteractionKind(kindStr)
		_ = json.Unmarshal([]byte(categoriesStr), &rec.Categories)
		_ = json.Unmarshal([]byte(authorsStr), &rec.Authors)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func reverse(recs []model.Interaction) {
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
}
