package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SpecRecord is one persisted upload.
type SpecRecord struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Version    string    `json:"version"`
	PathCount  int       `json:"path_count"`
	Raw        string    `json:"-"`
	Normalized string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ErrNoSpec is returned when no spec has been uploaded yet.
var ErrNoSpec = errors.New("no spec stored")

// SaveSpec persists an upload and returns its generated ID.
func (s *Store) SaveSpec(ctx context.Context, rec *SpecRecord) (string, error) {
	rec.ID = uuid.NewString()
	_, err := s.ExecContext(ctx,
		`INSERT INTO specs (id, title, version, path_count, raw, normalized) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Version, rec.PathCount, rec.Raw, rec.Normalized)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// LatestSpec returns the most recently uploaded spec, or ErrNoSpec.
func (s *Store) LatestSpec(ctx context.Context) (*SpecRecord, error) {
	row := s.QueryRowContext(ctx,
		`SELECT id, title, version, path_count, raw, normalized, uploaded_at
		 FROM specs ORDER BY uploaded_at DESC, rowid DESC LIMIT 1`)

	var rec SpecRecord
	err := row.Scan(&rec.ID, &rec.Title, &rec.Version, &rec.PathCount, &rec.Raw, &rec.Normalized, &rec.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSpec
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSpecs returns upload history, newest first, without payloads.
func (s *Store) ListSpecs(ctx context.Context) ([]SpecRecord, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT id, title, version, path_count, uploaded_at
		 FROM specs ORDER BY uploaded_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SpecRecord
	for rows.Next() {
		var rec SpecRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Version, &rec.PathCount, &rec.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LogSearch records one search query and its match count.
func (s *Store) LogSearch(ctx context.Context, keyword string, matches int) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO search_log (id, keyword, matches) VALUES (?, ?, ?)`,
		uuid.NewString(), keyword, matches)
	return err
}
