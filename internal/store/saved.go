package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no saved search has the requested name.
var ErrNotFound = errors.New("saved search not found")

// SavedSearch is a named query in canonical form.
type SavedSearch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Query       string `json:"query"`
	Profile     string `json:"profile"`
	Fingerprint string `json:"fingerprint"`
	Seq         int64  `json:"seq"`
}

const selectColumns = `SELECT id, name, query, profile, fingerprint, seq FROM saved_searches`

// Save inserts or replaces the saved search named ss.Name.
//
// A new name gets a fresh ID. Re-saving an existing name keeps its ID and
// replaces the query, profile and fingerprint. Either way the search gets
// the next seq, so List returns it last. ss.ID and ss.Seq are ignored.
func (s *Store) Save(ctx context.Context, ss SavedSearch) (SavedSearch, error) {
	ss.Name = strings.TrimSpace(ss.Name)
	if ss.Name == "" {
		return SavedSearch{}, fmt.Errorf("save: name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("save: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM saved_searches`).Scan(&seq); err != nil {
		return SavedSearch{}, fmt.Errorf("save: next seq: %w", err)
	}

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM saved_searches WHERE name = ?`, ss.Name).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ss.ID = s.ids.Generate()
	case err != nil:
		return SavedSearch{}, fmt.Errorf("save: lookup %q: %w", ss.Name, err)
	default:
		ss.ID = existing
	}
	ss.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO saved_searches (id, name, query, profile, fingerprint, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			query = excluded.query,
			profile = excluded.profile,
			fingerprint = excluded.fingerprint,
			seq = excluded.seq
	`, ss.ID, ss.Name, ss.Query, ss.Profile, ss.Fingerprint, ss.Seq)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("save %q: %w", ss.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return SavedSearch{}, fmt.Errorf("save: commit: %w", err)
	}

	s.logger.Debug("saved search written",
		"name", ss.Name,
		"id", ss.ID,
		"seq", ss.Seq,
		"fingerprint", ss.Fingerprint,
	)
	return ss, nil
}

// Get returns the saved search with the given name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (SavedSearch, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE name = ?`, strings.TrimSpace(name))
	ss, err := scanSavedSearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedSearch{}, fmt.Errorf("get %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return SavedSearch{}, fmt.Errorf("get %q: %w", name, err)
	}
	return ss, nil
}

// List returns every saved search in save order.
func (s *Store) List(ctx context.Context) ([]SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY seq ASC, id ASC COLLATE BINARY`)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return collect(rows)
}

// ByFingerprint returns the saved searches whose compiled query matches
// fingerprint, in save order.
func (s *Store) ByFingerprint(ctx context.Context, fingerprint string) ([]SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE fingerprint = ? ORDER BY seq ASC, id ASC COLLATE BINARY`,
		fingerprint)
	if err != nil {
		return nil, fmt.Errorf("query by fingerprint: %w", err)
	}
	return collect(rows)
}

// Delete removes the saved search with the given name, or returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	s.logger.Debug("saved search deleted", "name", name)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSavedSearch(row scanner) (SavedSearch, error) {
	var ss SavedSearch
	err := row.Scan(&ss.ID, &ss.Name, &ss.Query, &ss.Profile, &ss.Fingerprint, &ss.Seq)
	return ss, err
}

func collect(rows *sql.Rows) ([]SavedSearch, error) {
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		ss, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		out = append(out, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved searches: %w", err)
	}
	return out, nil
}
