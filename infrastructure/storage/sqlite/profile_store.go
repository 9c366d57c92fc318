package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/merchantlab/consult-go/domain/profile"
)

// ProfileStore is a SQLite-backed implementation of profile.Store.
// Profiles are stored as JSON documents; updates read, merge, and
// rewrite the document inside one transaction.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates a new SQLite profile store.
func NewProfileStore(cfg Config, opts ...Option) (*ProfileStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &ProfileStore{db: db}

	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// NewProfileStoreFromDB creates a profile store from an existing
// database connection.
func NewProfileStoreFromDB(db *sql.DB) (*ProfileStore, error) {
	s := &ProfileStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProfileStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			doc BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *ProfileStore) Close() error {
	return s.db.Close()
}

// Seed inserts or replaces a profile.
func (s *ProfileStore) Seed(ctx context.Context, p *profile.Profile) error {
	doc, err := profile.EncodeDoc(p)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		p.ID, data, now, now,
	)
	return err
}

// Get loads a profile by identifier.
func (s *ProfileStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt profile doc %s: %w", id, err)
	}
	return profile.DecodeDoc(id, doc)
}

// Update merges patch into the field at section.key.
func (s *ProfileStore) Update(ctx context.Context, id, section, key string, patch any) (*profile.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var data []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt profile doc %s: %w", id, err)
	}

	updated, err := profile.ApplyUpdate(doc, section, key, patch)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET doc = ?, updated_at = ? WHERE id = ?`,
		out, time.Now().Unix(), id,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return profile.DecodeDoc(id, updated)
}

// List returns all stored profile identifiers.
func (s *ProfileStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
