// Package sqlite implements the session store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/store"
)

const (
	keyToken    = "token"
	keyIdentity = "identity"
)

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens (creating if needed) the session database at dsn and
// applies any pending migrations.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, dsn: dsn}
	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save writes both session entries in one transaction so a crash cannot
// leave a token without its identity.
func (s *Store) Save(ctx context.Context, token string, id domain.Identity) error {
	encoded, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	const upsert = `
		INSERT INTO session_entries (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	if _, err := tx.ExecContext(ctx, upsert, keyToken, token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsert, keyIdentity, string(encoded)); err != nil {
		return err
	}

	return tx.Commit()
}

// Load reads both entries. Neither present means no session; exactly one
// present, or an identity that fails to parse, means the store is corrupted.
func (s *Store) Load(ctx context.Context) (string, domain.Identity, error) {
	token, haveToken, err := s.get(ctx, keyToken)
	if err != nil {
		return "", domain.Identity{}, err
	}
	rawIdentity, haveIdentity, err := s.get(ctx, keyIdentity)
	if err != nil {
		return "", domain.Identity{}, err
	}

	switch {
	case !haveToken && !haveIdentity:
		return "", domain.Identity{}, store.ErrNoSession
	case haveToken != haveIdentity:
		return "", domain.Identity{}, store.ErrCorruptedSession
	}

	var id domain.Identity
	if err := json.Unmarshal([]byte(rawIdentity), &id); err != nil {
		return "", domain.Identity{}, store.ErrCorruptedSession
	}
	if token == "" || id.Email == "" {
		return "", domain.Identity{}, store.ErrCorruptedSession
	}

	return token, id, nil
}

// Clear removes both entries. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_entries;`)
	return err
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_entries WHERE key = ?;`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
