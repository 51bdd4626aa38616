package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myblog/internal/client/migrations"
	"github.com/dmitrijs2005/myblog/internal/dbx"
	"github.com/dmitrijs2005/myblog/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStorage implements Storage on top of the "storage" table.
type SQLiteStorage struct {
	db *sql.DB
}

var _ Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage wraps an already migrated database.
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Open creates the parent directory of path if needed, opens the SQLite
// database and applies pending migrations.
func Open(ctx context.Context, path string) (*SQLiteStorage, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", path, err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLiteStorage(db), nil
}

// Migrate applies the embedded goose migrations. Running it twice is a no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate storage: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) GetItems(ctx context.Context, keys ...string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	query := `SELECT key, value FROM storage WHERE key IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage items: %w", err)
	}
	defer rows.Close()

	if err := scanInto(rows, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLiteStorage) SetItems(ctx context.Context, items map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, k, v)
			if err != nil {
				return fmt.Errorf("failed to set storage[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) RemoveItems(ctx context.Context, keys ...string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, k); err != nil {
				return fmt.Errorf("failed to remove storage[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) Items(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM storage`)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	if err := scanInto(rows, result); err != nil {
		return nil, err
	}
	return result, nil
}

func scanInto(rows *sql.Rows, dst map[string]string) error {
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan storage row: %w", err)
		}
		dst[key] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate storage rows: %w", err)
	}
	return nil
}
