package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// SQLite stores entries as blobs in a single table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and migrates it.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps ":memory:" a single database and serializes
	// writers on file databases.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, dirty, err := RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("Scratch database ready", "path", path, "schema_version", version, "dirty", dirty)

	return &SQLite{db: db}, nil
}

func (s *SQLite) Write(name string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(`
		INSERT INTO scratch (name, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, data)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *SQLite) Read(name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM scratch WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s *SQLite) Stat(name string) (int64, error) {
	var size int64
	err := s.db.QueryRow(`SELECT length(data) FROM scratch WHERE name = ?`, name).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return size, nil
}

func (s *SQLite) Remove(name string) error {
	if _, err := s.db.Exec(`DELETE FROM scratch WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
