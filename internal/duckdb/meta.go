package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const schemaVersion = "1"

// initSchemaVersion records the schema version when the database is first
// created. An existing stamp is left alone.
func (s *Store) initSchemaVersion() error {
	v, err := s.Meta("schema_version")
	if err != nil {
		return err
	}
	if v != "" {
		return nil
	}
	return s.SetMeta("schema_version", schemaVersion)
}

// Meta returns the value stored under key, or "" when the key is absent.
func (s *Store) Meta(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key=?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read meta %q: %w", key, err)
	}
	return value, nil
}

// SetMeta stores a key-value pair, replacing any previous value.
func (s *Store) SetMeta(key, value string) error {
	if _, err := s.db.Exec("INSERT OR REPLACE INTO meta VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("write meta %q: %w", key, err)
	}
	return nil
}

// StampSource records the identity of the record file behind the latest
// export, so a later run can tell whether the source changed.
func (s *Store) StampSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if err := s.SetMeta("source_path", path); err != nil {
		return err
	}
	if err := s.SetMeta("source_size", strconv.FormatInt(info.Size(), 10)); err != nil {
		return err
	}
	return s.SetMeta("source_modtime", info.ModTime().UTC().Format(time.RFC3339Nano))
}

// SourceUnchanged reports whether the stamped source file still matches
// what is on disk. A database with no stamp reports false.
func (s *Store) SourceUnchanged(path string) bool {
	stamped, err := s.Meta("source_path")
	if err != nil || stamped != path {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	size, err := s.Meta("source_size")
	if err != nil || size != strconv.FormatInt(info.Size(), 10) {
		return false
	}

	modtime, err := s.Meta("source_modtime")
	if err != nil || modtime != info.ModTime().UTC().Format(time.RFC3339Nano) {
		return false
	}
	return true
}
