package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetValue returns the value stored under namespace/key.
// found is false when no entry exists.
func (s *Storage) GetValue(namespace, key string) (value string, found bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrStorageClosed
	}

	err = s.db.QueryRow(
		"SELECT value FROM kv_entries WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// SetValues upserts every entry of values into namespace in one transaction.
func (s *Storage) SetValues(namespace string, values map[string]string) error {
	if namespace == "" || len(values) == 0 {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range values {
		if _, err := stmt.Exec(namespace, key, value); err != nil {
			return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
		}
	}

	return tx.Commit()
}

// DeleteValues removes the given keys from namespace in one transaction.
// Missing keys are not an error.
func (s *Storage) DeleteValues(namespace string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.Exec("DELETE FROM kv_entries WHERE namespace = ? AND key = ?", namespace, key); err != nil {
			return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
		}
	}

	return tx.Commit()
}

// ClearNamespace removes every entry in namespace and returns how many were deleted.
func (s *Storage) ClearNamespace(namespace string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM kv_entries WHERE namespace = ?", namespace)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
