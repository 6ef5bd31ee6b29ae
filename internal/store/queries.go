package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
)

// GetPrior retrieves the prior stored under name.
func (s *Store) GetPrior(name string) (float64, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM priors WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &HypothesisNotFoundError{Name: name}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get prior for %s: %w", name, err)
	}
	return DecodePrior(name, raw)
}

// SetPrior inserts or replaces the prior stored under name.
func (s *Store) SetPrior(name string, value float64) error {
	if err := bayes.ValidateProbability(value); err != nil {
		return err
	}

	query := `
		INSERT INTO priors (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, name, EncodePrior(value), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to set prior for %s: %w", name, err)
	}
	return nil
}

// RemovePrior deletes the prior stored under name, if any.
func (s *Store) RemovePrior(name string) error {
	if _, err := s.db.Exec(`DELETE FROM priors WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to remove prior for %s: %w", name, err)
	}
	return nil
}
