// Package store persists hypothesis priors: one float64 probability under
// each hypothesis name, encoded as 8 big-endian bytes.
//
// Two backends are provided. SQLite is the default and keeps everything in a
// single file; Badger keeps a key-value directory. Both satisfy PriorStore.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// PriorStore is the get/set/remove capability for stored priors.
type PriorStore interface {
	// GetPrior returns the stored prior or a *HypothesisNotFoundError.
	GetPrior(name string) (float64, error)
	// SetPrior validates value and stores it under name.
	SetPrior(name string, value float64) error
	// RemovePrior deletes the record. Removing an absent name is not an error.
	RemovePrior(name string) error
	Close() error
}

// priorSize is the encoded length of a stored prior.
const priorSize = 8

var (
	// ErrHypothesisNotFound is matched when no prior is stored for a name.
	ErrHypothesisNotFound = errors.New("hypothesis not found")
	// ErrStoreUnavailable is matched when the store cannot be opened.
	ErrStoreUnavailable = errors.New("prior store unavailable")
	// ErrMalformedValue is matched when stored bytes are not a float64.
	ErrMalformedValue = errors.New("malformed stored prior")
)

// HypothesisNotFoundError reports a name with no stored prior.
type HypothesisNotFoundError struct {
	Name string
}

func (e *HypothesisNotFoundError) Error() string {
	return fmt.Sprintf("could not find hypothesis %s", e.Name)
}

func (e *HypothesisNotFoundError) Is(target error) bool {
	return target == ErrHypothesisNotFound
}

// MalformedValueError reports a stored record that is not 8 bytes long.
type MalformedValueError struct {
	Name string
	Len  int
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("stored prior for %s is %d bytes, want %d", e.Name, e.Len, priorSize)
}

func (e *MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}

// EncodePrior returns the IEEE-754 big-endian bytes of v.
func EncodePrior(v float64) []byte {
	buf := make([]byte, priorSize)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

// DecodePrior is the inverse of EncodePrior. name is only used in errors.
func DecodePrior(name string, b []byte) (float64, error) {
	if len(b) != priorSize {
		return 0, &MalformedValueError{Name: name, Len: len(b)}
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// Options selects and configures a backend.
type Options struct {
	Backend Backend
	// Path is a file for SQLite and a directory for Badger.
	// ":memory:" opens an in-memory store for either backend.
	Path   string
	Logger *zap.Logger
}

// Open opens the configured backend. Failures match ErrStoreUnavailable.
func Open(opts Options) (PriorStore, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Backend {
	case BackendBadger:
		cfg := BadgerConfig{Path: opts.Path, SyncWrites: true, Logger: logger}
		if opts.Path == MemoryPath {
			cfg = BadgerConfig{InMemory: true, Logger: logger}
		}
		st, err := NewBadger(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return st, nil
	default:
		st, err := New(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		if err := st.CreateSchema(); err != nil {
			st.Close()
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return st, nil
	}
}
