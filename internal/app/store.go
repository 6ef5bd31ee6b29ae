package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
	"github.com/blackwell-systems/ask-bayes/internal/store"
)

// storePath returns the prior store location: --db, then config, then the
// backend's default file in the config directory.
func (o *options) storePath() string {
	return o.cfg.StorePath(o.dir, o.backend)
}

// openStore opens the configured prior store, creating its parent directory.
func (o *options) openStore() (store.PriorStore, error) {
	path := o.storePath()
	if path != store.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create %s: %w", store.ErrStoreUnavailable, filepath.Dir(path), err)
		}
	}

	logger.Debug("opening prior store",
		zap.Stringer("backend", o.backend),
		zap.String("path", path))

	return store.Open(store.Options{
		Backend: o.backend,
		Path:    path,
		Logger:  logger,
	})
}

// lookupPrior returns the stored prior for name. found is false when the
// store has no entry. A stored value outside [0, 1] is an error.
func lookupPrior(st store.PriorStore, name string) (value float64, found bool, err error) {
	value, err = st.GetPrior(name)
	if errors.Is(err, store.ErrHypothesisNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if err := bayes.ValidateProbability(value); err != nil {
		return 0, false, fmt.Errorf("stored prior for %s: %w", name, err)
	}
	return value, true, nil
}

func zapOp(op Operation) zap.Field {
	return zap.Stringer("operation", op)
}
