package store

import "fmt"

// Backend names a PriorStore implementation.
type Backend int

const (
	BackendSQLite Backend = iota
	BackendBadger
)

// MemoryPath opens an in-memory store.
const MemoryPath = ":memory:"

var backendAliases = map[string]Backend{
	"sqlite": BackendSQLite,
	"sql":    BackendSQLite,
	"SQLite": BackendSQLite,
	"badger": BackendBadger,
	"kv":     BackendBadger,
	"Badger": BackendBadger,
}

// ParseBackend resolves a backend name.
func ParseBackend(s string) (Backend, error) {
	b, ok := backendAliases[s]
	if !ok {
		return BackendSQLite, fmt.Errorf("invalid backend: %q (want sqlite or badger)", s)
	}
	return b, nil
}

func (b Backend) String() string {
	if b == BackendBadger {
		return "badger"
	}
	return "sqlite"
}

// DefaultFile is the store's file or directory name under the config dir.
func (b Backend) DefaultFile() string {
	if b == BackendBadger {
		return "hypotheses.badger"
	}
	return "hypotheses.db"
}

// Set implements pflag.Value.
func (b *Backend) Set(s string) error {
	parsed, err := ParseBackend(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Type implements pflag.Value.
func (b *Backend) Type() string {
	return "backend"
}
