package store

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// DialectorOpener is an alias for a function that returns a gorm.Dialector for a given DSN.
type DialectorOpener = func(string) gorm.Dialector

// Factory builds a Store from a DSN for non-GORM backends.
type Factory = func(string) (Store, error)

// OpenOptions tunes how a backend is opened.
type OpenOptions struct {
	// SkipAutoMigrate leaves the schema untouched on GORM backends, for
	// deployments where migrations run out of band.
	SkipAutoMigrate bool
}

var (
	registryMu sync.RWMutex
	providers  = make(map[string]interface{})
)

// Register adds a new storage provider to the registry. Provider can be a
// DialectorOpener (for GORM dialects) or a Factory.
func Register(name string, provider interface{}) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = provider
}

// Open creates a Store for the registered backend name with default options.
func Open(name, dsn string) (Store, error) {
	return OpenWith(name, dsn, OpenOptions{})
}

// OpenWith creates a Store for the registered backend name.
func OpenWith(name, dsn string, opts OpenOptions) (Store, error) {
	registryMu.RLock()
	provider, ok := providers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("store: unknown backend %q", name)
	}

	if opener, ok := provider.(DialectorOpener); ok {
		db, err := gorm.Open(opener(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}

		repo := NewRepository(db)
		if !opts.SkipAutoMigrate {
			if err := repo.AutoMigrate(); err != nil {
				return nil, err
			}
		}
		return repo, nil
	}

	if factory, ok := provider.(Factory); ok {
		return factory(dsn)
	}

	return nil, fmt.Errorf("store: backend %q registered with incompatible type (expected DialectorOpener or Factory)", name)
}
