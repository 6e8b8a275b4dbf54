package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"tally/internal/ledger"
)

const dbExtension = ".db"

// Registry hands out period stores inside a single data directory. Period
// databases are opened lazily on first use and the handles stay cached until
// Close.
type Registry struct {
	dir string

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates a registry rooted at the given data directory. The
// directory itself is created when the first period store opens.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:    dir,
		stores: make(map[string]*Store),
	}
}

// Open returns the store for the named period, creating its database file on
// first use.
func (r *Registry) Open(period string) (*Store, error) {
	if err := ledger.ValidatePeriod(period); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[period]; ok {
		return store, nil
	}
	store, err := Open(r.PeriodPath(period))
	if err != nil {
		return nil, err
	}
	r.stores[period] = store
	return store, nil
}

// PeriodPath returns the database file path backing the named period.
func (r *Registry) PeriodPath(period string) string {
	return filepath.Join(r.dir, period+dbExtension)
}

// Periods lists the periods with a database file on disk, sorted by name. A
// data directory that does not exist yet yields an empty list.
func (r *Registry) Periods() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "*"+dbExtension))
	if err != nil {
		return nil, fmt.Errorf("scan data directory: %w", err)
	}
	periods := make([]string, 0, len(matches))
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), dbExtension)
		if ledger.ValidatePeriod(name) != nil {
			continue
		}
		periods = append(periods, name)
	}
	sort.Strings(periods)
	return periods, nil
}

// Close closes every cached period store. The first close error is returned,
// but all stores are closed regardless.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for period, store := range r.stores {
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.stores, period)
	}
	return firstErr
}
