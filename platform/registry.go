package platform

import (
	"sort"
	"sync"

	"go.uber.org/multierr"
)

// Registry is a concurrency-safe Platform backed by a map. Hosts register
// their targets at boot; appenders look them up on start.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
}

func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by appenders built without
// an explicit Platform.
func Default() *Registry { return defaultRegistry }

// Register binds t to id, replacing any previous binding.
func (r *Registry) Register(id string, t Target) {
	r.mu.Lock()
	r.targets[id] = t
	r.mu.Unlock()
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.targets, id)
	r.mu.Unlock()
}

func (r *Registry) LookupTarget(id string) (Target, bool) {
	r.mu.RLock()
	t, ok := r.targets[id]
	r.mu.RUnlock()
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.targets))
	for id := range r.targets {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Sync flushes every target that implements Syncer and combines the failures.
func (r *Registry) Sync() error {
	r.mu.RLock()
	syncers := make([]Syncer, 0, len(r.targets))
	for _, t := range r.targets {
		if s, ok := t.(Syncer); ok {
			syncers = append(syncers, s)
		}
	}
	r.mu.RUnlock()

	var err error
	for _, s := range syncers {
		err = multierr.Append(err, s.Sync())
	}
	return err
}
