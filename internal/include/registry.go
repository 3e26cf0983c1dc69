package include

import "sync"

// Registry remembers which scripts a top-level parse has already included.
// One Registry is created per top-level parse and handed by pointer to every
// nested parse, so unrelated parses never see each other's includes.
type Registry struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Claim records location and reports whether this is its first inclusion.
// Only the first claimant merges globals and reports errors of the script.
func (r *Registry) Claim(location string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[location]; ok {
		return false
	}
	r.seen[location] = struct{}{}
	r.order = append(r.order, location)
	return true
}

// Locations returns the claimed locations in inclusion order.
func (r *Registry) Locations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
