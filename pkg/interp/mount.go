package interp

import "sync"

// Mount attaches a rendered form to a display region, replacing any form that
// was mounted before.
type Mount interface {
	Mount(form *Form) error
}

// Region is an in-memory display slot.
type Region struct {
	mu      sync.RWMutex
	current *Form
}

// Mount replaces the current form. Mounting nil clears the region.
func (r *Region) Mount(form *Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = form
	return nil
}

// Current returns the mounted form, or nil.
func (r *Region) Current() *Form {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Clear empties the region.
func (r *Region) Clear() {
	_ = r.Mount(nil)
}
