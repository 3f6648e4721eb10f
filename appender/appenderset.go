package appender

import (
	"sync"
	"sync/atomic"
)

// Set is a per-logger ordered collection of distinct appenders.
//
// Reads (Snapshot) are lock-free: the active slice lives behind an
// atomic.Value and is never mutated in place, only replaced wholesale,
// which gives the reader-biased, no-upgrade exclusion dispatch needs —
// many concurrent dispatchers, occasional mutators. Writers
// (Add/Remove/...) serialize on mu so concurrent mutations don't race
// each other, but never block a concurrent reader.
type Set struct {
	mu  sync.Mutex // serializes writers only; readers never take it
	val atomic.Value
}

// NewSet returns an empty, ready-to-use Set.
func NewSet() *Set {
	s := &Set{}
	s.val.Store([]Appender(nil))
	return s
}

func (s *Set) load() []Appender {
	v, _ := s.val.Load().([]Appender)
	return v
}

// Snapshot returns the ordered appenders attached at the moment of the
// call. The returned slice must not be mutated by the caller; it is shared
// with other readers and will not be affected by subsequent Add/Remove
// calls (those replace the whole slice rather than mutating it).
func (s *Set) Snapshot() []Appender {
	return s.load()
}

// Add appends a to the set. Duplicates by identity are silently ignored,
// preserving insertion order of the first occurrence.
func (s *Set) Add(a Appender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.load()
	for _, existing := range cur {
		if existing == a {
			return
		}
	}
	next := make([]Appender, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, a)
	s.val.Store(next)
}

// Remove detaches a single appender by identity, if present.
func (s *Set) Remove(a Appender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.load()
	idx := -1
	for i, existing := range cur {
		if existing == a {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := make([]Appender, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	s.val.Store(next)
}

// RemoveByName detaches the first appender whose Name() matches, if any.
func (s *Set) RemoveByName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.load()
	idx := -1
	for i, existing := range cur {
		if existing.Name() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := make([]Appender, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	s.val.Store(next)
}

// RemoveAll detaches every appender, leaving the set empty.
func (s *Set) RemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val.Store([]Appender(nil))
}

// Len reports the number of currently attached appenders.
func (s *Set) Len() int {
	return len(s.load())
}

// CloseNested closes only the appenders in this set that are themselves
// AttachableContainers (forwarders), so a forwarder can flush/close its
// own nested sinks before anything else is closed during shutdown.
func (s *Set) CloseNested() []error {
	var errs []error
	for _, a := range s.load() {
		if _, ok := a.(AttachableContainer); ok {
			if err := a.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// CloseAll closes every appender in the set, collecting (not stopping on)
// errors, and then empties the set.
func (s *Set) CloseAll() []error {
	s.mu.Lock()
	cur := s.load()
	s.val.Store([]Appender(nil))
	s.mu.Unlock()

	var errs []error
	for _, a := range cur {
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
