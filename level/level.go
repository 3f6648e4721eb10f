// Package level implements the ordered severity vocabulary shared by
// every node in a Hierarchy.
package level

import (
	"math"
	"strings"
	"sync"
)

// Level is a named, ordered severity. Higher Value means more severe.
// Equality is by Value, not by Name: two Levels with the same Value compare
// equal regardless of which name was used to look them up.
type Level struct {
	Value       int
	Name        string
	DisplayName string
}

// String returns the display name, falling back to the name.
func (l Level) String() string {
	if l.DisplayName != "" {
		return l.DisplayName
	}
	return l.Name
}

// Equal compares two Levels by Value only.
func (l Level) Equal(o Level) bool { return l.Value == o.Value }

// ALL is the minimum possible severity: nothing is ever filtered below it.
var ALL = Level{Value: math.MinInt32, Name: "ALL", DisplayName: "ALL"}

// OFF is the maximum possible severity: a node or threshold set to OFF
// disables all logging through it.
var OFF = Level{Value: math.MaxInt32, Name: "OFF", DisplayName: "OFF"}

// The standard vocabulary, spaced to leave room for custom levels between
// the named ones.
var (
	DEBUG = Level{Value: 30000, Name: "DEBUG"}
	INFO  = Level{Value: 40000, Name: "INFO"}
	WARN  = Level{Value: 60000, Name: "WARN"}
	ERROR = Level{Value: 70000, Name: "ERROR"}
	FATAL = Level{Value: 110000, Name: "FATAL"}
)

// Map is a case-insensitive name -> Level vocabulary. The zero Map is not
// usable; construct one with NewMap, which seeds it with the standard
// levels plus the ALL and OFF sentinels.
type Map struct {
	mu      sync.RWMutex
	byName  map[string]Level
	ordered []Level
}

// NewMap returns a Map seeded with ALL, DEBUG, INFO, WARN, ERROR, FATAL, OFF,
// in that severity order.
func NewMap() *Map {
	m := &Map{byName: make(map[string]Level, 8)}
	for _, l := range []Level{ALL, DEBUG, INFO, WARN, ERROR, FATAL, OFF} {
		m.add(l)
	}
	return m
}

func key(name string) string { return strings.ToUpper(name) }

// Add inserts or replaces a Level by name (case-insensitive). If a different
// name previously mapped to the same Value, both names remain resolvable but
// the newest insertion is the authoritative entry for its own name (last
// writer wins per name).
func (m *Map) Add(name string, value int, displayName string) Level {
	l := Level{Value: value, Name: name, DisplayName: displayName}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(l)
	return l
}

// must be called under m.mu
func (m *Map) add(l Level) {
	k := key(l.Name)
	if _, exists := m.byName[k]; !exists {
		m.ordered = append(m.ordered, l)
	} else {
		for i, e := range m.ordered {
			if key(e.Name) == k {
				m.ordered[i] = l
				break
			}
		}
	}
	m.byName[k] = l
}

// Lookup returns the Level registered under name (case-insensitive) and
// whether it was found.
func (m *Map) Lookup(name string) (Level, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.byName[key(name)]
	return l, ok
}

// LookupWithDefault returns the map's entry for l.Name if one exists,
// otherwise inserts l and returns it.
func (m *Map) LookupWithDefault(l Level) Level {
	if found, ok := m.Lookup(l.Name); ok {
		return found
	}
	return m.Add(l.Name, l.Value, l.DisplayName)
}

// AllLevels returns every registered Level in insertion order.
func (m *Map) AllLevels() []Level {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Level, len(m.ordered))
	copy(out, m.ordered)
	return out
}
