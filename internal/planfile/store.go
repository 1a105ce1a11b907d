package planfile

import (
	"encoding/json"
	"os"
	"sync"

	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

// Snapshot is the immutable parsed representation of a rendered plan for one
// run. Every test observes the same instance; nothing re-reads the source.
type Snapshot struct {
	source string
	root   Value
}

// NewSnapshot wraps an already-built value tree. Used by tests and by the
// store after parsing.
func NewSnapshot(source string, root Value) *Snapshot {
	return &Snapshot{source: source, root: root}
}

// Source returns the path the snapshot was loaded from.
func (s *Snapshot) Source() string {
	return s.source
}

// Root returns the top-level value of the plan document.
func (s *Snapshot) Root() Value {
	return s.root
}

// Lookup resolves a dotted/indexed path expression against the snapshot.
// A malformed expression yields *errors.PathError; a well-formed expression
// with no target yields an error wrapping ErrNotFound.
func (s *Snapshot) Lookup(path string) (Value, error) {
	segments, err := parsePath(path)
	if err != nil {
		return Null(), err
	}
	return resolve(s.root, path, segments)
}

// Resources returns the entries of the top-level "resources" list whose
// "type" field equals resourceType. Plans without a resources list yield an
// empty slice.
func (s *Snapshot) Resources(resourceType string) []Value {
	list, ok := s.root.Key("resources")
	if !ok || list.Kind() != KindList {
		return nil
	}

	var matches []Value
	for _, entry := range list.Items() {
		typ, ok := entry.Key("type")
		if !ok || typ.Kind() != KindString {
			continue
		}
		if typ.Str() == resourceType {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Store materializes the plan snapshot exactly once per run. Concurrent and
// repeated Load calls return the cached snapshot (or the cached load error)
// without re-reading the source.
type Store struct {
	path string

	once sync.Once
	snap *Snapshot
	err  error
}

// NewStore creates a store for the plan document at path. Nothing is read
// until the first Load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads and parses the plan document on first call and returns the
// cached result thereafter. Missing or unreadable files and invalid JSON
// yield a *errors.PlanLoadError.
func (s *Store) Load() (*Snapshot, error) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.err = plancheckerrors.NewPlanLoadError(s.path, err)
			return
		}

		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			s.err = plancheckerrors.NewPlanLoadError(s.path, err)
			return
		}

		s.snap = NewSnapshot(s.path, FromAny(decoded))
	})

	return s.snap, s.err
}
