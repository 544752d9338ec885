// Package overrides keeps user-placed node coordinates that take precedence
// over computed layout positions.
package overrides

import (
	"context"
	"sync"

	"epicgraph/internal/debug"
	"epicgraph/internal/geom"
)

// MaxHistory bounds the undo and redo stacks.
const MaxHistory = 100

// Map holds override positions by issue id. A Map published by the Store is
// never modified afterwards; every write installs a new Map.
type Map map[string]geom.Point

// Clone returns a shallow copy of m. A nil map clones to an empty one.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store holds one override Map per namespace (typically an epic id) with
// whole-map undo/redo for the active namespace.
type Store struct {
	mu        sync.Mutex
	namespace string
	spaces    map[string]Map
	dirty     map[string]bool
	undo      []Map
	redo      []Map
	repo      Repository
}

// NewStore returns a Store. repo may be nil for a memory-only store.
func NewStore(repo Repository) *Store {
	return &Store{
		spaces: map[string]Map{"": {}},
		dirty:  map[string]bool{},
		repo:   repo,
	}
}

// Namespace returns the active namespace.
func (s *Store) Namespace() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.namespace
}

// Use switches the active namespace. Data stored under other namespaces is
// kept; undo history belongs to the previous namespace and is discarded.
func (s *Store) Use(namespace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useLocked(namespace)
}

func (s *Store) useLocked(namespace string) {
	if namespace == s.namespace {
		return
	}
	s.namespace = namespace
	if _, ok := s.spaces[namespace]; !ok {
		s.spaces[namespace] = Map{}
	}
	s.undo = nil
	s.redo = nil
}

// Load reads namespace from the repository, when one is configured, and makes
// it active. Namespaces already held in memory are not reloaded.
func (s *Store) Load(ctx context.Context, namespace string) error {
	if err := s.Fetch(ctx, namespace); err != nil {
		return err
	}
	s.Use(namespace)
	return nil
}

// Fetch is Load without switching the active namespace.
func (s *Store) Fetch(ctx context.Context, namespace string) error {
	s.mu.Lock()
	_, cached := s.spaces[namespace]
	repo := s.repo
	s.mu.Unlock()
	if repo == nil || cached {
		return nil
	}

	m, err := repo.Load(ctx, namespace)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if _, raced := s.spaces[namespace]; !raced {
		s.spaces[namespace] = m
	}
	s.mu.Unlock()
	debug.Logf("overrides: loaded %d positions for %q", len(m), namespace)
	return nil
}

// Snapshot returns the active Map. Callers must not modify it.
func (s *Store) Snapshot() Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spaces[s.namespace]
}

// SnapshotOf returns the Map held for namespace without switching to it.
// Callers must not modify it.
func (s *Store) SnapshotOf(namespace string) Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spaces[namespace]
}

// Get returns the override for id in the active namespace.
func (s *Store) Get(id string) (geom.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.spaces[s.namespace][id]
	return p, ok
}

// Set records an override for id.
func (s *Store) Set(id string, p geom.Point) {
	s.write(func(m Map) bool {
		if cur, ok := m[id]; ok && cur == p {
			return false
		}
		m[id] = p
		return true
	})
}

// SetMany records several overrides as one undoable change.
func (s *Store) SetMany(points map[string]geom.Point) {
	s.write(func(m Map) bool {
		changed := false
		for id, p := range points {
			if cur, ok := m[id]; ok && cur == p {
				continue
			}
			m[id] = p
			changed = true
		}
		return changed
	})
}

// Replace installs points as the whole override map.
func (s *Store) Replace(points map[string]geom.Point) {
	s.write(func(m Map) bool {
		for id := range m {
			delete(m, id)
		}
		for id, p := range points {
			m[id] = p
		}
		return true
	})
}

// Clear removes the override for id.
func (s *Store) Clear(id string) {
	s.write(func(m Map) bool {
		if _, ok := m[id]; !ok {
			return false
		}
		delete(m, id)
		return true
	})
}

// ClearAll removes every override in the active namespace.
func (s *Store) ClearAll() {
	s.write(func(m Map) bool {
		if len(m) == 0 {
			return false
		}
		for id := range m {
			delete(m, id)
		}
		return true
	})
}

// write applies mutate to a copy of the active map and publishes the copy
// when mutate reports a change.
func (s *Store) write(mutate func(Map) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.spaces[s.namespace]
	next := cur.Clone()
	if !mutate(next) {
		return
	}
	s.undo = pushBounded(s.undo, cur)
	s.redo = nil
	s.publishLocked(next)
}

func (s *Store) publishLocked(m Map) {
	s.spaces[s.namespace] = m
	s.dirty[s.namespace] = true
}

// Undo restores the map that preceded the last change.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = pushBounded(s.redo, s.spaces[s.namespace])
	s.publishLocked(prev)
	return true
}

// Redo reapplies the most recently undone change.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = pushBounded(s.undo, s.spaces[s.namespace])
	s.publishLocked(next)
	return true
}

// CanUndo reports whether Undo would change anything.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would change anything.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// Flush persists every namespace changed since the last flush.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.repo == nil {
		s.dirty = map[string]bool{}
		s.mu.Unlock()
		return nil
	}
	pending := make(map[string]Map, len(s.dirty))
	for ns := range s.dirty {
		pending[ns] = s.spaces[ns]
	}
	s.dirty = map[string]bool{}
	repo := s.repo
	s.mu.Unlock()

	for ns, m := range pending {
		if err := repo.Save(ctx, ns, m); err != nil {
			s.mu.Lock()
			for unsaved := range pending {
				s.dirty[unsaved] = true
			}
			s.mu.Unlock()
			return err
		}
		delete(pending, ns)
	}
	return nil
}

func pushBounded(stack []Map, m Map) []Map {
	stack = append(stack, m)
	if len(stack) > MaxHistory {
		stack = append([]Map(nil), stack[len(stack)-MaxHistory:]...)
	}
	return stack
}
