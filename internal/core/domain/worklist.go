package domain

import (
	"slices"
	"sync"
)

// Worklist is the FIFO queue of identifiers awaiting resolution.
// It is owned by a single resolution run and is not safe for concurrent use.
type Worklist struct {
	items []string
	head  int
}

// NewWorklist creates a worklist seeded with the given identifiers, in order.
func NewWorklist(identifiers ...string) *Worklist {
	w := &Worklist{}
	w.Push(identifiers...)
	return w
}

// Push appends identifiers to the tail of the queue.
func (w *Worklist) Push(identifiers ...string) {
	w.items = append(w.items, identifiers...)
}

// Pop removes and returns the identifier at the head of the queue.
// It returns false when the queue is empty.
func (w *Worklist) Pop() (string, bool) {
	if w.head >= len(w.items) {
		return "", false
	}
	id := w.items[w.head]
	w.items[w.head] = ""
	w.head++
	if w.head == len(w.items) {
		w.items = w.items[:0]
		w.head = 0
	}
	return id, true
}

// ResolvedSet records identifiers already processed during a resolution run,
// compared case-insensitively. It is safe for concurrent use.
type ResolvedSet struct {
	mu    sync.Mutex
	order []string
	seen  map[string]string
}

// NewResolvedSet creates an empty ResolvedSet.
func NewResolvedSet() *ResolvedSet {
	return &ResolvedSet{seen: make(map[string]string)}
}

// Add inserts the identifier unless it is already present.
// It reports whether the identifier was newly added.
func (s *ResolvedSet) Add(identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := identifierKey(identifier)
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = identifier
	s.order = append(s.order, identifier)
	return true
}

// Contains reports whether the identifier has been added, ignoring case.
func (s *ResolvedSet) Contains(identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[identifierKey(identifier)]
	return ok
}

// Len returns the number of identifiers in the set.
func (s *ResolvedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Identifiers returns the identifiers in the order they were first added,
// spelled as they were first seen.
func (s *ResolvedSet) Identifiers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// IdentifierSet is a case-insensitive set of identifiers, used for ignore lists.
type IdentifierSet map[string]struct{}

// NewIdentifierSet builds an IdentifierSet from the given identifiers.
func NewIdentifierSet(identifiers ...string) IdentifierSet {
	set := make(IdentifierSet, len(identifiers))
	for _, id := range identifiers {
		if id == "" {
			continue
		}
		set[identifierKey(id)] = struct{}{}
	}
	return set
}

// Contains reports whether the identifier is in the set, ignoring case.
func (s IdentifierSet) Contains(identifier string) bool {
	_, ok := s[identifierKey(identifier)]
	return ok
}
