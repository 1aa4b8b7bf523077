package core

import (
	"slices"
	"sync"
)

// Body is an overload or fallback implementation. It receives exactly the
// call's argument tuple and produces the call's value, or an error to fail
// the call.
type Body func(args ...any) (any, error)

// Overload is one registered (pattern, body) pair for a function name.
// Pattern is positional: each element constrains the argument at the same
// index, either a literal compared structurally or a Matcher. The pattern's
// length is the overload's arity; the same name may be registered at
// several arities.
type Overload struct {
	Name    string
	Pattern []any
	Body    Body
}

// signature returns the overload's name/arity identity.
func (o Overload) signature() Signature {
	return Signature{Name: o.Name, Arity: len(o.Pattern)}
}

// callStore owns the overload registry, the reference target handle, and
// the per-name call histories. It holds no dispatch logic; it is pure state
// behind a lock. Registration stops when construction finishes, histories
// are append-only, and appended records are never mutated.
type callStore struct {
	mu        sync.Mutex // Protects names, overloads, reference, and histories
	names     []string   // Every name seen, in first-seen order
	overloads map[string][]Overload
	reference Target
	histories map[string]History
	recording bool
}

func newCallStore(recording bool) *callStore {
	return &callStore{
		overloads: map[string][]Overload{},
		histories: map[string]History{},
		recording: recording,
	}
}

// register appends an overload to its name's list. Registration order is
// resolution order and is never reordered; duplicate patterns are legal.
func (s *callStore) register(overload Overload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.noteName(overload.Name)
	s.overloads[overload.Name] = append(s.overloads[overload.Name], overload)
}

// setReference sets the fallback target. Last write wins.
func (s *callStore) setReference(target Target) {
	s.mu.Lock()
	s.reference = target
	s.mu.Unlock()
}

// referenceTarget returns the fallback target, or nil when none is configured.
func (s *callStore) referenceTarget() Target {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reference
}

// overloadsFor returns the registration-order overload list for the name,
// empty if the name is unknown. The slice is shared, not copied: the
// registry is frozen after construction, so scanning it without a copy is
// safe as long as callers never mutate it.
func (s *callStore) overloadsFor(name string) []Overload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.overloads[name]
}

// appendCall records one completed call at the end of the name's history.
// No-op while recording is disabled. The input tuple is copied so later
// caller mutations cannot rewrite history.
func (s *callStore) appendCall(name string, input []any, output any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return
	}

	s.noteName(name)
	s.histories[name] = append(s.histories[name], CallRecord{
		Input:  slices.Clone(input),
		Output: output,
	})
}

// historyFor returns a snapshot of the name's completed calls, in the order
// they completed. Unknown and never-called names yield an empty history,
// not an error.
func (s *callStore) historyFor(name string) History {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.histories[name])
}

// knownNames returns every name ever registered or called, in first-seen
// order. Fallback calls to unregistered names show up here too.
func (s *callStore) knownNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.names)
}

// noteName tracks first-seen name order. Callers must hold s.mu.
func (s *callStore) noteName(name string) {
	if _, seen := s.overloads[name]; seen {
		return
	}

	if _, seen := s.histories[name]; seen {
		return
	}

	s.names = append(s.names, name)
}
