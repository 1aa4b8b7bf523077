// Package core implements the stub dispatch engine: the overload registry,
// first-match-wins resolution with reference fallback, completion-ordered
// call recording, and the read-only history queries.
package core

import (
	"sync"

	"github.com/google/uuid"
)

// Config carries everything a stub needs at construction time. All
// configuration is explicit and per instance; there is no process-wide
// default state. The zero Config builds a stub with no overloads, no
// reference target, and recording off.
type Config struct {
	Overloads []Overload // resolution order; first match wins
	Reference Target     // optional fallback for unmatched calls
	Recording bool       // record completed calls for querying
}

// Stub is one constructed test double: the overload registry, the optional
// reference target, and the per-name call histories, all sharing one
// lifetime. Construction freezes the registry; nothing can be registered
// afterward, and no state is shared between instances.
//
// A Stub is safe for concurrent use. Invocations serialize through a single
// owner lock, so each call's full resolve-execute-record sequence runs as
// one unit and history order is the order calls completed. A body that
// never returns therefore blocks every later invocation of the same stub;
// callers needing bounded latency must enforce it around the stub. History
// reads do not take the owner lock and never queue behind a running body.
type Stub struct {
	id    string
	owner sync.Mutex // Serializes resolve-execute-record per call
	store *callStore
	sigs  []Signature
}

// New builds a Stub from the config. The overload list is captured at this
// point; later changes to the config value do not affect the stub.
func New(config Config) *Stub {
	store := newCallStore(config.Recording)

	for _, overload := range config.Overloads {
		store.register(overload)
	}

	if config.Reference != nil {
		store.setReference(config.Reference)
	}

	return &Stub{
		id:    uuid.NewString(),
		store: store,
		sigs:  SignaturesOf(config.Overloads),
	}
}

// ID returns the stub instance's unique identifier. It shows up in history
// dumps to tell instances apart.
func (s *Stub) ID() string { return s.id }

// Signatures returns the distinct name/arity pairs registered on the stub,
// in first-registration order.
func (s *Stub) Signatures() []Signature {
	sigs := make([]Signature, len(s.sigs))
	copy(sigs, s.sigs)

	return sigs
}

// Invoke dispatches one call and records it if it completes. The first
// overload registered for name whose pattern accepts args runs; with no
// acceptor, the reference target services the call when one is configured.
// Failed calls return their failure and are never recorded. A body that
// panics propagates the panic, also unrecorded.
func (s *Stub) Invoke(name string, args ...any) (any, error) {
	s.owner.Lock()
	defer s.owner.Unlock()

	result, err := s.resolve(name, args)
	if err != nil {
		return nil, err
	}

	s.store.appendCall(name, args, result)

	return result, nil
}

// History returns a snapshot of name's completed calls in completion order.
// Reading repeatedly without intervening calls returns equal snapshots.
// With recording off, histories are always empty.
func (s *Stub) History(name string) History {
	return s.store.historyFor(name)
}

// Called reports whether name completed at least one recorded call.
func (s *Stub) Called(name string) bool { return s.CallCount(name) > 0 }

// CallCount returns the number of completed calls recorded for name.
func (s *Stub) CallCount(name string) int { return s.History(name).Count() }

// CallCountWith returns the number of completed calls to name whose args
// the pattern accepts.
func (s *Stub) CallCountWith(name string, pattern ...any) int {
	return s.History(name).CountWith(pattern...)
}

// CalledTimes reports whether name completed exactly n recorded calls.
func (s *Stub) CalledTimes(name string, n int) bool { return s.CallCount(name) == n }

// CalledOnce, CalledTwice, and CalledThrice are the common CalledTimes shorthands.
func (s *Stub) CalledOnce(name string) bool   { return s.CalledTimes(name, 1) }
func (s *Stub) CalledTwice(name string) bool  { return s.CalledTimes(name, 2) }
func (s *Stub) CalledThrice(name string) bool { return s.CalledTimes(name, 3) }

// NthCall returns the args of the n-th completed call to name, 1-indexed.
// ok is false when fewer than n calls completed.
func (s *Stub) NthCall(name string, n int) ([]any, bool) {
	record, ok := s.History(name).Nth(n)

	return record.Input, ok
}

// FirstCall, SecondCall, and ThirdCall are the common NthCall shorthands.
func (s *Stub) FirstCall(name string) ([]any, bool)  { return s.NthCall(name, 1) }
func (s *Stub) SecondCall(name string) ([]any, bool) { return s.NthCall(name, 2) }
func (s *Stub) ThirdCall(name string) ([]any, bool)  { return s.NthCall(name, 3) }

// LastCall returns the args of the most recent completed call to name.
func (s *Stub) LastCall(name string) ([]any, bool) {
	record, ok := s.History(name).Last()

	return record.Input, ok
}

// CalledWith reports whether any completed call to name had args the
// pattern accepts.
func (s *Stub) CalledWith(name string, pattern ...any) bool {
	return s.History(name).CalledWith(pattern...)
}

// CalledWhere reports whether the predicate holds for the args of at least
// one completed call to name. A panicking predicate counts as a non-match
// for that call.
func (s *Stub) CalledWhere(name string, predicate func(input []any) bool) bool {
	return s.History(name).CalledWhere(predicate)
}

// CalledWithExactly reports whether name's complete recorded call sequence
// equals the given sequence of argument tuples.
func (s *Stub) CalledWithExactly(name string, sequence ...[]any) bool {
	return s.History(name).CalledWithExactly(sequence...)
}

// Returned reports whether any completed call to name produced the value.
func (s *Stub) Returned(name string, value any) bool {
	return s.History(name).Returned(value)
}
