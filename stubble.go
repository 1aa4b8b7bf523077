// Package stubble builds test doubles from declarative overload lists.
// A stub intercepts calls by function name, runs the first registered
// overload whose parameter pattern accepts the arguments, optionally falls
// back to a real reference implementation when nothing accepts, and records
// completed calls for later inspection. It never fails a test on its own;
// it only answers queries.
//
// This is the public API entry point. Implementation lives in internal/core.
package stubble

import (
	"github.com/calverly/stubble/internal/core"
)

// Stub is one constructed test double. It is safe for concurrent use; see
// Invoke for the dispatch rules and History for the recording rules.
type Stub = core.Stub

// Overload is one registered (pattern, body) pair for a function name.
type Overload = core.Overload

// Body is an overload or fallback implementation.
type Body = core.Body

// CallRecord is the recorded (input, output) pair for one completed call.
type CallRecord = core.CallRecord

// History is a completion-ordered snapshot of one function's recorded calls.
type History = core.History

// Matcher is the per-position pattern contract. Compatible with
// gomega.GomegaMatcher via duck typing - any type implementing Match and
// FailureMessage will work, including everything in the pattern package.
type Matcher = core.Matcher

// Target is the name-indexed call capability of a reference implementation.
type Target = core.Target

// Inspector is an optional Target capability enabling construction-time
// contract checks.
type Inspector = core.Inspector

// Signature identifies a function by name and arity.
type Signature = core.Signature

// FuncMap is a Target backed by an explicit name-to-function table.
type FuncMap = core.FuncMap

// DispatchError reports a call no overload accepted and no reference could
// service; it wraps ErrNoMatchingOverload or ErrUnknownFunction.
type DispatchError = core.DispatchError

// BodyError reports a matched overload body that failed.
type BodyError = core.BodyError

// ReferenceError reports a failed fallback call to the reference target.
type ReferenceError = core.ReferenceError

// ContractError reports registered signatures the reference target lacks.
type ContractError = core.ContractError

// Sentinel failure classes re-exported from internal/core.
var (
	ErrNoMatchingOverload = core.ErrNoMatchingOverload
	ErrUnknownFunction    = core.ErrUnknownFunction
)

// Option adjusts stub construction.
type Option func(*core.Config)

// WithReference sets the reference target unmatched calls fall back to.
// Configuring a target is what enables fallback.
func WithReference(target Target) Option {
	return func(config *core.Config) {
		config.Reference = target
	}
}

// WithRecording turns on call recording. Recording is off unless asked
// for: an un-queried stub should not retain every argument it ever saw.
func WithRecording() Option {
	return func(config *core.Config) {
		config.Recording = true
	}
}

// New builds a stub from the overloads, in resolution order. When the
// options configure a reference target that supports inspection, New
// verifies the target provides every registered name/arity and reports
// everything missing as a ContractError, before the stub can take calls.
func New(overloads []Overload, options ...Option) (*Stub, error) {
	config := core.Config{Overloads: overloads}

	for _, option := range options {
		option(&config)
	}

	if config.Reference != nil {
		if err := core.CheckContract(config.Reference, core.SignaturesOf(overloads)); err != nil {
			return nil, err
		}
	}

	return core.New(config), nil
}

// Must is New for static overload lists: it panics instead of returning a
// construction error.
func Must(overloads []Overload, options ...Option) *Stub {
	stub, err := New(overloads, options...)
	if err != nil {
		panic(err)
	}

	return stub
}

// TargetOf adapts any value into a Target dispatching to the value's
// exported methods by name. The adapted target supports inspection.
func TargetOf(value any) Target {
	return core.TargetOf(value)
}

// CheckContract verifies a target provides every signature. Exposed for
// callers that assemble their own calling surfaces; New already runs it
// when a reference is configured.
func CheckContract(target Target, sigs []Signature) error {
	return core.CheckContract(target, sigs)
}

// SignaturesOf returns the distinct name/arity pairs covered by the
// overloads, in first-appearance order.
func SignaturesOf(overloads []Overload) []Signature {
	return core.SignaturesOf(overloads)
}
