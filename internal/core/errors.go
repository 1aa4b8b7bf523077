package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel failure classes, targetable with errors.Is through the wrapping
// error types below.
var (
	// ErrNoMatchingOverload means the args did not satisfy any registered
	// pattern for the name, and no reference fallback could service the call.
	ErrNoMatchingOverload = errors.New("no matching overload")

	// ErrUnknownFunction means the name was never registered and no
	// reference target provides it.
	ErrUnknownFunction = errors.New("unknown function")
)

// errIncompatibleCall marks calls a real function cannot accept: wrong
// argument count, unassignable argument types, or results that do not fit
// the declared signature.
var errIncompatibleCall = errors.New("incompatible call")

// DispatchError reports a call that no overload accepted and no reference
// target could service.
type DispatchError struct {
	Func  string
	Args  []any
	Tried []string // one rejection per overload, in registration order
	Err   error    // ErrNoMatchingOverload or ErrUnknownFunction
}

func (e *DispatchError) Error() string {
	msg := fmt.Sprintf("%v: %s(%s)", e.Err, e.Func, FormatArgs(e.Args))
	if len(e.Tried) > 0 {
		msg += "\nrejected by:\n  " + strings.Join(e.Tried, "\n  ")
	}

	return msg
}

func (e *DispatchError) Unwrap() error { return e.Err }

// BodyError reports an overload body that was selected by its pattern and
// then failed. The underlying failure is wrapped unchanged; it is a real
// call failure, never a reason to try a later overload or the reference.
type BodyError struct {
	Func  string
	Arity int
	Err   error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body of %s/%d failed: %v", e.Func, e.Arity, e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }

// ReferenceError reports a fallback call to the reference target that failed.
type ReferenceError struct {
	Func string
	Err  error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference call to %s failed: %v", e.Func, e.Err)
}

func (e *ReferenceError) Unwrap() error { return e.Err }

// ContractError reports the registered signatures a reference target does
// not provide. It carries every missing signature, not just the first.
type ContractError struct {
	Missing []Signature
}

func (e *ContractError) Error() string {
	rendered := make([]string, len(e.Missing))
	for i, sig := range e.Missing {
		rendered[i] = sig.String()
	}

	return "reference target lacks " + strings.Join(rendered, ", ")
}
