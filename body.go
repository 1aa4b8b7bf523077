package stubble

import (
	"github.com/calverly/stubble/internal/core"
)

// NewOverload builds an overload in one expression. Pattern elements are
// literals compared structurally or Matchers; the pattern's length is the
// arity the overload answers.
func NewOverload(name string, pattern []any, body Body) Overload {
	return Overload{Name: name, Pattern: pattern, Body: body}
}

// Return builds a body producing a fixed value for every accepted call.
func Return(value any) Body {
	return func(...any) (any, error) {
		return value, nil
	}
}

// Fail builds a body failing every accepted call with err.
func Fail(err error) Body {
	return func(...any) (any, error) {
		return nil, err
	}
}

// Func adapts a typed Go function into a body, so a real function can answer
// an overload without a hand-written wrapper. A trailing error return on the
// function becomes the call's failure.
func Func(fn any) Body {
	return core.BodyOf(fn)
}
