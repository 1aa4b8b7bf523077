package core

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses structural equality.
// Returns (success, failureMessage). If success is true, failureMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	// Check if expected is a Matcher
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	// Fall back to structural equality for non-matchers
	if deepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %#v, got %#v", expected, actual)
}

// MatchArgs checks a concrete argument tuple against a parameter pattern,
// position by position. The pattern only accepts tuples of its own arity.
// Returns (success, failureMessage). If success is true, failureMessage is empty.
func MatchArgs(args, pattern []any) (bool, string) {
	if len(args) != len(pattern) {
		return false, fmt.Sprintf("pattern takes %d args, got %d", len(pattern), len(args))
	}

	for i := range pattern {
		ok, msg := MatchValue(args[i], pattern[i])
		if !ok {
			return false, fmt.Sprintf("arg %d: %s", i, msg)
		}
	}

	return true, ""
}

// deepEqual checks whether two values are deeply equal.
// deepEqual calls functions equal if their names are equal.
// For everything else it depends on reflect.DeepEqual.
func deepEqual(actual, expected any) bool {
	// handle, for instance, nil == (*int)nil
	// check out https://groups.google.com/g/golang-nuts/c/rVO7ld8KIXI?pli=1
	// for more. Rob Pike agrees this is weird & gross. "unsatisfactory."
	if isNil(actual) && isNil(expected) {
		return true
	}

	if isNil(actual) != isNil(expected) {
		return false
	}

	// Special handling for functions. For our purposes, call funcs with the same names equal.
	if reflect.TypeOf(actual).Kind() == reflect.Func &&
		reflect.TypeOf(expected).Kind() == reflect.Func &&
		funcName(actual) == funcName(expected) {
		return true
	}

	return reflect.DeepEqual(actual, expected)
}

// isNil returns whether the value is nil.
func isNil(value any) bool { return isUntypedNil(value) || isTypedNil(value) }

// isTypedNil returns whether the value is a typed nil.
func isTypedNil(value any) bool {
	reflectedValue := reflect.ValueOf(value)
	return isNillableKind(reflectedValue.Kind()) && reflectedValue.IsNil()
}

// isUntypedNil returns whether the value is an untyped nil.
func isUntypedNil(value any) bool { return !reflect.ValueOf(value).IsValid() }

// funcName gets the function's name.
func funcName(f any) string {
	// docs say to use UnsafePointer explicitly instead of Pointer()
	// https://pkg.go.dev/reflect#Value.Pointer
	name := runtime.FuncForPC(uintptr(reflect.ValueOf(f).UnsafePointer())).Name()
	// this suffix gets appended sometimes. It's unimportant, as far as I can tell.
	name = strings.TrimSuffix(name, "-fm")

	return name
}

// getTypeName gets the type's name, if it has one. If it does not have one,
// getTypeName will return the type's string.
func getTypeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}

// isNillableKind returns true if the kind passed is nillable.
// According to https://pkg.go.dev/reflect#Value.IsNil, this is the case for
// chan, func, interface, map, pointer, or slice kinds.
func isNillableKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	case reflect.Invalid, reflect.Bool, reflect.Int,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128, reflect.Array,
		reflect.String, reflect.Struct, reflect.UnsafePointer:
		return false
	default:
		// Only reachable if go itself introduces a new kind into the reflect package.
		panic("unable to check for nillability for unknown kind " + kind.String())
	}
}
