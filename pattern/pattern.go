// Package pattern provides parameter-pattern matchers for stubble overloads
// and history queries. This package is designed to be dot-imported alongside
// gomega matchers:
//
//	import (
//	    . "github.com/calverly/stubble/pattern"
//	    . "github.com/onsi/gomega"
//	)
//
//	stubble.NewOverload("round", []any{Any, BeNumerically(">", 0)}, body)
package pattern

import (
	"errors"
	"fmt"
	"reflect"
)

// errTypeMismatch is a sentinel error for values a matcher cannot examine.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Any is the free-variable pattern: it matches any value in its position.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var Any Matcher = anyMatcher{}

// anyMatcher is the implementation of the Any matcher.
type anyMatcher struct{}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

// FailureMessage returns an empty string since Any always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Eq matches values structurally equal to expected. A bare literal in a
// pattern already compares this way; Eq makes it explicit, and keeps a
// literal that happens to implement Matcher from being treated as one.
func Eq(expected any) Matcher {
	return eqMatcher{expected: expected}
}

type eqMatcher struct {
	expected any
}

func (m eqMatcher) Match(actual any) (bool, error) {
	return structurallyEqual(actual, m.expected), nil
}

func (m eqMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %#v, got %#v", m.expected, actual)
}

// OfType matches any value whose dynamic type is assignable to T.
func OfType[T any]() Matcher {
	return ofTypeMatcher[T]{}
}

type ofTypeMatcher[T any] struct{}

func (ofTypeMatcher[T]) Match(actual any) (bool, error) {
	_, ok := actual.(T)

	return ok, nil
}

func (ofTypeMatcher[T]) FailureMessage(actual any) string {
	return fmt.Sprintf("expected a %T, got %T", *new(T), actual)
}

// Satisfy returns a matcher that uses a predicate function to check for a
// match. The predicate should return nil if the value matches, or an error
// describing the mismatch if it does not.
//
// Example:
//
//	stubble.NewOverload("save", []any{Satisfy(func(id int) error {
//	    if id < 0 { return fmt.Errorf("expected positive, got %d", id) }
//	    return nil
//	})}, body)
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

// Items destructures a slice or array position: it matches when the value
// holds exactly one item per element, each matching the element at the same
// index. Elements are literals or Matchers, nested destructures included.
func Items(elements ...any) Matcher {
	return &itemsMatcher{elements: elements}
}

type itemsMatcher struct {
	elements []any
	lastMsg  string
}

func (m *itemsMatcher) Match(actual any) (bool, error) {
	value := reflect.ValueOf(actual)
	if !value.IsValid() || (value.Kind() != reflect.Slice && value.Kind() != reflect.Array) {
		return false, fmt.Errorf("%w: expected a slice or array, got %T", errTypeMismatch, actual)
	}

	if value.Len() != len(m.elements) {
		m.lastMsg = fmt.Sprintf("has %d items, want %d", value.Len(), len(m.elements))

		return false, nil
	}

	for i, element := range m.elements {
		ok, msg := matchElement(value.Index(i).Interface(), element)
		if !ok {
			m.lastMsg = fmt.Sprintf("item %d: %s", i, msg)

			return false, nil
		}
	}

	return true, nil
}

func (m *itemsMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("value %#v: %s", actual, m.lastMsg)
}

// Fields destructures a struct or map position: it matches when every named
// field or key is present and matches. Extra fields on the value are
// ignored, so a pattern can pin down just the parts it cares about.
// Pointers to structs are followed.
func Fields(want map[string]any) Matcher {
	return &fieldsMatcher{want: want}
}

type fieldsMatcher struct {
	want    map[string]any
	lastMsg string
}

func (m *fieldsMatcher) Match(actual any) (bool, error) {
	value := reflect.ValueOf(actual)
	for value.Kind() == reflect.Pointer && !value.IsNil() {
		value = value.Elem()
	}

	switch {
	case !value.IsValid():
		return false, fmt.Errorf("%w: expected a struct or map, got %T", errTypeMismatch, actual)
	case value.Kind() == reflect.Struct:
		return m.matchStruct(value), nil
	case value.Kind() == reflect.Map:
		return m.matchMap(value)
	default:
		return false, fmt.Errorf("%w: expected a struct or map, got %T", errTypeMismatch, actual)
	}
}

func (m *fieldsMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("value %#v: %s", actual, m.lastMsg)
}

func (m *fieldsMatcher) matchStruct(value reflect.Value) bool {
	for name, expected := range m.want {
		field := value.FieldByName(name)

		switch {
		case !field.IsValid():
			m.lastMsg = fmt.Sprintf("no field %q", name)

			return false
		case !field.CanInterface():
			m.lastMsg = fmt.Sprintf("field %q is unexported", name)

			return false
		}

		ok, msg := matchElement(field.Interface(), expected)
		if !ok {
			m.lastMsg = fmt.Sprintf("field %q: %s", name, msg)

			return false
		}
	}

	return true
}

func (m *fieldsMatcher) matchMap(value reflect.Value) (bool, error) {
	keyType := value.Type().Key()
	if keyType.Kind() != reflect.String {
		return false, fmt.Errorf("%w: map keys are %s, not strings", errTypeMismatch, keyType)
	}

	for name, expected := range m.want {
		item := value.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !item.IsValid() {
			m.lastMsg = fmt.Sprintf("no key %q", name)

			return false, nil
		}

		ok, msg := matchElement(item.Interface(), expected)
		if !ok {
			m.lastMsg = fmt.Sprintf("key %q: %s", name, msg)

			return false, nil
		}
	}

	return true, nil
}

// matchElement accepts literals or Matchers in nested positions, the same
// contract the engine applies to top-level pattern elements.
func matchElement(actual, expected any) (bool, string) {
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

	if structurallyEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %#v, got %#v", expected, actual)
}

// structurallyEqual is reflect.DeepEqual with disagreeing-nils handled:
// an untyped nil and a typed nil pointer count as equal.
func structurallyEqual(actual, expected any) bool {
	if isNil(actual) || isNil(expected) {
		return isNil(actual) && isNil(expected)
	}

	return reflect.DeepEqual(actual, expected)
}

// isNil returns whether the value is nil, typed or untyped.
func isNil(value any) bool {
	reflected := reflect.ValueOf(value)
	if !reflected.IsValid() {
		return true
	}

	switch reflected.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return reflected.IsNil()
	default:
		return false
	}
}
