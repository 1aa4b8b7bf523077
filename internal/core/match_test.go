package core_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/calverly/stubble/internal/core"
)

// fakeMatcher is a hand-rolled Matcher for driving MatchValue's matcher path.
type fakeMatcher struct {
	accept bool
	err    error
}

func (m fakeMatcher) Match(any) (bool, error) {
	return m.accept, m.err
}

func (m fakeMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("rejected %v", actual)
}

// TestMatchValue_EqualLiterals verifies that structurally equal values match.
func TestMatchValue_EqualLiterals(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue(42, 42)

	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())
}

// TestMatchValue_UnequalLiterals verifies that unequal values produce a
// failure message naming both sides.
func TestMatchValue_UnequalLiterals(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue(42, 43)

	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("43"))
	g.Expect(msg).To(ContainSubstring("42"))
}

// TestMatchValue_TypeMatters verifies that values of different types don't
// match even when they print the same.
func TestMatchValue_TypeMatters(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := core.MatchValue(int64(1), int32(1))

	g.Expect(ok).To(BeFalse())
}

// TestMatchValue_NilEqualsTypedNil verifies the nil handling: an untyped
// nil matches a typed nil pointer.
func TestMatchValue_NilEqualsTypedNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := core.MatchValue(nil, (*int)(nil))

	g.Expect(ok).To(BeTrue())
}

// TestMatchValue_NilAgainstValue verifies that nil never matches a non-nil
// value, in either direction.
func TestMatchValue_NilAgainstValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := core.MatchValue(nil, 5)
	g.Expect(ok).To(BeFalse())

	ok, _ = core.MatchValue(5, nil)
	g.Expect(ok).To(BeFalse())
}

// TestMatchValue_FuncsEqualByName verifies that function values compare
// equal when their names are equal.
func TestMatchValue_FuncsEqualByName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := core.MatchValue(strings.ToUpper, strings.ToUpper)
	g.Expect(ok).To(BeTrue())

	ok, _ = core.MatchValue(strings.ToUpper, strings.ToLower)
	g.Expect(ok).To(BeFalse())
}

// TestMatchValue_MatcherAccepts verifies that an expected value implementing
// Matcher is asked instead of compared structurally.
func TestMatchValue_MatcherAccepts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue("anything at all", fakeMatcher{accept: true})

	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())
}

// TestMatchValue_MatcherRejects verifies that a rejecting matcher's failure
// message is surfaced.
func TestMatchValue_MatcherRejects(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue("nope", fakeMatcher{accept: false})

	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(Equal("rejected nope"))
}

// TestMatchValue_MatcherError verifies that a matcher error reads as a
// rejection carrying the error text.
func TestMatchValue_MatcherError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue(7, fakeMatcher{err: errors.New("wrong shape")})

	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(Equal("wrong shape"))
}

// TestMatchArgs_ArityGates verifies that a pattern only accepts tuples of
// its own arity.
func TestMatchArgs_ArityGates(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchArgs([]any{1, 2}, []any{1})

	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("pattern takes 1 args, got 2"))
}

// TestMatchArgs_ReportsFailingPosition verifies that the rejection message
// names the argument index that failed.
func TestMatchArgs_ReportsFailingPosition(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchArgs([]any{1, 2, 3}, []any{1, 9, 3})

	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(HavePrefix("arg 1:"))
}

// TestMatchArgs_EmptyTuple verifies that the zero-arity pattern accepts
// exactly the empty tuple.
func TestMatchArgs_EmptyTuple(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := core.MatchArgs(nil, []any{})
	g.Expect(ok).To(BeTrue())

	ok, _ = core.MatchArgs([]any{1}, []any{})
	g.Expect(ok).To(BeFalse())
}

// TestMatchArgs_MixedMatchersAndLiterals verifies per-position dispatch:
// matchers match their position, literals compare structurally.
func TestMatchArgs_MixedMatchersAndLiterals(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	pattern := []any{fakeMatcher{accept: true}, "fixed"}

	ok, _ := core.MatchArgs([]any{12345, "fixed"}, pattern)
	g.Expect(ok).To(BeTrue())

	ok, _ = core.MatchArgs([]any{12345, "other"}, pattern)
	g.Expect(ok).To(BeFalse())
}

// TestMatchArgs_TupleMatchesItself is the reflexivity property: any tuple
// of plain values is accepted by the pattern made of those same values.
func TestMatchArgs_TupleMatchesItself(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		ints := rapid.SliceOfN(rapid.Int(), 0, 5).Draw(rt, "ints")

		tuple := make([]any, len(ints))
		for i, v := range ints {
			tuple[i] = v
		}

		ok, msg := core.MatchArgs(tuple, tuple)
		if !ok {
			rt.Fatalf("tuple %v rejected itself: %s", tuple, msg)
		}
	})
}
