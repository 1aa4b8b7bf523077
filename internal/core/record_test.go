package core_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/calverly/stubble/internal/core"
)

func threeCalls() core.History {
	return core.History{
		{Input: []any{"a"}, Output: 1},
		{Input: []any{"b", "c"}, Output: 2},
		{Input: []any{"a"}, Output: 3},
	}
}

// TestHistory_Counts verifies Count and the pattern-filtered CountWith.
func TestHistory_Counts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	g.Expect(h.Count()).To(Equal(3))
	g.Expect(h.CountWith("a")).To(Equal(2))
	g.Expect(h.CountWith("b", "c")).To(Equal(1))
	g.Expect(h.CountWith("nope")).To(Equal(0))
}

// TestHistory_CountWithIsArityStrict verifies that CountWith never counts
// calls of a different arity.
func TestHistory_CountWithIsArityStrict(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(threeCalls().CountWith("a", "anything")).To(Equal(0))
}

// TestHistory_Nth verifies 1-indexed access and its bounds.
func TestHistory_Nth(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	first, ok := h.Nth(1)
	g.Expect(ok).To(BeTrue())
	g.Expect(first.Output).To(Equal(1))

	_, ok = h.Nth(0)
	g.Expect(ok).To(BeFalse())

	_, ok = h.Nth(4)
	g.Expect(ok).To(BeFalse())
}

// TestHistory_Last verifies Last returns the most recent record and reports
// emptiness.
func TestHistory_Last(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	last, ok := threeCalls().Last()
	g.Expect(ok).To(BeTrue())
	g.Expect(last.Output).To(Equal(3))

	_, ok = core.History{}.Last()
	g.Expect(ok).To(BeFalse())
}

// TestHistory_InputsOutputs verifies the completion-ordered projections.
func TestHistory_InputsOutputs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	g.Expect(h.Inputs()).To(Equal([][]any{{"a"}, {"b", "c"}, {"a"}}))
	g.Expect(h.Outputs()).To(Equal([]any{1, 2, 3}))
	g.Expect(core.History{}.Inputs()).To(BeNil())
	g.Expect(core.History{}.Outputs()).To(BeNil())
}

// TestHistory_CalledWith verifies the any-call input predicate.
func TestHistory_CalledWith(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	g.Expect(h.CalledWith("a")).To(BeTrue())
	g.Expect(h.CalledWith("b", "c")).To(BeTrue())
	g.Expect(h.CalledWith("qux")).To(BeFalse())
}

// TestHistory_CalledWhere verifies the predicate query.
func TestHistory_CalledWhere(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	g.Expect(h.CalledWhere(func(input []any) bool {
		return len(input) == 2
	})).To(BeTrue())

	g.Expect(h.CalledWhere(func(input []any) bool {
		return len(input) == 7
	})).To(BeFalse())
}

// TestHistory_CalledWhere_PanickingPredicate verifies that a predicate
// crash counts as a non-match for that record instead of propagating.
func TestHistory_CalledWhere_PanickingPredicate(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	// Panics on the arity-1 records, holds for the arity-2 one.
	found := h.CalledWhere(func(input []any) bool {
		return input[1] == "c"
	})
	g.Expect(found).To(BeTrue())

	// Panics on every record: just false, no crash.
	g.Expect(h.CalledWhere(func(input []any) bool {
		panic("predicate bug")
	})).To(BeFalse())
}

// TestHistory_CalledWithExactly verifies whole-sequence equality: same
// length, same order, same values.
func TestHistory_CalledWithExactly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	g.Expect(h.CalledWithExactly([]any{"a"}, []any{"b", "c"}, []any{"a"})).To(BeTrue())
	g.Expect(h.CalledWithExactly([]any{"b", "c"}, []any{"a"}, []any{"a"})).To(BeFalse(), "order matters")
	g.Expect(h.CalledWithExactly([]any{"a"}, []any{"b", "c"})).To(BeFalse(), "length matters")
	g.Expect(core.History{}.CalledWithExactly()).To(BeTrue(), "empty equals empty")
}

// TestHistory_Returned verifies the output query.
func TestHistory_Returned(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	h := threeCalls()

	g.Expect(h.Returned(2)).To(BeTrue())
	g.Expect(h.Returned(9)).To(BeFalse())
}

// TestHistory_QueriesAgree is the property tying the queries together: for
// any recorded history, Count matches the inputs, every Nth call is the
// corresponding input, and the full input sequence satisfies
// CalledWithExactly.
func TestHistory_QueriesAgree(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")

		h := make(core.History, 0, n)
		for i := range n {
			h = append(h, core.CallRecord{
				Input:  []any{rapid.Int().Draw(rt, fmt.Sprintf("arg%d", i))},
				Output: i,
			})
		}

		if h.Count() != n {
			rt.Fatalf("Count() = %d, want %d", h.Count(), n)
		}

		for i := 1; i <= n; i++ {
			record, ok := h.Nth(i)
			if !ok {
				rt.Fatalf("Nth(%d) out of range with %d records", i, n)
			}

			if record.Output != i-1 {
				rt.Fatalf("Nth(%d) out of order: got output %v", i, record.Output)
			}
		}

		if !h.CalledWithExactly(h.Inputs()...) {
			rt.Fatalf("history does not equal its own input sequence")
		}
	})
}
