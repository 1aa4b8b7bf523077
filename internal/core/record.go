package core

// CallRecord is one completed call: the argument tuple the call was made
// with and the value it produced. Records are created only for calls that
// produced a value; failed calls are never recorded.
type CallRecord struct {
	Input  []any
	Output any
}

// History is a snapshot of one function's completed calls, ordered by
// completion. Snapshots are copies: reading one repeatedly, or holding one
// across later calls, never observes new records. All query methods are
// pure reads.
type History []CallRecord

// Count returns the total number of recorded calls.
func (h History) Count() int { return len(h) }

// CountWith returns how many recorded calls had an input tuple the pattern
// accepts. Bare values in the pattern compare structurally; Matchers match.
func (h History) CountWith(pattern ...any) int {
	count := 0

	for _, record := range h {
		if ok, _ := MatchArgs(record.Input, pattern); ok {
			count++
		}
	}

	return count
}

// Nth returns the n-th record, 1-indexed. ok is false when n is out of range.
func (h History) Nth(n int) (CallRecord, bool) {
	if n < 1 || n > len(h) {
		return CallRecord{}, false
	}

	return h[n-1], true
}

// Last returns the most recent record. ok is false for an empty history.
func (h History) Last() (CallRecord, bool) { return h.Nth(len(h)) }

// Inputs returns every recorded input tuple, in completion order.
func (h History) Inputs() [][]any {
	if len(h) == 0 {
		return nil
	}

	inputs := make([][]any, 0, len(h))
	for _, record := range h {
		inputs = append(inputs, record.Input)
	}

	return inputs
}

// Outputs returns every recorded output, in completion order.
func (h History) Outputs() []any {
	if len(h) == 0 {
		return nil
	}

	outputs := make([]any, 0, len(h))
	for _, record := range h {
		outputs = append(outputs, record.Output)
	}

	return outputs
}

// CalledWith reports whether any recorded call's input is accepted by the
// pattern.
func (h History) CalledWith(pattern ...any) bool {
	return h.CountWith(pattern...) > 0
}

// CalledWhere reports whether the predicate holds for at least one recorded
// input. A predicate that panics on a record counts as false for that
// record; the panic never propagates to the caller.
func (h History) CalledWhere(predicate func(input []any) bool) bool {
	for _, record := range h {
		if safePredicate(predicate, record.Input) {
			return true
		}
	}

	return false
}

// CalledWithExactly reports whether the complete recorded input sequence
// equals the given sequence: same length, same order, same values.
func (h History) CalledWithExactly(sequence ...[]any) bool {
	if len(h) != len(sequence) {
		return false
	}

	for i, record := range h {
		if ok, _ := MatchArgs(record.Input, sequence[i]); !ok {
			return false
		}
	}

	return true
}

// Returned reports whether any recorded call produced the given output.
func (h History) Returned(value any) bool {
	for _, record := range h {
		if ok, _ := MatchValue(record.Output, value); ok {
			return true
		}
	}

	return false
}

// safePredicate runs a query predicate over one input tuple, converting a
// panic into a non-match. Predicates are user code; a crash on one record
// must not take down the read or the stub.
func safePredicate(predicate func([]any) bool, input []any) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()

	return predicate(input)
}
