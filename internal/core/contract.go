package core

import "strconv"

// Signature identifies a function by name and arity.
type Signature struct {
	Name  string
	Arity int
}

// String renders the conventional name/arity form, e.g. "ceil/1".
func (s Signature) String() string {
	return s.Name + "/" + strconv.Itoa(s.Arity)
}

// SignaturesOf returns the distinct name/arity pairs covered by the
// overloads, in first-appearance order.
func SignaturesOf(overloads []Overload) []Signature {
	var sigs []Signature

	seen := map[Signature]bool{}

	for _, overload := range overloads {
		sig := overload.signature()
		if seen[sig] {
			continue
		}

		seen[sig] = true
		sigs = append(sigs, sig)
	}

	return sigs
}

// CheckContract verifies that the target provides every signature, and
// reports all the missing ones at once as a ContractError. Targets that do
// not support inspection pass vacuously. The check is advisory and runs at
// construction time only; dispatch never re-validates it.
func CheckContract(target Target, sigs []Signature) error {
	inspector, ok := target.(Inspector)
	if !ok {
		return nil
	}

	var missing []Signature

	for _, sig := range sigs {
		if !inspector.Provides(sig) {
			missing = append(missing, sig)
		}
	}

	if len(missing) > 0 {
		return &ContractError{Missing: missing}
	}

	return nil
}
