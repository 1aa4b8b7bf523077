package core

// resolve finds and runs the one implementation servicing a call: the first
// registered overload whose pattern accepts the args wins, in registration
// order; later overloads that would also accept are never considered. When
// no pattern accepts, the reference target services the call if one is
// configured.
//
// Pattern acceptance alone decides selection. A selected body that fails
// produces a BodyError for the call; it does not send the call to the next
// overload or to the reference.
func (s *Stub) resolve(name string, args []any) (any, error) {
	overloads := s.store.overloadsFor(name)
	tried := make([]string, 0, len(overloads))

	for _, overload := range overloads {
		ok, msg := MatchArgs(args, overload.Pattern)
		if !ok {
			tried = append(tried, overload.signature().String()+": "+msg)

			continue
		}

		result, err := overload.Body(args...)
		if err != nil {
			return nil, &BodyError{Func: name, Arity: len(overload.Pattern), Err: err}
		}

		return result, nil
	}

	if target := s.store.referenceTarget(); target != nil {
		result, err := target.Call(name, args)
		if err != nil {
			return nil, &ReferenceError{Func: name, Err: err}
		}

		return result, nil
	}

	failure := ErrNoMatchingOverload
	if len(overloads) == 0 {
		failure = ErrUnknownFunction
	}

	return nil, &DispatchError{Func: name, Args: args, Tried: tried, Err: failure}
}
