package core

import (
	"fmt"
	"reflect"
)

// BindFunc builds a callable of the given function type whose calls all
// dispatch through invoke under the given name. This is the calling-surface
// adapter: dispatch stays a name plus an argument tuple, and the typed
// signature is mapped on at the boundary.
//
// Results map back onto the signature: a trailing error return carries
// dispatch failures, and the remaining returns come from the dispatched
// value. One value return takes the value itself, several take the elements
// of a []any value, and none discard it. Signatures without a trailing
// error return have no failure channel, so a failed dispatch panics there.
func BindFunc(funcType reflect.Type, name string, invoke func(string, ...any) (any, error)) reflect.Value {
	if funcType == nil || funcType.Kind() != reflect.Func {
		panic(fmt.Sprintf("must bind a function type. received %v instead.", funcType))
	}

	numValues := funcType.NumOut()

	hasErr := hasTrailingError(funcType)
	if hasErr {
		numValues--
	}

	relayer := func(in []reflect.Value) []reflect.Value {
		value, err := invoke(name, flattenArgs(funcType, in)...)
		if err == nil {
			var out []reflect.Value

			out, err = spreadValue(funcType, numValues, value)
			if err == nil {
				if hasErr {
					out = append(out, reflect.Zero(errorType))
				}

				return out
			}
		}

		if !hasErr {
			panic(err)
		}

		return append(zeroValues(funcType, numValues), reflect.ValueOf(err))
	}

	return reflect.MakeFunc(funcType, relayer)
}

// hasTrailingError reports whether the function type's last return is error.
func hasTrailingError(funcType reflect.Type) bool {
	numOut := funcType.NumOut()

	return numOut > 0 && funcType.Out(numOut-1) == errorType
}

// flattenArgs converts the relayer's reflected args to a flat positional
// tuple, expanding a variadic tail into individual values so patterns see
// the call's actual arity.
func flattenArgs(funcType reflect.Type, in []reflect.Value) []any {
	if !funcType.IsVariadic() || len(in) == 0 {
		return unreflectValues(in)
	}

	args := unreflectValues(in[:len(in)-1])
	tail := in[len(in)-1]

	for i := range tail.Len() {
		args = append(args, tail.Index(i).Interface())
	}

	return args
}

// spreadValue maps one dispatched value onto the signature's value returns.
func spreadValue(funcType reflect.Type, numValues int, value any) ([]reflect.Value, error) {
	switch numValues {
	case 0:
		return nil, nil
	case 1:
		converted, err := conformReturn(value, funcType.Out(0), 0)
		if err != nil {
			return nil, err
		}

		return []reflect.Value{converted}, nil
	default:
		values, ok := value.([]any)
		if !ok || len(values) != numValues {
			return nil, fmt.Errorf("%w: need %d return values, got %#v",
				errIncompatibleCall, numValues, value)
		}

		out := make([]reflect.Value, numValues)

		for i, item := range values {
			converted, err := conformReturn(item, funcType.Out(i), i)
			if err != nil {
				return nil, err
			}

			out[i] = converted
		}

		return out, nil
	}
}

// conformReturn converts one dispatched value to a declared return type.
// A nil value becomes the type's zero value when the type is nillable.
func conformReturn(value any, returnType reflect.Type, index int) (reflect.Value, error) {
	if value == nil {
		if !isNillableKind(returnType.Kind()) {
			return reflect.Value{}, fmt.Errorf("%w: return %d: nil is not a %s",
				errIncompatibleCall, index, getTypeName(returnType))
		}

		return reflect.Zero(returnType), nil
	}

	reflected := reflect.ValueOf(value)
	if !reflected.Type().AssignableTo(returnType) {
		return reflect.Value{}, fmt.Errorf("%w: return %d: %s is not assignable to %s",
			errIncompatibleCall, index, getTypeName(reflected.Type()), getTypeName(returnType))
	}

	return reflected, nil
}

// zeroValues builds zero values for the signature's first n returns.
func zeroValues(funcType reflect.Type, n int) []reflect.Value {
	out := make([]reflect.Value, 0, funcType.NumOut())

	for i := range n {
		out = append(out, reflect.Zero(funcType.Out(i)))
	}

	return out
}
