package core

import (
	"fmt"
	"reflect"
)

// Target is the name-indexed call capability a stub falls back to when no
// overload accepts a call. Implementations route the name and argument
// tuple to the real function and return its value, or an error when the
// function is missing, cannot accept the call, or fails.
type Target interface {
	Call(name string, args []any) (any, error)
}

// Inspector is an optional Target capability: targets that can report
// whether they provide a given name/arity enable construction-time
// contract checking. Targets without it skip the check.
type Inspector interface {
	Provides(sig Signature) bool
}

//nolint:gochecknoglobals // computed once from a fixed type
var errorType = reflect.TypeFor[error]()

// FuncMap is a Target backed by an explicit name-to-function table built
// ahead of time. Entries may have any function signature, variadic
// included; the argument tuple is checked against it on every call.
type FuncMap map[string]any

// Call invokes the named entry with args.
// Results follow the single-value convention: a trailing error return is
// split off as the call's failure, no remaining values yield nil, one
// yields the value itself, and several yield a []any.
func (m FuncMap) Call(name string, args []any) (any, error) {
	entry, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	function := reflect.ValueOf(entry)
	if !function.IsValid() || function.Kind() != reflect.Func {
		//nolint:err113 // construction mistake with dynamic context
		return nil, fmt.Errorf("table entry %s is a %T, not a function", name, entry)
	}

	return callReflected(function, name, args)
}

// Provides reports whether the table holds a function under the
// signature's name that accepts the signature's arity.
func (m FuncMap) Provides(sig Signature) bool {
	entry, ok := m[sig.Name]
	if !ok {
		return false
	}

	return acceptsArity(reflect.TypeOf(entry), sig.Arity)
}

// BodyOf adapts a typed Go function into a Body, so real functions can serve
// as overload bodies without hand-written wrappers. Args marshal into the
// function's parameters exactly as reference calls do; a trailing error
// return becomes the call's failure.
func BodyOf(fn any) Body {
	function := reflect.ValueOf(fn)
	if !function.IsValid() || function.Kind() != reflect.Func {
		panic(fmt.Sprintf("must adapt a function. received %v instead.", fn))
	}

	name := funcName(fn)

	return func(args ...any) (any, error) {
		return callReflected(function, name, args)
	}
}

// TargetOf adapts any value into a Target dispatching to the value's
// exported methods by exact name. The adapted target supports inspection.
func TargetOf(value any) Target {
	return methodTarget{value: reflect.ValueOf(value)}
}

type methodTarget struct {
	value reflect.Value
}

// Call invokes the method with the call's name on the adapted value.
func (t methodTarget) Call(name string, args []any) (any, error) {
	method := t.value.MethodByName(name)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %s has no method %s",
			ErrUnknownFunction, getTypeName(t.value.Type()), name)
	}

	return callReflected(method, name, args)
}

// Provides reports whether the adapted value has a method with the
// signature's name accepting the signature's arity.
func (t methodTarget) Provides(sig Signature) bool {
	method := t.value.MethodByName(sig.Name)
	if !method.IsValid() {
		return false
	}

	return acceptsArity(method.Type(), sig.Arity)
}

// callReflected invokes a reflected function, marshalling the argument
// tuple in and the results out.
func callReflected(function reflect.Value, name string, args []any) (any, error) {
	in, err := reflectArgs(function.Type(), name, args)
	if err != nil {
		return nil, err
	}

	return splitResults(function.Type(), function.Call(in))
}

// reflectArgs converts an argument tuple to reflect.Values matching the
// function's parameter types, validating arity and assignability. A nil
// arg becomes the parameter type's zero value when that type is nillable.
func reflectArgs(funcType reflect.Type, name string, args []any) ([]reflect.Value, error) {
	if err := checkArity(funcType, name, len(args)); err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		paramType := paramTypeAt(funcType, i)

		if arg == nil {
			if !isNillableKind(paramType.Kind()) {
				return nil, fmt.Errorf("%w: arg %d of %s: nil is not a %s",
					errIncompatibleCall, i, name, getTypeName(paramType))
			}

			in[i] = reflect.Zero(paramType)

			continue
		}

		argValue := reflect.ValueOf(arg)
		if !argValue.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("%w: arg %d of %s: %s is not assignable to %s",
				errIncompatibleCall, i, name, getTypeName(argValue.Type()), getTypeName(paramType))
		}

		in[i] = argValue
	}

	return in, nil
}

// checkArity validates the argument count against the function type,
// allowing any count at or above the fixed parameters for variadics.
func checkArity(funcType reflect.Type, name string, numArgs int) error {
	numIn := funcType.NumIn()

	if funcType.IsVariadic() {
		if numArgs < numIn-1 {
			return fmt.Errorf("%w: %s takes at least %d args, got %d",
				errIncompatibleCall, name, numIn-1, numArgs)
		}

		return nil
	}

	if numArgs != numIn {
		return fmt.Errorf("%w: %s takes %d args, got %d",
			errIncompatibleCall, name, numIn, numArgs)
	}

	return nil
}

// paramTypeAt returns the declared type of parameter i, unrolling a
// variadic tail to its element type.
func paramTypeAt(funcType reflect.Type, i int) reflect.Type {
	if funcType.IsVariadic() && i >= funcType.NumIn()-1 {
		return funcType.In(funcType.NumIn() - 1).Elem()
	}

	return funcType.In(i)
}

// splitResults maps a reflected result list onto the single-value call
// contract. A trailing error return becomes the call's failure; of the
// remaining values, none yield nil, one yields the value itself, and
// several yield a []any.
func splitResults(funcType reflect.Type, out []reflect.Value) (any, error) {
	numOut := funcType.NumOut()

	if numOut > 0 && funcType.Out(numOut-1) == errorType {
		errValue := out[numOut-1]
		if !errValue.IsNil() {
			return nil, errValue.Interface().(error) //nolint:forcetypeassert // declared type is error
		}

		out = out[:numOut-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		return unreflectValues(out), nil
	}
}

// acceptsArity reports whether a function type can be called with n args.
func acceptsArity(funcType reflect.Type, n int) bool {
	if funcType == nil || funcType.Kind() != reflect.Func {
		return false
	}

	if funcType.IsVariadic() {
		return n >= funcType.NumIn()-1
	}

	return n == funcType.NumIn()
}

// unreflectValues returns the actual values of the reflected values.
func unreflectValues(reflected []reflect.Value) []any {
	if len(reflected) == 0 {
		return nil
	}

	values := []any{}

	for i := range reflected {
		values = append(values, reflected[i].Interface())
	}

	return values
}
