package stubble

import (
	"reflect"

	"github.com/calverly/stubble/internal/core"
)

// Bind returns a function of type T whose calls all dispatch through the
// stub under the given name, so a stub can stand in anywhere a plain
// function is expected. A trailing error return on T carries dispatch
// failures; without one, a failed dispatch panics. Variadic signatures
// dispatch with the tail flattened, so patterns see the call's actual
// arity.
func Bind[T any](stub *Stub, name string) T {
	funcType := reflect.TypeFor[T]()

	bound := core.BindFunc(funcType, name, stub.Invoke)

	// Depending on MakeFunc to return the bound type, as documented. If it
	// failed to, the only thing we'd do is panic anyway.
	return bound.Interface().(T) //nolint:forcetypeassert
}
