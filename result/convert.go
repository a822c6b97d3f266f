package result

import (
	"fmt"
	"reflect"
	"sort"

	"golang.org/x/exp/constraints"
)

// ConversionError is raised (as a panic) when an error or value has to cross
// into a type it has no conversion path to. It signals a programming error.
type ConversionError struct {
	From reflect.Type
	To   reflect.Type
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("result: no conversion from %v to %v", e.From, e.To)
}

type converterKey struct {
	from, to reflect.Type
}

var converters registry[converterKey, func(any) any]

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterConverter makes errors of type From convertible to To when From is
// not directly assignable to To. Registering the same pair again replaces
// the previous converter. It is usually called from an init function.
func RegisterConverter[From, To any](convert func(From) To) {
	converters.Store(converterKey{typeOf[From](), typeOf[To]()}, func(v any) any {
		from, _ := v.(From)
		return convert(from)
	})
}

// UnregisterConverter reports whether a converter was removed.
func UnregisterConverter[From, To any]() bool {
	_, ok := converters.Delete(converterKey{typeOf[From](), typeOf[To]()})
	return ok
}

// CanConvert reports whether an error of type From can become an error of
// type To, either directly or through a registered converter.
func CanConvert[From, To any]() bool {
	from, to := typeOf[From](), typeOf[To]()
	if from.AssignableTo(to) {
		return true
	}
	_, ok := converters.Load(converterKey{from, to})
	return ok
}

// Converters lists the registered pairs as "From -> To", sorted.
func Converters() []string {
	var pairs []string
	converters.Range(func(key converterKey, _ func(any) any) {
		pairs = append(pairs, fmt.Sprintf("%v -> %v", key.from, key.to))
	})
	sort.Strings(pairs)
	return pairs
}

// convertError turns from, whose static type is fromType, into a To. A value
// assignable to To is used as is; otherwise a registered converter is
// invoked; otherwise a *ConversionError panic is raised.
func convertError[To any](from any, fromType reflect.Type) To {
	toType := typeOf[To]()
	if fromType.AssignableTo(toType) {
		return assign[To](from, toType)
	}
	if convert, ok := converters.Load(converterKey{fromType, toType}); ok {
		to, ok := convert(from).(To)
		if !ok {
			panic(&ConversionError{From: fromType, To: toType})
		}
		return to
	}
	panic(&ConversionError{From: fromType, To: toType})
}

// assign stores v in a To the way Go assignment does. v's static type must be
// assignable to toType; a type assertion alone would miss named and
// directional types with the same underlying type.
func assign[To any](v any, toType reflect.Type) To {
	if to, ok := v.(To); ok {
		return to
	}
	var zero To
	if v == nil {
		// nil interface
		return zero
	}
	slot := reflect.New(toType).Elem()
	slot.Set(reflect.ValueOf(v))
	to, ok := slot.Interface().(To)
	if !ok {
		panic(&ConversionError{From: reflect.TypeOf(v), To: toType})
	}
	return to
}

// Convert widens a Result[T, E] into a Result[T2, E2]. T must be assignable
// to T2; E must be assignable to E2 or have a registered converter.
// Numeric narrowing is never implicit, see Narrow.
func Convert[T2, E2, T, E any](r Result[T, E]) Result[T2, E2] {
	if r.failed {
		return Err[T2](convertError[E2](any(r.err), typeOf[E]()))
	}
	from, to := typeOf[T](), typeOf[T2]()
	if !from.AssignableTo(to) {
		panic(&ConversionError{From: from, To: to})
	}
	return Ok[E2](assign[T2](any(r.value), to))
}

type Number interface {
	constraints.Integer | constraints.Float
}

// Narrow converts a numeric payload with Go conversion rules, truncating or
// wrapping as those rules do. It is the explicit opt-in for lossy conversion.
func Narrow[To, From Number, E any](r Result[From, E]) Result[To, E] {
	if r.failed {
		return Err[To](r.err)
	}
	return Ok[E](To(r.value))
}

func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if r.failed {
		return Err[U](r.err)
	}
	return Ok[E](fn(r.value))
}

// AndThen runs fn on the value of a successful r; a failed r is passed on
// without calling fn.
func AndThen[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.failed {
		return Err[U](r.err)
	}
	return fn(r.value)
}

func MapErr[T, E, E2 any](r Result[T, E], fn func(E) E2) Result[T, E2] {
	if r.failed {
		return Err[T](fn(r.err))
	}
	return Ok[E2](r.value)
}
