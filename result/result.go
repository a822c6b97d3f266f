// Package result provides Result, a value that is either a success payload
// or an error payload, along with helpers to propagate it between layers.
//
// Domain errors travel inside results. Misusing an accessor, such as reading
// the value of a failed result, is a programming error and is reported
// according to the access policy (see SetAccessPolicy).
package result

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Result holds either a value of type T or an error of type E, never both.
// The inactive side always holds the zero value of its type.
type Result[T, E any] struct {
	value  T
	err    E
	failed bool
}

// Ok creates a successful Result. The error type comes first so that callers
// only have to name it: result.Ok[MyError](42).
func Ok[E, T any](value T) Result[T, E] {
	return Result[T, E]{value: value}
}

// Err creates a failed Result: result.Err[int](ErrNotFound).
func Err[T, E any](err E) Result[T, E] {
	return Result[T, E]{err: err, failed: true}
}

// OkWith builds the success payload in place.
func OkWith[E, T any](build func() T) Result[T, E] {
	return Result[T, E]{value: build()}
}

// ErrWith builds the error payload in place.
func ErrWith[T, E any](build func() E) Result[T, E] {
	return Result[T, E]{err: build(), failed: true}
}

// Done returns the successful result of an operation that produces no value.
func Done[E any]() Result[Void, E] {
	return Result[Void, E]{}
}

// From adapts the (value, error) return convention.
func From[T any](value T, err error) Result[T, error] {
	if err != nil {
		return Err[T](err)
	}
	return Ok[error](value)
}

func (r Result[T, E]) HasError() bool {
	return r.failed
}

// Value returns the success payload. Calling it on a failed result is a
// BadValueAccess.
func (r Result[T, E]) Value() T {
	if checked && r.failed {
		badValueAccess(r.err)
	}
	return r.value
}

// ValuePtr gives access to the stored payload so it can be modified in place.
func (r *Result[T, E]) ValuePtr() *T {
	if checked && r.failed {
		badValueAccess(r.err)
	}
	return &r.value
}

// Take moves the payload out of r, leaving r holding the zero value.
func (r *Result[T, E]) Take() T {
	if checked && r.failed {
		badValueAccess(r.err)
	}
	v := r.value
	var zero T
	r.value = zero
	return v
}

// Err returns the error payload. Calling it on a successful result is a
// BadErrorAccess.
func (r Result[T, E]) Err() E {
	if checked && !r.failed {
		badErrorAccess()
	}
	return r.err
}

// TakeErr moves the error out of r, leaving r holding the zero error.
func (r *Result[T, E]) TakeErr() E {
	if checked && !r.failed {
		badErrorAccess()
	}
	e := r.err
	var zero E
	r.err = zero
	return e
}

func (r Result[T, E]) ValueOr(fallback T) T {
	if r.failed {
		return fallback
	}
	return r.value
}

// Get returns the value and whether r succeeded. It never reports a bad access.
func (r Result[T, E]) Get() (T, bool) {
	return r.value, !r.failed
}

func (r Result[T, E]) String() string {
	if r.failed {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}

func (r Result[T, E]) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("has_error", r.failed)
	if !r.failed {
		e.Interface("value", r.value)
		return
	}
	if err, ok := any(r.err).(error); ok {
		e.AnErr("error", err)
		return
	}
	e.Str("error", fmt.Sprint(r.err))
}
