package result

import "fmt"

// Failure is an error waiting to be placed into a result. Its value type is
// decided where it is used, not where it is created.
type Failure[E any] struct {
	err E
}

func Fail[E any](err E) Failure[E] {
	return Failure[E]{err: err}
}

func (f Failure[E]) Err() E {
	return f.err
}

func (f Failure[E]) String() string {
	return fmt.Sprintf("Fail(%v)", f.err)
}

// FromFailure places f into a result with value type T.
func FromFailure[T, E any](f Failure[E]) Result[T, E] {
	return Err[T](f.err)
}

// ConvertFailure places f into a result whose error type is E2, converting
// the error as described by Convert.
func ConvertFailure[T, E2, E1 any](f Failure[E1]) Result[T, E2] {
	return Err[T](convertError[E2](any(f.err), typeOf[E1]()))
}
