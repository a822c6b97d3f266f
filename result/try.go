//go:build !result_notry

package result

import (
	"fmt"
	"reflect"
)

// propagation is the panic value Try and Check use to unwind to the nearest
// deferred Handle.
type propagation struct {
	err     any
	errType reflect.Type
}

func (p *propagation) Error() string {
	return fmt.Sprintf("result: error propagated without a deferred Handle: %v", p.err)
}

// Try returns the value of r. When r failed, Try stops the enclosing function
// instead: the error unwinds to the Handle that function deferred, which
// stores it in the function's result, converted to its error type.
//
//	func load(name string) (out result.Result[Config, AppError]) {
//		defer result.Handle(&out)
//		raw := result.Try(read(name))
//		return result.Ok[AppError](result.Try(parse(raw)))
//	}
//
// r is evaluated once, by the caller. A function calling Try without deferring
// Handle lets the error unwind further, up to its caller's Handle or a crash.
func Try[T, E any](r Result[T, E]) T {
	if r.failed {
		panic(&propagation{err: r.err, errType: typeOf[E]()})
	}
	return r.value
}

// Check is Try for results whose value is not needed, typically Result[Void, E].
func Check[T, E any](r Result[T, E]) {
	if r.failed {
		panic(&propagation{err: r.err, errType: typeOf[E]()})
	}
}

// Handle must be deferred directly by functions that call Try or Check. It
// turns a propagated error into a failed *out, converting the error as
// Convert does. Any other panic passes through untouched.
func Handle[T, E any](out *Result[T, E]) {
	p := recover()
	if p == nil {
		return
	}
	sig, ok := p.(*propagation)
	if !ok {
		panic(p)
	}
	*out = Err[T](convertError[E](sig.err, sig.errType))
}
