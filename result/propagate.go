package result

// Propagate forwards the error of a failed r into a result of another value
// and error type, for code that checks explicitly:
//
//	if r := parse(s); r.HasError() {
//		return result.Propagate[Config, AppError](r)
//	}
//
// Propagating a successful result is a BadErrorAccess.
func Propagate[T2, E2, T, E any](r Result[T, E]) Result[T2, E2] {
	if checked && !r.failed {
		badErrorAccess()
	}
	return Err[T2](convertError[E2](any(r.err), typeOf[E]()))
}

// TryElse returns the value of r, or what fallback makes of its error.
func TryElse[T, E any](r Result[T, E], fallback func(E) T) T {
	if r.failed {
		return fallback(r.err)
	}
	return r.value
}

// CheckElse calls fallback with the error of a failed r.
func CheckElse[T, E any](r Result[T, E], fallback func(E)) {
	if r.failed {
		fallback(r.err)
	}
}

// Fataler is the part of testing.TB TryOrFatal needs.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// TryOrFatal returns the value of r, or stops the test when r failed.
func TryOrFatal[T, E any](tb Fataler, r Result[T, E]) T {
	tb.Helper()
	if r.failed {
		tb.Fatalf("unexpected error result: %v", r.err)
	}
	return r.value
}
