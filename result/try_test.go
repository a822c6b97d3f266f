//go:build !result_notry

package result

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTry_SuccessContinues(t *testing.T) {
	reached := false
	chain := func() (out Result[int, testError]) {
		defer Handle(&out)
		Try(getSuccess())
		reached = true
		return Ok[testError](100)
	}

	r := chain()
	require.True(t, reached)
	require.False(t, r.HasError())
	require.Equal(t, 100, r.Value())
}

func TestTry_FailureShortCircuits(t *testing.T) {
	reached := false
	chain := func() (out Result[int, testError]) {
		defer Handle(&out)
		Try(getFailure())
		reached = true
		return Ok[testError](100)
	}

	r := chain()
	require.False(t, reached)
	require.True(t, r.HasError())
	require.Equal(t, testError{Code: 1, Message: "operation failed"}, r.Err())
}

func TestCheck_Void(t *testing.T) {
	reached := 0
	chain := func(step func() Result[Void, testError]) (out Result[int, testError]) {
		defer Handle(&out)
		Check(step())
		reached++
		return Ok[testError](100)
	}

	ok := chain(voidSuccess)
	require.Equal(t, 100, ok.Value())
	require.Equal(t, 1, reached)

	failed := chain(voidFailure)
	require.Equal(t, 1, reached)
	require.Equal(t, "void operation failed", failed.Err().Message)
}

func TestTry_NamedBinding(t *testing.T) {
	named := func(get func() Result[int, testError]) (out Result[int, testError]) {
		defer Handle(&out)
		value := Try(get())
		return Ok[testError](value * 2)
	}

	require.Equal(t, 84, named(getSuccess).Value())
	require.Equal(t, 1, named(getFailure).Err().Code)
}

func TestTry_EvaluatesOnce(t *testing.T) {
	calls := 0
	counted := func() Result[int, testError] {
		calls++
		return getFailure()
	}
	run := func() (out Result[int, testError]) {
		defer Handle(&out)
		return Ok[testError](Try(counted()) + 1)
	}

	require.True(t, run().HasError())
	require.Equal(t, 1, calls)
}

type resource struct {
	initialized bool
}

func TestTry_ResourceScope(t *testing.T) {
	create := func() Result[resource, testError] {
		return Ok[testError](resource{initialized: true})
	}
	use := func(r *resource) Result[int, testError] {
		if !r.initialized {
			return Err[int](testError{Code: 2, Message: "resource not initialized"})
		}
		return Ok[testError](42)
	}
	operation := func() (out Result[int, testError]) {
		defer Handle(&out)
		res := Try(create())
		require.True(t, res.initialized)

		n := Try(use(&res))
		res.initialized = false
		return Ok[testError](n)
	}

	require.Equal(t, 42, operation().Value())
}

func TestTry_MoveOnlyPayload(t *testing.T) {
	create := func() Result[owned, testError] {
		return Ok[testError](owned{buf: new(bytes.Buffer)})
	}
	use := func() (out Result[int, testError]) {
		defer Handle(&out)
		o := Try(create())
		o.buf.WriteString("42")
		return Ok[testError](o.buf.Len())
	}
	require.Equal(t, 2, use().Value())
}

func TestTry_ConvertsThroughRegisteredConverter(t *testing.T) {
	convert := func() (out Result[int, otherError]) {
		defer Handle(&out)
		return Ok[otherError](Try(getFailure()))
	}

	r := convert()
	require.True(t, r.HasError())
	require.Equal(t, "Converted: operation failed", r.Err().Reason)
}

func TestTry_ConvertsDirectly(t *testing.T) {
	inner := func() Result[string, codeError] {
		return Err[string](codeError(404))
	}
	outer := func() (out Result[Void, error]) {
		defer Handle(&out)
		Try(inner())
		return Done[error]()
	}

	r := outer()
	require.True(t, r.HasError())
	var code codeError
	require.True(t, errors.As(r.Err(), &code))
	require.Equal(t, codeError(404), code)
}

func TestTry_ConvertsToNamedType(t *testing.T) {
	inner := func() Result[int, []string] {
		return Err[int]([]string{"a", "b"})
	}
	outer := func() (out Result[int, multiErr]) {
		defer Handle(&out)
		return Ok[multiErr](Try(inner()) + 1)
	}

	r := outer()
	require.True(t, r.HasError())
	require.Equal(t, multiErr{"a", "b"}, r.Err())
}

func TestTry_UnconvertibleErrorPanics(t *testing.T) {
	outer := func() (out Result[int, testError]) {
		defer Handle(&out)
		Try(Err[int](unrelatedError{}))
		return Ok[testError](1)
	}

	var caught *ConversionError
	func() {
		defer func() { caught, _ = recover().(*ConversionError) }()
		outer()
	}()
	require.NotNil(t, caught)
}

func TestHandle_PassesOtherPanics(t *testing.T) {
	boom := errors.New("boom")
	outer := func() (out Result[int, testError]) {
		defer Handle(&out)
		panic(boom)
	}
	require.PanicsWithError(t, "boom", func() { outer() })
}

func TestTry_Nested(t *testing.T) {
	inner := func(fail bool) (out Result[string, testError]) {
		defer Handle(&out)
		if fail {
			Try(getFailure())
		}
		return Ok[testError]("inner")
	}
	outer := func(fail bool) (out Result[int, otherError]) {
		defer Handle(&out)
		s := Try(inner(fail))
		return Ok[otherError](len(s))
	}

	require.Equal(t, 5, outer(false).Value())
	require.Equal(t, "Converted: operation failed", outer(true).Err().Reason)
}

func TestTry_MultipleLiveResults(t *testing.T) {
	first := getSuccess()
	second := getFailure()
	third := Ok[testError]("kept")

	require.Equal(t, 42, first.Value())
	require.Equal(t, 1, second.Err().Code)
	require.Equal(t, "kept", third.Value())
}

func TestTry_Reentrant(t *testing.T) {
	work := func(i int) (out Result[int, testError]) {
		defer Handle(&out)
		if i%3 == 0 {
			Try(Err[int](testError{Code: i}))
		}
		return Ok[testError](Try(Ok[testError](i * 10)))
	}

	results := make([]Result[int, testError], 30)
	var wg sync.WaitGroup
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = work(i)
		}()
	}
	wg.Wait()

	for i, r := range results {
		if i%3 == 0 {
			require.Equal(t, i, r.Err().Code)
			continue
		}
		require.Equal(t, i*10, r.Value())
	}
}

func TestTry_WithoutHandle_CrashMessage(t *testing.T) {
	defer func() {
		p := recover()
		err, ok := p.(error)
		require.True(t, ok)
		require.Contains(t, err.Error(), "without a deferred Handle")
	}()
	Try(getFailure())
}
