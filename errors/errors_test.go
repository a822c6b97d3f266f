package errors

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var ErrNotFound = New("xxx not found")

func a() error {
	return Wrap(ErrNotFound)
}

func b() error {
	return Wrapf(a(), "call %s function error", "a")
}

func TestErrorStack(t *testing.T) {
	err := b()
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, ErrNotFound, Cause(err))

	stack := fmt.Sprintf("%+v", err)
	require.Len(t, strings.Split(stack, "\n"), 6)
	require.Contains(t, stack, "call a function error: xxx not found")
	t.Logf("\n%s", stack)
}

func TestNew_RecordsCallerLocation(t *testing.T) {
	err := New("boom")
	var located *Error
	require.True(t, errors.As(err, &located))

	file, fn, line := located.Location()
	require.Equal(t, "errors_test.go", filepath.Base(file))
	require.True(t, strings.HasSuffix(fn, "TestNew_RecordsCallerLocation"), fn)
	require.NotZero(t, line)
}

func helper() error {
	return NewDepth(1, "from helper")
}

func TestNewDepth_SkipsFrames(t *testing.T) {
	var located *Error
	require.True(t, errors.As(helper(), &located))
	_, fn, _ := located.Location()
	require.True(t, strings.HasSuffix(fn, "TestNewDepth_SkipsFrames"), fn)
}

func TestErrorf(t *testing.T) {
	err := Errorf("some error: %d", 893745)
	require.Equal(t, "some error: 893745", err.Error())
	require.Equal(t, `"some error: 893745"`, fmt.Sprintf("%q", err))
}

func TestWrap_Nil(t *testing.T) {
	require.NoError(t, Wrap(nil))
	require.NoError(t, Wrapf(nil, "ignored"))
}
