//go:build result_noexcept

package result

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoexcept_DefaultsToAbort(t *testing.T) {
	require.Equal(t, AbortOnBadAccess, defaultPolicy)
	require.Equal(t, AbortOnBadAccess, AccessPolicy())
}

func TestNoexcept_BadAccessExits(t *testing.T) {
	if !checked {
		t.Skip("accessor checks are compiled out")
	}
	code := 0
	previousExit := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = previousExit })

	require.NotPanics(t, func() { _ = Err[int]("test error").Value() })
	require.Equal(t, AbortExitCode, code)
}
