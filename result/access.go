package result

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/Lvzhenqian/library/errors"
	"github.com/rs/zerolog"
)

type AccessKind int

const (
	BadValueAccess AccessKind = iota + 1
	BadErrorAccess
)

func (k AccessKind) String() string {
	switch k {
	case BadValueAccess:
		return "BadValueAccess"
	case BadErrorAccess:
		return "BadErrorAccess"
	}
	return fmt.Sprintf("AccessKind(%d)", int(k))
}

// AccessError describes a misuse of a result accessor. Under
// PanicOnBadAccess it is the value passed to panic.
type AccessError struct {
	Kind AccessKind
	// Held is the error stored in the result for a BadValueAccess.
	Held any

	err error
}

func (e *AccessError) Error() string {
	return e.err.Error()
}

func (e *AccessError) Unwrap() error {
	return e.err
}

// Policy selects what happens on a bad access in checked builds.
type Policy int32

const (
	// PanicOnBadAccess panics with an *AccessError, which can be recovered.
	PanicOnBadAccess Policy = iota
	// AbortOnBadAccess logs a diagnostic and exits the process.
	AbortOnBadAccess
)

// AbortExitCode is the exit status used by AbortOnBadAccess.
const AbortExitCode = 134

func (p Policy) String() string {
	switch p {
	case PanicOnBadAccess:
		return "panic"
	case AbortOnBadAccess:
		return "abort"
	}
	return fmt.Sprintf("Policy(%d)", int32(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "panic", "":
		return PanicOnBadAccess, nil
	case "abort":
		return AbortOnBadAccess, nil
	}
	return PanicOnBadAccess, errors.Errorf("result: unknown access policy %q", s)
}

var (
	policy      atomic.Int32
	diagnostics atomic.Pointer[zerolog.Logger]
	exit        = os.Exit
)

func init() {
	policy.Store(int32(defaultPolicy))
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	diagnostics.Store(&l)
}

// SetAccessPolicy installs p and returns the previous policy.
func SetAccessPolicy(p Policy) Policy {
	return Policy(policy.Swap(int32(p)))
}

func AccessPolicy() Policy {
	return Policy(policy.Load())
}

// SetDiagnosticLogger replaces the logger used for abort diagnostics. The
// default writes JSON lines to stderr.
func SetDiagnosticLogger(l zerolog.Logger) {
	diagnostics.Store(&l)
}

func badValueAccess(held any) {
	// Skip this function and the accessor to point at the caller.
	err := errors.NewDepth(2, fmt.Sprintf("cannot access value on a fail result: %v", held))
	raise(&AccessError{Kind: BadValueAccess, Held: held, err: err})
}

func badErrorAccess() {
	raise(&AccessError{
		Kind: BadErrorAccess,
		err:  errors.NewDepth(2, "cannot access error on a good result"),
	})
}

func raise(e *AccessError) {
	if AccessPolicy() == AbortOnBadAccess {
		l := diagnostics.Load()
		event := l.Error().Stack().Str("kind", e.Kind.String())
		if located, ok := e.err.(*errors.Error); ok {
			file, _, line := located.Location()
			event = event.Str("caller", fmt.Sprintf("%s:%d", file, line))
		}
		event.Err(e.err).Msg("bad result access")
		exit(AbortExitCode)
		return
	}
	panic(e)
}
