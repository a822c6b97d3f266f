//go:build result_noexcept

package result

// Builds that must not unwind abort on a bad access by default.
const defaultPolicy = AbortOnBadAccess
