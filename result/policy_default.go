//go:build !result_noexcept

package result

const defaultPolicy = PanicOnBadAccess
