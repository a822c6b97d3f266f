//go:build !result_unchecked

package result

// checked enables accessor precondition checks. Build with the
// result_unchecked tag to compile them out.
const checked = true
