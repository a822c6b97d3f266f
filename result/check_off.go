//go:build result_unchecked

package result

const checked = false
