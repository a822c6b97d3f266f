//go:build result_notry

package main

import "github.com/Lvzhenqian/library/result"

// compose adds a and b, renders the sum and returns its digit count plus n.
func compose(a, b, n int) result.Result[int, ErrorCode] {
	sum := addPositive(a, b)
	if sum.HasError() {
		return result.Propagate[int, ErrorCode](sum)
	}
	text := intToString(sum.Value())
	if text.HasError() {
		return result.Propagate[int, ErrorCode](text)
	}
	valid := validatePositive(n)
	if valid.HasError() {
		return result.Propagate[int, ErrorCode](valid)
	}
	return result.Ok[ErrorCode](len(text.Value()) + valid.Value())
}

// sumSettings parses every line and sums the values. A ParseError is
// returned as an AppError.
func sumSettings(lines []string) result.Result[int, AppError] {
	total := 0
	for i, text := range lines {
		r := parseLine(i+1, text)
		if r.HasError() {
			return result.Propagate[int, AppError](r)
		}
		total += r.Value()
	}
	return result.Ok[AppError](total)
}
