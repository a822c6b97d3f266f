//go:build !result_notry

package main

import "github.com/Lvzhenqian/library/result"

// compose adds a and b, renders the sum and returns its digit count plus n.
func compose(a, b, n int) (out result.Result[int, ErrorCode]) {
	defer result.Handle(&out)
	text := result.Try(intToString(result.Try(addPositive(a, b))))
	return result.Ok[ErrorCode](len(text) + result.Try(validatePositive(n)))
}

// sumSettings parses every line and sums the values. A ParseError leaves
// through Try as an AppError.
func sumSettings(lines []string) (out result.Result[int, AppError]) {
	defer result.Handle(&out)
	total := 0
	for i, text := range lines {
		total += result.Try(parseLine(i+1, text))
	}
	return result.Ok[AppError](total)
}
