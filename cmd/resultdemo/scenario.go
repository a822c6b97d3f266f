package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lvzhenqian/library/result"
)

// ErrorCode is the error type of the arithmetic chain.
type ErrorCode int

const (
	InvalidArgument ErrorCode = iota + 1
	Overflow
)

func (e ErrorCode) String() string {
	switch e {
	case InvalidArgument:
		return "InvalidArgument"
	case Overflow:
		return "Overflow"
	default:
		return "ErrorCode(" + strconv.Itoa(int(e)) + ")"
	}
}

func addPositive(a, b int) result.Result[int, ErrorCode] {
	if a < 0 || b < 0 {
		return result.FromFailure[int](result.Fail(InvalidArgument))
	}
	if a > maxOperand || b > maxOperand {
		return result.Err[int](Overflow)
	}
	return result.Ok[ErrorCode](a + b)
}

const maxOperand = 1 << 30

func intToString(n int) result.Result[string, ErrorCode] {
	return result.Ok[ErrorCode](strconv.Itoa(n))
}

func validatePositive(n int) result.Result[int, ErrorCode] {
	if n <= 0 {
		return result.Err[int](InvalidArgument)
	}
	return result.Ok[ErrorCode](n)
}

// ParseError reports a malformed "key = value" line.
type ParseError struct {
	Line int
	Text string
}

// AppError is what the settings loader reports to its callers.
type AppError struct {
	Code    ErrorCode
	Message string
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func init() {
	result.RegisterConverter(func(e ParseError) AppError {
		return AppError{
			Code:    InvalidArgument,
			Message: fmt.Sprintf("line %d: cannot parse %q", e.Line, e.Text),
		}
	})
}

func parseLine(line int, text string) result.Result[int, ParseError] {
	_, value, found := strings.Cut(text, "=")
	if !found {
		return result.Err[int](ParseError{Line: line, Text: text})
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return result.Err[int](ParseError{Line: line, Text: text})
	}
	return result.Ok[ParseError](n)
}
