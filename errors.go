// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonwire

import "fmt"

// A SyntaxError reports that the input did not conform to the grammar the
// Reader was configured to accept (strict RFC 7159, or the lenient
// superset). It always carries the location at which the problem was
// detected.
type SyntaxError struct {
	Msg string
	Loc string   // "line L column C path P", no leading space
	At  Location // structured form of the same position

	// EOF is true if the syntax error was caused by the input ending before
	// a well-formed value was complete. Callers that need to distinguish
	// "malformed" from "truncated" should check this field.
	EOF bool
}

func (e *SyntaxError) Error() string {
	if e.Loc == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Loc)
}

// A StateError reports that the caller invoked an operation that is not
// valid in the Reader's current state: for example, calling BeginArray when
// the next token is not "[", or calling any method after Close.
type StateError struct {
	Msg string
	Loc string
	At  Location
}

func (e *StateError) Error() string {
	if e.Loc == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Loc)
}

// stateErrorf constructs a *StateError attributed to the reader's current
// location.
func (r *Reader) stateErrorf(format string, args ...any) error {
	return &StateError{Msg: fmt.Sprintf(format, args...), Loc: r.locationString(), At: r.Location()}
}

// syntaxErrorf constructs a *SyntaxError attributed to the reader's current
// location.
func (r *Reader) syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Loc: r.locationString(), At: r.Location()}
}

// eofErrorf constructs a *SyntaxError with EOF set, for use when the input
// ends before a value is complete.
func (r *Reader) eofErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Loc: r.locationString(), At: r.Location(), EOF: true}
}

// A NumberError reports that a numeric conversion (NextInt, NextLong,
// NextDouble) failed, either because strconv rejected the text or because
// the conversion would lose precision. Cause is the underlying strconv
// error, or nil if the failure was a precision check with no such error.
type NumberError struct {
	Msg   string
	Loc   string
	At    Location
	Cause error
}

func (e *NumberError) Error() string {
	if e.Loc == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Loc)
}

func (e *NumberError) Unwrap() error { return e.Cause }

// numberErrorf constructs a *NumberError attributed to the reader's current
// location, wrapping cause if non-nil.
func (r *Reader) numberErrorf(cause error, format string, args ...any) error {
	return &NumberError{Msg: fmt.Sprintf(format, args...), Loc: r.locationString(), At: r.Location(), Cause: cause}
}
