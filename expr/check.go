package expr

import "fmt"

// PathSyntaxError is returned from Compile when the source text does not
// match the RecordPath grammar, including the value/filter-function
// misuse described in spec §4.2 (a value function cannot stand as a whole
// predicate). Offset is a byte offset into the source string.
type PathSyntaxError struct {
	Source string
	Offset int
	Msg    string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("recordpath: syntax error at offset %d in %q: %s", e.Offset, e.Source, e.Msg)
}

// PathEvalError is returned when a builtin function fails at runtime (bad
// charset, bad regex, unknown hash algorithm, unparseable JSON) — spec
// §4.9. Unlike predicate type mismatches, these always propagate to the
// caller.
type PathEvalError struct {
	Function string
	Msg      string
}

func (e *PathEvalError) Error() string {
	return fmt.Sprintf("recordpath: %s: %s", e.Function, e.Msg)
}

// TypeError is returned when a function receives an argument of the wrong
// kind (spec §4.9), e.g. unescapeJson on a non-string input.
type TypeError struct {
	Function string
	Msg      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("recordpath: %s: %s", e.Function, e.Msg)
}

// NotMutableError is returned from FieldValue.UpdateValue when the target
// is a root or function-derived field-value (spec §4.4, §7).
type NotMutableError struct {
	Reason string
}

func (e *NotMutableError) Error() string {
	return fmt.Sprintf("recordpath: value is not mutable: %s", e.Reason)
}

func errSyntax(source string, offset int, format string, args ...interface{}) *PathSyntaxError {
	return &PathSyntaxError{Source: source, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func errEval(fn, format string, args ...interface{}) *PathEvalError {
	return &PathEvalError{Function: fn, Msg: fmt.Sprintf(format, args...)}
}

func errType(fn, format string, args ...interface{}) *TypeError {
	return &TypeError{Function: fn, Msg: fmt.Sprintf(format, args...)}
}

// ErrSyntax builds a *PathSyntaxError — exported so package rpath's parser
// (a different package) can raise it without duplicating the type.
func ErrSyntax(source string, offset int, format string, args ...interface{}) *PathSyntaxError {
	return errSyntax(source, offset, format, args...)
}

// ErrEval builds a *PathEvalError — exported for package functions.
func ErrEval(fn, format string, args ...interface{}) *PathEvalError {
	return errEval(fn, format, args...)
}

// ErrType builds a *TypeError — exported for package functions.
func ErrType(fn, format string, args ...interface{}) *TypeError {
	return errType(fn, format, args...)
}
