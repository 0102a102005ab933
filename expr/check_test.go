package expr

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	testcases := []struct {
		err  error
		kind error
		msg  string
	}{
		{
			// unterminated bracket
			err:  ErrSyntax("/foo[", 5, "expected ']', got EOF"),
			kind: &PathSyntaxError{},
			msg:  "expected ']', got EOF",
		},
		{
			// a value function used as a whole predicate
			err:  ErrSyntax("/x[substring(/y,0,1)]", 3, "%s cannot be used as a standalone predicate (not a filter function)", "substring"),
			kind: &PathSyntaxError{},
			msg:  "not a filter function",
		},
		{
			// unknown hash algorithm at runtime
			err:  ErrEval("hash", "unknown hash algorithm %q", "sha9"),
			kind: &PathEvalError{},
			msg:  "unknown hash algorithm",
		},
		{
			// malformed regex passed to matchesRegex
			err:  ErrEval("matchesRegex", "%s", "error parsing regexp: missing closing ]"),
			kind: &PathEvalError{},
			msg:  "missing closing ]",
		},
		{
			// wrong argument kind
			err:  ErrType("path argument", "expected a path, got value kind %d", 2),
			kind: &TypeError{},
			msg:  "expected a path",
		},
		{
			// root field-values cannot be mutated
			err:  &NotMutableError{Reason: "value is a root, or was derived from a function call"},
			kind: &NotMutableError{},
			msg:  "root",
		},
	}

	for i, tc := range testcases {
		if !errors.As(tc.err, reflect.New(reflect.TypeOf(tc.kind)).Interface()) {
			t.Errorf("testcase %d: error %T does not match target type %T", i, tc.err, tc.kind)
			continue
		}
		if reflect.TypeOf(tc.err) != reflect.TypeOf(tc.kind) {
			t.Errorf("testcase %d: error %T is not %T", i, tc.err, tc.kind)
			continue
		}
		if msg := tc.err.Error(); !strings.Contains(msg, tc.msg) {
			t.Errorf("testcase %d: %q is not present in error message %q", i, tc.msg, msg)
		}
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	syntaxErr := ErrSyntax("/x", 0, "bad")
	evalErr := ErrEval("f", "bad")
	typeErr := ErrType("f", "bad")
	notMutableErr := &NotMutableError{Reason: "bad"}

	var asEval *PathEvalError
	if errors.As(error(syntaxErr), &asEval) {
		t.Error("a PathSyntaxError should not match *PathEvalError")
	}
	var asType *TypeError
	if errors.As(error(evalErr), &asType) {
		t.Error("a PathEvalError should not match *TypeError")
	}
	var asNotMutable *NotMutableError
	if errors.As(error(typeErr), &asNotMutable) {
		t.Error("a TypeError should not match *NotMutableError")
	}
	var asSyntax *PathSyntaxError
	if errors.As(error(notMutableErr), &asSyntax) {
		t.Error("a NotMutableError should not match *PathSyntaxError")
	}
}

func TestPathSyntaxErrorIncludesOffsetAndSource(t *testing.T) {
	err := ErrSyntax("/a/b[", 5, "expected ']', got EOF")
	msg := err.Error()
	if !strings.Contains(msg, "5") {
		t.Errorf("error message %q does not mention the offset", msg)
	}
	if !strings.Contains(msg, "/a/b[") {
		t.Errorf("error message %q does not mention the source", msg)
	}
}
