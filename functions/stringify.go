// Package functions implements the runtime contracts of the RecordPath
// builtin function library (spec §4.7) over record.Value. Functions that
// need access to the field-value graph itself (fieldName, anchored, count)
// are implemented in package recordpath, which owns the evaluator; this
// package covers every builtin whose contract is expressible purely in
// terms of Values.
package functions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flowforge/datapath/record"
)

// Stringify renders any Value the way concat/join/replace's repl argument
// and similar "stringify anything" contracts require (spec §4.7).
func Stringify(v record.Value) string {
	switch v.Kind() {
	case record.KindNull:
		return ""
	case record.KindString:
		s, _ := v.Str()
		return s
	case record.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case record.KindInt, record.KindLong:
		n, _ := v.Int64()
		return strconv.FormatInt(n, 10)
	case record.KindFloat, record.KindDouble:
		n, _ := v.Number()
		return strconv.FormatFloat(n, 'g', -1, 64)
	case record.KindBytes:
		b, _ := v.Raw()
		return string(b)
	case record.KindDate:
		t, _ := v.When()
		return t.String()
	default:
		return v.String()
	}
}

func asString(v record.Value) (string, bool) {
	if v.Kind() == record.KindString {
		return v.Str()
	}
	return "", false
}

// Substring implements substring(s, begin, end) (spec §4.7): Java-style,
// clamped to [0,len], begin>end yields "".
func Substring(s string, begin, end int) string {
	n := len(s)
	if end < 0 {
		end = begin + (-end)
	}
	if begin < 0 {
		begin = 0
	}
	if begin > n {
		begin = n
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	if begin > end {
		return ""
	}
	return s[begin:end]
}

func SubstringBefore(s, sub string) string {
	if sub == "" {
		return s
	}
	i := strings.Index(s, sub)
	if i < 0 {
		return s
	}
	return s[:i]
}

func SubstringBeforeLast(s, sub string) string {
	if sub == "" {
		return s
	}
	i := strings.LastIndex(s, sub)
	if i < 0 {
		return s
	}
	return s[:i]
}

func SubstringAfter(s, sub string) string {
	if sub == "" {
		return s
	}
	i := strings.Index(s, sub)
	if i < 0 {
		return s
	}
	return s[i+len(sub):]
}

func SubstringAfterLast(s, sub string) string {
	if sub == "" {
		return s
	}
	i := strings.LastIndex(s, sub)
	if i < 0 {
		return s
	}
	return s[i+len(sub):]
}

// Contains, StartsWith, EndsWith are filter functions; an empty needle is
// always true (spec §4.7).
func Contains(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(s, sub)
}

func StartsWith(s, prefix string) bool {
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(s, prefix)
}

func EndsWith(s, suffix string) bool {
	if suffix == "" {
		return true
	}
	return strings.HasSuffix(s, suffix)
}

// IsEmpty reports whether s has zero length (spec glossary: "").
func IsEmpty(s string) bool { return len(s) == 0 }

// IsBlank reports whether s is empty or all whitespace.
func IsBlank(s string) bool { return len(strings.TrimSpace(s)) == 0 }

// Replace implements literal (non-regex) replacement (spec §4.7): find not
// found leaves s unchanged.
func Replace(s, find, repl string) string {
	if find == "" {
		return s
	}
	return strings.ReplaceAll(s, find, repl)
}

// ReplaceNull returns a if it is non-null, else b.
func ReplaceNull(a, b record.Value) record.Value {
	if a.IsNull() {
		return b
	}
	return a
}

// Trim trims a string; callers handle the array-of-string form by mapping
// this over each element (spec §4.7).
func Trim(s string) string { return strings.TrimSpace(s) }

func ToUpperCase(s string) string { return strings.ToUpper(s) }
func ToLowerCase(s string) string { return strings.ToLower(s) }

// Concat stringifies and concatenates every argument (spec §4.7).
func Concat(args []record.Value) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(Stringify(a))
	}
	return b.String()
}

// Join flattens arrays in order and stringifies scalars, joined by sep
// (spec §4.7).
func Join(sep string, args []record.Value) string {
	var parts []string
	var walk func(v record.Value)
	walk = func(v record.Value) {
		if items, ok := v.Items(); ok {
			for _, it := range items {
				walk(it)
			}
			return
		}
		parts = append(parts, Stringify(v))
	}
	for _, a := range args {
		walk(a)
	}
	return strings.Join(parts, sep)
}

// MapOf builds a Map value from alternating key/value arguments. Odd arity
// is a compile-time PathSyntax error, reported by BuiltinOp.CheckArity
// when the parser checks the call; the even-count check here covers
// direct callers of this function.
func MapOf(args []record.Value) (record.Value, error) {
	if len(args)%2 != 0 {
		return record.Null, fmt.Errorf("mapOf requires an even number of arguments, got %d", len(args))
	}
	entries := make([]record.MapEntry, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := asString(args[i])
		if !ok {
			return record.Null, fmt.Errorf("mapOf key at position %d must be a string", i)
		}
		entries = append(entries, record.MapEntry{Key: key, Value: args[i+1]})
	}
	return record.Map(entries), nil
}

// Coalesce returns the first non-null value, or (Null, false) if every
// argument is null — callers interpret false as "exclude from the stream"
// per spec §4.7 ("if all null → empty stream").
func Coalesce(args []record.Value) (record.Value, bool) {
	for _, a := range args {
		if !a.IsNull() {
			return a, true
		}
	}
	return record.Null, false
}

// PadLeft and PadRight pad s to width n using pad (default "_"), truncating
// pad if it is longer than the remaining width needed (spec §4.7 / S6).
func PadLeft(s string, n int, pad string) string {
	if pad == "" {
		pad = "_"
	}
	if n <= len(s) {
		return s
	}
	need := n - len(s)
	return padString(pad, need) + s
}

func PadRight(s string, n int, pad string) string {
	if pad == "" {
		pad = "_"
	}
	if n <= len(s) {
		return s
	}
	need := n - len(s)
	return s + padString(pad, need)
}

func padString(pad string, need int) string {
	var b strings.Builder
	for b.Len() < need {
		b.WriteString(pad)
	}
	return b.String()[:need]
}
