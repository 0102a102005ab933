package functions

import "regexp"

// MatchesRegex compiles pattern and requires a full-string match (spec
// §4.7). A bad pattern is a PathEval failure (spec §4.9); the caller wraps
// the returned error accordingly.
func MatchesRegex(s, pattern string) (bool, error) {
	full, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false, err
	}
	return full.MatchString(s), nil
}

// ContainsRegex reports whether pattern matches anywhere in s.
func ContainsRegex(s, pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// ReplaceRegex implements replaceRegex(s, pattern, repl): Go's regexp
// already supports $1 and ${name} backreference syntax in ReplaceAll,
// matching spec §4.7 directly.
func ReplaceRegex(s, pattern, repl string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(s, repl), nil
}
