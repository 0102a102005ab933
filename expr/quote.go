package expr

import (
	"strconv"
	"strings"
)

// Quote renders a field name the way RecordPath syntax requires: bare if
// it is already identifier-like, single-quoted with escapes otherwise
// (spec §4.2 Name production).
func Quote(s string) string {
	if isBareName(s) {
		return s
	}
	var buf strings.Builder
	quoteInto(&buf, s, '\'')
	return buf.String()
}

// QuoteDouble renders a string literal with double quotes, used when
// rendering Literal nodes back to source text.
func QuoteDouble(s string) string {
	var buf strings.Builder
	quoteInto(&buf, s, '"')
	return buf.String()
}

func isBareName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// quoteInto writes s between a pair of q quote runes, escaping exactly the
// six sequences spec §4.1 defines (\\, \', \", \n, \t, \r). Every other
// rune, including non-ASCII text, is written out literally — RecordPath
// source is UTF-8, and the grammar has no \uXXXX escape to round-trip
// through.
func quoteInto(out *strings.Builder, s string, q rune) {
	out.WriteRune(q)
	for _, r := range s {
		switch r {
		case q, '\\':
			out.WriteByte('\\')
			out.WriteRune(r)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		default:
			out.WriteRune(r)
		}
	}
	out.WriteRune(q)
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
