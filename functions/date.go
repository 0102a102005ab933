package functions

import (
	"strconv"

	"github.com/flowforge/datapath/date"
	"github.com/flowforge/datapath/record"
)

// ToDate implements toDate(x, fmt [,tz]) (spec §4.7): non-string input and
// unparseable strings are both returned unchanged rather than erroring —
// the permissive-passthrough contract spec §9 leaves as an open question,
// decided here (see DESIGN.md) in favor of "never fails, only passes
// through" so a heterogeneous-schema predicate chain never aborts on a
// stray already-typed or malformed date field.
func ToDate(x record.Value, layout, tz string) record.Value {
	s, ok := x.Str()
	if !ok {
		return x
	}
	goLayout := date.JavaLayout(layout)
	t, ok := date.ParseInZone(goLayout, s, tz)
	if !ok {
		return x
	}
	return record.Date(t)
}

func millisToTime(ms int64) date.Time {
	sec := ms / 1000
	nsec := (ms % 1000) * int64(1e6)
	return date.Unix(sec, nsec)
}

// Format implements format(date, fmt [,tz]) (spec §4.7): non-date input, a
// string that is not a whole number of epoch milliseconds, and an unknown
// time zone are returned unchanged, mirroring ToDate's permissive
// contract. The pattern itself is not validated: an invalid pattern still
// produces formatted text rather than the original value.
func Format(x record.Value, layout, tz string) record.Value {
	var t date.Time
	switch x.Kind() {
	case record.KindDate:
		t, _ = x.When()
	case record.KindLong, record.KindInt:
		n, _ := x.Int64()
		t = millisToTime(n)
	case record.KindString:
		s, _ := x.Str()
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return x
		}
		t = millisToTime(n)
	default:
		return x
	}
	goLayout := date.JavaLayout(layout)
	out, ok := date.FormatInZone(t, goLayout, tz)
	if !ok {
		return x
	}
	return record.String(out)
}
