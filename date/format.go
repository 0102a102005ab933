package date

import (
	"strings"
	"time"
)

// JavaLayout translates a subset of the Java SimpleDateFormat pattern
// language (the dialect RecordPath's toDate/format functions accept) into
// a Go time.Format layout string. Literal text may be quoted with single
// quotes, e.g. "yyyy-MM-dd'T'HH:mm:ss".
//
// Unrecognized runs of letters are passed through unchanged, which lets
// callers fall back to treating the pattern as a Go layout directly when
// it isn't valid Java syntax.
func JavaLayout(pattern string) string {
	var out strings.Builder
	r := []rune(pattern)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case c == '\'':
			i++
			start := i
			for i < len(r) && r[i] != '\'' {
				i++
			}
			if i == start && i < len(r) {
				// '' means a literal quote
				out.WriteByte('\'')
			} else {
				out.WriteString(string(r[start:i]))
			}
			if i < len(r) {
				i++
			}
		case isJavaLetter(c):
			j := i
			for j < len(r) && r[j] == c {
				j++
			}
			run := j - i
			out.WriteString(javaToken(c, run))
			i = j
		default:
			out.WriteRune(c)
			i++
		}
	}
	return out.String()
}

func isJavaLetter(c rune) bool {
	switch c {
	case 'y', 'M', 'd', 'H', 'h', 'm', 's', 'S', 'Z', 'z', 'a', 'E', 'D', 'X':
		return true
	}
	return false
}

func javaToken(c rune, run int) string {
	switch c {
	case 'y':
		if run >= 4 {
			return "2006"
		}
		return "06"
	case 'M':
		switch {
		case run >= 4:
			return "January"
		case run == 3:
			return "Jan"
		case run == 2:
			return "01"
		default:
			return "1"
		}
	case 'd':
		if run >= 2 {
			return "02"
		}
		return "2"
	case 'H':
		if run >= 2 {
			return "15"
		}
		return "15"
	case 'h':
		if run >= 2 {
			return "03"
		}
		return "3"
	case 'm':
		if run >= 2 {
			return "04"
		}
		return "4"
	case 's':
		if run >= 2 {
			return "05"
		}
		return "5"
	case 'S':
		return strings.Repeat("0", run)
	case 'a':
		return "PM"
	case 'E':
		if run >= 4 {
			return "Monday"
		}
		return "Mon"
	case 'X':
		switch run {
		case 1:
			return "-07"
		case 2:
			return "-0700"
		default:
			return "-07:00"
		}
	case 'Z':
		return "-0700"
	case 'z':
		return "MST"
	}
	return strings.Repeat(string(c), run)
}

// ParseInZone parses data using a Go-style layout in the named IANA zone
// ("" or "UTC" means UTC). It returns ok=false rather than an error,
// matching RecordPath's permissive toDate contract (spec §4.7/§9): callers
// decide what to do with an unparsed value (typically: return it
// unchanged).
func ParseInZone(layout, data, zone string) (Time, bool) {
	loc := time.UTC
	if zone != "" && !strings.EqualFold(zone, "UTC") {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return Time{}, false
		}
		loc = l
	}
	t, err := time.ParseInLocation(layout, data, loc)
	if err != nil {
		return Time{}, false
	}
	return FromTime(t), true
}

// FormatInZone renders t using a Go-style layout in the named IANA zone.
func FormatInZone(t Time, layout, zone string) (string, bool) {
	loc := time.UTC
	if zone != "" && !strings.EqualFold(zone, "UTC") {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return "", false
		}
		loc = l
	}
	return t.Time().In(loc).Format(layout), true
}
