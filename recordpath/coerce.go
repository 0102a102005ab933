package recordpath

import (
	"strconv"
	"strings"

	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/record"
)

// coerceToType is the centralized converter spec §4.8 calls for: it drives
// UpdateValue's parsing of the new value against the target field's
// DataType. CHOICE fields resolve against the incoming value's own kind
// first (so writing a string into a CHOICE(string, long) field keeps it a
// string); a value whose kind matches no alternative is coerced to the
// first alternative, and a plain scalar field of a different kind is
// coerced to that kind.
func coerceToType(v record.Value, dt record.DataType) record.Value {
	resolved := dt.Resolve(v.Kind())
	if resolved.Which != record.ScalarType {
		return v
	}
	return coerceScalar(v, resolved.Scalar)
}

// coerceScalar converts v to target, tolerating numeric-string parses with
// surrounding whitespace (spec §4.8). A conversion that cannot be
// performed returns v unchanged — callers (UpdateValue, comparisons) treat
// that as "coercion failed" and fall back to their own rule.
func coerceScalar(v record.Value, target record.Kind) record.Value {
	if v.Kind() == target {
		return v
	}
	switch target {
	case record.KindInt:
		if n, ok := numberOf(v); ok {
			return record.Int(int32(n))
		}
	case record.KindLong:
		if n, ok := numberOf(v); ok {
			return record.Long(int64(n))
		}
	case record.KindFloat:
		if n, ok := numberOf(v); ok {
			return record.Float(float32(n))
		}
	case record.KindDouble:
		if n, ok := numberOf(v); ok {
			return record.Double(n)
		}
	case record.KindString:
		if b, ok := v.Raw(); ok {
			return record.String(string(b))
		}
		return record.String(v.String())
	case record.KindBytes:
		if s, ok := v.Str(); ok {
			return record.Bytes([]byte(s))
		}
	}
	return v
}

// numberOf extracts a numeric value from v, tolerating a numeric string
// with leading/trailing whitespace (spec §4.8).
func numberOf(v record.Value) (float64, bool) {
	if n, ok := v.Number(); ok {
		return n, true
	}
	if s, ok := v.Str(); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// compareValues implements spec §4.6's comparison rules: numeric
// promotion, lexicographic strings, null handling for = and !=, and
// best-effort coercion (right operand toward the left's kind) for mixed
// kinds, falling back to comparing the two values' String() renderings
// for anything that still doesn't line up.
func compareValues(l, r record.Value, op expr.CompareOp) bool {
	if l.IsNull() || r.IsNull() {
		bothNull := l.IsNull() && r.IsNull()
		switch op {
		case expr.OpEQ:
			return bothNull
		case expr.OpNE:
			return !bothNull
		default:
			return false
		}
	}
	if l.Kind().Numeric() && r.Kind().Numeric() {
		ln, _ := l.Number()
		rn, _ := r.Number()
		return applyOrder(cmpFloat(ln, rn), op)
	}
	if l.Kind() == record.KindString && r.Kind() == record.KindString {
		ls, _ := l.Str()
		rs, _ := r.Str()
		return applyOrder(strings.Compare(ls, rs), op)
	}
	if l.Kind() == record.KindDate && r.Kind() == record.KindDate {
		lt, _ := l.When()
		rt, _ := r.When()
		switch {
		case lt.Before(rt):
			return applyOrder(-1, op)
		case lt.After(rt):
			return applyOrder(1, op)
		default:
			return applyOrder(0, op)
		}
	}
	if l.Kind() != r.Kind() {
		coerced := coerceScalar(r, l.Kind())
		if coerced.Kind() == l.Kind() {
			return compareValues(l, coerced, op)
		}
	}
	// same kind but neither numeric, string, nor date (bool, array, map,
	// record), or a cross-kind coercion that didn't land on a common kind:
	// fall back to stringification per spec §4.8.
	return applyOrder(strings.Compare(l.String(), r.String()), op)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func applyOrder(c int, op expr.CompareOp) bool {
	switch op {
	case expr.OpEQ:
		return c == 0
	case expr.OpNE:
		return c != 0
	case expr.OpLT:
		return c < 0
	case expr.OpLE:
		return c <= 0
	case expr.OpGT:
		return c > 0
	case expr.OpGE:
		return c >= 0
	default:
		return false
	}
}
