package functions

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/flowforge/datapath/record"
)

// EscapeJSON renders v as canonical JSON (spec §4.7): strings quoted,
// objects/arrays recursive. Map keys are emitted in the Value's own
// insertion order (not sorted), matching how the rest of this engine
// treats Map ordering as significant (spec invariant 6).
func EscapeJSON(v record.Value) (string, error) {
	b, err := appendJSON(nil, v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func appendJSON(b []byte, v record.Value) ([]byte, error) {
	switch v.Kind() {
	case record.KindNull:
		return append(b, "null"...), nil
	case record.KindBool:
		bo, _ := v.Bool()
		if bo {
			return append(b, "true"...), nil
		}
		return append(b, "false"...), nil
	case record.KindInt, record.KindLong:
		n, _ := v.Int64()
		return appendRaw(b, fmt.Sprintf("%d", n)), nil
	case record.KindFloat, record.KindDouble:
		n, _ := v.Number()
		return appendRaw(b, fmt.Sprintf("%g", n)), nil
	case record.KindString:
		s, _ := v.Str()
		enc, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		return append(b, enc...), nil
	case record.KindBytes:
		raw, _ := v.Raw()
		enc, err := json.Marshal(string(raw))
		if err != nil {
			return nil, err
		}
		return append(b, enc...), nil
	case record.KindDate:
		t, _ := v.When()
		enc, err := t.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return append(b, enc...), nil
	case record.KindArray:
		items, _ := v.Items()
		b = append(b, '[')
		for i, it := range items {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = appendJSON(b, it)
			if err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	case record.KindMap:
		entries, _ := v.Entries()
		return appendJSONObject(b, entries)
	case record.KindRecord:
		rec, _ := v.Rec()
		names := rec.FieldNames()
		entries := make([]record.MapEntry, 0, len(names))
		for _, n := range names {
			val, _ := rec.ValueOf(n)
			entries = append(entries, record.MapEntry{Key: n, Value: val})
		}
		return appendJSONObject(b, entries)
	default:
		return nil, fmt.Errorf("escapeJson: unsupported kind %s", v.Kind())
	}
}

func appendJSONObject(b []byte, entries []record.MapEntry) ([]byte, error) {
	b = append(b, '{')
	for i, e := range entries {
		if i > 0 {
			b = append(b, ',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		b = append(b, key...)
		b = append(b, ':')
		b, err = appendJSON(b, e.Value)
		if err != nil {
			return nil, err
		}
	}
	return append(b, '}'), nil
}

func appendRaw(b []byte, s string) []byte { return append(b, s...) }

// UnescapeJSON implements unescapeJson(s [,convertToRecord] [,recurse])
// (spec §4.7/S5). convertToRecord controls whether the top-level
// Map/array-of-Map becomes a Record; recurse extends that conversion to
// nested Maps. Both default to false.
func UnescapeJSON(s string, convertToRecord, recurse bool) (record.Value, error) {
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return record.Null, err
	}
	return fromJSON(raw, convertToRecord, recurse, true), nil
}

func fromJSON(raw any, convertToRecord, recurse, top bool) record.Value {
	switch x := raw.(type) {
	case nil:
		return record.Null
	case bool:
		return record.Bool(x)
	case float64:
		return record.Double(x)
	case string:
		return record.String(x)
	case []any:
		vals := make([]record.Value, len(x))
		childConvert := convertToRecord && (top || recurse)
		for i, e := range x {
			vals[i] = fromJSON(e, childConvert, recurse, top)
		}
		return record.Array(vals)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		childConvert := convertToRecord && recurse
		entries := make([]record.MapEntry, len(keys))
		for i, k := range keys {
			entries[i] = record.MapEntry{Key: k, Value: fromJSON(x[k], childConvert, recurse, false)}
		}
		if convertToRecord && (top || recurse) {
			return toRecordValue(entries)
		}
		return record.Map(entries)
	default:
		return record.Null
	}
}

func toRecordValue(entries []record.MapEntry) record.Value {
	fields := make([]record.RecordField, len(entries))
	values := make(map[string]record.Value, len(entries))
	for i, e := range entries {
		fields[i] = record.RecordField{Name: e.Key, Type: record.Scalar(e.Value.Kind()), Nullable: true}
		values[e.Key] = e.Value
	}
	schema := record.NewSchema(fields...)
	return record.RecordValue(record.NewRecordWithValues(schema, values))
}
