// Package record implements the minimal record/schema model that the
// RecordPath engine treats as an external collaborator (see spec §6): a
// small sum-typed Value, a RecordSchema/RecordField/DataType description of
// shape, and a Record that holds materialized field values plus the
// inactive-field bookkeeping updateValue relies on.
//
// This package is deliberately small. The engine (package recordpath)
// depends only on the contract spelled out in spec §6; this is one
// concrete, minimal implementation of that contract, grounded on the
// scalar/list/struct sum type used by SnellerInc-sneller's ion.Datum.
package record

import (
	"fmt"
	"strings"

	"github.com/flowforge/datapath/date"
)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindDate
	KindArray
	KindMap
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Numeric reports whether k is one of the promotable numeric kinds
// (Int, Long, Float, Double).
func (k Kind) Numeric() bool {
	switch k {
	case KindInt, KindLong, KindFloat, KindDouble:
		return true
	}
	return false
}

// MapEntry is one key/value pair of a Map value. Map values preserve
// insertion order, which governs [*] iteration order (spec §4.5).
type MapEntry struct {
	Key   string
	Value Value
}

// Value is the RecordPath sum type: Null | Bool | Int | Long | Float |
// Double | String | Bytes | Date | Array<Value> | Map<String,Value> |
// Record (spec §3).
type Value struct {
	kind    Kind
	boolean bool
	number  float64 // holds Int/Long (as integral float64) and Float/Double
	str     string
	bytes   []byte
	when    date.Time
	arr     []Value
	entries []MapEntry
	rec     *Record
}

// Null is the absent/Null value.
var Null = Value{kind: KindNull}

func Bool(b bool) Value       { return Value{kind: KindBool, boolean: b} }
func Int(i int32) Value       { return Value{kind: KindInt, number: float64(i)} }
func Long(i int64) Value      { return Value{kind: KindLong, number: float64(i)} }
func Float(f float32) Value   { return Value{kind: KindFloat, number: float64(f)} }
func Double(f float64) Value  { return Value{kind: KindDouble, number: f} }
func String(s string) Value   { return Value{kind: KindString, str: s} }
func Bytes(b []byte) Value    { return Value{kind: KindBytes, bytes: b} }
func Date(t date.Time) Value  { return Value{kind: KindDate, when: t} }
func Array(vs []Value) Value  { return Value{kind: KindArray, arr: vs} }
func RecordValue(r *Record) Value {
	return Value{kind: KindRecord, rec: r}
}

// Map builds a Map value from ordered entries.
func Map(entries []MapEntry) Value {
	return Value{kind: KindMap, entries: entries}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

// Number returns the numeric value of an Int/Long/Float/Double as a
// float64, or (0, false) for any other kind.
func (v Value) Number() (float64, bool) {
	if !v.kind.Numeric() {
		return 0, false
	}
	return v.number, true
}

// Int64 truncates a numeric value to int64. Non-numeric kinds return
// (0, false).
func (v Value) Int64() (int64, bool) {
	n, ok := v.Number()
	if !ok {
		return 0, false
	}
	return int64(n), true
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) Raw() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.bytes, true
}

func (v Value) When() (date.Time, bool) {
	if v.kind != KindDate {
		return date.Time{}, false
	}
	return v.when, true
}

func (v Value) Items() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) Entries() ([]MapEntry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.entries, true
}

func (v Value) Rec() (*Record, bool) {
	if v.kind != KindRecord {
		return nil, false
	}
	return v.rec, true
}

// MapGet looks up key within a Map value.
func (v Value) MapGet(key string) (Value, bool) {
	if v.kind != KindMap {
		return Null, false
	}
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Null, false
}

// MapSet returns a copy of a Map value with key set to val, preserving
// the position of an existing key or appending a new one.
func (v Value) MapSet(key string, val Value) Value {
	if v.kind != KindMap {
		return v
	}
	entries := make([]MapEntry, len(v.entries))
	copy(entries, v.entries)
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = val
			return Map(entries)
		}
	}
	entries = append(entries, MapEntry{Key: key, Value: val})
	return Map(entries)
}

// String renders a Value for debugging; it is not the JSON encoding (see
// package functions for escapeJson).
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.boolean)
	case KindInt, KindLong:
		return fmt.Sprintf("%d", int64(v.number))
	case KindFloat, KindDouble:
		return fmt.Sprintf("%g", v.number)
	case KindString:
		return v.str
	case KindBytes:
		return fmt.Sprintf("%x", v.bytes)
	case KindDate:
		return v.when.String()
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = e.Key + "=" + e.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindRecord:
		return "<record>"
	default:
		return "?"
	}
}
