// Package recordpath is the RecordPath engine facade: Compile a path,
// Evaluate it against a Record, and mutate results via FieldValue's
// UpdateValue. It wires together expr (AST), rpath (parser), functions
// (builtin runtime contracts), cache (compile cache) and record
// (Value/Schema/Record) into the engine spec §4.4-§4.9 describe.
package recordpath

import (
	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/record"
)

// FieldValue is a short-lived handle produced by the evaluator: a Value
// plus the context needed to know where it came from and how (if at all)
// it can be written back (spec §4.4).
type FieldValue struct {
	val    record.Value
	field  record.RecordField
	hasField bool
	parent *FieldValue
	root   *record.Record
	idx    int
	hasIdx bool
	mutate func(record.Value) error
}

// Value returns the underlying Value.
func (fv *FieldValue) Value() record.Value { return fv.val }

// Field returns the synthesized RecordField describing this field-value,
// if one exists (array/map elements carry a synthetic field whose name
// matches the containing field, per spec §4.4).
func (fv *FieldValue) Field() (record.RecordField, bool) { return fv.field, fv.hasField }

// Parent returns the field-value this one was derived from, or nil for
// the root.
func (fv *FieldValue) Parent() *FieldValue { return fv.parent }

// ParentRecord returns the nearest Record-valued ancestor.
func (fv *FieldValue) ParentRecord() *record.Record { return fv.root }

// ArrayIndex returns this field-value's position in its containing array,
// if it is an array element.
func (fv *FieldValue) ArrayIndex() (int, bool) { return fv.idx, fv.hasIdx }

// UpdateValue mutates the container this field-value came from (spec
// §4.4). Root and function-derived field-values are not mutable.
func (fv *FieldValue) UpdateValue(newValue record.Value) error {
	if fv.mutate == nil {
		return &expr.NotMutableError{Reason: "value is a root, or was derived from a function call"}
	}
	coerced := newValue
	if fv.hasField {
		coerced = coerceToType(newValue, fv.field.Type)
	}
	if err := fv.mutate(coerced); err != nil {
		return err
	}
	fv.val = coerced
	return nil
}

// rootFieldValue builds the field-value representing an entire record —
// the implicit context an absolute path starts from. It is not mutable
// (spec §4.4: "root ... results: fail with NotMutable").
func rootFieldValue(rec *record.Record) *FieldValue {
	return &FieldValue{
		val:  record.RecordValue(rec),
		root: rec,
	}
}

// derivedFieldValue wraps a value produced by a function call, either as a
// path step or a predicate/value-expression result. Function results are
// never mutable (spec §4.4).
func derivedFieldValue(v record.Value, from *FieldValue) *FieldValue {
	root := from.root
	if v.Kind() == record.KindRecord {
		if r, ok := v.Rec(); ok {
			root = r
		}
	}
	return &FieldValue{val: v, parent: from, root: root}
}

// recordChildFieldValue builds the field-value for rec's field named name,
// wiring UpdateValue to rec.SetValue directly (no further propagation
// needed: record mutation is in-place).
func recordChildFieldValue(parent *FieldValue, rec *record.Record, name string) (*FieldValue, bool) {
	v, ok := rec.ValueOf(name)
	if !ok {
		return nil, false
	}
	field, _ := rec.GetField(name)
	child := &FieldValue{
		val:      v,
		field:    field,
		hasField: true,
		parent:   parent,
		root:     rec,
		mutate: func(nv record.Value) error {
			rec.SetValue(name, nv)
			return nil
		},
	}
	return child, true
}

// arrayElemFieldValue builds the field-value for element i of an array
// held by arrayFV. Updating it replaces the slot and writes the whole new
// array back up through arrayFV's own mutate closure (spec §4.4 — arrays
// are immutable Go values, so a write has to re-synthesize the containing
// array and bubble the replacement upward).
func arrayElemFieldValue(arrayFV *FieldValue, i int) *FieldValue {
	items, _ := arrayFV.val.Items()
	field := arrayFV.field
	elemType := field.Type
	if elemType.Which == record.ChoiceType {
		elemType = elemType.Resolve(record.KindArray)
	}
	if elemType.Which == record.ArrayType && elemType.Element != nil {
		field.Type = *elemType.Element
	}
	child := &FieldValue{
		val:      items[i],
		field:    field,
		hasField: arrayFV.hasField,
		parent:   arrayFV,
		root:     arrayFV.root,
		idx:      i,
		hasIdx:   true,
	}
	if arrayFV.mutate != nil || arrayFV.parent != nil {
		child.mutate = func(nv record.Value) error {
			cur, _ := arrayFV.val.Items()
			next := make([]record.Value, len(cur))
			copy(next, cur)
			if i < 0 || i >= len(next) {
				return nil // out-of-bounds is a no-op (spec §4.4)
			}
			next[i] = nv
			return arrayFV.setSelf(record.Array(next))
		}
	}
	return child
}

// mapEntryFieldValue builds the field-value for key within a map held by
// mapFV.
func mapEntryFieldValue(mapFV *FieldValue, key string) (*FieldValue, bool) {
	v, ok := mapFV.val.MapGet(key)
	if !ok {
		return nil, false
	}
	field := mapFV.field
	elemType := field.Type
	if elemType.Which == record.ChoiceType {
		elemType = elemType.Resolve(record.KindMap)
	}
	if elemType.Which == record.MapType && elemType.Element != nil {
		field.Type = *elemType.Element
	}
	child := &FieldValue{
		val:      v,
		field:    field,
		hasField: mapFV.hasField,
		parent:   mapFV,
		root:     mapFV.root,
	}
	if mapFV.mutate != nil || mapFV.parent != nil {
		child.mutate = func(nv record.Value) error {
			next := mapFV.val.MapSet(key, nv)
			return mapFV.setSelf(next)
		}
	}
	return child, true
}

// setSelf asks a container field-value (one representing a whole array or
// map) to replace its own value, bubbling the change up to whatever holds
// it — a record field, an outer array slot, or an outer map entry.
func (fv *FieldValue) setSelf(newValue record.Value) error {
	fv.val = newValue
	if fv.mutate != nil {
		return fv.mutate(newValue)
	}
	return nil
}

// parentSkippingContainers implements the ".." axis (spec §4.5): it climbs
// past array/map wrapper field-values so that "/arr[0]/.." yields the
// array's parent record, not the array itself.
func parentSkippingContainers(fv *FieldValue) *FieldValue {
	p := fv.parent
	for p != nil && (p.val.Kind() == record.KindArray || p.val.Kind() == record.KindMap) {
		p = p.parent
	}
	return p
}
