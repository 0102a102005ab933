package recordpath

import (
	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/record"
)

// evalContext carries the information a path evaluation needs beyond the
// current field-value stream: the record an absolute path resolves
// against.
type evalContext struct {
	root *record.Record
}

// evaluatePathFrom evaluates p against root, starting from context if p is
// relative (and context is non-nil) or from root itself if p is absolute
// (spec §4.5).
func evaluatePathFrom(p *expr.Path, root *record.Record, context *FieldValue) ([]*FieldValue, error) {
	start := context
	if p.Absolute || start == nil {
		start = rootFieldValue(root)
	}
	ctx := evalContext{root: root}
	if p.Call != nil {
		return evalFunctionStep(p.Call, start, ctx)
	}
	current := []*FieldValue{start}
	var err error
	for _, seg := range p.Segments {
		current, err = evalAxis(seg.Axis, seg.Sel, current, ctx)
		if err != nil {
			return nil, err
		}
		for _, br := range seg.Brackets {
			current, err = applyBracket(current, br, ctx)
			if err != nil {
				return nil, err
			}
		}
	}
	return current, nil
}

func evalAxis(axis expr.Axis, sel expr.Selector, current []*FieldValue, ctx evalContext) ([]*FieldValue, error) {
	switch axis {
	case expr.AxisSelf:
		return current, nil
	case expr.AxisParent:
		var out []*FieldValue
		for _, fv := range current {
			if p := parentSkippingContainers(fv); p != nil {
				out = append(out, p)
			}
		}
		return out, nil
	case expr.AxisChild:
		return stepSelector(current, sel, ctx, false)
	case expr.AxisDescendant:
		return stepSelector(current, sel, ctx, true)
	default:
		return current, nil
	}
}

func stepSelector(current []*FieldValue, sel expr.Selector, ctx evalContext, descendant bool) ([]*FieldValue, error) {
	var out []*FieldValue
	for _, fv := range current {
		switch sel.Kind {
		case expr.SelNone:
			out = append(out, fv)
		case expr.SelWildcard:
			if descendant {
				collectDescendants(fv, "", true, &out)
			} else {
				out = append(out, recordChildren(fv)...)
			}
		case expr.SelName:
			if descendant {
				collectDescendants(fv, sel.Name, false, &out)
			} else if fv.val.Kind() == record.KindRecord {
				if c, ok := recordChildFieldValue(fv, mustRec(fv), sel.Name); ok {
					out = append(out, c)
				}
			}
		case expr.SelFunction:
			vals, err := evalFunctionStep(sel.Call, fv, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
		}
	}
	return out, nil
}

// mustRec returns fv's record if it holds one, or nil otherwise —
// recordChildFieldValue is only consulted when fv.val.Kind() == KindRecord
// (checked by the caller), so this never has to report failure.
func mustRec(fv *FieldValue) *record.Record {
	r, _ := fv.val.Rec()
	return r
}

// recordChildren lists every active field of fv's record, in schema order
// (spec invariant 6).
func recordChildren(fv *FieldValue) []*FieldValue {
	if fv.val.Kind() != record.KindRecord {
		return nil
	}
	rec, _ := fv.val.Rec()
	var out []*FieldValue
	for _, name := range rec.FieldNames() {
		if c, ok := recordChildFieldValue(fv, rec, name); ok {
			out = append(out, c)
		}
	}
	return out
}

// collectDescendants implements "//name" / "//*" (spec §4.5): a DFS
// pre-order search below fv (not including fv itself) through records,
// arrays and maps. Records contribute named field children; map entries
// also count as named (their key is their name); array elements are only
// visited, never matched by name.
func collectDescendants(fv *FieldValue, name string, wildcard bool, out *[]*FieldValue) {
	switch fv.val.Kind() {
	case record.KindRecord:
		rec, _ := fv.val.Rec()
		for _, fname := range rec.FieldNames() {
			child, ok := recordChildFieldValue(fv, rec, fname)
			if !ok {
				continue
			}
			if wildcard || fname == name {
				*out = append(*out, child)
			}
			collectDescendants(child, name, wildcard, out)
		}
	case record.KindArray:
		items, _ := fv.val.Items()
		for i := range items {
			child := arrayElemFieldValue(fv, i)
			if wildcard {
				*out = append(*out, child)
			}
			collectDescendants(child, name, wildcard, out)
		}
	case record.KindMap:
		entries, _ := fv.val.Entries()
		for _, e := range entries {
			child, ok := mapEntryFieldValue(fv, e.Key)
			if !ok {
				continue
			}
			if wildcard || e.Key == name {
				*out = append(*out, child)
			}
			collectDescendants(child, name, wildcard, out)
		}
	}
}

// applyBracket applies one "[...]" group to the current stream (spec
// §4.5). A bracket whose first item is a predicate is a pure filter over
// the current stream; any other bracket indexes into the container each
// current field-value holds, concatenating every item's selection in
// listed order (which governs mutation order for multi-index writes, not
// array order).
func applyBracket(current []*FieldValue, br expr.Bracket, ctx evalContext) ([]*FieldValue, error) {
	if len(br.Items) > 0 && br.Items[0].Kind == expr.IdxPredicate {
		var out []*FieldValue
		for _, fv := range current {
			keep, err := evalPredicate(br.Items[0].Predicate, fv, ctx)
			if err != nil {
				return nil, err
			}
			if keep {
				out = append(out, fv)
			}
		}
		return out, nil
	}
	var out []*FieldValue
	for _, fv := range current {
		for _, item := range br.Items {
			out = append(out, extractIndexItem(fv, item)...)
		}
	}
	return out, nil
}

func extractIndexItem(fv *FieldValue, item expr.IndexItem) []*FieldValue {
	switch fv.val.Kind() {
	case record.KindArray:
		items, _ := fv.val.Items()
		n := len(items)
		switch item.Kind {
		case expr.IdxNumber:
			i := resolveIndex(item.Number, n)
			if i < 0 || i >= n {
				return nil
			}
			return []*FieldValue{arrayElemFieldValue(fv, i)}
		case expr.IdxRange:
			from := resolveIndex(item.RangeFrom, n)
			to := resolveIndex(item.RangeTo, n)
			if from < 0 {
				from = 0
			}
			if to > n-1 {
				to = n - 1
			}
			var out []*FieldValue
			for i := from; i <= to; i++ {
				out = append(out, arrayElemFieldValue(fv, i))
			}
			return out
		case expr.IdxWildcard:
			out := make([]*FieldValue, n)
			for i := range items {
				out[i] = arrayElemFieldValue(fv, i)
			}
			return out
		}
		return nil
	case record.KindMap:
		switch item.Kind {
		case expr.IdxKey:
			if c, ok := mapEntryFieldValue(fv, item.Key); ok {
				return []*FieldValue{c}
			}
			return nil
		case expr.IdxWildcard:
			entries, _ := fv.val.Entries()
			out := make([]*FieldValue, 0, len(entries))
			for _, e := range entries {
				if c, ok := mapEntryFieldValue(fv, e.Key); ok {
					out = append(out, c)
				}
			}
			return out
		}
		return nil
	default:
		return nil
	}
}

// resolveIndex turns a possibly-negative RecordPath index into an absolute
// offset (spec §4.5: -1 is the last element).
func resolveIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}
