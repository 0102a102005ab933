package recordpath

import (
	"strings"

	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/functions"
	"github.com/flowforge/datapath/record"
)

// evalArgPath evaluates a Value production known to be a path, returning
// the full field-value stream rather than collapsing it to one Value —
// used by fieldName, anchored and count, which all operate on the stream
// itself (spec §4.7).
func evalArgPath(ve expr.ValueExpr, fv *FieldValue, ctx evalContext) ([]*FieldValue, error) {
	if ve.Kind != expr.ValPath {
		return nil, expr.ErrType("path argument", "expected a path, got value kind %d", ve.Kind)
	}
	return evaluatePathFrom(ve.Path, ctx.root, fv)
}

// evalAnchored implements anchored(anchor, path) (spec §4.7): path is
// evaluated relative to every field-value anchor selects, and the results
// are concatenated in anchor order.
func evalAnchored(call *expr.FunctionCall, fv *FieldValue, ctx evalContext) ([]*FieldValue, error) {
	anchors, err := evalArgPath(call.Args[0], fv, ctx)
	if err != nil {
		return nil, err
	}
	var out []*FieldValue
	for _, a := range anchors {
		sub, err := evalArgPath(call.Args[1], a, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// evalFunctionStep evaluates a function used as a path step (or as the
// entire compiled expression, spec §4.2's "Expr := Path | FunctionCall").
// anchored() is the one builtin that naturally produces a stream rather
// than a single value; everything else is wrapped as a single
// function-derived field-value.
func evalFunctionStep(call *expr.FunctionCall, fv *FieldValue, ctx evalContext) ([]*FieldValue, error) {
	if call.Op == expr.Anchored {
		return evalAnchored(call, fv, ctx)
	}
	val, ok, err := evalFunctionCall(call, fv, ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []*FieldValue{derivedFieldValue(val, fv)}, nil
}

// evalFunctionCall dispatches a builtin function call to a single Value
// result. ok=false means the call produced no value (an all-null
// coalesce, an unresolved field-value argument) and the caller should
// treat this the same as a silently-excluded predicate operand, not an
// error.
func evalFunctionCall(call *expr.FunctionCall, fv *FieldValue, ctx evalContext) (record.Value, bool, error) {
	switch call.Op {
	case expr.FieldName:
		results, err := evalArgPath(call.Args[0], fv, ctx)
		if err != nil {
			return record.Null, false, err
		}
		if len(results) == 0 {
			return record.Null, false, nil
		}
		f, ok := results[0].Field()
		if !ok {
			return record.Null, false, nil
		}
		return record.String(f.Name), true, nil
	case expr.Count:
		results, err := evalArgPath(call.Args[0], fv, ctx)
		if err != nil {
			return record.Null, false, err
		}
		return record.Long(int64(len(results))), true, nil
	case expr.Anchored:
		results, err := evalAnchored(call, fv, ctx)
		if err != nil {
			return record.Null, false, err
		}
		if len(results) == 0 {
			return record.Null, false, nil
		}
		return results[0].Value(), true, nil
	default:
		args := make([]record.Value, len(call.Args))
		for i, a := range call.Args {
			v, ok, err := evalValueExpr(a, fv, ctx)
			if err != nil {
				return record.Null, false, err
			}
			if !ok {
				v = record.Null
			}
			args[i] = v
		}
		return dispatchScalar(call, args)
	}
}

func intArg(v record.Value) int {
	n, _ := v.Int64()
	return int(n)
}

func strArg(v record.Value) string {
	return functions.Stringify(v)
}

func optStrArg(args []record.Value, i int, def string) string {
	if i >= len(args) {
		return def
	}
	return strArg(args[i])
}

// optBoolArg accepts both a true boolean literal and the string forms
// unescapeJson's two trailing flag arguments are written with in
// RecordPath source ('true'/'false' string literals — the grammar has no
// boolean literal of its own).
func optBoolArg(args []record.Value, i int) bool {
	if i >= len(args) {
		return false
	}
	if b, ok := args[i].Bool(); ok {
		return b
	}
	if s, ok := args[i].Str(); ok {
		return strings.EqualFold(s, "true")
	}
	return false
}

// dispatchScalar evaluates every builtin not handled directly by
// evalFunctionCall (the field-value-graph-aware trio) against already
// resolved argument Values, delegating the actual logic to package
// functions (spec §4.7). Errors surfaced by package functions are wrapped
// as *expr.PathEvalError so they carry the failing function's name.
func dispatchScalar(call *expr.FunctionCall, a []record.Value) (record.Value, bool, error) {
	switch call.Op {
	case expr.Contains:
		return record.Bool(functions.Contains(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.StartsWith:
		return record.Bool(functions.StartsWith(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.EndsWith:
		return record.Bool(functions.EndsWith(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.IsEmpty:
		return record.Bool(functions.IsEmpty(strArg(a[0]))), true, nil
	case expr.IsBlank:
		return record.Bool(functions.IsBlank(strArg(a[0]))), true, nil
	case expr.MatchesRegex:
		ok, err := functions.MatchesRegex(strArg(a[0]), strArg(a[1]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.Bool(ok), true, nil
	case expr.ContainsRegex:
		ok, err := functions.ContainsRegex(strArg(a[0]), strArg(a[1]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.Bool(ok), true, nil
	case expr.Not:
		b, _ := a[0].Bool()
		return record.Bool(!b), true, nil

	case expr.Substring:
		return record.String(functions.Substring(strArg(a[0]), intArg(a[1]), intArg(a[2]))), true, nil
	case expr.SubstringBefore:
		return record.String(functions.SubstringBefore(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.SubstringBeforeLast:
		return record.String(functions.SubstringBeforeLast(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.SubstringAfter:
		return record.String(functions.SubstringAfter(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.SubstringAfterLast:
		return record.String(functions.SubstringAfterLast(strArg(a[0]), strArg(a[1]))), true, nil
	case expr.Replace:
		return record.String(functions.Replace(strArg(a[0]), strArg(a[1]), strArg(a[2]))), true, nil
	case expr.ReplaceRegex:
		out, err := functions.ReplaceRegex(strArg(a[0]), strArg(a[1]), strArg(a[2]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.ReplaceNull:
		return functions.ReplaceNull(a[0], a[1]), true, nil
	case expr.Trim:
		if items, ok := a[0].Items(); ok {
			out := make([]record.Value, len(items))
			for i, it := range items {
				out[i] = record.String(functions.Trim(strArg(it)))
			}
			return record.Array(out), true, nil
		}
		return record.String(functions.Trim(strArg(a[0]))), true, nil
	case expr.ToUpperCase:
		return record.String(functions.ToUpperCase(strArg(a[0]))), true, nil
	case expr.ToLowerCase:
		return record.String(functions.ToLowerCase(strArg(a[0]))), true, nil
	case expr.Concat:
		return record.String(functions.Concat(a)), true, nil
	case expr.Join:
		return record.String(functions.Join(strArg(a[0]), a[1:])), true, nil
	case expr.MapOf:
		v, err := functions.MapOf(a)
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return v, true, nil
	case expr.Coalesce:
		v, ok := functions.Coalesce(a)
		return v, ok, nil
	case expr.Hash:
		out, err := functions.Hash(strArg(a[0]), strArg(a[1]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.PadLeft:
		if a[0].IsNull() {
			return record.Null, true, nil
		}
		return record.String(functions.PadLeft(strArg(a[0]), intArg(a[1]), optStrArg(a, 2, "_"))), true, nil
	case expr.PadRight:
		if a[0].IsNull() {
			return record.Null, true, nil
		}
		return record.String(functions.PadRight(strArg(a[0]), intArg(a[1]), optStrArg(a, 2, "_"))), true, nil
	case expr.Uuid5:
		out, err := functions.Uuid5(strArg(a[0]), optStrArg(a, 1, ""))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.Uuid3:
		out, err := functions.Uuid3(strArg(a[0]), optStrArg(a, 1, ""))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.ToDate:
		return functions.ToDate(a[0], strArg(a[1]), optStrArg(a, 2, "")), true, nil
	case expr.Format:
		return functions.Format(a[0], strArg(a[1]), optStrArg(a, 2, "")), true, nil
	case expr.ToStringFn:
		b, _ := a[0].Raw()
		out, err := functions.ToStringFn(b, strArg(a[1]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.ToBytes:
		out, err := functions.ToBytes(strArg(a[0]), strArg(a[1]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.Bytes(out), true, nil
	case expr.Base64Encode:
		if b, ok := a[0].Raw(); ok {
			return record.Bytes(functions.Base64EncodeBytes(b)), true, nil
		}
		return record.String(functions.Base64EncodeString(strArg(a[0]))), true, nil
	case expr.Base64Decode:
		if b, ok := a[0].Raw(); ok {
			out, err := functions.Base64DecodeBytes(b)
			if err != nil {
				return record.Null, false, expr.ErrEval(call.Name, "%s", err)
			}
			return record.Bytes(out), true, nil
		}
		out, err := functions.Base64DecodeString(strArg(a[0]))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.EscapeJSON:
		out, err := functions.EscapeJSON(a[0])
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return record.String(out), true, nil
	case expr.UnescapeJSON:
		if a[0].Kind() != record.KindString {
			return record.Null, false, expr.ErrType(call.Name, "expected a string, got %s", a[0].Kind())
		}
		v, err := functions.UnescapeJSON(strArg(a[0]), optBoolArg(a, 1), optBoolArg(a, 2))
		if err != nil {
			return record.Null, false, expr.ErrEval(call.Name, "%s", err)
		}
		return v, true, nil
	default:
		return record.Null, false, expr.ErrEval(call.Name, "unimplemented builtin")
	}
}
