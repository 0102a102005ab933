package recordpath

import (
	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/record"
)

// evalPredicate implements spec §4.6's two predicate forms. A filter
// function predicate keeps the candidate when the function evaluates
// truthy; a comparison predicate keeps it when both sides resolve and
// compare as requested. A relative operand that fails to resolve (the
// referenced field doesn't exist on this candidate) silently excludes the
// candidate rather than erroring.
func evalPredicate(pred *expr.Predicate, fv *FieldValue, ctx evalContext) (bool, error) {
	switch pred.Kind {
	case expr.PredFilter:
		val, ok, err := evalFunctionCall(pred.Filter, fv, ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		b, _ := val.Bool()
		return b, nil
	case expr.PredComparison:
		left, ok, err := evalValueExpr(pred.Left, fv, ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		right, ok, err := evalValueExpr(pred.Right, fv, ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		return compareValues(left, right, pred.Op), nil
	default:
		return false, nil
	}
}

// evalValueExpr resolves a Value production (spec §4.2 grammar) to a
// single Value. A Path operand that evaluates to zero field-values
// reports ok=false (silent exclusion); one that evaluates to more than
// one takes the first, which is the only sensible reading inside a
// singular comparison.
func evalValueExpr(ve expr.ValueExpr, fv *FieldValue, ctx evalContext) (record.Value, bool, error) {
	switch ve.Kind {
	case expr.ValPath:
		results, err := evaluatePathFrom(ve.Path, ctx.root, fv)
		if err != nil {
			return record.Null, false, err
		}
		if len(results) == 0 {
			return record.Null, false, nil
		}
		return results[0].Value(), true, nil
	case expr.ValCall:
		return evalFunctionCall(ve.Call, fv, ctx)
	case expr.ValLiteral:
		if ve.Lit.Kind == expr.LitString {
			return record.String(ve.Lit.Str), true, nil
		}
		if ve.Lit.IsInt {
			return record.Long(int64(ve.Lit.Num)), true, nil
		}
		return record.Double(ve.Lit.Num), true, nil
	default:
		return record.Null, false, nil
	}
}
