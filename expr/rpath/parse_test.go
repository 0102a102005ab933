package rpath

import (
	"testing"

	"github.com/flowforge/datapath/expr"
)

func TestParseSimpleChildPath(t *testing.T) {
	p, err := Parse("/accounts/id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Absolute {
		t.Fatalf("expected absolute path")
	}
	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Segments))
	}
	if p.Segments[0].Sel.Name != "accounts" || p.Segments[1].Sel.Name != "id" {
		t.Fatalf("unexpected segment names: %+v", p.Segments)
	}
}

func TestParseDescendantWildcard(t *testing.T) {
	p, err := Parse("//*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Segments) != 1 || p.Segments[0].Axis != expr.AxisDescendant || p.Segments[0].Sel.Kind != expr.SelWildcard {
		t.Fatalf("unexpected parse result: %+v", p)
	}
}

func TestParseMultiIndexPreservesOrder(t *testing.T) {
	p, err := Parse("/accounts[2,0,1]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := p.Segments[0].Brackets[0].Items
	if len(items) != 3 || items[0].Number != 2 || items[1].Number != 0 || items[2].Number != 1 {
		t.Fatalf("index order not preserved: %+v", items)
	}
}

func TestParseRangeIndex(t *testing.T) {
	p, err := Parse("/accounts[0..-1]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := p.Segments[0].Brackets[0].Items[0]
	if it.Kind != expr.IdxRange || it.RangeFrom != 0 || it.RangeTo != -1 {
		t.Fatalf("unexpected range item: %+v", it)
	}
}

func TestParseChainedBracketsOnOneSegment(t *testing.T) {
	p, err := Parse("/accounts[0..-1][./balance > 100]/id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Segments))
	}
	if len(p.Segments[0].Brackets) != 2 {
		t.Fatalf("expected 2 bracket groups on first segment, got %d", len(p.Segments[0].Brackets))
	}
	pred := p.Segments[0].Brackets[1].Items[0].Predicate
	if pred.Kind != expr.PredComparison || pred.Op != expr.OpGT {
		t.Fatalf("unexpected predicate: %+v", pred)
	}
}

func TestParseFilterFunctionAsPredicateSucceeds(t *testing.T) {
	_, err := Parse("/accounts[isEmpty(./nickname)]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseValueFunctionAsPredicateFails(t *testing.T) {
	_, err := Parse("/accounts[toUpperCase(./name)]")
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	se, ok := err.(*expr.PathSyntaxError)
	if !ok {
		t.Fatalf("expected *expr.PathSyntaxError, got %T", err)
	}
	if se.Offset == 0 {
		t.Fatalf("expected a non-zero offset")
	}
}

func TestParseRelativeSelfAndParent(t *testing.T) {
	p, err := Parse("../name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Absolute {
		t.Fatalf("expected relative path")
	}
	if p.Segments[0].Axis != expr.AxisParent {
		t.Fatalf("expected first segment to be parent axis")
	}
}

func TestParseDotBracketEquivalence(t *testing.T) {
	a, err := Parse(".['key']")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse("['key']")
	if err == nil {
		// a bare '[' is not a legal Path start per the grammar; only
		// accepted when the parser is asked to parse a value used as
		// an index item, not as a standalone path.
		t.Fatalf("expected bare bracket path to fail to parse, got %+v", b)
	}
	if len(a.Segments) != 1 || a.Segments[0].Axis != expr.AxisSelf {
		t.Fatalf("unexpected segments for .['key']: %+v", a.Segments)
	}
	if a.Segments[0].Brackets[0].Items[0].Key != "key" {
		t.Fatalf("expected key index item")
	}
}

func TestParseUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := Parse("/accounts['unterminated]")
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := err.(*expr.PathSyntaxError); !ok {
		t.Fatalf("expected *expr.PathSyntaxError, got %T", err)
	}
}

func TestParseFunctionStep(t *testing.T) {
	p, err := Parse("/toUpperCase(./name)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := p.Segments[0].Sel
	if sel.Kind != expr.SelFunction || sel.Call.Name != "toUpperCase" {
		t.Fatalf("unexpected selector: %+v", sel)
	}
}

func TestParseWrongArityIsSyntaxError(t *testing.T) {
	_, err := Parse("/contains(./x)")
	if err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestPathStringRoundTrips(t *testing.T) {
	p, err := Parse("/accounts/id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := Parse(p.String())
	if err != nil {
		t.Fatalf("re-parsing rendered path failed: %v", err)
	}
	if len(again.Segments) != len(p.Segments) {
		t.Fatalf("round trip changed segment count")
	}
}
