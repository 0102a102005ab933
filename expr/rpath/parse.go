package rpath

import (
	"fmt"

	"github.com/flowforge/datapath/expr"
)

// Parse compiles RecordPath source text into an *expr.Path. Errors are
// always *expr.PathSyntaxError, carrying the byte offset of the failure
// (spec §4.1/§4.2: compilation errors are raised eagerly).
func Parse(source string) (path *expr.Path, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*expr.PathSyntaxError); ok {
				path, err = nil, se
				return
			}
			panic(r)
		}
	}()
	p := &parser{lex: newLexer(source), source: source}
	p.advance()
	var result *expr.Path
	if p.tok.kind == tIdent {
		name := p.tok.text
		pos := p.tok.pos
		p.advance()
		if p.tok.kind != tLParen {
			panic(p.syntaxf(pos, "expected a path or function call, got identifier %q", name))
		}
		result = &expr.Path{Call: p.functionCallFrom(name, pos)}
	} else {
		result = p.path()
	}
	if p.tok.kind != tEOF {
		panic(p.syntaxf(p.tok.pos, "unexpected %s after path", p.tok.kind))
	}
	result.Source = source
	return result, nil
}

type parser struct {
	lex    *lexer
	tok    lexeme
	source string
}

func (p *parser) advance() {
	p.tok = p.lex.next()
	if p.lex.err != nil {
		le := p.lex.err.(*lexError)
		panic(&expr.PathSyntaxError{Source: p.source, Offset: le.pos, Msg: le.msg})
	}
}

func (p *parser) syntaxf(offset int, format string, args ...any) *expr.PathSyntaxError {
	return &expr.PathSyntaxError{Source: p.source, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// path parses the Path production. It is called only when the current
// token begins one: '/', '//', '.', or '..'.
func (p *parser) path() *expr.Path {
	absolute := false
	var segments []expr.Segment

	switch p.tok.kind {
	case tSlash, tDoubleSlash:
		absolute = true
		segments = append(segments, p.step(p.axisFor(p.tok.kind)))
	case tDot:
		p.advance()
		segments = append(segments, expr.Segment{Axis: expr.AxisSelf, Brackets: p.brackets()})
	case tDoubleDot:
		p.advance()
		segments = append(segments, expr.Segment{Axis: expr.AxisParent, Brackets: p.brackets()})
	default:
		panic(p.syntaxf(p.tok.pos, "expected a path, got %s", p.tok.kind))
	}

	for p.tok.kind == tSlash || p.tok.kind == tDoubleSlash {
		segments = append(segments, p.step(p.axisFor(p.tok.kind)))
	}

	return &expr.Path{Absolute: absolute, Segments: segments}
}

func (p *parser) axisFor(k token) expr.Axis {
	if k == tDoubleSlash {
		return expr.AxisDescendant
	}
	return expr.AxisChild
}

// step consumes the leading '/' or '//' token (p.tok is that token on
// entry), then a selector (or, after a single '/', a '.' or '..' step),
// then zero or more bracket groups.
func (p *parser) step(axis expr.Axis) expr.Segment {
	p.advance() // consume '/' or '//'
	if axis == expr.AxisChild && (p.tok.kind == tDot || p.tok.kind == tDoubleDot) {
		a := expr.AxisSelf
		if p.tok.kind == tDoubleDot {
			a = expr.AxisParent
		}
		p.advance()
		return expr.Segment{Axis: a, Brackets: p.brackets()}
	}
	sel := p.selector()
	return expr.Segment{Axis: axis, Sel: sel, Brackets: p.brackets()}
}

func (p *parser) selector() expr.Selector {
	switch p.tok.kind {
	case tStar:
		p.advance()
		return expr.Selector{Kind: expr.SelWildcard}
	case tIdent:
		name := p.tok.text
		pos := p.tok.pos
		p.advance()
		if p.tok.kind == tLParen {
			call := p.functionCallFrom(name, pos)
			return expr.Selector{Kind: expr.SelFunction, Call: call}
		}
		return expr.Selector{Kind: expr.SelName, Name: name}
	case tString:
		name := p.tok.str
		p.advance()
		return expr.Selector{Kind: expr.SelName, Name: name}
	case tLBracket:
		// bracket-only step, e.g. "/['key']"; brackets() handles the rest.
		return expr.Selector{Kind: expr.SelNone}
	default:
		panic(p.syntaxf(p.tok.pos, "expected a name, '*', or function call, got %s", p.tok.kind))
	}
}

// brackets consumes zero or more consecutive "[...]" groups.
func (p *parser) brackets() []expr.Bracket {
	var out []expr.Bracket
	for p.tok.kind == tLBracket {
		out = append(out, p.bracket())
	}
	return out
}

func (p *parser) bracket() expr.Bracket {
	p.advance() // consume '['
	var items []expr.IndexItem
	items = append(items, p.indexItem())
	for p.tok.kind == tComma {
		p.advance()
		items = append(items, p.indexItem())
	}
	if p.tok.kind != tRBracket {
		panic(p.syntaxf(p.tok.pos, "expected ']', got %s", p.tok.kind))
	}
	p.advance()
	return expr.Bracket{Items: items}
}

func (p *parser) indexItem() expr.IndexItem {
	switch p.tok.kind {
	case tStar:
		p.advance()
		return expr.IndexItem{Kind: expr.IdxWildcard}
	case tString:
		key := p.tok.str
		p.advance()
		return expr.IndexItem{Kind: expr.IdxKey, Key: key}
	case tNumber:
		n := int(p.tok.intv)
		if !p.tok.isInt {
			panic(p.syntaxf(p.tok.pos, "array index must be an integer"))
		}
		p.advance()
		if p.tok.kind == tDoubleDot {
			p.advance()
			if p.tok.kind != tNumber || !p.tok.isInt {
				panic(p.syntaxf(p.tok.pos, "expected integer after '..'"))
			}
			to := int(p.tok.intv)
			p.advance()
			return expr.IndexItem{Kind: expr.IdxRange, RangeFrom: n, RangeTo: to}
		}
		return expr.IndexItem{Kind: expr.IdxNumber, Number: n}
	default:
		pred := p.predicate()
		return expr.IndexItem{Kind: expr.IdxPredicate, Predicate: pred}
	}
}

// predicate parses a Predicate: either a filter-function call standing
// alone, or a "Value OP Value" comparison. Using a value function as the
// whole predicate is a compile-time error (spec §4.2).
func (p *parser) predicate() *expr.Predicate {
	startPos := p.tok.pos
	left := p.value()

	if p.tok.kind == tOp {
		op := p.compareOp()
		p.advance()
		right := p.value()
		return &expr.Predicate{Kind: expr.PredComparison, Left: left, Right: right, Op: op}
	}

	if left.Kind == expr.ValCall {
		if !left.Call.Op.IsFilter() {
			panic(p.syntaxf(startPos, "%s cannot be used as a standalone predicate (not a filter function)", left.Call.Name))
		}
		return &expr.Predicate{Kind: expr.PredFilter, Filter: left.Call}
	}

	panic(p.syntaxf(startPos, "predicate must be a filter function call or a comparison"))
}

func (p *parser) compareOp() expr.CompareOp {
	switch p.tok.text {
	case "=":
		return expr.OpEQ
	case "!=":
		return expr.OpNE
	case "<":
		return expr.OpLT
	case "<=":
		return expr.OpLE
	case ">":
		return expr.OpGT
	case ">=":
		return expr.OpGE
	default:
		panic(p.syntaxf(p.tok.pos, "unknown comparison operator"))
	}
}

// value parses the Value production: Path | FunctionCall | Literal.
func (p *parser) value() expr.ValueExpr {
	switch p.tok.kind {
	case tSlash, tDoubleSlash, tDot, tDoubleDot:
		return expr.ValueExpr{Kind: expr.ValPath, Path: p.path()}
	case tIdent:
		name := p.tok.text
		pos := p.tok.pos
		p.advance()
		if p.tok.kind != tLParen {
			panic(p.syntaxf(pos, "unexpected identifier %q", name))
		}
		call := p.functionCallFrom(name, pos)
		return expr.ValueExpr{Kind: expr.ValCall, Call: call}
	case tString:
		lit := expr.Literal{Kind: expr.LitString, Str: p.tok.str}
		p.advance()
		return expr.ValueExpr{Kind: expr.ValLiteral, Lit: lit}
	case tNumber:
		lit := expr.Literal{Kind: expr.LitNumber, Num: p.tok.num, IsInt: p.tok.isInt}
		p.advance()
		return expr.ValueExpr{Kind: expr.ValLiteral, Lit: lit}
	default:
		panic(p.syntaxf(p.tok.pos, "expected a path, function call, or literal, got %s", p.tok.kind))
	}
}

// functionCallFrom parses "(args...)" after an already-consumed function
// name; p.tok is the '(' token on entry.
func (p *parser) functionCallFrom(name string, namePos int) *expr.FunctionCall {
	op, ok := expr.LookupBuiltin(name)
	if !ok {
		panic(p.syntaxf(namePos, "unknown function %q", name))
	}
	p.advance() // consume '('
	var args []expr.ValueExpr
	if p.tok.kind != tRParen {
		args = append(args, p.value())
		for p.tok.kind == tComma {
			p.advance()
			args = append(args, p.value())
		}
	}
	if p.tok.kind != tRParen {
		panic(p.syntaxf(p.tok.pos, "expected ')', got %s", p.tok.kind))
	}
	p.advance()
	if err := op.CheckArity(len(args)); err != nil {
		panic(p.syntaxf(namePos, "%s", err.Error()))
	}
	return &expr.FunctionCall{Name: name, Op: op, Args: args}
}
