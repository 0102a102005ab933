package expr

import "strings"

// Node is the common interface for every RecordPath AST node: Path,
// Segment, Bracket, IndexItem, Predicate, FunctionCall, and Literal all
// implement it. A single evaluate(context)-shaped contract is provided by
// package recordpath; this package is concerned only with shape and
// traversal (spec §9's "tagged variants with a single evaluate dispatch"
// guidance, applied here as: small structs, no class hierarchy).
type Node interface {
	// walk is used by Walk to descend into children; leaf nodes do
	// nothing.
	walk(v Visitor)
}

// Visitor is implemented by callers that want to inspect every node of a
// compiled path, e.g. to count function calls or collect referenced field
// names. Visit is called for every node; if the returned Visitor is
// non-nil, traversal continues into that node's children using it.
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses an AST in depth-first order, in the style of go/ast.Walk.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	w := v.Visit(n)
	if w == nil {
		return
	}
	n.walk(w)
}

// Axis is the direction of traversal from the current context.
type Axis int

const (
	// AxisSelf is "." — identity.
	AxisSelf Axis = iota
	// AxisParent is ".." — the parent field-value.
	AxisParent
	// AxisChild is "/name" — descend into a named (or wildcard) child.
	AxisChild
	// AxisDescendant is "//name" — depth-first search for a named child.
	AxisDescendant
)

func (a Axis) String() string {
	switch a {
	case AxisSelf:
		return "."
	case AxisParent:
		return ".."
	case AxisChild:
		return "/"
	case AxisDescendant:
		return "//"
	default:
		return "?"
	}
}

// SelectorKind distinguishes what a Child/Descendant step selects.
type SelectorKind int

const (
	// SelNone means the step carries no selector of its own — used by
	// Self/Parent axis steps, and by bracket-only steps such as
	// ".['key']" where the brackets apply directly to the current
	// candidate.
	SelNone SelectorKind = iota
	SelName
	SelWildcard
	SelFunction
)

// Selector is the part of a step that picks children out of a record
// (a literal/quoted Name, '*', or a FunctionCall used as a step).
type Selector struct {
	Kind SelectorKind
	Name string
	Call *FunctionCall
}

func (s Selector) walk(v Visitor) {
	if s.Kind == SelFunction && s.Call != nil {
		Walk(v, s.Call)
	}
}

// IndexItemKind distinguishes the five forms an index/predicate item can
// take inside a bracket (spec §4.2 Index grammar).
type IndexItemKind int

const (
	IdxNumber IndexItemKind = iota
	IdxRange
	IdxWildcard
	IdxKey
	IdxPredicate
)

// IndexItem is one comma-separated member of a Bracket.
type IndexItem struct {
	Kind      IndexItemKind
	Number    int // IdxNumber
	RangeFrom int // IdxRange
	RangeTo   int // IdxRange
	Key       string // IdxKey
	Predicate *Predicate // IdxPredicate
}

func (it IndexItem) walk(v Visitor) {
	if it.Kind == IdxPredicate && it.Predicate != nil {
		Walk(v, it.Predicate)
	}
}

// Bracket is one "[...]" group: a comma-separated union of IndexItems,
// evaluated in listed order (spec §4.5 — multi-index order is significant
// and is not array order).
type Bracket struct {
	Items []IndexItem
}

func (b *Bracket) walk(v Visitor) {
	for i := range b.Items {
		Walk(v, b.Items[i])
	}
}

// Segment is one step of a compiled path: an axis, an optional selector,
// and zero or more trailing bracket groups applied in sequence.
type Segment struct {
	Axis     Axis
	Sel      Selector
	Brackets []Bracket
}

func (s *Segment) walk(v Visitor) {
	Walk(v, s.Sel)
	for i := range s.Brackets {
		Walk(v, &s.Brackets[i])
	}
}

// Path is a fully compiled RecordPath expression. The grammar's top-level
// production is "Expr := Path | FunctionCall" (spec §4.2): when the whole
// source is a bare function call, Call is set and Segments is empty;
// otherwise Segments holds an ordered list of steps, and Absolute records
// whether the path is rooted (started with '/' or '//', in which case
// evaluation always begins at the record root) or relative (started with
// '.' or '..', in which case evaluation begins at the caller-supplied
// context field-value).
type Path struct {
	Absolute bool
	Segments []Segment
	Call     *FunctionCall
	Source   string
}

func (p *Path) walk(v Visitor) {
	if p.Call != nil {
		Walk(v, p.Call)
		return
	}
	for i := range p.Segments {
		Walk(v, &p.Segments[i])
	}
}

// FunctionCall is a ~40-entry builtin function invocation. It can stand as
// an entire compiled expression, as a path step (Selector.Call), or as an
// operand inside a Predicate's Comparison.
type FunctionCall struct {
	Name string
	Op   BuiltinOp
	Args []ValueExpr
}

func (f *FunctionCall) walk(v Visitor) {
	for i := range f.Args {
		Walk(v, f.Args[i])
	}
}

// ValueKind distinguishes what a ValueExpr holds.
type ValueKind int

const (
	ValPath ValueKind = iota
	ValCall
	ValLiteral
)

// ValueExpr is the "Value" production of the grammar: a Path, a
// FunctionCall, or a Literal.
type ValueExpr struct {
	Kind ValueKind
	Path *Path
	Call *FunctionCall
	Lit  Literal
}

func (e ValueExpr) walk(v Visitor) {
	switch e.Kind {
	case ValPath:
		Walk(v, e.Path)
	case ValCall:
		Walk(v, e.Call)
	}
}

// LiteralKind distinguishes a string from a numeric literal.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
)

// Literal is a STRING_LITERAL or NUMBER token used as a Value.
type Literal struct {
	Kind  LiteralKind
	Str   string
	Num   float64
	IsInt bool
}

func (l Literal) walk(Visitor) {}

// PredicateKind distinguishes the two predicate forms of spec §4.6.
type PredicateKind int

const (
	// PredFilter is a filter-function predicate: the function itself is
	// the whole predicate (e.g. "[isEmpty(./x)]").
	PredFilter PredicateKind = iota
	// PredComparison is "Value OP Value" (e.g. "[./x = 'CA']").
	PredComparison
)

// CompareOp is one of the six comparison operators.
type CompareOp int

const (
	OpEQ CompareOp = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

func (op CompareOp) String() string {
	switch op {
	case OpEQ:
		return "="
	case OpNE:
		return "!="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

// Predicate is a bracketed filter on a segment (spec glossary).
type Predicate struct {
	Kind   PredicateKind
	Filter *FunctionCall // PredFilter
	Left   ValueExpr     // PredComparison
	Right  ValueExpr     // PredComparison
	Op     CompareOp     // PredComparison
}

func (p *Predicate) walk(v Visitor) {
	switch p.Kind {
	case PredFilter:
		Walk(v, p.Filter)
	case PredComparison:
		Walk(v, p.Left)
		Walk(v, p.Right)
	}
}

// countVisitor counts nodes for which match returns true; used by
// CountNodes.
type countVisitor struct {
	match func(Node) bool
	n     int
}

func (c *countVisitor) Visit(n Node) Visitor {
	if n == nil {
		return nil
	}
	if c.match(n) {
		c.n++
	}
	return c
}

// CountNodes walks p and counts the nodes for which match returns true.
// It is the simplest useful consumer of Walk — e.g. CountNodes(p, func(n
// Node) bool { _, ok := n.(*FunctionCall); return ok }) counts function
// calls anywhere in the tree, including inside predicates.
func CountNodes(p *Path, match func(Node) bool) int {
	v := &countVisitor{match: match}
	Walk(v, p)
	return v.n
}

// String renders a Path back to RecordPath syntax. It is not guaranteed to
// byte-for-byte match the original source (whitespace and quoting style
// are normalized) but re-parsing it produces an equivalent compiled path.
func (p *Path) String() string {
	var b strings.Builder
	if p.Call != nil {
		writeCall(&b, p.Call)
		return b.String()
	}
	if p.Absolute {
		if len(p.Segments) == 0 {
			return "/"
		}
	}
	for i, seg := range p.Segments {
		writeSegment(&b, seg, i == 0)
	}
	return b.String()
}

func writeSegment(b *strings.Builder, seg Segment, first bool) {
	switch seg.Axis {
	case AxisSelf:
		if !first {
			b.WriteString("/")
		}
		b.WriteString(".")
	case AxisParent:
		if !first {
			b.WriteString("/")
		}
		b.WriteString("..")
	case AxisChild:
		if first {
			b.WriteString("/")
		} else {
			b.WriteString("/")
		}
		writeSelector(b, seg.Sel)
	case AxisDescendant:
		b.WriteString("//")
		writeSelector(b, seg.Sel)
	}
	for _, br := range seg.Brackets {
		b.WriteString("[")
		for i, it := range br.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeIndexItem(b, it)
		}
		b.WriteString("]")
	}
}

func writeSelector(b *strings.Builder, sel Selector) {
	switch sel.Kind {
	case SelName:
		b.WriteString(Quote(sel.Name))
	case SelWildcard:
		b.WriteString("*")
	case SelFunction:
		writeCall(b, sel.Call)
	}
}

func writeCall(b *strings.Builder, f *FunctionCall) {
	b.WriteString(f.Name)
	b.WriteString("(")
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, a)
	}
	b.WriteString(")")
}

func writeValue(b *strings.Builder, e ValueExpr) {
	switch e.Kind {
	case ValPath:
		b.WriteString(e.Path.String())
	case ValCall:
		writeCall(b, e.Call)
	case ValLiteral:
		if e.Lit.Kind == LitString {
			b.WriteString(QuoteDouble(e.Lit.Str))
		} else if e.Lit.IsInt {
			b.WriteString(itoa(int64(e.Lit.Num)))
		} else {
			b.WriteString(ftoa(e.Lit.Num))
		}
	}
}

func writeIndexItem(b *strings.Builder, it IndexItem) {
	switch it.Kind {
	case IdxNumber:
		b.WriteString(itoa(int64(it.Number)))
	case IdxRange:
		b.WriteString(itoa(int64(it.RangeFrom)))
		b.WriteString("..")
		b.WriteString(itoa(int64(it.RangeTo)))
	case IdxWildcard:
		b.WriteString("*")
	case IdxKey:
		b.WriteString(QuoteDouble(it.Key))
	case IdxPredicate:
		writePredicate(b, it.Predicate)
	}
}

func writePredicate(b *strings.Builder, p *Predicate) {
	switch p.Kind {
	case PredFilter:
		writeCall(b, p.Filter)
	case PredComparison:
		writeValue(b, p.Left)
		b.WriteString(" ")
		b.WriteString(p.Op.String())
		b.WriteString(" ")
		writeValue(b, p.Right)
	}
}
