package recordpath

import (
	"github.com/flowforge/datapath/cache"
	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/expr/rpath"
	"github.com/flowforge/datapath/record"
)

// CompiledPath is an immutable, ready-to-evaluate RecordPath expression
// (spec §4.3: "Compilation produces an immutable tree").
type CompiledPath struct {
	path *expr.Path
}

// String returns the path's normalized source form.
func (cp *CompiledPath) String() string { return cp.path.String() }

// Compile parses source into a CompiledPath without consulting any cache.
// Most callers should go through a Compiler instead (spec §4.3).
func Compile(source string) (*CompiledPath, error) {
	p, err := rpath.Parse(source)
	if err != nil {
		return nil, err
	}
	return &CompiledPath{path: p}, nil
}

// Evaluate runs cp against rec, starting from the record root.
func (cp *CompiledPath) Evaluate(rec *record.Record) ([]*FieldValue, error) {
	return evaluatePathFrom(cp.path, rec, nil)
}

// EvaluateWithContext runs cp starting from context instead of rec's root —
// used when a relative path (one that didn't start with '/' or '//') needs
// to be evaluated against a specific field-value, e.g. from inside
// anchored()'s own implementation or by a caller re-evaluating a path
// against each element of a prior result set.
func (cp *CompiledPath) EvaluateWithContext(rec *record.Record, context *FieldValue) ([]*FieldValue, error) {
	return evaluatePathFrom(cp.path, rec, context)
}

// Compiler is a Compile front-end backed by a bounded cache (spec §4.3).
// The zero value is not usable; construct with NewCompiler.
type Compiler struct {
	cache *cache.Cache
}

// NewCompiler builds a Compiler whose cache holds at most capacity entries
// (cache.DefaultCapacity if capacity <= 0).
func NewCompiler(capacity int) *Compiler {
	return &Compiler{cache: cache.New(capacity)}
}

// Compile parses source, or returns the previously compiled path if source
// was seen before and is still in the cache.
func (c *Compiler) Compile(source string) (*CompiledPath, error) {
	if cached, ok := c.cache.Get(source); ok {
		return cached.(*CompiledPath), nil
	}
	cp, err := Compile(source)
	if err != nil {
		return nil, err
	}
	c.cache.Put(source, cp)
	return cp, nil
}
