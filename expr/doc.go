// Package expr implements the AST representation of RecordPath
// expressions: paths (sequences of axis steps, each optionally bracketed
// with indices or predicates) and the function-call expressions that can
// appear as whole queries, as path steps, or inside predicates.
//
// The critical entry points for this package are the Path/Segment/
// FunctionCall node types built by package rpath's parser, the Walk
// helper for traversing a compiled tree, and the error types returned
// from compilation and evaluation.
package expr
