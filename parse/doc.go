// Package parse turns binding-dialect source text into decl structures.
//
// The grammar covers exactly what the rewriter consumes: a run of #[...]
// attributes followed by one function declaration: qualifiers, name, generic
// parameters with optional bounds, value parameters, an optional variadic
// marker, an optional return type, an optional where clause, and either a
// brace-delimited body or a terminating semicolon.
//
// Parse requires the input to contain a single declaration. Next additionally
// reports where the declaration ends, so callers can rewrite annotated
// declarations inside a larger buffer.
//
// All diagnostics are structured errors from the errors package, anchored to
// the offending token.
package parse
