// Package decl defines the structural representation of binding-dialect
// function declarations.
//
// A FuncDecl captures one annotated declaration: qualifiers, generic
// parameters and their constraint clause, the ordered parameter list, the
// variadic marker, the return type, the verbatim body, and any attributes.
// An ExternBlock is the synthesized form of an imported declaration: a
// foreign-declaration block scoped under a calling convention, containing a
// bodyless signature.
//
// Values are never rewritten in place. The synthesis pipeline consumes a
// parsed FuncDecl and emits a fresh Item; Print renders items back to dialect
// source text.
package decl
