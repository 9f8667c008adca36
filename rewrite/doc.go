// Package rewrite synthesizes the final linkage-specified declaration.
//
// Given a parsed declaration and its Config, Infer resolves the
// transformation mode (explicit configuration wins, otherwise an empty body
// means import and a non-empty body means export), and Apply produces a new
// declaration:
//
//   - Export: the original declaration under the resolved calling
//     convention, with the feature guard, rename and mangling-suppression
//     directives attached, and the body preserved verbatim.
//   - Import: a foreign-declaration block under the resolved convention
//     containing the bodyless signature.
//
// Generic parameters only survive when the resolved convention supports
// them; under any foreign convention they are stripped, since the boundary
// cannot carry instantiation information.
//
// The input declaration is never mutated; Apply returns a fresh structure.
package rewrite
