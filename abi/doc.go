// Package abi defines the closed set of recognized calling-convention
// identifiers and the capability flags derived from them.
//
// The registry is a process-wide immutable constant: validation and capability
// lookup never allocate per-call state, so the package is safe for concurrent
// use without synchronization.
//
// Three conventions are native to the binding dialect and keep their symbol
// mangling and generic parameters: "Rust", "rust-call" and "rust-intrinsic".
// Under every other convention, and when no convention was requested at all,
// the linker symbol would be mangled (so exported declarations need a
// suppression directive) and generic parameters cannot cross the boundary.
// See Lookup.
package abi
