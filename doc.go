// Package ffigen rewrites annotated binding-dialect function declarations
// into fully linkage-specified form.
//
// A declaration carries its configuration as a #[ffi(key = "value", ...)]
// attribute with four recognized keys:
//
//   - abi: calling convention, validated against a closed registry. "none"
//     means no convention is enforced; an absent key means the default
//     convention.
//   - name: the exported linker symbol name. Defaults to the declaration's
//     own name.
//   - mode: "export", "import", or "none" to infer from the body: a
//     declaration with statements exports its own implementation, an empty
//     one imports an externally resolved symbol.
//   - feature: a feature guard attached as a conditional-inclusion directive.
//
// The whole transformation is a pure function of the declaration and its
// configuration: no state survives an invocation, and failures surface as
// structured diagnostics anchored to the offending token with no partial
// output.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	ffigen/          Root package: source-level rewriting entry points
//	├── abi/         Calling-convention registry and capability flags
//	├── decl/        Structural declaration model and printer
//	├── parse/       Dialect tokenizer and declaration parser
//	├── config/      #[ffi(...)] attribute parsing and validation
//	├── rewrite/     Mode inference and declaration synthesis
//	└── errors/      Structured error types with source anchors
//
// # Quick Start
//
// Rewrite one annotated declaration:
//
//	out, err := ffigen.Rewrite(`#[ffi(abi = "C", name = "my_c_function")]
//	pub fn my_function() { return; }`)
//
// yields
//
//	#[export_name = "my_c_function"]
//	#[no_mangle]
//	pub extern "C" fn my_function() { return; }
//
// Importing an external symbol works the same way; a declaration with an
// empty body becomes a foreign-declaration block:
//
//	out, err := ffigen.Rewrite(`#[ffi(abi = "stdcall")]
//	fn external_routine(code: i32);`)
//
// yields
//
//	extern "stdcall" {
//	    fn external_routine(code: i32);
//	}
//
// RewriteFile processes a whole buffer, rewriting each annotated declaration
// in place and leaving everything else untouched. Scan enumerates the
// annotated declarations without rewriting them.
//
// # Capability Rules
//
// Three conventions keep dialect-native linkage: "Rust", "rust-call" and
// "rust-intrinsic". Declarations under any other convention (or with no abi
// key at all) get a #[no_mangle] suppression directive and have their
// generic parameters stripped, since foreign conventions cannot carry
// instantiation information. The two rules always travel together; both are
// derived from the abi package's single capability table.
//
// # Thread Safety
//
// Every entry point is a pure function over immutable package-level tables;
// all of them are safe for concurrent use.
package ffigen
