// Package errors provides structured error types for the ffigen library.
//
// Errors are categorized by Phase (where in the pipeline the error occurred)
// and Kind (error category). The Error type includes rich context: the
// offending value, a source anchor pinned to the token that caused the
// failure, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfig, errors.KindInvalidMode).
//		Value("exprot").
//		At(attr.Pos).
//		Detail("invalid mode %q, expecting one of ['none', 'import', 'export']", "exprot").
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// so callers can classify failures without string matching.
package errors
