package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the transformation pipeline the error occurred
type Phase string

const (
	PhaseParse      Phase = "parse"      // declaration/attribute parsing
	PhaseConfig     Phase = "config"     // configuration validation
	PhaseSynthesize Phase = "synthesize" // declaration synthesis
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidAbi           Kind = "invalid_abi"
	KindInvalidMode          Kind = "invalid_mode"
	KindMalformedAttribute   Kind = "malformed_attribute"
	KindMalformedDeclaration Kind = "malformed_declaration"
	KindUnexpectedToken      Kind = "unexpected_token"
	KindUnexpectedEOF        Kind = "unexpected_eof"
)

// Pos is a source anchor: 1-based line, 0-based column, 0-based byte offset.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Pos    *Pos
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Pos != nil {
		b.WriteString(" at ")
		b.WriteString(e.Pos.String())
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is a *Error of the given kind, in any phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// At pins the error to a source position
func (b *Builder) At(pos Pos) *Builder {
	b.err.Pos = &pos
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Shift returns a copy of the error with its anchor moved by the given line
// and byte deltas. Used when a declaration was parsed out of a larger buffer
// and the anchor must be expressed in that buffer's coordinates.
func (e *Error) Shift(lines, bytes int) *Error {
	if e.Pos == nil {
		return e
	}
	out := *e
	pos := *e.Pos
	pos.Line += lines
	pos.Offset += bytes
	out.Pos = &pos
	return &out
}

// WithPos returns a copy of err pinned to pos, unless err already carries an
// anchor.
func WithPos(err *Error, pos Pos) *Error {
	if err.Pos != nil {
		return err
	}
	e := *err
	e.Pos = &pos
	return &e
}

// Convenience constructors for common error patterns

// UnexpectedEOF creates an error for input that ended mid-construct
func UnexpectedEOF(phase Phase, expected string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedEOF,
		Detail: fmt.Sprintf("unexpected end of input, expected %s", expected),
	}
}

// UnexpectedToken creates an error for a token that does not fit the grammar
func UnexpectedToken(phase Phase, pos Pos, got, expected string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedToken,
		Pos:    &pos,
		Value:  got,
		Detail: fmt.Sprintf("expected %s, got %q", expected, got),
	}
}

// MalformedAttribute creates an error for an attribute list that cannot be parsed
func MalformedAttribute(pos Pos, detail string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindMalformedAttribute,
		Pos:    &pos,
		Detail: detail,
	}
}

// MalformedDeclaration creates an error for an annotated item that is not a
// function declaration
func MalformedDeclaration(pos Pos, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedDeclaration,
		Pos:    &pos,
		Detail: detail,
	}
}
