package abi

import (
	"fmt"
	"strings"

	"github.com/wippyai/ffigen/errors"
)

const (
	// Default is the convention used when a declaration requests none.
	Default = "Rust"

	// None is the sentinel meaning "no convention enforced". It is a valid
	// registry entry but never an enforced convention.
	None = "none"
)

// registry is the closed set of recognized calling-convention identifiers.
// The order is fixed: diagnostics enumerate it verbatim.
var registry = [31]string{
	"Rust", "C", "C-unwind", "C-cmse-nonsecure-call", "C-cmse-nonsecure-entry",
	"cdecl", "rust-call",
	"stdcall", "stdcall-unwind", "fastcall", "vectorcall", "thiscall",
	"thiscall-unwind", "aapcs", "win64", "sysv64",
	"ptx-kernel", "msp430-interrupt", "x86-interrupt", "efiapi",
	"avr-interrupt", "avr-non-blocking-interrupt",
	"riscv-interrupt-m", "riscv-interrupt-s",
	"wasm", "system", "system-unwind",
	"rust-intrinsic", "platform-intrinsic", "unadjusted",
	None,
}

var members = func() map[string]struct{} {
	m := make(map[string]struct{}, len(registry))
	for _, id := range registry {
		m[id] = struct{}{}
	}
	return m
}()

// Names returns the registry entries in their fixed order.
// The returned slice is a copy.
func Names() []string {
	out := make([]string, len(registry))
	copy(out, registry[:])
	return out
}

// Valid reports whether id is a member of the registry.
func Valid(id string) bool {
	_, ok := members[id]
	return ok
}

// Validate returns id unchanged when it is a registry member. Otherwise it
// fails with an invalid_abi error whose detail enumerates every valid entry.
func Validate(id string) (string, error) {
	if Valid(id) {
		return id, nil
	}
	return "", errors.New(errors.PhaseConfig, errors.KindInvalidAbi).
		Value(id).
		Detail("Invalid ABI %q, expecting one of [%s]", id, strings.Join(Names(), ", ")).
		Build()
}

// Capabilities records what a resolved calling convention can carry across
// the boundary.
type Capabilities struct {
	// ManglesSymbol reports that the linker symbol would be mangled, so an
	// exported declaration must attach a suppression directive.
	ManglesSymbol bool

	// SupportsGenerics reports that generic parameters survive the boundary.
	SupportsGenerics bool
}

// native is the three-convention subset that keeps dialect-native linkage:
// no symbol mangling to suppress, generics allowed. The two flags co-vary;
// this table is the single place the rule lives.
var native = map[string]struct{}{
	"Rust":           {},
	"rust-call":      {},
	"rust-intrinsic": {},
}

// Lookup computes the capability record for a configured convention.
// id is the validated identifier from the configuration, or the empty string
// when no abi key was given. An unset convention mangles: the declaration
// falls back to the default convention for linkage purposes, but the
// configuration did not ask for native linkage.
func Lookup(id string) Capabilities {
	if _, ok := native[id]; ok {
		return Capabilities{ManglesSymbol: false, SupportsGenerics: true}
	}
	return Capabilities{ManglesSymbol: true, SupportsGenerics: false}
}

func (c Capabilities) String() string {
	return fmt.Sprintf("caps(mangles=%t generics=%t)", c.ManglesSymbol, c.SupportsGenerics)
}
