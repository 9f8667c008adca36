package rewrite

import (
	"strings"
	"testing"

	"github.com/wippyai/ffigen/config"
	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/parse"
)

// build parses a declaration, splits off its configuration attribute and
// returns both halves, failing the test on any error.
func build(t *testing.T, src string) (*config.Config, *decl.FuncDecl) {
	t.Helper()
	fn, err := parse.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	attr, rest := fn.TakeAttr(config.AttrName)
	cfg, err := config.Parse(attr)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	fn.Attrs = rest
	return cfg, fn
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want config.Mode
	}{
		{"body_exports", `#[ffi(abi = "C")] fn f() { return; }`, config.ModeExport},
		{"empty_body_imports", `#[ffi(abi = "C")] fn f() {}`, config.ModeImport},
		{"bodyless_imports", `#[ffi(abi = "C")] fn f();`, config.ModeImport},
		{"explicit_export_wins", `#[ffi(mode = "export")] fn f();`, config.ModeExport},
		{"explicit_import_wins", `#[ffi(mode = "import")] fn f() { return; }`, config.ModeImport},
		{"sentinel_defers", `#[ffi(mode = "none")] fn f() { return; }`, config.ModeExport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, fn := build(t, tt.src)
			if got := Infer(cfg, fn); got != tt.want {
				t.Errorf("Infer = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyExport(t *testing.T) {
	t.Run("foreign_convention", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "C", name = "sym")] pub fn f() { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		out, ok := item.(*decl.FuncDecl)
		if !ok {
			t.Fatalf("got %T, want *decl.FuncDecl", item)
		}
		if out.Extern != "C" {
			t.Errorf("Extern = %q", out.Extern)
		}
		if !out.Pub {
			t.Error("visibility lost")
		}
		if out.Body.Empty() {
			t.Error("body lost")
		}
		var raws []string
		for _, a := range out.Attrs {
			raws = append(raws, a.Raw)
		}
		want := []string{`#[export_name = "sym"]`, "#[no_mangle]"}
		if len(raws) != 2 || raws[0] != want[0] || raws[1] != want[1] {
			t.Errorf("attrs = %v, want %v", raws, want)
		}
	})

	t.Run("native_convention_no_directive", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "Rust", mode = "export")] fn f() { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		out := item.(*decl.FuncDecl)
		if out.Extern != "Rust" {
			t.Errorf("Extern = %q", out.Extern)
		}
		for _, a := range out.Attrs {
			if a.Name == "no_mangle" {
				t.Error("native convention must not suppress mangling")
			}
		}
	})

	t.Run("default_convention_mangles", func(t *testing.T) {
		// No abi key: linkage falls back to the default convention but the
		// suppression directive is still attached.
		cfg, fn := build(t, `#[ffi(mode = "export")] fn f() { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		out := item.(*decl.FuncDecl)
		if out.Extern != "Rust" {
			t.Errorf("Extern = %q", out.Extern)
		}
		found := false
		for _, a := range out.Attrs {
			found = found || a.Name == "no_mangle"
		}
		if !found {
			t.Error("missing suppression directive")
		}
	})

	t.Run("generics_stripped_for_foreign", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "C", mode = "export")] fn f<T: Clone>(x: T) where T: Copy { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		out := item.(*decl.FuncDecl)
		if len(out.TypeParams) != 0 || out.Where != "" {
			t.Errorf("generics survived a foreign convention: %+v", out)
		}
	})

	t.Run("generics_kept_for_native", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "Rust", mode = "export")] fn f<T: Clone>(x: T) where T: Copy { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		out := item.(*decl.FuncDecl)
		if len(out.TypeParams) != 1 || out.Where != "T: Copy" {
			t.Errorf("generics lost on a native convention: %+v", out)
		}
	})

	t.Run("export_of_stub_gains_body", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(mode = "export")] fn f();`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		out := item.(*decl.FuncDecl)
		if out.Body == nil {
			t.Error("forced export must synthesize a definition site")
		}
	})

	t.Run("feature_guard", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(feature = "accel", mode = "export")] fn f() { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		out := item.(*decl.FuncDecl)
		if len(out.Attrs) == 0 || out.Attrs[0].Raw != `#[cfg(feature = "accel")]` {
			t.Errorf("attrs = %+v", out.Attrs)
		}
	})
}

func TestApplyImport(t *testing.T) {
	t.Run("foreign_block", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "stdcall")] fn external_routine(code: i32);`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		block, ok := item.(*decl.ExternBlock)
		if !ok {
			t.Fatalf("got %T, want *decl.ExternBlock", item)
		}
		if block.ABI != "stdcall" {
			t.Errorf("ABI = %q", block.ABI)
		}
		if len(block.Fns) != 1 || block.Fns[0].Name != "external_routine" {
			t.Fatalf("Fns = %+v", block.Fns)
		}
		if block.Fns[0].Body != nil {
			t.Error("imported signature must be bodyless")
		}
	})

	t.Run("body_discarded", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(mode = "import")] fn f() { return; }`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		block := item.(*decl.ExternBlock)
		if block.Fns[0].Body != nil {
			t.Error("forced import must discard the body")
		}
	})

	t.Run("qualifiers", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "C")] pub const unsafe fn f();`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		inner := item.(*decl.ExternBlock).Fns[0]
		if !inner.Pub {
			t.Error("visibility lost")
		}
		if inner.Const || inner.Unsafe {
			t.Error("const/unsafe must not appear on foreign declarations")
		}
	})

	t.Run("rename_directive", func(t *testing.T) {
		cfg, fn := build(t, `#[ffi(abi = "C", name = "ext")] fn f(x: i32);`)
		item, err := Apply(cfg, fn)
		if err != nil {
			t.Fatal(err)
		}
		inner := item.(*decl.ExternBlock).Fns[0]
		found := false
		for _, a := range inner.Attrs {
			found = found || strings.Contains(a.Raw, `export_name = "ext"`)
		}
		if !found {
			t.Errorf("rename directive missing: %+v", inner.Attrs)
		}
	})
}

func TestApplyPreservesUnrelatedAttrs(t *testing.T) {
	cfg, fn := build(t, `#[inline]
#[ffi(abi = "C", name = "sym")]
#[doc = "keep me"]
pub fn f() { return; }`)
	item, err := Apply(cfg, fn)
	if err != nil {
		t.Fatal(err)
	}
	out := item.(*decl.FuncDecl)
	raws := make([]string, len(out.Attrs))
	for i, a := range out.Attrs {
		raws[i] = a.Raw
	}
	want := []string{"#[inline]", `#[doc = "keep me"]`, `#[export_name = "sym"]`, "#[no_mangle]"}
	if len(raws) != len(want) {
		t.Fatalf("attrs = %v, want %v", raws, want)
	}
	for i := range want {
		if raws[i] != want[i] {
			t.Errorf("attr %d = %q, want %q", i, raws[i], want[i])
		}
	}
}
