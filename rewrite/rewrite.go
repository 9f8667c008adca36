package rewrite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/ffigen/config"
	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/errors"
)

// Infer resolves the transformation mode. An explicitly configured mode is
// used directly; otherwise a bodyless or empty-bodied declaration is an
// import stub and anything else is an export. The decision is terminal:
// nothing downstream revisits it.
func Infer(cfg *config.Config, fn *decl.FuncDecl) config.Mode {
	if cfg.Mode != config.ModeInfer {
		return cfg.Mode
	}
	if fn.Body.Empty() {
		return config.ModeImport
	}
	return config.ModeExport
}

// Apply synthesizes the rewritten declaration for fn under cfg. fn must
// carry only its non-configuration attributes; the #[ffi(...)] attribute is
// the configuration and does not reappear in the output.
func Apply(cfg *config.Config, fn *decl.FuncDecl) (decl.Item, error) {
	if fn == nil {
		return nil, errors.MalformedDeclaration(errors.Pos{Line: 1}, "no declaration to rewrite")
	}

	mode := Infer(cfg, fn)
	Logger().Debug("rewriting declaration",
		zap.String("fn", fn.Name),
		zap.String("abi", cfg.ResolvedABI()),
		zap.Stringer("mode", mode),
		zap.Bool("mangles", cfg.Caps.ManglesSymbol),
		zap.Bool("generics", cfg.Caps.SupportsGenerics))

	switch mode {
	case config.ModeExport:
		return export(cfg, fn), nil
	default:
		return importBlock(cfg, fn), nil
	}
}

// export emits the declaration under the resolved convention with its body
// preserved verbatim.
func export(cfg *config.Config, fn *decl.FuncDecl) *decl.FuncDecl {
	out := &decl.FuncDecl{
		Attrs:    directives(cfg, fn),
		Name:     fn.Name,
		Extern:   cfg.ResolvedABI(),
		Params:   fn.Params,
		Return:   fn.Return,
		Body:     fn.Body,
		Pos:      fn.Pos,
		Pub:      fn.Pub,
		Const:    fn.Const,
		Unsafe:   fn.Unsafe,
		Variadic: fn.Variadic,
	}
	if cfg.Caps.SupportsGenerics {
		out.TypeParams = fn.TypeParams
		out.Where = fn.Where
	}
	if cfg.Caps.ManglesSymbol {
		out.Attrs = append(out.Attrs, decl.Attr{Name: "no_mangle", Raw: "#[no_mangle]"})
	}
	if out.Body == nil {
		// Export of a bodyless stub still needs a definition site.
		out.Body = &decl.Block{}
	}
	return out
}

// importBlock emits a foreign-declaration block holding the bodyless
// signature. A body on the original declaration is discarded, not rejected.
// Const and unsafe qualifiers cannot appear on foreign declarations and are
// dropped; visibility is kept.
func importBlock(cfg *config.Config, fn *decl.FuncDecl) *decl.ExternBlock {
	out := &decl.FuncDecl{
		Attrs:    directives(cfg, fn),
		Name:     fn.Name,
		Params:   fn.Params,
		Return:   fn.Return,
		Pos:      fn.Pos,
		Pub:      fn.Pub,
		Variadic: fn.Variadic,
	}
	if cfg.Caps.SupportsGenerics {
		out.TypeParams = fn.TypeParams
		out.Where = fn.Where
	}
	return &decl.ExternBlock{
		ABI: cfg.ResolvedABI(),
		Fns: []*decl.FuncDecl{out},
	}
}

// directives builds the output attribute list: the original non-configuration
// attributes verbatim, then the feature guard, then the rename directive.
func directives(cfg *config.Config, fn *decl.FuncDecl) []decl.Attr {
	attrs := make([]decl.Attr, 0, len(fn.Attrs)+3)
	attrs = append(attrs, fn.Attrs...)
	if cfg.Feature != nil {
		attrs = append(attrs, decl.Attr{
			Name: "cfg",
			Raw:  fmt.Sprintf("#[cfg(feature = %q)]", *cfg.Feature),
		})
	}
	if cfg.Name != nil {
		attrs = append(attrs, decl.Attr{
			Name: "export_name",
			Raw:  fmt.Sprintf("#[export_name = %q]", *cfg.Name),
		})
	}
	return attrs
}
