package ffigen

import (
	"github.com/wippyai/ffigen/config"
	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/parse"
	"github.com/wippyai/ffigen/rewrite"
)

// Rewrite transforms a single annotated declaration. source must hold one
// function declaration, optionally preceded by attributes; the #[ffi(...)]
// attribute among them is consumed as configuration and the remaining
// attributes are preserved verbatim.
func Rewrite(source string) (string, error) {
	fn, err := parse.Parse(source)
	if err != nil {
		return "", err
	}
	item, err := transform(fn)
	if err != nil {
		return "", err
	}
	return decl.Print(item), nil
}

// transform runs the configuration, inference and synthesis stages on a
// parsed declaration.
func transform(fn *decl.FuncDecl) (decl.Item, error) {
	attr, rest := fn.TakeAttr(config.AttrName)
	cfg, err := config.Parse(attr)
	if err != nil {
		return nil, err
	}
	stripped := *fn
	stripped.Attrs = rest
	return rewrite.Apply(cfg, &stripped)
}
