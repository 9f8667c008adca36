package ffigen

import (
	"strings"

	"github.com/wippyai/ffigen/config"
	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/errors"
	"github.com/wippyai/ffigen/parse"
	"github.com/wippyai/ffigen/rewrite"
)

// Binding is one annotated declaration found in a buffer. Start and End are
// byte offsets covering the declaration and its attributes; Line is the
// 1-based line of Start. Fn has the configuration attribute already removed.
type Binding struct {
	Fn    *decl.FuncDecl
	Cfg   *config.Config
	Start int
	End   int
	Line  int
}

// Mode reports the resolved transformation mode of the binding.
func (b *Binding) Mode() config.Mode {
	return rewrite.Infer(b.Cfg, b.Fn)
}

// Rewrite synthesizes the binding's output declaration.
func (b *Binding) Rewrite() (decl.Item, error) {
	return rewrite.Apply(b.Cfg, b.Fn)
}

// Scan finds every #[ffi(...)]-annotated declaration in src. Text outside
// annotated declarations is not parsed, so a buffer may freely mix dialect
// declarations with anything else. Errors carry positions in src coordinates.
func Scan(src string) ([]Binding, error) {
	var bindings []Binding

	for i := 0; i < len(src); {
		idx := indexAttr(src[i:])
		if idx < 0 {
			break
		}
		start := attrRunStart(src, i+idx)

		baseLine := strings.Count(src[:start], "\n")
		fn, end, err := parse.Next(src[start:])
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.Shift(baseLine, start)
			}
			return nil, err
		}

		attr, rest := fn.TakeAttr(config.AttrName)
		cfg, err := config.Parse(attr)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.Shift(baseLine, start)
			}
			return nil, err
		}

		stripped := *fn
		stripped.Attrs = rest
		bindings = append(bindings, Binding{
			Fn:    &stripped,
			Cfg:   cfg,
			Start: start,
			End:   start + end,
			Line:  baseLine + 1,
		})
		i = start + end
	}

	return bindings, nil
}

// RewriteFile rewrites every annotated declaration in src in place, leaving
// all surrounding text byte-for-byte untouched. On any failure no output is
// produced.
func RewriteFile(src []byte) ([]byte, error) {
	s := string(src)
	bindings, err := Scan(s)
	if err != nil {
		return nil, err
	}
	if len(bindings) == 0 {
		return src, nil
	}

	var out strings.Builder
	prev := 0
	for _, b := range bindings {
		out.WriteString(s[prev:b.Start])
		item, err := b.Rewrite()
		if err != nil {
			return nil, err
		}
		printed := decl.Print(item)
		end := b.End
		// Print appends a trailing newline; swallow the original one so the
		// surrounding spacing is preserved.
		if end < len(s) && s[end] == '\n' {
			end++
		}
		out.WriteString(printed)
		prev = end
	}
	out.WriteString(s[prev:])
	return []byte(out.String()), nil
}

// indexAttr locates the next #[ffi...] attribute start.
func indexAttr(s string) int {
	for from := 0; ; {
		i := strings.Index(s[from:], "#[ffi")
		if i < 0 {
			return -1
		}
		i += from
		rest := s[i+len("#[ffi"):]
		if strings.HasPrefix(rest, "(") || strings.HasPrefix(rest, "]") {
			return i
		}
		from = i + len("#[ffi")
	}
}

// attrRunStart walks back from the #[ffi...] attribute over any contiguous
// run of preceding attribute lines, so attributes written above the
// configuration are parsed as part of the same declaration.
func attrRunStart(s string, pos int) int {
	start := lineStart(s, pos)
	if strings.TrimSpace(s[start:pos]) != "" {
		// Code before the attribute on the same line: start at the attribute.
		return pos
	}
	for start > 0 {
		prev := lineStart(s, start-1)
		line := strings.TrimSpace(s[prev : start-1])
		if !strings.HasPrefix(line, "#[") || !strings.HasSuffix(line, "]") {
			break
		}
		start = prev
	}
	return start
}

func lineStart(s string, pos int) int {
	if i := strings.LastIndexByte(s[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}
