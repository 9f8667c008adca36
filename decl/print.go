package decl

import "strings"

const indent = "    "

// Print renders an item back to dialect source text. The output is ready to
// be substituted at the site of the original declaration.
func Print(item Item) string {
	var b strings.Builder
	switch v := item.(type) {
	case *FuncDecl:
		printFunc(&b, v, "")
	case *ExternBlock:
		printExtern(&b, v)
	}
	return b.String()
}

func printExtern(b *strings.Builder, e *ExternBlock) {
	b.WriteString(`extern "`)
	b.WriteString(e.ABI)
	b.WriteString("\" {\n")
	for _, fn := range e.Fns {
		printFunc(b, fn, indent)
	}
	b.WriteString("}\n")
}

func printFunc(b *strings.Builder, f *FuncDecl, prefix string) {
	for _, a := range f.Attrs {
		b.WriteString(prefix)
		b.WriteString(a.Raw)
		b.WriteByte('\n')
	}

	b.WriteString(prefix)
	if f.Pub {
		b.WriteString("pub ")
	}
	if f.Const {
		b.WriteString("const ")
	}
	if f.Unsafe {
		b.WriteString("unsafe ")
	}
	if f.Extern != "" {
		b.WriteString(`extern "`)
		b.WriteString(f.Extern)
		b.WriteString(`" `)
	}
	b.WriteString("fn ")
	b.WriteString(f.Name)

	if len(f.TypeParams) > 0 {
		b.WriteByte('<')
		for i, tp := range f.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.Name)
			if tp.Bound != "" {
				b.WriteString(": ")
				b.WriteString(tp.Bound)
			}
		}
		b.WriteByte('>')
	}

	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	if f.Variadic {
		if len(f.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteByte(')')

	if f.Return != "" {
		b.WriteString(" -> ")
		b.WriteString(f.Return)
	}

	if f.Where != "" {
		b.WriteString(" where ")
		b.WriteString(f.Where)
	}

	if f.Body == nil {
		b.WriteString(";\n")
		return
	}
	b.WriteString(" {")
	b.WriteString(reindent(f.Body.Raw, prefix))
	b.WriteString("}\n")
}

// reindent shifts a multi-line body so its closing brace lines up with the
// printed declaration. Single-line bodies pass through verbatim.
func reindent(raw, prefix string) string {
	if prefix == "" || !strings.Contains(raw, "\n") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
