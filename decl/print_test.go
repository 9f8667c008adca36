package decl

import "testing"

func TestPrintFunc(t *testing.T) {
	tests := []struct {
		name string
		fn   *FuncDecl
		want string
	}{
		{
			"bodyless",
			&FuncDecl{Name: "f"},
			"fn f();\n",
		},
		{
			"qualifiers_and_extern",
			&FuncDecl{Name: "f", Pub: true, Const: true, Unsafe: true, Extern: "C",
				Body: &Block{}},
			"pub const unsafe extern \"C\" fn f() {}\n",
		},
		{
			"params_return",
			&FuncDecl{Name: "add", Extern: "C",
				Params: []Param{{Name: "a", Type: "i32"}, {Name: "b", Type: "i32"}},
				Return: "i32",
				Body:   &Block{Raw: " a + b ", Stmts: 3}},
			"extern \"C\" fn add(a: i32, b: i32) -> i32 { a + b }\n",
		},
		{
			"variadic",
			&FuncDecl{Name: "printf", Params: []Param{{Name: "fmt", Type: "str"}},
				Variadic: true},
			"fn printf(fmt: str, ...);\n",
		},
		{
			"generics_where",
			&FuncDecl{Name: "max", Extern: "Rust",
				TypeParams: []TypeParam{{Name: "T", Bound: "PartialOrd"}, {Name: "U"}},
				Params:     []Param{{Name: "a", Type: "T"}},
				Return:     "T",
				Where:      "T: Copy",
				Body:       &Block{Raw: " a ", Stmts: 1}},
			"extern \"Rust\" fn max<T: PartialOrd, U>(a: T) -> T where T: Copy { a }\n",
		},
		{
			"attributes_first",
			&FuncDecl{Name: "f",
				Attrs: []Attr{
					{Name: "export_name", Raw: `#[export_name = "x"]`},
					{Name: "no_mangle", Raw: "#[no_mangle]"},
				},
				Extern: "C", Pub: true, Body: &Block{}},
			"#[export_name = \"x\"]\n#[no_mangle]\npub extern \"C\" fn f() {}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Print(tt.fn)
			if got != tt.want {
				t.Errorf("Print() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPrintExtern(t *testing.T) {
	block := &ExternBlock{
		ABI: "stdcall",
		Fns: []*FuncDecl{{
			Name:   "external_routine",
			Params: []Param{{Name: "code", Type: "i32"}},
		}},
	}
	want := "extern \"stdcall\" {\n    fn external_routine(code: i32);\n}\n"
	if got := Print(block); got != want {
		t.Errorf("Print() =\n%q\nwant\n%q", got, want)
	}
}

func TestPrintMultilineBody(t *testing.T) {
	fn := &FuncDecl{
		Name:   "f",
		Extern: "C",
		Body:   &Block{Raw: "\n    let x = 1;\n", Stmts: 4},
	}
	want := "extern \"C\" fn f() {\n    let x = 1;\n}\n"
	if got := Print(fn); got != want {
		t.Errorf("Print() =\n%q\nwant\n%q", got, want)
	}
}

func TestBlockEmpty(t *testing.T) {
	var b *Block
	if !b.Empty() {
		t.Error("nil block must be empty")
	}
	if !(&Block{Raw: "  \n  "}).Empty() {
		t.Error("whitespace-only block must be empty")
	}
	if (&Block{Raw: "return;", Stmts: 2}).Empty() {
		t.Error("block with statements must not be empty")
	}
}
