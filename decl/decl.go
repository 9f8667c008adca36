package decl

// Pos is a source anchor: 1-based line, 0-based column, 0-based byte offset.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

// Item is a top-level dialect construct: a function declaration or a
// synthesized extern block.
type Item interface {
	isItem()
}

// Attr is one attribute attached to a declaration. Raw holds the verbatim
// source text (including the surrounding #[...]) so non-configuration
// attributes survive synthesis untouched. For attributes of the form
// name(...), Inner holds the verbatim argument text and InnerPos anchors its
// first byte; argument parsing is the configuration layer's job.
type Attr struct {
	Name     string
	Raw      string
	Inner    string
	Pos      Pos
	InnerPos Pos
	HasArgs  bool
}

// TypeParam is one generic parameter with its optional bound, e.g. "T: Ord".
type TypeParam struct {
	Name  string
	Bound string
}

// Param is one ordered value parameter. Type holds the verbatim type text.
type Param struct {
	Name string
	Type string
}

// Block is a declaration body. Raw is the verbatim text between the braces;
// Stmts counts the tokens inside, so emptiness survives formatting.
type Block struct {
	Raw   string
	Stmts int
}

// Empty reports whether the body carries no statements. A nil block (the
// declaration ended with a semicolon) is empty.
func (b *Block) Empty() bool {
	return b == nil || b.Stmts == 0
}

// FuncDecl is one function declaration.
type FuncDecl struct {
	Attrs      []Attr
	Name       string
	Extern     string // calling convention for extern linkage, "" when none
	TypeParams []TypeParam
	Where      string // constraint clause without the "where" keyword
	Params     []Param
	Return     string // verbatim return type, "" when omitted
	Body       *Block // nil when the declaration ends with ';'
	Pos        Pos
	Pub        bool
	Const      bool
	Unsafe     bool
	Variadic   bool
}

func (*FuncDecl) isItem() {}

// Generic reports whether the declaration carries generic parameters or a
// constraint clause.
func (f *FuncDecl) Generic() bool {
	return len(f.TypeParams) > 0 || f.Where != ""
}

// TakeAttr removes the first attribute with the given name and returns it
// along with the remaining attributes in order. The receiver is not modified.
func (f *FuncDecl) TakeAttr(name string) (*Attr, []Attr) {
	for i := range f.Attrs {
		if f.Attrs[i].Name == name {
			rest := make([]Attr, 0, len(f.Attrs)-1)
			rest = append(rest, f.Attrs[:i]...)
			rest = append(rest, f.Attrs[i+1:]...)
			a := f.Attrs[i]
			return &a, rest
		}
	}
	return nil, f.Attrs
}

// ExternBlock is a foreign-declaration block: signatures expected to be
// resolved externally at link time.
type ExternBlock struct {
	ABI string
	Fns []*FuncDecl
}

func (*ExternBlock) isItem() {}
