package token

import "unicode"

type Type int

const (
	Pound Type = iota
	LBracket
	RBracket
	LParen
	RParen
	LBrace
	RBrace
	LAngle
	RAngle
	Comma
	Colon
	Semi
	Eq
	Arrow
	Ellipsis
	Ident
	String
	Number
	Punct
)

func (t Type) String() string {
	switch t {
	case Pound:
		return "'#'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LAngle:
		return "'<'"
	case RAngle:
		return "'>'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Semi:
		return "';'"
	case Eq:
		return "'='"
	case Arrow:
		return "'->'"
	case Ellipsis:
		return "'...'"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case Punct:
		return "punctuation"
	}
	return "unknown"
}

// Token is one lexical element. Line is 1-based, Col and Offset are 0-based.
// For String tokens, Value holds the text between the quotes; End points one
// past the closing quote. For every other type End points one past the last
// byte of the token.
type Token struct {
	Value  string
	Type   Type
	Line   int
	Col    int
	Offset int
	End    int
}

var singles = map[rune]Type{
	'#': Pound,
	'[': LBracket,
	']': RBracket,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'<': LAngle,
	'>': RAngle,
	',': Comma,
	':': Colon,
	';': Semi,
	'=': Eq,
}

// Tokenize splits dialect source into tokens. Comments (// and /* */) and
// whitespace are skipped; strings keep escape sequences verbatim.
func Tokenize(input string) []Token {
	var tokens []Token
	runes := []rune(input)
	line, col := 1, 0
	off := 0 // byte offset of runes[i]

	// advance moves past runes[i] updating line/col/off
	byteLen := func(r rune) int { return len(string(r)) }

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			col = 0
			off += 1
			continue
		}
		if unicode.IsSpace(r) {
			col++
			off += byteLen(r)
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				off += byteLen(runes[i])
				i++
			}
			if i < len(runes) {
				line++
				col = 0
				off++
			}
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			off += 2
			col += 2
			i += 2
			for i < len(runes) {
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					off += 2
					col += 2
					i++
					break
				}
				if runes[i] == '\n' {
					line++
					col = 0
				} else {
					col++
				}
				off += byteLen(runes[i])
				i++
			}
			continue
		}

		// String literal
		if r == '"' {
			tok := Token{Type: String, Line: line, Col: col, Offset: off}
			start := off + 1
			off++
			col++
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' && i+1 < len(runes) {
					off += byteLen(runes[i])
					col++
					i++
				}
				if runes[i] == '\n' {
					line++
					col = 0
				} else {
					col++
				}
				off += byteLen(runes[i])
				i++
			}
			tok.Value = input[start:off]
			if i < len(runes) { // closing quote
				off++
				col++
			}
			tok.End = off
			tokens = append(tokens, tok)
			continue
		}

		// Arrow
		if r == '-' && i+1 < len(runes) && runes[i+1] == '>' {
			tokens = append(tokens, Token{Value: "->", Type: Arrow, Line: line, Col: col, Offset: off, End: off + 2})
			off += 2
			col += 2
			i++
			continue
		}

		// Ellipsis
		if r == '.' && i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.' {
			tokens = append(tokens, Token{Value: "...", Type: Ellipsis, Line: line, Col: col, Offset: off, End: off + 3})
			off += 3
			col += 3
			i += 2
			continue
		}

		if typ, ok := singles[r]; ok {
			tokens = append(tokens, Token{Value: string(r), Type: typ, Line: line, Col: col, Offset: off, End: off + 1})
			off++
			col++
			continue
		}

		// Number
		if unicode.IsDigit(r) {
			tok := Token{Type: Number, Line: line, Col: col, Offset: off}
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || unicode.IsLetter(c) || c == '_' || c == '.' {
					off += byteLen(c)
					col++
					i++
				} else {
					break
				}
			}
			tok.Value = string(runes[start:i])
			tok.End = off
			tokens = append(tokens, tok)
			i--
			continue
		}

		// Identifier or keyword
		if r == '_' || unicode.IsLetter(r) {
			tok := Token{Type: Ident, Line: line, Col: col, Offset: off}
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
					off += byteLen(c)
					col++
					i++
				} else {
					break
				}
			}
			tok.Value = string(runes[start:i])
			tok.End = off
			tokens = append(tokens, tok)
			i--
			continue
		}

		// Everything else passes through as single-rune punctuation so type
		// and body text can be sliced back out of the source verbatim.
		tokens = append(tokens, Token{Value: string(r), Type: Punct, Line: line, Col: col, Offset: off, End: off + byteLen(r)})
		off += byteLen(r)
		col++
	}

	return tokens
}
