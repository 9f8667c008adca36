package config

import (
	"fmt"
	"unicode"

	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/errors"
)

// pair is one key = "value" element of the attribute list.
type pair struct {
	Key    string
	Val    string
	KeyPos errors.Pos
	ValPos errors.Pos
}

// scanner walks the attribute's interior text, tracking the absolute source
// position of every consumed rune. base anchors the first byte of the text
// within the original source.
type scanner struct {
	src  string
	i    int // byte index into src
	line int // 1-based, absolute
	col  int // 0-based, absolute
	off  int // 0-based byte offset, absolute
}

func newScanner(src string, base decl.Pos) *scanner {
	return &scanner{src: src, line: base.Line, col: base.Col, off: base.Offset}
}

func (s *scanner) pos() errors.Pos {
	return errors.Pos{Line: s.line, Col: s.col, Offset: s.off}
}

func (s *scanner) eof() bool {
	return s.i >= len(s.src)
}

func (s *scanner) cur() byte {
	return s.src[s.i]
}

func (s *scanner) advance() {
	if s.src[s.i] == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	s.i++
	s.off++
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(rune(s.cur())) {
		s.advance()
	}
}

func malformed(pos errors.Pos, format string, args ...any) *errors.Error {
	return errors.MalformedAttribute(pos, fmt.Sprintf(format, args...))
}

// scanPairs parses `key = "value", key = "value", ...`. Any syntax deviation
// is a malformed_attribute error anchored at the offending byte.
func scanPairs(src string, base decl.Pos) ([]pair, error) {
	s := newScanner(src, base)
	var pairs []pair

	for {
		s.skipSpace()
		if s.eof() {
			return pairs, nil
		}

		p := pair{KeyPos: s.pos()}
		start := s.i
		for !s.eof() && isKeyByte(s.cur()) {
			s.advance()
		}
		if s.i == start {
			return nil, malformed(s.pos(), "expected key, got %q", s.cur())
		}
		p.Key = s.src[start:s.i]

		s.skipSpace()
		if s.eof() || s.cur() != '=' {
			return nil, malformed(s.pos(), "expected '=' after key %q", p.Key)
		}
		s.advance()

		s.skipSpace()
		if s.eof() {
			return nil, malformed(s.pos(), "expected value for key %q", p.Key)
		}
		if s.cur() != '"' {
			return nil, malformed(s.pos(), "value for key %q must be a quoted string", p.Key)
		}
		p.ValPos = s.pos()
		s.advance() // opening quote
		vstart := s.i
		for !s.eof() && s.cur() != '"' {
			if s.cur() == '\\' {
				s.advance()
				if s.eof() {
					break
				}
			}
			s.advance()
		}
		if s.eof() {
			return nil, malformed(p.ValPos, "unterminated string value for key %q", p.Key)
		}
		p.Val = s.src[vstart:s.i]
		s.advance() // closing quote

		pairs = append(pairs, p)

		s.skipSpace()
		if s.eof() {
			return pairs, nil
		}
		if s.cur() != ',' {
			return nil, malformed(s.pos(), "expected ',' between attribute arguments, got %q", s.cur())
		}
		s.advance()
	}
}

func isKeyByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
