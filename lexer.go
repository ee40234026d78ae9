package xdrgen

import "fmt"

type lexer struct {
	data      []rune
	len       int
	pos       int
	startPos  int
	startLine int
	startCol  int

	line   int
	column int

	onError func(error)
	tokens  []token
}

func lexFile(data []byte, onError func(error)) ([]token, []error) {
	var errors []error
	runes := []rune(string(data))
	s := &lexer{
		data:   runes,
		len:    len(runes),
		line:   1,
		column: 1,
		onError: func(err error) {
			errors = append(errors, err)
			if onError != nil {
				onError(err)
			}
		},
	}

	s.scan()

	return s.tokens, errors
}

func (s *lexer) eof() bool {
	return s.pos >= s.len
}

func (s *lexer) peek() rune {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *lexer) peek1() rune {
	if s.pos+1 >= s.len {
		return 0
	}
	return s.data[s.pos+1]
}

func (s *lexer) mark() {
	s.startPos = s.pos
	s.startLine = s.line
	s.startCol = s.column
}

func (s *lexer) marked() string {
	return string(s.data[s.startPos:s.pos])
}

func (s *lexer) advance() rune {
	v := s.data[s.pos]
	s.pos++
	s.column++
	if v == '\n' {
		s.line++
		s.column = 1
	}
	return v
}

func (s *lexer) errorf(msg string, args ...interface{}) {
	s.onError(fmt.Errorf("%s at line %d, column %d", fmt.Sprintf(msg, args...), s.startLine, s.startCol))
}

func (s *lexer) pushToken(t tokenType) {
	s.tokens = append(s.tokens, token{
		Type:   t,
		Value:  s.marked(),
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

func (s *lexer) pushSimple(t tokenType) {
	s.mark()
	s.advance()
	s.pushToken(t)
}

func isAscii(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return isAscii(r) || isDigit(r)
}

var simpleTokens = map[rune]tokenType{
	'=': tokenTypeEqual,
	';': tokenTypeSemi,
	'(': tokenTypeLeftParen,
	')': tokenTypeRightParen,
	'{': tokenTypeLeftCurly,
	'}': tokenTypeRightCurly,
	'<': tokenTypeLeftAngled,
	'>': tokenTypeRightAngled,
	'[': tokenTypeLeftSquare,
	']': tokenTypeRightSquare,
	',': tokenTypeComma,
	'*': tokenTypeStar,
}

func (s *lexer) scan() {
	for !s.eof() {
		p := s.peek()
		switch p {
		case ' ', '\n', '\t', '\r':
			s.advance()
		case '/':
			s.parseComment()
		case '%':
			// rpcgen passthrough lines are copied verbatim by rpcgen and carry
			// no schema information.
			if s.column != 1 {
				s.mark()
				s.errorf("Unexpected '%%'")
				s.advance()
				continue
			}
			s.skipLine()
		case ':':
			s.mark()
			s.advance()
			if s.peek() == ':' {
				s.advance()
				s.pushToken(tokenTypeDoubleColon)
			} else {
				s.pushToken(tokenTypeColon)
			}
		case '-':
			if !isDigit(s.peek1()) {
				s.mark()
				s.errorf("Unexpected '-'")
				s.advance()
				continue
			}
			s.parseNumber()
		default:
			if simple, ok := simpleTokens[p]; ok {
				s.pushSimple(simple)
			} else if isDigit(p) {
				s.parseNumber()
			} else if isAscii(p) {
				s.parseIdentifier()
			} else {
				s.mark()
				s.errorf("Unexpected '%c'", p)
				s.advance()
			}
		}
	}
	s.mark()
	s.tokens = append(s.tokens, token{Type: tokenTypeEOF, Pos: s.startPos, Line: s.line, Column: s.column})
}

func (s *lexer) skipLine() {
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}
}

func (s *lexer) parseComment() {
	s.mark()
	switch s.peek1() {
	case '/':
		s.skipLine()
		s.pushToken(tokenTypeComment)
	case '*':
		s.advance() // consume /
		s.advance() // consume *
		for !s.eof() {
			if s.peek() == '*' && s.peek1() == '/' {
				s.advance()
				s.advance()
				return
			}
			s.advance()
		}
		s.errorf("Unterminated block comment")
	default:
		s.errorf("Unexpected '/'")
		s.advance()
	}
}

func (s *lexer) parseNumber() {
	s.mark()
	if s.peek() == '-' {
		s.advance()
	}
	if s.peek() == '0' && (s.peek1() == 'x' || s.peek1() == 'X') {
		s.advance() // consume 0
		s.advance() // consume x
		for isHex(s.peek()) {
			s.advance()
		}
	} else {
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.pushToken(tokenTypeNumber)
}

func (s *lexer) parseIdentifier() {
	s.mark()
	for isAlpha(s.peek()) {
		s.advance()
	}
	s.pushToken(tokenTypeIdentifier)
}
