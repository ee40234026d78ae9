package xdrgen

import "fmt"

type tokenType int

func (t tokenType) String() string {
	return tokenTypeAsString[t]
}

const (
	tokenTypeInvalid tokenType = iota
	tokenTypeEOF
	tokenTypeComment
	tokenTypeIdentifier
	tokenTypeNumber
	tokenTypeEqual
	tokenTypeLeftCurly
	tokenTypeRightCurly
	tokenTypeLeftParen
	tokenTypeRightParen
	tokenTypeLeftAngled
	tokenTypeRightAngled
	tokenTypeLeftSquare
	tokenTypeRightSquare
	tokenTypeSemi
	tokenTypeComma
	tokenTypeColon
	tokenTypeDoubleColon
	tokenTypeStar
)

var tokenTypeAsString = map[tokenType]string{
	tokenTypeInvalid:     "Invalid",
	tokenTypeEOF:         "EOF",
	tokenTypeComment:     "Comment",
	tokenTypeIdentifier:  "Identifier",
	tokenTypeNumber:      "Number",
	tokenTypeEqual:       "Equal",
	tokenTypeLeftCurly:   "LeftCurly",
	tokenTypeRightCurly:  "RightCurly",
	tokenTypeLeftParen:   "LeftParen",
	tokenTypeRightParen:  "RightParen",
	tokenTypeLeftAngled:  "LeftAngled",
	tokenTypeRightAngled: "RightAngled",
	tokenTypeLeftSquare:  "LeftSquare",
	tokenTypeRightSquare: "RightSquare",
	tokenTypeSemi:        "Semi",
	tokenTypeComma:       "Comma",
	tokenTypeColon:       "Colon",
	tokenTypeDoubleColon: "DoubleColon",
	tokenTypeStar:        "Star",
}

type token struct {
	Type   tokenType
	Value  string
	Pos    int
	Line   int
	Column int
}

func (t token) String() string {
	return fmt.Sprintf("xdrgen.token{Kind: %s, Value: %q, Pos: %d, Line: %d, Column: %d}", t.Type, t.Value, t.Pos, t.Line, t.Column)
}
