package xdrgen

import (
	"fmt"
	"strconv"

	"github.com/tokend/xdrgen/ast"
)

var reservedNames = map[string]struct{}{
	"bool":      {},
	"case":      {},
	"const":     {},
	"default":   {},
	"double":    {},
	"enum":      {},
	"float":     {},
	"hyper":     {},
	"int":       {},
	"namespace": {},
	"opaque":    {},
	"quadruple": {},
	"string":    {},
	"struct":    {},
	"switch":    {},
	"typedef":   {},
	"union":     {},
	"unsigned":  {},
	"void":      {},
}

// parse appends the definitions found in tokens to root.
func parse(filename string, tokens []token, root *ast.Namespace, onError func(error)) []error {
	var errors []error
	p := parser{
		tokens:   tokens,
		length:   len(tokens),
		filename: filename,
		root:     root,
		onError: func(err error) {
			errors = append(errors, err)
			if onError != nil {
				onError(err)
			}
		},
	}
	p.parseBody(root, false)
	return errors
}

type parser struct {
	tokens   []token
	pos      int
	length   int
	filename string
	root     *ast.Namespace
	comments []token
	onError  func(error)
}

func (p *parser) tokenPos(t *token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   t.Pos,
		Line:     t.Line,
		Column:   t.Column,
	}
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.onError(fmt.Errorf(format, args...))
}

func (p *parser) errorAt(t *token, format string, args ...interface{}) {
	pos := p.tokenPos(t)
	p.errorf("%s at %s", fmt.Sprintf(format, args...), pos)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < p.length-1 {
		p.pos++
	}
	return t
}

func (p *parser) eof() bool {
	return p.pos >= p.length || p.peek().Type == tokenTypeEOF
}

func (p *parser) expect(expected tokenType) *token {
	pk := p.peek()
	if pk.Type != expected {
		p.errorAt(&pk, "Expected %s but got %s", expected, pk.Type)
		return nil
	}
	p.advance()
	return &pk
}

func (p *parser) expectKeyword(keyword string) *token {
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier || pk.Value != keyword {
		p.errorAt(&pk, "Expected %s but got %q", keyword, pk.Value)
		return nil
	}
	p.advance()
	return &pk
}

func (p *parser) expectName() *token {
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return nil
	}
	if _, ok := reservedNames[name.Value]; ok {
		p.errorAt(name, "Unexpected %s, expected identifier", name.Value)
		return nil
	}
	return name
}

func (p *parser) consumeUntilSemiOrLinebreak() {
	currentLine := p.peek().Line
	for !p.eof() {
		if p.peek().Type == tokenTypeSemi {
			p.advance()
			break
		}
		if p.peek().Line != currentLine {
			break
		}
		p.advance()
	}
}

func (p *parser) parseComments() {
	p.comments = []token{}
	var lastComment token
	for p.peek().Type == tokenTypeComment {
		// A comment sharing its line with the previous token trails it and
		// documents nothing that follows.
		if p.pos > 0 && lastComment.Type == tokenTypeInvalid {
			if prev := p.tokens[p.pos-1]; prev.Type != tokenTypeComment && prev.Line == p.peek().Line {
				p.advance()
				continue
			}
		}
		if lastComment.Type != tokenTypeInvalid && p.peek().Line-lastComment.Line != 1 {
			p.comments = []token{}
		}
		lastComment = p.advance()
		p.comments = append(p.comments, lastComment)
	}
}

// takeComments returns the pending comment block if it ends on the line just
// above line.
func (p *parser) takeComments(line int) []string {
	c := p.comments
	p.comments = []token{}
	if len(c) == 0 || c[len(c)-1].Line+1 != line {
		return nil
	}
	return mapFn(c, func(t token) string { return t.Value })
}

func mapFn[T any, C []T, U any](c C, fn func(T) U) []U {
	result := make([]U, len(c))
	for i, u := range c {
		result[i] = fn(u)
	}
	return result
}

func (p *parser) parseBody(ns *ast.Namespace, nested bool) {
	for !p.eof() {
		pk := p.peek()
		switch pk.Type {
		case tokenTypeComment:
			p.parseComments()
		case tokenTypeIdentifier:
			p.parseDefinition(ns)
		case tokenTypeSemi:
			p.advance()
		case tokenTypeRightCurly:
			if nested {
				return
			}
			p.errorAt(&pk, "Unexpected }")
			p.advance()
		default:
			p.errorAt(&pk, "Unexpected %s; expected comment, namespace, const, typedef, enum, struct, or union", pk.Type)
			p.consumeUntilSemiOrLinebreak()
		}
	}
}

func (p *parser) parseDefinition(ns *ast.Namespace) {
	pk := p.peek()
	switch pk.Value {
	case "namespace":
		p.parseNamespace(ns)
	case "const":
		if c := p.parseConst(); c != nil {
			ns.AppendDefinition(c)
		}
	case "typedef":
		if t := p.parseTypedef(); t != nil {
			ns.AppendDefinition(t)
		}
	case "enum":
		if e := p.parseEnum(); e != nil {
			ns.AppendDefinition(e)
		}
	case "struct":
		if s := p.parseStruct(); s != nil {
			ns.AppendDefinition(s)
		}
	case "union":
		if u := p.parseUnion(); u != nil {
			ns.AppendDefinition(u)
		}
	default:
		p.errorAt(&pk, "Unexpected %s; expected namespace, const, typedef, enum, struct, or union", pk.Value)
		p.consumeUntilSemiOrLinebreak()
	}
}

func (p *parser) parseNamespace(parent *ast.Namespace) {
	tk := p.advance() // Consume "namespace"
	ns := &ast.Namespace{
		Position: p.tokenPos(&tk),
		Comment:  p.takeComments(tk.Line),
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}
	ns.Name = name.Value
	parent.AppendNamespace(ns)

	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}
	p.parseBody(ns, true)
	p.expect(tokenTypeRightCurly)
	if p.peek().Type == tokenTypeSemi {
		p.advance()
	}
}

func (p *parser) parseConst() *ast.Const {
	tk := p.advance() // Consume "const"
	c := &ast.Const{
		Position: p.tokenPos(&tk),
		Comment:  p.takeComments(tk.Line),
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	c.Name = name.Value
	if p.expect(tokenTypeEqual) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	v, ok := p.parseValue(nil)
	if !ok {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	c.Value = v
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return c
}

// parseValue reads a number or the name of a previously declared constant or
// member of the enum being parsed.
func (p *parser) parseValue(enum *ast.Enum) (int64, bool) {
	pk := p.advance()
	switch pk.Type {
	case tokenTypeNumber:
		v, err := strconv.ParseInt(pk.Value, 0, 64)
		if err != nil {
			p.errorAt(&pk, "failed parsing value %s: %s", pk.Value, err)
			return 0, false
		}
		return v, true
	case tokenTypeIdentifier:
		if enum != nil {
			for _, m := range enum.Members {
				if m.Name == pk.Value {
					return m.Value, true
				}
			}
		}
		if c := findConst(p.root, pk.Value); c != nil {
			return c.Value, true
		}
		p.errorAt(&pk, "Undefined constant %s", pk.Value)
		return 0, false
	default:
		p.errorAt(&pk, "Unexpected %s, expected number or constant", pk.Type)
		return 0, false
	}
}

// findConst scans the tree built so far. FindDefinition is not used while
// parsing because its index is computed once.
func findConst(ns *ast.Namespace, name string) *ast.Const {
	for _, d := range ns.Definitions {
		if c, ok := d.(*ast.Const); ok && c.Name == name {
			return c
		}
	}
	for _, child := range ns.Namespaces {
		if c := findConst(child, name); c != nil {
			return c
		}
	}
	return nil
}

func (p *parser) parseTypedef() *ast.Typedef {
	tk := p.advance() // Consume "typedef"
	t := &ast.Typedef{
		Position: p.tokenPos(&tk),
		Comment:  p.takeComments(tk.Line),
	}
	name, decl := p.parseDeclaration()
	if decl == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if _, ok := decl.(*ast.VoidDecl); ok {
		p.errorAt(&tk, "Invalid typedef: void cannot be aliased")
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if s, ok := decl.Typespec().(*ast.Simple); ok && s.Nested != nil {
		p.errorAt(&tk, "Invalid typedef %s: inline definitions cannot be aliased", name)
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	t.Name = name
	t.SetDeclaration(decl)
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return t
}

func (p *parser) parseEnum() *ast.Enum {
	tk := p.advance() // Consume "enum"
	e := &ast.Enum{
		Position: p.tokenPos(&tk),
		Comment:  p.takeComments(tk.Line),
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	e.Name = name.Value
	p.parseEnumBody(e)
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return e
}

func (p *parser) parseEnumBody(e *ast.Enum) {
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}

loop:
	for !p.eof() {
		pk := p.peek()
		switch pk.Type {
		case tokenTypeComment:
			p.parseComments()
		case tokenTypeIdentifier:
			if m := p.parseEnumMember(e); m != nil {
				e.AppendMember(m)
			}
			switch p.peek().Type {
			case tokenTypeComma:
				p.advance()
			case tokenTypeRightCurly, tokenTypeComment:
			default:
				next := p.peek()
				p.errorAt(&next, "Unexpected %s, expected , or }", next.Type)
				p.consumeUntilSemiOrLinebreak()
			}
		case tokenTypeRightCurly:
			break loop
		default:
			p.errorAt(&pk, "Unexpected %s, expected identifier", pk.Type)
			p.consumeUntilSemiOrLinebreak()
		}
	}

	p.expect(tokenTypeRightCurly)
}

func (p *parser) parseEnumMember(e *ast.Enum) *ast.EnumMember {
	start := p.peek()
	member := &ast.EnumMember{
		Position: p.tokenPos(&start),
		Comment:  p.takeComments(start.Line),
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	member.Name = name.Value
	if p.expect(tokenTypeEqual) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	v, ok := p.parseValue(e)
	if !ok {
		return nil
	}
	member.Value = v
	return member
}

func (p *parser) parseStruct() *ast.Struct {
	tk := p.advance() // Consume "struct"
	s := &ast.Struct{
		Position: p.tokenPos(&tk),
		Comment:  p.takeComments(tk.Line),
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	s.Name = name.Value
	p.parseStructBody(s)
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return s
}

func (p *parser) parseStructBody(s *ast.Struct) {
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}

loop:
	for !p.eof() {
		pk := p.peek()
		switch pk.Type {
		case tokenTypeComment:
			p.parseComments()
		case tokenTypeIdentifier:
			if m := p.parseStructMember(); m != nil {
				s.AppendMember(m)
			}
		case tokenTypeRightCurly:
			break loop
		default:
			p.errorAt(&pk, "Unexpected %s, expected declaration", pk.Type)
			p.consumeUntilSemiOrLinebreak()
		}
	}

	p.expect(tokenTypeRightCurly)
}

func (p *parser) parseStructMember() *ast.StructMember {
	start := p.peek()
	comments := p.takeComments(start.Line)
	name, decl := p.parseDeclaration()
	if decl == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if _, ok := decl.(*ast.VoidDecl); ok {
		p.errorAt(&start, "Invalid struct member: void is only allowed in union arms")
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return &ast.StructMember{
		Position:    p.tokenPos(&start),
		Comment:     comments,
		Name:        name,
		Declaration: decl,
	}
}

func (p *parser) parseUnion() *ast.Union {
	tk := p.advance() // Consume "union"
	u := &ast.Union{
		Position: p.tokenPos(&tk),
		Comment:  p.takeComments(tk.Line),
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	u.Name = name.Value
	p.parseUnionBody(u)
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return u
}

func (p *parser) parseUnionBody(u *ast.Union) {
	if p.expectKeyword("switch") == nil || p.expect(tokenTypeLeftParen) == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}
	start := p.peek()
	name, decl := p.parseDeclaration()
	if decl == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}
	u.SetDiscriminant(&ast.Discriminant{
		Position:    p.tokenPos(&start),
		Name:        name,
		Declaration: decl,
	})
	if p.expect(tokenTypeRightParen) == nil || p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}

loop:
	for !p.eof() {
		pk := p.peek()
		switch {
		case pk.Type == tokenTypeComment:
			p.parseComments()
		case pk.Type == tokenTypeRightCurly:
			break loop
		case pk.Type == tokenTypeIdentifier && (pk.Value == "case" || pk.Value == "default"):
			p.parseUnionArm(u)
		default:
			p.errorAt(&pk, "Unexpected %s, expected case or default", pk.Value)
			p.consumeUntilSemiOrLinebreak()
		}
	}

	p.expect(tokenTypeRightCurly)
}

func (p *parser) parseUnionArm(u *ast.Union) {
	start := p.peek()
	arm := &ast.UnionArm{
		Position: p.tokenPos(&start),
		Comment:  p.takeComments(start.Line),
	}

	for p.peek().Type == tokenTypeIdentifier && p.peek().Value == "case" {
		caseTok := p.advance()
		c := &ast.UnionCase{Position: p.tokenPos(&caseTok)}
		v := p.advance()
		switch v.Type {
		case tokenTypeNumber:
			n, err := strconv.ParseInt(v.Value, 0, 64)
			if err != nil {
				p.errorAt(&v, "failed parsing case value %s: %s", v.Value, err)
			}
			c.Value, c.Literal, c.Number = v.Value, true, n
		case tokenTypeIdentifier:
			c.Value = v.Value
		default:
			p.errorAt(&v, "Unexpected %s, expected case value", v.Type)
			p.consumeUntilSemiOrLinebreak()
			return
		}
		if p.expect(tokenTypeColon) == nil {
			p.consumeUntilSemiOrLinebreak()
			return
		}
		arm.Cases = append(arm.Cases, c)
		if p.peek().Type == tokenTypeComment {
			p.parseComments()
		}
	}

	duplicateDefault := false
	if len(arm.Cases) == 0 {
		p.advance() // Consume "default"
		if p.expect(tokenTypeColon) == nil {
			p.consumeUntilSemiOrLinebreak()
			return
		}
		arm.Default = true
		if u.DefaultArm() != nil {
			p.errorAt(&start, "Union %s has more than one default arm", u.Name)
			duplicateDefault = true
		}
		if p.peek().Type == tokenTypeComment {
			p.parseComments()
		}
	}

	declStart := p.peek()
	if docs := p.takeComments(declStart.Line); arm.Comment == nil {
		arm.Comment = docs
	}
	name, decl := p.parseDeclaration()
	if decl == nil {
		p.consumeUntilSemiOrLinebreak()
		return
	}
	arm.Name = name
	arm.Declaration = decl
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	if !duplicateDefault {
		u.AppendArm(arm)
	}
}

// parseDeclaration reads `void`, `opaque name[n]`, `opaque name<n>`,
// `string name<n>`, `T name`, `T *name`, `T name[n]` or `T name<n>`.
func (p *parser) parseDeclaration() (string, ast.Declaration) {
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier {
		p.errorAt(&pk, "Unexpected %s, expected type", pk.Type)
		return "", nil
	}
	pos := p.tokenPos(&pk)

	switch pk.Value {
	case "void":
		p.advance()
		return "", &ast.VoidDecl{Position: pos}
	case "opaque":
		p.advance()
		name := p.expectName()
		if name == nil {
			return "", nil
		}
		opaque := &ast.Opaque{Position: pos}
		switch p.peek().Type {
		case tokenTypeLeftSquare:
			p.advance()
			opaque.Fixed = true
			opaque.Size = p.parseSize(false)
			if p.expect(tokenTypeRightSquare) == nil {
				return "", nil
			}
		case tokenTypeLeftAngled:
			p.advance()
			opaque.Size = p.parseSize(true)
			if p.expect(tokenTypeRightAngled) == nil {
				return "", nil
			}
		default:
			p.errorAt(name, "opaque %s requires a [size] or <size>", name.Value)
			return "", nil
		}
		return name.Value, &ast.OpaqueDecl{Position: pos, Type: opaque}
	case "string":
		p.advance()
		name := p.expectName()
		if name == nil {
			return "", nil
		}
		if p.expect(tokenTypeLeftAngled) == nil {
			return "", nil
		}
		size := p.parseSize(true)
		if p.expect(tokenTypeRightAngled) == nil {
			return "", nil
		}
		return name.Value, &ast.StringDecl{Position: pos, Type: &ast.String{Position: pos, Size: size}}
	}

	ts := p.parseTypeSpecifier()
	if ts == nil {
		return "", nil
	}
	optional := false
	if p.peek().Type == tokenTypeStar {
		p.advance()
		optional = true
	}
	name := p.expectName()
	if name == nil {
		return "", nil
	}
	if s, ok := ts.(*ast.Simple); ok && s.Nested != nil {
		s.Name = name.Value
		setNestedName(s.Nested, name.Value)
	}
	if optional {
		return name.Value, &ast.OptionalDecl{Position: pos, Type: ts}
	}

	switch p.peek().Type {
	case tokenTypeLeftSquare:
		p.advance()
		size := p.parseSize(false)
		if p.expect(tokenTypeRightSquare) == nil {
			return "", nil
		}
		return name.Value, &ast.ArrayDecl{Position: pos, Type: ts, Fixed: true, Size: size}
	case tokenTypeLeftAngled:
		p.advance()
		size := p.parseSize(true)
		if p.expect(tokenTypeRightAngled) == nil {
			return "", nil
		}
		return name.Value, &ast.ArrayDecl{Position: pos, Type: ts, Size: size}
	}
	return name.Value, &ast.SimpleDecl{Position: pos, Type: ts}
}

func setNestedName(d ast.Definition, name string) {
	switch d := d.(type) {
	case *ast.Struct:
		d.Name = name
	case *ast.Union:
		d.Name = name
	case *ast.Enum:
		d.Name = name
	}
}

func (p *parser) parseSize(allowEmpty bool) ast.Size {
	pk := p.peek()
	switch pk.Type {
	case tokenTypeNumber:
		p.advance()
		v, err := strconv.ParseInt(pk.Value, 0, 64)
		if err != nil || v < 0 {
			p.errorAt(&pk, "Invalid size %s", pk.Value)
		}
		return ast.LiteralSize(v)
	case tokenTypeIdentifier:
		p.advance()
		return ast.NamedSize(pk.Value)
	default:
		if !allowEmpty {
			p.errorAt(&pk, "Unexpected %s, expected size", pk.Type)
		}
		return ast.UnboundedSize()
	}
}

func (p *parser) parseTypeSpecifier() ast.Typespec {
	tk := p.advance()
	pos := p.tokenPos(&tk)

	switch tk.Value {
	case "int":
		return &ast.Int{Position: pos}
	case "unsigned":
		if next := p.peek(); next.Type == tokenTypeIdentifier {
			switch next.Value {
			case "int":
				p.advance()
			case "hyper":
				p.advance()
				return &ast.UnsignedHyper{Position: pos}
			}
		}
		return &ast.UnsignedInt{Position: pos}
	case "hyper":
		return &ast.Hyper{Position: pos}
	case "float":
		return &ast.Float{Position: pos}
	case "double":
		return &ast.Double{Position: pos}
	case "quadruple":
		return &ast.Quadruple{Position: pos}
	case "bool":
		return &ast.Bool{Position: pos}
	case "struct", "union", "enum":
		// `struct Foo x;` refers to Foo by name.
		if next := p.peek(); next.Type == tokenTypeIdentifier && next.Value != "switch" {
			return p.parseTypeName()
		}
		return &ast.Simple{Position: pos, Nested: p.parseNested(tk)}
	}

	if _, ok := reservedNames[tk.Value]; ok {
		p.errorAt(&tk, "Unexpected %s, expected type", tk.Value)
		return nil
	}
	p.pos--
	return p.parseTypeName()
}

func (p *parser) parseTypeName() ast.Typespec {
	tk := p.advance()
	name := tk.Value
	for p.peek().Type == tokenTypeDoubleColon {
		p.advance()
		next := p.expect(tokenTypeIdentifier)
		if next == nil {
			return nil
		}
		name += "::" + next.Value
	}
	return &ast.Simple{Position: p.tokenPos(&tk), Name: name}
}

func (p *parser) parseNested(tk token) ast.Definition {
	pos := p.tokenPos(&tk)
	switch tk.Value {
	case "struct":
		s := &ast.Struct{Position: pos}
		p.parseStructBody(s)
		return s
	case "union":
		u := &ast.Union{Position: pos}
		p.parseUnionBody(u)
		return u
	default:
		e := &ast.Enum{Position: pos}
		p.parseEnumBody(e)
		return e
	}
}
