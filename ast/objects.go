package ast

import (
	"fmt"
	"strings"
)

type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s, line %d, column %d", p.Filename, p.Line, p.Column)
}

type Object interface {
	Kind() string
	Pos() *Position
}

// Named is implemented by every definition and member node.
type Named interface {
	Object
	Identifier() string
	Documentation() []string
}

// Definition is the closed set of top-level and nested constructs:
// *Struct, *Enum, *Union, *Typedef, *Const and *Namespace.
type Definition interface {
	Named
	_definition()

	// Namespace returns the namespace the definition is declared in. Nested
	// definitions report the namespace of their outermost container.
	Namespace() *Namespace

	// ParentDefinition is non-nil only for nested definitions.
	ParentDefinition() Definition

	Root() *Namespace
}

const docMarker = "//:"

// documentation keeps the doc-comment lines of a comment block, in source
// order, without the marker and surrounding whitespace.
func documentation(comment []string) []string {
	docs := []string{}
	for _, line := range comment {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, docMarker) {
			continue
		}
		docs = append(docs, strings.TrimSpace(strings.TrimPrefix(line, docMarker)))
	}
	return docs
}

type Namespace struct {
	Position    Position
	Comment     []string
	Name        string
	Namespaces  []*Namespace
	Definitions []Definition
	Parent      *Namespace

	index cell[map[string]Definition]
}

// NewRoot returns the unnamed outermost namespace.
func NewRoot() *Namespace {
	return &Namespace{}
}

func (*Namespace) _definition()                 {}
func (*Namespace) Kind() string                 { return "Namespace" }
func (n *Namespace) Pos() *Position             { return &n.Position }
func (n *Namespace) Identifier() string         { return n.Name }
func (n *Namespace) Documentation() []string    { return documentation(n.Comment) }
func (n *Namespace) Namespace() *Namespace      { return n.Parent }
func (*Namespace) ParentDefinition() Definition { return nil }
func (n *Namespace) IsRoot() bool               { return n.Parent == nil }

func (n *Namespace) Root() *Namespace {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

func (n *Namespace) AppendNamespace(ns *Namespace) {
	ns.Parent = n
	n.Namespaces = append(n.Namespaces, ns)
}

// AppendDefinition adds a top-level definition. Namespaces must be added with
// AppendNamespace.
func (n *Namespace) AppendDefinition(d Definition) {
	switch d := d.(type) {
	case *Struct:
		d.Scope = n
	case *Enum:
		d.Scope = n
	case *Union:
		d.Scope = n
	case *Typedef:
		d.Scope = n
	case *Const:
		d.Scope = n
	case *Namespace:
		n.AppendNamespace(d)
		return
	}
	n.Definitions = append(n.Definitions, d)
}

// FindNamespace returns the direct child namespace with the given name.
func (n *Namespace) FindNamespace(name string) *Namespace {
	for _, ns := range n.Namespaces {
		if ns.Name == name {
			return ns
		}
	}
	return nil
}

type Struct struct {
	Position Position
	Comment  []string
	Name     string
	Members  []*StructMember
	Scope    *Namespace
	Parent   Definition

	nested cell[[]Definition]
}

func (*Struct) _definition()                   {}
func (*Struct) Kind() string                   { return "Struct" }
func (s *Struct) Pos() *Position               { return &s.Position }
func (s *Struct) Identifier() string           { return s.Name }
func (s *Struct) Documentation() []string      { return documentation(s.Comment) }
func (s *Struct) ParentDefinition() Definition { return s.Parent }
func (s *Struct) Namespace() *Namespace        { return scopeOf(s.Scope, s.Parent) }
func (s *Struct) Root() *Namespace             { return rootOf(s) }

func (s *Struct) AppendMember(m *StructMember) {
	m.Struct = s
	bind(m.Declaration, s)
	s.Members = append(s.Members, m)
}

func (s *Struct) MemberByName(name string) *StructMember {
	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

type StructMember struct {
	Position    Position
	Comment     []string
	Name        string
	Declaration Declaration
	Struct      *Struct
}

func (*StructMember) Kind() string              { return "Struct Member" }
func (m *StructMember) Pos() *Position          { return &m.Position }
func (m *StructMember) Identifier() string      { return m.Name }
func (m *StructMember) Documentation() []string { return documentation(m.Comment) }

func (m *StructMember) Optional() bool {
	_, ok := m.Declaration.(*OptionalDecl)
	return ok
}

type Enum struct {
	Position Position
	Comment  []string
	Name     string
	Members  []*EnumMember
	Scope    *Namespace
	Parent   Definition

	byName cell[map[string]*EnumMember]
}

func (*Enum) _definition()                   {}
func (*Enum) Kind() string                   { return "Enum" }
func (e *Enum) Pos() *Position               { return &e.Position }
func (e *Enum) Identifier() string           { return e.Name }
func (e *Enum) Documentation() []string      { return documentation(e.Comment) }
func (e *Enum) ParentDefinition() Definition { return e.Parent }
func (e *Enum) Namespace() *Namespace        { return scopeOf(e.Scope, e.Parent) }
func (e *Enum) Root() *Namespace             { return rootOf(e) }

func (e *Enum) AppendMember(m *EnumMember) {
	m.Enum = e
	e.Members = append(e.Members, m)
}

// MemberByName matches member names case-insensitively; the first declared
// member wins when two names differ only in case.
func (e *Enum) MemberByName(name string) *EnumMember {
	index, _ := e.byName.get(func() (map[string]*EnumMember, error) {
		idx := make(map[string]*EnumMember, len(e.Members))
		for _, m := range e.Members {
			key := strings.ToLower(m.Name)
			if _, ok := idx[key]; !ok {
				idx[key] = m
			}
		}
		return idx, nil
	})
	return index[strings.ToLower(name)]
}

// MemberByValue returns the first member declared with the given value.
func (e *Enum) MemberByValue(v int64) *EnumMember {
	for _, m := range e.Members {
		if m.Value == v {
			return m
		}
	}
	return nil
}

type EnumMember struct {
	Position Position
	Comment  []string
	Name     string
	Value    int64
	Enum     *Enum
}

func (*EnumMember) Kind() string              { return "Enum Member" }
func (m *EnumMember) Pos() *Position          { return &m.Position }
func (m *EnumMember) Identifier() string      { return m.Name }
func (m *EnumMember) Documentation() []string { return documentation(m.Comment) }

type Union struct {
	Position     Position
	Comment      []string
	Name         string
	Discriminant *Discriminant
	Arms         []*UnionArm
	Scope        *Namespace
	Parent       Definition

	nested           cell[[]Definition]
	discriminantType cell[*Enum]
	processed        cell[map[string]struct{}]
}

func (*Union) _definition()                   {}
func (*Union) Kind() string                   { return "Union" }
func (u *Union) Pos() *Position               { return &u.Position }
func (u *Union) Identifier() string           { return u.Name }
func (u *Union) Documentation() []string      { return documentation(u.Comment) }
func (u *Union) ParentDefinition() Definition { return u.Parent }
func (u *Union) Namespace() *Namespace        { return scopeOf(u.Scope, u.Parent) }
func (u *Union) Root() *Namespace             { return rootOf(u) }

func (u *Union) SetDiscriminant(d *Discriminant) {
	d.Union = u
	bind(d.Declaration, u)
	u.Discriminant = d
}

func (u *Union) AppendArm(a *UnionArm) {
	a.Union = u
	for _, c := range a.Cases {
		c.Arm = a
	}
	bind(a.Declaration, u)
	u.Arms = append(u.Arms, a)
}

// Discriminant is the `switch (T name)` declaration of a union.
type Discriminant struct {
	Position    Position
	Name        string
	Declaration Declaration
	Union       *Union
}

func (*Discriminant) Kind() string         { return "Union Discriminant" }
func (d *Discriminant) Pos() *Position     { return &d.Position }
func (d *Discriminant) Identifier() string { return d.Name }
func (*Discriminant) Documentation() []string {
	return []string{}
}

type UnionArm struct {
	Position    Position
	Comment     []string
	Default     bool
	Cases       []*UnionCase
	Name        string
	Declaration Declaration
	Union       *Union
}

func (*UnionArm) Kind() string              { return "Union Arm" }
func (a *UnionArm) Pos() *Position          { return &a.Position }
func (a *UnionArm) Identifier() string      { return a.Name }
func (a *UnionArm) Documentation() []string { return documentation(a.Comment) }

func (a *UnionArm) Void() bool {
	_, ok := a.Declaration.(*VoidDecl)
	return ok
}

type UnionCase struct {
	Position Position
	Comment  []string
	// Value is the label as written: a number or an identifier.
	Value   string
	Literal bool
	Number  int64
	Arm     *UnionArm
}

func (*UnionCase) Kind() string              { return "Union Case" }
func (c *UnionCase) Pos() *Position          { return &c.Position }
func (c *UnionCase) Identifier() string      { return c.Value }
func (c *UnionCase) Documentation() []string { return documentation(c.Comment) }

type Typedef struct {
	Position    Position
	Comment     []string
	Name        string
	Declaration Declaration
	Scope       *Namespace

	target cell[Definition]
}

func (*Typedef) _definition()                 {}
func (*Typedef) Kind() string                 { return "Typedef" }
func (t *Typedef) Pos() *Position             { return &t.Position }
func (t *Typedef) Identifier() string         { return t.Name }
func (t *Typedef) Documentation() []string    { return documentation(t.Comment) }
func (*Typedef) ParentDefinition() Definition { return nil }
func (t *Typedef) Namespace() *Namespace      { return t.Scope }
func (t *Typedef) Root() *Namespace           { return rootOf(t) }

func (t *Typedef) SetDeclaration(d Declaration) {
	bind(d, t)
	t.Declaration = d
}

type Const struct {
	Position Position
	Comment  []string
	Name     string
	Value    int64
	Scope    *Namespace
}

func (*Const) _definition()                 {}
func (*Const) Kind() string                 { return "Const" }
func (c *Const) Pos() *Position             { return &c.Position }
func (c *Const) Identifier() string         { return c.Name }
func (c *Const) Documentation() []string    { return documentation(c.Comment) }
func (*Const) ParentDefinition() Definition { return nil }
func (c *Const) Namespace() *Namespace      { return c.Scope }
func (c *Const) Root() *Namespace           { return rootOf(c) }

func scopeOf(scope *Namespace, parent Definition) *Namespace {
	if parent != nil {
		return parent.Namespace()
	}
	return scope
}

func rootOf(d Definition) *Namespace {
	if ns := d.Namespace(); ns != nil {
		return ns.Root()
	}
	return nil
}

// bind links every typespec reachable from a declaration to the definition
// that owns it, and adopts inline definitions as nested definitions of owner.
func bind(d Declaration, owner Definition) {
	if d == nil {
		return
	}
	s, ok := d.Typespec().(*Simple)
	if !ok {
		return
	}
	s.Owner = owner
	switch n := s.Nested.(type) {
	case *Struct:
		n.Parent = owner
	case *Union:
		n.Parent = owner
	case *Enum:
		n.Parent = owner
	}
}
