package ast

import (
	"fmt"
	"strings"
)

// Typespec is the closed set of type references a declaration may carry.
type Typespec interface {
	_typespec()
	Kind() string
	Pos() *Position
	// Primitive reports whether backends may render the type inline rather
	// than as a reference to a generated type.
	Primitive() bool
}

type Bool struct{ Position Position }

func (*Bool) _typespec()       {}
func (*Bool) Kind() string     { return "bool" }
func (t *Bool) Pos() *Position { return &t.Position }
func (*Bool) Primitive() bool  { return true }

type Int struct{ Position Position }

func (*Int) _typespec()       {}
func (*Int) Kind() string     { return "int" }
func (t *Int) Pos() *Position { return &t.Position }
func (*Int) Primitive() bool  { return true }

type UnsignedInt struct{ Position Position }

func (*UnsignedInt) _typespec()       {}
func (*UnsignedInt) Kind() string     { return "unsigned int" }
func (t *UnsignedInt) Pos() *Position { return &t.Position }
func (*UnsignedInt) Primitive() bool  { return true }

type Hyper struct{ Position Position }

func (*Hyper) _typespec()       {}
func (*Hyper) Kind() string     { return "hyper" }
func (t *Hyper) Pos() *Position { return &t.Position }
func (*Hyper) Primitive() bool  { return true }

type UnsignedHyper struct{ Position Position }

func (*UnsignedHyper) _typespec()       {}
func (*UnsignedHyper) Kind() string     { return "unsigned hyper" }
func (t *UnsignedHyper) Pos() *Position { return &t.Position }
func (*UnsignedHyper) Primitive() bool  { return true }

type Float struct{ Position Position }

func (*Float) _typespec()       {}
func (*Float) Kind() string     { return "float" }
func (t *Float) Pos() *Position { return &t.Position }
func (*Float) Primitive() bool  { return true }

type Double struct{ Position Position }

func (*Double) _typespec()       {}
func (*Double) Kind() string     { return "double" }
func (t *Double) Pos() *Position { return &t.Position }
func (*Double) Primitive() bool  { return true }

type Quadruple struct{ Position Position }

func (*Quadruple) _typespec()       {}
func (*Quadruple) Kind() string     { return "quadruple" }
func (t *Quadruple) Pos() *Position { return &t.Position }
func (*Quadruple) Primitive() bool  { return true }

type Opaque struct {
	Position Position
	Fixed    bool
	Size     Size
}

func (*Opaque) _typespec()       {}
func (*Opaque) Kind() string     { return "opaque" }
func (t *Opaque) Pos() *Position { return &t.Position }
func (*Opaque) Primitive() bool  { return false }

type String struct {
	Position Position
	Size     Size
}

func (*String) _typespec()       {}
func (*String) Kind() string     { return "string" }
func (t *String) Pos() *Position { return &t.Position }
func (*String) Primitive() bool  { return true }

// Simple is either a reference to a named definition or, when Nested is
// set, an anonymous definition written inline in a member or arm.
type Simple struct {
	Position Position
	// Name is the referenced type name as written, possibly qualified with
	// `::`. For inline definitions it is the declaring member's name.
	Name   string
	Nested Definition
	// Owner is the definition whose declaration carries this typespec.
	Owner Definition

	resolved cell[Definition]
}

func (*Simple) _typespec()       {}
func (*Simple) Kind() string     { return "Simple" }
func (t *Simple) Pos() *Position { return &t.Position }

var primitiveNames = map[string]struct{}{
	"long":    {},
	"uint64":  {},
	"uint32":  {},
	"integer": {},
	"float":   {},
	"double":  {},
	"boolean": {},
	"string":  {},
}

// Primitive matches the referenced name, case-insensitively, against the
// aliases that backends map onto their own scalar types.
func (t *Simple) Primitive() bool {
	if t.Nested != nil {
		return false
	}
	_, ok := primitiveNames[strings.ToLower(t.Name)]
	return ok
}

func (t *Simple) IsNested() bool { return t.Nested != nil }

// Size bounds an array, opaque or string declaration. Exactly one of Value
// (when Ref is empty and Unbounded is false), Ref or Unbounded applies.
type Size struct {
	Value     int64
	Ref       string
	Unbounded bool
}

func LiteralSize(v int64) Size   { return Size{Value: v} }
func NamedSize(name string) Size { return Size{Ref: name} }
func UnboundedSize() Size        { return Size{Unbounded: true} }

func (s Size) String() string {
	switch {
	case s.Unbounded:
		return ""
	case s.Ref != "":
		return s.Ref
	default:
		return fmt.Sprintf("%d", s.Value)
	}
}

// Resolve returns the numeric bound, looking named sizes up as constants
// from root. Unbounded sizes resolve to zero.
func (s Size) Resolve(root *Namespace, pos Position) (int64, error) {
	if s.Unbounded {
		return 0, nil
	}
	if s.Ref == "" {
		return s.Value, nil
	}
	def, err := lookup(root, s.Ref)
	if err != nil {
		return 0, &TypeResolutionError{Name: s.Ref, Position: pos, err: err}
	}
	c, ok := def.(*Const)
	if !ok {
		return 0, &TypeResolutionError{
			Name:     s.Ref,
			Position: pos,
			err:      fmt.Errorf("%s is a %s, not a const", s.Ref, def.Kind()),
		}
	}
	return c.Value, nil
}

// Declaration is the closed set of ways a name is bound to a typespec.
type Declaration interface {
	_declaration()
	Kind() string
	Pos() *Position
	// Typespec is nil for void declarations.
	Typespec() Typespec
}

type SimpleDecl struct {
	Position Position
	Type     Typespec
}

func (*SimpleDecl) _declaration()        {}
func (*SimpleDecl) Kind() string         { return "Simple" }
func (d *SimpleDecl) Pos() *Position     { return &d.Position }
func (d *SimpleDecl) Typespec() Typespec { return d.Type }

type OptionalDecl struct {
	Position Position
	Type     Typespec
}

func (*OptionalDecl) _declaration()        {}
func (*OptionalDecl) Kind() string         { return "Optional" }
func (d *OptionalDecl) Pos() *Position     { return &d.Position }
func (d *OptionalDecl) Typespec() Typespec { return d.Type }

type ArrayDecl struct {
	Position Position
	Type     Typespec
	Fixed    bool
	Size     Size
}

func (*ArrayDecl) _declaration()        {}
func (*ArrayDecl) Kind() string         { return "Array" }
func (d *ArrayDecl) Pos() *Position     { return &d.Position }
func (d *ArrayDecl) Typespec() Typespec { return d.Type }

type OpaqueDecl struct {
	Position Position
	Type     *Opaque
}

func (*OpaqueDecl) _declaration()        {}
func (*OpaqueDecl) Kind() string         { return "Opaque" }
func (d *OpaqueDecl) Pos() *Position     { return &d.Position }
func (d *OpaqueDecl) Typespec() Typespec { return d.Type }
func (d *OpaqueDecl) Fixed() bool        { return d.Type.Fixed }
func (d *OpaqueDecl) Size() Size         { return d.Type.Size }

type StringDecl struct {
	Position Position
	Type     *String
}

func (*StringDecl) _declaration()        {}
func (*StringDecl) Kind() string         { return "String" }
func (d *StringDecl) Pos() *Position     { return &d.Position }
func (d *StringDecl) Typespec() Typespec { return d.Type }
func (d *StringDecl) Size() Size         { return d.Type.Size }

type VoidDecl struct {
	Position Position
}

func (*VoidDecl) _declaration()      {}
func (*VoidDecl) Kind() string       { return "Void" }
func (d *VoidDecl) Pos() *Position   { return &d.Position }
func (*VoidDecl) Typespec() Typespec { return nil }
