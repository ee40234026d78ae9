package ast

import (
	"errors"
	"fmt"
	"strings"
)

var errUnattached = errors.New("type is not attached to a schema")

// FindDefinition searches ns and all of its descendant namespaces for a
// definition named name. Namespaces are not definitions for this purpose.
// When several namespaces declare the same name, the first one in
// declaration order (own definitions before child namespaces) wins.
func (n *Namespace) FindDefinition(name string) (Definition, error) {
	index, _ := n.index.get(func() (map[string]Definition, error) {
		idx := make(map[string]Definition)
		n.collect(idx)
		return idx, nil
	})
	if d, ok := index[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrDefinitionNotFound, name)
}

func (n *Namespace) collect(idx map[string]Definition) {
	for _, d := range n.Definitions {
		if _, ok := idx[d.Identifier()]; !ok {
			idx[d.Identifier()] = d
		}
	}
	for _, ns := range n.Namespaces {
		ns.collect(idx)
	}
}

func (n *Namespace) findQualified(components []string) Definition {
	ns := n
	for _, c := range components[:len(components)-1] {
		if ns = ns.FindNamespace(c); ns == nil {
			return nil
		}
	}
	name := components[len(components)-1]
	for _, d := range ns.Definitions {
		if d.Identifier() == name {
			return d
		}
	}
	return nil
}

// lookup resolves a possibly `::`-qualified name. A qualified name naming an
// existing namespace path from root resolves there; otherwise only its last
// segment is looked up across the whole tree.
func lookup(root *Namespace, name string) (Definition, error) {
	if root == nil {
		return nil, errUnattached
	}
	components := strings.Split(name, "::")
	if len(components) > 1 {
		if d := root.findQualified(components); d != nil {
			return d, nil
		}
	}
	return root.FindDefinition(components[len(components)-1])
}

// Resolve maps the typespec to the definition it names. Inline definitions
// resolve to themselves.
func (t *Simple) Resolve() (Definition, error) {
	return t.resolved.get(func() (Definition, error) {
		if t.Nested != nil {
			return t.Nested, nil
		}
		var root *Namespace
		if t.Owner != nil {
			root = t.Owner.Root()
		}
		def, err := lookup(root, t.Name)
		if err != nil {
			return nil, &TypeResolutionError{Name: t.Name, Position: t.Position, err: err}
		}
		return def, nil
	})
}

// Target follows the alias chain and returns the first definition that is
// not a typedef, or nil when the chain ends at a built-in type.
func (t *Typedef) Target() (Definition, error) {
	return t.target.get(func() (Definition, error) {
		def, _, err := underlying(t)
		return def, err
	})
}

// Underlying returns the typespec at the end of the alias chain.
func (t *Typedef) Underlying() (Typespec, error) {
	_, ts, err := underlying(t)
	return ts, err
}

func underlying(t *Typedef) (Definition, Typespec, error) {
	seen := map[*Typedef]struct{}{t: {}}
	cur := t
	for {
		ts := cur.Declaration.Typespec()
		s, ok := ts.(*Simple)
		if !ok {
			return nil, ts, nil
		}
		def, err := s.Resolve()
		if err != nil {
			return nil, nil, err
		}
		next, ok := def.(*Typedef)
		if !ok {
			return def, ts, nil
		}
		if _, loop := seen[next]; loop {
			return nil, nil, fmt.Errorf("typedef %s is circular at %s", t.Name, t.Position)
		}
		seen[next] = struct{}{}
		cur = next
	}
}

func nestedOf(d Declaration) Definition {
	if d == nil {
		return nil
	}
	if s, ok := d.Typespec().(*Simple); ok {
		return s.Nested
	}
	return nil
}

// NestedDefinitions returns the inline definitions of the struct's members,
// in member order.
func (s *Struct) NestedDefinitions() []Definition {
	defs, _ := s.nested.get(func() ([]Definition, error) {
		defs := make([]Definition, 0)
		for _, m := range s.Members {
			if n := nestedOf(m.Declaration); n != nil {
				defs = append(defs, n)
			}
		}
		return defs, nil
	})
	return defs
}

// NestedDefinitions returns the inline definitions of the union's non-void
// arms, in arm order.
func (u *Union) NestedDefinitions() []Definition {
	defs, _ := u.nested.get(func() ([]Definition, error) {
		defs := make([]Definition, 0)
		for _, a := range u.Arms {
			if a.Void() {
				continue
			}
			if n := nestedOf(a.Declaration); n != nil {
				defs = append(defs, n)
			}
		}
		return defs, nil
	})
	return defs
}

// NestedDefinitions returns the direct inline definitions of structs and
// unions; other definitions have none.
func NestedDefinitions(d Definition) []Definition {
	switch d := d.(type) {
	case *Struct:
		return d.NestedDefinitions()
	case *Union:
		return d.NestedDefinitions()
	}
	return nil
}

// AllNestedDefinitions returns every nested definition under d, each one
// after the definitions nested inside it.
func AllNestedDefinitions(d Definition) []Definition {
	var out []Definition
	for _, n := range NestedDefinitions(d) {
		out = append(out, AllNestedDefinitions(n)...)
		out = append(out, n)
	}
	return out
}

// SynthesizedName concatenates the names of a nested definition's
// containers with its own name. Case is left untouched.
func SynthesizedName(d Definition) string {
	if p := d.ParentDefinition(); p != nil {
		return SynthesizedName(p) + d.Identifier()
	}
	return d.Identifier()
}
