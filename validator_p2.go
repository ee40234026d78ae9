package xdrgen

import (
	"errors"
	"fmt"

	"github.com/tokend/xdrgen/ast"
)

func validatePhase2(root *ast.Namespace) error {
	v := &validatorP2{root: root}

	// Walk yields nested definitions before their containers, so a nested
	// definition's references are checked first.
	_ = ast.Walk(root, func(d ast.Definition) error {
		switch d := d.(type) {
		case *ast.Struct:
			for _, m := range d.Members {
				v.resolveDeclaration(m.Declaration)
			}
		case *ast.Union:
			if d.Discriminant != nil {
				v.resolveDeclaration(d.Discriminant.Declaration)
			}
			for _, a := range d.Arms {
				v.resolveDeclaration(a.Declaration)
			}
		case *ast.Typedef:
			if v.resolveDeclaration(d.Declaration) {
				v.resolveTypedef(d)
			}
		}
		return nil
	})

	return errors.Join(v.errors...)
}

type validatorP2 struct {
	root   *ast.Namespace
	errors []error
}

func (v *validatorP2) Errorf(format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Errorf(format, args...))
}

func (v *validatorP2) add(err error) {
	v.errors = append(v.errors, err)
}

// resolveDeclaration reports whether the declaration's type and size
// resolved.
func (v *validatorP2) resolveDeclaration(d ast.Declaration) bool {
	ok := true
	switch dd := d.(type) {
	case *ast.ArrayDecl:
		ok = v.resolveSize(dd.Size, dd.Position)
	case *ast.OpaqueDecl:
		ok = v.resolveSize(dd.Size(), dd.Position)
	case *ast.StringDecl:
		ok = v.resolveSize(dd.Size(), dd.Position)
	case *ast.VoidDecl:
		return true
	case nil:
		v.Errorf("Bug: missing declaration")
		return false
	}
	return v.resolveType(d.Typespec()) && ok
}

func (v *validatorP2) resolveType(t ast.Typespec) bool {
	switch tt := t.(type) {
	case *ast.Simple:
		if tt.Nested != nil {
			return true
		}
		def, err := tt.Resolve()
		if err != nil {
			v.add(err)
			return false
		}
		switch def.(type) {
		case *ast.Const:
			v.Errorf("Cannot use const %s as a type at %s", tt.Name, tt.Position)
			return false
		}
		return true
	case *ast.Bool, *ast.Int, *ast.UnsignedInt, *ast.Hyper, *ast.UnsignedHyper,
		*ast.Float, *ast.Double, *ast.Quadruple, *ast.Opaque, *ast.String:
		// NOOP
		return true
	default:
		v.Errorf("Bug: Invalid type %T", tt)
		return false
	}
}

func (v *validatorP2) resolveSize(s ast.Size, pos ast.Position) bool {
	if _, err := s.Resolve(v.root, pos); err != nil {
		v.add(err)
		return false
	}
	return true
}

func (v *validatorP2) resolveTypedef(t *ast.Typedef) {
	if _, err := t.Target(); err != nil {
		v.add(err)
	}
}
