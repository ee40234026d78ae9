package xdrgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tokend/xdrgen/ast"
)

func validatePhase1(root *ast.Namespace) error {
	v := &validatorP1{}
	_ = ast.Walk(root, func(d ast.Definition) error {
		switch d := d.(type) {
		case *ast.Struct:
			v.validateStruct(d)
		case *ast.Enum:
			v.validateEnum(d)
		case *ast.Union:
			v.validateUnion(d)
		}
		return nil
	})
	return errors.Join(v.errors...)
}

type validatorP1 struct {
	errors []error
}

func (p *validatorP1) Errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf(format, args...))
}

func (p *validatorP1) nameClash(name, owner string, pos *ast.Position) {
	p.Errorf("%s is already defined for %s at %s", name, owner, pos)
}

func (p *validatorP1) validateStruct(s *ast.Struct) {
	fields := make(posSet)
	for _, m := range s.Members {
		if ex, ok := fields[m.Name]; ok {
			p.nameClash(m.Name, s.Name, ex)
			continue
		}
		fields[m.Name] = m.Pos()
	}
}

func (p *validatorP1) validateEnum(e *ast.Enum) {
	if len(e.Members) == 0 {
		p.Errorf("Enum %s must have at least one member at %s", e.Name, e.Position)
		return
	}
	members := make(posSet)
	for _, m := range e.Members {
		if ex, ok := members[m.Name]; ok {
			p.nameClash(m.Name, e.Name, ex)
			continue
		}
		members[m.Name] = m.Pos()
	}
}

func (p *validatorP1) validateUnion(u *ast.Union) {
	if u.Discriminant == nil {
		p.Errorf("Union %s has no discriminant at %s", u.Name, u.Position)
		return
	}

	arms := make(posSet)
	arms[u.Discriminant.Name] = u.Discriminant.Pos()
	labels := makeSet[string]()
	for _, a := range u.Arms {
		if a.Name != "" {
			if ex, ok := arms[a.Name]; ok {
				p.nameClash(a.Name, u.Name, ex)
			} else {
				arms[a.Name] = a.Pos()
			}
		}

		// Labels are compared ignoring case, the way arms are matched.
		for _, c := range a.Cases {
			key := strings.ToLower(c.Value)
			if labels.has(key) {
				p.Errorf("duplicate case %s in union %s at %s", c.Value, u.Name, c.Position)
				continue
			}
			labels.add(key)
		}
	}
}
