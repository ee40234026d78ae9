package xdrgen

import (
	"errors"

	"github.com/tokend/xdrgen/ast"
)

func validatePhase3(root *ast.Namespace) error {
	v := &validatorP3{}
	_ = ast.Walk(root, func(d ast.Definition) error {
		if u, ok := d.(*ast.Union); ok {
			v.validateUnion(u)
		}
		return nil
	})
	return errors.Join(v.errors...)
}

type validatorP3 struct {
	errors []error
}

func (p *validatorP3) add(err error) {
	p.errors = append(p.errors, err)
}

func (p *validatorP3) validateUnion(u *ast.Union) {
	if _, err := u.DiscriminantType(); err != nil {
		p.add(err)
		return
	}

	for _, a := range u.NormalArms() {
		for _, c := range a.Cases {
			if _, err := u.ResolvedCase(c); err != nil {
				p.add(err)
			}
		}
	}
}
