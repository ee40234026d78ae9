package xdrgen

import (
	"github.com/tokend/xdrgen/ast"
)

/*
	Validation happens in three steps. The first one checks each construct on
	its own: duplicate struct members, enum members, union arm names and case
	labels. The second one resolves every type reference and named size
	against the tree, nested definitions before their containers. The third
	one checks union discriminants and maps every case label onto the
	discriminant type. A failing first step stops validation, as later steps
	would only repeat its findings.
*/

type posSet map[string]*ast.Position

func Validate(root *ast.Namespace) error {
	if err := validatePhase1(root); err != nil {
		return err
	}
	if err := validatePhase2(root); err != nil {
		return err
	}
	return validatePhase3(root)
}
