package backend

import (
	"fmt"

	"github.com/tokend/xdrgen/ast"
)

// UnsupportedConstructError reports a valid construct the selected backend
// cannot express.
type UnsupportedConstructError struct {
	Backend   string
	Construct string
	Position  ast.Position
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("%s backend does not support %s at %s", e.Backend, e.Construct, e.Position)
}

// DuplicateDefinitionWarning reports a definition skipped because another
// one with the same generated name was already rendered.
type DuplicateDefinitionWarning struct {
	Name     string
	Position ast.Position
}

func (w *DuplicateDefinitionWarning) String() string {
	return fmt.Sprintf("%s is defined twice, skipping", w.Name)
}
