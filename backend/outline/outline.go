// Package outline writes a human readable tree of the definitions.
package outline

import (
	"github.com/tokend/xdrgen/ast"
	"github.com/tokend/xdrgen/backend"
)

const Language = "outline"

func init() {
	backend.Register(Language, New)
}

type generator struct {
	root *ast.Namespace
	out  *backend.Output
	opts backend.Options
}

func New(root *ast.Namespace, out *backend.Output, opts backend.Options) backend.Generator {
	return &generator{root: root, out: out, opts: opts}
}

func FileName(namespace string) string {
	if namespace == "" {
		return "outline.txt"
	}
	return namespace + "_outline.txt"
}

func (g *generator) Generate() error {
	count := 0
	walker := backend.NewWalker(g.opts, func(ast.Definition) error {
		count++
		return nil
	})
	if err := walker.Walk(g.root); err != nil {
		return err
	}
	g.opts.Logger().Debug("writing outline", "definitions", count)

	w, err := g.out.Open(FileName(g.opts.Namespace))
	if err != nil {
		return err
	}
	return ast.Fprint(w, g.root)
}
