package backend

import (
	"strings"

	"github.com/tokend/xdrgen/ast"
)

// Walker visits definitions in emission order: a namespace's definitions
// before its child namespaces, nested definitions before their container.
// A definition whose name was already visited is skipped with a warning; a
// namespace whose path was already visited is skipped silently.
type Walker struct {
	// Name returns the key duplicates are detected by. It defaults to
	// ast.SynthesizedName.
	Name  func(ast.Definition) string
	Visit func(ast.Definition) error

	opts       Options
	seen       map[string]struct{}
	namespaces map[string]struct{}
}

func NewWalker(opts Options, visit func(ast.Definition) error) *Walker {
	return &Walker{
		Name:  ast.SynthesizedName,
		Visit: visit,
		opts:  opts,
	}
}

func (w *Walker) Walk(root *ast.Namespace) error {
	w.seen = map[string]struct{}{}
	w.namespaces = map[string]struct{}{}
	return w.walkNamespace(root, nil)
}

func (w *Walker) walkNamespace(ns *ast.Namespace, path []string) error {
	if !ns.IsRoot() {
		path = append(path, ns.Name)
		key := strings.Join(path, "::")
		if _, ok := w.namespaces[key]; ok {
			return nil
		}
		w.namespaces[key] = struct{}{}
	}
	for _, d := range ns.Definitions {
		if err := w.walkDefinition(d); err != nil {
			return err
		}
	}
	for _, child := range ns.Namespaces {
		if err := w.walkNamespace(child, path); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkDefinition(d ast.Definition) error {
	name := w.Name(d)
	if _, ok := w.seen[name]; ok {
		w.opts.warn(&DuplicateDefinitionWarning{Name: name, Position: *d.Pos()})
		return nil
	}
	for _, n := range ast.NestedDefinitions(d) {
		if err := w.walkDefinition(n); err != nil {
			return err
		}
	}
	w.seen[name] = struct{}{}
	return w.Visit(d)
}
