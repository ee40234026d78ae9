package ast

// Walk calls fn for every definition under ns in emission order: a
// namespace's definitions before its child namespaces, and nested
// definitions before the definition containing them. Namespaces themselves
// are not passed to fn. Walk stops at the first error returned by fn.
func Walk(ns *Namespace, fn func(Definition) error) error {
	for _, d := range ns.Definitions {
		if err := walkDefinition(d, fn); err != nil {
			return err
		}
	}
	for _, child := range ns.Namespaces {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkDefinition(d Definition, fn func(Definition) error) error {
	for _, n := range NestedDefinitions(d) {
		if err := walkDefinition(n, fn); err != nil {
			return err
		}
	}
	return fn(d)
}
