package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentation(t *testing.T) {
	require.Equal(t, []string{}, documentation(nil))
	require.Equal(t, []string{}, documentation([]string{"// plain", "/* block */"}))
	require.Equal(t, []string{"first", "second line", ""}, documentation([]string{
		"//: first",
		"// skipped",
		"  //:   second line  ",
		"//:",
	}))
}

func TestCellComputesOnce(t *testing.T) {
	var c cell[int]
	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.get(fn)
		require.NoError(t, err)
		require.Equal(t, 42, v)
	}
	require.Equal(t, 1, calls)
}

func TestAppendSetsBackLinks(t *testing.T) {
	root := NewRoot()
	ns := &Namespace{Name: "n"}
	root.AppendDefinition(ns)
	require.Same(t, root, ns.Parent)
	require.Len(t, root.Namespaces, 1)
	require.Empty(t, root.Definitions)
	require.Same(t, ns, root.FindNamespace("n"))

	inner := &Enum{Name: "inner"}
	ref := &Simple{Name: "Other"}
	s := &Struct{Name: "S"}
	s.AppendMember(&StructMember{Name: "inner", Declaration: &SimpleDecl{Type: &Simple{Name: "inner", Nested: inner}}})
	s.AppendMember(&StructMember{Name: "other", Declaration: &OptionalDecl{Type: ref}})
	ns.AppendDefinition(s)

	require.Same(t, s, s.Members[0].Struct)
	require.Same(t, s, inner.Parent)
	require.Same(t, ns, inner.Namespace())
	require.Same(t, root, inner.Root())
	require.Same(t, s, ref.Owner)
	require.True(t, s.Members[1].Optional())
	require.Equal(t, "Sinner", SynthesizedName(inner))
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "a.x", Line: 3, Column: 7}
	require.Equal(t, "a.x, line 3, column 7", p.String())
}
