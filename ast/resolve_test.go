package ast_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokend/xdrgen"
	"github.com/tokend/xdrgen/ast"
)

func compile(t *testing.T, src string) *ast.Namespace {
	t.Helper()
	root, err := xdrgen.Compile("test.x", []byte(src))
	require.NoError(t, err)
	return root
}

func find[T ast.Definition](t *testing.T, root *ast.Namespace, name string) T {
	t.Helper()
	d, err := root.FindDefinition(name)
	require.NoError(t, err)
	v, ok := d.(T)
	require.True(t, ok, "%s is a %s", name, d.Kind())
	return v
}

func memberType(s *ast.Struct, name string) *ast.Simple {
	return s.MemberByName(name).Declaration.Typespec().(*ast.Simple)
}

func TestFindDefinition(t *testing.T) {
	root := compile(t, `
struct Top { int v; };
namespace a {
	struct Shared { int v; };
	namespace inner { struct Deep { int v; }; }
}
namespace b { struct Shared { hyper v; }; }
`)
	top := find[*ast.Struct](t, root, "Top")
	require.Same(t, root, top.Namespace())

	deep := find[*ast.Struct](t, root, "Deep")
	require.Equal(t, "inner", deep.Namespace().Name)
	require.Same(t, root, deep.Root())

	shared := find[*ast.Struct](t, root, "Shared")
	require.Equal(t, "a", shared.Namespace().Name)

	_, err := root.FindDefinition("Nope")
	require.ErrorIs(t, err, ast.ErrDefinitionNotFound)

	// Namespaces are not definitions.
	_, err = root.FindDefinition("inner")
	require.ErrorIs(t, err, ast.ErrDefinitionNotFound)
}

func TestResolve(t *testing.T) {
	root := compile(t, `
enum Color { RED = 0 };
typedef int Count;
struct Point { int x; };
union U switch (Color c) { case RED: void; };
struct S {
	Color color;
	Count count;
	Point point;
	U u;
	struct { int x; } inline;
};
`)
	s := find[*ast.Struct](t, root, "S")
	for member, want := range map[string]string{
		"color": "Color",
		"count": "Count",
		"point": "Point",
		"u":     "U",
	} {
		def, err := memberType(s, member).Resolve()
		require.NoError(t, err)
		require.Equal(t, want, def.Identifier())
	}

	inline := memberType(s, "inline")
	def, err := inline.Resolve()
	require.NoError(t, err)
	require.Same(t, inline.Nested, def)
}

func TestResolveUndefined(t *testing.T) {
	root, err := xdrgen.ParseSource("test.x", []byte("struct S { Foo bar; };"))
	require.NoError(t, err)
	s := root.Definitions[0].(*ast.Struct)

	_, err = memberType(s, "bar").Resolve()
	var resErr *ast.TypeResolutionError
	require.True(t, errors.As(err, &resErr))
	require.Equal(t, "Foo", resErr.Name)
	require.Equal(t, 1, resErr.Position.Line)
}

func TestResolveUnattached(t *testing.T) {
	s := &ast.Simple{Name: "Foo"}
	_, err := s.Resolve()
	var resErr *ast.TypeResolutionError
	require.True(t, errors.As(err, &resErr))
	require.NotErrorIs(t, err, ast.ErrDefinitionNotFound)
}

func TestQualifiedNames(t *testing.T) {
	root := compile(t, `
namespace a { struct X { int v; }; }
namespace b {
	struct X { hyper v; };
	struct Y {
		a::X ax;
		b::X bx;
		X plain;
		c::X fallback;
	};
}
`)
	y := find[*ast.Struct](t, root, "Y")
	ax, err := memberType(y, "ax").Resolve()
	require.NoError(t, err)
	require.Equal(t, "a", ax.Namespace().Name)

	bx, err := memberType(y, "bx").Resolve()
	require.NoError(t, err)
	require.Equal(t, "b", bx.Namespace().Name)

	// Unqualified names take the first match across the whole tree.
	plain, err := memberType(y, "plain").Resolve()
	require.NoError(t, err)
	require.Same(t, ax, plain)

	// An unknown namespace path falls back to the last segment.
	fallback, err := memberType(y, "fallback").Resolve()
	require.NoError(t, err)
	require.Same(t, ax, fallback)
}

func TestPrimitive(t *testing.T) {
	for _, name := range []string{"long", "uint64", "uint32", "integer", "float", "double", "boolean", "string", "Long", "UINT32"} {
		require.True(t, (&ast.Simple{Name: name}).Primitive(), name)
	}
	for _, name := range []string{"int64", "Hash", "AccountID", "ns::long"} {
		require.False(t, (&ast.Simple{Name: name}).Primitive(), name)
	}
	require.False(t, (&ast.Simple{Name: "string", Nested: &ast.Struct{}}).Primitive())

	require.True(t, (&ast.Int{}).Primitive())
	require.True(t, (&ast.String{}).Primitive())
	require.False(t, (&ast.Opaque{}).Primitive())
}

func TestTypedefTarget(t *testing.T) {
	root := compile(t, `
struct Key { int v; };
typedef Key Alias;
typedef Alias Alias2;
typedef unsigned hyper uint64;
typedef uint64 Amount;
`)
	alias2 := find[*ast.Typedef](t, root, "Alias2")
	target, err := alias2.Target()
	require.NoError(t, err)
	require.Equal(t, "Key", target.Identifier())

	amount := find[*ast.Typedef](t, root, "Amount")
	target, err = amount.Target()
	require.NoError(t, err)
	require.Nil(t, target)
	ts, err := amount.Underlying()
	require.NoError(t, err)
	require.Equal(t, "unsigned hyper", ts.Kind())
}

func TestNestedDefinitions(t *testing.T) {
	root := compile(t, `
struct Foo { int v; };
struct Plain { int a; Foo foo; };
struct Outer {
	enum { RED = 0 } Color;
	Foo foo;
	struct { int x; int y; } point;
};
union U switch (int v) {
case 0:
	void;
case 1:
	union switch (int w) { case 0: struct { int z; } deep; } inner;
};
`)
	plain := find[*ast.Struct](t, root, "Plain")
	require.NotNil(t, plain.NestedDefinitions())
	require.Empty(t, plain.NestedDefinitions())

	outer := find[*ast.Struct](t, root, "Outer")
	nested := outer.NestedDefinitions()
	require.Len(t, nested, 2)
	require.Equal(t, "Enum", nested[0].Kind())
	require.Equal(t, "OuterColor", ast.SynthesizedName(nested[0]))
	require.Equal(t, "Outerpoint", ast.SynthesizedName(nested[1]))
	require.Same(t, outer, nested[1].ParentDefinition())

	u := find[*ast.Union](t, root, "U")
	require.Len(t, u.NestedDefinitions(), 1)
	all := ast.AllNestedDefinitions(u)
	require.Len(t, all, 2)
	require.Equal(t, "Uinnerdeep", ast.SynthesizedName(all[0]))
	require.Equal(t, "Uinner", ast.SynthesizedName(all[1]))

	require.Nil(t, ast.NestedDefinitions(nested[0]))
}

func TestMemoizedQueriesAreStable(t *testing.T) {
	root := compile(t, `
enum Color { RED = 0, GREEN = 1 };
struct S { Color c; struct { int x; } p; };
union U switch (Color type) { case RED: int r; case GREEN: void; };
`)
	s := find[*ast.Struct](t, root, "S")
	c := memberType(s, "c")
	first, err := c.Resolve()
	require.NoError(t, err)
	second, err := c.Resolve()
	require.NoError(t, err)
	require.Same(t, first, second)

	n1, n2 := s.NestedDefinitions(), s.NestedDefinitions()
	require.Same(t, &n1[0], &n2[0])

	u := find[*ast.Union](t, root, "U")
	d1, err := u.DiscriminantType()
	require.NoError(t, err)
	d2, err := u.DiscriminantType()
	require.NoError(t, err)
	require.Same(t, d1, d2)

	enum := find[*ast.Enum](t, root, "Color")
	require.Same(t, enum.MemberByName("red"), enum.MemberByName("RED"))

	d, err := root.FindDefinition("S")
	require.NoError(t, err)
	require.Same(t, s, d)
}

func TestConcurrentQueries(t *testing.T) {
	root := compile(t, `
enum Color { RED = 0, GREEN = 1 };
union U switch (Color type) { case RED: int r; default: void; };
struct S { Color c; U u; };
`)
	s := find[*ast.Struct](t, root, "S")
	u := find[*ast.Union](t, root, "U")

	var wg sync.WaitGroup
	results := make([]ast.Definition, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			def, err := memberType(s, "u").Resolve()
			if err == nil {
				results[i] = def
			}
			_, _ = u.UnhandledMembers()
			_ = u.CaseProcessed("red")
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		require.Same(t, u, r)
	}
}

func TestSizeResolve(t *testing.T) {
	root := compile(t, "const MAX = 64; struct S { int a<MAX>; int b[3]; int c<>; };")
	s := find[*ast.Struct](t, root, "S")
	for member, want := range map[string]int64{"a": 64, "b": 3, "c": 0} {
		size := s.MemberByName(member).Declaration.(*ast.ArrayDecl).Size
		got, err := size.Resolve(root, ast.Position{})
		require.NoError(t, err)
		require.Equal(t, want, got, member)
	}
	require.Equal(t, "MAX", ast.NamedSize("MAX").String())
	require.Equal(t, "3", ast.LiteralSize(3).String())
	require.Equal(t, "", ast.UnboundedSize().String())
}
