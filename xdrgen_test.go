package xdrgen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokend/xdrgen/ast"
)

func TestFullParse(t *testing.T) {
	fe, err := New("testdata/ledger.x")
	require.NoError(t, err)
	require.NotNil(t, fe)
	require.NoError(t, fe.Run())
	require.Len(t, fe.Paths(), 1)
	require.True(t, filepath.IsAbs(fe.Paths()[0]))

	asset, err := fe.Root().FindDefinition("Asset")
	require.NoError(t, err)
	enum, err := asset.(*ast.Union).DiscriminantType()
	require.NoError(t, err)
	require.Equal(t, "AssetType", enum.Name)
}

func TestNewRejectsDirectories(t *testing.T) {
	_, err := New("testdata")
	require.Error(t, err)

	_, err = New("testdata/missing.x")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = New()
	require.Error(t, err)
}

func TestMultipleFilesShareRoot(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.x")
	b := filepath.Join(dir, "b.x")
	require.NoError(t, os.WriteFile(a, []byte("struct A { B b; };"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("namespace other { struct B { int v; }; }"), 0o644))

	fe, err := New(a, b, a)
	require.NoError(t, err)
	require.NoError(t, fe.Run())
	require.Len(t, fe.Root().Definitions, 1)
	require.Len(t, fe.Root().Namespaces, 1)
}

func TestUndefinedType(t *testing.T) {
	_, err := Compile("test.x", []byte("struct S { Foo x; };"))
	require.Error(t, err)

	var resErr *ast.TypeResolutionError
	require.True(t, errors.As(err, &resErr))
	require.Equal(t, "Foo", resErr.Name)
	require.ErrorIs(t, err, ast.ErrDefinitionNotFound)
	require.Contains(t, err.Error(), "Foo")
	require.Contains(t, err.Error(), "test.x, line 1, column 12")
}

func TestUndefinedSize(t *testing.T) {
	_, err := Compile("test.x", []byte("struct S { int x<MAX>; };"))
	var resErr *ast.TypeResolutionError
	require.True(t, errors.As(err, &resErr))
	require.Equal(t, "MAX", resErr.Name)

	_, err = Compile("test.x", []byte("struct MAX { int v; }; struct S { int x<MAX>; };"))
	require.True(t, errors.As(err, &resErr))
	require.Contains(t, err.Error(), "not a const")
}

func TestCaseResolution(t *testing.T) {
	good := []string{
		"enum Color { RED = 0, GREEN = 1 }; union U switch (Color c) { case RED: int r; case GREEN: void; };",
		// Labels match members ignoring case.
		"enum Color { RED = 0 }; union U switch (Color c) { case red: int r; };",
		// Numeric labels select members by value.
		"enum Color { RED = 0 }; union U switch (Color c) { case 0: int r; };",
		"typedef Color Alias; enum Color { RED = 0 }; union U switch (Alias c) { case RED: void; };",
		"const ONE = 1; union U switch (int v) { case ONE: int x; case 2: void; };",
		"union U switch (bool b) { case 1: int x; case 0: void; };",
		"union U switch (unsigned int v) { case 0: void; default: int x; };",
		"enum E { A = 0 }; union U switch (E e) { };",
	}
	for _, src := range good {
		_, err := Compile("test.x", []byte(src))
		require.NoError(t, err, src)
	}

	bad := []string{
		"enum Color { RED = 0, GREEN = 1 }; union U switch (Color c) { case BLUE: int b; };",
		"enum Color { RED = 0 }; union U switch (Color c) { case 7: int r; };",
		"union U switch (int v) { case TWO: int x; };",
	}
	for _, src := range bad {
		_, err := Compile("test.x", []byte(src))
		var caseErr *ast.CaseResolutionError
		require.True(t, errors.As(err, &caseErr), src)
		require.Equal(t, "U", caseErr.Union)
	}
}

func TestInvalidDiscriminant(t *testing.T) {
	bad := []string{
		"union U switch (string s<>) { default: void; };",
		"union U switch (float f) { default: void; };",
		"struct S { int v; }; union U switch (S s) { default: void; };",
		"typedef double D; union U switch (D d) { default: void; };",
	}
	for _, src := range bad {
		_, err := Compile("test.x", []byte(src))
		var discErr *ast.DiscriminantError
		require.True(t, errors.As(err, &discErr), src)
		require.Equal(t, "U", discErr.Union)
	}
}

func TestPhase1Errors(t *testing.T) {
	cases := []string{
		"struct S { int a; hyper a; };",
		"enum E { A = 0, A = 1 };",
		"enum E { };",
		"union U switch (int v) { case 1: int x; case 2: int x; };",
		"union U switch (int v) { case 1: int v; };",
		"enum E { A = 0 }; union U switch (E e) { case A: void; case a: void; };",
		"struct S { struct { int a; int a; } inner; };",
	}
	for _, src := range cases {
		root, err := ParseSource("test.x", []byte(src))
		require.NoError(t, err, src)
		require.Error(t, validatePhase1(root), src)
	}
}

// Phase 1 failures stop validation before type resolution.
func TestValidateStopsAfterPhase1(t *testing.T) {
	root, err := ParseSource("test.x", []byte("struct S { Missing a; Missing a; };"))
	require.NoError(t, err)
	err = Validate(root)
	require.Error(t, err)
	var resErr *ast.TypeResolutionError
	require.False(t, errors.As(err, &resErr))
}

func TestPhase2Errors(t *testing.T) {
	cases := []string{
		"const N = 1; struct S { N x; };",
		"typedef A B; typedef B A;",
		"struct S { union switch (int v) { case 1: Missing m; } inner; };",
		"namespace a { struct X { int v; }; } struct S { b::Y y; };",
	}
	for _, src := range cases {
		root, err := ParseSource("test.x", []byte(src))
		require.NoError(t, err, src)
		require.Error(t, validatePhase2(root), src)
	}
}

func TestErrorsAreCollected(t *testing.T) {
	_, err := Compile("test.x", []byte("struct S { A a; B b; C c; };"))
	require.Error(t, err)
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	require.Len(t, joined.Unwrap(), 3)
}
