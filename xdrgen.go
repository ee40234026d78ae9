package xdrgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tokend/xdrgen/ast"
)

type Frontend interface {
	// Run parses every input into a single tree and validates it.
	Run() error
	Root() *ast.Namespace
	Paths() []string
}

type frontend struct {
	paths          []string
	processedPaths map[string]struct{}
	root           *ast.Namespace
}

func New(paths ...string) (Frontend, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files")
	}
	f := &frontend{
		processedPaths: map[string]struct{}{},
		root:           ast.NewRoot(),
	}
	for _, p := range paths {
		stat, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if stat.IsDir() {
			return nil, fmt.Errorf("%s: is a directory", p)
		}
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		f.paths = append(f.paths, absPath)
	}
	return f, nil
}

func (f *frontend) Root() *ast.Namespace { return f.root }

func (f *frontend) Paths() []string { return f.paths }

func (f *frontend) Run() error {
	for _, p := range f.paths {
		if _, ok := f.processedPaths[p]; ok {
			continue
		}
		if err := f.parse(p); err != nil {
			return err
		}
	}
	return Validate(f.root)
}

func (f *frontend) parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := parseInto(path, data, f.root); err != nil {
		return err
	}
	f.processedPaths[path] = struct{}{}
	return nil
}

func parseInto(filename string, data []byte, root *ast.Namespace) error {
	tokens, errs := lexFile(data, nil)
	if errs != nil {
		return fmt.Errorf("%s: %w", filename, errors.Join(errs...))
	}
	if errs = parse(filename, tokens, root, nil); errs != nil {
		return errors.Join(errs...)
	}
	return nil
}

// ParseSource parses src into a new tree without validating it.
func ParseSource(filename string, src []byte) (*ast.Namespace, error) {
	root := ast.NewRoot()
	if err := parseInto(filename, src, root); err != nil {
		return nil, err
	}
	return root, nil
}

// Compile parses and validates src.
func Compile(filename string, src []byte) (*ast.Namespace, error) {
	root, err := ParseSource(filename, src)
	if err != nil {
		return nil, err
	}
	if err = Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}
