package backend

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Output is the directory generated files are written to.
type Output struct {
	Dir         string
	SourcePaths []string

	files []*os.File
}

func NewOutput(dir string, sourcePaths ...string) *Output {
	return &Output{Dir: dir, SourcePaths: sourcePaths}
}

// Open creates name under Dir, along with any missing directories. Files
// stay open until Close.
func (o *Output) Open(name string) (io.Writer, error) {
	path := filepath.Join(o.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	o.files = append(o.files, f)
	return f, nil
}

func (o *Output) Close() error {
	var errs []error
	for _, f := range o.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	o.files = nil
	return errors.Join(errs...)
}
