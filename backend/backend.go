// Package backend holds what code generators share: the language registry,
// the definition walker with its duplicate policy, and the output directory.
package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tokend/xdrgen/ast"
	"github.com/tokend/xdrgen/internal/config"
	"github.com/tokend/xdrgen/internal/log"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Generator renders a validated tree into its Output.
type Generator interface {
	Generate() error
}

type Options struct {
	// Namespace prefixes generated file names.
	Namespace string
	Log       log.Logger
	Config    *config.Config
	// OnWarning receives skipped duplicate definitions. When nil they are
	// logged at warn level.
	OnWarning func(*DuplicateDefinitionWarning)
}

func (o Options) warn(w *DuplicateDefinitionWarning) {
	if o.OnWarning != nil {
		o.OnWarning(w)
		return
	}
	o.Logger().Warn(w.String(), "position", w.Position)
}

// Logger returns Log, or a logger discarding everything when unset.
func (o Options) Logger() log.Logger {
	if o.Log == nil {
		return log.Discard
	}
	return o.Log
}

type Factory func(root *ast.Namespace, out *Output, opts Options) Generator

var registry = map[string]Factory{}

// Register makes a generator available under lang. It panics if lang is
// registered twice.
func Register(lang string, f Factory) {
	lang = strings.ToLower(lang)
	if _, dup := registry[lang]; dup {
		panic("backend: Register called twice for " + lang)
	}
	registry[lang] = f
}

func ForLanguage(lang string) (Factory, error) {
	f, ok := registry[strings.ToLower(lang)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return f, nil
}

func Languages() []string {
	langs := make([]string, 0, len(registry))
	for l := range registry {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
