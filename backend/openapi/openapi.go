// Package openapi renders the schemas of an XDR tree as OpenAPI 3 components.
package openapi

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tokend/xdrgen/ast"
	"github.com/tokend/xdrgen/backend"
	"github.com/tokend/xdrgen/internal/config"
)

const (
	Language = "openapi"
	Version  = "3.0.0"
)

func init() {
	backend.Register(Language, New)
}

type generator struct {
	root    *ast.Namespace
	out     *backend.Output
	opts    backend.Options
	cfg     *config.Config
	schemas *yaml.Node
}

func New(root *ast.Namespace, out *backend.Output, opts backend.Options) backend.Generator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	return &generator{root: root, out: out, opts: opts, cfg: cfg}
}

func FileName(namespace string) string {
	if namespace == "" {
		return "openapi_generated.yaml"
	}
	return namespace + "_openapi_generated.yaml"
}

func (g *generator) Generate() error {
	doc, err := g.Document()
	if err != nil {
		return err
	}
	w, err := g.out.Open(FileName(g.opts.Namespace))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Document builds the whole OpenAPI document without writing it.
func (g *generator) Document() (*yaml.Node, error) {
	g.schemas = mapping()
	set(g.schemas, "Void", set(typed("string"), "nullable", boolean(true)))

	if err := backend.NewWalker(g.opts, g.render).Walk(g.root); err != nil {
		return nil, err
	}

	info := mapping()
	set(info, "title", str(g.cfg.OpenAPI.Title))
	set(info, "version", str(g.cfg.OpenAPI.Version))

	top := mapping()
	top.HeadComment = g.header()
	set(top, "openapi", str(Version))
	set(top, "info", info)
	set(top, "paths", mapping())
	set(top, "components", set(mapping(), "schemas", g.schemas))

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{top}}, nil
}

func (g *generator) header() string {
	var b strings.Builder
	b.WriteString("Documentation is generated from:\n")
	for _, p := range g.out.SourcePaths {
		b.WriteString("  " + p + "\n")
	}
	b.WriteString("DO NOT EDIT or your changes may be overwritten")
	return b.String()
}

func (g *generator) render(d ast.Definition) error {
	switch d := d.(type) {
	case *ast.Struct:
		return g.renderStruct(d)
	case *ast.Enum:
		g.renderEnum(d)
	case *ast.Union:
		return g.renderUnion(d)
	case *ast.Typedef:
		return g.renderTypedef(d)
	}
	// Consts only size other declarations.
	return nil
}

func (g *generator) addSchema(name string, schema *yaml.Node) {
	set(g.schemas, name, schema)
}

// name is the schema name of a definition: its container's schema name
// followed by its own name in PascalCase.
func name(d ast.Definition) string {
	var parent string
	if p := d.ParentDefinition(); p != nil {
		parent = name(p)
	}
	return parent + backend.Camelize(d.Identifier())
}

func describe(schema *yaml.Node, docs []string) {
	if len(docs) > 0 {
		set(schema, "description", text(strings.Join(docs, "\n")))
	}
}

func (g *generator) renderStruct(s *ast.Struct) error {
	schema := typed("object")
	describe(schema, s.Documentation())
	props := mapping()
	for _, m := range s.Members {
		r, err := g.reference(m.Declaration)
		if err != nil {
			return err
		}
		describe(r, m.Documentation())
		set(props, backend.Camelize(m.Name), r)
	}
	set(schema, "properties", props)
	g.addSchema(name(s), schema)
	return nil
}

func (g *generator) renderEnum(e *ast.Enum) {
	var desc strings.Builder
	values := sequence()
	for i, m := range e.Members {
		if i > 0 {
			desc.WriteByte('\n')
		}
		snake := backend.Underscore(m.Name)
		fmt.Fprintf(&desc, "- %q: %d", snake, m.Value)
		for _, doc := range m.Documentation() {
			desc.WriteString("\n  " + doc)
		}
		values.Content = append(values.Content, str(snake))
	}

	schema := mapping()
	docs := e.Documentation()
	if desc.Len() > 0 {
		docs = append(docs, desc.String())
	}
	describe(schema, docs)
	set(schema, "type", str("string"))
	set(schema, "enum", values)
	g.addSchema(name(e), schema)
}

// caseValue is a case label as it appears in JSON: enum members in
// snake_case, numbers verbatim.
func caseValue(c *ast.UnionCase) string {
	if c.Literal {
		return c.Value
	}
	return backend.Underscore(c.Value)
}

func armName(u *ast.Union, c *ast.UnionCase) string {
	return name(u) + "Arm" + backend.Camelize(c.Value)
}

func (g *generator) renderUnion(u *ast.Union) error {
	disc := strings.ToLower(backend.Camelize(u.Discriminant.Name))
	oneOf := sequence()

	for _, a := range u.Arms {
		var armType *yaml.Node
		if !a.Void() {
			r, err := g.reference(a.Declaration)
			if err != nil {
				return err
			}
			armType = r
		}

		if a.Default {
			values := sequence()
			unhandled, err := u.UnhandledMembers()
			if err != nil {
				return err
			}
			for _, m := range unhandled {
				values.Content = append(values.Content, str(backend.Underscore(m.Name)))
			}
			discSchema := typed("string")
			if len(values.Content) > 0 {
				set(discSchema, "enum", values)
			}
			schemaName := name(u) + "ArmDefault"
			g.addSchema(schemaName, g.armSchema(a, disc, discSchema, armType))
			oneOf.Content = append(oneOf.Content, ref(schemaName))
			continue
		}

		for _, c := range a.Cases {
			discSchema := set(typed("string"), "enum", sequence(str(caseValue(c))))
			schemaName := armName(u, c)
			g.addSchema(schemaName, g.armSchema(a, disc, discSchema, armType))
			oneOf.Content = append(oneOf.Content, ref(schemaName))
		}
	}

	schema := typed("object")
	describe(schema, u.Documentation())
	set(schema, "oneOf", oneOf)
	g.addSchema(name(u), schema)
	return nil
}

func (g *generator) armSchema(a *ast.UnionArm, disc string, discSchema, armType *yaml.Node) *yaml.Node {
	schema := typed("object")
	describe(schema, a.Documentation())
	props := set(mapping(), disc, discSchema)
	required := sequence(str(disc))
	if armType != nil {
		armProp := backend.Camelize(a.Name)
		set(props, armProp, armType)
		required.Content = append(required.Content, str(armProp))
	}
	set(schema, "properties", props)
	set(schema, "required", required)
	return schema
}

func (g *generator) renderTypedef(t *ast.Typedef) error {
	schema, err := g.reference(t.Declaration)
	if err != nil {
		return err
	}
	describe(schema, t.Documentation())
	g.addSchema(name(t), schema)
	return nil
}

func (g *generator) size(s ast.Size, pos ast.Position) (int64, error) {
	return s.Resolve(g.root, pos)
}

func (g *generator) reference(d ast.Declaration) (*yaml.Node, error) {
	switch d := d.(type) {
	case *ast.SimpleDecl:
		return g.typeReference(d.Type)
	case *ast.OptionalDecl:
		r, err := g.typeReference(d.Type)
		if err != nil {
			return nil, err
		}
		if get(r, "$ref") != nil {
			r = set(mapping(), "allOf", sequence(r))
		}
		return set(r, "nullable", boolean(true)), nil
	case *ast.ArrayDecl:
		items, err := g.typeReference(d.Type)
		if err != nil {
			return nil, err
		}
		schema := set(typed("array"), "items", items)
		if !d.Size.Unbounded {
			n, err := g.size(d.Size, d.Position)
			if err != nil {
				return nil, err
			}
			if d.Fixed {
				set(schema, "minItems", integer(n))
			}
			set(schema, "maxItems", integer(n))
		}
		return schema, nil
	case *ast.OpaqueDecl:
		return formatted("string", "byte"), nil
	case *ast.StringDecl:
		schema := typed("string")
		if !d.Size().Unbounded {
			n, err := g.size(d.Size(), d.Position)
			if err != nil {
				return nil, err
			}
			set(schema, "maxLength", integer(n))
		}
		return schema, nil
	case *ast.VoidDecl:
		return ref("Void"), nil
	}
	return nil, fmt.Errorf("unknown declaration %T", d)
}

var primitiveRefs = map[string]func() *yaml.Node{
	"long":    func() *yaml.Node { return formatted("integer", "int64") },
	"uint64":  func() *yaml.Node { return formatted("integer", "uint64") },
	"uint32":  func() *yaml.Node { return formatted("integer", "uint32") },
	"integer": func() *yaml.Node { return formatted("integer", "int32") },
	"float":   func() *yaml.Node { return formatted("number", "float") },
	"double":  func() *yaml.Node { return formatted("number", "double") },
	"boolean": func() *yaml.Node { return typed("boolean") },
	"string":  func() *yaml.Node { return typed("string") },
}

func (g *generator) typeReference(t ast.Typespec) (*yaml.Node, error) {
	switch t := t.(type) {
	case *ast.Bool:
		return typed("boolean"), nil
	case *ast.Int:
		return formatted("integer", "int32"), nil
	case *ast.UnsignedInt:
		return formatted("integer", "uint32"), nil
	case *ast.Hyper:
		return formatted("integer", "int64"), nil
	case *ast.UnsignedHyper:
		return formatted("integer", "uint64"), nil
	case *ast.Float:
		return formatted("number", "float"), nil
	case *ast.Double:
		return formatted("number", "double"), nil
	case *ast.Quadruple:
		return nil, &backend.UnsupportedConstructError{Backend: Language, Construct: "quadruple", Position: t.Position}
	case *ast.Opaque:
		return formatted("string", "byte"), nil
	case *ast.String:
		return typed("string"), nil
	case *ast.Simple:
		if t.Nested != nil {
			return ref(name(t.Nested)), nil
		}
		short := t.Name
		if i := strings.LastIndex(short, "::"); i >= 0 {
			short = short[i+2:]
		}
		if t.Primitive() {
			return primitiveRefs[strings.ToLower(short)](), nil
		}
		if g.cfg.IsLessInfoType(short) {
			return formatted("string", backend.Camelize(short)), nil
		}
		def, err := t.Resolve()
		if err != nil {
			return nil, err
		}
		return ref(name(def)), nil
	}
	return nil, fmt.Errorf("unknown type %T", t)
}
