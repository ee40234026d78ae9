package ast

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

func Print(root *Namespace) {
	p := printer{}
	p.print(root)
	fmt.Println(p.b.String())
}

func Fprint(w io.Writer, root *Namespace) error {
	p := printer{}
	p.print(root)
	_, err := w.Write(p.b.Bytes())
	return err
}

type printer struct {
	b   bytes.Buffer
	lvl int
}

func (p *printer) inc() func() {
	p.lvl++
	return p.dec
}

func (p *printer) dec() { p.lvl-- }

func (p *printer) printf(format string, args ...interface{}) {
	p.b.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat("  ", p.lvl), fmt.Sprintf(format, args...)))
}

func (p *printer) print(ns *Namespace) {
	if ns.IsRoot() {
		p.printf("Root:")
	} else {
		p.printf("Namespace: %s", ns.Name)
	}
	defer p.inc()()
	p.printDocs(ns.Documentation())
	if len(ns.Definitions) > 0 {
		p.printf("Definitions:")
		p.printDefinitions(ns.Definitions)
	}
	for _, child := range ns.Namespaces {
		p.print(child)
	}
}

func (p *printer) printDefinitions(defs []Definition) {
	defer p.inc()()
	for _, d := range defs {
		p.printDefinition(d)
	}
}

func (p *printer) printDefinition(d Definition) {
	p.printf("- %s: %s", d.Kind(), SynthesizedName(d))
	defer p.inc()()
	p.printDocs(d.Documentation())
	switch d := d.(type) {
	case *Struct:
		p.printMembers(d.Members)
	case *Enum:
		p.printEnumMembers(d.Members)
	case *Union:
		p.printUnion(d)
	case *Typedef:
		p.printDeclaration(d.Declaration)
	case *Const:
		p.printf("Value: %d", d.Value)
	}
	if nested := NestedDefinitions(d); len(nested) > 0 {
		p.printf("Nested:")
		p.printDefinitions(nested)
	}
}

func (p *printer) printDocs(docs []string) {
	if len(docs) == 0 {
		return
	}
	p.printf("Documentation:")
	{
		p.inc() // 2
		for _, v := range docs {
			p.printf("- %s", v)
		}
		p.dec() // 2
	}
}

func (p *printer) printMembers(members []*StructMember) {
	p.printf("Members:")
	defer p.inc()()
	for _, m := range members {
		p.printf("- %s", m.Name)
		p.inc()
		p.printDeclaration(m.Declaration)
		p.printDocs(m.Documentation())
		p.dec()
	}
}

func (p *printer) printEnumMembers(members []*EnumMember) {
	p.printf("Members:")
	defer p.inc()()
	for _, m := range members {
		p.printf("- %s: %d", m.Name, m.Value)
		p.inc()
		p.printDocs(m.Documentation())
		p.dec()
	}
}

func (p *printer) printUnion(u *Union) {
	if u.Discriminant != nil {
		p.printf("Discriminant: %s", u.Discriminant.Name)
		p.inc()
		p.printDeclaration(u.Discriminant.Declaration)
		p.dec()
	}
	p.printf("Arms:")
	defer p.inc()()
	for _, a := range u.Arms {
		if a.Default {
			p.printf("- default")
		} else {
			labels := make([]string, 0, len(a.Cases))
			for _, c := range a.Cases {
				labels = append(labels, c.Value)
			}
			p.printf("- case %s", strings.Join(labels, ", "))
		}
		p.inc()
		if a.Name != "" {
			p.printf("Name: %s", a.Name)
		}
		p.printDeclaration(a.Declaration)
		p.printDocs(a.Documentation())
		p.dec()
	}
}

func (p *printer) printDeclaration(d Declaration) {
	switch dd := d.(type) {
	case *SimpleDecl:
		p.printType(dd.Type)
	case *OptionalDecl:
		p.printf("Kind: Optional")
		p.inc()
		p.printType(dd.Type)
		p.dec()
	case *ArrayDecl:
		if dd.Fixed {
			p.printf("Kind: Array[%s]", dd.Size)
		} else {
			p.printf("Kind: Array<%s>", dd.Size)
		}
		p.inc()
		p.printType(dd.Type)
		p.dec()
	case *OpaqueDecl:
		if dd.Fixed() {
			p.printf("Kind: opaque[%s]", dd.Size())
		} else {
			p.printf("Kind: opaque<%s>", dd.Size())
		}
	case *StringDecl:
		p.printf("Kind: string<%s>", dd.Size())
	case *VoidDecl:
		p.printf("Kind: void")
	}
}

func (p *printer) printType(t Typespec) {
	switch tt := t.(type) {
	case *Simple:
		if tt.Nested != nil {
			p.printf("Kind: %s (nested %s)", SynthesizedName(tt.Nested), tt.Nested.Kind())
		} else {
			p.printf("Kind: %s", tt.Name)
		}
	case nil:
		p.printf("Kind: void")
	default:
		p.printf("Kind: %s", tt.Kind())
	}
}
