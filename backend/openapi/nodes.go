package openapi

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func integer(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func boolean(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

// text renders a multi-line description as a `|-` block.
func text(v string) *yaml.Node {
	n := str(v)
	n.Style = yaml.LiteralStyle
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func set(m *yaml.Node, key string, v *yaml.Node) *yaml.Node {
	m.Content = append(m.Content, str(key), v)
	return m
}

func get(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func typed(t string) *yaml.Node {
	return set(mapping(), "type", str(t))
}

func formatted(t, format string) *yaml.Node {
	return set(typed(t), "format", str(format))
}

func ref(schema string) *yaml.Node {
	return set(mapping(), "$ref", str("#/components/schemas/"+schema))
}
