package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes the first YAML document, keeping mapping key order.
// An empty document is null.
func ParseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, invalid(FormatYAML, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Null(), nil
	}
	v, err := fromYAML(root.Content[0], 0, 0)
	if err != nil {
		return Value{}, invalid(FormatYAML, err)
	}
	return v, nil
}

// maxAliasDepth bounds alias expansion so self-referencing anchors terminate.
const maxAliasDepth = 64

func fromYAML(n *yaml.Node, depth, aliases int) (Value, error) {
	if (n.Kind == yaml.SequenceNode || n.Kind == yaml.MappingNode) && depth >= MaxDepth {
		return Value{}, fmt.Errorf("line %d: nesting deeper than %d levels", n.Line, MaxDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(n.Content[0], depth, aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return Value{}, fmt.Errorf("line %d: alias nesting exceeds %d", n.Line, maxAliasDepth)
		}
		return fromYAML(n.Alias, depth, aliases+1)
	case yaml.SequenceNode:
		elems := make([]Value, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAML(c, depth+1, aliases)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.AliasNode && key.Alias != nil {
				key = key.Alias
			}
			if key.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := fromYAML(n.Content[i+1], depth+1, aliases)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key.Value, Value: v})
		}
		return Object(members...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case "!!str", "!!timestamp", "!!binary":
		return String(n.Value), nil
	default:
		if strings.HasPrefix(n.Tag, "!!") {
			return Value{}, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
		}
		return String(n.Value), nil
	}
}
