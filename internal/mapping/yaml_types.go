package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"docmapper/internal/common"
	"docmapper/internal/namespace"
)

// StringOrArray is a list of strings that can be written as a single string.
type StringOrArray []string

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if s.IsSingle() {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// IsSingle returns true if the array has exactly one element.
func (s StringOrArray) IsSingle() bool {
	return common.IsSingle(s)
}

// --- Namespaces YAML methods ---

// UnmarshalYAML reads an alias -> URI mapping, keeping declaration order.
func (n *Namespaces) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: namespaces must be a mapping of alias to URI", node.Line)
	}

	out := make(Namespaces, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var alias, uri string

		if err := node.Content[i].Decode(&alias); err != nil {
			return err
		}

		if err := node.Content[i+1].Decode(&uri); err != nil {
			return err
		}

		out = append(out, namespace.Binding{Alias: alias, URI: uri})
	}

	*n = out

	return nil
}

// MarshalYAML writes the bindings back as an ordered mapping.
func (n Namespaces) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, b := range n {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: b.Alias},
			&yaml.Node{Kind: yaml.ScalarNode, Value: b.URI},
		)
	}

	return node, nil
}
