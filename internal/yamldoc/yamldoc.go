// Package yamldoc builds YAML documents as node trees so emitted keys keep
// their declaration order. Marshaling Go maps would sort keys
// alphabetically, which breaks the output contract of the emitters.
package yamldoc

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Scalar encodes an arbitrary value as a YAML node.
func Scalar(v any) *yaml.Node {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		// Values reaching here come out of a successful YAML decode and
		// always re-encode.
		panic(err)
	}
	return n
}

// Mapping returns an empty mapping node; populate it with Entry to keep
// key order.
func Mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

// Entry appends one key/value pair to a mapping node.
func Entry(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, Scalar(key), value)
}

// Sequence returns a sequence node over the given items.
func Sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

// Append adds items to a sequence node.
func Append(seq *yaml.Node, items ...*yaml.Node) {
	seq.Content = append(seq.Content, items...)
}

// Marshal renders a node tree with two-space indentation.
func Marshal(n *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
