package config

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// newScalar creates an untagged plain scalar so its type is inferred from the value.
func newScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// parse returns the top level mapping of a YAML document, or nil for an empty document.
func parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	top := doc.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return nil, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrConfigParseFailed, "reason", "top level must be a mapping")
	}
	return top, nil
}

// mergeMapping merges src into dst. Nested mappings merge key by key; any other
// value replaces what dst held. Dotted keys such as "server.port" are expanded.
func mergeMapping(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		mergePath(dst, strings.Split(src.Content[i].Value, "."), src.Content[i+1])
	}
}

func mergePath(dst *yaml.Node, path []string, val *yaml.Node) {
	if len(path) > 1 {
		mergePath(childMapping(dst, path[0]), path[1:], val)
		return
	}

	if existing := child(dst, path[0]); existing != nil &&
		existing.Kind == yaml.MappingNode && val.Kind == yaml.MappingNode {
		mergeMapping(existing, val)
		return
	}

	if val.Kind == yaml.MappingNode {
		// Copy so later merges never write into the parsed source document.
		cp := newMapping()
		mergeMapping(cp, val)
		val = cp
	}
	setChild(dst, path[0], val)
}

// setPath replaces the value at path, creating intermediate mappings.
func setPath(root *yaml.Node, path []string, val *yaml.Node) {
	node := root
	for _, key := range path[:len(path)-1] {
		node = childMapping(node, key)
	}
	setChild(node, path[len(path)-1], val)
}

// lookupPath returns the node at path or nil.
func lookupPath(root *yaml.Node, path []string) *yaml.Node {
	node := root
	for _, key := range path {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		node = child(node, key)
	}
	return node
}

func child(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// childMapping returns the mapping under key, replacing any non mapping value.
func childMapping(m *yaml.Node, key string) *yaml.Node {
	if c := child(m, key); c != nil && c.Kind == yaml.MappingNode {
		return c
	}
	c := newMapping()
	setChild(m, key, c)
	return c
}

func setChild(m *yaml.Node, key string, val *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = val
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, val)
}

// leafPaths yields the path of every non mapping value under node.
func leafPaths(node *yaml.Node, prefix []string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		walkLeaves(node, prefix, yield)
	}
}

func walkLeaves(node *yaml.Node, prefix []string, yield func([]string) bool) bool {
	if node.Kind != yaml.MappingNode {
		return yield(slices.Clone(prefix))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		path := append(slices.Clone(prefix), node.Content[i].Value)
		if !walkLeaves(node.Content[i+1], path, yield) {
			return false
		}
	}
	return true
}
