package main

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseYAMLResource decodes a JSON or YAML resource document of the form
// {namespace: ..., <lang>: {...}, ...}. JSON is read by the same decoder
// since every JSON document is valid YAML.
func parseYAMLResource(data []byte) (keyTree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level value is not a mapping")
	}
	return yamlNodeTree(root), nil
}

// yamlNodeTree converts a mapping node into a keyTree, preserving key order.
func yamlNodeTree(node *yaml.Node) keyTree {
	tree := make(keyTree, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valNode := resolveAlias(node.Content[i+1])
		field := treeField{Name: keyNode.Value}
		switch {
		case valNode.Kind == yaml.MappingNode:
			field.Value = yamlNodeTree(valNode)
		case valNode.Kind == yaml.ScalarNode && valNode.ShortTag() == "!!str":
			field.Value = valNode.Value
		}
		tree = append(tree, field)
	}
	return tree
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
