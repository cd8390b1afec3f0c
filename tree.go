package main

import (
	"sort"
)

// keyTree is one language's nested translation tree. Fields keep the order
// in which they were declared in the resource file.
type keyTree []treeField

// treeField is a single field of a keyTree. Value is a string leaf, a nested
// keyTree, or nil for any other value kind (numbers, arrays, computed
// expressions), which flattening ignores.
type treeField struct {
	Name  string
	Value any
}

// flattenTree returns the dotted paths of every string leaf in tree.
func flattenTree(tree keyTree, prefix, sep string) []string {
	var keys []string
	for _, f := range tree {
		key := f.Name
		if prefix != "" {
			key = prefix + sep + f.Name
		}
		switch val := f.Value.(type) {
		case string:
			keys = append(keys, key)
		case keyTree:
			keys = append(keys, flattenTree(val, key, sep)...)
		}
	}
	return keys
}

// sortedKeys returns sorted keys of a set.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
