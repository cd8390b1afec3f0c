package main

import (
	"strings"
)

// registry holds the declared keys, qualified as namespace:key, in load
// order, with a usage counter each.
type registry struct {
	keys   []string
	counts map[string]int
	nsSep  string
}

func newRegistry(nsSep string) *registry {
	return &registry{counts: make(map[string]int), nsSep: nsSep}
}

func (r *registry) add(namespace, key string) {
	full := namespace + r.nsSep + key
	if _, ok := r.counts[full]; ok {
		return
	}
	r.keys = append(r.keys, full)
	r.counts[full] = 0
}

// mark increments the counter of a declared key. Keys that were never
// declared are ignored and reported as false.
func (r *registry) mark(key string) bool {
	if _, ok := r.counts[key]; !ok {
		return false
	}
	r.counts[key]++
	return true
}

func (r *registry) has(key string) bool {
	_, ok := r.counts[key]
	return ok
}

func (r *registry) len() int {
	return len(r.keys)
}

// keyCount is a declared key and the number of distinct used keys that
// matched it.
type keyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// partition splits the declared keys into used (counter > 0) and unused,
// both in load order.
func (r *registry) partition() (used []keyCount, unused []string) {
	for _, k := range r.keys {
		if c := r.counts[k]; c > 0 {
			used = append(used, keyCount{Key: k, Count: c})
		} else {
			unused = append(unused, k)
		}
	}
	return used, unused
}

// namespaceGroup is a list of keys sharing a namespace.
type namespaceGroup struct {
	Namespace string   `json:"namespace"`
	Keys      []string `json:"keys"`
}

// groupByNamespace splits qualified keys on the first namespace separator
// and groups them by namespace in first-seen order.
func groupByNamespace(keys []string, nsSep string) []namespaceGroup {
	var groups []namespaceGroup
	index := make(map[string]int)
	for _, k := range keys {
		ns, rest, _ := strings.Cut(k, nsSep)
		i, ok := index[ns]
		if !ok {
			i = len(groups)
			index[ns] = i
			groups = append(groups, namespaceGroup{Namespace: ns})
		}
		groups[i].Keys = append(groups[i].Keys, rest)
	}
	return groups
}
