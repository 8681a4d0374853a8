// Package hierarchy reassembles flat parent/child records into a forest.
// The sidebar menu is the only in-tree caller but the builder is generic so
// any id-addressable record type can use it.
package hierarchy

import "errors"

var ErrCycleDetected = errors.New("hierarchy: cycle detected")

// Node wraps one item together with its depth (roots are depth 1) and its
// ordered children. Nodes are never mutated after Build returns.
type Node[T any] struct {
	Item     T          `json:"item"`
	Depth    int        `json:"depth"`
	Children []*Node[T] `json:"children"`
}

// Build partitions items into a forest. An item is a root when its parent id
// equals the zero value of K. Children keep the relative order they had in
// the input; callers sort by sequence number beforehand. An item whose parent
// id matches no other item is dropped, not reported. A parent/child loop that
// is reachable from a root fails with ErrCycleDetected instead of recursing
// forever.
func Build[T any, K comparable](items []T, id func(T) K, parentID func(T) K) ([]*Node[T], error) {
	var zero K

	children := make(map[K][]T)
	for _, item := range items {
		p := parentID(item)
		children[p] = append(children[p], item)
	}

	onPath := make(map[K]bool)
	return build(children, zero, 1, id, onPath)
}

func build[T any, K comparable](children map[K][]T, parent K, depth int, id func(T) K, onPath map[K]bool) ([]*Node[T], error) {
	items := children[parent]
	if len(items) == 0 {
		return nil, nil
	}

	nodes := make([]*Node[T], 0, len(items))
	for _, item := range items {
		key := id(item)
		if onPath[key] {
			return nil, ErrCycleDetected
		}
		onPath[key] = true
		sub, err := build(children, key, depth+1, id, onPath)
		delete(onPath, key)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &Node[T]{
			Item:     item,
			Depth:    depth,
			Children: sub,
		})
	}
	return nodes, nil
}
