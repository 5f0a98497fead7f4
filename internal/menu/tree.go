// Package menu turns flat page listings into nested menu trees and assembles
// a site's full menu from its groups.
package menu

import "github.com/alexanderramin/pages/internal/domain"

// BuildForest nests pages under their parents and returns the root nodes.
//
// pages must already be sorted by depth then menu_order. The relative order
// of the input is preserved among roots and within every children slice.
// A page whose parent is not in the input (deleted, in another group, or
// part of a cycle) is left out of the result entirely, along with anything
// hanging beneath it. When two pages share an id, the first one wins and the
// later one is skipped.
//
// BuildForest never returns nil, and every node's Children is non-nil.
func BuildForest(pages []*domain.Page) []*domain.PageTree {
	nodes := make([]domain.PageTree, 0, len(pages))
	index := make(map[int64]int, len(pages))
	for _, p := range pages {
		if p == nil {
			continue
		}
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(nodes)
		nodes = append(nodes, domain.PageTree{Page: p, Children: []*domain.PageTree{}})
	}

	roots := []*domain.PageTree{}
	for i := range nodes {
		node := &nodes[i]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[*node.ParentID]
		if !ok {
			continue
		}
		nodes[parent].Children = append(nodes[parent].Children, node)
	}
	return roots
}

// Walk visits every node of the forest depth-first, parents before children.
// depth is 0 for roots. Returning false from fn skips that node's subtree.
func Walk(forest []*domain.PageTree, fn func(node *domain.PageTree, depth int) bool) {
	var visit func(nodes []*domain.PageTree, depth int)
	visit = func(nodes []*domain.PageTree, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				visit(n.Children, depth+1)
			}
		}
	}
	visit(forest, 0)
}

// Count returns the number of nodes reachable from the roots.
func Count(forest []*domain.PageTree) int {
	n := 0
	Walk(forest, func(*domain.PageTree, int) bool {
		n++
		return true
	})
	return n
}
