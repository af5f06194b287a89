package core

import "slices"

// Graph is an undirected router-level topology, keyed by the 32-bit
// interface address of each node. It is built once, before any search
// starts, and is treated as read-only afterwards. Building is not safe
// for concurrent use; reads are.
type Graph struct {
	adj   map[uint32][]uint32
	edges int
}

func NewGraph() *Graph {
	return &Graph{adj: make(map[uint32][]uint32)}
}

// NewGraphSized pre-sizes the adjacency map. ITDK graphs carry tens of
// millions of nodes, so the caller should pass the node count when it
// knows it.
func NewGraphSized(nodes int) *Graph {
	return &Graph{adj: make(map[uint32][]uint32, nodes)}
}

// AddEdge records that u and v share a link. Both directions are
// inserted, missing nodes are created on first reference, and duplicate
// insertions are no-ops. Router graphs have small degrees, so the
// duplicate check is a linear scan of the neighbour slice rather than a
// per-node set.
func (g *Graph) AddEdge(u, v uint32) {
	if u == v {
		// a degenerate self link still creates the node
		if _, ok := g.adj[u]; !ok {
			g.adj[u] = nil
		}
		return
	}
	if g.appendNeighbour(u, v) {
		g.appendNeighbour(v, u)
		g.edges++
	}
}

func (g *Graph) appendNeighbour(u, v uint32) bool {
	n := g.adj[u]
	if slices.Contains(n, v) {
		return false
	}
	g.adj[u] = append(n, v)
	return true
}

// Neighbours returns the adjacency slice of u. The caller must not
// modify it.
func (g *Graph) Neighbours(u uint32) []uint32 {
	return g.adj[u]
}

func (g *Graph) HasNode(u uint32) bool {
	_, ok := g.adj[u]
	return ok
}

func (g *Graph) Degree(u uint32) int {
	return len(g.adj[u])
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}

// Edges returns the number of distinct undirected edges.
func (g *Graph) Edges() int {
	return g.edges
}
