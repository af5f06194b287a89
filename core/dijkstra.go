package core

import (
	"container/heap"
	"slices"
)

// MaxHops bounds the hop count a search will explore. Distances are
// stored as uint8 to keep per-query state small; real router-graph
// diameters sit well under 100 hops, and anything past MaxHops is
// reported as unreachable within bound instead of wrapping.
const MaxHops = 254

// Path is an ordered node sequence from source to destination,
// inclusive of both ends. A nil Path means the destination set was not
// reached.
type Path []uint32

// NodeSet is a destination set with O(1) membership.
type NodeSet map[uint32]struct{}

func NewNodeSet(ids ...uint32) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s NodeSet) Contains(id uint32) bool {
	_, ok := s[id]
	return ok
}

type frontierItem struct {
	node uint32
	dist uint8
}

// frontier is a binary min-heap over (dist, node). Ties on distance
// resolve to the lower node id, so equally short paths are returned
// deterministically.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].node < f[j].node
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// ShortestPath runs a unit-weight Dijkstra search from src, stopping at
// the first settled member of dests. If src is itself a destination the
// path is just [src]. A nil result means no destination is reachable
// (or not within MaxHops; see shortestPath for the distinction the
// batch engine reports).
func (g *Graph) ShortestPath(src uint32, dests NodeSet) Path {
	p, _ := g.shortestPath(src, dests)
	return p
}

// shortestPath additionally reports whether the search abandoned any
// frontier expansion because the hop budget ran out, which makes a nil
// path "unreachable within MaxHops" rather than truly disconnected.
func (g *Graph) shortestPath(src uint32, dests NodeSet) (Path, bool) {
	if dests.Contains(src) {
		return Path{src}, false
	}

	// Absent from dist means "not yet reached", i.e. infinite. The
	// graph can hold tens of millions of nodes; only touched ones get
	// an entry.
	dist := map[uint32]uint8{src: 0}
	prev := make(map[uint32]uint32)
	fr := &frontier{{node: src}}
	bounded := false

	for fr.Len() > 0 {
		cur := heap.Pop(fr).(frontierItem)
		if cur.dist > dist[cur.node] {
			continue // stale entry left behind by lazy decrease-key
		}
		if dests.Contains(cur.node) {
			return reconstruct(prev, src, cur.node), false
		}
		if cur.dist >= MaxHops {
			bounded = true
			continue
		}
		nd := cur.dist + 1
		for _, nb := range g.adj[cur.node] {
			if best, seen := dist[nb]; !seen || nd < best {
				dist[nb] = nd
				prev[nb] = cur.node
				heap.Push(fr, frontierItem{node: nb, dist: nd})
			}
		}
	}
	return nil, bounded
}

func reconstruct(prev map[uint32]uint32, src, end uint32) Path {
	path := Path{end}
	for cur := end; cur != src; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}
