// Package astar implements a weighted, tie-break-biased A* pathfinder.
// Nodes live in one map indexed by coord, with parent stored as a
// coord rather than a pointer, so there's no ownership cycle to worry
// about.
package astar

import (
	"container/heap"

	"github.com/bloeys/tessera/internal/grid"
)

// Passable reports whether a cell can be entered. Weight returns the
// per-cell traversal cost multiplier (1 for an unweighted grid).
type Passable func(c grid.Coord) bool
type Weight func(c grid.Coord) float64

// UnitWeight is the Weight to pass when the grid has no per-cell cost.
func UnitWeight(grid.Coord) float64 { return 1 }

type node struct {
	g, h      float64
	processed bool
	hasParent bool
	parent    grid.Coord
}

// FindPath returns the path from start to end inclusive, ordered
// end-to-start-reversed (i.e. path[0]==end, path[len-1]==start) per
// "appended coord sequence from end back to start" order. It
// returns nil if start==end, either endpoint is blocked, or end is
// unreachable from start.
//
// fast substitutes a Manhattan distance term for the heuristic's
// distance component regardless of the grid's adjacency, trading
// optimality near diagonals for speed.
func FindPath(start, end grid.Coord, w, h int, passable Passable, weight Weight, dist grid.Distance, fast bool) []grid.Coord {
	if start == end {
		return nil
	}
	if !passable(start) || !passable(end) {
		return nil
	}
	if weight == nil {
		weight = UnitWeight
	}
	adj := dist.Adjacency()

	tieBreaker := 1.0 / float64(w*w+h*h)
	heuristic := func(p grid.Coord) float64 {
		var d float64
		if fast {
			d = float64(grid.ManhattanDist(p, end))
		} else {
			d = dist.Calculate(p, end)
		}
		mag := float64(grid.SqDist(p, end))
		return d + mag*tieBreaker
	}

	nodes := make(map[grid.Coord]*node, w*h/4+16)
	getNode := func(c grid.Coord) *node {
		n, ok := nodes[c]
		if !ok {
			n = &node{g: posInf}
			nodes[c] = n
		}
		return n
	}

	startNode := getNode(start)
	startNode.g = 0
	startNode.h = heuristic(start)

	pq := &priorityQueue{{coord: start, f: startNode.h}}
	heap.Init(pq)

	neighborBuf := make([]grid.Coord, 0, 8)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		curNode := nodes[cur.coord]
		if curNode.processed {
			continue
		}
		curNode.processed = true

		if cur.coord == end {
			return reconstruct(nodes, start, end)
		}

		neighborBuf = neighborBuf[:0]
		neighborBuf = adj.Neighbors(cur.coord, neighborBuf)
		for _, n := range neighborBuf {
			if !n.InBounds(w, h) || !passable(n) {
				continue
			}
			nNode := getNode(n)
			if nNode.processed {
				continue
			}

			tentativeG := curNode.g + dist.Calculate(cur.coord, n)*weight(n)
			if tentativeG < nNode.g {
				nNode.g = tentativeG
				nNode.hasParent = true
				nNode.parent = cur.coord
				if nNode.h == 0 {
					nNode.h = heuristic(n)
				}
				heap.Push(pq, pqItem{coord: n, f: tentativeG + nNode.h})
			}
		}
	}

	return nil
}

func reconstruct(nodes map[grid.Coord]*node, start, end grid.Coord) []grid.Coord {
	path := make([]grid.Coord, 0, 16)
	cur := end
	for {
		path = append(path, cur)
		if cur == start {
			break
		}
		n := nodes[cur]
		if !n.hasParent {
			break
		}
		cur = n.parent
	}
	return path
}

const posInf = 1 << 62

type pqItem struct {
	coord grid.Coord
	f     float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
