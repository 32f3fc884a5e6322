package algo

import "github.com/elektrokombinacija/gridplan/internal/core"

// searchState is a cell, optionally paired with a time step. In plain mode
// T is always 0.
type searchState struct {
	Cell core.Cell
	T    int
}

// searchNode for the frontier heap.
type searchNode struct {
	state  searchState
	g      float64 // Cost so far
	f      float64 // Priority: g for UCS, g + h for A*
	seq    int     // Discovery order, breaks priority ties
	parent *searchNode
	index  int // heap index
}

// frontier implements heap.Interface ordered by (f, seq).
type frontier []*searchNode

func (h frontier) Len() int { return len(h) }
func (h frontier) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h frontier) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *frontier) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *frontier) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// reconstructPath walks parent links and projects out time.
func reconstructPath(node *searchNode) []core.Cell {
	depth := 0
	for n := node; n != nil; n = n.parent {
		depth++
	}
	path := make([]core.Cell, depth)
	for n := node; n != nil; n = n.parent {
		depth--
		path[depth] = n.state.Cell
	}
	return path
}
