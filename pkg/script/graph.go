package script

// Graph is the validated result of parsing a script: every Next and every
// Choice.Target resolves to a node in the graph. It is built once by the
// validator and never mutated afterwards, so it is safe to share across
// goroutines for read-only playback.
type Graph struct {
	nodes map[string]*Node
	order []string
	entry string
}

// NewGraph assembles a Graph from nodes in source order.
// It is intended for the validator; callers elsewhere should obtain graphs
// through parsing so the invariants actually hold.
func NewGraph(nodes []*Node) *Graph {
	g := &Graph{
		nodes: make(map[string]*Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}
	for _, n := range nodes {
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	if len(g.order) > 0 {
		g.entry = g.order[0]
	}
	return g
}

// Get returns the node for the given id, or nil if absent.
func (g *Graph) Get(id string) *Node {
	return g.nodes[id]
}

// Entry returns the id of the first node declared in source order.
func (g *Graph) Entry() string {
	return g.entry
}

// IDs returns all node ids in source declaration order.
// The slice is a copy; mutating it does not affect the graph.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Nodes returns all nodes in source declaration order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}
