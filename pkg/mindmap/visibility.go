package mindmap

// ComputeHidden derives the set of node IDs hidden by the collapsed set.
//
// The traversal is a breadth-first walk that starts from every collapsed ID
// and follows edges strictly source → target. Every node reached that way is
// hidden, and the walk continues from hidden nodes transitively. Collapsed
// nodes themselves are not hidden by their own membership; only their
// descendants vanish.
//
// The function is pure and idempotent: it holds no state and feeding its own
// output back (as additional collapsed IDs) yields the same hidden set.
// Collapsed IDs without a matching node contribute nothing.
func ComputeHidden(collapsed []string, edges []Edge) map[string]struct{} {
	out := make(map[string][]string, len(edges))
	for _, e := range edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}

	hidden := make(map[string]struct{})
	queue := append([]string(nil), collapsed...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range out[id] {
			if _, seen := hidden[child]; seen {
				continue
			}
			hidden[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return hidden
}

// Hidden recomputes the hidden set from the store's current collapsed set
// and edges. Derived state is always rebuilt from scratch; the store never
// caches it.
func (s *Store) Hidden() map[string]struct{} {
	return ComputeHidden(s.Collapsed(), s.Edges())
}

// VisibleNodes returns copies of every node that should be rendered: all
// nodes not in the hidden set. A collapsed node remains visible itself, only
// its descendants disappear. The order is not guaranteed.
func (s *Store) VisibleNodes() []Node {
	hidden := s.Hidden()
	nodes := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if _, ok := hidden[n.ID]; ok {
			continue
		}
		nodes = append(nodes, *n)
	}
	return nodes
}

// VisibleEdges returns copies of every edge that should be rendered, in
// insertion order. An edge is visible only if neither endpoint is hidden and
// its source is not itself collapsed: collapsing a node removes its outgoing
// edges from view immediately, ahead of the descendants they lead to.
func (s *Store) VisibleEdges() []Edge {
	hidden := s.Hidden()
	edges := make([]Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		e := s.edges[id]
		if _, ok := hidden[e.Source]; ok {
			continue
		}
		if _, ok := hidden[e.Target]; ok {
			continue
		}
		if s.IsCollapsed(e.Source) {
			continue
		}
		edges = append(edges, *e)
	}
	return edges
}
