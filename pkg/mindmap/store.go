package mindmap

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Store.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Store.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeID is returned by [Store.AddEdge] when the edge ID is empty.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrDuplicateEdgeID is returned by [Store.AddEdge] when an edge with the
	// same ID already exists.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownSourceNode is returned by [Store.AddEdge] when the source
	// node does not exist in the store.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Store.AddEdge] when the target
	// node does not exist in the store.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by [Store.UpdateNode] when the node does
	// not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned by [Store.UpdateEdge] when the edge does
	// not exist.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrInvalidEdgeEndpoint is returned by [Store.Validate] when an edge
	// references a node that doesn't exist. This indicates store corruption,
	// since every mutating operation maintains referential integrity.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Store owns the canonical node set, edge set, and collapsed-node set of a
// mind map. It is the single source of truth: every other component reads
// snapshots of its state and writes back through its operations.
//
// All operations are synchronous and none leaves a dangling edge reference.
// The collapsed set is the one accepted exception: it may hold ids of nodes
// that no longer exist (stale entries are tolerated, never compacted).
//
// Store is not safe for concurrent use. Mutations are expected to run one at
// a time inside the handler of the triggering user gesture.
type Store struct {
	nodes     map[string]*Node
	edges     map[string]*Edge
	edgeOrder []string            // edge IDs in insertion order
	outgoing  map[string][]string // nodeID -> outgoing edge IDs
	incoming  map[string][]string // nodeID -> incoming edge IDs
	collapsed map[string]struct{}
}

// New creates a store holding only the reserved root node at the origin.
func New() *Store {
	s := &Store{
		nodes:     make(map[string]*Node),
		edges:     make(map[string]*Edge),
		outgoing:  make(map[string][]string),
		incoming:  make(map[string][]string),
		collapsed: make(map[string]struct{}),
	}
	root := Node{ID: RootNodeID, Kind: NodeKindContent}
	s.nodes[RootNodeID] = &root
	return s
}

// AddNode adds a node to the store.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if a node
// with the same ID already exists.
func (s *Store) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := s.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	s.nodes[node.ID] = &node
	return nil
}

// RemoveNode removes a node and every edge incident to it.
// Removing the root node or an unknown node is a silent no-op. The collapsed
// set is deliberately left alone: stale collapse entries are tolerated.
func (s *Store) RemoveNode(id string) {
	if id == RootNodeID {
		return
	}
	if _, ok := s.nodes[id]; !ok {
		return
	}
	for _, eid := range s.EdgeIDsIncident(id) {
		s.RemoveEdge(eid)
	}
	delete(s.nodes, id)
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is
// absent; in that case no mutation is applied.
//
// Self-loops and duplicate edges between the same ordered pair are accepted:
// nothing in the editor produces them, but the store does not reject them
// either. See DESIGN.md for the validation-gap decision.
func (s *Store) AddEdge(e Edge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if _, exists := s.edges[e.ID]; exists {
		return ErrDuplicateEdgeID
	}
	if _, ok := s.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := s.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	edge := e
	s.edges[edge.ID] = &edge
	s.edgeOrder = append(s.edgeOrder, edge.ID)
	s.outgoing[edge.Source] = append(s.outgoing[edge.Source], edge.ID)
	s.incoming[edge.Target] = append(s.incoming[edge.Target], edge.ID)
	return nil
}

// RemoveEdge removes the edge with the given ID. Unknown IDs are a no-op.
func (s *Store) RemoveEdge(id string) {
	e, ok := s.edges[id]
	if !ok {
		return
	}
	delete(s.edges, id)
	s.edgeOrder = slices.DeleteFunc(s.edgeOrder, func(x string) bool { return x == id })
	s.outgoing[e.Source] = slices.DeleteFunc(s.outgoing[e.Source], func(x string) bool { return x == id })
	s.incoming[e.Target] = slices.DeleteFunc(s.incoming[e.Target], func(x string) bool { return x == id })
}

// ToggleCollapse flips the collapsed flag for the given node ID.
// The ID does not have to reference an existing node; membership in the
// collapsed set is independent of node existence.
func (s *Store) ToggleCollapse(id string) {
	if _, ok := s.collapsed[id]; ok {
		delete(s.collapsed, id)
		return
	}
	s.collapsed[id] = struct{}{}
}

// IsCollapsed reports whether the node ID is in the collapsed set.
func (s *Store) IsCollapsed(id string) bool {
	_, ok := s.collapsed[id]
	return ok
}

// Collapsed returns the collapsed node IDs in sorted order.
func (s *Store) Collapsed() []string {
	ids := make([]string, 0, len(s.collapsed))
	for id := range s.collapsed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NodePatch selects which node fields [Store.UpdateNode] overwrites.
// Nil fields are left unchanged.
type NodePatch struct {
	Pos     *Position
	Label   *string
	Subject *Subject
	Color   *string
}

// UpdateNode applies a patch to an existing node.
// Returns ErrUnknownNode if the node does not exist; no partial update occurs.
func (s *Store) UpdateNode(id string, p NodePatch) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if p.Pos != nil {
		n.Pos = *p.Pos
	}
	if p.Label != nil {
		n.Label = *p.Label
	}
	if p.Subject != nil {
		n.Subject = *p.Subject
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	return nil
}

// EdgePatch selects which edge fields [Store.UpdateEdge] overwrites.
// Nil fields are left unchanged. Endpoints cannot be patched; edge topology
// changes go through remove/add or the waypoint operations.
type EdgePatch struct {
	Routing *RoutingKind
	Arrow   *ArrowMode
	Label   *string
	Style   *EdgeStyle
}

// UpdateEdge applies a patch to an existing edge.
// Returns ErrUnknownEdge if the edge does not exist.
func (s *Store) UpdateEdge(id string, p EdgePatch) error {
	e, ok := s.edges[id]
	if !ok {
		return ErrUnknownEdge
	}
	if p.Routing != nil {
		e.Routing = *p.Routing
	}
	if p.Arrow != nil {
		e.Arrow = *p.Arrow
	}
	if p.Label != nil {
		e.Label = *p.Label
	}
	if p.Style != nil {
		e.Style = *p.Style
	}
	return nil
}

// Node returns a copy of the node with the given ID.
// Callers never receive a reference into store-owned records; all mutation
// goes through the update operations.
func (s *Store) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Edge returns a copy of the edge with the given ID.
func (s *Store) Edge(id string) (Edge, bool) {
	e, ok := s.edges[id]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Nodes returns copies of all nodes. The order is not guaranteed.
func (s *Store) Nodes() []Node {
	nodes := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, *n)
	}
	return nodes
}

// Edges returns copies of all edges in insertion order.
func (s *Store) Edges() []Edge {
	edges := make([]Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		edges = append(edges, *s.edges[id])
	}
	return edges
}

// NodeCount returns the number of nodes in the store.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges in the store.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Outbound returns copies of the edges leaving the node, in insertion order.
func (s *Store) Outbound(id string) []Edge {
	return s.edgesByID(s.outgoing[id])
}

// Inbound returns copies of the edges entering the node, in insertion order.
func (s *Store) Inbound(id string) []Edge {
	return s.edgesByID(s.incoming[id])
}

// EdgeIDsIncident returns the IDs of every edge touching the node, outgoing
// first. Self-loops appear once.
func (s *Store) EdgeIDsIncident(id string) []string {
	ids := slices.Clone(s.outgoing[id])
	for _, eid := range s.incoming[id] {
		if !slices.Contains(ids, eid) {
			ids = append(ids, eid)
		}
	}
	return ids
}

func (s *Store) edgesByID(ids []string) []Edge {
	edges := make([]Edge, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.edges[id]; ok {
			edges = append(edges, *e)
		}
	}
	return edges
}

// Validate checks referential integrity and returns nil if every edge
// endpoint references an existing node. A failure indicates corruption, not
// a user error: no public operation can produce a dangling endpoint.
func (s *Store) Validate() error {
	for _, id := range s.edgeOrder {
		e := s.edges[id]
		if _, ok := s.nodes[e.Source]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := s.nodes[e.Target]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	return nil
}
