package editor

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// Effect records what a gesture did to the graph. Operations return their
// effect so callers (TUI, HTTP API, tests) can react without diffing store
// state. A zero Effect means the gesture was a no-op.
type Effect struct {
	CreatedNodes []string
	CreatedEdges []string
	RemovedNodes []string
	RemovedEdges []string
}

// Empty reports whether the effect changed nothing.
func (e Effect) Empty() bool {
	return len(e.CreatedNodes) == 0 && len(e.CreatedEdges) == 0 &&
		len(e.RemovedNodes) == 0 && len(e.RemovedEdges) == 0
}

// Selection tracks what the user last clicked. At most one of the fields is
// set at a time.
type Selection struct {
	NodeID string
	EdgeID string
}

// Session is the editing context threaded through every gesture: the store
// it mutates, the selected tool, the pending connection style, and the
// current selection. Gestures arrive as discrete, already-resolved events
// from the rendering collaborator and are processed strictly in order.
type Session struct {
	store   *mindmap.Store
	tool    Tool
	pending Pending
	sel     Selection

	rng   *rand.Rand
	newID func() string
}

// NewSession creates an editing session over the given store.
func NewSession(st *mindmap.Store) *Session {
	return &Session{
		store: st,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		newID: uuid.NewString,
	}
}

// Store returns the session's graph store.
func (s *Session) Store() *mindmap.Store { return s.store }

// Tool returns the currently selected tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool selects the tool applied to subsequent gestures.
func (s *Session) SetTool(t Tool) { s.tool = t }

// Pending returns the pending connection style attributes.
func (s *Session) Pending() Pending { return s.pending }

// SetPending replaces the pending connection style attributes.
func (s *Session) SetPending(p Pending) { s.pending = p }

// Selection returns the current selection.
func (s *Session) Selection() Selection { return s.sel }

// SelectNode marks a node as selected, clearing any edge selection.
func (s *Session) SelectNode(id string) { s.sel = Selection{NodeID: id} }

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() { s.sel = Selection{} }

// Connect interprets a "connect source to target" gesture under the current
// tool. Every branch is total; the only failure mode is an
// INVALID_REFERENCE error when an endpoint vanished between gesture start
// and commit, in which case no mutation is applied.
func (s *Session) Connect(sourceID, targetID string) (Effect, error) {
	switch s.tool {
	case ToolNodeBox:
		return s.connectNodeBox(sourceID), nil
	case ToolInfo:
		return s.connectInfo(sourceID, targetID)
	case ToolDotted:
		return s.connectSingle(sourceID, targetID, mindmap.RoutingDashed)
	default:
		// One-way, two-way, and the waypoint tool all fall through to a
		// single direct edge.
		return s.connectSingle(sourceID, targetID, mindmap.RoutingDirect)
	}
}

// connectSingle creates one edge between the endpoints with the routing kind
// and the arrow mode derived from the tool and pending settings.
func (s *Session) connectSingle(sourceID, targetID string, routing mindmap.RoutingKind) (Effect, error) {
	e := mindmap.Edge{
		ID:      s.newID(),
		Source:  sourceID,
		Target:  targetID,
		Routing: routing,
		Arrow:   s.pending.arrowFor(s.tool),
		Label:   s.pending.Label,
		Style:   s.pending.style(),
	}
	if err := s.store.AddEdge(e); err != nil {
		return Effect{}, errors.Wrap(errors.ErrCodeInvalidReference, err, "connect %s to %s", sourceID, targetID)
	}
	return Effect{CreatedEdges: []string{e.ID}}, nil
}

// connectInfo creates a waypoint at the geometric midpoint of the endpoints
// and two arrowless segments. The first segment carries the pending label
// and style; the second stays unlabeled.
func (s *Session) connectInfo(sourceID, targetID string) (Effect, error) {
	src, okS := s.store.Node(sourceID)
	dst, okT := s.store.Node(targetID)
	if !okS {
		return Effect{}, errors.New(errors.ErrCodeInvalidReference, "source node %s does not exist", sourceID)
	}
	if !okT {
		return Effect{}, errors.New(errors.ErrCodeInvalidReference, "target node %s does not exist", targetID)
	}

	wp := mindmap.Node{
		ID:   s.newID(),
		Kind: mindmap.NodeKindWaypoint,
		Pos:  mindmap.Midpoint(src.Pos, dst.Pos),
	}
	if err := s.store.AddNode(wp); err != nil {
		panic(err)
	}

	first := mindmap.Edge{
		ID:     s.newID(),
		Source: sourceID,
		Target: wp.ID,
		Arrow:  mindmap.ArrowNone,
		Label:  s.pending.Label,
		Style:  s.pending.style(),
	}
	second := mindmap.Edge{
		ID:     s.newID(),
		Source: wp.ID,
		Target: targetID,
		Arrow:  mindmap.ArrowNone,
		Style:  s.pending.style(),
	}
	if err := s.store.AddEdge(first); err != nil {
		panic(err)
	}
	if err := s.store.AddEdge(second); err != nil {
		panic(err)
	}

	return Effect{
		CreatedNodes: []string{wp.ID},
		CreatedEdges: []string{first.ID, second.ID},
	}, nil
}

// connectNodeBox ignores the gesture endpoints and creates one free-standing
// content node at a randomized offset near the source. No edge is created.
func (s *Session) connectNodeBox(sourceID string) Effect {
	var base mindmap.Position
	if src, ok := s.store.Node(sourceID); ok {
		base = src.Pos
	}
	n := mindmap.Node{
		ID:    s.newID(),
		Kind:  mindmap.NodeKindContent,
		Pos:   mindmap.Position{X: base.X + s.jitter(), Y: base.Y + s.jitter()},
		Label: "New node",
	}
	if err := s.store.AddNode(n); err != nil {
		panic(err)
	}
	return Effect{CreatedNodes: []string{n.ID}}
}

// jitter returns a random offset in [-100, -40] ∪ [40, 100].
func (s *Session) jitter() float64 {
	d := 40 + s.rng.Float64()*60
	if s.rng.Intn(2) == 0 {
		return -d
	}
	return d
}

// ClickEmptySpace handles a click on the empty canvas. With the node-box
// tool it drops a content node at the position; with the informational tool
// it drops an info note carrying the pending label. Any other tool just
// clears the selection.
func (s *Session) ClickEmptySpace(pos mindmap.Position) Effect {
	switch s.tool {
	case ToolNodeBox:
		return s.addNodeAt(pos, mindmap.NodeKindContent, "New node")
	case ToolInfo:
		return s.addNodeAt(pos, mindmap.NodeKindInfo, s.pending.Label)
	default:
		s.ClearSelection()
		return Effect{}
	}
}

func (s *Session) addNodeAt(pos mindmap.Position, kind mindmap.NodeKind, label string) Effect {
	n := mindmap.Node{ID: s.newID(), Kind: kind, Pos: pos, Label: label}
	if err := s.store.AddNode(n); err != nil {
		panic(err)
	}
	s.sel = Selection{NodeID: n.ID}
	return Effect{CreatedNodes: []string{n.ID}}
}

// ClickEdge handles a single click on an edge. With the waypoint tool the
// edge is split at its midpoint; otherwise the edge becomes the selection.
func (s *Session) ClickEdge(edgeID string) Effect {
	if s.tool == ToolWaypoint {
		return s.SplitEdgeToWaypoint(edgeID)
	}
	if _, ok := s.store.Edge(edgeID); ok {
		s.sel = Selection{EdgeID: edgeID}
	}
	return Effect{}
}

// DoubleClickEdge splits the edge with a waypoint at the clicked position.
func (s *Session) DoubleClickEdge(edgeID string, pos mindmap.Position) Effect {
	return s.InsertWaypointAt(edgeID, pos)
}

// DeleteSelection removes the selected node (with its incident edges) or the
// selected edge. Deleting the root node is a no-op per the store contract;
// the selection is cleared either way.
func (s *Session) DeleteSelection() Effect {
	defer s.ClearSelection()

	switch {
	case s.sel.NodeID != "":
		id := s.sel.NodeID
		if id == mindmap.RootNodeID {
			return Effect{}
		}
		if _, ok := s.store.Node(id); !ok {
			return Effect{}
		}
		removed := s.store.EdgeIDsIncident(id)
		s.store.RemoveNode(id)
		return Effect{RemovedNodes: []string{id}, RemovedEdges: removed}
	case s.sel.EdgeID != "":
		id := s.sel.EdgeID
		if _, ok := s.store.Edge(id); !ok {
			return Effect{}
		}
		s.store.RemoveEdge(id)
		return Effect{RemovedEdges: []string{id}}
	}
	return Effect{}
}

// CreateShortcut adds a child content node at the given position, linked
// from the selected node (or the root when nothing is selected) by a
// forward-arrow edge.
func (s *Session) CreateShortcut(pos mindmap.Position) (Effect, error) {
	parent := mindmap.RootNodeID
	if s.sel.NodeID != "" {
		if _, ok := s.store.Node(s.sel.NodeID); ok {
			parent = s.sel.NodeID
		}
	}

	n := mindmap.Node{
		ID:    s.newID(),
		Kind:  mindmap.NodeKindContent,
		Pos:   pos,
		Label: "New node",
	}
	if err := s.store.AddNode(n); err != nil {
		panic(err)
	}
	e := mindmap.Edge{
		ID:     s.newID(),
		Source: parent,
		Target: n.ID,
		Arrow:  mindmap.ArrowForward,
	}
	if err := s.store.AddEdge(e); err != nil {
		return Effect{}, errors.Wrap(errors.ErrCodeInvalidReference, err, "shortcut from %s", parent)
	}
	s.sel = Selection{NodeID: n.ID}
	return Effect{CreatedNodes: []string{n.ID}, CreatedEdges: []string{e.ID}}, nil
}

// ToggleCollapse flips the collapsed state of a node.
func (s *Session) ToggleCollapse(id string) {
	s.store.ToggleCollapse(id)
}
