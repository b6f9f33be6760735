package editor

import "github.com/matzehuels/mindmesh/pkg/mindmap"

// SplitEdgeToWaypoint subdivides an edge with a waypoint at the midpoint of
// its endpoint positions. The original edge is replaced by two segments that
// both inherit its label, style, routing, and full arrow mode — the label is
// deliberately duplicated on both segments, unlike [Session.InsertWaypointAt]
// which clears the second one.
//
// Unknown edge IDs are a silent no-op.
func (s *Session) SplitEdgeToWaypoint(edgeID string) Effect {
	e, ok := s.store.Edge(edgeID)
	if !ok {
		return Effect{}
	}

	var pos mindmap.Position
	src, okS := s.store.Node(e.Source)
	dst, okT := s.store.Node(e.Target)
	if okS && okT {
		pos = mindmap.Midpoint(src.Pos, dst.Pos)
	}

	first := e
	first.Target = ""
	second := e
	second.Source = ""
	return s.splice(e, pos, first, second)
}

// InsertWaypointAt subdivides an edge with a waypoint at a caller-supplied
// position, typically where the user double-clicked the edge. Markers are
// split asymmetrically: the first segment keeps only the marker at the
// original source end, the second only the marker at the original target
// end, so the bent path still shows exactly one arrowhead at each original
// extremity and none in the middle. The second segment's label is cleared.
//
// Unknown edge IDs are a silent no-op.
func (s *Session) InsertWaypointAt(edgeID string, pos mindmap.Position) Effect {
	e, ok := s.store.Edge(edgeID)
	if !ok {
		return Effect{}
	}

	start, end := e.Arrow.Markers()

	first := e
	first.Target = ""
	first.Arrow = mindmap.ArrowModeFor(start, false)

	second := e
	second.Source = ""
	second.Arrow = mindmap.ArrowModeFor(false, end)
	second.Label = ""

	return s.splice(e, pos, first, second)
}

// splice replaces edge e with a fresh waypoint and the two given segment
// templates. The templates carry everything but their IDs and the endpoint
// that attaches to the waypoint.
func (s *Session) splice(e mindmap.Edge, pos mindmap.Position, first, second mindmap.Edge) Effect {
	wp := mindmap.Node{ID: s.newID(), Kind: mindmap.NodeKindWaypoint, Pos: pos}
	if err := s.store.AddNode(wp); err != nil {
		panic(err)
	}

	s.store.RemoveEdge(e.ID)

	first.ID = s.newID()
	first.Target = wp.ID
	second.ID = s.newID()
	second.Source = wp.ID
	if err := s.store.AddEdge(first); err != nil {
		panic(err)
	}
	if err := s.store.AddEdge(second); err != nil {
		panic(err)
	}

	return Effect{
		CreatedNodes: []string{wp.ID},
		CreatedEdges: []string{first.ID, second.ID},
		RemovedEdges: []string{e.ID},
	}
}

// RemoveWaypoint collapses the waypoint adjacent to the given edge, splicing
// its two segments back into one. The rejoined edge takes its source, label,
// style, and routing from the inbound segment, its start marker from the
// inbound segment, and its end marker from the outbound segment.
//
// Either segment of a bend may be passed. The target endpoint is checked
// first, then the source. The call is a silent no-op when the edge is
// unknown or no adjacent waypoint with exactly one inbound and one outbound
// edge exists.
func (s *Session) RemoveWaypoint(edgeID string) Effect {
	e, ok := s.store.Edge(edgeID)
	if !ok {
		return Effect{}
	}

	for _, candidate := range []string{e.Target, e.Source} {
		n, ok := s.store.Node(candidate)
		if !ok || !n.IsWaypoint() {
			continue
		}
		in := s.store.Inbound(candidate)
		out := s.store.Outbound(candidate)
		if len(in) != 1 || len(out) != 1 || in[0].ID == out[0].ID {
			continue
		}
		return s.rejoin(n.ID, in[0], out[0])
	}
	return Effect{}
}

func (s *Session) rejoin(waypointID string, in, out mindmap.Edge) Effect {
	start, _ := in.Arrow.Markers()
	_, end := out.Arrow.Markers()

	joined := mindmap.Edge{
		ID:      s.newID(),
		Source:  in.Source,
		Target:  out.Target,
		Routing: in.Routing,
		Arrow:   mindmap.ArrowModeFor(start, end),
		Label:   in.Label,
		Style:   in.Style,
	}

	// Removing the waypoint cascades both segments.
	s.store.RemoveNode(waypointID)
	if err := s.store.AddEdge(joined); err != nil {
		panic(err)
	}

	return Effect{
		CreatedEdges: []string{joined.ID},
		RemovedNodes: []string{waypointID},
		RemovedEdges: []string{in.ID, out.ID},
	}
}
