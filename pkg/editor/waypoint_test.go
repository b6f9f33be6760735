package editor

import (
	"testing"

	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// connectStyled creates a styled, labeled a→b edge and returns its ID.
func connectStyled(t *testing.T, s *Session, arrow mindmap.ArrowMode) string {
	t.Helper()
	e := mindmap.Edge{
		ID:      s.newID(),
		Source:  "a",
		Target:  "b",
		Routing: mindmap.RoutingDashed,
		Arrow:   arrow,
		Label:   "depends",
		Style:   mindmap.EdgeStyle{Stroke: "#336699", Width: 2},
	}
	if err := s.Store().AddEdge(e); err != nil {
		t.Fatal(err)
	}
	return e.ID
}

func TestSplitEdgeToWaypoint(t *testing.T) {
	s := newTestSession(t)
	edgeID := connectStyled(t, s, mindmap.ArrowBoth)

	eff := s.SplitEdgeToWaypoint(edgeID)
	if len(eff.CreatedNodes) != 1 || len(eff.CreatedEdges) != 2 || len(eff.RemovedEdges) != 1 {
		t.Fatalf("effect = %+v", eff)
	}
	if _, ok := s.Store().Edge(edgeID); ok {
		t.Error("original edge still present")
	}

	wp, _ := s.Store().Node(eff.CreatedNodes[0])
	if !wp.IsWaypoint() {
		t.Fatalf("created node kind = %v, want waypoint", wp.Kind)
	}
	if wp.Pos != (mindmap.Position{X: 50, Y: 25}) {
		t.Errorf("waypoint pos = %v, want midpoint", wp.Pos)
	}

	// Both segments inherit label, style, routing, and the full arrow mode.
	for _, id := range eff.CreatedEdges {
		seg, _ := s.Store().Edge(id)
		if seg.Label != "depends" {
			t.Errorf("segment %s label = %q, want duplicated label", id, seg.Label)
		}
		if seg.Arrow != mindmap.ArrowBoth {
			t.Errorf("segment %s arrow = %v, want both", id, seg.Arrow)
		}
		if seg.Routing != mindmap.RoutingDashed || seg.Style.Stroke != "#336699" {
			t.Errorf("segment %s lost routing/style: %+v", id, seg)
		}
	}
}

func TestSplitUnknownEdgeIsNoOp(t *testing.T) {
	s := newTestSession(t)
	nodes, edges := s.Store().NodeCount(), s.Store().EdgeCount()

	if eff := s.SplitEdgeToWaypoint("ghost"); !eff.Empty() {
		t.Errorf("effect = %+v, want empty", eff)
	}
	if s.Store().NodeCount() != nodes || s.Store().EdgeCount() != edges {
		t.Error("no-op split mutated the store")
	}
}

func TestInsertWaypointAtSplitsMarkersAsymmetrically(t *testing.T) {
	tests := []struct {
		name       string
		arrow      mindmap.ArrowMode
		wantFirst  mindmap.ArrowMode
		wantSecond mindmap.ArrowMode
	}{
		{"Forward", mindmap.ArrowForward, mindmap.ArrowNone, mindmap.ArrowForward},
		{"Both", mindmap.ArrowBoth, mindmap.ArrowBackward, mindmap.ArrowForward},
		{"None", mindmap.ArrowNone, mindmap.ArrowNone, mindmap.ArrowNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			edgeID := connectStyled(t, s, tt.arrow)

			pos := mindmap.Position{X: 30, Y: 40}
			eff := s.InsertWaypointAt(edgeID, pos)
			if len(eff.CreatedEdges) != 2 {
				t.Fatalf("effect = %+v", eff)
			}

			wp, _ := s.Store().Node(eff.CreatedNodes[0])
			if wp.Pos != pos {
				t.Errorf("waypoint pos = %v, want caller-supplied %v", wp.Pos, pos)
			}

			first, _ := s.Store().Edge(eff.CreatedEdges[0])
			second, _ := s.Store().Edge(eff.CreatedEdges[1])
			if first.Arrow != tt.wantFirst {
				t.Errorf("first segment arrow = %v, want %v", first.Arrow, tt.wantFirst)
			}
			if second.Arrow != tt.wantSecond {
				t.Errorf("second segment arrow = %v, want %v", second.Arrow, tt.wantSecond)
			}
			if first.Label != "depends" {
				t.Errorf("first segment label = %q, want original label", first.Label)
			}
			if second.Label != "" {
				t.Errorf("second segment label = %q, want cleared", second.Label)
			}
		})
	}
}

func TestDoubleClickEdgeInsertsWaypoint(t *testing.T) {
	s := newTestSession(t)
	edgeID := connectStyled(t, s, mindmap.ArrowForward)

	eff := s.DoubleClickEdge(edgeID, mindmap.Position{X: 10, Y: 10})
	if len(eff.CreatedNodes) != 1 {
		t.Errorf("effect = %+v, want one waypoint", eff)
	}
}

func TestSplitThenRemoveRestoresEndpoints(t *testing.T) {
	for _, arrow := range []mindmap.ArrowMode{mindmap.ArrowNone, mindmap.ArrowForward, mindmap.ArrowBoth} {
		t.Run(arrow.String(), func(t *testing.T) {
			s := newTestSession(t)
			edgeID := connectStyled(t, s, arrow)

			split := s.SplitEdgeToWaypoint(edgeID)
			// Remove via the first segment; the second works identically.
			eff := s.RemoveWaypoint(split.CreatedEdges[0])
			if len(eff.CreatedEdges) != 1 {
				t.Fatalf("effect = %+v, want one rejoined edge", eff)
			}

			joined, _ := s.Store().Edge(eff.CreatedEdges[0])
			if joined.Source != "a" || joined.Target != "b" {
				t.Errorf("rejoined endpoints = %s→%s, want a→b", joined.Source, joined.Target)
			}
			if joined.Arrow != arrow {
				t.Errorf("rejoined arrow = %v, want %v", joined.Arrow, arrow)
			}
			if joined.Label != "depends" || joined.Style.Stroke != "#336699" {
				t.Errorf("rejoined edge lost inbound label/style: %+v", joined)
			}
			if s.Store().EdgeCount() != 1 {
				t.Errorf("edge count = %d, want 1", s.Store().EdgeCount())
			}
			if _, ok := s.Store().Node(split.CreatedNodes[0]); ok {
				t.Error("waypoint node survived removal")
			}
		})
	}
}

func TestRemoveWaypointViaSecondSegment(t *testing.T) {
	s := newTestSession(t)
	edgeID := connectStyled(t, s, mindmap.ArrowForward)

	split := s.SplitEdgeToWaypoint(edgeID)
	eff := s.RemoveWaypoint(split.CreatedEdges[1])
	if len(eff.CreatedEdges) != 1 {
		t.Fatalf("effect = %+v, want rejoined edge", eff)
	}
	joined, _ := s.Store().Edge(eff.CreatedEdges[0])
	if joined.Source != "a" || joined.Target != "b" {
		t.Errorf("rejoined endpoints = %s→%s, want a→b", joined.Source, joined.Target)
	}
}

func TestRemoveWaypointNoOpCases(t *testing.T) {
	t.Run("UnknownEdge", func(t *testing.T) {
		s := newTestSession(t)
		if eff := s.RemoveWaypoint("ghost"); !eff.Empty() {
			t.Errorf("effect = %+v, want empty", eff)
		}
	})

	t.Run("NoAdjacentWaypoint", func(t *testing.T) {
		s := newTestSession(t)
		edgeID := connectStyled(t, s, mindmap.ArrowForward)
		if eff := s.RemoveWaypoint(edgeID); !eff.Empty() {
			t.Errorf("effect = %+v, want empty", eff)
		}
		if _, ok := s.Store().Edge(edgeID); !ok {
			t.Error("no-op removal deleted the edge")
		}
	})

	t.Run("MalformedBend", func(t *testing.T) {
		// A second inbound edge breaks the one-in/one-out shape; the
		// operation must leave everything alone.
		s := newTestSession(t)
		edgeID := connectStyled(t, s, mindmap.ArrowForward)
		split := s.SplitEdgeToWaypoint(edgeID)
		wpID := split.CreatedNodes[0]

		extra := mindmap.Edge{ID: "extra", Source: "b", Target: wpID}
		if err := s.Store().AddEdge(extra); err != nil {
			t.Fatal(err)
		}

		nodes, edges := s.Store().NodeCount(), s.Store().EdgeCount()
		if eff := s.RemoveWaypoint(split.CreatedEdges[0]); !eff.Empty() {
			t.Errorf("effect = %+v, want empty", eff)
		}
		if s.Store().NodeCount() != nodes || s.Store().EdgeCount() != edges {
			t.Error("no-op removal mutated the store")
		}
	})
}
