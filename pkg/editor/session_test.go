package editor

import (
	"fmt"
	"testing"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// newTestSession returns a session with a deterministic ID generator over a
// store containing nodes a and b.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	st := mindmap.New()
	if err := st.AddNode(mindmap.Node{ID: "a", Pos: mindmap.Position{X: 0, Y: 0}}); err != nil {
		t.Fatal(err)
	}
	if err := st.AddNode(mindmap.Node{ID: "b", Pos: mindmap.Position{X: 100, Y: 50}}); err != nil {
		t.Fatal(err)
	}
	s := NewSession(st)
	var n int
	s.newID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return s
}

func TestConnectOneWay(t *testing.T) {
	s := newTestSession(t)

	eff, err := s.Connect("a", "b")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if len(eff.CreatedEdges) != 1 || len(eff.CreatedNodes) != 0 {
		t.Fatalf("effect = %+v, want exactly one created edge", eff)
	}

	e, _ := s.Store().Edge(eff.CreatedEdges[0])
	if e.Source != "a" || e.Target != "b" {
		t.Errorf("edge endpoints = %s→%s, want a→b", e.Source, e.Target)
	}
	if e.Arrow != mindmap.ArrowForward {
		t.Errorf("arrow = %v, want forward", e.Arrow)
	}
	if e.Routing != mindmap.RoutingDirect {
		t.Errorf("routing = %v, want direct", e.Routing)
	}
}

func TestConnectTwoWay(t *testing.T) {
	s := newTestSession(t)
	s.SetTool(ToolTwoWay)

	eff, err := s.Connect("a", "b")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	e, _ := s.Store().Edge(eff.CreatedEdges[0])
	if e.Arrow != mindmap.ArrowBoth {
		t.Errorf("arrow = %v, want both", e.Arrow)
	}
}

func TestConnectExplicitNoArrow(t *testing.T) {
	for _, tool := range []Tool{ToolOneWay, ToolTwoWay, ToolDotted} {
		t.Run(tool.String(), func(t *testing.T) {
			s := newTestSession(t)
			s.SetTool(tool)
			s.SetPending(Pending{NoArrow: true})

			eff, err := s.Connect("a", "b")
			if err != nil {
				t.Fatalf("Connect: %v", err)
			}
			e, _ := s.Store().Edge(eff.CreatedEdges[0])
			if e.Arrow != mindmap.ArrowNone {
				t.Errorf("arrow = %v, want none", e.Arrow)
			}
		})
	}
}

func TestConnectDotted(t *testing.T) {
	s := newTestSession(t)
	s.SetTool(ToolDotted)
	s.SetPending(Pending{Label: "maybe", Stroke: "#999999"})

	eff, err := s.Connect("a", "b")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	e, _ := s.Store().Edge(eff.CreatedEdges[0])
	if e.Routing != mindmap.RoutingDashed {
		t.Errorf("routing = %v, want dashed", e.Routing)
	}
	if e.Arrow != mindmap.ArrowForward {
		t.Errorf("arrow = %v, want forward", e.Arrow)
	}
	if e.Label != "maybe" || e.Style.Stroke != "#999999" {
		t.Errorf("pending label/style not applied: %+v", e)
	}
}

func TestConnectInfo(t *testing.T) {
	s := newTestSession(t)
	s.SetTool(ToolInfo)
	s.SetPending(Pending{Label: "relates to"})

	before := s.Store().NodeCount()
	eff, err := s.Connect("a", "b")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if len(eff.CreatedNodes) != 1 || len(eff.CreatedEdges) != 2 {
		t.Fatalf("effect = %+v, want 1 node and 2 edges", eff)
	}
	if s.Store().NodeCount() != before+1 {
		t.Errorf("node count = %d, want %d", s.Store().NodeCount(), before+1)
	}

	wp, _ := s.Store().Node(eff.CreatedNodes[0])
	if !wp.IsWaypoint() {
		t.Errorf("created node kind = %v, want waypoint", wp.Kind)
	}
	want := mindmap.Position{X: 50, Y: 25}
	if wp.Pos != want {
		t.Errorf("waypoint pos = %v, want midpoint %v", wp.Pos, want)
	}

	first, _ := s.Store().Edge(eff.CreatedEdges[0])
	second, _ := s.Store().Edge(eff.CreatedEdges[1])
	if first.Source != "a" || first.Target != wp.ID || second.Source != wp.ID || second.Target != "b" {
		t.Errorf("segment endpoints wrong: %+v / %+v", first, second)
	}
	if first.Arrow != mindmap.ArrowNone || second.Arrow != mindmap.ArrowNone {
		t.Error("info segments must not carry arrowheads")
	}
	if first.Label != "relates to" {
		t.Errorf("first segment label = %q, want pending label", first.Label)
	}
	if second.Label != "" {
		t.Errorf("second segment label = %q, want empty", second.Label)
	}
}

func TestConnectNodeBox(t *testing.T) {
	s := newTestSession(t)
	s.SetTool(ToolNodeBox)

	edgesBefore := s.Store().EdgeCount()
	eff, err := s.Connect("b", "a")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if len(eff.CreatedNodes) != 1 || len(eff.CreatedEdges) != 0 {
		t.Fatalf("effect = %+v, want one node and no edges", eff)
	}
	if s.Store().EdgeCount() != edgesBefore {
		t.Error("node-box tool created an edge")
	}

	n, _ := s.Store().Node(eff.CreatedNodes[0])
	if !n.IsContent() {
		t.Errorf("kind = %v, want content", n.Kind)
	}
	src, _ := s.Store().Node("b")
	dx, dy := n.Pos.X-src.Pos.X, n.Pos.Y-src.Pos.Y
	if dx == 0 && dy == 0 {
		t.Error("new node placed exactly on the source, want a randomized offset")
	}
	if dx > 100 || dx < -100 || dy > 100 || dy < -100 {
		t.Errorf("offset (%v, %v) outside the expected range", dx, dy)
	}
}

func TestConnectMissingEndpoint(t *testing.T) {
	for _, tool := range []Tool{ToolOneWay, ToolInfo, ToolDotted} {
		t.Run(tool.String(), func(t *testing.T) {
			s := newTestSession(t)
			s.SetTool(tool)

			nodes, edges := s.Store().NodeCount(), s.Store().EdgeCount()
			_, err := s.Connect("a", "ghost")
			if !errors.Is(err, errors.ErrCodeInvalidReference) {
				t.Fatalf("Connect = %v, want INVALID_REFERENCE", err)
			}
			if s.Store().NodeCount() != nodes || s.Store().EdgeCount() != edges {
				t.Error("rejected connect mutated the store")
			}
		})
	}
}

func TestClickEmptySpace(t *testing.T) {
	t.Run("DefaultClearsSelection", func(t *testing.T) {
		s := newTestSession(t)
		s.SelectNode("a")
		if eff := s.ClickEmptySpace(mindmap.Position{}); !eff.Empty() {
			t.Errorf("effect = %+v, want empty", eff)
		}
		if s.Selection() != (Selection{}) {
			t.Error("selection not cleared")
		}
	})

	t.Run("NodeBox", func(t *testing.T) {
		s := newTestSession(t)
		s.SetTool(ToolNodeBox)
		eff := s.ClickEmptySpace(mindmap.Position{X: 7, Y: 9})
		n, ok := s.Store().Node(eff.CreatedNodes[0])
		if !ok || !n.IsContent() || n.Pos != (mindmap.Position{X: 7, Y: 9}) {
			t.Errorf("node = %+v", n)
		}
	})

	t.Run("Info", func(t *testing.T) {
		s := newTestSession(t)
		s.SetTool(ToolInfo)
		s.SetPending(Pending{Label: "context"})
		eff := s.ClickEmptySpace(mindmap.Position{X: 1, Y: 2})
		n, _ := s.Store().Node(eff.CreatedNodes[0])
		if !n.IsInfo() || n.Label != "context" {
			t.Errorf("node = %+v, want info note with pending label", n)
		}
	})
}

func TestClickEdgeSelects(t *testing.T) {
	s := newTestSession(t)
	eff, _ := s.Connect("a", "b")
	edgeID := eff.CreatedEdges[0]

	s.ClickEdge(edgeID)
	if s.Selection().EdgeID != edgeID {
		t.Errorf("selection = %+v, want edge %s", s.Selection(), edgeID)
	}

	s.ClickEdge("ghost")
	if s.Selection().EdgeID != edgeID {
		t.Error("clicking an unknown edge changed the selection")
	}
}

func TestClickEdgeWithWaypointToolSplits(t *testing.T) {
	s := newTestSession(t)
	eff, _ := s.Connect("a", "b")
	edgeID := eff.CreatedEdges[0]

	s.SetTool(ToolWaypoint)
	split := s.ClickEdge(edgeID)
	if len(split.CreatedNodes) != 1 || len(split.CreatedEdges) != 2 {
		t.Errorf("effect = %+v, want waypoint split", split)
	}
}

func TestDeleteSelection(t *testing.T) {
	t.Run("NodeCascades", func(t *testing.T) {
		s := newTestSession(t)
		s.Connect("a", "b")
		s.SelectNode("a")

		eff := s.DeleteSelection()
		if len(eff.RemovedNodes) != 1 || len(eff.RemovedEdges) != 1 {
			t.Errorf("effect = %+v, want node plus incident edge", eff)
		}
		if _, ok := s.Store().Node("a"); ok {
			t.Error("node a survived delete")
		}
		if s.Selection() != (Selection{}) {
			t.Error("selection not cleared after delete")
		}
	})

	t.Run("RootIsNoOp", func(t *testing.T) {
		s := newTestSession(t)
		s.SelectNode(mindmap.RootNodeID)
		nodes, edges := s.Store().NodeCount(), s.Store().EdgeCount()

		eff := s.DeleteSelection()
		if !eff.Empty() {
			t.Errorf("effect = %+v, want empty", eff)
		}
		if s.Store().NodeCount() != nodes || s.Store().EdgeCount() != edges {
			t.Error("deleting root changed counts")
		}
	})

	t.Run("Edge", func(t *testing.T) {
		s := newTestSession(t)
		eff, _ := s.Connect("a", "b")
		s.ClickEdge(eff.CreatedEdges[0])

		del := s.DeleteSelection()
		if len(del.RemovedEdges) != 1 {
			t.Errorf("effect = %+v, want one removed edge", del)
		}
		if s.Store().EdgeCount() != 0 {
			t.Error("edge survived delete")
		}
	})

	t.Run("NothingSelected", func(t *testing.T) {
		s := newTestSession(t)
		if eff := s.DeleteSelection(); !eff.Empty() {
			t.Errorf("effect = %+v, want empty", eff)
		}
	})
}

func TestCreateShortcut(t *testing.T) {
	t.Run("FromRootByDefault", func(t *testing.T) {
		s := newTestSession(t)
		eff, err := s.CreateShortcut(mindmap.Position{X: 3, Y: 4})
		if err != nil {
			t.Fatalf("CreateShortcut: %v", err)
		}
		e, _ := s.Store().Edge(eff.CreatedEdges[0])
		if e.Source != mindmap.RootNodeID {
			t.Errorf("parent = %s, want root", e.Source)
		}
		if e.Arrow != mindmap.ArrowForward {
			t.Errorf("arrow = %v, want forward", e.Arrow)
		}
	})

	t.Run("FromSelection", func(t *testing.T) {
		s := newTestSession(t)
		s.SelectNode("a")
		eff, err := s.CreateShortcut(mindmap.Position{})
		if err != nil {
			t.Fatalf("CreateShortcut: %v", err)
		}
		e, _ := s.Store().Edge(eff.CreatedEdges[0])
		if e.Source != "a" {
			t.Errorf("parent = %s, want selected node a", e.Source)
		}
		if s.Selection().NodeID != eff.CreatedNodes[0] {
			t.Error("new node not selected after shortcut")
		}
	})
}
