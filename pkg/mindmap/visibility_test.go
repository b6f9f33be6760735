package mindmap

import (
	"slices"
	"testing"
)

func edgeList(pairs [][2]string) []Edge {
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{ID: p[0] + "->" + p[1], Source: p[0], Target: p[1]}
	}
	return edges
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func TestComputeHidden(t *testing.T) {
	tests := []struct {
		name      string
		collapsed []string
		edges     [][2]string
		want      []string
	}{
		{
			name: "Empty",
		},
		{
			name:      "SingleChild",
			collapsed: []string{"root"},
			edges:     [][2]string{{"root", "a"}},
			want:      []string{"a"},
		},
		{
			name:      "Transitive",
			collapsed: []string{"root"},
			edges:     [][2]string{{"root", "a"}, {"a", "b"}, {"b", "c"}},
			want:      []string{"a", "b", "c"},
		},
		{
			name:      "FollowsSourceToTargetOnly",
			collapsed: []string{"a"},
			edges:     [][2]string{{"root", "a"}, {"a", "b"}},
			want:      []string{"b"}, // root reaches a, but traversal never reverses
		},
		{
			name:      "CollapsedNodeStaysVisible",
			collapsed: []string{"a"},
			edges:     [][2]string{{"a", "b"}},
			want:      []string{"b"},
		},
		{
			name:      "DescendantOfAnotherCollapsedNodeIsHidden",
			collapsed: []string{"root", "a"},
			edges:     [][2]string{{"root", "a"}, {"a", "b"}},
			want:      []string{"a", "b"},
		},
		{
			name:      "StaleCollapsedID",
			collapsed: []string{"ghost"},
			edges:     [][2]string{{"root", "a"}},
			want:      nil,
		},
		{
			name:      "Cycle",
			collapsed: []string{"a"},
			edges:     [][2]string{{"a", "b"}, {"b", "a"}},
			want:      []string{"a", "b"}, // a is reachable from its own descendants
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeHidden(tt.collapsed, edgeList(tt.edges))
			if !slices.Equal(sortedKeys(got), tt.want) {
				t.Errorf("hidden = %v, want %v", sortedKeys(got), tt.want)
			}
		})
	}
}

func TestComputeHiddenIdempotent(t *testing.T) {
	edges := edgeList([][2]string{
		{"root", "a"}, {"a", "b"}, {"b", "c"}, {"root", "d"}, {"d", "b"},
	})
	collapsed := []string{"root"}

	first := ComputeHidden(collapsed, edges)

	// Feed the output back as additional collapsed IDs: the hidden set must
	// not change.
	again := append(slices.Clone(collapsed), sortedKeys(first)...)
	second := ComputeHidden(again, edges)

	if !slices.Equal(sortedKeys(first), sortedKeys(second)) {
		t.Errorf("hidden changed on recompute: %v then %v", sortedKeys(first), sortedKeys(second))
	}
}

func TestVisibleNodesAndEdges(t *testing.T) {
	st := New()
	st.AddNode(Node{ID: "a"})
	st.AddNode(Node{ID: "b"})
	st.AddEdge(Edge{ID: "e1", Source: RootNodeID, Target: "a"})
	st.AddEdge(Edge{ID: "e2", Source: "a", Target: "b"})

	st.ToggleCollapse(RootNodeID)

	var visible []string
	for _, n := range st.VisibleNodes() {
		visible = append(visible, n.ID)
	}
	slices.Sort(visible)
	if !slices.Equal(visible, []string{RootNodeID}) {
		t.Errorf("visible nodes = %v, want [root]", visible)
	}

	if edges := st.VisibleEdges(); len(edges) != 0 {
		t.Errorf("visible edges = %v, want none", edges)
	}
}

// The §-style scenario: root and A, edge root→A, root collapsed.
func TestCollapseRootHidesChildAndEdge(t *testing.T) {
	st := New()
	st.AddNode(Node{ID: "A"})
	st.AddEdge(Edge{ID: "e1", Source: RootNodeID, Target: "A"})
	st.ToggleCollapse(RootNodeID)

	hidden := st.Hidden()
	if _, ok := hidden["A"]; !ok || len(hidden) != 1 {
		t.Errorf("hidden = %v, want exactly {A}", sortedKeys(hidden))
	}
	for _, e := range st.VisibleEdges() {
		if e.ID == "e1" {
			t.Error("edge root→A still visible with root collapsed")
		}
	}
}

func TestCollapseHidesNodeReachableThroughOtherPath(t *testing.T) {
	// Hiding is reachability-based, not path-based: b is a descendant of the
	// collapsed node a, so b vanishes even though root links to it directly,
	// and both incident edges vanish with it.
	st := New()
	st.AddNode(Node{ID: "a"})
	st.AddNode(Node{ID: "b"})
	st.AddEdge(Edge{ID: "e1", Source: RootNodeID, Target: "b"})
	st.AddEdge(Edge{ID: "e2", Source: "a", Target: "b"})

	st.ToggleCollapse("a")

	hidden := st.Hidden()
	if _, ok := hidden["b"]; !ok || len(hidden) != 1 {
		t.Errorf("hidden = %v, want exactly {b}", sortedKeys(hidden))
	}
	if edges := st.VisibleEdges(); len(edges) != 0 {
		var ids []string
		for _, e := range edges {
			ids = append(ids, e.ID)
		}
		t.Errorf("visible edges = %v, want none", ids)
	}

	var visible []string
	for _, n := range st.VisibleNodes() {
		visible = append(visible, n.ID)
	}
	slices.Sort(visible)
	if !slices.Equal(visible, []string{"a", RootNodeID}) {
		t.Errorf("visible nodes = %v, want [a root]", visible)
	}
}
