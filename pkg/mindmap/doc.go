// Package mindmap provides the mutable graph store and visibility engine at
// the core of the mindmesh diagram editor.
//
// # Overview
//
// A mind map is a directed graph of labeled nodes and routed edges. The
// [Store] owns the canonical node set, edge set, and collapsed-node set; it
// is the single source of truth, and every other component mutates the graph
// exclusively through its operations. The rendered view is a pure function
// of the store's exposed state.
//
// # Basic Usage
//
// Create a store with [New] (which also creates the reserved root node), add
// nodes with [Store.AddNode], and connect them with [Store.AddEdge]:
//
//	st := mindmap.New()
//	st.AddNode(mindmap.Node{ID: "a", Label: "First idea"})
//	st.AddEdge(mindmap.Edge{ID: "e1", Source: mindmap.RootNodeID, Target: "a", Arrow: mindmap.ArrowForward})
//
// # Node Kinds
//
// Nodes come in three behavioral variants:
//
//   - [NodeKindContent]: regular labeled topic boxes with a subject color
//   - [NodeKindWaypoint]: structural nodes that bend a connection into two
//     rendered segments (see the editor package's topology operations)
//   - [NodeKindInfo]: free-standing informational notes
//
// Waypoints are ordinary graph nodes rather than a parallel "path point"
// concept, so storage, visibility rules, and the deletion cascade apply to
// them uniformly. The cost is that the "exactly one inbound, one outbound"
// waypoint shape is maintained by the editor's topology operations by
// convention, not by a type-level guarantee.
//
// # Collapse and Visibility
//
// [Store.ToggleCollapse] marks a node collapsed. [ComputeHidden] derives the
// hidden set by walking edges source → target from every collapsed node; the
// collapsed node itself stays visible while its descendants vanish. Derived
// state is recomputed from scratch on every query — graphs are human-edited
// and bounded to hundreds of nodes, so correctness simplicity wins over
// incremental maintenance.
//
// # Concurrency
//
// Store instances are not safe for concurrent use. All mutation is expected
// to run synchronously inside the handler of the triggering user gesture,
// one gesture at a time.
package mindmap
