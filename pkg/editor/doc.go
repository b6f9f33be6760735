// Package editor interprets user gestures against a mind-map store.
//
// # Overview
//
// The rendering collaborator resolves raw pointer input into discrete
// gestures — connect two points, click an edge, double-click an edge, click
// empty space, delete the selection — and hands them to a [Session]. The
// session is the explicit editing context: it owns the selected [Tool], the
// [Pending] connection style, and the current [Selection], and applies every
// gesture through the store's operations.
//
// # Connection Tool State Machine
//
// A connect gesture produces a different mutation per tool:
//
//   - [ToolOneWay] / [ToolTwoWay]: one direct edge, forward or bidirectional
//     arrowheads (or none when the pending setting says so)
//   - [ToolDotted]: one dashed edge
//   - [ToolInfo]: a midpoint waypoint plus two arrowless segments, the first
//     carrying the pending label
//   - [ToolNodeBox]: a free-standing content node near the source, no edge
//
// Every branch is total; the only failure is INVALID_REFERENCE when an
// endpoint was deleted between gesture start and commit.
//
// # Waypoint Topology
//
// [Session.SplitEdgeToWaypoint], [Session.InsertWaypointAt], and
// [Session.RemoveWaypoint] are the only legitimate way to create or collapse
// the waypoint bend shape (exactly one inbound and one outbound segment).
// Waypoints are ordinary nodes, so the shape is preserved by these
// operations by convention rather than by the type system; ad hoc edge edits
// can violate it, and RemoveWaypoint degrades to a no-op when they have.
//
// # Effects
//
// Gestures return an [Effect] listing created and removed element IDs, so
// front ends can update incrementally and tests can assert exactly what a
// gesture did. There is no undo stack: the only inverse of a gesture is the
// explicit opposite gesture.
package editor
