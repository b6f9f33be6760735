package mindmap

import "fmt"

// RootNodeID is the reserved identifier of the root node. Every store owns
// exactly one root; it is created by [New] and can never be removed.
const RootNodeID = "root"

// NodeKind distinguishes the behavioral variants of a node.
type NodeKind int

const (
	// NodeKindContent is a regular labeled topic box.
	NodeKindContent NodeKind = iota
	// NodeKindWaypoint is a structural node inserted to bend a single
	// logical connection into two rendered segments. A well-formed waypoint
	// has exactly one inbound and one outbound edge.
	NodeKindWaypoint
	// NodeKindInfo is a free-standing informational note.
	NodeKindInfo
)

// String returns the serialization name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeKindWaypoint:
		return "waypoint"
	case NodeKindInfo:
		return "info"
	default:
		return "content"
	}
}

// ParseNodeKind converts a serialization name back to a NodeKind.
func ParseNodeKind(s string) (NodeKind, error) {
	switch s {
	case "content", "":
		return NodeKindContent, nil
	case "waypoint":
		return NodeKindWaypoint, nil
	case "info":
		return NodeKindInfo, nil
	}
	return NodeKindContent, fmt.Errorf("unknown node kind %q", s)
}

// RoutingKind selects the stroke pattern of an edge. It affects only how the
// edge is drawn, never the graph topology.
type RoutingKind int

const (
	// RoutingDirect draws a solid stroke.
	RoutingDirect RoutingKind = iota
	// RoutingDashed draws a dashed stroke.
	RoutingDashed
)

// String returns the serialization name of the routing kind.
func (r RoutingKind) String() string {
	if r == RoutingDashed {
		return "dashed"
	}
	return "direct"
}

// ParseRoutingKind converts a serialization name back to a RoutingKind.
func ParseRoutingKind(s string) (RoutingKind, error) {
	switch s {
	case "direct", "":
		return RoutingDirect, nil
	case "dashed":
		return RoutingDashed, nil
	}
	return RoutingDirect, fmt.Errorf("unknown routing kind %q", s)
}

// ArrowMode controls which end(s) of an edge render an arrowhead.
//
// ArrowBackward exists so that splitting a bidirectional edge at a caller
// position stays lossless: the first segment keeps only the marker at the
// original source, which points backward relative to the segment direction.
type ArrowMode int

const (
	// ArrowNone renders no arrowheads.
	ArrowNone ArrowMode = iota
	// ArrowForward renders an arrowhead at the target end.
	ArrowForward
	// ArrowBoth renders arrowheads at both ends.
	ArrowBoth
	// ArrowBackward renders an arrowhead at the source end only.
	ArrowBackward
)

// String returns the serialization name of the arrow mode.
func (a ArrowMode) String() string {
	switch a {
	case ArrowForward:
		return "forward"
	case ArrowBoth:
		return "both"
	case ArrowBackward:
		return "backward"
	default:
		return "none"
	}
}

// ParseArrowMode converts a serialization name back to an ArrowMode.
func ParseArrowMode(s string) (ArrowMode, error) {
	switch s {
	case "none", "":
		return ArrowNone, nil
	case "forward":
		return ArrowForward, nil
	case "both":
		return ArrowBoth, nil
	case "backward":
		return ArrowBackward, nil
	}
	return ArrowNone, fmt.Errorf("unknown arrow mode %q", s)
}

// Markers splits the arrow mode into per-end booleans (source end, target end).
func (a ArrowMode) Markers() (start, end bool) {
	switch a {
	case ArrowForward:
		return false, true
	case ArrowBoth:
		return true, true
	case ArrowBackward:
		return true, false
	}
	return false, false
}

// ArrowModeFor builds an ArrowMode from per-end markers.
func ArrowModeFor(start, end bool) ArrowMode {
	switch {
	case start && end:
		return ArrowBoth
	case end:
		return ArrowForward
	case start:
		return ArrowBackward
	}
	return ArrowNone
}

// Subject is a fixed palette tag that gives content nodes a default color.
type Subject string

// Subject palette.
const (
	SubjectDefault  Subject = ""
	SubjectIdea     Subject = "idea"
	SubjectTask     Subject = "task"
	SubjectQuestion Subject = "question"
	SubjectRisk     Subject = "risk"
	SubjectNote     Subject = "note"
)

// subjectColors maps palette tags to their default fill colors.
var subjectColors = map[Subject]string{
	SubjectDefault:  "#ffffff",
	SubjectIdea:     "#fff3b0",
	SubjectTask:     "#bde0fe",
	SubjectQuestion: "#d8bbff",
	SubjectRisk:     "#ffb3ab",
	SubjectNote:     "#c9f2c7",
}

// Color returns the palette color for the subject, or the default-white
// fallback for unknown tags.
func (s Subject) Color() string {
	if c, ok := subjectColors[s]; ok {
		return c
	}
	return subjectColors[SubjectDefault]
}

// Valid reports whether the subject is a known palette tag.
func (s Subject) Valid() bool {
	_, ok := subjectColors[s]
	return ok
}

// Position is a 2D canvas coordinate.
type Position struct {
	X float64
	Y float64
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Position) Position {
	return Position{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Node is a vertex of the mind map.
//
// Label, Subject, and Color are meaningful for content and info nodes;
// waypoints carry neither label nor color of their own.
type Node struct {
	ID      string
	Kind    NodeKind
	Pos     Position
	Label   string
	Subject Subject
	Color   string // explicit override; empty means derive from Subject
}

// IsWaypoint reports whether the node bends a connection.
func (n Node) IsWaypoint() bool { return n.Kind == NodeKindWaypoint }

// IsContent reports whether the node is a regular topic box.
func (n Node) IsContent() bool { return n.Kind == NodeKindContent }

// IsInfo reports whether the node is an informational note.
func (n Node) IsInfo() bool { return n.Kind == NodeKindInfo }

// EffectiveColor returns the explicit color override if set, otherwise the
// color derived from the subject palette.
func (n Node) EffectiveColor() string {
	if n.Color != "" {
		return n.Color
	}
	return n.Subject.Color()
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// EdgeStyle bundles the stroke and label presentation of an edge.
type EdgeStyle struct {
	Stroke          string  // stroke color; empty means renderer default
	Width           float64 // stroke width; 0 means renderer default
	LabelBackground bool    // draw a filled box behind the label
	LabelBG         string  // label box fill color
	LabelColor      string  // label text color
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID      string
	Source  string
	Target  string
	Routing RoutingKind
	Arrow   ArrowMode
	Label   string
	Style   EdgeStyle
}
