package editor

import (
	"fmt"

	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// Tool selects how a connect gesture is interpreted.
type Tool int

const (
	// ToolOneWay creates a direct edge with a forward arrowhead. This is the
	// default tool.
	ToolOneWay Tool = iota
	// ToolTwoWay creates a direct edge with arrowheads at both ends.
	ToolTwoWay
	// ToolInfo creates a midpoint waypoint carrying the pending label,
	// connected by two arrowless segments.
	ToolInfo
	// ToolNodeBox ignores the gesture endpoints and creates a free-standing
	// content node near the source instead of an edge.
	ToolNodeBox
	// ToolDotted creates a dashed edge.
	ToolDotted
	// ToolWaypoint turns edge clicks into waypoint insertions.
	ToolWaypoint
)

// String returns the serialization name of the tool.
func (t Tool) String() string {
	switch t {
	case ToolTwoWay:
		return "twoway"
	case ToolInfo:
		return "info"
	case ToolNodeBox:
		return "nodebox"
	case ToolDotted:
		return "dotted"
	case ToolWaypoint:
		return "waypoint"
	default:
		return "oneway"
	}
}

// ParseTool converts a serialization name back to a Tool.
func ParseTool(s string) (Tool, error) {
	switch s {
	case "oneway", "":
		return ToolOneWay, nil
	case "twoway":
		return ToolTwoWay, nil
	case "info":
		return ToolInfo, nil
	case "nodebox":
		return ToolNodeBox, nil
	case "dotted":
		return ToolDotted, nil
	case "waypoint":
		return ToolWaypoint, nil
	}
	return ToolOneWay, fmt.Errorf("unknown tool %q", s)
}

// Tools lists every tool in a stable order, for UI cycling.
func Tools() []Tool {
	return []Tool{ToolOneWay, ToolTwoWay, ToolInfo, ToolNodeBox, ToolDotted, ToolWaypoint}
}

// Pending is the bundle of connection style attributes applied to the next
// edge a connect gesture creates.
type Pending struct {
	Label string // label for the next connection
	// NoArrow suppresses arrowheads even for the one-way and dotted tools.
	// It is the explicit "none" arrow-mode setting; the tools otherwise
	// derive their arrow mode themselves.
	NoArrow         bool
	Stroke          string
	Width           float64
	LabelBackground bool
	LabelBG         string
	LabelColor      string
}

// style converts the pending attributes into an edge style.
func (p Pending) style() mindmap.EdgeStyle {
	return mindmap.EdgeStyle{
		Stroke:          p.Stroke,
		Width:           p.Width,
		LabelBackground: p.LabelBackground,
		LabelBG:         p.LabelBG,
		LabelColor:      p.LabelColor,
	}
}

// arrowFor derives the arrow mode the tool produces under the pending
// settings. Only the tools that create a single edge consult this.
func (p Pending) arrowFor(t Tool) mindmap.ArrowMode {
	if p.NoArrow {
		return mindmap.ArrowNone
	}
	switch t {
	case ToolTwoWay:
		return mindmap.ArrowBoth
	default:
		return mindmap.ArrowForward
	}
}
