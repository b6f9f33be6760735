// Package layout repositions map nodes on the canvas.
//
// The grid repack is a tidy-up operation for imported maps that carry
// no usable coordinates: visible content and info nodes are reseated on
// a regular grid, and every waypoint is moved to the midpoint of its
// neighbours so bent connections stay readable.
package layout

import (
	"slices"

	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// Options controls grid geometry. Zero values fall back to defaults.
type Options struct {
	CellW float64 // horizontal spacing between grid cells
	CellH float64 // vertical spacing between grid cells
	Cols  int     // cells per row
}

const (
	defaultCellW = 220
	defaultCellH = 120
	defaultCols  = 5
)

func (o Options) withDefaults() Options {
	if o.CellW <= 0 {
		o.CellW = defaultCellW
	}
	if o.CellH <= 0 {
		o.CellH = defaultCellH
	}
	if o.Cols <= 0 {
		o.Cols = defaultCols
	}
	return o
}

// Repack lays the visible content and info nodes out on a grid, sorted
// by ID for deterministic output, with the root pinned to the first
// cell. Hidden nodes keep their positions so expanding a collapsed
// branch restores its old shape. Waypoints are never grid cells; after
// the pass each visible waypoint sits at the midpoint of its inbound
// source and outbound target.
func Repack(st *mindmap.Store, opts Options) error {
	opts = opts.withDefaults()
	visible := st.VisibleNodes()

	var boxes []mindmap.Node
	for _, n := range visible {
		if !n.IsWaypoint() {
			boxes = append(boxes, n)
		}
	}
	slices.SortFunc(boxes, func(a, b mindmap.Node) int {
		// Root first, then lexicographic.
		if a.ID == mindmap.RootNodeID {
			return -1
		}
		if b.ID == mindmap.RootNodeID {
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	for i, n := range boxes {
		pos := mindmap.Position{
			X: float64(i%opts.Cols) * opts.CellW,
			Y: float64(i/opts.Cols) * opts.CellH,
		}
		if err := st.UpdateNode(n.ID, mindmap.NodePatch{Pos: &pos}); err != nil {
			return err
		}
	}

	for _, n := range visible {
		if !n.IsWaypoint() {
			continue
		}
		if err := reseatWaypoint(st, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// reseatWaypoint moves a well-formed waypoint to the midpoint of its
// neighbours. Malformed bends are left in place.
func reseatWaypoint(st *mindmap.Store, id string) error {
	in := st.Inbound(id)
	out := st.Outbound(id)
	if len(in) != 1 || len(out) != 1 {
		return nil
	}
	src, ok := st.Node(in[0].Source)
	if !ok {
		return nil
	}
	dst, ok := st.Node(out[0].Target)
	if !ok {
		return nil
	}
	pos := mindmap.Midpoint(src.Pos, dst.Pos)
	return st.UpdateNode(id, mindmap.NodePatch{Pos: &pos})
}
