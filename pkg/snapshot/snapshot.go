// Package snapshot defines the canonical serialization format for mind
// maps and the conversions between it and the live store.
//
// The format is human-readable JSON designed for round-trip fidelity:
// serialize → deserialize produces an equivalent store, including the
// collapse set. The same shape is stored in MongoDB via bson tags.
package snapshot

import (
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// =============================================================================
// Snapshot - Canonical Serialization Format
// =============================================================================

// Snapshot is the wire and storage representation of a complete mind map.
// Used for API responses, file persistence, caching, and import/export.
type Snapshot struct {
	Nodes     []Node   `json:"nodes" bson:"nodes"`
	Edges     []Edge   `json:"edges" bson:"edges"`
	Collapsed []string `json:"collapsed,omitempty" bson:"collapsed,omitempty"`
}

// Node is the serialized form of a mind map node.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Kind     string   `json:"kind" bson:"kind"`
	Position Position `json:"position" bson:"position"`
	Label    string   `json:"label,omitempty" bson:"label,omitempty"`
	Subject  string   `json:"subject,omitempty" bson:"subject,omitempty"`
	Color    string   `json:"color,omitempty" bson:"color,omitempty"`
}

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge is the serialized form of a directed connection.
type Edge struct {
	ID          string `json:"id" bson:"id"`
	Source      string `json:"source" bson:"source"`
	Target      string `json:"target" bson:"target"`
	RoutingKind string `json:"routingKind" bson:"routingKind"`
	ArrowMode   string `json:"arrowMode" bson:"arrowMode"`
	Label       string `json:"label,omitempty" bson:"label,omitempty"`
	Style       *Style `json:"style,omitempty" bson:"style,omitempty"`
}

// Style carries the optional visual overrides of an edge. A nil Style
// means the renderer defaults apply.
type Style struct {
	Stroke          string  `json:"stroke,omitempty" bson:"stroke,omitempty"`
	Width           float64 `json:"width,omitempty" bson:"width,omitempty"`
	LabelBackground bool    `json:"labelBackground,omitempty" bson:"labelBackground,omitempty"`
	LabelBG         string  `json:"labelBg,omitempty" bson:"labelBg,omitempty"`
	LabelColor      string  `json:"labelColor,omitempty" bson:"labelColor,omitempty"`
}

// =============================================================================
// Store ↔ Snapshot Conversion
// =============================================================================

// FromStore converts a live store to its serialization format.
// Nodes are sorted by ID for deterministic output; edges keep their
// insertion order. The collapse set is emitted verbatim, stale IDs
// included, so that re-importing preserves collapse state for nodes
// that may be re-created later.
func FromStore(st *mindmap.Store) Snapshot {
	nodes := st.Nodes()
	slices.SortFunc(nodes, func(a, b mindmap.Node) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	out := Snapshot{
		Nodes:     make([]Node, len(nodes)),
		Edges:     make([]Edge, st.EdgeCount()),
		Collapsed: st.Collapsed(),
	}

	for i, n := range nodes {
		out.Nodes[i] = nodeFromStore(n)
	}
	for i, e := range st.Edges() {
		out.Edges[i] = edgeFromStore(e)
	}

	return out
}

// ToStore builds a fresh store from a snapshot. The live store a caller
// may hold is never touched: on any error the partial result is
// discarded, so a failed import cannot corrupt existing state.
//
// Unknown kinds, routings, arrow modes, duplicate IDs, and dangling
// edge endpoints all fail with FORMAT_ERROR. A snapshot without a root
// node is rejected the same way.
func ToStore(snap Snapshot) (*mindmap.Store, error) {
	st := mindmap.New()
	seenRoot := false

	for _, nj := range snap.Nodes {
		if err := errors.ValidateNodeID(nj.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "snapshot node")
		}
		if err := errors.ValidateHexColor(nj.Color); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "node %s", nj.ID)
		}
		kind, err := mindmap.ParseNodeKind(nj.Kind)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "node %s", nj.ID)
		}
		n := mindmap.Node{
			ID:      nj.ID,
			Kind:    kind,
			Pos:     mindmap.Position{X: nj.Position.X, Y: nj.Position.Y},
			Label:   nj.Label,
			Subject: mindmap.Subject(nj.Subject),
			Color:   nj.Color,
		}
		if !n.Subject.Valid() {
			return nil, errors.New(errors.ErrCodeFormat, "node %s: unknown subject %q", nj.ID, nj.Subject)
		}
		if n.ID == mindmap.RootNodeID {
			// New() already created the root; apply the snapshot's
			// position and label instead of re-adding.
			seenRoot = true
			err = st.UpdateNode(mindmap.RootNodeID, mindmap.NodePatch{
				Pos:     &n.Pos,
				Label:   &n.Label,
				Subject: &n.Subject,
				Color:   &n.Color,
			})
		} else {
			err = st.AddNode(n)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "node %s", nj.ID)
		}
	}
	if !seenRoot {
		return nil, errors.New(errors.ErrCodeFormat, "snapshot has no root node")
	}

	for _, ej := range snap.Edges {
		e, err := edgeToStore(ej)
		if err != nil {
			return nil, err
		}
		if err := st.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "edge %s", ej.ID)
		}
	}

	// Set-insert rather than toggle, so a duplicated ID in a hand-edited
	// snapshot cannot flip itself back off.
	for _, id := range snap.Collapsed {
		if !st.IsCollapsed(id) {
			st.ToggleCollapse(id)
		}
	}

	return st, nil
}

// =============================================================================
// JSON Encoding
// =============================================================================

// Marshal serializes a snapshot to indented JSON.
func Marshal(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal snapshot")
	}
	return data, nil
}

// Unmarshal parses JSON bytes into a snapshot. Malformed JSON fails
// with FORMAT_ERROR; structural validation happens later in ToStore.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeFormat, err, "parse snapshot")
	}
	return snap, nil
}

// Decode is the full import path: parse JSON and build a store.
func Decode(data []byte) (*mindmap.Store, error) {
	snap, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return ToStore(snap)
}

// Encode is the full export path: snapshot a store and marshal it.
func Encode(st *mindmap.Store) ([]byte, error) {
	return Marshal(FromStore(st))
}

// Write encodes a store as indented JSON to w.
func Write(w io.Writer, st *mindmap.Store) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write snapshot")
	}
	return nil
}

// Read parses a JSON snapshot from r and builds a store.
func Read(r io.Reader) (*mindmap.Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read snapshot")
	}
	return Decode(data)
}

// WriteFile exports a store to a JSON snapshot file at path.
func WriteFile(path string, st *mindmap.Store) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}

// ReadFile imports a store from a JSON snapshot file at path. The file
// is fully validated before a store is returned, so a malformed file
// never yields a partial result.
func ReadFile(path string) (*mindmap.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}
	return Decode(data)
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromStore(n mindmap.Node) Node {
	return Node{
		ID:       n.ID,
		Kind:     n.Kind.String(),
		Position: Position{X: n.Pos.X, Y: n.Pos.Y},
		Label:    n.Label,
		Subject:  string(n.Subject),
		Color:    n.Color,
	}
}

func edgeFromStore(e mindmap.Edge) Edge {
	out := Edge{
		ID:          e.ID,
		Source:      e.Source,
		Target:      e.Target,
		RoutingKind: e.Routing.String(),
		ArrowMode:   e.Arrow.String(),
		Label:       e.Label,
	}
	if e.Style != (mindmap.EdgeStyle{}) {
		out.Style = &Style{
			Stroke:          e.Style.Stroke,
			Width:           e.Style.Width,
			LabelBackground: e.Style.LabelBackground,
			LabelBG:         e.Style.LabelBG,
			LabelColor:      e.Style.LabelColor,
		}
	}
	return out
}

func edgeToStore(ej Edge) (mindmap.Edge, error) {
	routing, err := mindmap.ParseRoutingKind(ej.RoutingKind)
	if err != nil {
		return mindmap.Edge{}, errors.Wrap(errors.ErrCodeFormat, err, "edge %s", ej.ID)
	}
	arrow, err := mindmap.ParseArrowMode(ej.ArrowMode)
	if err != nil {
		return mindmap.Edge{}, errors.Wrap(errors.ErrCodeFormat, err, "edge %s", ej.ID)
	}
	e := mindmap.Edge{
		ID:      ej.ID,
		Source:  ej.Source,
		Target:  ej.Target,
		Routing: routing,
		Arrow:   arrow,
		Label:   ej.Label,
	}
	if ej.Style != nil {
		e.Style = mindmap.EdgeStyle{
			Stroke:          ej.Style.Stroke,
			Width:           ej.Style.Width,
			LabelBackground: ej.Style.LabelBackground,
			LabelBG:         ej.Style.LabelBG,
			LabelColor:      ej.Style.LabelColor,
		}
	}
	return e, nil
}
