package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Engine selects the Graphviz layout engine. Empty picks "neato"
	// when positions are pinned (neato honors pos attributes) and
	// "dot" otherwise.
	Engine string

	// UseStoredPositions pins nodes to their canvas coordinates via
	// pos attributes. When false the engine lays the graph out freely.
	UseStoredPositions bool
}

func (o Options) layout() graphviz.Layout {
	if o.Engine != "" {
		return graphviz.Layout(o.Engine)
	}
	if o.UseStoredPositions {
		return graphviz.NEATO
	}
	return graphviz.DOT
}

// ToDOT converts the visible subgraph of a map to Graphviz DOT format.
// Collapsed branches are omitted entirely. The resulting DOT string can
// be rendered with [RenderSVG] or [RenderPNG].
//
// Waypoints become tiny point nodes so a bent connection draws as two
// segments meeting at the bend; content and info nodes are filled boxes
// using their effective color.
func ToDOT(st *mindmap.Store, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range st.VisibleNodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range st.VisibleEdges() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n mindmap.Node, opts Options) []string {
	var attrs []string
	if n.IsWaypoint() {
		attrs = append(attrs, "shape=point", "width=0.05", "label=\"\"")
	} else {
		attrs = append(attrs,
			fmt.Sprintf("label=%q", n.DisplayLabel()),
			fmt.Sprintf("fillcolor=%q", n.EffectiveColor()))
		if n.IsInfo() {
			attrs = append(attrs, "shape=note", "style=filled")
		}
	}
	if opts.UseStoredPositions {
		attrs = append(attrs, fmt.Sprintf(`pos="%g,%g!"`, n.Pos.X, -n.Pos.Y))
	}
	return attrs
}

func edgeAttrs(e mindmap.Edge) []string {
	attrs := []string{fmt.Sprintf("dir=%s", dirFor(e.Arrow))}
	if e.Routing == mindmap.RoutingDashed {
		attrs = append(attrs, "style=dashed")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Style.Stroke != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Style.Stroke))
	}
	if e.Style.Width > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%g", e.Style.Width))
	}
	if e.Style.LabelColor != "" {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", e.Style.LabelColor))
	}
	return attrs
}

func dirFor(a mindmap.ArrowMode) string {
	switch a {
	case mindmap.ArrowForward:
		return "forward"
	case mindmap.ArrowBoth:
		return "both"
	case mindmap.ArrowBackward:
		return "back"
	default:
		return "none"
	}
}

// Render renders a DOT graph in the requested format ("svg" or "png").
func Render(dot, format string, opts Options) ([]byte, error) {
	switch format {
	case "svg":
		return RenderSVG(dot, opts)
	case "png":
		return RenderPNG(dot, opts)
	case "dot":
		return []byte(dot), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported render format %q", format)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string, opts Options) ([]byte, error) {
	return render(dot, opts, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string, opts Options) ([]byte, error) {
	return render(dot, opts, graphviz.PNG, nil)
}

func render(dot string, opts Options, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(opts.layout())

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
