// Package nodelink renders mind maps as node-link diagrams via Graphviz.
//
// The package converts the visible subgraph to DOT and rasterizes it
// with goccy/go-graphviz. Hidden branches never reach the DOT output,
// so an export of a partially collapsed map matches what the editor
// shows on screen.
package nodelink
