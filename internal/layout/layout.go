// Package layout computes the deterministic geometry used to render a
// workflow: node bounding boxes, connection anchor points, and the cubic
// bezier curves drawn between them.
package layout

import (
	"fmt"

	"github.com/luminaflow/studio-go/pkg/types"
)

// Every node renders as a fixed-size rectangle.
const (
	NodeWidth  = 180.0
	NodeHeight = 80.0
)

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is a node's rendered bounding rectangle.
type Box struct {
	NodeID string  `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Anchors are the fixed attachment points on a node's boundary: Out is the
// midpoint of the right edge, In the midpoint of the left edge.
type Anchors struct {
	Out Point `json:"out"`
	In  Point `json:"in"`
}

// Curve is a cubic bezier from a source node's output anchor to a target
// node's input anchor.
type Curve struct {
	Start    Point `json:"start"`
	Control1 Point `json:"control1"`
	Control2 Point `json:"control2"`
	End      Point `json:"end"`
}

// Path renders the curve as an SVG path string.
func (c Curve) Path() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		c.Start.X, c.Start.Y,
		c.Control1.X, c.Control1.Y,
		c.Control2.X, c.Control2.Y,
		c.End.X, c.End.Y)
}

// NodeBox returns the bounding rectangle for a node.
func NodeBox(n types.Node) Box {
	return Box{
		NodeID: n.ID,
		X:      n.Position.X,
		Y:      n.Position.Y,
		Width:  NodeWidth,
		Height: NodeHeight,
	}
}

// NodeAnchors returns the output and input anchor points for a node.
func NodeAnchors(n types.Node) Anchors {
	midY := n.Position.Y + NodeHeight/2
	return Anchors{
		Out: Point{X: n.Position.X + NodeWidth, Y: midY},
		In:  Point{X: n.Position.X, Y: midY},
	}
}

// CurveBetween computes the bezier between two anchor points. Both control
// points sit at the horizontal midpoint between the anchors; each keeps the
// y of its own anchor, giving a smooth S-curve regardless of vertical
// offset. The result is a pure function of its inputs.
func CurveBetween(src, dst Point) Curve {
	midX := (src.X + dst.X) / 2
	return Curve{
		Start:    src,
		Control1: Point{X: midX, Y: src.Y},
		Control2: Point{X: midX, Y: dst.Y},
		End:      dst,
	}
}

// Edge is the rendered geometry of one connection.
type Edge struct {
	ConnectionID string `json:"connection_id"`
	Curve        Curve  `json:"curve"`
	Path         string `json:"path"`
}

// Rendering is the full geometry of a workflow, ready for the canvas.
type Rendering struct {
	Boxes []Box  `json:"boxes"`
	Edges []Edge `json:"edges"`
}

// Render computes boxes for every node and curves for every connection.
// A connection whose endpoints do not both resolve is skipped rather than
// reported: post-validation this cannot happen, but a stale reference during
// a concurrent edit must not break the view.
func Render(w *types.Workflow) *Rendering {
	out := &Rendering{
		Boxes: make([]Box, 0, len(w.Nodes)),
		Edges: make([]Edge, 0, len(w.Connections)),
	}

	for _, n := range w.Nodes {
		out.Boxes = append(out.Boxes, NodeBox(n))
	}

	for _, c := range w.Connections {
		src, ok := w.FindNode(c.Source)
		if !ok {
			continue
		}
		dst, ok := w.FindNode(c.Target)
		if !ok {
			continue
		}
		curve := CurveBetween(NodeAnchors(src).Out, NodeAnchors(dst).In)
		out.Edges = append(out.Edges, Edge{
			ConnectionID: c.ID,
			Curve:        curve,
			Path:         curve.Path(),
		})
	}

	return out
}
