package layout

import (
	"testing"

	"github.com/luminaflow/studio-go/pkg/types"
)

func TestNodeAnchors(t *testing.T) {
	n := types.Node{ID: "a", Position: types.Position{X: 50, Y: 100}}

	anchors := NodeAnchors(n)

	if anchors.Out.X != 230 || anchors.Out.Y != 140 {
		t.Errorf("output anchor = (%g, %g), want (230, 140)", anchors.Out.X, anchors.Out.Y)
	}
	if anchors.In.X != 50 || anchors.In.Y != 140 {
		t.Errorf("input anchor = (%g, %g), want (50, 140)", anchors.In.X, anchors.In.Y)
	}
}

func TestCurveBetween(t *testing.T) {
	t.Run("control points pin anchor y at horizontal midpoint", func(t *testing.T) {
		a := types.Node{ID: "a", Position: types.Position{X: 50, Y: 100}}
		b := types.Node{ID: "b", Position: types.Position{X: 300, Y: 100}}

		curve := CurveBetween(NodeAnchors(a).Out, NodeAnchors(b).In)

		// A's output anchor is at x=230, B's input anchor at x=300;
		// midpoint x = 265, both anchors sit at y = 140.
		if curve.Control1.X != 265 || curve.Control1.Y != 140 {
			t.Errorf("control1 = (%g, %g), want (265, 140)", curve.Control1.X, curve.Control1.Y)
		}
		if curve.Control2.X != 265 || curve.Control2.Y != 140 {
			t.Errorf("control2 = (%g, %g), want (265, 140)", curve.Control2.X, curve.Control2.Y)
		}
		if curve.Start != (Point{X: 230, Y: 140}) {
			t.Errorf("start = %+v, want (230, 140)", curve.Start)
		}
		if curve.End != (Point{X: 300, Y: 140}) {
			t.Errorf("end = %+v, want (300, 140)", curve.End)
		}
	})

	t.Run("vertical offset pins each control to its own anchor", func(t *testing.T) {
		curve := CurveBetween(Point{X: 180, Y: 40}, Point{X: 400, Y: 240})

		if curve.Control1.Y != 40 {
			t.Errorf("control1 y = %g, want 40", curve.Control1.Y)
		}
		if curve.Control2.Y != 240 {
			t.Errorf("control2 y = %g, want 240", curve.Control2.Y)
		}
		if curve.Control1.X != 290 || curve.Control2.X != 290 {
			t.Errorf("control x = (%g, %g), want both 290", curve.Control1.X, curve.Control2.X)
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		src := Point{X: 230, Y: 140}
		dst := Point{X: 300, Y: 333.25}

		first := CurveBetween(src, dst)
		second := CurveBetween(src, dst)

		if first != second {
			t.Errorf("curves differ: %+v vs %+v", first, second)
		}
	})
}

func TestCurvePath(t *testing.T) {
	curve := CurveBetween(Point{X: 230, Y: 140}, Point{X: 300, Y: 140})

	want := "M 230 140 C 265 140, 265 140, 300 140"
	if got := curve.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	wf := &types.Workflow{
		ID: "wf",
		Nodes: []types.Node{
			{ID: "a", Kind: types.NodeKindTrigger, Position: types.Position{X: 50, Y: 100}},
			{ID: "b", Kind: types.NodeKindAction, Position: types.Position{X: 300, Y: 100}},
		},
		Connections: []types.Connection{
			{ID: "c1", Source: "a", Target: "b"},
		},
	}

	t.Run("renders boxes and edges", func(t *testing.T) {
		r := Render(wf)

		if len(r.Boxes) != 2 {
			t.Fatalf("expected 2 boxes, got %d", len(r.Boxes))
		}
		if r.Boxes[0].Width != NodeWidth || r.Boxes[0].Height != NodeHeight {
			t.Errorf("box size = (%g, %g), want (%g, %g)", r.Boxes[0].Width, r.Boxes[0].Height, NodeWidth, NodeHeight)
		}
		if len(r.Edges) != 1 {
			t.Fatalf("expected 1 edge, got %d", len(r.Edges))
		}
		if r.Edges[0].ConnectionID != "c1" {
			t.Errorf("edge connection id = %q, want %q", r.Edges[0].ConnectionID, "c1")
		}
		if r.Edges[0].Path == "" {
			t.Error("edge path should be rendered")
		}
	})

	t.Run("skips connections with unresolvable endpoints", func(t *testing.T) {
		stale := wf.Clone()
		stale.Connections = append(stale.Connections, types.Connection{ID: "c2", Source: "a", Target: "gone"})

		r := Render(stale)

		if len(r.Edges) != 1 {
			t.Errorf("expected stale connection to be skipped, got %d edges", len(r.Edges))
		}
	})
}
