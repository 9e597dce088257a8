package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/scene"
)

func TestToDOT_Basic(t *testing.T) {
	root := scene.NewAnchor(scene.AnchorOptions{})
	group := scene.NewGroup(scene.GroupOptions{AnchorOptions: scene.AnchorOptions{AddTo: root}})
	scene.NewShape(scene.ShapeOptions{AnchorOptions: scene.AnchorOptions{AddTo: group}})

	dot := ToDOT(root, Options{})

	for _, want := range []string{
		"digraph G",
		`"n0" [label="Anchor"]`,
		`"n1" [label="Group"]`,
		`"n2" [label="Shape"]`,
		`"n0" -> "n1"`,
		`"n1" -> "n2"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	root := scene.NewAnchor(scene.AnchorOptions{})
	scene.NewShape(scene.ShapeOptions{
		AnchorOptions: scene.AnchorOptions{
			AddTo:     root,
			Translate: scene.V(1, 2, 3),
			Rotate:    scene.V(0, geom.TAU/4, 0),
		},
		Color: "#e62",
	})
	root.UpdateGraph()

	dot := ToDOT(root, Options{Detailed: true})

	for _, want := range []string{
		"translate: (1.00, 2.00, 3.00)",
		"rotate: (0.00, 1.57, 0.00)",
		"color: #e62",
		"depth: 3.00",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "scale:") {
		t.Error("ToDOT() detailed output lists a unit scale")
	}
}

func TestToDOT_Generated(t *testing.T) {
	root := scene.NewAnchor(scene.AnchorOptions{})
	scene.NewBox(scene.BoxOptions{ShapeOptions: scene.ShapeOptions{AnchorOptions: scene.AnchorOptions{AddTo: root}}})

	tests := []struct {
		name      string
		opts      Options
		wantRects int
	}{
		{name: "hidden", opts: Options{}, wantRects: 0},
		{name: "shown", opts: Options{Generated: true}, wantRects: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(root, tt.opts)
			if got := strings.Count(dot, `label="Rect"`); got != tt.wantRects {
				t.Errorf("Rect nodes = %d, want %d", got, tt.wantRects)
			}
			if tt.wantRects > 0 && !strings.Contains(dot, "dashed") {
				t.Error("generated nodes should be dashed")
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		node scene.Node
		want string
	}{
		{scene.NewAnchor(scene.AnchorOptions{}), "Anchor"},
		{scene.NewEllipse(scene.EllipseOptions{}), "Ellipse"},
		{scene.NewCylinder(scene.CylinderOptions{}), "Cylinder"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.node); got != tt.want {
			t.Errorf("TypeName() = %q, want %q", got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`
	if !bytes.Contains(out, []byte(want)) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
