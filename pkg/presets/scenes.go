package presets

import (
	"math"

	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/scene"
)

const quarter = geom.TAU / 4

func backface(color string) *scene.Backface {
	b := scene.BackfaceColor(color)
	return &b
}

func buildBox(p Params) *scene.Anchor {
	root := newRoot(p, true)
	scene.NewBox(scene.BoxOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: scene.AnchorOptions{AddTo: root},
			Color:         Garnet,
			Stroke:        geom.F(0),
		},
		Width:      geom.F(80),
		Height:     geom.F(80),
		Depth:      geom.F(80),
		RearFace:   scene.FaceColor(Gold),
		LeftFace:   scene.FaceColor(Orange),
		RightFace:  scene.FaceColor(Yellow),
		TopFace:    scene.FaceColor(Eggplant),
		BottomFace: scene.FaceColor(Ink),
	})
	return root
}

func buildShapes(p Params) *scene.Anchor {
	root := newRoot(p, true)
	stroke := geom.F(4)

	scene.NewRect(scene.RectOptions{
		ShapeOptions: scene.ShapeOptions{AnchorOptions: at(root, -70, -40, 0), Color: Garnet, Stroke: stroke},
		Width:        geom.F(40),
		Height:       geom.F(40),
	})
	scene.NewRoundedRect(scene.RoundedRectOptions{
		ShapeOptions: scene.ShapeOptions{AnchorOptions: at(root, 0, -40, 0), Color: Orange, Stroke: stroke, Fill: scene.Bool(true)},
		Width:        geom.F(40),
		Height:       geom.F(40),
		CornerRadius: geom.F(10),
	})
	scene.NewEllipse(scene.EllipseOptions{
		ShapeOptions: scene.ShapeOptions{AnchorOptions: at(root, 70, -40, 0), Color: Gold, Stroke: stroke},
		Diameter:     geom.F(40),
	})
	scene.NewPolygon(scene.PolygonOptions{
		ShapeOptions: scene.ShapeOptions{AnchorOptions: at(root, -70, 40, 0), Color: Eggplant, Stroke: stroke, Fill: scene.Bool(true)},
		Radius:       geom.F(22),
		Sides:        scene.Int(5),
	})
	scene.NewShape(scene.ShapeOptions{
		AnchorOptions: at(root, 0, 40, 0),
		Path: []scene.PathElement{
			scene.PointAt(-20, -10, 0),
			scene.PointAt(0, 10, 20),
			scene.PointAt(20, -10, 0),
		},
		Closed: scene.Bool(false),
		Color:  Ink,
		Stroke: stroke,
	})
	scene.NewShape(scene.ShapeOptions{
		AnchorOptions: at(root, 70, 40, 0),
		Color:         Garnet,
		Stroke:        geom.F(20),
	})
	return root
}

func buildSolids(p Params) *scene.Anchor {
	root := newRoot(p, true)
	upright := scene.V(quarter, 0, 0)

	scene.NewHemisphere(scene.HemisphereOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: scene.AnchorOptions{AddTo: root, Translate: scene.V(-50, -30, 0), Rotate: upright},
			Color:         Gold,
			Backface:      backface(Orange),
			Stroke:        geom.F(0),
		},
		Diameter: geom.F(50),
	})
	scene.NewCone(scene.ConeOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: scene.AnchorOptions{AddTo: root, Translate: scene.V(50, -15, 0), Rotate: upright},
			Color:         Garnet,
			Backface:      backface(Eggplant),
			Stroke:        geom.F(0),
		},
		Diameter: geom.F(50),
		Length:   geom.F(50),
	})
	scene.NewCylinder(scene.CylinderOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: scene.AnchorOptions{AddTo: root, Translate: scene.V(-50, 40, 0), Rotate: upright},
			Color:         Eggplant,
			Stroke:        geom.F(0),
		},
		Diameter:  geom.F(40),
		Length:    geom.F(40),
		FrontFace: Yellow,
	})
	scene.NewBox(scene.BoxOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: at(root, 50, 40, 0),
			Color:         Orange,
			Stroke:        geom.F(0),
		},
		Width:   geom.F(40),
		Height:  geom.F(40),
		Depth:   geom.F(40),
		TopFace: scene.FaceColor(Yellow),
	})
	return root
}

var moonColors = []string{Garnet, Orange, Cream}

func buildOrbit(p Params) *scene.Anchor {
	root := newRoot(p, false)

	planet := scene.NewAnchor(scene.AnchorOptions{AddTo: root, Rotate: scene.V(0, p.Time*geom.TAU, 0)})
	scene.NewHemisphere(scene.HemisphereOptions{
		ShapeOptions: scene.ShapeOptions{AnchorOptions: scene.AnchorOptions{AddTo: planet}, Color: Gold, Stroke: geom.F(0)},
		Diameter:     geom.F(60),
	})
	scene.NewHemisphere(scene.HemisphereOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: scene.AnchorOptions{AddTo: planet, Rotate: scene.V(0, geom.TAU/2, 0)},
			Color:         Yellow,
			Stroke:        geom.F(0),
		},
		Diameter: geom.F(60),
	})

	for i, color := range moonColors {
		fi := float64(i)
		tilt := scene.NewAnchor(scene.AnchorOptions{
			AddTo:  root,
			Rotate: scene.V(quarter-0.3+fi*0.3, 0, fi*geom.TAU/6),
		})
		radius := 50 + 15*fi
		scene.NewEllipse(scene.EllipseOptions{
			ShapeOptions: scene.ShapeOptions{AnchorOptions: scene.AnchorOptions{AddTo: tilt}, Color: Cream, Stroke: geom.F(0.5)},
			Diameter:     geom.F(radius * 2),
		})
		// Integer turns per loop keep the animation seamless.
		theta := (p.Time*(fi+1) + fi/3) * geom.TAU
		scene.NewShape(scene.ShapeOptions{
			AnchorOptions: at(tilt, radius*math.Cos(theta), radius*math.Sin(theta), 0),
			Color:         color,
			Stroke:        geom.F(14 - 3*fi),
		})
	}
	return root
}

var layerColors = []string{Eggplant, Garnet, Orange, Gold, Yellow}

func buildTower(p Params) *scene.Anchor {
	root := newRoot(p, false)

	ground := scene.NewGroup(scene.GroupOptions{AnchorOptions: at(root, 0, 56, 0)})
	scene.NewRoundedRect(scene.RoundedRectOptions{
		ShapeOptions: scene.ShapeOptions{
			AnchorOptions: scene.AnchorOptions{AddTo: ground, Rotate: scene.V(quarter, 0, 0)},
			Color:         "#ddd",
			Fill:          scene.Bool(true),
			Stroke:        geom.F(0),
		},
		Width:        geom.F(130),
		Height:       geom.F(130),
		CornerRadius: geom.F(16),
	})

	const layers = 6
	for i := range layers {
		fi := float64(i)
		dir := 1.0
		if i%2 == 1 {
			dir = -1
		}
		size := 90 - 12*fi
		scene.NewBox(scene.BoxOptions{
			ShapeOptions: scene.ShapeOptions{
				AnchorOptions: scene.AnchorOptions{
					AddTo:     root,
					Translate: scene.V(0, 48-16*fi, 0),
					Rotate:    scene.V(0, fi*geom.TAU/16+dir*p.Time*geom.TAU/4, 0),
				},
				Color:  layerColors[i%len(layerColors)],
				Stroke: geom.F(0),
			},
			Width:   geom.F(size),
			Height:  geom.F(14),
			Depth:   geom.F(size),
			TopFace: scene.FaceColor(Cream),
		})
	}
	return root
}
