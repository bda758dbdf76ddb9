package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// View selects the two global axes an export projects onto.
type View string

const (
	Plan      View = "plan"      // X right, Z up
	Elevation View = "elevation" // X right, Y up
	Side      View = "side"      // Z right, Y up
)

var (
	pipeColor    = color.Black
	fittingColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	valveColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	fixedColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	supportColor = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	slaveColor   = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// project maps a node to plot coordinates in meters.
func (v View) project(n *model.Node) plotter.XY {
	switch v {
	case Elevation:
		return plotter.XY{X: n.X / 1000, Y: n.Y / 1000}
	case Side:
		return plotter.XY{X: n.Z / 1000, Y: n.Y / 1000}
	}
	return plotter.XY{X: n.X / 1000, Y: n.Z / 1000}
}

func (v View) axes() (string, string) {
	switch v {
	case Elevation:
		return "X (m)", "Y (m)"
	case Side:
		return "Z (m)", "Y (m)"
	}
	return "X (m)", "Z (m)"
}

// ExportPlanView exports the plan view of a model to an image file
func ExportPlanView(doc *model.Document, filename string) error {
	return ExportView(doc, Plan, filename, false)
}

// ExportView draws every beam element of doc projected on view, colored by
// element kind, with restrained nodes marked by category. Node labels are
// drawn when labels is set. The format follows the file extension.
func ExportView(doc *model.Document, view View, filename string, labels bool) error {
	if len(doc.BeamElements) == 0 {
		return fmt.Errorf("model %s has no elements", doc.ID)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s view %s", view, doc.SystemNo)
	p.X.Label.Text, p.Y.Label.Text = view.axes()
	p.Legend.Top = true

	legend := make(map[string]bool)
	for _, e := range doc.SortedElements() {
		n1, n2 := doc.Nodes[e.Node1], doc.Nodes[e.Node2]
		if n1 == nil || n2 == nil {
			return fmt.Errorf("element %d references a missing node", e.Label)
		}
		l, err := plotter.NewLine(plotter.XYs{view.project(n1), view.project(n2)})
		if err != nil {
			return err
		}
		name := "pipe"
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = pipeColor
		switch e.Type {
		case piping.PST:
		case piping.VALVE:
			name = "valve"
			l.LineStyle.Width = vg.Points(4)
			l.LineStyle.Color = valveColor
		default:
			name = "fitting"
			l.LineStyle.Color = fittingColor
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(l)
		if !legend[name] {
			legend[name] = true
			p.Legend.Add(name, l)
		}
	}

	for _, c := range []struct {
		category string
		color    color.Color
		shape    draw.GlyphDrawer
	}{
		{model.CategoryFixed, fixedColor, draw.BoxGlyph{}},
		{model.CategoryRestrained, supportColor, draw.TriangleGlyph{}},
		{model.CategorySlave, slaveColor, draw.CircleGlyph{}},
	} {
		var pts plotter.XYs
		for _, bn := range doc.BeamNodes {
			if bn.Category != c.category {
				continue
			}
			if n := doc.Nodes[bn.Label]; n != nil {
				pts = append(pts, view.project(n))
			}
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = c.color
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Shape = c.shape
		p.Add(s)
		p.Legend.Add(c.category, s)
	}

	if labels {
		nodes := doc.SortedNodes()
		xy := plotter.XYLabels{
			XYs:    make([]plotter.XY, len(nodes)),
			Labels: make([]string, len(nodes)),
		}
		for i, n := range nodes {
			xy.XYs[i] = view.project(n)
			xy.Labels[i] = fmt.Sprint(n.Label)
		}
		l, err := plotter.NewLabels(xy)
		if err != nil {
			return err
		}
		p.Add(l)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportWindChart exports the wind force per direction as a bar chart
func ExportWindChart(dirs []*model.WindDirection, filename string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("no wind directions")
	}

	p := plot.New()
	p.Title.Text = "Wind Exposure"
	p.X.Label.Text = "Direction (°)"
	p.Y.Label.Text = "Force (N)"

	values := make(plotter.Values, len(dirs))
	names := make([]string, len(dirs))
	for i, d := range dirs {
		values[i] = d.Force
		names[i] = fmt.Sprintf("%.0f", d.Angle)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = supportColor
	bars.LineStyle.Color = fittingColor
	p.Add(bars)
	p.NominalX(names...)

	return save(p, 6*vg.Inch, 4*vg.Inch, filename)
}

// save writes p to filename, creating the directory if needed. Unknown
// extensions get .png appended.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
