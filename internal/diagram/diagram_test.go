package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

func sample(t *testing.T) *model.Document {
	t.Helper()
	params := piping.Params{OD: 168.3, Thickness: 7.11}
	pp1 := &piping.Segment{Name: "PP1", Line: "L1", Start: r3.Vec{}, End: r3.Vec{X: 6}, Params: params}
	pp1.Params.EndConnector = &piping.Fitting{Kind: piping.KindElbow, Elbow: &piping.Elbow{Radius: 0.2}}
	pp1.Params.Valve = &piping.Valve{Type: "Gate", Position: piping.AtDistance(2), Length: 0.3}
	pp1.Params.Supports = []piping.Support{{ID: 1, Type: piping.SupportAnchor, Distance: 0}}
	pp2 := &piping.Segment{Name: "PP2", Line: "L1", Preceding: "PP1", Start: r3.Vec{X: 6}, End: r3.Vec{X: 6, Z: 4}, Params: params}
	pp2.Params.Supports = []piping.Support{{ID: 2, Type: piping.SupportSliding, Distance: 4}}

	doc, _, err := model.Build(&piping.Project{
		DiscretizationLimit: 2,
		Wind:                piping.WindConfig{Speed: 25},
		Pipes:               []*piping.Segment{pp1, pp2},
	}, model.Options{})
	require.NoError(t, err)
	return doc
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("MODEL", []string{"Nodes: 12", "Elements: 11 (2 fittings)"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	for _, l := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(l)), l)
	}
	assert.Contains(t, lines[1], "MODEL")
	assert.Contains(t, lines[4], "Elements: 11 (2 fittings)")
}

func TestDrawPipeStrip(t *testing.T) {
	doc := sample(t)
	strip := DrawPipeStrip(doc, 40)
	assert.Contains(t, strip, "PP1")
	assert.Contains(t, strip, "PP2")
	assert.Contains(t, strip, "▓")
	assert.Contains(t, strip, "╮")
	assert.Contains(t, strip, "┼")

	assert.Empty(t, DrawPipeStrip(&model.Document{}, 40))
}

func TestDrawWindBars(t *testing.T) {
	doc := sample(t)
	bars := DrawWindBars(doc.WindLoads.Exposure)
	assert.Equal(t, 8, strings.Count(bars, "°"))
	assert.Contains(t, bars, "█")

	graph := DrawWindGraph(doc.WindLoads.Exposure)
	assert.Contains(t, graph, "wind force (N)")
	assert.Contains(t, graph, "45.0° steps")
	assert.Empty(t, DrawWindGraph(nil))
}

func TestExportViews(t *testing.T) {
	doc := sample(t)
	dir := t.TempDir()

	for _, name := range []string{"plan.png", "plan.svg", "sub/plan.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportPlanView(doc, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	path := filepath.Join(dir, "elevation")
	require.NoError(t, ExportView(doc, Elevation, path, true))
	_, err := os.Stat(path + ".png")
	assert.NoError(t, err)

	require.NoError(t, ExportWindChart(doc.WindLoads.Exposure, filepath.Join(dir, "wind.png")))

	assert.Error(t, ExportPlanView(&model.Document{}, filepath.Join(dir, "empty.png")))
	assert.Error(t, ExportWindChart(nil, filepath.Join(dir, "none.png")))
}
