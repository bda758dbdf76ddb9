package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

func stats() *model.Stats {
	return &model.Stats{
		Pipes:             3,
		Nodes:             12,
		Elements:          11,
		Restraints:        4,
		FittingsApplied:   map[piping.FittingKind]int{piping.KindElbow: 2},
		FittingsSkipped:   map[piping.FittingKind]int{piping.KindTee: 1},
		LoadsApplied:      map[string]int{"dead": 5},
		LoadsDropped:      map[string]int{"dead": 1, "wind": 2},
		UnresolvedMasters: 1,
		SlugLoads:         2,
	}
}

func TestRecord(t *testing.T) {
	r := NewRegistry()
	r.Record(stats())
	r.Record(stats())
	r.Record(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.BuildsTotal))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.ModelNodes))
	assert.Equal(t, 11.0, testutil.ToFloat64(r.ModelElements))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.ModelRestraints))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.FittingsTotal.WithLabelValues("Elbow", "applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.FittingsTotal.WithLabelValues("Tee", "skipped")))
	assert.Equal(t, 10.0, testutil.ToFloat64(r.LoadsTotal.WithLabelValues("dead", "applied")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.LoadsTotal.WithLabelValues("wind", "dropped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.UnresolvedMasters))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.Record(stats())

	path := filepath.Join(t.TempDir(), "pipemodel.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pipemodel_builds_total 1")
	assert.Contains(t, string(data), `pipemodel_fittings_total{kind="Elbow",status="applied"} 2`)
	assert.Contains(t, string(data), "pipemodel_model_nodes 12")
}

func TestGatherer(t *testing.T) {
	r := NewRegistry()
	r.Record(stats())

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "pipemodel_builds_total")
	assert.Contains(t, names, "pipemodel_loads_total")
	assert.Contains(t, names, "pipemodel_unresolved_masters_total")
}
