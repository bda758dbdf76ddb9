// Package metrics exposes the statistics of model builds as prometheus
// collectors on a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
)

// Registry holds the build metrics
type Registry struct {
	BuildsTotal prometheus.Counter

	// Size of the last model
	ModelPipes      prometheus.Gauge
	ModelNodes      prometheus.Gauge
	ModelElements   prometheus.Gauge
	ModelRestraints prometheus.Gauge
	ModelSlugLoads  prometheus.Gauge

	FittingsTotal     *prometheus.CounterVec
	LoadsTotal        *prometheus.CounterVec
	UnresolvedMasters prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.BuildsTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "pipemodel_builds_total",
		Help: "Total number of analysis models built",
	})

	r.ModelPipes = f.NewGauge(prometheus.GaugeOpts{
		Name: "pipemodel_model_pipes",
		Help: "Pipes in the last built model",
	})
	r.ModelNodes = f.NewGauge(prometheus.GaugeOpts{
		Name: "pipemodel_model_nodes",
		Help: "Nodes in the last built model",
	})
	r.ModelElements = f.NewGauge(prometheus.GaugeOpts{
		Name: "pipemodel_model_elements",
		Help: "Beam elements in the last built model",
	})
	r.ModelRestraints = f.NewGauge(prometheus.GaugeOpts{
		Name: "pipemodel_model_restraints",
		Help: "Support restraints realized in the last built model",
	})
	r.ModelSlugLoads = f.NewGauge(prometheus.GaugeOpts{
		Name: "pipemodel_model_slug_loads",
		Help: "Slug load records in the last built model",
	})

	r.FittingsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipemodel_fittings_total",
			Help: "Fittings processed by the topology rewriter",
		},
		[]string{"kind", "status"},
	)
	r.LoadsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipemodel_loads_total",
			Help: "Load records distributed to the model",
		},
		[]string{"table", "status"},
	)
	r.UnresolvedMasters = f.NewCounter(prometheus.CounterOpts{
		Name: "pipemodel_unresolved_masters_total",
		Help: "Slave supports whose master node could not be found",
	})

	return r
}

// Gatherer returns the underlying registry for exposition.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Record adds the statistics of one build.
func (r *Registry) Record(s *model.Stats) {
	if s == nil {
		return
	}
	r.BuildsTotal.Inc()

	r.ModelPipes.Set(float64(s.Pipes))
	r.ModelNodes.Set(float64(s.Nodes))
	r.ModelElements.Set(float64(s.Elements))
	r.ModelRestraints.Set(float64(s.Restraints))
	r.ModelSlugLoads.Set(float64(s.SlugLoads))

	for kind, n := range s.FittingsApplied {
		r.FittingsTotal.WithLabelValues(string(kind), "applied").Add(float64(n))
	}
	for kind, n := range s.FittingsSkipped {
		r.FittingsTotal.WithLabelValues(string(kind), "skipped").Add(float64(n))
	}
	for table, n := range s.LoadsApplied {
		r.LoadsTotal.WithLabelValues(table, "applied").Add(float64(n))
	}
	for table, n := range s.LoadsDropped {
		r.LoadsTotal.WithLabelValues(table, "dropped").Add(float64(n))
	}
	r.UnresolvedMasters.Add(float64(s.UnresolvedMasters))
}

// WriteTextfile writes the current values in the text exposition format to
// path, for the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Gatherer())
}
