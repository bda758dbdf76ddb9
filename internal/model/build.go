// Package model assembles the analysis model document from a piping
// project: node, element and member tables, restraints, accumulated loads
// and the derived tables the solver consumes.
package model

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/asme"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/discretize"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/fitting"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Options for Build
type Options struct {
	Logger *slog.Logger

	// Overrides the project discretization limit when > 0 (m)
	DiscretizationLimit float64
}

// Stats summarizes one Build.
type Stats struct {
	Pipes      int
	Pieces     int
	Nodes      int
	Elements   int
	Restraints int

	FittingsApplied map[piping.FittingKind]int
	FittingsSkipped map[piping.FittingKind]int

	LoadsApplied map[string]int // by table: dead, live, wind
	LoadsDropped map[string]int

	UnresolvedMasters int
	SlugLoads         int
}

func newStats() *Stats {
	return &Stats{
		FittingsApplied: make(map[piping.FittingKind]int),
		FittingsSkipped: make(map[piping.FittingKind]int),
		LoadsApplied:    make(map[string]int),
		LoadsDropped:    make(map[string]int),
	}
}

// Build validates the project and converts it into an analysis model
// document. The project is not modified.
func Build(p *piping.Project, opts Options) (*Document, *Stats, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid project: %w", err)
	}

	proj := *p
	proj.Pipes = piping.CloneAll(p.Pipes)
	proj.DeadLoads = append([]piping.LoadSpec(nil), p.DeadLoads...)
	proj.LiveLoads = append([]piping.LoadSpec(nil), p.LiveLoads...)
	proj.WindLoads = append([]piping.LoadSpec(nil), p.WindLoads...)
	if opts.DiscretizationLimit > 0 {
		proj.DiscretizationLimit = opts.DiscretizationLimit
	}
	proj.Prepare()

	stats := newStats()
	stats.Pipes = len(proj.Pipes)

	segs, report := fitting.RewriteAll(proj.Pipes)
	for _, o := range report.Outcomes {
		if o.Applied {
			stats.FittingsApplied[o.Kind]++
			log.Debug("fitting rewritten", "pipe", o.Pipe, "kind", o.Kind, "bodies", o.Bodies)
			continue
		}
		stats.FittingsSkipped[o.Kind]++
		log.Warn("fitting skipped", "pipe", o.Pipe, "kind", o.Kind, "reason", o.Reason)
	}

	pieces := discretize.SplitValves(discretize.Discretize(&proj, segs))
	stats.Pieces = len(pieces)

	asm := Assemble(pieces)
	stats.Nodes, stats.Elements = len(asm.Nodes), len(asm.Elements)
	log.Info("model assembled", "nodes", stats.Nodes, "elements", stats.Elements)

	idx := piping.NewIndex(segs)
	beamNodes, unresolved := MapRestraints(asm, idx)
	for _, bn := range beamNodes {
		stats.Restraints += len(bn.Restraints)
	}
	stats.UnresolvedMasters = unresolved
	if unresolved > 0 {
		log.Warn("slave supports without master node", "count", unresolved)
	}

	dead, live := NewAccumulator(), NewAccumulator()
	wind := &WindLoads{Accumulator: NewAccumulator()}
	for _, t := range []struct {
		name  string
		acc   *Accumulator
		loads []piping.LoadSpec
	}{
		{"dead", dead, proj.DeadLoads},
		{"live", live, proj.LiveLoads},
		{"wind", wind.Accumulator, proj.WindLoads},
	} {
		d := Distribute(t.acc, t.loads, asm, make(map[string]bool))
		stats.LoadsApplied[t.name] = d.Applied
		stats.LoadsDropped[t.name] = len(d.Dropped)
		for _, id := range d.Dropped {
			log.Debug("load dropped", "table", t.name, "load", id)
		}
	}
	if proj.SelfWeight {
		AddSelfWeight(dead, asm)
	}
	wind.Exposure = WindExposureData(asm, proj.Wind)

	design := proj.DesignParameters.Merge(asme.DefaultDesignParameters())
	combos := proj.LoadCombinations
	if len(combos) == 0 {
		combos = asme.DefaultLoadCombinations()
	}

	doc := &Document{
		ID:                         proj.ID,
		LineNo:                     proj.LineNo,
		SystemNo:                   systemNo(asm),
		StructuralNaturalFrequency: proj.NaturalFrequency,
		Nodes:                      make(map[int]*Node, len(asm.Nodes)),
		BeamElements:               make(map[int]*BeamElement, len(asm.Elements)),
		BeamNodes:                  beamNodes,
		Members:                    asm.Members,
		DeadLoad:                   dead,
		LiveLoad:                   live,
		WindLoads:                  wind,
		SlugLoads:                  SlugData(asm, idx, proj.SlugLoads),
		FlangeData:                 FlangeData(asm, segs),
		NonStraightElementData:     NonStraightData(asm),
		ValveData:                  ValveData(asm),
		SeismicData:                SeismicTable(asm, proj.Seismic),
		LoadCombinations:           combos,
		DesignParameters:           design,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	for _, n := range asm.Nodes {
		doc.Nodes[n.Label] = n
	}
	for _, e := range asm.Elements {
		doc.BeamElements[e.Label] = e
	}
	doc.TemperatureLoad, doc.PressureLoad = ThermalData(asm, design.AmbientTemperature)
	stats.SlugLoads = len(doc.SlugLoads)

	return doc, stats, nil
}

// systemNo joins the distinct real pipe names in element order.
func systemNo(a *Assembly) string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range a.Elements {
		if !seen[e.Pipe] {
			seen[e.Pipe] = true
			names = append(names, e.Pipe)
		}
	}
	return strings.Join(names, ",")
}
