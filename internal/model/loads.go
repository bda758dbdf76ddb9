package model

import (
	"fmt"
	"math"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Load is a six component force/moment set.
type Load struct {
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
	Fz float64 `json:"fz"`
	Mx float64 `json:"mx"`
	My float64 `json:"my"`
	Mz float64 `json:"mz"`
}

func (l *Load) add(c [6]float64) {
	l.Fx += c[0]
	l.Fy += c[1]
	l.Fz += c[2]
	l.Mx += c[3]
	l.My += c[4]
	l.Mz += c[5]
}

// Accumulator sums point loads per node label and UDLs per element label.
type Accumulator struct {
	PointLoads map[int]*Load `json:"pointLoads"`
	UDLs       map[int]*Load `json:"udls"`
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		PointLoads: make(map[int]*Load),
		UDLs:       make(map[int]*Load),
	}
}

// AddPoint adds c to the point load at node.
func (a *Accumulator) AddPoint(node int, c [6]float64) {
	l, ok := a.PointLoads[node]
	if !ok {
		l = &Load{}
		a.PointLoads[node] = l
	}
	l.add(c)
}

// AddUDL adds c to the UDL on element.
func (a *Accumulator) AddUDL(element int, c [6]float64) {
	l, ok := a.UDLs[element]
	if !ok {
		l = &Load{}
		a.UDLs[element] = l
	}
	l.add(c)
}

// Distribution counts what happened to one load table.
type Distribution struct {
	Applied int
	Dropped []string // ids of loads that found no node or element
}

// Distribute applies a dead, live or wind load table to the assembly.
// Point loads go to the element end whose as-drawn distance equals the
// load distance; UDLs go to every element of the pipe lying inside the
// span. consumed holds the load keys already applied and is updated, so a
// load is never counted twice even if it is distributed again.
func Distribute(acc *Accumulator, loads []piping.LoadSpec, a *Assembly, consumed map[string]bool) Distribution {
	var d Distribution
	for _, l := range loads {
		hit := false
		for i, p := range a.Pieces {
			if p.IsBody() || p.Pipe() != l.Pipe {
				continue
			}
			e := a.Elements[i]
			s, end := p.DrawnStart(), p.DrawnEnd()

			if l.IsUDL() {
				if !geom.Within(s, l.Distance, l.EndDistance) || !geom.Within(end, l.Distance, l.EndDistance) {
					continue
				}
				key := fmt.Sprintf("%s#%d", l.ID, e.Label)
				hit = true
				if consumed[key] {
					continue
				}
				consumed[key] = true
				acc.AddUDL(e.Label, l.Components())
				d.Applied++
				continue
			}

			if !geom.Within(l.Distance, s, end) {
				continue
			}
			var node int
			switch {
			case geom.EqualDist(l.Distance, s):
				node = e.Node1
			case geom.EqualDist(l.Distance, end):
				node = e.Node2
			default:
				continue
			}
			hit = true
			if !consumed[l.ID] {
				consumed[l.ID] = true
				acc.AddPoint(node, l.Components())
				d.Applied++
			}
			break
		}
		if !hit {
			d.Dropped = append(d.Dropped, l.ID)
		}
	}
	return d
}

// AddSelfWeight adds the operating weight of every element (pipe, contents
// and insulation) as a downward UDL in kg/m.
func AddSelfWeight(acc *Accumulator, a *Assembly) {
	for _, e := range a.Elements {
		props := a.Sections[e.Label]
		if props == nil {
			continue
		}
		if w := props.TotalWeight(); w > 0 {
			acc.AddUDL(e.Label, [6]float64{0, -w, 0, 0, 0, 0})
		}
	}
}

// slugForce returns the impulsive force (N) of a slug of density rho (kg/m³)
// at velocity v (m/s) through a flow area (m²) turning by theta degrees.
func slugForce(rho, v, area, dlf, theta float64) float64 {
	return dlf * rho * v * v * area * math.Sqrt(2*(1-math.Cos(geom.Rad(theta))))
}
