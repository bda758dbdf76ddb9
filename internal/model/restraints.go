package model

import (
	"github.com/dexterlegrand/threejs-asets-sub009/internal/discretize"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Boundary condition categories
const (
	CategoryFixed      = "Fixed"
	CategoryRestrained = "Restrained"
	CategorySlave      = "Slave"
)

type attachment struct {
	piece    *discretize.Piece
	supports []piping.Support
}

// MapRestraints converts the supports attached to piece ends into node
// restraint records. Every support id is realized once, at the first node
// (in label order) where it is found. Slave supports resolve their master
// point on the master pipe; unresolved masters are counted and left nil.
func MapRestraints(a *Assembly, idx *piping.Index) (map[int]*BeamNode, int) {
	byNode := make(map[int][]attachment)
	for _, p := range a.Pieces {
		if len(p.StartSupports) > 0 {
			n := a.mustNode(p.Start)
			byNode[n] = append(byNode[n], attachment{p, p.StartSupports})
		}
		if len(p.EndSupports) > 0 {
			n := a.mustNode(p.End)
			byNode[n] = append(byNode[n], attachment{p, p.EndSupports})
		}
	}

	out := make(map[int]*BeamNode)
	consumed := make(map[int]bool)
	unresolved := 0
	for _, node := range a.Nodes {
		for _, att := range byNode[node.Label] {
			for _, sp := range att.supports {
				if consumed[sp.ID] {
					continue
				}
				consumed[sp.ID] = true

				bn, ok := out[node.Label]
				if !ok {
					bn = &BeamNode{Label: node.Label}
					out[node.Label] = bn
				}
				bn.Restraints = append(bn.Restraints, restraint(sp))
				bn.Category = category(bn.Category, sp.Type)

				if sp.IsSlave() {
					if m, ok := masterNode(a, idx, sp); ok {
						bn.MasterNode = &m
					} else {
						unresolved++
					}
				}
			}
		}
	}
	return out, unresolved
}

func masterNode(a *Assembly, idx *piping.Index, sp piping.Support) (int, bool) {
	seg, ok := idx.Get(sp.MasterPipe)
	if !ok {
		return 0, false
	}
	return a.NodeAt(seg.PointAt(sp.MasterDistance - seg.Offset))
}

// category returns the node category after adding a support of type t.
// Fixed wins over Slave, Slave over Restrained.
func category(current, t string) string {
	next := CategoryRestrained
	switch t {
	case piping.SupportAnchor:
		next = CategoryFixed
	case piping.SupportSlave:
		next = CategorySlave
	}
	rank := map[string]int{"": 0, CategoryRestrained: 1, CategorySlave: 2, CategoryFixed: 3}
	if rank[next] > rank[current] {
		return next
	}
	return current
}

func restraint(sp piping.Support) Restraint {
	r := Restraint{
		SupportID: sp.ID,
		Type:      sp.Type,
		Direction: sp.Direction,
		ValueType: sp.ValueType,
		Mu:        sp.Mu,
	}
	v := sp.Clone().Values()
	switch sp.ValueType {
	case piping.ValueStiffness:
		r.Kx, r.Ky, r.Kz, r.KMx, r.KMy, r.KMz = v[0], v[1], v[2], v[3], v[4], v[5]
	case piping.ValueAllowable:
		r.AllowX, r.AllowY, r.AllowZ, r.AllowRX, r.AllowRY, r.AllowRZ = v[0], v[1], v[2], v[3], v[4], v[5]
	case piping.ValueApplied:
		r.ApplX, r.ApplY, r.ApplZ, r.ApplRX, r.ApplRY, r.ApplRZ = v[0], v[1], v[2], v[3], v[4], v[5]
	}
	return r
}
