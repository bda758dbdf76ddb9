package piping

import (
	"sort"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
)

// FittingKind is the kind of fitting terminating a segment
type FittingKind string

const (
	KindElbow   FittingKind = "Elbow"
	KindReturn  FittingKind = "Return"
	KindReducer FittingKind = "Reducer"
	KindTee     FittingKind = "Tee"
	KindCap     FittingKind = "Cap"
)

// ElementType tags a beam element with its fitting type.
type ElementType string

const (
	PST   ElementType = "PST"   // straight pipe
	BWE   ElementType = "BWE"   // butt-weld elbow
	BCSM  ElementType = "BCSM"  // closely spaced miter bend
	BWSM  ElementType = "BWSM"  // widely spaced miter bend
	TW    ElementType = "TW"    // welding tee
	TRF   ElementType = "TRF"   // reinforced fabricated tee
	TURF  ElementType = "TURF"  // unreinforced fabricated tee
	TEW   ElementType = "TEW"   // extruded welding tee
	TWCI  ElementType = "TWCI"  // welded-in contour insert
	TBWF  ElementType = "TBWF"  // branch welded-on fitting
	VALVE ElementType = "VALVE" // valve portion split off a pipe element
)

// Fitting is the trailing fitting of a segment. Only the variant matching
// Kind is read.
type Fitting struct {
	Kind    FittingKind `json:"kind" validate:"required,oneof=Elbow Return Reducer Tee Cap"`
	Elbow   *Elbow      `json:"elbow,omitempty" validate:"required_if=Kind Elbow"`
	Return  *Return     `json:"return,omitempty" validate:"required_if=Kind Return"`
	Reducer *Reducer    `json:"reducer,omitempty" validate:"required_if=Kind Reducer"`
	Tee     *Tee        `json:"tee,omitempty" validate:"required_if=Kind Tee"`
}

// Elbow dimensions. Radius in m, thicknesses and spacing in mm.
type Elbow struct {
	Type         ElementType `json:"type" validate:"omitempty,oneof=BWE BCSM BWSM"`
	Radius       float64     `json:"radius" validate:"gt=0"`
	Thickness    float64     `json:"thickness"`
	MiterSpacing float64     `json:"miterSpacing"`
	Cutback      float64     `json:"cutback"`
	Fractions    []float64   `json:"fractions" validate:"dive,gt=0,lt=1"`
}

// Return (180° bend) dimensions. Radius in m.
type Return struct {
	Radius    float64 `json:"radius" validate:"gt=0"`
	Thickness float64 `json:"thickness"`
}

// Reducer dimensions. Length in m, diameters in mm.
type Reducer struct {
	Length    float64 `json:"length" validate:"gt=0"`
	LargeOD   float64 `json:"largeOD"`
	SmallOD   float64 `json:"smallOD"`
	Thickness float64 `json:"thickness"`
	Eccentric bool    `json:"eccentric"`
}

// Tee dimensions. Center-to-end lengths in m, the rest in mm.
type Tee struct {
	Type            ElementType `json:"type" validate:"omitempty,oneof=TW TRF TURF TEW TWCI TBWF"`
	RunLength       float64     `json:"runLength" validate:"gt=0"`
	BranchLength    float64     `json:"branchLength" validate:"gt=0"`
	Thickness       float64     `json:"thickness"`
	CrotchRadius    float64     `json:"crotchRadius"`
	CrotchThickness float64     `json:"crotchThickness"`
	PadThickness    float64     `json:"padThickness"`
	BranchOD        float64     `json:"branchOD"`
}

// Clone returns a deep copy of f.
func (f *Fitting) Clone() *Fitting {
	c := *f
	if f.Elbow != nil {
		e := *f.Elbow
		e.Fractions = append([]float64(nil), f.Elbow.Fractions...)
		c.Elbow = &e
	}
	if f.Return != nil {
		r := *f.Return
		c.Return = &r
	}
	if f.Reducer != nil {
		r := *f.Reducer
		c.Reducer = &r
	}
	if f.Tee != nil {
		t := *f.Tee
		c.Tee = &t
	}
	return &c
}

// ElementType returns the elbow's tag, BWE when unset.
func (e *Elbow) ElementType() ElementType {
	if e.Type == "" {
		return BWE
	}
	return e.Type
}

// SplitFractions returns the fractional points of the bend angle at which
// the bend is split into sub-arcs, ascending and without repeats.
func (e *Elbow) SplitFractions() []float64 {
	if len(e.Fractions) > 0 {
		fs := append([]float64(nil), e.Fractions...)
		sort.Float64s(fs)
		out := fs[:0]
		for _, f := range fs {
			if len(out) == 0 || !geom.EqualDist(f, out[len(out)-1]) {
				out = append(out, f)
			}
		}
		return out
	}
	switch e.ElementType() {
	case BCSM:
		return []float64{0.5}
	case BWSM:
		return []float64{1.0 / 3, 2.0 / 3}
	}
	return nil
}

// ElementType returns the tee's tag, TW when unset.
func (t *Tee) ElementType() ElementType {
	if t.Type == "" {
		return TW
	}
	return t.Type
}

// Descriptor is the geometric parameter block of a non-straight element.
// Each element type has its own field set.
type Descriptor interface {
	ElementType() ElementType
}

// BWEParams describes a butt-weld elbow or return (mm, degrees).
type BWEParams struct {
	Thickness  float64 `json:"thickness"`
	BendRadius float64 `json:"bendRadius"`
	Angle      float64 `json:"angle"`
}

// BCSMParams describes a closely spaced miter bend.
type BCSMParams struct {
	Thickness    float64 `json:"thickness"`
	BendRadius   float64 `json:"bendRadius"`
	Angle        float64 `json:"angle"`
	MiterSpacing float64 `json:"miterSpacing"`
}

// BWSMParams describes a widely spaced miter bend.
type BWSMParams struct {
	Thickness  float64 `json:"thickness"`
	BendRadius float64 `json:"bendRadius"`
	Angle      float64 `json:"angle"`
	Cutback    float64 `json:"cutback"`
}

// TWParams describes a welding tee.
type TWParams struct {
	Thickness       float64 `json:"thickness"`
	CrotchRadius    float64 `json:"crotchRadius"`
	CrotchThickness float64 `json:"crotchThickness"`
}

// TRFParams describes a reinforced fabricated tee.
type TRFParams struct {
	Thickness    float64 `json:"thickness"`
	PadThickness float64 `json:"padThickness"`
}

// TURFParams describes an unreinforced fabricated tee.
type TURFParams struct {
	Thickness float64 `json:"thickness"`
}

// TEWParams describes an extruded welding tee.
type TEWParams struct {
	Thickness       float64 `json:"thickness"`
	CrotchRadius    float64 `json:"crotchRadius"`
	CrotchThickness float64 `json:"crotchThickness"`
}

// TWCIParams describes a welded-in contour insert.
type TWCIParams struct {
	Thickness float64 `json:"thickness"`
	BranchOD  float64 `json:"branchOD"`
}

// TBWFParams describes a branch welded-on fitting.
type TBWFParams struct {
	Thickness float64 `json:"thickness"`
	BranchOD  float64 `json:"branchOD"`
}

func (BWEParams) ElementType() ElementType  { return BWE }
func (BCSMParams) ElementType() ElementType { return BCSM }
func (BWSMParams) ElementType() ElementType { return BWSM }
func (TWParams) ElementType() ElementType   { return TW }
func (TRFParams) ElementType() ElementType  { return TRF }
func (TURFParams) ElementType() ElementType { return TURF }
func (TEWParams) ElementType() ElementType  { return TEW }
func (TWCIParams) ElementType() ElementType { return TWCI }
func (TBWFParams) ElementType() ElementType { return TBWF }

// ElbowDescriptor builds the descriptor of an elbow sub-arc spanning angle
// degrees. thickness falls back to the pipe wall when the elbow has none.
func ElbowDescriptor(e *Elbow, angle, pipeThickness float64) Descriptor {
	th := e.Thickness
	if th == 0 {
		th = pipeThickness
	}
	r := geom.ToMM(e.Radius)
	switch e.ElementType() {
	case BCSM:
		return BCSMParams{Thickness: th, BendRadius: r, Angle: angle, MiterSpacing: e.MiterSpacing}
	case BWSM:
		return BWSMParams{Thickness: th, BendRadius: r, Angle: angle, Cutback: e.Cutback}
	}
	return BWEParams{Thickness: th, BendRadius: r, Angle: angle}
}

// TeeDescriptor builds the descriptor shared by all bodies of a tee.
func TeeDescriptor(t *Tee, pipeThickness float64) Descriptor {
	th := t.Thickness
	if th == 0 {
		th = pipeThickness
	}
	switch t.ElementType() {
	case TRF:
		return TRFParams{Thickness: th, PadThickness: t.PadThickness}
	case TURF:
		return TURFParams{Thickness: th}
	case TEW:
		return TEWParams{Thickness: th, CrotchRadius: t.CrotchRadius, CrotchThickness: t.CrotchThickness}
	case TWCI:
		return TWCIParams{Thickness: th, BranchOD: t.BranchOD}
	case TBWF:
		return TBWFParams{Thickness: th, BranchOD: t.BranchOD}
	}
	return TWParams{Thickness: th, CrotchRadius: t.CrotchRadius, CrotchThickness: t.CrotchThickness}
}
