package discretize

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Piece is one sub-segment produced by the discretizer. It becomes exactly
// one beam element and one member.
type Piece struct {
	Name    string          // <segment>.<n>
	Segment *piping.Segment // owning (rewritten) segment
	Index   int             // 1-based within the segment

	Start, End r3.Vec

	// Distances (m) of the ends from the current segment start
	StartDist, EndDist float64

	// Supports realized at each end
	StartSupports []piping.Support
	EndSupports   []piping.Support

	// Valve is set on the single piece carrying the segment's valve
	Valve *piping.Valve

	Element piping.ElementType

	StartReleases piping.Releases
	EndReleases   piping.Releases
}

// Length of the piece (m)
func (p *Piece) Length() float64 { return geom.Distance(p.Start, p.End) }

// Pipe returns the name of the real pipe the piece belongs to.
func (p *Piece) Pipe() string { return p.Segment.BaseName() }

// IsBody reports whether the piece is a fitting body.
func (p *Piece) IsBody() bool { return !p.Segment.IsPipe() }

// DrawnStart returns StartDist in the as-drawn frame of the owning pipe.
func (p *Piece) DrawnStart() float64 { return p.StartDist + p.Segment.Offset }

// DrawnEnd returns EndDist in the as-drawn frame of the owning pipe.
func (p *Piece) DrawnEnd() float64 { return p.EndDist + p.Segment.Offset }

func (p *Piece) String() string {
	return fmt.Sprintf("%s [%.4f, %.4f] %s", p.Name, p.StartDist, p.EndDist, p.Element)
}

// renumber assigns indexes and names per owning segment in list order.
func renumber(pieces []*Piece) {
	n := make(map[*piping.Segment]int)
	for _, p := range pieces {
		n[p.Segment]++
		p.Index = n[p.Segment]
		p.Name = fmt.Sprintf("%s.%d", p.Segment.Name, p.Index)
	}
}
