package rdf

import (
	"fmt"
	"math"

	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/util"
)

// PairNorm returns the number of solute-solvent pairs of f used to normalize
// every frame: N(N-1) if the species are the same (each pair is counted
// twice), N_solute*N_solvent otherwise. The number of atoms of each species is
// assumed constant, so it is computed once on the first frame.
func PairNorm(f traj.Frame, c Config) float64 {
	n := float64(len(SelectIndices(f, c.Solute)))
	if c.Solute == c.Solvent {
		return n * (n - 1)
	}
	return n * float64(len(SelectIndices(f, c.Solvent)))
}

// FrameHistogram returns the g(r) of a single frame. pairs is the result of
// PairNorm. If pairs is zero, every bin is zero.
func FrameHistogram(f traj.Frame, c Config, pairs float64) (Histogram, error) {
	h := NewHistogram(c.NumBins)
	err := fill(h, f, c, pairs)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func fill(h Histogram, f traj.Frame, c Config, pairs float64) error {
	for k := 0; k < 3; k++ {
		if !(f.Box[k] > 0) {
			return fmt.Errorf("%w: side %d is %g", ErrInvalidBox, k, f.Box[k])
		}
	}

	count(h, f, c)
	normalize(h, c.BinWidth(), pairs, f.Volume())
	return nil
}

// count adds the raw number of pairs in each bin. With a single species, every
// pair i<j is added twice because each atom is both a center and a neighbor.
func count(h Histogram, f traj.Frame, c Config) {
	dr := c.BinWidth()
	solute := SelectIndices(f, c.Solute)

	if c.Solute == c.Solvent {
		for i, at1 := range solute {
			for _, at2 := range solute[i+1:] {
				h.add(Distance(f.Atoms[at1].Pos, f.Atoms[at2].Pos, f.Box), c.MaxCutoff, dr, 2.)
			}
		}
		return
	}

	solvent := SelectIndices(f, c.Solvent)
	for _, at1 := range solute {
		for _, at2 := range solvent {
			h.add(Distance(f.Atoms[at1].Pos, f.Atoms[at2].Pos, f.Box), c.MaxCutoff, dr, 1.)
		}
	}
}

// add adds w to the bin of r. Distances equal to zero or greater or equal to
// rmax are ignored.
func (h Histogram) add(r, rmax, dr, w float64) {
	if r <= 0 || r >= rmax {
		return
	}

	k := int(r / dr)
	if k >= len(h) { // r/dr rounded up to len(h)
		k = len(h) - 1
	}
	h[k] += w
}

// normalize divides each bin by the number of pairs an ideal gas of the same
// density would have in the shell of the bin.
func normalize(h Histogram, dr, pairs, vol float64) {
	if pairs <= 0 {
		for k := range h {
			h[k] = 0
		}
		return
	}

	rho := pairs / vol
	for k := range h {
		rmid := (float64(k) + 0.5) * dr
		h[k] /= 4. * math.Pi * rho * util.Pow(rmid, 2) * dr
	}
}
