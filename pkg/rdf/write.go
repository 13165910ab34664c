package rdf

import (
	"fmt"
	"io"
	"math"

	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/util"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is the value G of a bin whose middle is at R.
type Point struct {
	R, G float64
}

// Points returns one point per bin of h.
func Points(h Histogram, dr float64) []Point {
	pts := make([]Point, len(h))
	for k, g := range h {
		pts[k] = Point{R: (float64(k) + 0.5) * dr, G: g}
	}
	return pts
}

// Write writes one line per bin: the middle of the bin and its value.
func Write(w io.Writer, h Histogram, dr float64) error {
	for _, p := range Points(h, dr) {
		_, err := fmt.Fprintf(w, "%g %g\n", p.R, p.G)
		if err != nil {
			return err
		}
	}
	return nil
}

// Coordination returns the running coordination number: the mean number of
// solvent atoms closer than the end of each bin, for a solvent of density rho.
func Coordination(h Histogram, dr, rho float64) []float64 {
	n := make([]float64, len(h))
	for k, g := range h {
		rmid := (float64(k) + 0.5) * dr
		n[k] = 4. * math.Pi * rho * util.Pow(rmid, 2) * dr * g
	}
	return floats.CumSum(n, n)
}

// Density returns the number of atoms labelled label in the first frame
// divided by the mean volume of the box.
func Density(t traj.Trajectory, label string) float64 {
	if len(t) == 0 {
		return 0
	}

	vols := make([]float64, len(t))
	for i, f := range t {
		vols[i] = f.Volume()
	}

	vol := stat.Mean(vols, nil)
	if vol <= 0 {
		return 0
	}
	return float64(len(SelectIndices(t[0], label))) / vol
}
