package rdf

import (
	"fmt"
	"math"

	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/vec"
)

// Displacement returns a-b using the nearest periodic image along each axis.
// A component whose magnitude is lower or equal to half of the box is left
// unchanged.
func Displacement(a, b, box vec.Vec3) vec.Vec3 {
	d := a.Sub(b)
	for k := 0; k < 3; k++ {
		if math.Abs(d[k]) > box[k]/2 {
			d[k] -= box[k] * math.Round(d[k]/box[k])
		}
	}
	return d
}

// Distance returns the minimum image distance between a and b.
func Distance(a, b, box vec.Vec3) float64 {
	return Displacement(a, b, box).Norm()
}

// CheckBox returns an error wrapping ErrBoxTooSmall for the first frame where
// rmax is greater than half of a side of the box. In that case the neighbors
// beyond the nearest image are missing and g(r) is underestimated near rmax.
func CheckBox(t traj.Trajectory, rmax float64) error {
	for i, f := range t {
		for k := 0; k < 3; k++ {
			if rmax > f.Box[k]/2 {
				return fmt.Errorf("%w: frame %d, axis %d (rmax %g, half box %g)",
					ErrBoxTooSmall, i, k, rmax, f.Box[k]/2)
			}
		}
	}
	return nil
}
