// Package traj reads and writes trajectories made of XYZ frames with the size
// of an orthorhombic box in the header of each frame. A trajectory is loaded
// once and is never modified afterwards.
package traj

import (
	"errors"
	"fmt"
	"math"

	"github.com/kpotier/molrdf/pkg/vec"
)

var (
	// ErrEmpty is returned when the input doesn't contain any frame.
	ErrEmpty = errors.New("no frame found")

	// ErrMalformedHeader is returned when the header of a frame doesn't match
	// any known layout.
	ErrMalformedHeader = errors.New("malformed frame header")

	// ErrMalformedAtom is returned when an atom line doesn't contain a label
	// followed by three coordinates.
	ErrMalformedAtom = errors.New("malformed atom line")

	// ErrInvalidBox is returned when a side of a box is lower or equal to
	// zero.
	ErrInvalidBox = errors.New("invalid box")

	// ErrAtomCount is returned by CheckCount.
	ErrAtomCount = errors.New("number of atoms different from the header")
)

// Atom is a labelled position. The label is the chemical species ("O", "H",
// ...); two atoms are of the same species if their labels are equal.
type Atom struct {
	Label string
	Pos   vec.Vec3
}

// Frame is one snapshot of the simulation. Box is the period along each axis.
// Count is the number of atoms announced by the header; it differs from
// len(Atoms) for a truncated frame.
type Frame struct {
	Atoms []Atom
	Box   vec.Vec3
	Count int
}

// NewBox converts the size of a box given as a slice, e.g. in a configuration
// file. An empty slice gives a zero vector, i.e. the size is read from the
// trajectory.
func NewBox(b []float64) (vec.Vec3, error) {
	switch len(b) {
	case 0:
		return vec.Vec3{}, nil
	case 3:
	default:
		return vec.Vec3{}, fmt.Errorf("%w: length of box isn't equal to 3 but %d", ErrInvalidBox, len(b))
	}

	box := vec.New(b[0], b[1], b[2])
	return box, checkBox(box)
}

func checkBox(box vec.Vec3) error {
	for k := 0; k < 3; k++ {
		if !(box[k] > 0) {
			return fmt.Errorf("%w: size of the box must be positive (axis %d: %g)", ErrInvalidBox, k, box[k])
		}
	}
	return nil
}

// Volume returns the volume of the box.
func (f Frame) Volume() float64 {
	return f.Box.Prod()
}

// Fold returns a copy of the frame where every coordinate is wrapped into
// [0, L) along its axis.
func (f Frame) Fold() Frame {
	atoms := make([]Atom, len(f.Atoms))
	for i, a := range f.Atoms {
		var pos vec.Vec3
		for k := 0; k < 3; k++ {
			pos[k] = a.Pos[k] - f.Box[k]*math.Floor(a.Pos[k]/f.Box[k])
			if pos[k] >= f.Box[k] { // -tiny + L rounds to L
				pos[k] = 0
			}
		}
		atoms[i] = Atom{Label: a.Label, Pos: pos}
	}
	return Frame{Atoms: atoms, Box: f.Box, Count: f.Count}
}

// Trajectory is the ordered list of frames. The index of a frame is its
// identifier.
type Trajectory []Frame

// Range returns the frames [start, end). If end is lower or equal to zero, all
// the frames from start are returned.
func (t Trajectory) Range(start, end int) (Trajectory, error) {
	if end <= 0 {
		end = len(t)
	}

	if start < 0 || start >= end || end > len(t) {
		return nil, fmt.Errorf("range [%d, %d) out of bounds (%d frames)", start, end, len(t))
	}

	return t[start:end], nil
}

// CheckCount returns an error wrapping ErrAtomCount for the first frame whose
// number of atoms isn't the one announced by its header.
func (t Trajectory) CheckCount() error {
	for i, f := range t {
		if len(f.Atoms) != f.Count {
			return fmt.Errorf("%w: frame %d (%d atoms, header %d)", ErrAtomCount, i, len(f.Atoms), f.Count)
		}
	}
	return nil
}
