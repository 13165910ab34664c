// Package radiusgyration calculates the radius of gyration of a molecule.
package radiusgyration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/kpotier/molrdf/pkg/rdf"
	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/util"
	"github.com/kpotier/molrdf/pkg/vec"
)

// Type is name of the calculation.
var Type = "radius_gyration"

// RadiusGyration is a structure containing the parameters that can be parsed from
// a TOML configuration file. This structure can be instanced through the New
// method. The molecule is made of the atoms [AtomStart, AtomEnd) of each
// frame; a molecule broken by the periodic boundaries is made whole again
// before the calculation. Masses gives the mass of each label.
// AtomStart must be lower than AtomEnd. Same for CfgStart and CfgEnd.
type RadiusGyration struct {
	FileIn  string `toml:"radius_gyration.file_in"`
	FileOut string `toml:"radius_gyration.file_out"`

	CfgStart int `toml:"radius_gyration.cfg_start"`
	CfgEnd   int `toml:"radius_gyration.cfg_end"`

	AtomStart int                `toml:"radius_gyration.atom_start"`
	AtomEnd   int                `toml:"radius_gyration.atom_end"`
	Masses    map[string]float64 `toml:"radius_gyration.masses"`

	Dt float64 `toml:"radius_gyration.dt"`
}

// New returns an instance of the RadiusGyration structure. It reads and parses
// the configuration file given in argument. The file must be a TOML file.
func New(path string) (*RadiusGyration, error) {
	var radiusgyration RadiusGyration
	err := util.Decode(path, &radiusgyration)
	if err != nil {
		return nil, err
	}

	if radiusgyration.CfgStart < 0 || (radiusgyration.CfgEnd > 0 && radiusgyration.CfgStart >= radiusgyration.CfgEnd) {
		return nil, errors.New("CfgStart is negative or greater or equal than CfgEnd")
	}

	if radiusgyration.AtomStart < 0 || radiusgyration.AtomStart >= radiusgyration.AtomEnd {
		return nil, errors.New("AtomStart is negative or greater or equal than AtomEnd")
	}

	return &radiusgyration, nil
}

// Start performs the calculation. It is a thread blocking method. It is a very
// fast calculation. This calculation only use one thread.
func (r *RadiusGyration) Start(ctx context.Context, log *log.Logger) error {
	t, err := traj.Open(r.FileIn, traj.Options{})
	if err != nil {
		return fmt.Errorf("Open: %w", err)
	}

	err = t.CheckCount()
	if err != nil {
		log.Println(fmt.Errorf("%s: CheckCount: %w", Type, err))
	}

	t, err = t.Range(r.CfgStart, r.CfgEnd)
	if err != nil {
		return fmt.Errorf("Range: %w", err)
	}

	out, err := util.Create(r.FileOut, r)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	defer out.Close()
	_, err = fmt.Fprint(out, "cfg t radius\n")
	if err != nil {
		return err
	}

	for i, f := range t {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.AtomEnd > len(f.Atoms) {
			return fmt.Errorf("atom %d doesn't exist (step %d, %d atoms)", r.AtomEnd-1, i, len(f.Atoms))
		}

		err = r.calc(out, i, f)
		if err != nil {
			return fmt.Errorf("calc (step %d): %w", i, err)
		}
	}

	log.Printf("%s: %d frames", Type, len(t))
	return out.Close()
}

// calc calculates the radius of gyration and writes the result into a file.
func (r *RadiusGyration) calc(w io.Writer, cfg int, f traj.Frame) error {
	atoms := f.Atoms[r.AtomStart:r.AtomEnd]
	xyz := whole(atoms, f.Box)

	var (
		com     vec.Vec3
		massTot float64
	)

	for key, v := range xyz {
		mass, ok := r.Masses[atoms[key].Label]
		if !ok {
			return fmt.Errorf("mass for atom type `%s` doesn't exist", atoms[key].Label)
		}
		massTot += mass
		com = com.Add(v.Scale(mass))
	}
	com = com.Scale(1 / massTot)

	// MSD between COM & each XYZ
	var radius float64
	for _, v := range xyz {
		radius += util.Pow(v.Sub(com).Norm(), 2)
	}

	radius /= float64(len(xyz) * 3)
	radius = math.Sqrt(radius)

	_, err := fmt.Fprintf(w, "%d %g %g\n",
		(cfg + r.CfgStart), (float64(cfg+r.CfgStart) * r.Dt), radius)
	return err
}

// whole returns the positions of the atoms where each atom is the nearest
// image of the previous one.
func whole(atoms []traj.Atom, box vec.Vec3) []vec.Vec3 {
	xyz := make([]vec.Vec3, len(atoms))
	xyz[0] = atoms[0].Pos
	for i := 1; i < len(atoms); i++ {
		xyz[i] = xyz[i-1].Add(rdf.Displacement(atoms[i].Pos, atoms[i-1].Pos, box))
	}
	return xyz
}
