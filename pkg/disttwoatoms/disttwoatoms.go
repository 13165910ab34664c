// Package disttwoatoms calculates the distance between two atoms over time.
package disttwoatoms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/kpotier/molrdf/pkg/rdf"
	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/util"
	"github.com/kpotier/molrdf/pkg/vec"
)

// Type is name of the calculation.
var Type = "dist_two_atoms"

// DistTwoAtoms is a structure containing the parameters that can be parsed from
// a TOML configuration file. This structure can be instanced through the New
// method. Atom1 and Atom2 are the indices of the atoms in each frame.
// Atom1 must be lower than Atom2. Same for CfgStart and CfgEnd.
type DistTwoAtoms struct {
	FileIn  string `toml:"dist_two_atoms.file_in"`
	FileOut string `toml:"dist_two_atoms.file_out"`

	CfgStart int `toml:"dist_two_atoms.cfg_start"`
	CfgEnd   int `toml:"dist_two_atoms.cfg_end"`

	Atom1 int `toml:"dist_two_atoms.atom_1"`
	Atom2 int `toml:"dist_two_atoms.atom_2"`

	Dt float64 `toml:"dist_two_atoms.dt"`

	Box []float64 `toml:"dist_two_atoms.box"`

	box vec.Vec3
}

// New returns an instance of the DistTwoAtoms structure. It reads and parses
// the configuration file given in argument. The file must be a TOML file.
func New(path string) (*DistTwoAtoms, error) {
	var distTwoAtoms DistTwoAtoms
	err := util.Decode(path, &distTwoAtoms)
	if err != nil {
		return nil, err
	}

	if distTwoAtoms.CfgStart < 0 || (distTwoAtoms.CfgEnd > 0 && distTwoAtoms.CfgStart >= distTwoAtoms.CfgEnd) {
		return nil, errors.New("CfgStart is negative or greater or equal than CfgEnd")
	}

	if distTwoAtoms.Atom1 < 0 || distTwoAtoms.Atom1 >= distTwoAtoms.Atom2 {
		return nil, errors.New("Atom1 is negative or greater or equal than Atom2")
	}

	distTwoAtoms.box, err = traj.NewBox(distTwoAtoms.Box)
	if err != nil {
		return nil, err
	}

	return &distTwoAtoms, nil
}

// Start performs the calculation. It is a thread blocking method. It is a very
// fast calculation. This calculation only use one thread.
func (d *DistTwoAtoms) Start(ctx context.Context, log *log.Logger) error {
	t, err := traj.Open(d.FileIn, traj.Options{Box: d.box})
	if err != nil {
		return fmt.Errorf("Open: %w", err)
	}

	err = t.CheckCount()
	if err != nil {
		log.Println(fmt.Errorf("%s: CheckCount: %w", Type, err))
	}

	t, err = t.Range(d.CfgStart, d.CfgEnd)
	if err != nil {
		return fmt.Errorf("Range: %w", err)
	}

	out, err := util.Create(d.FileOut, d)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	defer out.Close()
	_, err = fmt.Fprint(out, "cfg t x y z dist\n")
	if err != nil {
		return err
	}

	for i, f := range t {
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.Atom2 >= len(f.Atoms) {
			return fmt.Errorf("atom %d doesn't exist (step %d, %d atoms)", d.Atom2, i, len(f.Atoms))
		}

		err = d.result(out, i, f)
		if err != nil {
			return fmt.Errorf("result (step %d): %w", i, err)
		}
	}

	log.Printf("%s: %d frames", Type, len(t))
	return out.Close()
}

// result calculates the minimum image vector between the two atoms and its
// norm, and writes it into a file.
func (d *DistTwoAtoms) result(w io.Writer, cfg int, f traj.Frame) error {
	v := rdf.Displacement(f.Atoms[d.Atom1].Pos, f.Atoms[d.Atom2].Pos, f.Box)

	_, err := fmt.Fprintf(w, "%d %g %g %g %g %g\n",
		(cfg + d.CfgStart), (float64(cfg+d.CfgStart) * d.Dt),
		v[0], v[1], v[2], v.Norm())
	return err
}
