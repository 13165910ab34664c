// Package fold converts a trajectory file where the atoms can be anywhere in
// space into a file where every atom is inside its periodic box. It is the
// opposite of unwrapping the coordinates.
package fold

import (
	"context"
	"fmt"
	"log"

	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/util"
	"github.com/kpotier/molrdf/pkg/vec"
)

// Type is name of the calculation.
var Type = "fold"

// Fold is a structure containing the parameters that can be parsed from a TOML
// configuration file. This structure can be instanced through the New method.
// The output is compressed if FileOut ends with .zst or .gz. If Box is given,
// it replaces the size of the box of every frame.
type Fold struct {
	FileIn  string    `toml:"fold.file_in"`
	FileOut string    `toml:"fold.file_out"`
	Box     []float64 `toml:"fold.box"`

	box vec.Vec3
}

// New returns an instance of the Fold structure. It reads and parses the
// configuration file given in argument. The file must be a TOML file.
func New(path string) (*Fold, error) {
	var fold Fold
	err := util.Decode(path, &fold)
	if err != nil {
		return nil, err
	}

	fold.box, err = traj.NewBox(fold.Box)
	if err != nil {
		return nil, err
	}

	return &fold, nil
}

// Start performs the calculation. It is a thread blocking method. This
// calculation only use one thread.
func (f *Fold) Start(ctx context.Context, log *log.Logger) error {
	t, err := traj.Open(f.FileIn, traj.Options{Box: f.box})
	if err != nil {
		return fmt.Errorf("Open: %w", err)
	}

	err = t.CheckCount()
	if err != nil {
		log.Println(fmt.Errorf("%s: CheckCount: %w", Type, err))
	}

	folded := make(traj.Trajectory, len(t))
	for i, frame := range t {
		folded[i] = frame.Fold()
	}

	err = traj.Create(f.FileOut, folded)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	log.Printf("%s: %d frames written to %s", Type, len(folded), f.FileOut)
	return nil
}
