// Package gr calculates the radial distribution function between two species
// of a trajectory and its integral.
package gr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/kpotier/molrdf/pkg/rdf"
	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/util"
	"github.com/kpotier/molrdf/pkg/vec"
)

// Type is the type of calculation.
var Type = "gr"

// GR is a structure containing the parameters that can be parsed from a TOML
// configuration file. This structure can be instanced through the New method.
// CfgStart must be lower than CfgEnd; a CfgEnd of zero means the last frame.
// If Solvent is empty, the g(r) of Solute with itself is calculated. If Box is
// given, it replaces the size of the box of every frame. PlotOut is optional;
// its extension gives the format of the plot (png, svg, pdf, ...).
type GR struct {
	FileIn  string `toml:"gr.file_in"`
	FileOut string `toml:"gr.file_out"`
	PlotOut string `toml:"gr.plot_out"`

	CfgStart int `toml:"gr.cfg_start"`
	CfgEnd   int `toml:"gr.cfg_end"`

	Solute  string `toml:"gr.solute"`
	Solvent string `toml:"gr.solvent"`

	Bins int     `toml:"gr.bins"`
	RMax float64 `toml:"gr.rmax"`

	Box []float64 `toml:"gr.box"`

	Threads  int  `toml:"gr.threads"`
	Progress int  `toml:"gr.progress"`
	Intg     bool `toml:"gr.intg"`

	box vec.Vec3
	rdf *rdf.RDF
}

// New returns an instance of the GR structure. It reads and parses the
// configuration file given in argument. The file must be a TOML file.
func New(path string) (*GR, error) {
	var gr GR
	err := util.Decode(path, &gr)
	if err != nil {
		return nil, err
	}

	if gr.CfgStart < 0 || (gr.CfgEnd > 0 && gr.CfgStart >= gr.CfgEnd) {
		return nil, errors.New("CfgStart is negative or greater or equal than CfgEnd")
	}

	gr.box, err = traj.NewBox(gr.Box)
	if err != nil {
		return nil, err
	}

	if gr.Solvent == "" {
		gr.Solvent = gr.Solute
	}

	gr.rdf, err = rdf.New(rdf.Config{
		NumBins:   gr.Bins,
		MaxCutoff: gr.RMax,
		Solute:    gr.Solute,
		Solvent:   gr.Solvent,
		Threads:   gr.Threads,
	})
	if err != nil {
		return nil, fmt.Errorf("rdf.New: %w", err)
	}

	if gr.Progress > 0 {
		gr.rdf.Every = gr.Progress
	}

	return &gr, nil
}

// Start performs the calculation. It is a thread blocking method. This
// calculation uses Threads threads.
func (g *GR) Start(ctx context.Context, log *log.Logger) error {
	t, err := traj.Open(g.FileIn, traj.Options{Box: g.box})
	if err != nil {
		return fmt.Errorf("Open: %w", err)
	}

	err = t.CheckCount()
	if err != nil {
		log.Println(fmt.Errorf("%s: CheckCount: %w", Type, err))
	}

	t, err = t.Range(g.CfgStart, g.CfgEnd)
	if err != nil {
		return fmt.Errorf("Range: %w", err)
	}

	err = rdf.CheckBox(t, g.RMax)
	if err != nil {
		log.Println(fmt.Errorf("gr: CheckBox: %w", err))
	}

	g.rdf.Log = log
	tStart := time.Now()

	h, err := g.rdf.Compute(ctx, t)
	if err != nil {
		return fmt.Errorf("Compute: %w", err)
	}
	log.Printf("gr %s-%s: %d frames in %s", g.Solute, g.Solvent, len(t), time.Since(tStart))

	out, err := util.Create(g.FileOut, g)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	defer out.Close()

	err = g.write(out, h, rdf.Density(t, g.Solvent))
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if g.PlotOut != "" {
		err = plotGR(g.PlotOut, fmt.Sprintf("g(r) %s-%s", g.Solute, g.Solvent), rdf.Points(h, g.rdf.BinWidth()))
		if err != nil {
			return fmt.Errorf("plotGR: %w", err)
		}
	}

	return out.Close()
}

// write writes the results of this calculation: the distance, g(r) and, if
// Intg is true, the running coordination number.
func (g *GR) write(w io.Writer, h rdf.Histogram, rho float64) error {
	dr := g.rdf.BinWidth()
	if !g.Intg {
		_, err := fmt.Fprint(w, "dist g(r)\n")
		if err != nil {
			return err
		}
		return rdf.Write(w, h, dr)
	}

	_, err := fmt.Fprint(w, "dist g(r) intg\n")
	if err != nil {
		return err
	}

	intg := rdf.Coordination(h, dr, rho)
	for k, p := range rdf.Points(h, dr) {
		_, err = fmt.Fprintf(w, "%g %g %g\n", p.R, p.G, intg[k])
		if err != nil {
			return err
		}
	}

	return nil
}
