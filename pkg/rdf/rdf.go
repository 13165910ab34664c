// Package rdf computes the radial distribution function g(r) between two
// species of a trajectory. Every frame is histogrammed independently, in
// parallel, and the final histogram is the mean of the frames.
//
// The distances follow the minimum image convention in an orthorhombic box.
// The result is only exact if the cutoff is lower or equal to half of the
// smallest side of the box; see CheckBox.
package rdf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/kpotier/molrdf/pkg/traj"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidConfig is returned when the parameters of the calculation
	// cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidBox is returned for a frame whose box has a side lower or
	// equal to zero.
	ErrInvalidBox = traj.ErrInvalidBox

	// ErrBoxTooSmall is returned by CheckBox.
	ErrBoxTooSmall = errors.New("cutoff greater than half of the box")
)

// Config contains the parameters of a calculation. Solute and Solvent are the
// labels of the two species; if they are equal, the calculation correlates a
// species with itself. Threads is the number of frames computed at the same
// time (runtime.NumCPU if lower or equal to zero).
type Config struct {
	NumBins   int
	MaxCutoff float64
	Solute    string
	Solvent   string
	Threads   int
}

// Validate returns an error wrapping ErrInvalidConfig if the configuration
// cannot be used.
func (c Config) Validate() error {
	if c.NumBins <= 0 {
		return fmt.Errorf("%w: number of bins must be positive (got %d)", ErrInvalidConfig, c.NumBins)
	}

	if !(c.MaxCutoff > 0) {
		return fmt.Errorf("%w: cutoff must be positive (got %g)", ErrInvalidConfig, c.MaxCutoff)
	}

	if c.Solute == "" || c.Solvent == "" {
		return fmt.Errorf("%w: empty solute or solvent label", ErrInvalidConfig)
	}

	return nil
}

// BinWidth returns the width of a bin.
func (c Config) BinWidth() float64 {
	return c.MaxCutoff / float64(c.NumBins)
}

// Histogram is a fixed number of bins. Bin k corresponds to the distances
// [k*dr, (k+1)*dr).
type Histogram []float64

// NewHistogram returns a histogram of n empty bins.
func NewHistogram(n int) Histogram {
	return make(Histogram, n)
}

// RDF performs the calculation. It can be instanced through the New method.
// Log, if not nil, receives a line every Every frames.
type RDF struct {
	Config

	Log   *log.Logger
	Every int
}

// New returns an instance of the RDF structure.
func New(c Config) (*RDF, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}

	return &RDF{Config: c, Every: 10000}, nil
}

// Compute returns the g(r) averaged over every frame of t. The frames are
// computed by blocks of Threads frames and a block must be finished before the
// next one starts. The frames that don't fill a whole block are computed
// sequentially at the end. The context is checked between the blocks.
//
// An error in a frame doesn't stop the other frames; all the errors are
// returned together once every frame is done.
func (r *RDF) Compute(ctx context.Context, t traj.Trajectory) (Histogram, error) {
	if len(t) == 0 {
		return nil, traj.ErrEmpty
	}

	pairs := PairNorm(t[0], r.Config)

	hstg := make([]Histogram, len(t))
	for i := range hstg {
		hstg[i] = NewHistogram(r.NumBins)
	}
	errs := make([]error, len(t))

	threads := r.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	blocks := len(t) / threads
	for b := 0; b < blocks; b++ {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		var wg sync.WaitGroup
		for i := b * threads; i < (b+1)*threads; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = r.frame(i, t[i], pairs, hstg[i])
			}(i)
		}
		wg.Wait()
	}

	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	for i := blocks * threads; i < len(t); i++ {
		errs[i] = r.frame(i, t[i], pairs, hstg[i])
	}

	err = errors.Join(errs...)
	if err != nil {
		return nil, err
	}

	return mean(r.NumBins, hstg), nil
}

// frame fills dst for the frame i. A panic is returned as an error so that it
// only affects this frame.
func (r *RDF) frame(i int, f traj.Frame, pairs float64, dst Histogram) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("frame %d: %v", i, p)
		}
	}()

	if r.Log != nil && r.Every > 0 && i%r.Every == 0 {
		r.Log.Printf("rdf %s-%s: computing frame %d", r.Solute, r.Solvent, i)
	}

	err = fill(dst, f, r.Config, pairs)
	if err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}

	return nil
}

// mean returns the bin by bin average of hstg. The frames are summed in order
// so that the result doesn't depend on the number of threads.
func mean(bins int, hstg []Histogram) Histogram {
	res := NewHistogram(bins)
	for _, h := range hstg {
		floats.Add(res, h)
	}
	floats.Scale(1/float64(len(hstg)), res)
	return res
}
