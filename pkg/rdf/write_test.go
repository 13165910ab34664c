package rdf_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/kpotier/molrdf/pkg/rdf"
	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	h := rdf.Histogram{0, 1.5, 0.25}
	assert.Equal(t, []rdf.Point{{0.25, 0}, {0.75, 1.5}, {1.25, 0.25}}, rdf.Points(h, 0.5))

	var buf bytes.Buffer
	require.NoError(t, rdf.Write(&buf, h, 0.5))
	assert.Equal(t, "0.25 0\n0.75 1.5\n1.25 0.25\n", buf.String())
}

func TestCoordination(t *testing.T) {
	const (
		bins = 200
		rmax = 5.
		rho  = 0.1
	)
	h := rdf.NewHistogram(bins)
	for k := range h {
		h[k] = 1
	}

	n := rdf.Coordination(h, rmax/bins, rho)
	require.Len(t, n, bins)
	assert.InEpsilon(t, 4./3.*math.Pi*rmax*rmax*rmax*rho, n[bins-1], 1e-4)
	for k := 1; k < bins; k++ {
		assert.Greater(t, n[k], n[k-1])
	}
}

func TestDensity(t *testing.T) {
	tr := traj.Trajectory{
		{Atoms: []traj.Atom{{Label: "O"}, {Label: "H"}, {Label: "O"}}, Box: vec.New(2, 2, 2)},
		{Atoms: []traj.Atom{{Label: "O"}}, Box: vec.New(2, 2, 3)},
	}
	assert.InDelta(t, 2./10., rdf.Density(tr, "O"), 1e-15)
	assert.Zero(t, rdf.Density(tr, "C"))
	assert.Zero(t, rdf.Density(nil, "O"))
}
