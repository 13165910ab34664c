package rdf_test

import (
	"math/rand"
	"testing"

	"github.com/kpotier/molrdf/pkg/rdf"
	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/vec"
	"github.com/stretchr/testify/assert"
)

func randVec(rnd *rand.Rand, scale float64) vec.Vec3 {
	return vec.New((rnd.Float64()-0.5)*scale, (rnd.Float64()-0.5)*scale, (rnd.Float64()-0.5)*scale)
}

func TestDistanceSymmetry(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		box := vec.New(5+rnd.Float64()*10, 5+rnd.Float64()*10, 5+rnd.Float64()*10)
		a, b := randVec(rnd, 30), randVec(rnd, 30)
		assert.Equal(t, rdf.Distance(a, b, box), rdf.Distance(b, a, box))
	}
}

func TestDistancePeriodicInvariance(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		box := vec.New(5+rnd.Float64()*10, 5+rnd.Float64()*10, 5+rnd.Float64()*10)
		a, b := randVec(rnd, 10), randVec(rnd, 10)
		shift := vec.New(float64(rnd.Intn(7)-3), float64(rnd.Intn(7)-3), float64(rnd.Intn(7)-3))

		d := rdf.Distance(a, b, box)
		assert.InDelta(t, d, rdf.Distance(a, b.Add(shift.Mul(box)), box), 1e-9)

		// The nearest image is never farther than half of the diagonal.
		assert.LessOrEqual(t, d, box.Scale(0.5).Norm()+1e-12)
	}
}

func TestDisplacement(t *testing.T) {
	box := vec.New(10, 10, 10)
	d1 := rdf.Displacement(vec.New(9, 4, 1), vec.New(1, 1, 1), box)
	assert.InDeltaSlice(t, []float64{-2, 3, 0}, d1[:], 1e-12)
	d2 := rdf.Displacement(vec.New(1, 1, 9), vec.New(9, 1, 0), box)
	assert.InDeltaSlice(t, []float64{2, 0, -1}, d2[:], 1e-12)

	// Exactly half of the box is left unchanged.
	assert.Equal(t, vec.Vec3{5, 0, 0}, rdf.Displacement(vec.New(5, 0, 0), vec.Vec3{}, box))
}

func TestCheckBox(t *testing.T) {
	tr := traj.Trajectory{
		{Box: vec.New(10, 10, 10)},
		{Box: vec.New(10, 7, 10)},
	}
	assert.NoError(t, rdf.CheckBox(tr, 3.5))
	assert.NoError(t, rdf.CheckBox(tr[:1], 5))

	err := rdf.CheckBox(tr, 4)
	assert.ErrorIs(t, err, rdf.ErrBoxTooSmall)
	assert.Contains(t, err.Error(), "frame 1, axis 1")
}
