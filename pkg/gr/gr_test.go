package gr_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/kpotier/molrdf/pkg/gr"
	"github.com/kpotier/molrdf/pkg/traj"
	"github.com/kpotier/molrdf/pkg/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gas returns frames of n uniformly distributed atoms in a cubic box.
func gas(frames, n int, l float64) traj.Trajectory {
	rnd := rand.New(rand.NewSource(7))
	t := make(traj.Trajectory, frames)
	for i := range t {
		t[i].Box = vec.New(l, l, l)
		for j := 0; j < n; j++ {
			t[i].Atoms = append(t[i].Atoms, traj.Atom{
				Label: "Ar",
				Pos:   vec.New(rnd.Float64()*l, rnd.Float64()*l, rnd.Float64()*l),
			})
		}
	}
	return t
}

func writeCfg(t *testing.T, dir, body string) string {
	path := filepath.Join(dir, "gr.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"range":   "[gr]\nsolute = \"O\"\nbins = 10\nrmax = 5.0\ncfg_start = 4\ncfg_end = 2\n",
		"box":     "[gr]\nsolute = \"O\"\nbins = 10\nrmax = 5.0\nbox = [1.0, 2.0]\n",
		"bins":    "[gr]\nsolute = \"O\"\nbins = 0\nrmax = 5.0\n",
		"rmax":    "[gr]\nsolute = \"O\"\nbins = 10\nrmax = -1.0\n",
		"no atom": "[gr]\nbins = 10\nrmax = 5.0\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := gr.New(writeCfg(t, dir, body))
			assert.Error(t, err)
		})
	}

	_, err := gr.New(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

// TestStart runs the whole calculation on an ideal gas: g(r) must be close to
// one and the coordination number close to the one of a uniform density.
func TestStart(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gas.xyz.zst")
	out := filepath.Join(dir, "gr.txt")
	png := filepath.Join(dir, "gr.png")

	const (
		n    = 600
		l    = 15.
		bins = 12
		rmax = 6.
	)
	require.NoError(t, traj.Create(in, gas(6, n, l)))

	path := writeCfg(t, dir, fmt.Sprintf(`[gr]
file_in = %q
file_out = %q
plot_out = %q
solute = "Ar"
bins = %d
rmax = %.1f
threads = 2
progress = 2
intg = true
`, in, out, png, bins, rmax))

	g, err := gr.New(path)
	require.NoError(t, err)

	var logs bytes.Buffer
	require.NoError(t, g.Start(context.Background(), log.New(&logs, "", 0)))
	assert.Contains(t, logs.String(), "computing frame 4")
	assert.NotContains(t, logs.String(), "CheckBox")

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	var start int
	for i, line := range lines {
		if line == "dist g(r) intg" {
			start = i + 1
		}
	}
	require.NotZero(t, start)
	require.Len(t, lines[start:], bins)

	var last []float64
	for k, line := range lines[start:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 3)

		last = last[:0]
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
			last = append(last, v)
		}

		assert.InDelta(t, (float64(k)+0.5)*rmax/bins, last[0], 1e-12)
		if last[0] > 2 {
			assert.InDelta(t, 1., last[1], 0.1, "g(r) at r=%g", last[0])
		}
	}

	// Number of neighbors within rmax for a uniform density.
	want := 4. / 3. * math.Pi * rmax * rmax * rmax * n / (l * l * l)
	assert.InEpsilon(t, want, last[2], 0.05)

	st, err := os.Stat(png)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}

// A cutoff larger than half of the box is reported but the calculation is
// still done.
func TestStartBoxTooSmall(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gas.xyz")
	out := filepath.Join(dir, "gr.txt")
	require.NoError(t, traj.Create(in, gas(2, 50, 8)))

	path := writeCfg(t, dir, fmt.Sprintf(`[gr]
file_in = %q
file_out = %q
solute = "Ar"
bins = 10
rmax = 5.0
cfg_start = 1
`, in, out))

	g, err := gr.New(path)
	require.NoError(t, err)

	var logs bytes.Buffer
	require.NoError(t, g.Start(context.Background(), log.New(&logs, "", 0)))
	assert.Contains(t, logs.String(), "CheckBox")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "dist g(r)\n")
}

func TestStartMissingInput(t *testing.T) {
	dir := t.TempDir()
	path := writeCfg(t, dir, fmt.Sprintf("[gr]\nfile_in = %q\nfile_out = %q\nsolute = \"O\"\nbins = 10\nrmax = 5.0\n",
		filepath.Join(dir, "missing.xyz"), filepath.Join(dir, "out.txt")))

	g, err := gr.New(path)
	require.NoError(t, err)
	assert.ErrorIs(t, g.Start(context.Background(), log.New(&bytes.Buffer{}, "", 0)), os.ErrNotExist)
}
