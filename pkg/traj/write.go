package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Create writes the trajectory at path. The file is compressed if path ends
// with .zst or .gz.
func Create(path string, t Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := compress(path, f)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	bw := bufio.NewWriter(w)
	err = Write(bw, t)
	if err != nil {
		return err
	}

	err = bw.Flush()
	if err != nil {
		return err
	}

	err = w.Close()
	if err != nil {
		return err
	}

	return f.Close()
}

// Write writes the trajectory in a format that Read understands: the number of
// atoms and the size of the box, a comment line, and one line per atom.
func Write(w io.Writer, t Trajectory) error {
	var b []byte
	for i, f := range t {
		b = b[:0]
		b = strconv.AppendInt(b, int64(len(f.Atoms)), 10)
		b = appendVec(b, f.Box[:])
		b = append(b, '\n')
		b = append(b, "frame "...)
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, '\n')

		for _, a := range f.Atoms {
			b = append(b, a.Label...)
			b = appendVec(b, a.Pos[:])
			b = append(b, '\n')
		}

		_, err := w.Write(b)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	return nil
}

func appendVec(b []byte, v []float64) []byte {
	for _, x := range v {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, x, 'g', -1, 64)
	}
	return b
}
