package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kpotier/molrdf/pkg/vec"
)

// Options changes the way a trajectory is read.
type Options struct {
	// Box, if not zero, is used for every frame (constant volume). The header
	// of a frame then only needs the number of atoms, and the following line
	// is a comment.
	Box vec.Vec3
}

// Validate returns an error wrapping ErrInvalidBox if Box is given and one of
// its sides is lower or equal to zero.
func (o Options) Validate() error {
	if o.Box.IsZero() {
		return nil
	}
	return checkBox(o.Box)
}

// Open reads the trajectory stored at path. Files ending with .zst or .gz are
// decompressed on the fly.
func Open(path string, opts Options) (Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompress(path, bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	defer r.Close()

	return Read(r, opts)
}

// Read reads every frame of r. A frame starts with a header whose first field
// is the number of atoms. The size of the box is either given by the three
// next fields of the header (and the line after it is a comment), or by the
// three first fields of the next line. Angles and trailing fields are ignored.
// Each other line is an atom: a label and its x, y, z coordinates.
//
// A line whose first field only contains digits is always a header. An atom
// whose label is a number will therefore start a new frame.
func Read(r io.Reader, opts Options) (Trajectory, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	rd := reader{s: bufio.NewScanner(r), opts: opts}
	rd.s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		t     Trajectory
		frame *Frame
	)

	for {
		l, ok := rd.next()
		if !ok {
			break
		}

		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}

		if isInteger(fields[0]) {
			if frame != nil {
				t = append(t, *frame)
			}

			atoms, box, err := rd.header(fields)
			if err != nil {
				return nil, fmt.Errorf("header (line %d): %w", rd.line, err)
			}
			frame = &Frame{Atoms: make([]Atom, 0, atoms), Box: box, Count: atoms}
			continue
		}

		if frame == nil {
			return nil, fmt.Errorf("line %d: %w: atom before the first header", rd.line, ErrMalformedHeader)
		}

		atom, err := parseAtom(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rd.line, err)
		}
		frame.Atoms = append(frame.Atoms, atom)
	}

	if err = rd.s.Err(); err != nil {
		return nil, err
	}

	if frame != nil {
		t = append(t, *frame)
	}

	if len(t) == 0 {
		return nil, ErrEmpty
	}

	return t, nil
}

type reader struct {
	s    *bufio.Scanner
	line int
	opts Options
}

func (r *reader) next() (string, bool) {
	if !r.s.Scan() {
		return "", false
	}
	r.line++
	return r.s.Text(), true
}

// header returns the number of atoms and the size of the box. It reads the
// line following the header (comment or box).
func (r *reader) header(fields []string) (atoms int, box vec.Vec3, err error) {
	atoms, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, box, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	next, ok := r.next()
	if !ok {
		return 0, box, fmt.Errorf("%w: unexpected end of file", ErrMalformedHeader)
	}

	if !r.opts.Box.IsZero() {
		return atoms, r.opts.Box, nil
	}

	switch {
	case len(fields) >= 4: // n a b c [alpha beta gamma [x]]
		box, err = parseBox(fields[1:4])
	case len(fields) == 1: // n, then a b c on the comment line
		box, err = parseBox(strings.Fields(next))
	default:
		err = fmt.Errorf("%w: %d fields", ErrMalformedHeader, len(fields))
	}

	return atoms, box, err
}

func parseBox(fields []string) (box vec.Vec3, err error) {
	if len(fields) < 3 {
		return box, fmt.Errorf("%w: cannot find the size of the box", ErrMalformedHeader)
	}

	for k := 0; k < 3; k++ {
		box[k], err = strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return box, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}

		if box[k] <= 0 {
			return box, fmt.Errorf("%w: size of the box must be positive (got %g)", ErrMalformedHeader, box[k])
		}
	}

	return box, nil
}

func parseAtom(fields []string) (a Atom, err error) {
	if len(fields) < 4 {
		return a, fmt.Errorf("%w: not enough columns (at least 4; got %d)", ErrMalformedAtom, len(fields))
	}

	a.Label = fields[0]
	for k := 0; k < 3; k++ {
		a.Pos[k], err = strconv.ParseFloat(fields[k+1], 64)
		if err != nil {
			return a, fmt.Errorf("%w: %v", ErrMalformedAtom, err)
		}
	}

	return a, nil
}

// isInteger reports whether s is made of digits only.
func isInteger(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
