// Package util contains some methods that can be used by every other package.
package util

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml"
)

// Create creates the output file and writes its header (see Header). This
// method returns the file for further writing. It must be closed at the end of
// the calculation.
func Create(path string, structure interface{}) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	err = Header(f, structure)
	if err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// Header writes the date and the structure in a TOML format, followed by an
// empty line. The structure is usually the parameters of the calculation.
func Header(w io.Writer, structure interface{}) error {
	_, err := fmt.Fprintf(w, "Date: %v\n", time.Now().Format("2006-01-02 15:04:05 -0700 MST"))
	if err != nil {
		return err
	}

	enc := toml.NewEncoder(w)
	err = enc.Encode(structure)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte{'\n'})
	return err
}

// Decode decodes the TOML file at path into v.
func Decode(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewDecoder(f).Decode(v)
}

// Pow returns x**n, the base-x exponential of n. n must be greater than zero.
func Pow(x float64, n int) float64 {
	res := x
	for i := 0; i < (n - 1); i++ {
		res *= x
	}
	return res
}
