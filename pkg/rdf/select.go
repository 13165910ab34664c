package rdf

import "github.com/kpotier/molrdf/pkg/traj"

// SelectIndices returns the indices of the atoms of f whose label is label, in
// ascending order. It returns nil if no atom matches.
func SelectIndices(f traj.Frame, label string) []int {
	var idx []int
	for i, a := range f.Atoms {
		if a.Label == label {
			idx = append(idx, i)
		}
	}
	return idx
}
