// Package vec contains the 3D vector used for positions and box sizes.
package vec

import "math"

// Vec3 is a position, a displacement or the size of an orthorhombic box. It is
// a value type: every method returns a new vector.
type Vec3 [3]float64

// New returns the vector (x, y, z).
func New(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Add returns v+u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v-u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Mul returns the elementwise product of v and u.
func (v Vec3) Mul(u Vec3) Vec3 {
	return Vec3{v[0] * u[0], v[1] * u[1], v[2] * u[2]}
}

// Scale returns s*v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

// Dot returns the scalar product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the Euclidean norm of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Prod returns the product of the components. For a box size, it is the
// volume of the box.
func (v Vec3) Prod() float64 {
	return v[0] * v[1] * v[2]
}

// IsZero reports whether every component is zero.
func (v Vec3) IsZero() bool {
	return v == Vec3{}
}
