// Package shape infers the array shape of the data a measurement produces.
//
// A measurement that sweeps outer loops of lengths n1, n2, ... and reads a
// set of parameters at every point produces, per parameter, an array whose
// shape is the parameter's own shape followed by the loop shape.
package shape

import (
	"fmt"
	"slices"
)

// Parameter is a measured quantity. Scalar parameters only implement
// Parameter; array valued ones implement Shaped or MultiShaped as well.
type Parameter interface {
	// FullName identifies the parameter in the detected shapes.
	FullName() string
}

// Shaped is a parameter that returns one array per read.
type Shaped interface {
	Parameter
	// Shape returns the array shape of one read. It may depend on the
	// current configuration of the instrument and fail when that is
	// incomplete.
	Shape() ([]int, error)
}

// MultiShaped is a parameter that returns several arrays per read, each
// stored under its own name.
type MultiShaped interface {
	Parameter
	// FullNames returns the name of each returned array.
	FullNames() []string
	// Shapes returns the shape of each returned array, in FullNames order.
	Shapes() ([][]int, error)
}

// Detect returns the data shape of each parameter measured at every point
// of loops with the given loop shape.
func Detect(params []Parameter, loopShape []int) (map[string][]int, error) {
	shapes := make(map[string][]int, len(params))

	for _, p := range params {
		switch p := p.(type) {
		case MultiShaped:
			names := p.FullNames()
			inner, err := p.Shapes()
			if err != nil {
				return nil, fmt.Errorf("shape: %s: %w", p.FullName(), err)
			}
			if len(inner) != len(names) {
				return nil, fmt.Errorf("shape: %s has %d names but %d shapes", p.FullName(), len(names), len(inner))
			}
			for i, name := range names {
				shapes[name] = slices.Concat(inner[i], loopShape)
			}

		case Shaped:
			inner, err := p.Shape()
			if err != nil {
				return nil, fmt.Errorf("shape: %s: %w", p.FullName(), err)
			}
			shapes[p.FullName()] = slices.Concat(inner, loopShape)

		default:
			shapes[p.FullName()] = slices.Clone(loopShape)
		}
	}

	return shapes, nil
}

// LoopShape returns the loop shape of loops with the given lengths.
func LoopShape(lengths ...int) []int {
	return slices.Clone(lengths)
}

// LoopShapeOf returns the loop shape of loops over the given setpoint
// sequences.
func LoopShapeOf[T any](seqs ...[]T) []int {
	shape := make([]int, len(seqs))
	for i, s := range seqs {
		shape[i] = len(s)
	}

	return shape
}

// Scalar is a Parameter without an array shape.
type Scalar string

func (s Scalar) FullName() string { return string(s) }

// Fixed is a Shaped parameter with a constant shape.
type Fixed struct {
	Name string
	Dims []int
}

func (f Fixed) FullName() string { return f.Name }

func (f Fixed) Shape() ([]int, error) { return slices.Clone(f.Dims), nil }
