package field

import (
	"fmt"
	"iter"
)

// Field is a dense cubical grid over [0, extent)^3 backed by a flat buffer.
// A field is filled once by Generate and never mutated afterwards; derived
// fields are produced by Map/MapWithCoordinate.
type Field[T any] struct {
	extent int
	voxels []T
}

// Coordinates enumerates every coordinate in [0, extent)^3 in lexicographic
// order, last axis fastest. Generate, Map and the mesh builder all walk
// fields in this order, which keeps their outputs reproducible.
func Coordinates(extent int) iter.Seq[[3]int] {
	return func(yield func([3]int) bool) {
		for x := 0; x < extent; x++ {
			for y := 0; y < extent; y++ {
				for z := 0; z < extent; z++ {
					if !yield([3]int{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

// Generate builds a field by evaluating f at every coordinate.
func Generate[T any](extent int, f func(co [3]int) T) *Field[T] {
	if extent <= 0 {
		panic(fmt.Sprintf("field: non-positive extent %d", extent))
	}
	voxels := make([]T, 0, extent*extent*extent)
	for co := range Coordinates(extent) {
		voxels = append(voxels, f(co))
	}
	return &Field[T]{extent: extent, voxels: voxels}
}

// Extent returns the edge length of the field.
func (f *Field[T]) Extent() int {
	return f.extent
}

// At returns the value at the given coordinate. Indexing outside
// [0, extent)^3 is a programming error and panics.
func (f *Field[T]) At(co [3]int) T {
	return f.voxels[f.linear(co)]
}

// Coordinates enumerates the field's coordinates in generation order.
func (f *Field[T]) Coordinates() iter.Seq[[3]int] {
	return Coordinates(f.extent)
}

func (f *Field[T]) linear(co [3]int) int {
	e := f.extent
	for i, c := range co {
		if c < 0 || c >= e {
			panic(fmt.Sprintf("field: coordinate %v outside [0, %d) on axis %d", co, e, i))
		}
	}
	return (co[0]*e+co[1])*e + co[2]
}

// Map builds a derived field of equal extent by applying fn per cell.
func Map[T, R any](f *Field[T], fn func(T) R) *Field[R] {
	return Generate(f.extent, func(co [3]int) R {
		return fn(f.At(co))
	})
}

// MapWithCoordinate is Map with the cell's own coordinate passed along.
func MapWithCoordinate[T, R any](f *Field[T], fn func(T, [3]int) R) *Field[R] {
	return Generate(f.extent, func(co [3]int) R {
		return fn(f.At(co), co)
	})
}
