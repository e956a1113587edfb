package field

import "fmt"

// Sheet is the two-dimensional sibling of Field, used for height maps that
// are sampled once per column of a chunk.
type Sheet[T any] struct {
	extent int
	cells  []T
}

// GenerateSheet builds a sheet by evaluating f at every coordinate in
// lexicographic order.
func GenerateSheet[T any](extent int, f func(co [2]int) T) *Sheet[T] {
	if extent <= 0 {
		panic(fmt.Sprintf("field: non-positive extent %d", extent))
	}
	cells := make([]T, 0, extent*extent)
	for x := 0; x < extent; x++ {
		for y := 0; y < extent; y++ {
			cells = append(cells, f([2]int{x, y}))
		}
	}
	return &Sheet[T]{extent: extent, cells: cells}
}

// Extent returns the edge length of the sheet.
func (s *Sheet[T]) Extent() int {
	return s.extent
}

// At returns the value at the given coordinate, panicking when the
// coordinate lies outside [0, extent)^2.
func (s *Sheet[T]) At(co [2]int) T {
	for i, c := range co {
		if c < 0 || c >= s.extent {
			panic(fmt.Sprintf("field: coordinate %v outside [0, %d) on axis %d", co, s.extent, i))
		}
	}
	return s.cells[co[0]*s.extent+co[1]]
}
