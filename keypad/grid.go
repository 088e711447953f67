// Package keypad turns raw key matrix scans into debounced levels and press edges.
package keypad

import "fmt"

// Matrix dimensions.
const (
	Rows  = 5
	Cols  = 4
	Cells = Rows * Cols
)

// Cell addresses one key position in the matrix.
type Cell struct {
	Row int
	Col int
}

// CellAt returns the cell for a row-major index.
func CellAt(i int) Cell { return Cell{Row: i / Cols, Col: i % Cols} }

// Valid reports whether c lies inside the matrix.
func (c Cell) Valid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

func (c Cell) String() string { return fmt.Sprintf("r%dc%d", c.Row, c.Col) }

func (c Cell) index() int { return c.Row*Cols + c.Col }

// Grid is a fixed-size per-cell store with row-major indexing.
//
// Accessing a cell outside the matrix panics.
type Grid[T any] struct {
	cells [Cells]T
}

func (g *Grid[T]) At(c Cell) T     { return g.cells[c.index()] }
func (g *Grid[T]) Set(c Cell, v T) { g.cells[c.index()] = v }

// Ptr returns the address of the value stored for c.
func (g *Grid[T]) Ptr(c Cell) *T { return &g.cells[c.index()] }

// Reset zeroes every cell.
func (g *Grid[T]) Reset() { g.cells = [Cells]T{} }

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(c Cell, v T)) {
	for i := range g.cells {
		fn(CellAt(i), g.cells[i])
	}
}

// Count returns the number of cells for which fn reports true.
func (g *Grid[T]) Count(fn func(v T) bool) int {
	n := 0
	for i := range g.cells {
		if fn(g.cells[i]) {
			n++
		}
	}
	return n
}
