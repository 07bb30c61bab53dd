package knowledge

import (
	"fmt"
	"slices"
	"strings"
)

// Cell is a single square of the minefield, addressed by zero-based
// column (X) and row (Y).
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

type void struct{}

// CellSet is an unordered set of cells.
type CellSet map[Cell]void

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = void{}
	}
	return s
}

func (s CellSet) Add(c Cell) {
	s[c] = void{}
}

func (s CellSet) Delete(c Cell) {
	delete(s, c)
}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Clone() CellSet {
	clone := make(CellSet, len(s))
	for c := range s {
		clone[c] = void{}
	}
	return clone
}

func (s CellSet) Equal(x CellSet) bool {
	if len(s) != len(x) {
		return false
	}
	for c := range s {
		if _, ok := x[c]; !ok {
			return false
		}
	}
	return true
}

func (s CellSet) SubsetOf(x CellSet) bool {
	for c := range s {
		if _, ok := x[c]; !ok {
			return false
		}
	}
	return true
}

// Diff returns the cells of s not present in x.
func (s CellSet) Diff(x CellSet) CellSet {
	result := make(CellSet)
	for c := range s {
		if _, ok := x[c]; !ok {
			result[c] = void{}
		}
	}
	return result
}

// Cells lists the set in row-major order.
func (s CellSet) Cells() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return cells
}

func (s CellSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("}")
	return b.String()
}
