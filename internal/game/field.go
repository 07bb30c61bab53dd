package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Darjusch/minesweeper-ai/internal/knowledge"
)

/*
Minefield is the ground-truth mine layout of one game. It only answers
hint queries; all deduction happens in the knowledge package, which
never sees the layout itself.
*/
type Minefield struct {
	Params
	mined []bool
}

/*
NewMinefield plants MineCount mines uniformly at random. The very first
reveal can hit a mine; use [NewMinefieldSafe] to protect a starting
cell.
*/
func NewMinefield(p Params, r *rand.Rand) *Minefield {
	f := &Minefield{Params: p, mined: make([]bool, p.CellCount())}
	for planted := 0; planted < p.MineCount; {
		i := r.IntN(len(f.mined))
		if !f.mined[i] {
			f.mined[i] = true
			planted++
		}
	}
	return f
}

/*
NewMinefieldSafe plants MineCount mines at random, keeping them out of
the 3x3 block around start so the opening reveal is safe and
informative. On fields too small for that exclusion only the start cell
itself is protected.
*/
func NewMinefieldSafe(p Params, start knowledge.Cell, r *rand.Rand) *Minefield {
	f := &Minefield{Params: p, mined: make([]bool, p.CellCount())}

	candidates := make([]int, 0, p.CellCount())
	for y := range p.Height {
		for x := range p.Width {
			if absDiff(x, start.X) > 1 || absDiff(y, start.Y) > 1 {
				candidates = append(candidates, y*p.Width+x)
			}
		}
	}
	if len(candidates) < p.MineCount {
		candidates = candidates[:0]
		for i := range f.mined {
			if i != start.Y*p.Width+start.X {
				candidates = append(candidates, i)
			}
		}
	}

	k := len(candidates)
	for range p.MineCount {
		i := r.IntN(k)
		f.mined[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}
	return f
}

/*
ParseLayout builds a minefield from rows of "*" (mine) and "-" (empty)
glyphs, the format produced by [Minefield.String]. Intended for tests
and hand-crafted scenarios.
*/
func ParseLayout(rows ...string) (*Minefield, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}
	p := Params{Width: len(rows[0]), Height: len(rows)}
	mined := make([]bool, 0, p.CellCount())
	for y, row := range rows {
		if len(row) != p.Width {
			return nil, fmt.Errorf(
				"row %d has %d cells, want %d", y, len(row), p.Width,
			)
		}
		for _, glyph := range row {
			switch glyph {
			case '*':
				p.MineCount++
				mined = append(mined, true)
			case '-':
				mined = append(mined, false)
			default:
				return nil, fmt.Errorf("unexpected glyph %q in layout", glyph)
			}
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Minefield{Params: p, mined: mined}, nil
}

func (f Minefield) IsMine(c knowledge.Cell) bool {
	return f.CellInBounds(c.X, c.Y) && f.mined[c.Y*f.Width+c.X]
}

/*
NearbyMines counts the mines within one row and column of c, not
counting c itself.
*/
func (f Minefield) NearbyMines(c knowledge.Cell) (count int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if f.IsMine(knowledge.Cell{X: c.X + dx, Y: c.Y + dy}) {
				count++
			}
		}
	}
	return
}

// MineCells returns the set of mined cells.
func (f Minefield) MineCells() knowledge.CellSet {
	mines := make(knowledge.CellSet, f.MineCount)
	for i, mined := range f.mined {
		if mined {
			mines.Add(knowledge.Cell{X: i % f.Width, Y: i / f.Width})
		}
	}
	return mines
}

func (f Minefield) String() string {
	var b strings.Builder
	for y := range f.Height {
		for x := range f.Width {
			if f.mined[y*f.Width+x] {
				b.WriteString("*")
			} else {
				b.WriteString("-")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
