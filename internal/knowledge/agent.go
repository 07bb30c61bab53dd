package knowledge

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gammazero/deque"
)

var Log *slog.Logger = slog.Default()

/*
Agent is the knowledge base of a single game. It accumulates the moves
already made, the cells whose status is fully determined, and a
collection of sentences about the rest, and derives every certain fact
those sentences imply.
*/
type Agent struct {
	Width, Height int

	moves     CellSet
	mines     CellSet
	safes     CellSet
	sentences []*Sentence

	rnd *rand.Rand
}

func NewAgent(width, height int, r *rand.Rand) *Agent {
	return &Agent{
		Width:  width,
		Height: height,
		moves:  make(CellSet),
		mines:  make(CellSet),
		safes:  make(CellSet),
		rnd:    r,
	}
}

// KnownMines returns a copy of the cells known to be mines.
func (a *Agent) KnownMines() CellSet {
	return a.mines.Clone()
}

// KnownSafes returns a copy of the cells known to be safe.
func (a *Agent) KnownSafes() CellSet {
	return a.safes.Clone()
}

// MovesMade returns the number of cells revealed so far.
func (a *Agent) MovesMade() int {
	return len(a.moves)
}

/*
MarkMine records that a cell is a mine and removes it from every
sentence. Idempotent; errors when the cell was already known safe.
*/
func (a *Agent) MarkMine(c Cell) error {
	if a.safes.Has(c) {
		return contradictionf("cell %s is known safe, cannot mark it a mine", c)
	}
	a.mines.Add(c)
	for _, s := range a.sentences {
		s.markMine(c)
		if err := s.check(); err != nil {
			return err
		}
	}
	return nil
}

/*
MarkSafe records that a cell is safe and removes it from every
sentence. Idempotent; errors when the cell was already known a mine.
*/
func (a *Agent) MarkSafe(c Cell) error {
	if a.mines.Has(c) {
		return contradictionf("cell %s is known to be a mine, cannot mark it safe", c)
	}
	a.safes.Add(c)
	for _, s := range a.sentences {
		s.markSafe(c)
		if err := s.check(); err != nil {
			return err
		}
	}
	return nil
}

// neighbors returns the in-bounds cells grid-adjacent to c.
func (a *Agent) neighbors(c Cell) CellSet {
	ns := make(CellSet, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Cell{X: c.X + dx, Y: c.Y + dy}
			if n.X < 0 || n.X >= a.Width || n.Y < 0 || n.Y >= a.Height {
				continue
			}
			ns.Add(n)
		}
	}
	return ns
}

func (a *Agent) addSentence(s *Sentence) {
	for _, have := range a.sentences {
		if have.Equal(s) {
			return
		}
	}
	a.sentences = append(a.sentences, s)
}

/*
AddKnowledge feeds the agent one revelation: cell was opened and the
board reports count mines among its neighbors. The cell is recorded as
a made move and marked safe, a sentence over its undetermined neighbors
is added, and inference runs to a fixed point. The returned error is a
[ContradictionError] when the new hint is incompatible with what the
agent already knows.
*/
func (a *Agent) AddKnowledge(cell Cell, count int) error {
	if a.moves.Has(cell) {
		Log.Warn("cell revealed twice", "cell", cell, "count", count)
		return nil
	}
	a.moves.Add(cell)
	if err := a.MarkSafe(cell); err != nil {
		return err
	}

	cells := a.neighbors(cell)
	for n := range cells {
		if a.mines.Has(n) {
			cells.Delete(n)
			count--
		} else if a.safes.Has(n) {
			cells.Delete(n)
		}
	}
	if count < 0 || count > len(cells) {
		return contradictionf(
			"hint %d at %s is impossible over undetermined neighbors %s",
			count, cell, cells,
		)
	}
	if len(cells) > 0 {
		a.addSentence(NewSentence(cells, count))
	}

	return a.infer()
}

type mark struct {
	cell Cell
	mine bool
}

/*
infer alternates certainty propagation and subset resolution until a
full round changes nothing. Termination: every step either removes a
sentence or strictly shrinks one, bounded below by the empty set.
*/
func (a *Agent) infer() error {
	for {
		propagated, err := a.propagate()
		if err != nil {
			return err
		}
		reduced, err := a.reduce()
		if err != nil {
			return err
		}
		if !propagated && !reduced {
			return nil
		}
	}
}

/*
propagate drains all certainty currently derivable from the sentences.
Each pass takes a snapshot of the cells every sentence can already
decide, queues them, then applies the marks; applying a mark mutates
every sentence and can expose further certainty, so passes repeat until
one turns up nothing. Emptied sentences are discarded.
*/
func (a *Agent) propagate() (changed bool, err error) {
	var pending deque.Deque[mark]
	for {
		for _, s := range a.sentences {
			for c := range s.KnownMines() {
				if !a.mines.Has(c) {
					pending.PushBack(mark{c, true})
				}
			}
			for c := range s.KnownSafes() {
				if !a.safes.Has(c) {
					pending.PushBack(mark{c, false})
				}
			}
		}
		if pending.Len() == 0 {
			a.compact()
			return changed, nil
		}
		for pending.Len() > 0 {
			m := pending.PopFront()
			if m.mine {
				err = a.MarkMine(m.cell)
			} else {
				err = a.MarkSafe(m.cell)
			}
			if err != nil {
				return changed, err
			}
			changed = true
		}
	}
}

/*
reduce performs one pass of subset resolution: whenever one sentence's
cells are a proper subset of another's, the superset sentence is
replaced by the difference of the two. Subset checks always run against
the live sets, so a sentence shrunk earlier in the pass is never
reduced using stale state.
*/
func (a *Agent) reduce() (changed bool, err error) {
	for _, sup := range a.sentences {
		for _, sub := range a.sentences {
			if sub == sup || len(sub.cells) == 0 || len(sup.cells) == 0 {
				continue
			}
			if !sub.cells.SubsetOf(sup.cells) {
				continue
			}
			if sub.cells.Equal(sup.cells) {
				if sub.count != sup.count {
					return changed, contradictionf(
						"sentences %s and %s disagree", sub, sup,
					)
				}
				continue
			}
			derived := Sentence{
				cells: sup.cells.Diff(sub.cells),
				count: sup.count - sub.count,
			}
			if err := derived.check(); err != nil {
				return changed, err
			}
			*sup = derived
			changed = true
		}
	}
	if changed {
		a.compact()
	}
	return changed, nil
}

// compact drops emptied sentences and collapses duplicates.
func (a *Agent) compact() {
	kept := a.sentences[:0]
outer:
	for _, s := range a.sentences {
		if len(s.cells) == 0 {
			continue
		}
		for _, prev := range kept {
			if prev.Equal(s) {
				continue outer
			}
		}
		kept = append(kept, s)
	}
	a.sentences = kept
}

/*
SafeMove returns a cell known to be safe that has not been revealed
yet. Read-only; reports false when no such cell exists.
*/
func (a *Agent) SafeMove() (Cell, bool) {
	for c := range a.safes {
		if !a.moves.Has(c) {
			return c, true
		}
	}
	return Cell{}, false
}

/*
RandomMove picks uniformly among the cells that are neither revealed
nor known mines. Reports false when no candidate is left.
*/
func (a *Agent) RandomMove() (Cell, bool) {
	var candidates []Cell
	for y := range a.Height {
		for x := range a.Width {
			c := Cell{X: x, Y: y}
			if !a.moves.Has(c) && !a.mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}
