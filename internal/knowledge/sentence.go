package knowledge

import "fmt"

/*
Sentence is a logical statement about the minefield: exactly count of
cells are mines. Sentences only ever mention cells whose status is
undetermined; once a cell is resolved it is removed from every sentence
it appears in.
*/
type Sentence struct {
	cells CellSet
	count int
}

func NewSentence(cells CellSet, count int) *Sentence {
	return &Sentence{cells: cells.Clone(), count: count}
}

func (s Sentence) String() string {
	return fmt.Sprintf("%s = %d", s.cells, s.count)
}

func (s Sentence) Equal(x *Sentence) bool {
	return s.count == x.count && s.cells.Equal(x.cells)
}

/*
KnownMines returns the cells of the sentence that are certainly mines:
all of them when the mine count equals the set size, none otherwise.
The returned set is a copy.
*/
func (s Sentence) KnownMines() CellSet {
	if s.count == len(s.cells) && s.count > 0 {
		return s.cells.Clone()
	}
	return nil
}

/*
KnownSafes returns the cells of the sentence that are certainly safe:
all of them when the mine count is zero, none otherwise. The returned
set is a copy.
*/
func (s Sentence) KnownSafes() CellSet {
	if s.count == 0 && len(s.cells) > 0 {
		return s.cells.Clone()
	}
	return nil
}

// markMine removes a cell now known to be a mine; its mine is accounted
// for outside this sentence, so the count drops with it.
func (s *Sentence) markMine(c Cell) {
	if s.cells.Has(c) {
		s.cells.Delete(c)
		s.count--
	}
}

// markSafe removes a cell now known to be safe; it contributed nothing
// to the count.
func (s *Sentence) markSafe(c Cell) {
	s.cells.Delete(c)
}

// check reports a contradiction when the count can no longer describe
// any real minefield.
func (s Sentence) check() error {
	if s.count < 0 || s.count > len(s.cells) {
		return contradictionf("sentence %s cannot hold", s)
	}
	return nil
}
