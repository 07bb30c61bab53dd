package knowledge

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(width, height int) *Agent {
	return NewAgent(width, height, rand.New(rand.NewPCG(1, 2)))
}

// checkInvariants asserts the properties every agent must uphold after
// any operation.
func checkInvariants(t *testing.T, a *Agent) {
	t.Helper()
	for _, s := range a.sentences {
		require.NoError(t, s.check(), "sentence %s violates its invariant", s)
		require.NotEmpty(t, s.cells, "empty sentence %s was not discarded", s)
	}
	for c := range a.mines {
		require.False(t, a.safes.Has(c), "cell %s is both mine and safe", c)
	}
}

func TestMarkMineIdempotent(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 1))

	require.NoError(t, a.MarkMine(Cell{2, 2}))
	before := a.KnownMines()
	require.NoError(t, a.MarkMine(Cell{2, 2}))

	assert.True(t, a.KnownMines().Equal(before))
	checkInvariants(t, a)
}

func TestMarkSafeIdempotent(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.MarkSafe(Cell{1, 1}))
	before := a.KnownSafes()
	require.NoError(t, a.MarkSafe(Cell{1, 1}))
	assert.True(t, a.KnownSafes().Equal(before))
	checkInvariants(t, a)
}

func TestMarkDisjointness(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.MarkMine(Cell{0, 0}))

	err := a.MarkSafe(Cell{0, 0})
	require.Error(t, err)
	assert.ErrorAs(t, err, &ContradictionError{})
	checkInvariants(t, a)
}

func TestAddKnowledgeBuildsNeighborSentence(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 2))

	require.Len(t, a.sentences, 1)
	want := NewSentence(NewCellSet(Cell{1, 0}, Cell{0, 1}, Cell{1, 1}), 2)
	assert.True(t, a.sentences[0].Equal(want))
	checkInvariants(t, a)
}

func TestAddKnowledgeAccountsForKnownCells(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.MarkMine(Cell{1, 0}))
	require.NoError(t, a.MarkSafe(Cell{0, 1}))

	// of the three neighbors of 0:0 only 1:1 is undetermined, and one
	// of the two hinted mines is already accounted for
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 2))

	assert.True(t, a.KnownMines().Has(Cell{1, 1}))
	checkInvariants(t, a)
}

func TestAddKnowledgeDuplicateRevelation(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 1))

	sentences := len(a.sentences)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 1))
	assert.Equal(t, sentences, len(a.sentences))
	assert.Equal(t, 1, a.MovesMade())
}

func TestAddKnowledgeContradictoryHint(t *testing.T) {
	a := newTestAgent(3, 3)

	// 0:0 has three neighbors, a hint of 4 is impossible
	err := a.AddKnowledge(Cell{0, 0}, 4)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ContradictionError{})
}

func TestSubsetResolution(t *testing.T) {
	one, two, three, four := Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{3, 0}

	a := newTestAgent(8, 8)
	a.addSentence(NewSentence(NewCellSet(one, two, three, four), 2))
	a.addSentence(NewSentence(NewCellSet(one, two), 1))
	require.NoError(t, a.infer())

	want := NewSentence(NewCellSet(three, four), 1)
	found := false
	for _, s := range a.sentences {
		if s.Equal(want) {
			found = true
		}
	}
	assert.True(t, found, "expected derived sentence %s, have %v", want, a.sentences)
	checkInvariants(t, a)
}

func TestSubsetResolutionCascades(t *testing.T) {
	one, two, three := Cell{0, 0}, Cell{1, 0}, Cell{2, 0}

	// {1,2,3} = 2 minus {1,2} = 2 leaves {3} = 0, which must propagate
	a := newTestAgent(8, 8)
	a.addSentence(NewSentence(NewCellSet(one, two, three), 2))
	a.addSentence(NewSentence(NewCellSet(one, two), 2))
	require.NoError(t, a.infer())

	assert.True(t, a.KnownMines().Equal(NewCellSet(one, two)))
	assert.True(t, a.KnownSafes().Has(three))
	checkInvariants(t, a)
}

func TestConflictingSentencesAreReported(t *testing.T) {
	one, two := Cell{0, 0}, Cell{1, 0}

	a := newTestAgent(8, 8)
	a.addSentence(NewSentence(NewCellSet(one, two), 0))
	a.addSentence(NewSentence(NewCellSet(one, two), 1))

	err := a.infer()
	require.Error(t, err)
	assert.ErrorAs(t, err, &ContradictionError{})
}

func TestSingleMineOnTwoCellField(t *testing.T) {
	// 1x2 field, mine at 1:0; revealing 0:0 yields hint 1
	a := newTestAgent(2, 1)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 1))

	assert.True(t, a.KnownMines().Equal(NewCellSet(Cell{1, 0})))
	checkInvariants(t, a)
}

func TestZeroHintMarksAllNeighborsSafe(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.AddKnowledge(Cell{1, 1}, 0))

	assert.Equal(t, 9, len(a.KnownSafes()))

	// SafeMove must be able to return each neighbor exactly once
	// across repeated calls once moves are recorded
	seen := make(CellSet)
	for {
		c, ok := a.SafeMove()
		if !ok {
			break
		}
		require.False(t, seen.Has(c))
		seen.Add(c)
		require.NoError(t, a.AddKnowledge(c, 0))
	}
	assert.Equal(t, 8, len(seen))
	checkInvariants(t, a)
}

func TestSafeMoveIsReadOnly(t *testing.T) {
	a := newTestAgent(3, 3)
	require.NoError(t, a.AddKnowledge(Cell{1, 1}, 0))

	safes, moves := a.KnownSafes(), a.MovesMade()
	c1, ok := a.SafeMove()
	require.True(t, ok)
	_, _ = a.SafeMove()

	assert.True(t, a.KnownSafes().Equal(safes))
	assert.Equal(t, moves, a.MovesMade())
	assert.True(t, safes.Has(c1))
}

func TestRandomMoveAvoidsMinesAndMoves(t *testing.T) {
	a := newTestAgent(2, 2)
	require.NoError(t, a.MarkMine(Cell{0, 0}))
	require.NoError(t, a.AddKnowledge(Cell{1, 1}, 1))

	for range 20 {
		c, ok := a.RandomMove()
		require.True(t, ok)
		assert.NotEqual(t, Cell{0, 0}, c)
		assert.NotEqual(t, Cell{1, 1}, c)
	}
}

func TestNoMoveAvailable(t *testing.T) {
	a := newTestAgent(2, 1)

	// the whole field is covered by moves made and known mines
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 1))
	require.True(t, a.KnownMines().Has(Cell{1, 0}))

	_, ok := a.SafeMove()
	assert.False(t, ok)
	_, ok = a.RandomMove()
	assert.False(t, ok)
}
