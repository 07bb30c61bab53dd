package player

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darjusch/minesweeper-ai/internal/game"
	"github.com/Darjusch/minesweeper-ai/internal/knowledge"
)

func TestPlayMinelessField(t *testing.T) {
	f, err := game.ParseLayout(
		"---",
		"---",
	)
	require.NoError(t, err)

	p := New(f, rand.New(rand.NewPCG(1, 2)))
	out, err := p.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, out.Won)
	assert.Empty(t, out.Flagged)
	// the first reveal hints 0 and clears its whole neighborhood; the
	// rest are picked one per turn
	assert.NotEmpty(t, out.Moves)
	assert.True(t, out.Moves[0].Guess)
	for _, m := range out.Moves[1:] {
		assert.False(t, m.Guess, "every move after the opener is deducible")
	}
}

func TestPlayDeducesCornerMine(t *testing.T) {
	// opening at 0:0 on this field hints 1 and corners the mine
	f, err := game.ParseLayout(
		"-*",
	)
	require.NoError(t, err)

	p := New(f, rand.New(rand.NewPCG(1, 2)))
	p.First = &knowledge.Cell{X: 0, Y: 0}

	out, err := p.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, out.Won)
	assert.Equal(t, []knowledge.Cell{{X: 1, Y: 0}}, out.Flagged)
	require.Len(t, out.Moves, 1)
	assert.Equal(t, 1, out.Moves[0].Hint)
}

func TestPlayLossEndsGame(t *testing.T) {
	// every cell neighbors the center mine, the opening guess decides
	// the game and no safe deduction ever exists
	f, err := game.ParseLayout(
		"--",
		"-*",
	)
	require.NoError(t, err)

	p := New(f, rand.New(rand.NewPCG(7, 7)))
	out, err := p.Play(context.Background())
	require.NoError(t, err)

	last := out.Moves[len(out.Moves)-1]
	if out.Won {
		assert.False(t, last.Mine)
		assert.Len(t, out.Moves, 3)
	} else {
		assert.True(t, last.Mine)
	}
	for _, m := range out.Moves[:len(out.Moves)-1] {
		assert.False(t, m.Mine)
	}
}

func TestPlayCanceledContext(t *testing.T) {
	f, err := game.ParseLayout("---")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(f, rand.New(rand.NewPCG(1, 2))).Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// Soundness: whatever the outcome, the agent must never flag a safe
// cell as a mine or open a mine it could have known about.
func TestPlaySoundness(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name   string
		params game.Params
	}{
		{name: "4x4(3)", params: game.Params{Width: 4, Height: 4, MineCount: 3}},
		{name: "9x9(10)", params: game.Params{Width: 9, Height: 9, MineCount: 10}},
		{name: "16x16(40)", params: game.Params{Width: 16, Height: 16, MineCount: 40}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 25 {
				f := game.NewMinefield(test.params, r)
				mines := f.MineCells()

				out, err := New(f, r).Play(context.Background())
				require.NoError(t, err)

				for _, c := range out.Flagged {
					require.True(t, mines.Has(c),
						"flagged safe cell %s on field\n%s", c, f)
				}
				for _, m := range out.Moves {
					require.Equal(t, f.IsMine(m.Cell), m.Mine)
					if m.Mine {
						require.True(t, m.Guess,
							"opened a known mine at %s on field\n%s", m.Cell, f)
					}
				}
				if out.Won {
					require.Len(t, out.Moves, test.params.SafeCellCount())
				}
			}
		})
	}
}
