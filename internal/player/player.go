package player

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/Darjusch/minesweeper-ai/internal/game"
	"github.com/Darjusch/minesweeper-ai/internal/knowledge"
)

var Log *slog.Logger = slog.Default()

// Move is one revealed cell of a game transcript.
type Move struct {
	Cell  knowledge.Cell `json:"cell"`
	Guess bool           `json:"guess"`
	Hint  int            `json:"hint"`
	Mine  bool           `json:"mine"`
}

// Outcome is the full record of one finished game.
type Outcome struct {
	Params  game.Params      `json:"params"`
	Won     bool             `json:"won"`
	Moves   []Move           `json:"moves"`
	Flagged []knowledge.Cell `json:"flagged"`
}

/*
Player drives one game turn by turn: it reveals a provably safe cell
when the agent knows one, guesses otherwise, and feeds every hint back
into the agent.
*/
type Player struct {
	// First, when set, is revealed on the opening turn instead of a
	// guess. Pair it with [game.NewMinefieldSafe] over the same cell.
	First *knowledge.Cell

	field    *game.Minefield
	agent    *knowledge.Agent
	revealed int
}

func New(field *game.Minefield, r *rand.Rand) *Player {
	return &Player{
		field: field,
		agent: knowledge.NewAgent(field.Width, field.Height, r),
	}
}

/*
PlayTurn reveals a single cell. It returns a nil move when no cell is
left to reveal, and an error when the agent's knowledge turned
contradictory (which means the field fed it inconsistent hints).
*/
func (p *Player) PlayTurn() (*Move, error) {
	var move Move
	if p.First != nil && p.revealed == 0 {
		move = Move{Cell: *p.First, Guess: true}
		p.First = nil
	} else if cell, ok := p.agent.SafeMove(); ok {
		move = Move{Cell: cell}
	} else if cell, ok := p.agent.RandomMove(); ok {
		move = Move{Cell: cell, Guess: true}
	} else {
		return nil, nil
	}

	if p.field.IsMine(move.Cell) {
		move.Mine = true
		return &move, nil
	}

	p.revealed++
	move.Hint = p.field.NearbyMines(move.Cell)
	if err := p.agent.AddKnowledge(move.Cell, move.Hint); err != nil {
		return nil, err
	}
	return &move, nil
}

// Won reports whether every safe cell has been revealed.
func (p *Player) Won() bool {
	return p.revealed == p.field.SafeCellCount()
}

/*
Play runs the game to completion: a win once every safe cell is
revealed, a loss the moment a guess opens a mine. The context is
checked between turns so a streamed game can be abandoned.
*/
func (p *Player) Play(ctx context.Context) (*Outcome, error) {
	out := &Outcome{Params: p.field.Params}
	for !p.Won() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		move, err := p.PlayTurn()
		if err != nil {
			return nil, err
		}
		if move == nil {
			break
		}
		out.Moves = append(out.Moves, *move)
		Log.Debug("revealed cell",
			"cell", move.Cell,
			"hint", move.Hint,
			"guess", move.Guess,
			"mine", move.Mine,
		)
		if move.Mine {
			break
		}
	}
	out.Won = p.Won()
	out.Flagged = p.agent.KnownMines().Cells()
	return out, nil
}
