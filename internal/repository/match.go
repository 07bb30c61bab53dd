package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Darjusch/minesweeper-ai/internal/game"
)

var ErrDuplicateMatch = errors.New("match record already exists")

// MatchRecord is the persisted summary of one finished match.
type MatchRecord struct {
	MatchId    string  `db:"match_id" json:"match_id"`
	Width      int     `db:"width" json:"width"`
	Height     int     `db:"height" json:"height"`
	MineCount  int     `db:"mine_count" json:"mine_count"`
	Won        bool    `db:"won" json:"won"`
	MoveCount  int     `db:"move_count" json:"move_count"`
	GuessCount int     `db:"guess_count" json:"guess_count"`
	PlaytimeMs float64 `db:"playtime_ms" json:"playtime_ms"`
}

func (q Queries) CreateMatchRecord(ctx context.Context, rec MatchRecord) error {
	args := pgx.NamedArgs{
		"matchId":    rec.MatchId,
		"width":      rec.Width,
		"height":     rec.Height,
		"mineCount":  rec.MineCount,
		"won":        rec.Won,
		"moveCount":  rec.MoveCount,
		"guessCount": rec.GuessCount,
		"playtimeMs": rec.PlaytimeMs,
	}
	_, err := q.db.Exec(ctx, `
	INSERT INTO match_record (
		match_id, width, height, mine_count,
		won, move_count, guess_count, playtime_ms
	) VALUES (
		@matchId, @width, @height, @mineCount,
		@won, @moveCount, @guessCount, @playtimeMs
	);`, args)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicateMatch
	}
	return err
}

type HighscoreFilter struct {
	Params *game.Params
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.Params.Width
		args["height"] = f.Params.Height
		args["mineCount"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// GetHighscores lists won matches, fewest guesses and fastest first.
func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]MatchRecord, error) {
	query := `
	SELECT
		match_id,
		width,
		height,
		mine_count,
		won,
		move_count,
		guess_count,
		playtime_ms
	FROM match_record
	WHERE won = true
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY guess_count, playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[MatchRecord])
}
