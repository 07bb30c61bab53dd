package handlers

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"

	"github.com/Darjusch/minesweeper-ai/internal/config"
	"github.com/Darjusch/minesweeper-ai/internal/game"
	"github.com/Darjusch/minesweeper-ai/internal/knowledge"
	"github.com/Darjusch/minesweeper-ai/internal/player"
	"github.com/Darjusch/minesweeper-ai/internal/repository"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type MatchHandler struct {
	logger *slog.Logger
	repo   *repository.Queries // nil when persistence is not configured
	ws     *config.WebSocket
	store  *MatchStore
	rnd    *rand.Rand
}

func NewMatchHandler(
	logger *slog.Logger,
	repo *repository.Queries,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *MatchHandler {
	return &MatchHandler{
		logger: logger,
		repo:   repo,
		ws:     ws,
		store:  NewMatchStore(),
		rnd:    rnd,
	}
}

type newMatchDTO struct {
	Width     int     `schema:"width,required"`
	Height    int     `schema:"height,required"`
	MineCount int     `schema:"mine_count,required"`
	StartX    *int    `schema:"start_x"`
	StartY    *int    `schema:"start_y"`
	Seed      *uint64 `schema:"seed"`
}

/*
NewMatch generates a minefield and lets the agent play it to
completion. An optional start_x/start_y pair protects the opening
reveal; an optional seed makes the match reproducible.
*/
func (h MatchHandler) NewMatch(w http.ResponseWriter, r *http.Request) {
	var dto newMatchDTO
	if err := decoder.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	params := game.Params{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	if err := params.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	rnd := h.rnd
	if dto.Seed != nil {
		rnd = rand.New(rand.NewPCG(*dto.Seed, *dto.Seed))
	}

	var (
		field *game.Minefield
		start *knowledge.Cell
	)
	if dto.StartX != nil && dto.StartY != nil {
		c := knowledge.Cell{X: *dto.StartX, Y: *dto.StartY}
		if !params.CellInBounds(c.X, c.Y) {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(
				fmt.Errorf("start cell %s is out of bounds", c),
			))
			return
		}
		field = game.NewMinefieldSafe(params, c, rnd)
		start = &c
	} else {
		field = game.NewMinefield(params, rnd)
	}
	p := player.New(field, rnd)
	p.First = start

	started := time.Now()
	outcome, err := p.Play(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("match could not be played out", "error", err)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	match := &Match{
		MatchId:    uuid.NewString(),
		PlaytimeMs: float64(time.Since(started)) / float64(time.Millisecond),
		Outcome:    outcome,
	}
	h.store.Put(match)

	if h.repo != nil {
		guesses := 0
		for _, m := range outcome.Moves {
			if m.Guess {
				guesses++
			}
		}
		err := h.repo.CreateMatchRecord(r.Context(), repository.MatchRecord{
			MatchId:    match.MatchId,
			Width:      params.Width,
			Height:     params.Height,
			MineCount:  params.MineCount,
			Won:        outcome.Won,
			MoveCount:  len(outcome.Moves),
			GuessCount: guesses,
			PlaytimeMs: match.PlaytimeMs,
		})
		if err != nil {
			h.logger.Error("unable to persist match record", "error", err)
		}
	}

	sendJSONOrLog(w, h.logger, match)
}

func (h MatchHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	match, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sendJSONOrLog(w, h.logger, match)
}

/*
Watch replays a finished match over a websocket: one message per move,
then the full match, then a normal close.
*/
func (h MatchHandler) Watch(w http.ResponseWriter, r *http.Request) {
	match, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	for _, move := range match.Outcome.Moves {
		if err := conn.WriteJSON(move); err != nil {
			h.logger.Warn("unable to stream move", "error", err)
			return
		}
	}
	if err := conn.WriteJSON(match); err != nil {
		h.logger.Warn("unable to stream match summary", "error", err)
		return
	}
	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

type highscoresDTO struct {
	Width     *int `schema:"width"`
	Height    *int `schema:"height"`
	MineCount *int `schema:"mine_count"`
}

func (h MatchHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		sendJSONOrLog(w, h.logger, map[string]string{
			"error": "persistence is not configured",
		})
		return
	}

	var dto highscoresDTO
	if err := decoder.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	filter := repository.HighscoreFilter{}
	if dto.Width != nil && dto.Height != nil && dto.MineCount != nil {
		filter.Params = &game.Params{
			Width:     *dto.Width,
			Height:    *dto.Height,
			MineCount: *dto.MineCount,
		}
	}

	records, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}
	sendJSONOrLog(w, h.logger, records)
}
