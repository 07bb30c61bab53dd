package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/Darjusch/minesweeper-ai/internal/handlers"
	"github.com/Darjusch/minesweeper-ai/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	var repo *repository.Queries
	if a.db != nil {
		repo = repository.New(a.db)
	}

	match := handlers.NewMatchHandler(a.logger, repo, a.ws, createRand())

	a.router.HandleFunc("POST /match", match.NewMatch)
	a.router.HandleFunc("GET /match/{id}", match.Fetch)
	a.router.HandleFunc("GET /match/{id}/watch", match.Watch)
	a.router.HandleFunc("GET /highscores", match.Highscores)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
