package main

import (
	"context"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/Darjusch/minesweeper-ai/internal/game"
	"github.com/Darjusch/minesweeper-ai/internal/player"
)

var log = logrus.New()

var (
	fieldSpec string
	seed      uint64
	games     int
	verbose   bool
)

func init() {
	flag.StringVar(&fieldSpec, "field", "9x9(10)", "field params as WxH(M)")
	flag.Uint64Var(&seed, "seed", 0, "PRNG seed (0 picks a random one)")
	flag.IntVar(&games, "games", 1, "number of games to play")
	flag.BoolVar(&verbose, "v", false, "print every move and field")
}

func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	params, err := game.ParseParams(fieldSpec)
	if err != nil {
		log.Fatal(err)
	}

	r := createRand(seed)

	var wins, moves, guesses int
	for i := range games {
		field := game.NewMinefield(*params, r)
		outcome, err := player.New(field, r).Play(context.Background())
		if err != nil {
			log.WithError(err).Fatal("inference failed")
		}

		for _, m := range outcome.Moves {
			moves++
			if m.Guess {
				guesses++
			}
			log.WithFields(logrus.Fields{
				"cell":  m.Cell,
				"hint":  m.Hint,
				"guess": m.Guess,
				"mine":  m.Mine,
			}).Debug("revealed cell")
		}
		if outcome.Won {
			wins++
		}
		if verbose {
			fmt.Print(field)
		}
		log.WithFields(logrus.Fields{
			"game":    i + 1,
			"won":     outcome.Won,
			"moves":   len(outcome.Moves),
			"flagged": len(outcome.Flagged),
		}).Info("game finished")
	}

	log.WithFields(logrus.Fields{
		"field":   params,
		"moves":   moves,
		"guesses": guesses,
	}).Infof("won %d/%d games", wins, games)
}
