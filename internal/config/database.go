package config

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DbURL reads the connection string for the match record store.
// Persistence is optional; callers decide how to degrade without it.
func DbURL() (string, error) {
	dbURL, ok := os.LookupEnv("DATABASE_URL")
	if !ok {
		return "", fmt.Errorf("no DATABASE_URL env variable set")
	}
	return dbURL, nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
