package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/RoshanKumar487/profitlens/internal/db"
	"github.com/RoshanKumar487/profitlens/internal/logger"

	"github.com/joho/godotenv"
)

// Applies every migrations/*.sql file in lexical order. Files are written to
// be idempotent (CREATE TABLE IF NOT EXISTS) so re-running is safe.
func main() {
	_ = godotenv.Load()
	logger.Setup()
	log := logger.WithComponent("migrate")

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		log.Fatal().Err(err).Msg("list migrations")
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("read migration")
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("apply migration")
		}
		log.Info().Str("file", file).Msg("migration applied")
	}
}
