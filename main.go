package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/baldmike/baseball-game-sub001/internal/game"
	"github.com/baldmike/baseball-game-sub001/internal/httpserver"
	"github.com/baldmike/baseball-game-sub001/internal/roster"
	"github.com/baldmike/baseball-game-sub001/internal/store"
)

// config is the process environment. Auth secrets and CORS origins are read
// where they are used; this covers startup wiring only.
type config struct {
	Port       string `env:"PORT" envDefault:"5175"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath     string `env:"DB_PATH" envDefault:"./data/app.db"`
	TuningFile string `env:"TUNING_FILE"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse environment")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := roster.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load league rosters")
	}
	teams, batters, pitchers := roster.Counts()
	log.Info().Int("teams", teams).Int("batters", batters).Int("pitchers", pitchers).Msg("league loaded")

	tun, err := game.LoadTuning(cfg.TuningFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.TuningFile).Msg("failed to load engine tuning")
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, tun)
	log.Info().Str("port", cfg.Port).Msg("starting baseball server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
