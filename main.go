package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordish/internal/config"
	"github.com/robalobadob/wordish/internal/httpserver"
	"github.com/robalobadob/wordish/internal/store"
	"github.com/robalobadob/wordish/internal/words"
)

func main() {
	help := flag.Bool("help", false, "print supported environment variables and exit")
	flag.Parse()
	if *help {
		desc, err := config.Description()
		if err != nil {
			log.Fatal().Err(err).Msg("describe config")
		}
		fmt.Println(desc)
		return
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	provider, err := words.NewProvider(cfg.Words.Options())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up word source")
	}

	mem := store.NewMemoryStore()
	defer mem.Close()

	srv := httpserver.New(mem, provider, httpserver.Options{
		Game:          cfg.Game.Config(),
		FetchTimeout:  cfg.Words.FetchTimeout,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookies: cfg.Production,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.SweepIdle(ctx, time.Minute, cfg.SessionIdleTTL)

	log.Info().
		Str("port", cfg.Port).
		Str("words", cfg.Words.Source).
		Msg("starting wordish server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
