// Package config reads server configuration from the environment.
//
// Values come from process environment variables (optionally seeded from a
// .env file by main via godotenv). Every field has a default, so the server
// starts with no configuration at all.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/robalobadob/wordish/internal/game"
	"github.com/robalobadob/wordish/internal/words"
)

type Config struct {
	Port           string        `env:"PORT" env-default:"5175"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info"`
	Production     bool          `env:"PRODUCTION" env-default:"false"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`
	JWTSecret      string        `env:"JWT_SECRET" env-default:"dev_secret_change_me"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" env-default:"336h"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" env-default:"30m"`
	Words          Words
	Game           Game
}

// Words selects and tunes the secret word source.
type Words struct {
	Source       string        `env:"WORDS_SOURCE" env-default:"remote"`
	APIURL       string        `env:"WORDS_API_URL" env-default:"https://random-word-api.vercel.app/api"`
	FetchTimeout time.Duration `env:"WORDS_FETCH_TIMEOUT" env-default:"5s"`
	AnswersFile  string        `env:"WORDS_ANSWERS_FILE"`
	DailySalt    string        `env:"DAILY_SALT" env-default:"local_dev_salt"`
}

// Game sets the board dimensions.
type Game struct {
	WordLength  int    `env:"WORD_LENGTH" env-default:"5"`
	MaxAttempts int    `env:"MAX_ATTEMPTS" env-default:"6"`
	Fallback    string `env:"FALLBACK_WORD" env-default:"APPLE"`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}
	return cfg
}

// Validate checks the word source and board settings.
func (c *Config) Validate() error {
	switch c.Words.Source {
	case words.SourceRemote, words.SourceList, words.SourceDaily:
	default:
		return fmt.Errorf("config: unknown WORDS_SOURCE %q", c.Words.Source)
	}
	if c.SessionIdleTTL <= 0 {
		return fmt.Errorf("config: SESSION_IDLE_TTL must be positive")
	}
	return c.Game.Config().Validate()
}

// Config converts the board settings for the engine.
func (g Game) Config() game.Config {
	return game.Config{
		WordLength:  g.WordLength,
		MaxAttempts: g.MaxAttempts,
		Fallback:    g.Fallback,
	}
}

// Options converts the word settings for words.NewProvider.
func (w Words) Options() words.Options {
	return words.Options{
		Source:      w.Source,
		APIURL:      w.APIURL,
		AnswersFile: w.AnswersFile,
		DailySalt:   w.DailySalt,
	}
}

// Description lists the supported environment variables, for -help output.
func Description() (string, error) {
	return cleanenv.GetDescription(&Config{}, nil)
}
