// internal/game/session.go
//
// Session owns one Game on a dedicated goroutine.
// Responsibilities:
//   - Serialize every mutation (type, backspace, submit, reset) and every read.
//   - Fetch a fresh secret from the WordProvider after each reset, off the loop.
//   - Deliver the fetch result back onto the loop, tagged with its reset generation,
//     so a slow fetch from an earlier reset is dropped instead of applied.
//
// Notes:
//   - Provider failures never reach the caller: the game falls back to the
//     configured word and play continues.
//   - Operations on a closed session are no-ops returning the zero value.
package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// WordProvider supplies secret words. Implementations live in the words package.
type WordProvider interface {
	FetchWord(ctx context.Context, length int) (string, error)
}

// SessionOption tweaks a Session at construction.
type SessionOption func(*Session)

// WithFetchTimeout bounds each word fetch. Zero means no bound.
func WithFetchTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.fetchTimeout = d }
}

// Session is a Game behind a single-owner event loop. It is safe for
// concurrent use.
type Session struct {
	id           string
	game         *Game // touched only by loop
	provider     WordProvider
	fetchTimeout time.Duration
	log          zerolog.Logger

	cmds      chan func()
	quit      chan struct{}
	ctx       context.Context // cancelled on Close; parent of every fetch
	cancel    context.CancelFunc
	mu        sync.Mutex // guards closed and fetches.Add
	closed    bool
	fetches   sync.WaitGroup
}

// NewSession builds the game, starts its loop and issues the first fetch.
func NewSession(id string, cfg Config, provider WordProvider, logger zerolog.Logger, opts ...SessionOption) (*Session, error) {
	g, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:       id,
		game:     g,
		provider: provider,
		log:      logger.With().Str("session", id).Logger(),
		cmds:     make(chan func()),
		quit:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()

	// The game is already in its reset state; only the fetch is missing.
	s.fetch(g.Generation())
	return s, nil
}

// ID returns the identifier the session was created with.
func (s *Session) ID() string { return s.id }

func (s *Session) run() {
	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.quit:
			return
		}
	}
}

// do runs fn on the loop and waits for it. It reports false if the session
// was closed before fn ran.
func (s *Session) do(fn func(g *Game)) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(s.game); close(done) }:
	case <-s.quit:
		return false
	}
	select {
	case <-done:
		return true
	case <-s.quit:
		return false
	}
}

// Type writes a letter at the cursor.
func (s *Session) Type(ch rune) bool {
	var changed bool
	s.do(func(g *Game) { changed = g.Type(ch) })
	return changed
}

// Backspace clears the last typed letter of the current row.
func (s *Session) Backspace() bool {
	var changed bool
	s.do(func(g *Game) { changed = g.Backspace() })
	return changed
}

// Submit scores the current row once it is full.
func (s *Session) Submit() bool {
	var (
		changed bool
		status  Status
	)
	s.do(func(g *Game) {
		changed = g.Submit()
		status = g.Status()
	})
	if changed && status.Finished() {
		s.log.Info().Stringer("status", status).Msg("game finished")
	}
	return changed
}

// Reset starts a new game and fetches a new secret for it.
func (s *Session) Reset() {
	var gen uint64
	if !s.do(func(g *Game) { gen = g.Reset() }) {
		return
	}
	s.log.Debug().Uint64("gen", gen).Msg("game reset")
	s.fetch(gen)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.do(func(g *Game) { snap = g.Snapshot() })
	return snap
}

// fetch asks the provider for a word without blocking the caller and posts
// the outcome back to the loop.
func (s *Session) fetch(gen uint64) {
	length := s.game.cfg.WordLength // immutable after NewGame

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.fetches.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.fetches.Done()

		ctx := s.ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}
		word, err := s.provider.FetchWord(ctx, length)

		s.do(func(g *Game) {
			applied, reason := g.Resolve(gen, word, err)
			switch {
			case !applied:
				s.log.Debug().Uint64("gen", gen).Msg("discarding stale word fetch")
			case reason != nil:
				s.log.Warn().Err(reason).Str("fallback", g.cfg.Fallback).Msg("word fetch failed, using fallback")
			default:
				s.log.Debug().Str("secret", g.secret).Msg("new secret word")
			}
		})
	}()
}

// Close stops the loop and cancels any in-flight fetch. It waits for fetch
// goroutines to exit and is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		s.cancel()
		close(s.quit)
	}
	s.mu.Unlock()
	s.fetches.Wait()
}
