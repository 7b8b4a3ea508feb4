package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// stubProvider answers every fetch immediately.
type stubProvider struct {
	word string
	err  error
}

func (p stubProvider) FetchWord(context.Context, int) (string, error) { return p.word, p.err }

// gatedProvider parks every fetch until the test answers it.
type gatedProvider struct {
	requests chan pendingFetch
}

type pendingFetch struct {
	length int
	reply  chan fetchResult
}

type fetchResult struct {
	word string
	err  error
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{requests: make(chan pendingFetch, 4)}
}

func (p *gatedProvider) FetchWord(ctx context.Context, length int) (string, error) {
	f := pendingFetch{length: length, reply: make(chan fetchResult, 1)}
	select {
	case p.requests <- f:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case r := <-f.reply:
		return r.word, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *gatedProvider) next(t *testing.T) pendingFetch {
	t.Helper()
	select {
	case f := <-p.requests:
		return f
	case <-time.After(waitFor):
		t.Fatal("no fetch issued")
		return pendingFetch{}
	}
}

// syncBuffer lets the test read log output written from the session loop.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestSession(t *testing.T, p WordProvider, opts ...SessionOption) (*Session, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	logger := zerolog.New(logs).Level(zerolog.DebugLevel)
	s, err := NewSession("test", DefaultConfig(), p, logger, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, logs
}

func waitLoaded(t *testing.T, s *Session) Snapshot {
	t.Helper()
	var snap Snapshot
	require.Eventually(t, func() bool {
		snap = s.Snapshot()
		return !snap.Loading
	}, waitFor, 5*time.Millisecond)
	return snap
}

func TestNewSession_InvalidConfig(t *testing.T) {
	_, err := NewSession("x", Config{}, stubProvider{}, zerolog.Nop())
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSession_Fetch(t *testing.T) {
	t.Run("fetched word becomes the secret", func(t *testing.T) {
		s, _ := newTestSession(t, stubProvider{word: "crane"})

		snap := waitLoaded(t, s)

		assert.Equal(t, "CRANE", snap.Secret)
		assert.Equal(t, Playing, snap.Status)
	})

	t.Run("provider failure falls back", func(t *testing.T) {
		s, logs := newTestSession(t, stubProvider{err: errors.New("network down")})

		snap := waitLoaded(t, s)

		assert.Equal(t, DefaultFallback, snap.Secret)
		assert.Contains(t, logs.String(), "using fallback")
	})

	t.Run("wrong length falls back", func(t *testing.T) {
		s, _ := newTestSession(t, stubProvider{word: "BANANAS"})

		snap := waitLoaded(t, s)

		assert.Equal(t, DefaultFallback, snap.Secret)
	})

	t.Run("provider is asked for the configured length", func(t *testing.T) {
		p := newGatedProvider()
		s, _ := newTestSession(t, p)

		f := p.next(t)
		assert.Equal(t, DefaultWordLength, f.length)
		f.reply <- fetchResult{word: "CRANE"}

		assert.Equal(t, "CRANE", waitLoaded(t, s).Secret)
	})

	t.Run("timeout falls back", func(t *testing.T) {
		p := newGatedProvider()
		s, _ := newTestSession(t, p, WithFetchTimeout(20*time.Millisecond))
		p.next(t) // never answered

		snap := waitLoaded(t, s)

		assert.Equal(t, DefaultFallback, snap.Secret)
	})

	t.Run("loading does not gate input", func(t *testing.T) {
		p := newGatedProvider()
		s, _ := newTestSession(t, p)
		f := p.next(t)

		require.True(t, s.Type('A'))
		snap := s.Snapshot()
		assert.True(t, snap.Loading)
		assert.Equal(t, 1, snap.Col)

		f.reply <- fetchResult{word: "CRANE"}
		waitLoaded(t, s)
	})
}

func TestSession_StaleFetch(t *testing.T) {
	t.Run("late result of an earlier reset is discarded", func(t *testing.T) {
		p := newGatedProvider()
		s, logs := newTestSession(t, p)
		first := p.next(t)

		s.Reset()
		second := p.next(t)

		second.reply <- fetchResult{word: "CRANE"}
		require.Equal(t, "CRANE", waitLoaded(t, s).Secret)

		first.reply <- fetchResult{word: "TRAIN"}
		require.Eventually(t, func() bool {
			return strings.Contains(logs.String(), "discarding stale word fetch")
		}, waitFor, 5*time.Millisecond)

		assert.Equal(t, "CRANE", s.Snapshot().Secret)
	})

	t.Run("early result of an earlier reset does not end loading", func(t *testing.T) {
		p := newGatedProvider()
		s, logs := newTestSession(t, p)
		first := p.next(t)

		s.Reset()
		second := p.next(t)

		first.reply <- fetchResult{word: "TRAIN"}
		require.Eventually(t, func() bool {
			return strings.Contains(logs.String(), "discarding stale word fetch")
		}, waitFor, 5*time.Millisecond)

		snap := s.Snapshot()
		assert.True(t, snap.Loading)
		assert.Equal(t, DefaultFallback, snap.Secret)

		second.reply <- fetchResult{word: "CRANE"}
		assert.Equal(t, "CRANE", waitLoaded(t, s).Secret)
	})
}

func TestSession_Play(t *testing.T) {
	t.Run("win", func(t *testing.T) {
		s, logs := newTestSession(t, stubProvider{word: "CRANE"})
		waitLoaded(t, s)

		guess(s, "TRAIN")
		guess(s, "CRANE")

		snap := s.Snapshot()
		assert.Equal(t, Won, snap.Status)
		assert.Equal(t, 1, snap.Row)
		assert.Contains(t, logs.String(), "game finished")
	})

	t.Run("loss then reset", func(t *testing.T) {
		s, _ := newTestSession(t, stubProvider{word: "CRANE"})
		waitLoaded(t, s)
		for i := 0; i < DefaultMaxAttempts; i++ {
			guess(s, "ZZZZZ")
		}
		require.Equal(t, Lost, s.Snapshot().Status)
		assert.False(t, s.Type('A'))

		s.Reset()

		snap := waitLoaded(t, s)
		assert.Equal(t, Playing, snap.Status)
		assert.Equal(t, 0, snap.Row)
		assert.Equal(t, 0, snap.Col)
		assert.Empty(t, snap.Hints)
		assert.Equal(t, "", snap.Rows[0].Word())
	})

	t.Run("concurrent typing keeps the cursor in bounds", func(t *testing.T) {
		s, _ := newTestSession(t, stubProvider{word: "CRANE"})
		waitLoaded(t, s)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Type('Q')
				s.Backspace()
				s.Type('Z')
			}()
		}
		wg.Wait()

		snap := s.Snapshot()
		assert.GreaterOrEqual(t, snap.Col, 0)
		assert.LessOrEqual(t, snap.Col, DefaultWordLength)
		assert.Len(t, snap.Rows[0].Word(), snap.Col)
	})
}

func TestSession_Close(t *testing.T) {
	p := newGatedProvider()
	s, _ := newTestSession(t, p)
	p.next(t) // left in flight

	s.Close()
	s.Close()

	assert.False(t, s.Type('A'))
	assert.False(t, s.Submit())
	assert.Equal(t, Snapshot{}, s.Snapshot())
	s.Reset()
}
