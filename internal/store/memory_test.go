package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordish/internal/game"
)

type fixedProvider string

func (p fixedProvider) FetchWord(context.Context, int) (string, error) { return string(p), nil }

func newSession(t *testing.T, id string) *game.Session {
	t.Helper()
	s, err := game.NewSession(id, game.DefaultConfig(), fixedProvider("CRANE"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// fakeClock is advanced by hand.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := newMemory(time.Now)

	// Given: a stored session
	s := newSession(t, "a")
	require.NoError(t, m.Save(ctx, s))

	// When: it is fetched
	got, err := m.Get(ctx, "a")

	// Then: the same session comes back
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Equal(t, 1, m.Len())

	// When: it is deleted
	require.NoError(t, m.Delete(ctx, "a"))

	// Then: it is gone and closed
	_, err = m.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, s.Type('A'))

	// Deleting again is harmless
	require.NoError(t, m.Delete(ctx, "a"))
}

func TestMemory_GetMissing(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SaveReplacesAndClosesOld(t *testing.T) {
	ctx := context.Background()
	m := newMemory(time.Now)
	old := newSession(t, "a")
	fresh := newSession(t, "a")

	require.NoError(t, m.Save(ctx, old))
	require.NoError(t, m.Save(ctx, fresh))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Same(t, fresh, got)
	assert.False(t, old.Type('A'))
	assert.True(t, fresh.Type('A'))
}

func TestMemory_EvictIdle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newMemory(clock.Now)

	idle := newSession(t, "idle")
	busy := newSession(t, "busy")
	require.NoError(t, m.Save(ctx, idle))
	require.NoError(t, m.Save(ctx, busy))

	clock.Advance(20 * time.Minute)
	_, err := m.Get(ctx, "busy")
	require.NoError(t, err)
	clock.Advance(15 * time.Minute)

	// When: sessions idle for 30 minutes are evicted
	evicted := m.EvictIdle(ctx, 30*time.Minute)

	// Then: only the untouched one goes
	assert.Equal(t, []string{"idle"}, evicted)
	_, err = m.Get(ctx, "idle")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, "busy")
	require.NoError(t, err)
	assert.False(t, idle.Type('A'))
}

func TestMemory_Close(t *testing.T) {
	ctx := context.Background()
	m := newMemory(time.Now)
	s := newSession(t, "a")
	require.NoError(t, m.Save(ctx, s))

	m.Close()

	assert.Equal(t, 0, m.Len())
	assert.False(t, s.Type('A'))
}
