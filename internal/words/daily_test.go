package words

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyProvider_FetchWord(t *testing.T) {
	list := []string{"crane", "train", "apple", "pearl", "stone", "anchor"}
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("same day same word", func(t *testing.T) {
		morning := NewDailyProvider(list, "salt", func() time.Time { return day })
		evening := NewDailyProvider(list, "salt", func() time.Time { return day.Add(14 * time.Hour) })

		a, err := morning.FetchWord(context.Background(), 5)
		require.NoError(t, err)
		b, err := evening.FetchWord(context.Background(), 5)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Len(t, a, 5)
	})

	t.Run("only words of the requested length", func(t *testing.T) {
		p := NewDailyProvider(list, "salt", func() time.Time { return day })

		w, err := p.FetchWord(context.Background(), 6)

		require.NoError(t, err)
		assert.Equal(t, "ANCHOR", w)
	})

	t.Run("no word of that length", func(t *testing.T) {
		p := NewDailyProvider(list, "salt", nil)

		_, err := p.FetchWord(context.Background(), 3)

		require.ErrorIs(t, err, ErrNoWords)
	})
}
