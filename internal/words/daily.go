// internal/words/daily.go
//
// Word-of-the-day source.
// Every fetch on the same UTC date returns the same word, chosen by
// daily.WordIndex over the words of the requested length. Changing the salt
// reshuffles the schedule.

package words

import (
	"context"
	"fmt"
	"time"

	"github.com/robalobadob/wordish/internal/daily"
)

// DailyProvider serves the word of the day from a fixed list.
type DailyProvider struct {
	words []string
	salt  string
	now   func() time.Time
}

// NewDailyProvider builds a daily source over list. now defaults to time.Now.
func NewDailyProvider(list []string, salt string, now func() time.Time) *DailyProvider {
	if now == nil {
		now = time.Now
	}
	return &DailyProvider{words: normalizeList(list), salt: salt, now: now}
}

// FetchWord returns today's word of the given length.
func (p *DailyProvider) FetchWord(ctx context.Context, length int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	candidates := ofLength(p.words, length)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %d", ErrNoWords, length)
	}
	return candidates[daily.WordIndex(p.now(), p.salt, len(candidates))], nil
}
