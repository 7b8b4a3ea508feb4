// internal/words/words.go
//
// Word sources for the game engine.
//
// Responsibilities:
//   - Load a word list from a file or fall back to the embedded answers list.
//   - Serve random words of a requested length (ListProvider).
//   - Define the provider failure taxonomy shared by every source.
//
// Word lists:
//   - One word per line; blank lines and "#" comments are skipped.
//   - Words are normalized to uppercase; anything non-alphabetic is dropped.
//   - Lists may mix lengths. Providers pick among words of the requested length.
//
// Environment variables (read by config):
//   WORDS_ANSWERS_FILE=/path/to/answers.txt

package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordish/assets"
)

// Provider failures. Callers should match them with errors.Is.
var (
	ErrNetwork = errors.New("words: network error")
	ErrDecode  = errors.New("words: decode error")
	ErrNoWords = errors.New("words: no word of requested length")
)

// LoadList reads the list at path, or the embedded answers list when path
// is empty. An empty result is an error.
func LoadList(path string) ([]string, error) {
	var (
		list []string
		err  error
	)
	if path != "" {
		list, err = readWordFile(path)
	} else {
		list, err = assets.AnswersList()
	}
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	list = normalizeList(list)
	if len(list) == 0 {
		return nil, errors.New("words: list is empty")
	}
	return list, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalizeList uppercases words and keeps only alphabetic ones.
func normalizeList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ofLength returns the words of list that are exactly n letters long.
func ofLength(list []string, n int) []string {
	var out []string
	for _, w := range list {
		if len(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// ListProvider picks a random word from a fixed list.
type ListProvider struct {
	words []string
}

// NewListProvider normalizes list and serves words from it.
func NewListProvider(list []string) *ListProvider {
	return &ListProvider{words: normalizeList(list)}
}

// FetchWord returns a cryptographically random word of the given length.
func (p *ListProvider) FetchWord(ctx context.Context, length int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	candidates := ofLength(p.words, length)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %d", ErrNoWords, length)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return "", fmt.Errorf("pick word: %w", err)
	}
	return candidates[n.Int64()], nil
}

// Len reports how many words the provider holds, across all lengths.
func (p *ListProvider) Len() int { return len(p.words) }
