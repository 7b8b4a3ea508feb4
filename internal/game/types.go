// internal/game/types.go
//
// Core type definitions for the Wordish game engine.
// Defines:
//   - Verdict: per-letter result of a guess (unknown/absent/present/correct).
//   - Tile, Row: the attempt grid.
//   - Status: playing, or finished as won/lost.
//   - Config: board dimensions and the fallback secret.
//   - Snapshot: read-only copy of a game handed to callers.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// Verdict represents the evaluation result for a single letter in a guess.
// Verdicts are ordered: a higher verdict supersedes a lower one when hints
// for the same letter are merged.
//   - Unknown: not evaluated yet (empty or in-progress tile).
//   - Absent:  letter does not appear in the secret (or all copies are claimed).
//   - Present: letter appears in the secret at a different position.
//   - Correct: letter is in the correct position.
type Verdict int

const (
	Unknown Verdict = iota
	Absent
	Present
	Correct
)

var verdictNames = [...]string{"unknown", "absent", "present", "correct"}

func (v Verdict) String() string {
	if v < Unknown || v > Correct {
		return fmt.Sprintf("verdict(%d)", int(v))
	}
	return verdictNames[v]
}

// MarshalText encodes the verdict by name so JSON clients see "correct" etc.
func (v Verdict) MarshalText() ([]byte, error) {
	if v < Unknown || v > Correct {
		return nil, fmt.Errorf("game: invalid verdict %d", int(v))
	}
	return []byte(verdictNames[v]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (v *Verdict) UnmarshalText(b []byte) error {
	for i, name := range verdictNames {
		if string(b) == name {
			*v = Verdict(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown verdict %q", b)
}

// Tile is a single cell of the grid. Char is 0 while the tile is empty.
type Tile struct {
	Char    rune
	Verdict Verdict
}

// Empty reports whether no letter has been typed into the tile.
func (t Tile) Empty() bool { return t.Char == 0 }

// Row is one attempt: exactly WordLength tiles.
type Row struct {
	Tiles []Tile
}

func newRow(n int) Row {
	return Row{Tiles: make([]Tile, n)}
}

// Word joins the typed characters of the row, skipping empty tiles.
func (r Row) Word() string {
	var b strings.Builder
	for _, t := range r.Tiles {
		if !t.Empty() {
			b.WriteRune(t.Char)
		}
	}
	return b.String()
}

// Status is the coarse state of a game.
type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText is the inverse of MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for _, st := range [...]Status{Playing, Won, Lost} {
		if string(b) == st.String() {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("game: unknown status %q", b)
}

// Finished reports whether the game has ended, won or lost.
func (s Status) Finished() bool { return s == Won || s == Lost }

const (
	DefaultWordLength  = 5
	DefaultMaxAttempts = 6
	DefaultFallback    = "APPLE"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("game: invalid config")

// Config sets the board dimensions and the word used whenever the
// provider cannot supply one.
type Config struct {
	WordLength  int
	MaxAttempts int
	Fallback    string
}

// DefaultConfig is the classic 6x5 board with APPLE as fallback.
func DefaultConfig() Config {
	return Config{
		WordLength:  DefaultWordLength,
		MaxAttempts: DefaultMaxAttempts,
		Fallback:    DefaultFallback,
	}
}

// Validate checks dimensions and that the fallback is itself a valid secret.
func (c Config) Validate() error {
	if c.WordLength <= 0 {
		return fmt.Errorf("%w: word length %d", ErrInvalidConfig, c.WordLength)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if !validWord(normalize(c.Fallback), c.WordLength) {
		return fmt.Errorf("%w: fallback %q is not %d letters", ErrInvalidConfig, c.Fallback, c.WordLength)
	}
	return nil
}

// Snapshot is a deep copy of a game's state. Mutating it has no effect on
// the game it came from.
type Snapshot struct {
	Rows        []Row
	Row         int
	Col         int
	Secret      string
	Hints       Hints
	Status      Status
	Loading     bool
	WordLength  int
	MaxAttempts int
}

// normalize uppercases and trims a word.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// validWord reports whether s is exactly n uppercase ASCII letters.
func validWord(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
