// internal/game/engine.go
//
// State machine for a single Wordish game.
// Responsibilities:
//   - Hold the attempt grid, cursor, secret, keyboard hints and status as one aggregate.
//   - Apply input (type, backspace, submit) behind the playing/cursor guards.
//   - Score submissions with Evaluate and fold the verdicts into the hints.
//   - Track transitions: playing → won / lost, and reset back to playing.
//   - Tag every reset with a generation so late word fetches cannot clobber a newer game.
//
// Notes:
//   - Game is not safe for concurrent use; Session serializes access to it.
//   - Misuse (typing after the game ended, submitting a short row) is a silent no-op.
//     Each input method reports whether it changed anything.
package game

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidWord is reported by Resolve when the fetched word has the wrong
// length or contains non-letters.
var ErrInvalidWord = errors.New("game: invalid word")

// Game holds the state of a single Wordish game.
type Game struct {
	cfg     Config
	rows    []Row
	row     int // row being typed into
	col     int // next free tile in that row
	secret  string
	hints   Hints
	status  Status
	loading bool
	gen     uint64 // bumped on every Reset
}

// NewGame constructs a game in its freshly reset state: playing, loading,
// with the fallback word as secret until Resolve supplies a real one.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Fallback = normalize(cfg.Fallback)
	g := &Game{cfg: cfg}
	g.Reset()
	return g, nil
}

// Config returns the dimensions the game was built with.
func (g *Game) Config() Config { return g.cfg }

// Reset reinitializes the whole game and returns the generation the caller
// must pass to Resolve once the word fetch settles.
func (g *Game) Reset() uint64 {
	g.rows = make([]Row, g.cfg.MaxAttempts)
	for i := range g.rows {
		g.rows[i] = newRow(g.cfg.WordLength)
	}
	g.row, g.col = 0, 0
	g.hints = make(Hints)
	g.status = Playing
	g.secret = g.cfg.Fallback
	g.loading = true
	g.gen++
	return g.gen
}

// Generation returns the current reset generation.
func (g *Game) Generation() uint64 { return g.gen }

// Resolve settles the word fetch issued by the reset that returned gen.
//
// It returns false, and changes nothing, when gen belongs to a superseded
// reset. Otherwise loading ends and the secret becomes the normalized word,
// or the fallback when fetchErr is set or the word is not exactly
// WordLength letters; in that case the returned error says why.
func (g *Game) Resolve(gen uint64, word string, fetchErr error) (bool, error) {
	if gen != g.gen {
		return false, nil
	}
	g.loading = false

	if fetchErr != nil {
		g.secret = g.cfg.Fallback
		return true, fetchErr
	}
	w := normalize(word)
	if !validWord(w, g.cfg.WordLength) {
		g.secret = g.cfg.Fallback
		return true, fmt.Errorf("%w: %q is not %d letters", ErrInvalidWord, word, g.cfg.WordLength)
	}
	g.secret = w
	return true, nil
}

// Type writes ch into the next free tile of the current row.
// Letters are uppercased; anything else is ignored.
func (g *Game) Type(ch rune) bool {
	if g.status != Playing || g.col >= g.cfg.WordLength {
		return false
	}
	ch = unicode.ToUpper(ch)
	if ch < 'A' || ch > 'Z' {
		return false
	}
	g.rows[g.row].Tiles[g.col].Char = ch
	g.col++
	return true
}

// Backspace clears the most recently typed tile of the current row.
func (g *Game) Backspace() bool {
	if g.status != Playing || g.col <= 0 {
		return false
	}
	g.col--
	g.rows[g.row].Tiles[g.col] = Tile{}
	return true
}

// Submit scores a full row.
//
// State transitions:
//   - guess equals the secret → Won.
//   - otherwise on the last row → Lost.
//   - otherwise → next row, cursor back to column 0.
func (g *Game) Submit() bool {
	if g.status != Playing || g.col != g.cfg.WordLength {
		return false
	}
	cur := &g.rows[g.row]
	guess := cur.Word()

	verdicts := Evaluate(g.secret, guess)
	for i := range cur.Tiles {
		cur.Tiles[i].Verdict = verdicts[i]
	}
	g.hints.Apply([]rune(guess), verdicts)

	switch {
	case guess == g.secret:
		g.status = Won
	case g.row == len(g.rows)-1:
		g.status = Lost
	default:
		g.row++
		g.col = 0
	}
	return true
}

// Status reports whether the game is playing, won or lost.
func (g *Game) Status() Status { return g.status }

// Snapshot copies the full state for read-only use by callers.
func (g *Game) Snapshot() Snapshot {
	rows := make([]Row, len(g.rows))
	for i, r := range g.rows {
		rows[i] = Row{Tiles: append([]Tile(nil), r.Tiles...)}
	}
	return Snapshot{
		Rows:        rows,
		Row:         g.row,
		Col:         g.col,
		Secret:      g.secret,
		Hints:       g.hints.clone(),
		Status:      g.status,
		Loading:     g.loading,
		WordLength:  g.cfg.WordLength,
		MaxAttempts: g.cfg.MaxAttempts,
	}
}
