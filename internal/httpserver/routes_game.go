// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
// Exposes the render/input boundary of a session under /game:
//   - POST   /game/new       → reset the caller's session, or create one and issue a token
//   - GET    /game           → current snapshot
//   - POST   /game/type      → {"char":"A"} type one letter
//   - POST   /game/backspace → erase the last letter
//   - POST   /game/submit    → score the current row
//   - POST   /game/key       → {"key":"ENTER"} on-screen keyboard dispatch
//   - GET    /game/keyboard  → keyboard layout coloured by hints
//   - DELETE /game           → close and forget the session
//
// Rejected input (wrong letter, full row, finished game) is not an error:
// the response is 200 with changed=false and the unchanged state.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordish/internal/game"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNew)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleState)
			r.Delete("/", s.handleDelete)
			r.Post("/type", s.handleType)
			r.Post("/backspace", s.handleBackspace)
			r.Post("/submit", s.handleSubmit)
			r.Post("/key", s.handleKey)
			r.Get("/keyboard", s.handleKeyboard)
		})
	})
}

// -----------------------------------------------------------------------------
// DTOs

// tileDTO is one board cell.
type tileDTO struct {
	Char    string       `json:"char"`
	Verdict game.Verdict `json:"verdict"`
}

// stateRes is the JSON view of a game snapshot.
type stateRes struct {
	Rows        [][]tileDTO             `json:"rows"`
	Row         int                     `json:"row"`
	Col         int                     `json:"col"`
	Status      game.Status             `json:"status"`
	Loading     bool                    `json:"loading"`
	Hints       map[string]game.Verdict `json:"hints"`
	Secret      string                  `json:"secret,omitempty"` // only once finished
	WordLength  int                     `json:"wordLength"`
	MaxAttempts int                     `json:"maxAttempts"`
}

// moveRes is returned by every input endpoint.
type moveRes struct {
	Changed bool     `json:"changed"`
	State   stateRes `json:"state"`
}

// newRes is returned by /game/new.
type newRes struct {
	Token string   `json:"token"`
	State stateRes `json:"state"`
}

// toState converts a snapshot, hiding the secret while the game is running.
func toState(snap game.Snapshot) stateRes {
	rows := make([][]tileDTO, len(snap.Rows))
	for i, row := range snap.Rows {
		rows[i] = make([]tileDTO, len(row.Tiles))
		for j, t := range row.Tiles {
			var ch string
			if !t.Empty() {
				ch = string(t.Char)
			}
			rows[i][j] = tileDTO{Char: ch, Verdict: t.Verdict}
		}
	}
	hints := make(map[string]game.Verdict, len(snap.Hints))
	for r, v := range snap.Hints {
		hints[string(r)] = v
	}
	res := stateRes{
		Rows:        rows,
		Row:         snap.Row,
		Col:         snap.Col,
		Status:      snap.Status,
		Loading:     snap.Loading,
		Hints:       hints,
		WordLength:  snap.WordLength,
		MaxAttempts: snap.MaxAttempts,
	}
	if snap.Status.Finished() {
		res.Secret = snap.Secret
	}
	return res
}

// -----------------------------------------------------------------------------
// /game/new

// handleNew resets the caller's game if the token still maps to a live
// session; otherwise it creates a session and issues a fresh token.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	if tok := bearerOrCookie(r); tok != "" {
		if sid, err := s.parseToken(tok); err == nil {
			if sess, err := s.store.Get(r.Context(), sid); err == nil {
				sess.Reset()
				writeJSON(w, http.StatusOK, newRes{Token: tok, State: toState(sess.Snapshot())})
				return
			}
		}
	}

	id := uuid.NewString()
	sess, err := game.NewSession(id, s.opts.Game, s.provider,
		log.With().Str("session", id).Logger(),
		game.WithFetchTimeout(s.opts.FetchTimeout))
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		sess.Close()
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	tok, exp, err := s.signToken(id)
	if err != nil {
		_ = s.store.Delete(r.Context(), id)
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("session", id).Msg("session created")
	writeJSON(w, http.StatusCreated, newRes{Token: tok, State: toState(sess.Snapshot())})
}

// -----------------------------------------------------------------------------
// state / delete

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toState(sessionFrom(r).Snapshot()))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), sessionFrom(r).ID())
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// input

// typeReq is the request payload for /game/type.
type typeReq struct {
	Char string `json:"char"`
}

// keyReq is the request payload for /game/key.
type keyReq struct {
	Key string `json:"key"`
}

// handleType types a single character. Anything but exactly one rune is a
// no-op.
func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	var p typeReq
	if !decodeBody(w, r, &p) {
		return
	}
	sess := sessionFrom(r)
	var changed bool
	if utf8.RuneCountInString(p.Char) == 1 {
		ch, _ := utf8.DecodeRuneInString(p.Char)
		changed = sess.Type(ch)
	}
	writeMove(w, sess, changed)
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeMove(w, sess, sess.Backspace())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeMove(w, sess, sess.Submit())
}

// handleKey dispatches an on-screen keyboard label.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var p keyReq
	if !decodeBody(w, r, &p) {
		return
	}
	sess := sessionFrom(r)
	writeMove(w, sess, game.Press(sess, p.Key))
}

// keyboardRes is returned by /game/keyboard.
type keyboardRes struct {
	Rows [][]game.Key `json:"rows"`
}

func (s *Server) handleKeyboard(w http.ResponseWriter, r *http.Request) {
	snap := sessionFrom(r).Snapshot()
	writeJSON(w, http.StatusOK, keyboardRes{Rows: game.Keys(snap.Hints)})
}

// -----------------------------------------------------------------------------
// helpers

func writeMove(w http.ResponseWriter, sess *game.Session, changed bool) {
	writeJSON(w, http.StatusOK, moveRes{Changed: changed, State: toState(sess.Snapshot())})
}

// decodeBody reads a JSON body into v, answering 400 on malformed input.
// An empty body decodes to the zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
