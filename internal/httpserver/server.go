// internal/httpserver/server.go
//
// HTTP server wiring for the Wordish backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: mounted under /game (see routes_game.go).
//   - Session tokens: HS256 JWT carrying the session ID, sent as bearer or cookie.
//   - Idle session sweeping.
//
// Notes:
//   - Every client owns one independent game session; nothing is shared between them.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordish/internal/game"
	"github.com/robalobadob/wordish/internal/store"
)

const sessionCookieName = "wordish_session"

// Options configures a Server.
type Options struct {
	Game          game.Config
	FetchTimeout  time.Duration
	JWTSecret     string
	TokenTTL      time.Duration
	ClientOrigin  string
	SecureCookies bool
}

// Server bundles router, session registry and word source.
type Server struct {
	r        *chi.Mux
	store    store.Store
	provider game.WordProvider
	opts     Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, provider game.WordProvider, opts Options) *Server {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 14 * 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, provider: provider, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one log line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordish","endpoints":["/health","POST /game/new","GET /game","POST /game/key"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountGame(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// SweepIdle evicts sessions idle for longer than maxIdle, checking every
// interval, until ctx is cancelled.
func (s *Server) SweepIdle(ctx context.Context, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ids := s.store.EvictIdle(ctx, maxIdle); len(ids) > 0 {
				log.Info().Int("count", len(ids)).Msg("evicted idle sessions")
			}
		}
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request with status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ---------------------------- session tokens -------------------------------

var errInvalidToken = errors.New("invalid token")

// signToken creates an HS256 JWT carrying the session ID.
func (s *Server) signToken(sessionID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseToken verifies a token and returns its session ID.
func (s *Server) parseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errInvalidToken
	}
	return sid, nil
}

// setSessionCookie writes the session token cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session token cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// ctxSessionKey is the context key type for the caller's *game.Session.
type ctxSessionKey struct{}

// requireSession resolves the caller's session and injects it into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "missing_session")
			return
		}
		sid, err := s.parseToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_session")
			return
		}
		sess, err := s.store.Get(r.Context(), sid)
		if err != nil {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session injected by requireSession.
func sessionFrom(r *http.Request) *game.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*game.Session)
	return sess
}
