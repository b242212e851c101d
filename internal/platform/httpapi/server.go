// Package httpapi serves 2048 games over HTTP with a JSON API.
//
// Routes:
//   - POST   /games             start a game, optional {"seed":n,"mode":"endless"}
//   - GET    /games/{id}        current state
//   - POST   /games/{id}/moves  apply {"direction":"left"}
//   - POST   /games/{id}/reset  start over in the same session
//   - DELETE /games/{id}        drop the session
//   - GET    /runs/{id}         a recorded game, by the runId of a finished session
//   - GET    /health
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ScoreRecorder persists finished games and looks them up again.
// *storage.Store implements it.
type ScoreRecorder interface {
	SaveRun(r storage.Run) (string, error)
	ScoreByRun(runID string) (*storage.ScoreEntry, error)
}

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8048").
	Address string

	// Rules are applied to every game created by the server.
	Rules core.Rules

	// Scores records finished games. Nil disables recording.
	Scores ScoreRecorder

	// Logger receives request and server logs. Nil creates one on stderr.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8048",
		Rules:   core.DefaultRules(),
	}
}

// Server bundles the router, the session store and the score recorder.
type Server struct {
	r        *chi.Mux
	sessions *SessionStore
	scores   ScoreRecorder
	logger   *log.Logger
	addr     string
	http     *http.Server
}

// New constructs a Server, installs middleware and registers routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-http",
		})
	}

	s := &Server{
		r:        chi.NewRouter(),
		sessions: NewSessionStore(cfg.Rules),
		scores:   cfg.Scores,
		logger:   logger,
		addr:     cfg.Address,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/moves", s.handleMove)
			r.Post("/reset", s.handleReset)
		})
	})

	s.r.Get("/runs/{id}", s.handleRun)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the router, used by tests.
func (s *Server) Router() chi.Router { return s.r }

// Sessions exposes the session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// ----------------------------- middleware ----------------------------------

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ payloads -----------------------------------

type createReq struct {
	Seed int64  `json:"seed"`
	Mode string `json:"mode"`
}

type moveReq struct {
	Direction string `json:"direction"`
}

// gameRes is the state of one session.
type gameRes struct {
	ID    string `json:"id"`
	Mode  string `json:"mode"`
	RunID string `json:"runId,omitempty"`
	t2048.State
}

// moveRes is the outcome of one move.
type moveRes struct {
	ID        string `json:"id"`
	Direction string `json:"direction"`
	RunID     string `json:"runId,omitempty"`
	t2048.MoveResult
}

// runRes is a recorded game.
type runRes struct {
	RunID     string    `json:"runId"`
	GameID    string    `json:"gameId"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"maxTile"`
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorRes struct {
	Error string `json:"error"`
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	// The body is optional.
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	mode, err := t2048.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mode")
		return
	}

	sess := s.sessions.Create(mode, req.Seed)
	s.logger.Debug("game created", "id", sess.ID, "mode", mode)

	writeJSON(w, http.StatusCreated, gameRes{ID: sess.ID, Mode: string(mode), State: sess.State()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gameRes{ID: sess.ID, Mode: string(sess.Mode), RunID: sess.RunID(), State: sess.State()})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	dir, err := t2048.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_direction")
		return
	}

	res, err := sess.Apply(dir)
	if err != nil {
		if errors.Is(err, t2048.ErrInvalidDirection) {
			writeError(w, http.StatusBadRequest, "invalid_direction")
			return
		}
		writeError(w, http.StatusInternalServerError, "move_failed")
		return
	}

	if res.GameOver {
		s.recordGameOver(sess, res.State)
	}

	writeJSON(w, http.StatusOK, moveRes{
		ID:         sess.ID,
		Direction:  dir.String(),
		RunID:      sess.RunID(),
		MoveResult: res,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gameRes{ID: sess.ID, Mode: string(sess.Mode), State: sess.Reset()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	entry, err := s.scores.ScoreByRun(chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Warn("could not load run", "run", chi.URLParam(r, "id"), "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	writeJSON(w, http.StatusOK, runRes{
		RunID:     entry.RunID,
		GameID:    entry.GameID,
		Score:     entry.Score,
		MaxTile:   entry.MaxTile,
		Moves:     entry.Moves,
		CreatedAt: entry.CreatedAt,
	})
}

// session resolves the {id} URL parameter, writing a 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

// recordGameOver saves the finished game once. Failures are logged, the
// move itself already succeeded.
func (s *Server) recordGameOver(sess *Session, st t2048.State) {
	if s.scores == nil || !sess.markRecorded() {
		return
	}

	runID, err := s.scores.SaveRun(storage.Run{
		GameID:  sess.Mode.GameID(),
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
	})
	if err != nil {
		s.logger.Warn("could not save score", "id", sess.ID, "error", err)
		return
	}
	sess.setRunID(runID)
	s.logger.Info("game over", "id", sess.ID, "score", st.Score, "run", runID)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorRes{Error: code})
}
