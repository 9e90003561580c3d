// Package server exposes lesson sessions over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/logging"
)

// maxBodyBytes bounds request bodies. Custom text is the largest field.
const maxBodyBytes = 64 << 10

// Server serves lesson sessions held in memory.
type Server struct {
	orch     *lesson.Orchestrator
	sessions *SessionStore
}

// New creates a Server driving lessons through orch.
func New(orch *lesson.Orchestrator) *Server {
	return &Server{orch: orch, sessions: NewSessionStore()}
}

// Sessions returns the server's session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// EvictIdle drops sessions idle for longer than idle, checking every
// interval, until ctx is done.
func (s *Server) EvictIdle(ctx context.Context, idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(idle); n > 0 {
				logging.Logger().WithFields(logrus.Fields{
					"evicted":   n,
					"remaining": s.sessions.Len(),
				}).Info("evicted idle sessions")
			}
		}
	}
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.deleteSession)
				r.Post("/lesson", s.startLesson)
				r.Put("/answers/{index}", s.setAnswer)
				r.Post("/evaluation", s.submit)
				r.Post("/reset", s.reset)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCatalogResponse(s.orch.Catalog()))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	e := s.sessions.create()
	defer e.mu.Unlock()

	logging.WithContext(logging.WithSessionID(r.Context(), e.sess.ID)).Info("session created")
	writeJSON(w, http.StatusCreated, toSessionResponse(e.sess))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	e, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	writeJSON(w, http.StatusOK, toSessionResponse(e.sess))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	e, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	s.sessions.remove(e)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) startLesson(w http.ResponseWriter, r *http.Request) {
	var body lessonRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cat := s.orch.Catalog()
	lang, err := cat.ParseLanguage(body.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	diff, err := catalog.ParseDifficulty(body.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	req := lesson.Request{Language: lang, Difficulty: diff, CustomText: body.CustomText}
	if err := s.orch.StartLesson(r.Context(), e.sess, req, nil); err != nil {
		s.writeLessonError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(e.sess))
}

func (s *Server) setAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "answer index must be a number")
		return
	}

	var body answerRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	// Questions are numbered from 1 on the wire.
	if err := s.orch.SetAnswer(r.Context(), e.sess, index-1, body.Text); err != nil {
		s.writeLessonError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(e.sess))
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	e, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	if err := s.orch.Submit(r.Context(), e.sess); err != nil {
		s.writeLessonError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(e.sess))
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	e, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	old := e.sess.ID
	s.orch.Reset(r.Context(), e.sess)
	s.sessions.rekey(old, e)
	writeJSON(w, http.StatusOK, toSessionResponse(e.sess))
}

// acquire looks up and locks the session named in the URL. It writes a
// 404 when the session is unknown.
func (s *Server) acquire(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	id := chi.URLParam(r, "id")
	e, ok := s.sessions.acquire(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return e, true
}

func (s *Server) writeLessonError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownPair), errors.Is(err, lesson.ErrQuestionIndex):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lesson.ErrNoLesson), errors.Is(err, lesson.ErrLessonPending):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logging.WithContext(r.Context()).WithError(err).Error("lesson request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger logs one line per request through the shared logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logging.WithContext(r.Context()).WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"request_id": middleware.GetReqID(r.Context()),
				"remote":     r.RemoteAddr,
			}).Info("http request")
		}()
		next.ServeHTTP(ww, r)
	})
}
