package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yclai/readquest/internal/quiz"
	"github.com/yclai/readquest/internal/session"
)

type createSessionRequest struct {
	Class string `json:"class"`
	Seat  string `json:"seat"`
	Name  string `json:"name"`
}

type selectLevelRequest struct {
	Level string `json:"level"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess := session.New()
	if err := sess.SetIdentity(req.Class, req.Seat, req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.register(sess)
	s.log.Info("session created", zap.String("session_id", sess.ID))

	writeJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(chi.URLParam(r, "sessionID"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	writeJSON(w, http.StatusOK, viewOf(entry.s))
}

func (s *Server) handleSelectLevel(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(chi.URLParam(r, "sessionID"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req selectLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	level, err := quiz.ParseLevel(req.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.s.SelectLevel(level); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(entry.s))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(chi.URLParam(r, "sessionID"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.s.GenerateQuiz(r.Context(), s.gen, s.story); err != nil {
		if errors.Is(err, session.ErrWrongPhase) {
			writeSessionError(w, err)
			return
		}
		s.log.Error("quiz generation failed",
			zap.String("session_id", entry.s.ID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "quiz generation failed")
		return
	}
	s.log.Info("quiz generated",
		zap.String("session_id", entry.s.ID),
		zap.String("level", string(entry.s.Level)),
		zap.Int("questions", len(entry.s.Questions)))

	writeJSON(w, http.StatusOK, viewOf(entry.s))
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(chi.URLParam(r, "sessionID"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.s.SubmitAnswer(req.Answer); err != nil {
		// A session stuck in grading means an earlier recording attempt
		// failed; fall through and retry the write instead of rejecting.
		if !(errors.Is(err, session.ErrWrongPhase) && entry.s.Phase == session.PhaseGrading) {
			writeSessionError(w, err)
			return
		}
	}

	// The last answer triggers grading and recording in-line.
	if entry.s.Phase == session.PhaseGrading {
		if _, err := entry.s.RunGrading(r.Context(), s.engine, s.story, s.sink, s.events); err != nil {
			s.log.Error("grading failed",
				zap.String("session_id", entry.s.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to record attempt")
			return
		}
		s.log.Info("attempt recorded",
			zap.String("session_id", entry.s.ID),
			zap.Int("total", entry.s.Attempt.Total),
			zap.Bool("passed", entry.s.Attempt.Passed()))
	}

	writeJSON(w, http.StatusOK, viewOf(entry.s))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(chi.URLParam(r, "sessionID"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.s.Reset()
	writeJSON(w, http.StatusOK, viewOf(entry.s))
}

// reportExporter is implemented by sinks that can stream their rows.
type reportExporter interface {
	Export(w io.Writer) error
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.reportSecret == "" {
		writeError(w, http.StatusNotFound, "report export disabled")
		return
	}
	secret := r.URL.Query().Get("secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.reportSecret)) != 1 {
		writeError(w, http.StatusForbidden, "invalid secret")
		return
	}

	exporter, ok := s.sink.(reportExporter)
	if !ok {
		writeError(w, http.StatusNotFound, "report export unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="read_test_record.csv"`)
	if err := exporter.Export(w); err != nil {
		s.log.Error("report export failed", zap.Error(err))
	}
}

// writeSessionError maps session transition errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrWrongPhase):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrIncompleteIdentity),
		errors.Is(err, session.ErrBlankAnswer),
		errors.Is(err, session.ErrEmptyQuiz):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
