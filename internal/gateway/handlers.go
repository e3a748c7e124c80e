package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/intent"
	"github.com/mobais/mobais/internal/provider"
	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/security"
)

// Responder is the part of *assistant.Assistant the gateway serves.
type Responder interface {
	Character() assistant.Character
	Classify(ctx context.Context, text string) intent.MatchResult
	RespondAs(ctx context.Context, utterance, character string) (assistant.Turn, error)
	Reminders(ctx context.Context) ([]reminder.Reminder, error)
	Ping(ctx context.Context) error
	ProbeFallback(ctx context.Context) error
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status    string `json:"status"` // "ok" or "degraded"
	Character string `json:"character,omitempty"`
	Store     string `json:"store,omitempty"`
	Fallback  string `json:"fallback,omitempty"`
	Error     string `json:"error,omitempty"`
}

// UtteranceRequest is the body of POST /api/classify, POST /api/turns and
// of every WebSocket message.
type UtteranceRequest struct {
	Text      string `json:"text"`
	Character string `json:"character,omitempty"`
}

// RemindersResponse is the JSON response for GET /api/reminders.
type RemindersResponse struct {
	Reminders []reminder.Reminder `json:"reminders"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth reports 503 when no assistant is bound or its reminder
// store is unreachable. With ?probe=fallback it also checks the language
// model; a missing one is reported as disabled, not degraded.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}
		status := http.StatusOK
		degrade := func(msg string) {
			resp.Status = "degraded"
			resp.Error = msg
			status = http.StatusServiceUnavailable
		}

		if g.responder == nil {
			degrade("assistant not available")
			writeJSON(w, status, resp)
			return
		}

		resp.Character = g.responder.Character().Name
		resp.Store = "ok"
		if err := g.responder.Ping(r.Context()); err != nil {
			g.logger.Warn("health: reminder store unreachable", "error", err)
			resp.Store = "unavailable"
			degrade("reminder store unavailable")
		}

		if r.URL.Query().Get("probe") == "fallback" {
			err := g.responder.ProbeFallback(r.Context())
			switch {
			case errors.Is(err, provider.ErrNoProvider):
				resp.Fallback = "disabled"
			case err != nil:
				g.logger.Warn("health: fallback probe failed", "error", err)
				resp.Fallback = "unavailable"
				if resp.Error == "" {
					degrade("language model unavailable")
				}
			default:
				resp.Fallback = "ok"
			}
		}

		writeJSON(w, status, resp)
	}
}

func (g *Gateway) handleClassify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := g.decodeUtterance(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, g.responder.Classify(r.Context(), req.Text))
	}
}

// handleTurn answers one utterance. A reminder that could not be saved is
// reported as 503 with the apology turn in the body.
func (g *Gateway) handleTurn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := g.decodeUtterance(w, r)
		if !ok {
			return
		}
		turn, err := g.responder.RespondAs(r.Context(), req.Text, req.Character)
		writeJSON(w, turnStatus(err), turn)
	}
}

func (g *Gateway) handleListReminders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := g.responder.Reminders(r.Context())
		if err != nil {
			g.logger.Error("listing reminders failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "reminder store unavailable"})
			return
		}
		if items == nil {
			items = []reminder.Reminder{}
		}
		writeJSON(w, http.StatusOK, RemindersResponse{Reminders: items})
	}
}

// decodeUtterance reads and validates an UtteranceRequest, writing the
// error response itself when it returns false.
func (g *Gateway) decodeUtterance(w http.ResponseWriter, r *http.Request) (UtteranceRequest, bool) {
	var req UtteranceRequest
	data, err := security.ReadBody(r.Body, g.config.MaxBodyBytes)
	if err != nil {
		writeJSON(w, validationStatus(err), errorResponse{Error: err.Error()})
		return req, false
	}
	if err := g.parseUtterance(data, &req); err != nil {
		writeJSON(w, validationStatus(err), errorResponse{Error: err.Error()})
		return req, false
	}
	return req, true
}

func (g *Gateway) parseUtterance(data []byte, req *UtteranceRequest) error {
	if err := json.Unmarshal(data, req); err != nil {
		return errors.Join(security.ErrInvalidJSON, err)
	}
	return security.ValidateUtterance(req.Text, g.config.MaxUtterance)
}

func validationStatus(err error) int {
	switch {
	case errors.Is(err, security.ErrBodyTooLarge), errors.Is(err, security.ErrUtteranceTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func turnStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, command.ErrStoreWrite):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
