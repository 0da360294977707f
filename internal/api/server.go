// Package api exposes the conversation over HTTP: a small JSON API for the
// demo frontend plus a WebSocket transport that replays the assistant's
// typing delays.
package api

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"blinkbot/internal/session"
	"blinkbot/pkg"
)

// Server wires the session manager to HTTP handlers.
type Server struct {
	manager *session.Manager
	logger  zerolog.Logger
}

func NewServer(manager *session.Manager, logger zerolog.Logger) *Server {
	return &Server{manager: manager, logger: logger}
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/messages", s.handleGetMessages)
		r.Post("/messages", s.handlePostMessage)
		r.Post("/persona", s.handleSetPersona)
		r.Post("/purchase-intent", s.handlePurchaseIntent)
		r.Post("/purchase-confirm", s.handlePurchaseConfirm)
		r.Post("/funding", s.handleFunding)
		r.Get("/profile", s.handleGetProfile)
	})
	r.Get("/ws", s.handleWebSocket)

	return r
}

type messageRequest struct {
	Text     string `json:"text,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
	Voice    bool   `json:"voice,omitempty"`
}

type personaRequest struct {
	Persona string `json:"persona"`
}

type fundingRequest struct {
	Amount   int  `json:"amount"`
	Optional bool `json:"optional,omitempty"`
}

type messagesResponse struct {
	Messages []pkg.Message `json:"messages"`
}

type profileResponse struct {
	Persona string          `json:"persona"`
	Profile session.Profile `json:"profile"`
	Balance int             `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.manager.Session().Messages(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !s.decode(w, r, &req) {
		return
	}

	var in session.Input
	switch {
	case req.Voice:
		in = session.Voice{}
	case req.ImageRef != "":
		in = session.Image{Ref: req.ImageRef}
	case req.Text != "":
		in = session.Text(req.Text)
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty message"})
		return
	}

	msgs, err := s.manager.Session().HandleInput(r.Context(), in)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
}

func (s *Server) handleSetPersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if !s.decode(w, r, &req) {
		return
	}

	var persona session.Persona
	switch req.Persona {
	case string(session.PersonaNew):
		persona = session.PersonaNew
	case string(session.PersonaReturning):
		persona = session.PersonaReturning
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown persona"})
		return
	}

	msgs, err := s.manager.Reset(r.Context(), persona)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
}

func (s *Server) handlePurchaseIntent(w http.ResponseWriter, r *http.Request) {
	var item pkg.Item
	if !s.decode(w, r, &item) {
		return
	}
	if item.Title == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing item"})
		return
	}

	msgs, err := s.manager.Session().RaisePurchaseIntent(r.Context(), item)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
}

func (s *Server) handlePurchaseConfirm(w http.ResponseWriter, r *http.Request) {
	var order pkg.Order
	if !s.decode(w, r, &order) {
		return
	}
	if order.Item.Title == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing order"})
		return
	}

	msgs, err := s.manager.Session().ConfirmPurchase(r.Context(), order)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
}

func (s *Server) handleFunding(w http.ResponseWriter, r *http.Request) {
	var req fundingRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount must be positive"})
		return
	}

	msgs, err := s.manager.Session().CompleteFunding(r.Context(), req.Amount, req.Optional)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess := s.manager.Session()
	s.writeJSON(w, http.StatusOK, profileResponse{
		Persona: string(sess.Persona()),
		Profile: sess.Profile(),
		Balance: sess.Balance(),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
		return false
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
		http.Error(w, `{"error":"encoding failure"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug().Err(err).Msg("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error().Err(err).Msg("request failed")
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
