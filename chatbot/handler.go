// Package chatbot is a development backend for the chat widget. It serves
// POST /chat, answering each message with an echo or an OpenAI-compatible
// model.
package chatbot

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/samanthauoviawe/chatbot-web-interface/chatapi"
	"go.uber.org/zap"
)

// ErrorResponse represents an HTTP error
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// Handler answers chat requests
type Handler struct {
	model  Model
	logger *zap.Logger
}

// NewHandler creates a new chat handler
func NewHandler(model Model, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{model: model, logger: logger}
}

// ServeHTTP decodes {"text": ...} and replies with {"response": ...}
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req chatapi.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Failed to read message")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		h.sendError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply, err := h.model.Reply(r.Context(), req.Text)
	if err != nil {
		h.logger.Error("AI request failed", zap.Error(err))
		h.sendError(w, http.StatusBadGateway, "AI request failed")
		return
	}

	h.send(w, http.StatusOK, chatapi.Response{Response: reply})
}

func (h *Handler) sendError(w http.ResponseWriter, code int, msg string) {
	h.send(w, code, ErrorResponse{Code: code, Error: msg})
}

func (h *Handler) send(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

// NewRouter returns the backend's HTTP handler. Browsers on allowedOrigins
// may call it directly.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Path("/chat").Methods("POST").Handler(h)
	r.Path("/healthz").Methods("GET").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.send(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	return c.Handler(r)
}
