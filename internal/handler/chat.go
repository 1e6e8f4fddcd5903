package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flashchat/flashchat-go/internal/gemini"
	"github.com/flashchat/flashchat-go/internal/middleware"
	"github.com/flashchat/flashchat-go/internal/model"
	"github.com/flashchat/flashchat-go/internal/service"
)

// ChatHandler handles HTTP requests for conversations.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleChat handles POST /chat requests.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Send(r.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrChatNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, gemini.ErrProvider):
			writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleFetchAllChats handles GET /fetchAllChats requests, returning the
// caller's conversations with their full message logs.
func (h *ChatHandler) HandleFetchAllChats(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	convs, err := h.service.History(r.Context(), caller.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"chats":   convs,
	})
}
