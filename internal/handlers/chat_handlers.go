package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"petrocore-backend/internal/chatbot"
	"petrocore-backend/internal/models"
	"petrocore-backend/internal/services"
	"petrocore-backend/pkg/httputil"
)

// ChatHandler exposes the public chat endpoint.
type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatSvc *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatSvc,
	}
}

// HandleMessage handles POST /v1/chat/message: one visitor message in, one
// assistant reply out. Validation failures return 400 with the offending
// field; pipeline failures return 500 with a localized generic reply so the
// widget always has something to show.
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.chatService.HandleMessage(r.Context(), req)
	if err != nil {
		var vErr *chatbot.ValidationError
		if errors.As(err, &vErr) {
			httputil.RespondValidationError(w, vErr.Field, vErr.Reason)
			return
		}
		log.Printf("ERROR [ChatHandler] Message processing failed for session %s: %v", req.SessionID, err)
		lang := h.chatService.Language().Detect(req.Message, req.Language)
		httputil.RespondError(w, http.StatusInternalServerError, h.chatService.Language().ServiceUnavailable(lang))
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
