package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/dtos"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/services"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

var validate = validator.New()

type ChatController struct {
	svc services.ChatService
}

func NewChatController(s services.ChatService) *ChatController {
	return &ChatController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /api/v1/chat/greeting
// -----------------------------------------------------------------------------
func (c *ChatController) GreetingHandler(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.ChatGreetingResponse{
		Message: models.ChatMessage{Role: models.ChatRoleAssistant, Content: services.ChatGreeting},
	})
}

// -----------------------------------------------------------------------------
// POST /api/v1/chat
// -----------------------------------------------------------------------------
func (c *ChatController) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Message or history too long", nil)
		return
	}

	reply, err := c.svc.Reply(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, services.ErrEmptyChatMessage) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Message is required", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ChatResponse{
		Response: reply.Message.Content,
		Fallback: reply.Fallback,
	})
}
