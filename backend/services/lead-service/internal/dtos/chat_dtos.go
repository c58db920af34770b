package dtos

import "github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"

type ChatRequest struct {
	Message             string               `json:"message" validate:"max=2000"`
	ConversationHistory []models.ChatMessage `json:"conversationHistory" validate:"max=100,dive"`
}

type ChatResponse struct {
	Response string `json:"response"`
	// Fallback is true when the canned reply was used.
	Fallback bool `json:"fallback,omitempty"`
}

type ChatGreetingResponse struct {
	Message models.ChatMessage `json:"message"`
}
