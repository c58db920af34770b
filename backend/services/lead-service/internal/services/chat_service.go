package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// ChatHistoryLimit is how many earlier turns are forwarded with a message.
const ChatHistoryLimit = 5

// ChatFallbackReply is answered whenever the backend cannot be used.
const ChatFallbackReply = "I apologize, but I'm having trouble connecting right now. Please call us at " +
	utils.OrganizationPhone + " for immediate assistance."

// ChatDefaultReply is used when the backend answers without any text.
const ChatDefaultReply = "Thank you for your message. How else can I help you?"

// ChatGreeting opens every conversation.
const ChatGreeting = "Hi this is Abdias from American Tree Experts\nHow may I assist you today."

var ErrEmptyChatMessage = errors.New("empty_chat_message")

// ChatReply is the assistant's answer. Fallback is set when the backend
// failed and the canned reply was used instead.
type ChatReply struct {
	Message  models.ChatMessage
	Fallback bool
}

type ChatService interface {
	Reply(ctx context.Context, message string, history []models.ChatMessage) (ChatReply, error)
}

type chatService struct {
	client backend.Client
}

func NewChatService(client backend.Client) ChatService {
	return &chatService{client: client}
}

func (s *chatService) Reply(ctx context.Context, message string, history []models.ChatMessage) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, ErrEmptyChatMessage
	}

	text, err := s.client.Chat(ctx, message, RecentHistory(history, ChatHistoryLimit))
	if err != nil {
		utils.Logger.WithError(err).Warn("Chat backend failed; using fallback reply")
		return ChatReply{
			Message:  models.ChatMessage{Role: models.ChatRoleAssistant, Content: ChatFallbackReply},
			Fallback: true,
		}, nil
	}
	if text == "" {
		text = ChatDefaultReply
	}
	return ChatReply{Message: models.ChatMessage{Role: models.ChatRoleAssistant, Content: text}}, nil
}

// RecentHistory returns the last n entries of history.
func RecentHistory(history []models.ChatMessage, n int) []models.ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
