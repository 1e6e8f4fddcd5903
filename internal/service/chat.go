package service

import (
	"context"
	"errors"

	"github.com/flashchat/flashchat-go/internal/gemini"
	"github.com/flashchat/flashchat-go/internal/model"
	"github.com/flashchat/flashchat-go/internal/repository"
)

var (
	ErrMessageRequired = errors.New("message is required")
	ErrChatNotFound    = errors.New("chat not found")
)

// maxTitleLen caps conversation titles to the title column width.
const maxTitleLen = 255

// ChatStore is the persistence interface ChatService depends on,
// implemented by repository.ChatRepository.
type ChatStore interface {
	Create(ctx context.Context, userID int64, title string) (int64, error)
	AppendExchange(ctx context.Context, chatID int64, userText, aiText string) error
	GetByID(ctx context.Context, chatID int64) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Conversation, error)
}

// Completer is the completion capability services depend on, implemented by
// gemini.Client.
type Completer interface {
	CompleteText(ctx context.Context, prompt, systemInstruction string) (string, error)
	CompleteMultimodal(ctx context.Context, prompt string) (string, []byte, error)
	CompleteWithAttachment(ctx context.Context, instruction string, data []byte, mimeType string) (string, error)
}

// ChatService handles conversational exchanges and history.
type ChatService struct {
	chats ChatStore
	ai    Completer
}

// NewChatService creates a new ChatService.
func NewChatService(chats ChatStore, ai Completer) *ChatService {
	return &ChatService{chats: chats, ai: ai}
}

// Send processes one chat exchange for the calling user. With no chat ID a
// new conversation is created, titled with the message. With a chat ID the
// conversation must exist and belong to the caller; a conversation owned by
// someone else is reported as not found. On success the user message and
// the AI reply are appended as an ordered pair.
func (s *ChatService) Send(ctx context.Context, caller model.Identity, req model.ChatRequest) (model.ChatResponse, error) {
	if req.Message == "" {
		return model.ChatResponse{}, ErrMessageRequired
	}

	var chatID int64
	if req.ChatID == nil {
		id, err := s.chats.Create(ctx, caller.ID, titleFrom(req.Message))
		if err != nil {
			return model.ChatResponse{}, err
		}
		chatID = id
	} else {
		chatID = *req.ChatID
		conv, err := s.chats.GetByID(ctx, chatID)
		if err != nil {
			if errors.Is(err, repository.ErrChatNotFound) {
				return model.ChatResponse{}, ErrChatNotFound
			}
			return model.ChatResponse{}, err
		}
		if conv.UserID != caller.ID {
			return model.ChatResponse{}, ErrChatNotFound
		}
	}

	reply, err := s.ai.CompleteText(ctx, req.Message, gemini.ChatInstruction)
	if err != nil {
		return model.ChatResponse{}, err
	}

	if err := s.chats.AppendExchange(ctx, chatID, req.Message, reply); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return model.ChatResponse{}, ErrChatNotFound
		}
		return model.ChatResponse{}, err
	}

	return model.ChatResponse{Message: reply, ChatID: chatID}, nil
}

// History returns all conversations owned by the user, in creation order.
func (s *ChatService) History(ctx context.Context, userID int64) ([]model.Conversation, error) {
	convs, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []model.Conversation{}
	}
	return convs, nil
}

// titleFrom derives a conversation title from its first message.
func titleFrom(message string) string {
	runes := []rune(message)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen])
	}
	return message
}
