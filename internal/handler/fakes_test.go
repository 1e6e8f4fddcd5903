package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flashchat/flashchat-go/internal/middleware"
	"github.com/flashchat/flashchat-go/internal/model"
	"github.com/flashchat/flashchat-go/internal/repository"
	"github.com/flashchat/flashchat-go/internal/service"
)

const testSecret = "test-secret"

// memUsers is an in-memory service.UserStore for handler tests.
type memUsers struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int64]*model.User)}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// memChats is an in-memory service.ChatStore for handler tests.
type memChats struct {
	convs  map[int64]*model.Conversation
	nextID int64
}

func newMemChats() *memChats {
	return &memChats{convs: make(map[int64]*model.Conversation)}
}

func (m *memChats) Create(_ context.Context, userID int64, title string) (int64, error) {
	m.nextID++
	m.convs[m.nextID] = &model.Conversation{
		ID:        m.nextID,
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now(),
	}
	return m.nextID, nil
}

func (m *memChats) AppendExchange(_ context.Context, chatID int64, userText, aiText string) error {
	conv, ok := m.convs[chatID]
	if !ok {
		return repository.ErrChatNotFound
	}
	conv.Messages = append(conv.Messages,
		model.Message{Sender: model.SenderUser, Content: userText},
		model.Message{Sender: model.SenderAI, Content: aiText},
	)
	return nil
}

func (m *memChats) GetByID(_ context.Context, chatID int64) (*model.Conversation, error) {
	conv, ok := m.convs[chatID]
	if !ok {
		return nil, repository.ErrChatNotFound
	}
	cp := *conv
	return &cp, nil
}

func (m *memChats) ListByUser(_ context.Context, userID int64) ([]model.Conversation, error) {
	var out []model.Conversation
	for id := int64(1); id <= m.nextID; id++ {
		if conv, ok := m.convs[id]; ok && conv.UserID == userID {
			out = append(out, *conv)
		}
	}
	return out, nil
}

// fakeCompleter is a scriptable service.Completer for handler tests.
type fakeCompleter struct {
	reply       string
	description string
	image       []byte
	err         error
}

func (f *fakeCompleter) CompleteText(_ context.Context, prompt, systemInstruction string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) CompleteMultimodal(_ context.Context, prompt string) (string, []byte, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.description, f.image, nil
}

func (f *fakeCompleter) CompleteWithAttachment(_ context.Context, instruction string, data []byte, mimeType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// newTestRouter wires handlers the same way cmd/api does, backed by
// in-memory stores and a scripted completer.
func newTestRouter(ai *fakeCompleter) *chi.Mux {
	users := newMemUsers()
	chats := newMemChats()

	authService := service.NewAuthService(users, testSecret, 72*time.Hour)
	authHandler := NewAuthHandler(authService, 72*time.Hour)

	chatService := service.NewChatService(chats, ai)
	chatHandler := NewChatHandler(chatService)

	assistService := service.NewAssistService(ai)
	assistHandler := NewAssistHandler(assistService)

	r := chi.NewRouter()
	r.Post("/signup", authHandler.HandleSignup)
	r.Post("/login", authHandler.HandleLogin)
	r.Get("/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(testSecret))
		r.Get("/checkAuth", authHandler.HandleCheckAuth)
		r.Get("/fetchAllChats", chatHandler.HandleFetchAllChats)
		r.Post("/chat", chatHandler.HandleChat)
	})

	r.Post("/codeReview", assistHandler.HandleCodeReview)
	r.Post("/summarizeText", assistHandler.HandleSummarizeText)
	r.Post("/fileHandler", assistHandler.HandleFileUpload)
	r.Post("/codeGenerator", assistHandler.HandleCodeGenerator)
	r.Post("/generateImage", assistHandler.HandleGenerateImage)

	return r
}
