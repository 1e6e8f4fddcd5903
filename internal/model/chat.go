package model

import "time"

// Message senders. Messages are appended in user/ai pairs and never mutated.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is one entry in a conversation's append-only log.
type Message struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// Conversation is a titled, timestamped, ordered sequence of messages
// owned by a single user.
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"timestamp"`
	Messages  []Message `json:"messages"`
}

// ChatRequest represents a POST /chat request. A nil ChatID starts a new
// conversation titled with the message.
type ChatRequest struct {
	Message string `json:"message"`
	ChatID  *int64 `json:"chatid"`
}

// ChatResponse carries the AI reply and the conversation it was appended to.
type ChatResponse struct {
	Message string `json:"message"`
	ChatID  int64  `json:"chatid"`
}
