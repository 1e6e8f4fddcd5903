package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/flashchat/flashchat-go/internal/gemini"
	"github.com/flashchat/flashchat-go/internal/model"
)

var caller = model.Identity{ID: 1, Name: "A", Email: "a@x.com"}

func newTestChatService(ai *fakeCompleter) (*ChatService, *memChats) {
	chats := newMemChats()
	return NewChatService(chats, ai), chats
}

func TestSendRequiresMessage(t *testing.T) {
	svc, _ := newTestChatService(&fakeCompleter{reply: "ok"})

	_, err := svc.Send(context.Background(), caller, model.ChatRequest{})
	if err != ErrMessageRequired {
		t.Errorf("expected ErrMessageRequired, got %v", err)
	}
}

func TestSendCreatesConversation(t *testing.T) {
	svc, chats := newTestChatService(&fakeCompleter{reply: "hello there"})

	resp, err := svc.Send(context.Background(), caller, model.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	if resp.Message != "hello there" {
		t.Errorf("Message = %q, want AI reply", resp.Message)
	}
	if len(chats.convs) != 1 {
		t.Fatalf("expected exactly 1 conversation, got %d", len(chats.convs))
	}

	conv := chats.convs[resp.ChatID]
	if conv == nil {
		t.Fatal("returned chat id does not match the created conversation")
	}
	if conv.Title != "hi" {
		t.Errorf("Title = %q, want first message", conv.Title)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Sender != model.SenderUser || conv.Messages[0].Content != "hi" {
		t.Errorf("first message = %+v, want user 'hi'", conv.Messages[0])
	}
	if conv.Messages[1].Sender != model.SenderAI || conv.Messages[1].Content != "hello there" {
		t.Errorf("second message = %+v, want ai reply", conv.Messages[1])
	}
}

func TestSendReusesConversation(t *testing.T) {
	svc, chats := newTestChatService(&fakeCompleter{reply: "re"})

	first, err := svc.Send(context.Background(), caller, model.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	second, err := svc.Send(context.Background(), caller, model.ChatRequest{
		Message: "again",
		ChatID:  &first.ChatID,
	})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	if second.ChatID != first.ChatID {
		t.Errorf("ChatID = %d, want %d", second.ChatID, first.ChatID)
	}
	if len(chats.convs) != 1 {
		t.Errorf("expected 1 conversation, got %d", len(chats.convs))
	}
	if got := len(chats.convs[first.ChatID].Messages); got != 4 {
		t.Errorf("message log length = %d, want 4", got)
	}
}

func TestSendAppendsAlternatingPairs(t *testing.T) {
	svc, chats := newTestChatService(&fakeCompleter{reply: "r"})

	const n = 5
	resp, err := svc.Send(context.Background(), caller, model.ChatRequest{Message: "m0"})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	for i := 1; i < n; i++ {
		if _, err := svc.Send(context.Background(), caller, model.ChatRequest{
			Message: fmt.Sprintf("m%d", i),
			ChatID:  &resp.ChatID,
		}); err != nil {
			t.Fatalf("Send() unexpected error: %v", err)
		}
	}

	msgs := chats.convs[resp.ChatID].Messages
	if len(msgs) != 2*n {
		t.Fatalf("message log length = %d, want %d", len(msgs), 2*n)
	}
	for i, m := range msgs {
		want := model.SenderUser
		if i%2 == 1 {
			want = model.SenderAI
		}
		if m.Sender != want {
			t.Errorf("message %d sender = %q, want %q", i, m.Sender, want)
		}
	}
	for i := 0; i < n; i++ {
		if got, want := msgs[2*i].Content, fmt.Sprintf("m%d", i); got != want {
			t.Errorf("user message %d = %q, want %q", i, got, want)
		}
	}
}

func TestSendUnknownChat(t *testing.T) {
	svc, _ := newTestChatService(&fakeCompleter{reply: "r"})

	missing := int64(99)
	_, err := svc.Send(context.Background(), caller, model.ChatRequest{
		Message: "hi",
		ChatID:  &missing,
	})
	if err != ErrChatNotFound {
		t.Errorf("expected ErrChatNotFound, got %v", err)
	}
}

func TestSendForeignChatDenied(t *testing.T) {
	svc, chats := newTestChatService(&fakeCompleter{reply: "r"})

	otherID, err := chats.Create(context.Background(), 2, "theirs")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	_, err = svc.Send(context.Background(), caller, model.ChatRequest{
		Message: "mine now",
		ChatID:  &otherID,
	})
	if err != ErrChatNotFound {
		t.Errorf("expected ErrChatNotFound for foreign conversation, got %v", err)
	}
	if got := len(chats.convs[otherID].Messages); got != 0 {
		t.Errorf("foreign conversation gained %d messages", got)
	}
}

func TestSendProviderFailureAppendsNothing(t *testing.T) {
	providerErr := fmt.Errorf("%w: rate limited", gemini.ErrProvider)
	svc, chats := newTestChatService(&fakeCompleter{err: providerErr})

	_, err := svc.Send(context.Background(), caller, model.ChatRequest{Message: "hi"})
	if !errors.Is(err, gemini.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}

	for _, conv := range chats.convs {
		if len(conv.Messages) != 0 {
			t.Errorf("messages appended despite provider failure: %d", len(conv.Messages))
		}
	}
}

func TestSendPassesChatInstruction(t *testing.T) {
	ai := &fakeCompleter{reply: "r"}
	svc, _ := newTestChatService(ai)

	if _, err := svc.Send(context.Background(), caller, model.ChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	if ai.lastPrompt != "hi" {
		t.Errorf("prompt = %q, want user message", ai.lastPrompt)
	}
	if ai.lastInstruction != gemini.ChatInstruction {
		t.Errorf("system instruction not passed through unmodified")
	}
}

func TestHistoryEmpty(t *testing.T) {
	svc, _ := newTestChatService(&fakeCompleter{})

	convs, err := svc.History(context.Background(), caller.ID)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if convs == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(convs) != 0 {
		t.Errorf("expected 0 conversations, got %d", len(convs))
	}
}

func TestHistoryReturnsOnlyOwnConversations(t *testing.T) {
	svc, chats := newTestChatService(&fakeCompleter{reply: "r"})

	if _, err := svc.Send(context.Background(), caller, model.ChatRequest{Message: "mine"}); err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if _, err := chats.Create(context.Background(), 2, "theirs"); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	convs, err := svc.History(context.Background(), caller.ID)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}
	if convs[0].Title != "mine" {
		t.Errorf("Title = %q, want %q", convs[0].Title, "mine")
	}
}

func TestTitleTruncation(t *testing.T) {
	long := make([]rune, maxTitleLen+50)
	for i := range long {
		long[i] = 'é'
	}

	title := titleFrom(string(long))
	if got := len([]rune(title)); got != maxTitleLen {
		t.Errorf("title length = %d runes, want %d", got, maxTitleLen)
	}
}
