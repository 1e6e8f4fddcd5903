package service

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/flashchat/flashchat-go/internal/gemini"
	"github.com/flashchat/flashchat-go/internal/model"
)

var (
	ErrCodeRequired   = errors.New("code is required")
	ErrTextRequired   = errors.New("text is required")
	ErrPromptRequired = errors.New("prompt is required")
	ErrFileRequired   = errors.New("no file uploaded")
	ErrNoImage        = errors.New("image not found in response")
)

// AssistService orchestrates the stateless AI-assisted features: code
// review, summarization, code generation, image generation, and document
// summarization. Nothing is persisted.
type AssistService struct {
	ai Completer
}

// NewAssistService creates a new AssistService.
func NewAssistService(ai Completer) *AssistService {
	return &AssistService{ai: ai}
}

// ReviewCode asks the provider for a review of the submitted code.
func (s *AssistService) ReviewCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrCodeRequired
	}
	return s.ai.CompleteText(ctx, code, gemini.CodeReviewInstruction)
}

// Summarize condenses the submitted text.
func (s *AssistService) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrTextRequired
	}
	return s.ai.CompleteText(ctx, text, gemini.SummarizeInstruction)
}

// GenerateCode solves a programming prompt and returns the structured
// explanation/code/output sections.
func (s *AssistService) GenerateCode(ctx context.Context, prompt string) (model.GeneratedCode, error) {
	if prompt == "" {
		return model.GeneratedCode{}, ErrPromptRequired
	}

	text, err := s.ai.CompleteText(ctx, gemini.CodegenPrompt(prompt), "")
	if err != nil {
		return model.GeneratedCode{}, err
	}

	return gemini.ParseGeneratedCode(text), nil
}

// GenerateImage produces an image for the prompt, returned as a PNG data
// URI alongside the model's textual description.
func (s *AssistService) GenerateImage(ctx context.Context, prompt string) (model.ImageResponse, error) {
	if prompt == "" {
		return model.ImageResponse{}, ErrPromptRequired
	}

	description, image, err := s.ai.CompleteMultimodal(ctx, prompt)
	if err != nil {
		return model.ImageResponse{}, err
	}
	if len(image) == 0 {
		return model.ImageResponse{}, ErrNoImage
	}

	return model.ImageResponse{
		Description: description,
		ImageURL:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
	}, nil
}

// SummarizeDocument summarizes an uploaded file by forwarding its bytes to
// the provider with a fixed instruction.
func (s *AssistService) SummarizeDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", ErrFileRequired
	}
	return s.ai.CompleteWithAttachment(ctx, gemini.DocumentInstruction, data, mimeType)
}
