// Package gemini wraps the external generative-AI provider behind a small
// completion interface. All provider failures surface as ErrProvider; the
// caller's only obligation is to report them, not to retry.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// ErrProvider is returned when the provider rejects or fails a completion
// call (rate limit, invalid key, malformed input, service outage).
var ErrProvider = errors.New("completion provider error")

// Config configures the Gemini-backed completion client.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// Client is a stateless completion client. It is constructed once at
// startup and injected into services; it holds no per-request state and is
// safe for concurrent use.
type Client struct {
	genai      *genai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
}

// NewClient creates a completion client for the Gemini API.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is empty", ErrProvider)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	return &Client{
		genai:      gc,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		timeout:    cfg.Timeout,
	}, nil
}

// CompleteText generates a text completion for the prompt. The system
// instruction, when non-empty, is passed through to the provider unmodified.
func (c *Client) CompleteText(ctx context.Context, prompt, systemInstruction string) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var config *genai.GenerateContentConfig
	if systemInstruction != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
		}
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrProvider)
	}
	return text, nil
}

// CompleteMultimodal generates a text-plus-image completion for the prompt
// using the image model. The returned bytes are the first inline image in
// the response; they are nil when the model produced no image.
func (c *Client) CompleteMultimodal(ctx context.Context, prompt string) (string, []byte, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), config)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	var description string
	var image []byte
	for _, part := range candidateParts(resp) {
		if part.Text != "" {
			description = part.Text
		} else if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			image = part.InlineData.Data
		}
	}

	return description, image, nil
}

// CompleteWithAttachment generates a text completion grounded on an inline
// file (for example a PDF) sent alongside the instruction text.
func (c *Client) CompleteWithAttachment(ctx context.Context, instruction string, data []byte, mimeType string) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{Text: instruction},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}}

	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrProvider)
	}
	return text, nil
}

// callContext bounds a provider call with the configured timeout. The
// provider itself offers no deadline, so an unresponsive call would
// otherwise stall its request forever.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// candidateParts returns the content parts of the first candidate, if any.
func candidateParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	var text string
	for _, part := range candidateParts(resp) {
		text += part.Text
	}
	return text
}
