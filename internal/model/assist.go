package model

// CodeReviewRequest represents a POST /codeReview request.
type CodeReviewRequest struct {
	Code string `json:"code"`
}

// SummarizeRequest represents a POST /summarizeText request.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeResponse carries a summarization result.
type SummarizeResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

// PromptRequest represents requests carrying a single prompt
// (/codeGenerator, /generateImage).
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// GeneratedCode is the structured form of a code-generation response.
type GeneratedCode struct {
	Explanation string `json:"explanation"`
	Code        string `json:"code"`
	Output      string `json:"output"`
}

// CodeGenResponse wraps a code-generation result.
type CodeGenResponse struct {
	Success bool          `json:"success"`
	Data    GeneratedCode `json:"data"`
}

// ImageResponse carries an image-generation result. ImageURL is a
// base64 data URI so the client can render it directly.
type ImageResponse struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}
