package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/flashchat/flashchat-go/internal/gemini"
	"github.com/flashchat/flashchat-go/internal/model"
	"github.com/flashchat/flashchat-go/internal/service"
)

// maxUploadSize bounds multipart uploads on /fileHandler.
const maxUploadSize = 20 << 20 // 20MB

// AssistHandler handles HTTP requests for the stateless AI features.
type AssistHandler struct {
	service *service.AssistService
}

// NewAssistHandler creates a new AssistHandler.
func NewAssistHandler(svc *service.AssistService) *AssistHandler {
	return &AssistHandler{service: svc}
}

// HandleCodeReview handles POST /codeReview requests.
func (h *AssistHandler) HandleCodeReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CodeReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	review, err := h.service.ReviewCode(r.Context(), req.Code)
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": review})
}

// HandleSummarizeText handles POST /summarizeText requests.
func (h *AssistHandler) HandleSummarizeText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	result, err := h.service.Summarize(r.Context(), req.Text)
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SummarizeResponse{Success: true, Result: result})
}

// HandleCodeGenerator handles POST /codeGenerator requests.
func (h *AssistHandler) HandleCodeGenerator(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	generated, err := h.service.GenerateCode(r.Context(), req.Prompt)
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CodeGenResponse{Success: true, Data: generated})
}

// HandleGenerateImage handles POST /generateImage requests.
func (h *AssistHandler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleFileUpload handles POST /fileHandler requests: a multipart upload
// with the document under the "file" field, forwarded to the provider for
// summarization.
func (h *AssistHandler) HandleFileUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("no file uploaded"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("could not read uploaded file"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	summary, err := h.service.SummarizeDocument(r.Context(), data, mimeType)
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// writeAssistError maps assist service errors to HTTP responses. Provider
// error messages are passed through to the caller.
func (h *AssistHandler) writeAssistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCodeRequired),
		errors.Is(err, service.ErrTextRequired),
		errors.Is(err, service.ErrPromptRequired),
		errors.Is(err, service.ErrFileRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNoImage):
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
	case errors.Is(err, gemini.ErrProvider):
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
