package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/BerylCAtieno/document-analyzer-api/internal/extractor"
	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
	"github.com/BerylCAtieno/document-analyzer-api/internal/services"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

const (
	// room for multipart boundaries and part headers on top of the file itself
	multipartOverhead = 1 << 20
	// analysis forms carry text that was already extracted
	maxFormSize = 16 << 20
)

type DocumentHandler struct {
	service     services.DocumentService
	logger      *utils.Logger
	maxFileSize int64
}

func NewDocumentHandler(service services.DocumentService, maxFileSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	tooLarge := utils.NewPayloadTooLargeError(fmt.Sprintf("File size exceeds %dMB limit", h.maxFileSize>>20))

	// Check Content-Length header first to reject oversized requests early
	if r.ContentLength > h.maxFileSize+multipartOverhead {
		h.respondError(w, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, tooLarge)
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"content_type", contentType,
		"size", header.Size)

	// Reject before reading the payload
	if _, err := extractor.DetectFormat(contentType); err != nil {
		h.respondError(w, utils.NewBadRequestError("Unsupported file type"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file", err))
		return
	}

	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, tooLarge)
		return
	}

	resp, err := h.service.UploadDocument(r.Context(), &models.UploadedDocument{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, func(r *http.Request) models.AnalysisRequest {
		return models.AnalysisRequest{Kind: models.KindSummarize, DocumentText: r.FormValue("text")}
	})
}

func (h *DocumentHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, func(r *http.Request) models.AnalysisRequest {
		return models.AnalysisRequest{
			Kind:         models.KindQuestionAnswer,
			DocumentText: r.FormValue("text"),
			Question:     r.FormValue("question"),
		}
	})
}

func (h *DocumentHandler) KeyElements(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, func(r *http.Request) models.AnalysisRequest {
		return models.AnalysisRequest{Kind: models.KindKeyElements, DocumentText: r.FormValue("text")}
	})
}

func (h *DocumentHandler) Entities(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, func(r *http.Request) models.AnalysisRequest {
		return models.AnalysisRequest{Kind: models.KindEntities, DocumentText: r.FormValue("text")}
	})
}

func (h *DocumentHandler) Compare(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, func(r *http.Request) models.AnalysisRequest {
		return models.AnalysisRequest{
			Kind:               models.KindCompare,
			DocumentText:       r.FormValue("text1"),
			SecondDocumentText: r.FormValue("text2"),
		}
	})
}

// analyze parses a urlencoded or multipart form, runs the analysis and
// writes its payload. A ParseError result is still a 200.
func (h *DocumentHandler) analyze(w http.ResponseWriter, r *http.Request, build func(*http.Request) models.AnalysisRequest) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

	var err error
	if isMultipart(r) {
		err = r.ParseMultipartForm(maxFormSize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, utils.NewPayloadTooLargeError("Form data too large"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	result, err := h.service.Analyze(r.Context(), build(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result.Payload())
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	}

	h.logger.Error("Request error", "status", status, "error", message, "cause", errors.Unwrap(err))

	h.respondJSON(w, status, map[string]string{"error": message})
}
