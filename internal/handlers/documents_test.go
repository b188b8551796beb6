package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

// fakeService records the upload it receives and returns canned answers.
type fakeService struct {
	uploaded *models.UploadedDocument
	analyzed *models.AnalysisRequest
	result   *models.AnalysisResult
	err      error
}

func (f *fakeService) UploadDocument(_ context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error) {
	f.uploaded = doc
	if f.err != nil {
		return nil, f.err
	}
	return &models.UploadResponse{Filename: doc.Filename, Text: string(doc.Data)}, nil
}

func (f *fakeService) Analyze(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	f.analyzed = &req
	return f.result, f.err
}

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestUploadDocument_UnsupportedTypeNeverReachesService(t *testing.T) {
	svc := &fakeService{}
	h := NewDocumentHandler(svc, 1<<20, utils.NewNopLogger())

	body, ct := multipartFile(t, "scan.png", "image/png", []byte("\x89PNG"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported file type", decodeBody(t, rec)["error"])
	assert.Nil(t, svc.uploaded)
}

func TestUploadDocument_SizeLimit(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{"at limit", 1024, http.StatusOK},
		{"over limit", 1025, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := NewDocumentHandler(svc, 1024, utils.NewNopLogger())

			body, ct := multipartFile(t, "a.txt", "text/plain", bytes.Repeat([]byte("a"), tt.size))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()

			h.UploadDocument(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Nil(t, svc.uploaded)
			}
		})
	}
}

func TestUploadDocument_MissingFile(t *testing.T) {
	h := NewDocumentHandler(&fakeService{}, 1<<20, utils.NewNopLogger())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file provided", decodeBody(t, rec)["error"])
}

func TestUploadDocument_ServiceErrorStatus(t *testing.T) {
	svc := &fakeService{err: utils.NewInternalError("File processing failed: corrupt", nil)}
	h := NewDocumentHandler(svc, 1<<20, utils.NewNopLogger())

	body, ct := multipartFile(t, "a.pdf", "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	h.UploadDocument(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "File processing failed: corrupt", decodeBody(t, rec)["error"])
}

func TestAnalyze_MultipartForm(t *testing.T) {
	svc := &fakeService{result: &models.AnalysisResult{Kind: models.KindQuestionAnswer, Text: "yes"}}
	h := NewDocumentHandler(svc, 1<<20, utils.NewNopLogger())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "doc body"))
	require.NoError(t, mw.WriteField("question", "is it?"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze/qa", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.AnswerQuestion(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"yes"}`, rec.Body.String())
	require.NotNil(t, svc.analyzed)
	assert.Equal(t, "doc body", svc.analyzed.DocumentText)
	assert.Equal(t, "is it?", svc.analyzed.Question)
}

func TestAnalyze_UnknownErrorHidden(t *testing.T) {
	svc := &fakeService{err: assert.AnError}
	h := NewDocumentHandler(svc, 1<<20, utils.NewNopLogger())

	req := httptest.NewRequest(http.MethodPost, "/analyze/summarize", bytes.NewBufferString("text=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Summarize(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
}
