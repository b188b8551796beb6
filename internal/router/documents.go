package router

import (
	"net/http"

	"github.com/BerylCAtieno/document-analyzer-api/internal/handlers"
	"github.com/BerylCAtieno/document-analyzer-api/internal/middleware"
	"github.com/BerylCAtieno/document-analyzer-api/internal/services"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(docService services.DocumentService, maxFileSize int64, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	docHandler := handlers.NewDocumentHandler(docService, maxFileSize, logger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// OPTIONS is routed so the CORS middleware can answer preflights
	post := []string{http.MethodPost, http.MethodOptions}

	r.HandleFunc("/upload", docHandler.UploadDocument).Methods(post...)
	r.HandleFunc("/analyze/summarize", docHandler.Summarize).Methods(post...)
	r.HandleFunc("/analyze/qa", docHandler.AnswerQuestion).Methods(post...)
	r.HandleFunc("/analyze/key-elements", docHandler.KeyElements).Methods(post...)
	r.HandleFunc("/analyze/entities", docHandler.Entities).Methods(post...)
	r.HandleFunc("/compare", docHandler.Compare).Methods(post...)

	return r
}
