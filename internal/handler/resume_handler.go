package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/CrowdContract/Unstop-smartdocai/internal/models"
	"github.com/CrowdContract/Unstop-smartdocai/internal/repository"
	"github.com/CrowdContract/Unstop-smartdocai/internal/service"
)

// defaultHistoryLimit caps /insights listings when no limit is given.
const defaultHistoryLimit = 20

// maxUploadBytes bounds the multipart form size for resume uploads.
const maxUploadBytes = 50 << 20

// ResumeHandler handles the resume upload and insights endpoints.
type ResumeHandler struct {
	insightService *service.InsightService
	resumeRepo     *repository.ResumeRepository
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(insightService *service.InsightService, resumeRepo *repository.ResumeRepository) *ResumeHandler {
	return &ResumeHandler{
		insightService: insightService,
		resumeRepo:     resumeRepo,
	}
}

// RegisterRoutes registers resume routes on the mux.
func (h *ResumeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload-resume", h.Upload)
	mux.HandleFunc("GET /insights", h.Insights)
}

// Upload handles POST /upload-resume (multipart: file).
func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read uploaded file: "+err.Error())
		return
	}

	record, err := h.insightService.Process(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrPDFParse) || errors.Is(err, service.ErrNoTextExtracted) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	JSON(w, http.StatusOK, record)
}

// Insights handles GET /insights?id=<id> and GET /insights?limit=<n>.
// With an id it returns that single record; otherwise the most recent
// records, newest first.
func (h *ResumeHandler) Insights(w http.ResponseWriter, r *http.Request) {
	if idParam := r.URL.Query().Get("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid resume id")
			return
		}

		record, err := h.resumeRepo.GetByID(r.Context(), id)
		if err != nil {
			Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if record == nil {
			Error(w, http.StatusNotFound, "resume not found")
			return
		}

		JSON(w, http.StatusOK, record)
		return
	}

	limit := defaultHistoryLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.resumeRepo.List(r.Context(), limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []models.Resume{}
	}

	JSON(w, http.StatusOK, records)
}
