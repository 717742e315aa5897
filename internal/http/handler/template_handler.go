package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/adar-commits/quotes/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	templateService *service.TemplateService
	logger          *zap.Logger
}

func NewTemplateHandler(templateService *service.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

// List handles GET /api/v1/settings/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list templates", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

// Create handles POST /api/v1/settings/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	template, err := h.templateService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTemplateKeyExists) {
			respondWithError(w, http.StatusConflict, "A template with this key already exists")
			return
		}
		h.logger.Error("failed to create template", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	respondJSON(w, http.StatusCreated, template)
}

// Update handles PATCH /api/v1/settings/templates/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	var req domain.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	template, err := h.templateService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoUpdatableFields):
			respondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		case errors.Is(err, service.ErrTemplateNotFound):
			respondWithError(w, http.StatusNotFound, "Template not found")
		default:
			h.logger.Error("failed to update template", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update template")
		}
		return
	}

	respondJSON(w, http.StatusOK, template)
}
