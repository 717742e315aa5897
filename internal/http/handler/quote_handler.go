package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/adar-commits/quotes/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// GetDocument handles GET /api/v1/quotes/{publicId}
// The response is the fully assembled, priced document. Lookup and
// data-access failures are both answered with 404 so the rendering
// layer always falls back to its generic not-found page; the real
// cause is logged server-side.
func (h *QuoteHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(chi.URLParam(r, "publicId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Quote not found")
		return
	}

	doc, err := h.quoteService.GetDocument(r.Context(), publicID)
	if err != nil {
		if !errors.Is(err, service.ErrQuoteNotFound) {
			h.logger.Error("failed to load quote document",
				zap.String("public_id", publicID.String()),
				zap.Error(err))
		}
		respondWithError(w, http.StatusNotFound, "Quote not found")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// SetApproval handles PATCH /api/v1/quotes/{publicId}/approval
// Body shape and enum membership are checked before the quote is
// resolved; a sort order with no matching product answers 404.
func (h *QuoteHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	var req domain.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	status := domain.ApprovalStatus(req.Status)
	if !status.IsValid() {
		respondWithError(w, http.StatusBadRequest, "status must be one of: approved, alternative, rejected")
		return
	}

	publicID, err := uuid.Parse(chi.URLParam(r, "publicId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Quote not found")
		return
	}

	if err := h.quoteService.SetApproval(r.Context(), publicID, *req.ProductSortOrder, status); err != nil {
		switch {
		case errors.Is(err, service.ErrQuoteNotFound):
			respondWithError(w, http.StatusNotFound, "Quote not found")
		case errors.Is(err, service.ErrLineItemNotFound):
			respondWithError(w, http.StatusNotFound, "No line item at the given sort order")
		case errors.Is(err, service.ErrInvalidApprovalStatus):
			respondWithError(w, http.StatusBadRequest, "status must be one of: approved, alternative, rejected")
		default:
			h.logger.Error("failed to set approval status", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update approval status")
		}
		return
	}

	respondJSON(w, http.StatusOK, domain.ApprovalResponse{OK: true, Status: req.Status})
}

// Sign handles POST /api/v1/quotes/{publicId}/sign
func (h *QuoteHandler) Sign(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(chi.URLParam(r, "publicId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Quote not found")
		return
	}

	if err := h.quoteService.Sign(r.Context(), publicID); err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondWithError(w, http.StatusNotFound, "Quote not found")
			return
		}
		h.logger.Error("failed to sign quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to sign quote")
		return
	}

	respondJSON(w, http.StatusOK, domain.SignResponse{OK: true, Status: "Signed"})
}

// Upsert handles POST /api/v1/quotes
// The external order system sends either a payload object or a
// one-element array wrapping it; both shapes are accepted. A missing or
// non-numeric vat rejects the request before any datastore access.
func (h *QuoteHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeQuotationPayload(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.quoteService.Upsert(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to upsert quote",
			zap.String("quotation_id", payload.QuotationID),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to store quote")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// decodeQuotationPayload normalizes the object-or-array body shape and
// enforces that vat arrived as a JSON number.
func decodeQuotationPayload(body io.Reader) (*domain.QuotationPayload, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.New("failed to read request body")
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New("request body is empty")
	}

	var payload domain.QuotationPayload
	if trimmed[0] == '[' {
		var payloads []domain.QuotationPayload
		if err := json.Unmarshal(raw, &payloads); err != nil {
			return nil, errors.New("invalid quotation payload")
		}
		if len(payloads) != 1 {
			return nil, errors.New("payload array must contain exactly one quotation")
		}
		payload = payloads[0]
	} else {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, errors.New("invalid quotation payload")
		}
	}

	if payload.VAT == nil {
		return nil, errors.New("vat is required and must be a number")
	}

	return &payload, nil
}
