package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/adar-commits/quotes/internal/mapper"
	"github.com/adar-commits/quotes/internal/repository"
	"github.com/adar-commits/quotes/internal/webhook"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuoteService struct {
	quoteRepo     *repository.QuoteRepository
	templateRepo  *repository.TemplateRepository
	notifier      *webhook.Notifier
	publicBaseURL string
	logger        *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	templateRepo *repository.TemplateRepository,
	notifier *webhook.Notifier,
	publicBaseURL string,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		templateRepo:  templateRepo,
		notifier:      notifier,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// GetDocument loads the quote graph by public id and assembles the
// render-ready document.
func (s *QuoteService) GetDocument(ctx context.Context, publicID uuid.UUID) (*domain.QuoteDocument, error) {
	quote, err := s.quoteRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}
	doc := mapper.ToQuoteDocument(quote)
	return &doc, nil
}

// SetApproval records the customer's decision on a single line item.
// The update is scoped to the quote resolved from the public id, so a
// sort order can never address another quote's product. Zero affected
// rows means the quote has no product at that sort order and is
// reported as ErrLineItemNotFound.
func (s *QuoteService) SetApproval(ctx context.Context, publicID uuid.UUID, sortOrder int, status domain.ApprovalStatus) error {
	if !status.IsValid() {
		return ErrInvalidApprovalStatus
	}

	quote, err := s.quoteRepo.GetHeaderByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("failed to load quote: %w", err)
	}

	affected, err := s.quoteRepo.UpdateApprovalStatus(ctx, quote.ID, sortOrder, status)
	if err != nil {
		return fmt.Errorf("failed to update approval status: %w", err)
	}
	if affected == 0 {
		return ErrLineItemNotFound
	}

	s.logger.Info("approval status updated",
		zap.String("public_id", publicID.String()),
		zap.Int("sort_order", sortOrder),
		zap.String("status", string(status)))
	return nil
}

// Sign marks the quote as signed and notifies the configured webhook
// with the full quote graph. A webhook failure is logged but never
// fails the signature itself.
func (s *QuoteService) Sign(ctx context.Context, publicID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("failed to load quote: %w", err)
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quote.ID, domain.QuoteStatusSigned); err != nil {
		return fmt.Errorf("failed to mark quote signed: %w", err)
	}
	quote.Status = domain.QuoteStatusSigned

	if s.notifier != nil {
		if err := s.notifier.QuoteSigned(ctx, quote); err != nil {
			s.logger.Error("signed-quote webhook failed",
				zap.String("public_id", publicID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("quote signed", zap.String("public_id", publicID.String()))
	return nil
}

// Upsert ingests a quotation payload from the external order system.
// A non-empty quotationID matching an existing quote triggers a full
// replace that keeps the internal and public ids; otherwise a new quote
// is created under a fresh public id. Header and child writes are
// transactional either way.
func (s *QuoteService) Upsert(ctx context.Context, payload *domain.QuotationPayload) (*domain.CreateQuoteResponse, error) {
	domain.NormalizeQuotationPayload(payload)

	templateID, err := s.resolveTemplateID(ctx, payload)
	if err != nil {
		return nil, err
	}

	quote := buildQuote(payload, templateID)

	var existing *domain.Quote
	if payload.QuotationID != "" {
		existing, err = s.quoteRepo.FindByQuotationID(ctx, payload.QuotationID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to match quotation id: %w", err)
		}
	}

	if existing != nil {
		quote.ID = existing.ID
		quote.PublicID = existing.PublicID
		if err := s.quoteRepo.ReplaceGraph(ctx, quote); err != nil {
			return nil, fmt.Errorf("failed to replace quote: %w", err)
		}
		s.logger.Info("quote replaced",
			zap.String("quotation_id", payload.QuotationID),
			zap.String("public_id", quote.PublicID.String()))
	} else {
		quote.PublicID = uuid.New()
		if err := s.quoteRepo.CreateGraph(ctx, quote); err != nil {
			return nil, fmt.Errorf("failed to create quote: %w", err)
		}
		s.logger.Info("quote created",
			zap.String("quotation_id", payload.QuotationID),
			zap.String("public_id", quote.PublicID.String()))
	}

	return &domain.CreateQuoteResponse{
		PublicID: quote.PublicID,
		QuoteID:  quote.ID,
		URL:      strings.TrimRight(s.publicBaseURL, "/") + "/" + quote.PublicID.String(),
	}, nil
}

// resolveTemplateID maps a payload's template_id or template_key to a
// stored template. Unknown references are ignored rather than rejected;
// the document simply renders without theming.
func (s *QuoteService) resolveTemplateID(ctx context.Context, payload *domain.QuotationPayload) (*uuid.UUID, error) {
	if payload.TemplateID != "" {
		id, err := uuid.Parse(payload.TemplateID)
		if err == nil {
			if _, err := s.templateRepo.GetByID(ctx, id); err == nil {
				return &id, nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to resolve template: %w", err)
			}
		}
	}
	if payload.TemplateKey != "" {
		template, err := s.templateRepo.GetByKey(ctx, payload.TemplateKey)
		if err == nil {
			return &template.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve template: %w", err)
		}
	}
	return nil, nil
}

func buildQuote(p *domain.QuotationPayload, templateID *uuid.UUID) *domain.Quote {
	quote := &domain.Quote{
		VAT:              decimal.NewFromFloat(*p.VAT),
		InvoiceID:        p.InvoiceID,
		ProjectName:      p.ProjectName,
		QuotationID:      p.QuotationID,
		SpecialDiscount:  decimal.NewFromFloat(*p.SpecialDiscount),
		RequireSignature: *p.RequireSignature,
		AgentCode:        p.AgentCode,
		AgentDesc:        p.AgentDesc,
		Status:           domain.QuoteStatusDraft,
		TemplateID:       templateID,
	}

	if p.InvoiceCreationDate != "" {
		if t, err := time.Parse(time.RFC3339, p.InvoiceCreationDate); err == nil {
			quote.InvoiceCreationDate = &t
		} else if t, err := time.Parse("2006-01-02", p.InvoiceCreationDate); err == nil {
			quote.InvoiceCreationDate = &t
		}
	}

	quote.Customer = &domain.QuoteCustomer{
		CustomerID:      p.Customer.CustomerID,
		CustomerName:    p.Customer.CustomerName,
		CustomerAddress: p.Customer.CustomerAddress,
	}
	if p.Representative.RepFullName != "" || p.Representative.RepPhone != "" || p.Representative.RepAvatar != "" {
		quote.Representative = &domain.QuoteRepresentative{
			RepFullName: p.Representative.RepFullName,
			RepPhone:    p.Representative.RepPhone,
			RepAvatar:   p.Representative.RepAvatar,
		}
	}

	quote.Products = make([]domain.QuoteProduct, 0, len(p.Products))
	for i, prod := range p.Products {
		quote.Products = append(quote.Products, domain.QuoteProduct{
			SortOrder:      i,
			Qty:            *prod.Qty,
			SKU:            prod.SKU,
			Color:          prod.Color,
			Shape:          prod.Shape,
			Material:       prod.Material,
			Technique:      prod.Technique,
			UnitPrice:      decimal.NewFromFloat(*prod.UnitPrice),
			UnitDiscount:   decimal.NewFromFloat(*prod.UnitDiscount),
			PictureURL:     prod.PictureURL,
			ProductDesc:    prod.ProductDesc,
			AdditionalDesc: prod.AdditionalDesc,
		})
	}

	quote.PaymentTerms = make([]domain.QuotePaymentTerm, 0, len(p.PaymentTerms))
	for i, term := range p.PaymentTerms {
		quote.PaymentTerms = append(quote.PaymentTerms, domain.QuotePaymentTerm{
			SortOrder: i,
			Term:      term,
		})
	}

	return quote
}
