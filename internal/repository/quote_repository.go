package repository

import (
	"context"
	"errors"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetByPublicID loads a quote and its full graph. The quote row is
// resolved first; the four child collections are then fetched
// concurrently. Missing children come back as empty slices or nil
// pointers, never as errors.
func (r *QuoteRepository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("public_id = ?", publicID).
		First(&quote).Error
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var customer domain.QuoteCustomer
		err := r.db.WithContext(gctx).Where("quote_id = ?", quote.ID).First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		quote.Customer = &customer
		return nil
	})

	g.Go(func() error {
		var rep domain.QuoteRepresentative
		err := r.db.WithContext(gctx).Where("quote_id = ?", quote.ID).First(&rep).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		quote.Representative = &rep
		return nil
	})

	g.Go(func() error {
		products := []domain.QuoteProduct{}
		err := r.db.WithContext(gctx).
			Where("quote_id = ?", quote.ID).
			Order("sort_order ASC").
			Find(&products).Error
		if err != nil {
			return err
		}
		quote.Products = products
		return nil
	})

	g.Go(func() error {
		terms := []domain.QuotePaymentTerm{}
		err := r.db.WithContext(gctx).
			Where("quote_id = ?", quote.ID).
			Order("sort_order ASC").
			Find(&terms).Error
		if err != nil {
			return err
		}
		quote.PaymentTerms = terms
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetHeaderByPublicID resolves just the quote row, no children. Used
// where only the internal id or header fields are needed, such as the
// approval update.
func (r *QuoteRepository) GetHeaderByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindByQuotationID looks up a quote header by its external quotation id.
// Returns gorm.ErrRecordNotFound when no quote matches.
func (r *QuoteRepository) FindByQuotationID(ctx context.Context, quotationID string) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateApprovalStatus sets the approval status of the product at the
// given sort order. The predicate is scoped to the quote id so a sort
// order on one quote can never touch another quote's line. Returns the
// number of rows affected; zero means no such line item exists.
func (r *QuoteRepository) UpdateApprovalStatus(ctx context.Context, quoteID uuid.UUID, sortOrder int, status domain.ApprovalStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.QuoteProduct{}).
		Where("quote_id = ? AND sort_order = ?", quoteID, sortOrder).
		Update("approval_status", status)
	return result.RowsAffected, result.Error
}

// UpdateStatus transitions the quote's lifecycle status
func (r *QuoteRepository) UpdateStatus(ctx context.Context, quoteID uuid.UUID, status domain.QuoteStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ?", quoteID).
		Update("status", status).Error
}

// CreateGraph persists a new quote header and all child rows in one
// transaction. The quote's children are taken from the struct fields.
func (r *QuoteRepository) CreateGraph(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createGraph(tx, quote)
	})
}

// ReplaceGraph updates an existing quote header in place (internal id
// and public id preserved) and replaces every child row with the ones
// on the struct, all in one transaction.
func (r *QuoteRepository) ReplaceGraph(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Quote{}).
			Where("id = ?", quote.ID).
			Select("VAT", "InvoiceID", "ProjectName", "QuotationID", "SpecialDiscount",
				"RequireSignature", "InvoiceCreationDate", "AgentCode", "AgentDesc", "TemplateID").
			Updates(quote).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{
			&domain.QuoteCustomer{},
			&domain.QuoteRepresentative{},
			&domain.QuoteProduct{},
			&domain.QuotePaymentTerm{},
		} {
			if err := tx.Where("quote_id = ?", quote.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return createChildren(tx, quote)
	})
}

func createGraph(tx *gorm.DB, quote *domain.Quote) error {
	// Omit the associations; children are inserted explicitly below so
	// their quote_id is always the persisted header id.
	if err := tx.Omit("Customer", "Representative", "Products", "PaymentTerms", "Template").
		Create(quote).Error; err != nil {
		return err
	}
	return createChildren(tx, quote)
}

func createChildren(tx *gorm.DB, quote *domain.Quote) error {
	if quote.Customer != nil {
		quote.Customer.QuoteID = quote.ID
		if err := tx.Create(quote.Customer).Error; err != nil {
			return err
		}
	}
	if quote.Representative != nil {
		quote.Representative.QuoteID = quote.ID
		if err := tx.Create(quote.Representative).Error; err != nil {
			return err
		}
	}
	for i := range quote.Products {
		quote.Products[i].QuoteID = quote.ID
		if err := tx.Create(&quote.Products[i]).Error; err != nil {
			return err
		}
	}
	for i := range quote.PaymentTerms {
		quote.PaymentTerms[i].QuoteID = quote.ID
		if err := tx.Create(&quote.PaymentTerms[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
