package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationPayload is the ingest format pushed by the external order
// system. Field names mirror the upstream export and are not idiomatic
// on purpose. Numeric fields are pointers so that a missing value can be
// told apart from an explicit zero; vat in particular must arrive as a
// JSON number or the request is rejected before any datastore access.
type QuotationPayload struct {
	VAT                 *float64                   `json:"vat"`
	InvoiceID           string                     `json:"invoiceID"`
	ProjectName         string                     `json:"projectName"`
	QuotationID         string                     `json:"quotationID"`
	SpecialDiscount     *float64                   `json:"specialDiscount"`
	RequireSignature    *bool                      `json:"requireSignature"`
	InvoiceCreationDate string                     `json:"invoiceCreationDate"`
	AgentCode           string                     `json:"agentCode"`
	AgentDesc           string                     `json:"agentDesc"`
	TemplateID          string                     `json:"template_id"`
	TemplateKey         string                     `json:"template_key"`
	Customer            *PayloadCustomer           `json:"customer"`
	Representative      *PayloadRepresentative     `json:"Representative"`
	Products            []PayloadProduct           `json:"products"`
	PaymentTerms        []string                   `json:"paymentsTerms"`
}

// PayloadCustomer carries the addressee block of an ingested quotation
type PayloadCustomer struct {
	CustomerID      string `json:"customerID"`
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress"`
}

// PayloadRepresentative carries the sales agent block of an ingested quotation
type PayloadRepresentative struct {
	RepFullName string `json:"repFullName"`
	RepPhone    string `json:"repPhone"`
	RepAvatar   string `json:"repAvatar"`
}

// PayloadProduct carries one line item of an ingested quotation
type PayloadProduct struct {
	Qty            *int     `json:"Qty"`
	SKU            string   `json:"SKU"`
	Color          string   `json:"color"`
	Shape          string   `json:"shape"`
	Material       string   `json:"material"`
	Technique      string   `json:"technique"`
	UnitPrice      *float64 `json:"unitPrice"`
	UnitDiscount   *float64 `json:"unitDiscount"`
	PictureURL     string   `json:"pictureurl"`
	ProductDesc    string   `json:"productDesc"`
	AdditionalDesc string   `json:"additionalDesc"`
}

// NormalizeQuotationPayload applies the ingest defaults in one place:
// nil numerics become zero, requireSignature defaults to true, and nil
// nested blocks become empty values. VAT presence is NOT defaulted here;
// the handler rejects a missing vat before normalization runs.
func NormalizeQuotationPayload(p *QuotationPayload) {
	if p.SpecialDiscount == nil {
		p.SpecialDiscount = new(float64)
	}
	if p.RequireSignature == nil {
		t := true
		p.RequireSignature = &t
	}
	if p.Customer == nil {
		p.Customer = &PayloadCustomer{}
	}
	if p.Representative == nil {
		p.Representative = &PayloadRepresentative{}
	}
	if p.Products == nil {
		p.Products = []PayloadProduct{}
	}
	if p.PaymentTerms == nil {
		p.PaymentTerms = []string{}
	}
	for i := range p.Products {
		if p.Products[i].Qty == nil {
			p.Products[i].Qty = new(int)
		}
		if p.Products[i].UnitPrice == nil {
			p.Products[i].UnitPrice = new(float64)
		}
		if p.Products[i].UnitDiscount == nil {
			p.Products[i].UnitDiscount = new(float64)
		}
	}
}

// ApprovalRequest is the body of the per-line-item approval mutation
type ApprovalRequest struct {
	ProductSortOrder *int   `json:"productSortOrder" validate:"required"`
	Status           string `json:"status" validate:"required"`
}

// ApprovalResponse acknowledges a persisted approval decision
type ApprovalResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// CreateQuoteResponse is returned by the ingest endpoint
type CreateQuoteResponse struct {
	PublicID uuid.UUID `json:"public_id"`
	QuoteID  uuid.UUID `json:"quote_id"`
	URL      string    `json:"url"`
}

// SignResponse acknowledges a captured signature
type SignResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// QuoteDocument is the render-ready document served to the quote page.
// All display defaulting (placeholder dashes, truncated references,
// avatar fallbacks) happens before this leaves the server.
type QuoteDocument struct {
	PublicID            uuid.UUID            `json:"publicId"`
	Status              QuoteStatus          `json:"status"`
	ProjectName         string               `json:"projectName"`
	InvoiceRef          string               `json:"invoiceRef"`
	QuotationID         string               `json:"quotationId,omitempty"`
	InvoiceCreationDate *string              `json:"invoiceCreationDate,omitempty"`
	AgentCode           string               `json:"agentCode,omitempty"`
	AgentDesc           string               `json:"agentDesc,omitempty"`
	Customer            DocumentCustomer     `json:"customer"`
	Representative      *DocumentRep         `json:"representative,omitempty"`
	Products            []DocumentLine       `json:"products"`
	PaymentTerms        []string             `json:"paymentTerms"`
	Summary             DocumentSummary      `json:"summary"`
	Template            *DocumentTemplate    `json:"template,omitempty"`
	ShowSignature       bool                 `json:"showSignature"`
	ShowApproval        bool                 `json:"showApproval"`
}

// DocumentCustomer is the customer block of the assembled document
type DocumentCustomer struct {
	CustomerID      string `json:"customerId,omitempty"`
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress,omitempty"`
}

// DocumentRep is the representative block of the assembled document
type DocumentRep struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	AvatarInitial string `json:"avatarInitial"`
}

// DocumentLine is one priced line item of the assembled document
type DocumentLine struct {
	SortOrder      int             `json:"sortOrder"`
	Qty            int             `json:"qty"`
	SKU            string          `json:"sku,omitempty"`
	Color          string          `json:"color,omitempty"`
	Shape          string          `json:"shape,omitempty"`
	Material       string          `json:"material,omitempty"`
	Technique      string          `json:"technique,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	UnitDiscount   decimal.Decimal `json:"unitDiscount"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	PictureURL     string          `json:"pictureUrl,omitempty"`
	ProductDesc    string          `json:"productDesc,omitempty"`
	AdditionalDesc string          `json:"additionalDesc,omitempty"`
	ApprovalStatus *ApprovalStatus `json:"approvalStatus,omitempty"`
}

// DocumentSummary is the totals block of the assembled document
type DocumentSummary struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	SpecialDiscount decimal.Decimal `json:"specialDiscount"`
	AfterDiscount   decimal.Decimal `json:"afterDiscount"`
	VATRate         decimal.Decimal `json:"vatRate"`
	VATAmount       decimal.Decimal `json:"vatAmount"`
	Total           decimal.Decimal `json:"total"`
}

// DocumentTemplate is the theming block of the assembled document
type DocumentTemplate struct {
	TemplateKey    string `json:"templateKey"`
	MainColor      string `json:"mainColor"`
	BulletsColor   string `json:"bulletsColor,omitempty"`
	BannerURL      string `json:"bannerUrl,omitempty"`
	BackgroundURL  string `json:"backgroundUrl,omitempty"`
	FaviconURL     string `json:"faviconUrl,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	ContactStripBg string `json:"contactStripBg,omitempty"`
}

// TemplateDTO is the admin-surface representation of a quote template
type TemplateDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	TemplateKey    string    `json:"templateKey"`
	MainColor      string    `json:"mainColor"`
	BulletsColor   string    `json:"bulletsColor,omitempty"`
	BannerURL      string    `json:"bannerUrl,omitempty"`
	BackgroundURL  string    `json:"backgroundUrl,omitempty"`
	FaviconURL     string    `json:"faviconUrl,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	ContactStripBg string    `json:"contactStripBg,omitempty"`
	CreatedAt      string    `json:"createdAt"` // ISO 8601
	UpdatedAt      string    `json:"updatedAt"` // ISO 8601
}

// ToTemplateDTO converts a template model to its admin representation
func ToTemplateDTO(t *QuoteTemplate) TemplateDTO {
	return TemplateDTO{
		ID:             t.ID,
		Name:           t.Name,
		TemplateKey:    t.TemplateKey,
		MainColor:      t.MainColor,
		BulletsColor:   t.BulletsColor,
		BannerURL:      t.BannerURL,
		BackgroundURL:  t.BackgroundURL,
		FaviconURL:     t.FaviconURL,
		LogoURL:        t.LogoURL,
		ContactStripBg: t.ContactStripBg,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateTemplateRequest creates a new visual template
type CreateTemplateRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	TemplateKey    string `json:"templateKey" validate:"required,max=100"`
	MainColor      string `json:"mainColor" validate:"omitempty,max=20"`
	BulletsColor   string `json:"bulletsColor" validate:"omitempty,max=20"`
	BannerURL      string `json:"bannerUrl" validate:"omitempty,url,max=500"`
	BackgroundURL  string `json:"backgroundUrl" validate:"omitempty,url,max=500"`
	FaviconURL     string `json:"faviconUrl" validate:"omitempty,url,max=500"`
	LogoURL        string `json:"logoUrl" validate:"omitempty,url,max=500"`
	ContactStripBg string `json:"contactStripBg" validate:"omitempty,max=20"`
}

// UpdateTemplateRequest partially updates a template. Pointer fields
// distinguish "not sent" from "sent empty"; an empty string clears the
// stored value.
type UpdateTemplateRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=200"`
	MainColor      *string `json:"mainColor" validate:"omitempty,max=20"`
	BulletsColor   *string `json:"bulletsColor" validate:"omitempty,max=20"`
	BannerURL      *string `json:"bannerUrl" validate:"omitempty,max=500"`
	BackgroundURL  *string `json:"backgroundUrl" validate:"omitempty,max=500"`
	FaviconURL     *string `json:"faviconUrl" validate:"omitempty,max=500"`
	LogoURL        *string `json:"logoUrl" validate:"omitempty,max=500"`
	ContactStripBg *string `json:"contactStripBg" validate:"omitempty,max=20"`
}

// HasFields reports whether the update carries at least one recognized field
func (r *UpdateTemplateRequest) HasFields() bool {
	return r.Name != nil || r.MainColor != nil || r.BulletsColor != nil ||
		r.BannerURL != nil || r.BackgroundURL != nil || r.FaviconURL != nil ||
		r.LogoURL != nil || r.ContactStripBg != nil
}
