package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an id when the caller did not provide one.
// Ids are generated in the application so the same models run against
// PostgreSQL and the SQLite test databases.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft  QuoteStatus = "draft"
	QuoteStatusSigned QuoteStatus = "signed"
)

// ApprovalStatus represents the customer's decision on a single line item
type ApprovalStatus string

const (
	ApprovalStatusApproved    ApprovalStatus = "approved"
	ApprovalStatusAlternative ApprovalStatus = "alternative"
	ApprovalStatusRejected    ApprovalStatus = "rejected"
)

// IsValid checks if the ApprovalStatus is a valid enum value
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusApproved, ApprovalStatusAlternative, ApprovalStatusRejected:
		return true
	}
	return false
}

// Quote represents a sales quotation header. The public id is the only
// identifier exposed to customers; the internal id keys all child rows.
type Quote struct {
	BaseModel
	PublicID            uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex;column:public_id"`
	VAT                 decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0;column:vat"`
	InvoiceID           string               `gorm:"type:varchar(100);column:invoice_id"`
	ProjectName         string               `gorm:"type:varchar(200);column:project_name"`
	QuotationID         string               `gorm:"type:varchar(100);index;column:quotation_id"`
	SpecialDiscount     decimal.Decimal      `gorm:"type:decimal(15,2);not null;default:0;column:special_discount"`
	RequireSignature    bool                 `gorm:"not null;default:true;column:require_signature"`
	InvoiceCreationDate *time.Time           `gorm:"column:invoice_creation_date"`
	AgentCode           string               `gorm:"type:varchar(50);column:agent_code"`
	AgentDesc           string               `gorm:"type:varchar(200);column:agent_desc"`
	Status              QuoteStatus          `gorm:"type:varchar(20);not null;default:'draft';index"`
	TemplateID          *uuid.UUID           `gorm:"type:uuid;column:template_id"`
	Template            *QuoteTemplate       `gorm:"foreignKey:TemplateID"`
	Customer            *QuoteCustomer       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Representative      *QuoteRepresentative `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Products            []QuoteProduct       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	PaymentTerms        []QuotePaymentTerm   `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuoteCustomer represents the addressee of a quote (at most one row per quote)
type QuoteCustomer struct {
	BaseModel
	QuoteID         uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	CustomerID      string    `gorm:"type:varchar(100);column:customer_id"`
	CustomerName    string    `gorm:"type:varchar(200);column:customer_name"`
	CustomerAddress string    `gorm:"type:varchar(500);column:customer_address"`
	CustomerLogo    string    `gorm:"type:varchar(500);column:customer_logo"`
}

// QuoteRepresentative represents the sales agent shown on a quote (at most one row per quote)
type QuoteRepresentative struct {
	BaseModel
	QuoteID     uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	RepFullName string    `gorm:"type:varchar(200);column:rep_full_name"`
	RepPhone    string    `gorm:"type:varchar(50);column:rep_phone"`
	RepAvatar   string    `gorm:"type:varchar(500);column:rep_avatar"`
}

// QuoteProduct represents one line item of a quote. Sort order is
// zero-based, unique within a quote, and is the addressing key for
// approval updates.
type QuoteProduct struct {
	BaseModel
	QuoteID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_quote_products_quote_sort,unique;column:quote_id"`
	SortOrder      int             `gorm:"not null;index:idx_quote_products_quote_sort,unique;column:sort_order"`
	Qty            int             `gorm:"not null;default:0"`
	SKU            string          `gorm:"type:varchar(100);column:sku"`
	Color          string          `gorm:"type:varchar(100)"`
	Shape          string          `gorm:"type:varchar(100)"`
	Material       string          `gorm:"type:varchar(100)"`
	Technique      string          `gorm:"type:varchar(100)"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	UnitDiscount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:unit_discount"`
	PictureURL     string          `gorm:"type:varchar(500);column:picture_url"`
	ProductDesc    string          `gorm:"type:text;column:product_desc"`
	AdditionalDesc string          `gorm:"type:text;column:additional_desc"`
	ApprovalStatus *ApprovalStatus `gorm:"type:varchar(20);column:approval_status"`
}

// QuotePaymentTerm represents one free-text payment clause on a quote
type QuotePaymentTerm struct {
	BaseModel
	QuoteID   uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	SortOrder int       `gorm:"not null;column:sort_order"`
	Term      string    `gorm:"type:text;not null"`
}

// QuoteTemplate holds the visual theming applied when a quote is rendered
type QuoteTemplate struct {
	BaseModel
	Name           string `gorm:"type:varchar(200);not null"`
	TemplateKey    string `gorm:"type:varchar(100);not null;uniqueIndex;column:template_key"`
	MainColor      string `gorm:"type:varchar(20);not null;default:'#801a1e';column:main_color"`
	BulletsColor   string `gorm:"type:varchar(20);column:bullets_color"`
	BannerURL      string `gorm:"type:varchar(500);column:banner_url"`
	BackgroundURL  string `gorm:"type:varchar(500);column:background_url"`
	FaviconURL     string `gorm:"type:varchar(500);column:favicon_url"`
	LogoURL        string `gorm:"type:varchar(500);column:logo_url"`
	ContactStripBg string `gorm:"type:varchar(20);column:contact_strip_bg"`
}
