package mapper

import (
	"strings"
	"time"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/adar-commits/quotes/internal/pricing"
	"github.com/shopspring/decimal"
)

const missingValuePlaceholder = "—"

// ToQuoteDocument assembles the render-ready document from a fully
// loaded quote graph. Display defaulting happens here so the rendering
// layer never has to reason about missing data: a missing customer name
// becomes a placeholder dash, the invoice reference is truncated to its
// first 8 characters, a missing avatar falls back to the initial letter
// of the representative's name. Amounts are rounded to two fractional
// digits at this boundary only.
func ToQuoteDocument(quote *domain.Quote) domain.QuoteDocument {
	doc := domain.QuoteDocument{
		PublicID:     quote.PublicID,
		Status:       quote.Status,
		ProjectName:  quote.ProjectName,
		InvoiceRef:   truncateRef(quote.InvoiceID),
		QuotationID:  quote.QuotationID,
		AgentCode:    quote.AgentCode,
		AgentDesc:    quote.AgentDesc,
		Customer:     toDocumentCustomer(quote.Customer),
		Products:     make([]domain.DocumentLine, 0, len(quote.Products)),
		PaymentTerms: make([]string, 0, len(quote.PaymentTerms)),
	}

	if quote.InvoiceCreationDate != nil {
		d := quote.InvoiceCreationDate.Format(time.RFC3339)
		doc.InvoiceCreationDate = &d
	}
	if quote.Representative != nil {
		doc.Representative = toDocumentRep(quote.Representative)
	}
	if quote.Template != nil {
		doc.Template = toDocumentTemplate(quote.Template)
	}

	lines := make([]pricing.Line, 0, len(quote.Products))
	for _, p := range quote.Products {
		lines = append(lines, pricing.Line{
			Qty:          p.Qty,
			UnitPrice:    p.UnitPrice,
			UnitDiscount: p.UnitDiscount,
		})
		doc.Products = append(doc.Products, toDocumentLine(&p))
	}
	for _, t := range quote.PaymentTerms {
		doc.PaymentTerms = append(doc.PaymentTerms, t.Term)
	}

	summary := pricing.Summarize(lines, quote.SpecialDiscount, quote.VAT)
	doc.Summary = domain.DocumentSummary{
		Subtotal:        round(summary.Subtotal),
		SpecialDiscount: round(summary.SpecialDiscount),
		AfterDiscount:   round(summary.AfterDiscount),
		VATRate:         quote.VAT,
		VATAmount:       round(summary.VATAmount),
		Total:           round(summary.Total),
	}

	notSigned := quote.Status != domain.QuoteStatusSigned
	doc.ShowSignature = quote.RequireSignature && notSigned
	doc.ShowApproval = notSigned

	return doc
}

func toDocumentCustomer(c *domain.QuoteCustomer) domain.DocumentCustomer {
	if c == nil {
		return domain.DocumentCustomer{CustomerName: missingValuePlaceholder}
	}
	name := c.CustomerName
	if name == "" {
		name = missingValuePlaceholder
	}
	return domain.DocumentCustomer{
		CustomerID:      c.CustomerID,
		CustomerName:    name,
		CustomerAddress: c.CustomerAddress,
	}
}

func toDocumentRep(r *domain.QuoteRepresentative) *domain.DocumentRep {
	rep := &domain.DocumentRep{
		FullName:  r.RepFullName,
		Phone:     r.RepPhone,
		AvatarURL: r.RepAvatar,
	}
	if r.RepAvatar == "" {
		rep.AvatarInitial = initialOf(r.RepFullName)
	}
	return rep
}

func toDocumentLine(p *domain.QuoteProduct) domain.DocumentLine {
	return domain.DocumentLine{
		SortOrder:      p.SortOrder,
		Qty:            p.Qty,
		SKU:            p.SKU,
		Color:          p.Color,
		Shape:          p.Shape,
		Material:       p.Material,
		Technique:      p.Technique,
		UnitPrice:      round(p.UnitPrice),
		UnitDiscount:   round(p.UnitDiscount),
		LineTotal:      round(pricing.LineTotal(p.Qty, p.UnitPrice, p.UnitDiscount)),
		PictureURL:     p.PictureURL,
		ProductDesc:    p.ProductDesc,
		AdditionalDesc: p.AdditionalDesc,
		ApprovalStatus: p.ApprovalStatus,
	}
}

func toDocumentTemplate(t *domain.QuoteTemplate) *domain.DocumentTemplate {
	return &domain.DocumentTemplate{
		TemplateKey:    t.TemplateKey,
		MainColor:      t.MainColor,
		BulletsColor:   t.BulletsColor,
		BannerURL:      t.BannerURL,
		BackgroundURL:  t.BackgroundURL,
		FaviconURL:     t.FaviconURL,
		LogoURL:        t.LogoURL,
		ContactStripBg: t.ContactStripBg,
	}
}

// truncateRef shortens long invoice references for display (first 8
// characters plus an ellipsis); missing references become a placeholder.
func truncateRef(ref string) string {
	if ref == "" {
		return missingValuePlaceholder
	}
	runes := []rune(ref)
	if len(runes) <= 8 {
		return ref
	}
	return string(runes[:8]) + "…"
}

func initialOf(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(trimmed)[0]))
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
