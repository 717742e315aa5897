package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// SetupTestDB creates an isolated in-memory SQLite database with the
// full quote schema migrated. Every call returns a fresh database.
// Each database gets a unique shared-cache name and a single pooled
// connection: a plain ":memory:" DSN gives every pooled connection its
// own empty database, so a second connection opened under concurrent
// queries would see no schema at all.
func SetupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:quotes_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory test database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get database instance")
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.QuoteTemplate{},
		&domain.Quote{},
		&domain.QuoteCustomer{},
		&domain.QuoteRepresentative{},
		&domain.QuoteProduct{},
		&domain.QuotePaymentTerm{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	return db
}

// CleanupTestData cleans up test data from all tables
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in order to respect foreign key constraints
	tables := []string{
		"quote_payment_terms",
		"quote_products",
		"quote_representatives",
		"quote_customers",
		"quotes",
		"quote_templates",
	}

	for _, table := range tables {
		err := db.Exec("DELETE FROM " + table).Error
		if err != nil {
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestQuote inserts a quote with a customer, a representative,
// two products and one payment term, and returns the header.
func CreateTestQuote(t *testing.T, db *gorm.DB, quotationID string) *domain.Quote {
	quote := &domain.Quote{
		PublicID:         uuid.New(),
		VAT:              decimal.NewFromInt(17),
		InvoiceID:        "INV-2024-00042",
		ProjectName:      "Lobby carpets",
		QuotationID:      quotationID,
		SpecialDiscount:  decimal.NewFromInt(20),
		RequireSignature: true,
		Status:           domain.QuoteStatusDraft,
	}
	require.NoError(t, db.Omit("Customer", "Representative", "Products", "PaymentTerms", "Template").Create(quote).Error)

	require.NoError(t, db.Create(&domain.QuoteCustomer{
		QuoteID:         quote.ID,
		CustomerID:      "C-100",
		CustomerName:    "Hotel Aurora",
		CustomerAddress: "1 Harbor Road",
	}).Error)

	require.NoError(t, db.Create(&domain.QuoteRepresentative{
		QuoteID:     quote.ID,
		RepFullName: "Dana Levi",
		RepPhone:    "+972-50-0000000",
	}).Error)

	products := []domain.QuoteProduct{
		{
			QuoteID:      quote.ID,
			SortOrder:    0,
			Qty:          2,
			SKU:          "CPT-RND-01",
			Shape:        "round",
			UnitPrice:    decimal.NewFromInt(100),
			UnitDiscount: decimal.NewFromInt(10),
		},
		{
			QuoteID:   quote.ID,
			SortOrder: 1,
			Qty:       1,
			SKU:       "CPT-SQR-02",
			Shape:     "square",
			UnitPrice: decimal.NewFromInt(250),
		},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}

	require.NoError(t, db.Create(&domain.QuotePaymentTerm{
		QuoteID:   quote.ID,
		SortOrder: 0,
		Term:      "50% on order, 50% on delivery",
	}).Error)

	return quote
}

// CreateTestTemplate inserts a template and returns it
func CreateTestTemplate(t *testing.T, db *gorm.DB, key string) *domain.QuoteTemplate {
	template := &domain.QuoteTemplate{
		Name:        "Test " + key,
		TemplateKey: key,
		MainColor:   "#801a1e",
	}
	require.NoError(t, db.Create(template).Error)
	return template
}
