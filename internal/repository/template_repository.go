package repository

import (
	"context"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *domain.QuoteTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteTemplate, error) {
	var template domain.QuoteTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) GetByKey(ctx context.Context, key string) (*domain.QuoteTemplate, error) {
	var template domain.QuoteTemplate
	err := r.db.WithContext(ctx).Where("template_key = ?", key).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]domain.QuoteTemplate, error) {
	templates := []domain.QuoteTemplate{}
	err := r.db.WithContext(ctx).Order("template_key ASC").Find(&templates).Error
	return templates, err
}

// UpdateColumns applies a partial update. The map uses database column
// names; nil values clear the column.
func (r *TemplateRepository) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.QuoteTemplate{}).
		Where("id = ?", id).
		Updates(columns).Error
}
