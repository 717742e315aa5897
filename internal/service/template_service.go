package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/adar-commits/quotes/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultMainColor = "#801a1e"

var templateKeyInvalidChars = regexp.MustCompile(`[^a-z0-9_]+`)

type TemplateService struct {
	templateRepo *repository.TemplateRepository
	logger       *zap.Logger
}

func NewTemplateService(templateRepo *repository.TemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{templateRepo: templateRepo, logger: logger}
}

func (s *TemplateService) List(ctx context.Context) ([]domain.TemplateDTO, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	dtos := make([]domain.TemplateDTO, 0, len(templates))
	for i := range templates {
		dtos = append(dtos, domain.ToTemplateDTO(&templates[i]))
	}
	return dtos, nil
}

// Create stores a new template. The key is normalized to lower_snake
// before the uniqueness check so "Winter Sale" and "winter_sale" refer
// to the same template.
func (s *TemplateService) Create(ctx context.Context, req *domain.CreateTemplateRequest) (*domain.TemplateDTO, error) {
	key := NormalizeTemplateKey(req.TemplateKey)

	if _, err := s.templateRepo.GetByKey(ctx, key); err == nil {
		return nil, ErrTemplateKeyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check template key: %w", err)
	}

	template := &domain.QuoteTemplate{
		Name:           req.Name,
		TemplateKey:    key,
		MainColor:      req.MainColor,
		BulletsColor:   req.BulletsColor,
		BannerURL:      req.BannerURL,
		BackgroundURL:  req.BackgroundURL,
		FaviconURL:     req.FaviconURL,
		LogoURL:        req.LogoURL,
		ContactStripBg: req.ContactStripBg,
	}
	if template.MainColor == "" {
		template.MainColor = defaultMainColor
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		// Races with a concurrent create surface as the unique
		// constraint instead of the pre-check.
		if isUniqueViolation(err) {
			return nil, ErrTemplateKeyExists
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("template created", zap.String("template_key", key))
	dto := domain.ToTemplateDTO(template)
	return &dto, nil
}

// Update applies a partial update. Pointer fields that were sent with
// an empty string clear the stored value (NULL in the database).
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateTemplateRequest) (*domain.TemplateDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoUpdatableFields
	}

	if _, err := s.templateRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	columns := map[string]interface{}{}
	setColumn(columns, "name", req.Name)
	setColumn(columns, "main_color", req.MainColor)
	setColumn(columns, "bullets_color", req.BulletsColor)
	setColumn(columns, "banner_url", req.BannerURL)
	setColumn(columns, "background_url", req.BackgroundURL)
	setColumn(columns, "favicon_url", req.FaviconURL)
	setColumn(columns, "logo_url", req.LogoURL)
	setColumn(columns, "contact_strip_bg", req.ContactStripBg)

	if err := s.templateRepo.UpdateColumns(ctx, id, columns); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload template: %w", err)
	}
	dto := domain.ToTemplateDTO(template)
	return &dto, nil
}

// NormalizeTemplateKey lowercases the key and collapses every run of
// characters outside [a-z0-9_] into a single underscore.
func NormalizeTemplateKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = templateKeyInvalidChars.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

func setColumn(columns map[string]interface{}, name string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		columns[name] = nil
		return
	}
	columns[name] = *value
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// lib/pq and sqlite both include this phrase for unique violations
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
