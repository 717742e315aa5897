package service_test

import (
	"context"
	"testing"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/adar-commits/quotes/internal/repository"
	"github.com/adar-commits/quotes/internal/service"
	"github.com/adar-commits/quotes/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTemplateService(db *gorm.DB) *service.TemplateService {
	return service.NewTemplateService(repository.NewTemplateRepository(db), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestTemplateCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)

	dto, err := svc.Create(context.Background(), &domain.CreateTemplateRequest{
		Name:        "Winter Sale",
		TemplateKey: "winter_sale",
		MainColor:   "#112233",
	})
	require.NoError(t, err)

	assert.Equal(t, "winter_sale", dto.TemplateKey)
	assert.Equal(t, "#112233", dto.MainColor)
	assert.NotEqual(t, uuid.Nil, dto.ID)
}

func TestTemplateCreate_DefaultMainColor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)

	dto, err := svc.Create(context.Background(), &domain.CreateTemplateRequest{
		Name:        "Plain",
		TemplateKey: "plain",
	})
	require.NoError(t, err)

	assert.Equal(t, "#801a1e", dto.MainColor)
}

func TestTemplateCreate_KeyNormalized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)

	dto, err := svc.Create(context.Background(), &domain.CreateTemplateRequest{
		Name:        "Winter Sale",
		TemplateKey: "  Winter Sale 2024!  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "winter_sale_2024", dto.TemplateKey)
}

func TestTemplateCreate_DuplicateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)
	testutil.CreateTestTemplate(t, db, "winter_sale")

	_, err := svc.Create(context.Background(), &domain.CreateTemplateRequest{
		Name:        "Another",
		TemplateKey: "Winter Sale",
	})
	assert.ErrorIs(t, err, service.ErrTemplateKeyExists)
}

func TestTemplateList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)
	testutil.CreateTestTemplate(t, db, "zeta")
	testutil.CreateTestTemplate(t, db, "alpha")

	dtos, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, dtos, 2)
	assert.Equal(t, "alpha", dtos[0].TemplateKey)
	assert.Equal(t, "zeta", dtos[1].TemplateKey)
}

func TestTemplateList_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)

	dtos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dtos)
	assert.Empty(t, dtos)
}

func TestTemplateUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)
	template := testutil.CreateTestTemplate(t, db, "winter_sale")

	dto, err := svc.Update(context.Background(), template.ID, &domain.UpdateTemplateRequest{
		MainColor: strPtr("#445566"),
	})
	require.NoError(t, err)

	assert.Equal(t, "#445566", dto.MainColor)
	assert.Equal(t, "winter_sale", dto.TemplateKey, "key is immutable on update")
}

func TestTemplateUpdate_EmptyStringClears(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)
	template := testutil.CreateTestTemplate(t, db, "winter_sale")

	_, err := svc.Update(context.Background(), template.ID, &domain.UpdateTemplateRequest{
		BannerURL: strPtr("https://cdn.example.com/banner.png"),
	})
	require.NoError(t, err)

	dto, err := svc.Update(context.Background(), template.ID, &domain.UpdateTemplateRequest{
		BannerURL: strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, dto.BannerURL)
}

func TestTemplateUpdate_OmittedFieldsUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)
	template := testutil.CreateTestTemplate(t, db, "winter_sale")

	dto, err := svc.Update(context.Background(), template.ID, &domain.UpdateTemplateRequest{
		Name: strPtr("Renamed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", dto.Name)
	assert.Equal(t, "#801a1e", dto.MainColor)
}

func TestTemplateUpdate_NoFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)
	template := testutil.CreateTestTemplate(t, db, "winter_sale")

	_, err := svc.Update(context.Background(), template.ID, &domain.UpdateTemplateRequest{})
	assert.ErrorIs(t, err, service.ErrNoUpdatableFields)
}

func TestTemplateUpdate_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTemplateService(db)

	_, err := svc.Update(context.Background(), uuid.New(), &domain.UpdateTemplateRequest{
		Name: strPtr("Renamed"),
	})
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestNormalizeTemplateKey(t *testing.T) {
	cases := map[string]string{
		"winter_sale":       "winter_sale",
		"Winter Sale":       "winter_sale",
		"  Spring--2024  ":  "spring_2024",
		"___padded___":      "padded",
		"UPPER":             "upper",
		"key!@#with$$$junk": "key_with_junk",
		"already_lower_9":   "already_lower_9",
	}
	for input, want := range cases {
		assert.Equal(t, want, service.NormalizeTemplateKey(input), "input %q", input)
	}
}
