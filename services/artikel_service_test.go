package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/validation"
)

func newArtikelService(t *testing.T) *ArtikelService {
	t.Helper()
	return NewArtikelService(SetupTestDB(t), NewTestValidator(t))
}

func createTestArtikel(t *testing.T, svc *ArtikelService, bezeichnung string, preis float64) *models.Artikel {
	t.Helper()
	artikel, err := svc.CreateArtikel(context.Background(), &models.Artikel{
		Bezeichnung: bezeichnung,
		Preis:       decimal.NewFromFloat(preis),
	}, validation.DefaultLocale)
	if err != nil {
		t.Fatalf("could not create artikel %q: %v", bezeichnung, err)
	}
	return artikel
}

func TestCreateArtikel(t *testing.T) {
	svc := newArtikelService(t)

	created := createTestArtikel(t, svc, "Tisch 'Oval'", 124.99)

	assert.NotZero(t, created.ID)
	assert.True(t, created.Verfuegbar)
	assert.False(t, created.Erzeugt.IsZero())
	assert.Equal(t, created.Erzeugt, created.Aktualisiert)

	found, err := svc.FindArtikelByID(context.Background(), created.ID, validation.LocaleDE)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "Tisch 'Oval'", found.Bezeichnung)
	assert.True(t, found.Preis.Equal(decimal.NewFromFloat(124.99)))
}

func TestCreateArtikel_ClientIDIsDiscarded(t *testing.T) {
	svc := newArtikelService(t)

	created, err := svc.CreateArtikel(context.Background(), &models.Artikel{
		ID:          4711,
		Bezeichnung: "Stuhl",
		Preis:       decimal.NewFromInt(50),
	}, validation.DefaultLocale)

	assert.NoError(t, err)
	assert.NotEqual(t, uint64(4711), created.ID)
}

func TestCreateArtikel_DuplicateBezeichnung(t *testing.T) {
	svc := newArtikelService(t)
	createTestArtikel(t, svc, "Tisch", 100)

	_, err := svc.CreateArtikel(context.Background(), &models.Artikel{
		Bezeichnung: "Tisch",
		Preis:       decimal.NewFromInt(80),
	}, validation.DefaultLocale)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeDuplicate, apiErr.Type)
}

func TestCreateArtikel_Invalid(t *testing.T) {
	svc := newArtikelService(t)

	_, err := svc.CreateArtikel(context.Background(), &models.Artikel{
		Bezeichnung: "X",
		Preis:       decimal.NewFromInt(10),
	}, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, apiErr.Type)
	assert.NotEmpty(t, apiErr.Violations)
	assert.Equal(t, "bezeichnung", apiErr.Violations[0].Field)
}

func TestFindArtikelByID_NotFound(t *testing.T) {
	svc := newArtikelService(t)

	artikel, err := svc.FindArtikelByID(context.Background(), 999, validation.LocaleDE)
	assert.NoError(t, err)
	assert.Nil(t, artikel)
}

func TestFindArtikelByID_InvalidID(t *testing.T) {
	svc := newArtikelService(t)

	_, err := svc.FindArtikelByID(context.Background(), 0, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, apiErr.Type)
}

func TestFindArtikelBySuchbegriff(t *testing.T) {
	svc := newArtikelService(t)
	createTestArtikel(t, svc, "Tisch 'Oval'", 100)
	createTestArtikel(t, svc, "Tisch 'Rund'", 120)
	stuhl := createTestArtikel(t, svc, "Stuhl", 50)

	// An empty term lists all available articles
	alle, err := svc.FindArtikelBySuchbegriff(context.Background(), "", validation.LocaleDE)
	assert.NoError(t, err)
	assert.Len(t, alle, 3)

	tische, err := svc.FindArtikelBySuchbegriff(context.Background(), "Tisch", validation.LocaleDE)
	assert.NoError(t, err)
	assert.Len(t, tische, 2)

	// Unavailable articles never match
	assert.NoError(t, svc.DeleteArtikel(context.Background(), stuhl.ID, validation.LocaleDE))
	stuehle, err := svc.FindArtikelBySuchbegriff(context.Background(), "Stuhl", validation.LocaleDE)
	assert.NoError(t, err)
	assert.Empty(t, stuehle)
}

func TestFindArtikelByMaxPreis(t *testing.T) {
	svc := newArtikelService(t)
	createTestArtikel(t, svc, "Tisch", 100)
	createTestArtikel(t, svc, "Stuhl", 50)
	createTestArtikel(t, svc, "Hocker", 30)

	billig, err := svc.FindArtikelByMaxPreis(context.Background(), decimal.NewFromInt(60))
	assert.NoError(t, err)
	assert.Len(t, billig, 2)
	for _, a := range billig {
		assert.True(t, a.Preis.LessThan(decimal.NewFromInt(60)))
	}
}

func TestFindArtikelByIDs(t *testing.T) {
	svc := newArtikelService(t)
	a1 := createTestArtikel(t, svc, "Tisch", 100)
	createTestArtikel(t, svc, "Stuhl", 50)
	a3 := createTestArtikel(t, svc, "Hocker", 30)

	artikel, err := svc.FindArtikelByIDs(context.Background(), []uint64{a1.ID, a3.ID, 999})
	assert.NoError(t, err)
	assert.Len(t, artikel, 2)

	leer, err := svc.FindArtikelByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, leer)
}

func TestUpdateArtikel(t *testing.T) {
	svc := newArtikelService(t)
	created := createTestArtikel(t, svc, "Tisch", 100)

	created.Bezeichnung = "Esstisch"
	created.Preis = decimal.NewFromInt(150)
	updated, err := svc.UpdateArtikel(context.Background(), created, validation.LocaleDE)

	assert.NoError(t, err)
	assert.Equal(t, "Esstisch", updated.Bezeichnung)
	assert.False(t, updated.Aktualisiert.Before(updated.Erzeugt))

	found, err := svc.FindArtikelByID(context.Background(), created.ID, validation.LocaleDE)
	assert.NoError(t, err)
	assert.Equal(t, "Esstisch", found.Bezeichnung)
}

func TestUpdateArtikel_DuplicateBezeichnung(t *testing.T) {
	svc := newArtikelService(t)
	createTestArtikel(t, svc, "Tisch", 100)
	stuhl := createTestArtikel(t, svc, "Stuhl", 50)

	stuhl.Bezeichnung = "Tisch"
	_, err := svc.UpdateArtikel(context.Background(), stuhl, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeDuplicate, apiErr.Type)
}

func TestUpdateArtikel_NotFound(t *testing.T) {
	svc := newArtikelService(t)

	_, err := svc.UpdateArtikel(context.Background(), &models.Artikel{
		ID:          999,
		Bezeichnung: "Tisch",
		Preis:       decimal.NewFromInt(10),
	}, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apiErr.Type)
}

func TestDeleteArtikel_IsLogical(t *testing.T) {
	svc := newArtikelService(t)
	created := createTestArtikel(t, svc, "Tisch", 100)

	assert.NoError(t, svc.DeleteArtikel(context.Background(), created.ID, validation.LocaleDE))

	// The row survives, only the availability flips
	found, err := svc.FindArtikelByID(context.Background(), created.ID, validation.LocaleDE)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.False(t, found.Verfuegbar)

	verfuegbare, err := svc.FindVerfuegbareArtikel(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, verfuegbare)

	// Deleting again or deleting a missing article is a no-op
	assert.NoError(t, svc.DeleteArtikel(context.Background(), created.ID, validation.LocaleDE))
	assert.NoError(t, svc.DeleteArtikel(context.Background(), 999, validation.LocaleDE))
}
