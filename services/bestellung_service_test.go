package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/validation"
)

type bestellungFixture struct {
	db       *gorm.DB
	artikel  *ArtikelService
	kunden   *KundeService
	svc      *BestellungService
	notifier *recordingNotifier
	kunde    *models.Kunde
	tisch    *models.Artikel
	stuhl    *models.Artikel
}

func newBestellungFixture(t *testing.T) *bestellungFixture {
	t.Helper()

	db := SetupTestDB(t)
	v := NewTestValidator(t)
	notifier := &recordingNotifier{}

	kunden := NewKundeService(db, v, notifier)
	artikel := NewArtikelService(db, v)
	svc := NewBestellungService(db, v, kunden, notifier)

	f := &bestellungFixture{
		db:       db,
		artikel:  artikel,
		kunden:   kunden,
		svc:      svc,
		notifier: notifier,
	}
	f.kunde = createTestKunde(t, kunden, "anna@example.com")
	f.tisch = createTestArtikel(t, artikel, "Tisch", 100)
	f.stuhl = createTestArtikel(t, artikel, "Stuhl", 50)
	return f
}

func (f *bestellungFixture) neueBestellung() *models.Bestellung {
	return &models.Bestellung{
		Bestellpositionen: []models.Bestellposition{
			{ArtikelID: f.tisch.ID, Anzahl: 1},
			{ArtikelID: f.stuhl.ID, Anzahl: 4},
		},
	}
}

func TestCreateBestellungForKundeID(t *testing.T) {
	f := newBestellungFixture(t)

	created, err := f.svc.CreateBestellungForKundeID(context.Background(), f.neueBestellung(), f.kunde.ID, validation.LocaleDE)

	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, f.kunde.ID, created.KundeID)
	assert.Len(t, created.Bestellpositionen, 2)
	for _, pos := range created.Bestellpositionen {
		assert.NotZero(t, pos.ID)
		assert.Equal(t, created.ID, pos.BestellungID)
	}
	assert.Equal(t, []uint64{created.ID}, f.notifier.bestellungen)
}

func TestCreateBestellung_ClientIDsAreDiscarded(t *testing.T) {
	f := newBestellungFixture(t)

	bestellung := f.neueBestellung()
	bestellung.ID = 99
	bestellung.Bestellpositionen[0].ID = 88
	bestellung.Bestellpositionen[0].BestellungID = 77

	created, err := f.svc.CreateBestellungForKundeID(context.Background(), bestellung, f.kunde.ID, validation.LocaleDE)

	assert.NoError(t, err)
	assert.NotEqual(t, uint64(99), created.ID)
	assert.Equal(t, created.ID, created.Bestellpositionen[0].BestellungID)
}

func TestCreateBestellung_KundeNotFound(t *testing.T) {
	f := newBestellungFixture(t)

	_, err := f.svc.CreateBestellungForKundeID(context.Background(), f.neueBestellung(), 999, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apiErr.Type)
}

func TestCreateBestellung_UnknownArtikel(t *testing.T) {
	f := newBestellungFixture(t)

	bestellung := &models.Bestellung{
		Bestellpositionen: []models.Bestellposition{{ArtikelID: 999, Anzahl: 1}},
	}
	_, err := f.svc.CreateBestellungForKundeID(context.Background(), bestellung, f.kunde.ID, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apiErr.Type)
}

func TestCreateBestellung_OhnePositionen(t *testing.T) {
	f := newBestellungFixture(t)

	_, err := f.svc.CreateBestellungForKundeID(context.Background(), &models.Bestellung{}, f.kunde.ID, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, apiErr.Type)
}

func TestCreateBestellung_InvalidAnzahl(t *testing.T) {
	f := newBestellungFixture(t)

	bestellung := &models.Bestellung{
		Bestellpositionen: []models.Bestellposition{{ArtikelID: f.tisch.ID, Anzahl: 0}},
	}
	_, err := f.svc.CreateBestellungForKundeID(context.Background(), bestellung, f.kunde.ID, validation.LocaleDE)

	apiErr := apperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, apiErr.Type)
}

func TestFindBestellungByID(t *testing.T) {
	f := newBestellungFixture(t)
	created, err := f.svc.CreateBestellungForKundeID(context.Background(), f.neueBestellung(), f.kunde.ID, validation.LocaleDE)
	assert.NoError(t, err)

	found, err := f.svc.FindBestellungByID(context.Background(), created.ID, validation.LocaleDE)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Len(t, found.Bestellpositionen, 2)

	missing, err := f.svc.FindBestellungByID(context.Background(), 999, validation.LocaleDE)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindBestellungenByKunde(t *testing.T) {
	f := newBestellungFixture(t)

	_, err := f.svc.CreateBestellungForKundeID(context.Background(), f.neueBestellung(), f.kunde.ID, validation.LocaleDE)
	assert.NoError(t, err)
	_, err = f.svc.CreateBestellungForKundeID(context.Background(), f.neueBestellung(), f.kunde.ID, validation.LocaleDE)
	assert.NoError(t, err)

	bestellungen, err := f.svc.FindBestellungenByKunde(context.Background(), f.kunde)
	assert.NoError(t, err)
	assert.Len(t, bestellungen, 2)

	leer, err := f.svc.FindBestellungenByKunde(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, leer)
}

func TestFindKundeByBestellungID(t *testing.T) {
	f := newBestellungFixture(t)
	created, err := f.svc.CreateBestellungForKundeID(context.Background(), f.neueBestellung(), f.kunde.ID, validation.LocaleDE)
	assert.NoError(t, err)

	kunde, err := f.svc.FindKundeByBestellungID(context.Background(), created.ID, validation.LocaleDE)
	assert.NoError(t, err)
	assert.NotNil(t, kunde)
	assert.Equal(t, f.kunde.ID, kunde.ID)

	missing, err := f.svc.FindKundeByBestellungID(context.Background(), 999, validation.LocaleDE)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLadenhueter(t *testing.T) {
	f := newBestellungFixture(t)
	hocker := createTestArtikel(t, f.artikel, "Hocker", 30)

	// Only the Tisch is ever ordered
	bestellung := &models.Bestellung{
		Bestellpositionen: []models.Bestellposition{{ArtikelID: f.tisch.ID, Anzahl: 1}},
	}
	_, err := f.svc.CreateBestellungForKundeID(context.Background(), bestellung, f.kunde.ID, validation.LocaleDE)
	assert.NoError(t, err)

	ladenhueter, err := f.svc.Ladenhueter(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, ladenhueter, 2)
	ids := []uint64{ladenhueter[0].ID, ladenhueter[1].ID}
	assert.Contains(t, ids, f.stuhl.ID)
	assert.Contains(t, ids, hocker.ID)

	einer, err := f.svc.Ladenhueter(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, einer, 1)
}
