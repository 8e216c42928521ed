package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/validation"
)

// BestellungService handles order lookups and order creation.
type BestellungService struct {
	db        *gorm.DB
	validator *validation.Validator
	kunden    *KundeService
	notifier  Notifier
}

// NewBestellungService creates a new order service
func NewBestellungService(db *gorm.DB, v *validation.Validator, kunden *KundeService, notifier Notifier) *BestellungService {
	return &BestellungService{db: db, validator: v, kunden: kunden, notifier: notifier}
}

// FindBestellungByID returns the order with its lines or nil when no row
// matches.
func (s *BestellungService) FindBestellungByID(ctx context.Context, id uint64, locale validation.Locale) (*models.Bestellung, error) {
	if violations := s.validator.ValidateID("id", id, locale); len(violations) > 0 {
		return nil, apperrors.InvalidIDError("bestellung", id, violations)
	}

	var bestellung models.Bestellung
	err := s.db.WithContext(ctx).Preload("Bestellpositionen").First(&bestellung, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError("find bestellung by id", err)
	}
	return &bestellung, nil
}

// FindBestellungenByKunde returns all orders of the customer, empty when the
// customer is nil.
func (s *BestellungService) FindBestellungenByKunde(ctx context.Context, kunde *models.Kunde) ([]models.Bestellung, error) {
	if kunde == nil {
		return []models.Bestellung{}, nil
	}

	var bestellungen []models.Bestellung
	err := s.db.WithContext(ctx).
		Preload("Bestellpositionen").
		Where("kunde_id = ?", kunde.ID).
		Order("id").
		Find(&bestellungen).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find bestellungen by kunde", err)
	}
	return bestellungen, nil
}

// FindKundeByBestellungID returns the customer of an order or nil when the
// order does not exist.
func (s *BestellungService) FindKundeByBestellungID(ctx context.Context, id uint64, locale validation.Locale) (*models.Kunde, error) {
	bestellung, err := s.FindBestellungByID(ctx, id, locale)
	if err != nil || bestellung == nil {
		return nil, err
	}
	return s.kunden.FindKundeByID(ctx, bestellung.KundeID, NurKunde, locale)
}

// CreateBestellungForKundeID resolves the customer and delegates to
// CreateBestellung.
func (s *BestellungService) CreateBestellungForKundeID(ctx context.Context, bestellung *models.Bestellung, kundeID uint64, locale validation.Locale) (*models.Bestellung, error) {
	if bestellung == nil {
		return nil, nil
	}

	kunde, err := s.kunden.FindKundeByID(ctx, kundeID, MitBestellungen, locale)
	if err != nil {
		return nil, err
	}
	if kunde == nil {
		return nil, apperrors.NotFoundByIDError("kunde", kundeID)
	}
	return s.CreateBestellung(ctx, bestellung, kunde, locale)
}

// CreateBestellung attaches a new order to a persisted customer and persists
// it with its lines. Client-supplied ids on the order and on every line are
// discarded; every referenced article must already exist. A "new order"
// notification is fired after the insert.
func (s *BestellungService) CreateBestellung(ctx context.Context, bestellung *models.Bestellung, kunde *models.Kunde, locale validation.Locale) (*models.Bestellung, error) {
	if bestellung == nil {
		return nil, nil
	}
	if kunde == nil {
		return nil, apperrors.NotFoundError("kunde")
	}

	// A detached customer (order list not loaded) is re-fetched with orders
	if kunde.Bestellungen == nil {
		fetched, err := s.kunden.FindKundeByID(ctx, kunde.ID, MitBestellungen, locale)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			return nil, apperrors.NotFoundByIDError("kunde", kunde.ID)
		}
		kunde = fetched
	}
	bestellung.KundeID = kunde.ID

	// Ids could carry values when transferred over the wire; reset before insert
	bestellung.ID = 0
	for i := range bestellung.Bestellpositionen {
		bestellung.Bestellpositionen[i].ID = 0
		bestellung.Bestellpositionen[i].BestellungID = 0
	}

	if violations := s.validator.ValidateStruct(bestellung, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid bestellung", violations)
	}

	if err := s.checkArtikelExist(ctx, bestellung.Bestellpositionen); err != nil {
		return nil, err
	}

	now := time.Now()
	bestellung.Erzeugt = now
	bestellung.Aktualisiert = now

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bestellung).Error; err != nil {
			return apperrors.DatabaseError("create bestellung", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kunde.Bestellungen = append(kunde.Bestellungen, *bestellung)

	if s.notifier != nil {
		s.notifier.NeueBestellung(ctx, bestellung)
	}
	return bestellung, nil
}

func (s *BestellungService) checkArtikelExist(ctx context.Context, positionen []models.Bestellposition) error {
	for _, pos := range positionen {
		var count int64
		err := s.db.WithContext(ctx).
			Model(&models.Artikel{}).
			Where("id = ?", pos.ArtikelID).
			Count(&count).Error
		if err != nil {
			return apperrors.DatabaseError("check artikel exists", err)
		}
		if count == 0 {
			return apperrors.NotFoundByIDError("artikel", pos.ArtikelID)
		}
	}
	return nil
}

// Ladenhueter returns up to anzahl articles that appear in no order line at
// all.
func (s *BestellungService) Ladenhueter(ctx context.Context, anzahl int) ([]models.Artikel, error) {
	sub := s.db.Model(&models.Bestellposition{}).Distinct().Select("artikel_id")

	var artikel []models.Artikel
	err := s.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Order("id").
		Limit(anzahl).
		Find(&artikel).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find ladenhueter", err)
	}
	return artikel, nil
}
