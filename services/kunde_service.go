package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/validation"
)

// FetchType selects how much of the customer graph a lookup loads.
type FetchType int

const (
	// NurKunde loads the customer and its address only.
	NurKunde FetchType = iota
	// MitBestellungen additionally loads the order list eagerly.
	MitBestellungen
)

// OrderType selects the ordering of customer list results.
type OrderType int

const (
	KeineReihenfolge OrderType = iota
	OrderByID
)

// KundeService handles customer lookups and the customer lifecycle.
//
// The duplicate-email check on create/update is a read followed by an insert
// and is not atomic under concurrent requests; the unique index on email is
// the backstop.
type KundeService struct {
	db        *gorm.DB
	validator *validation.Validator
	notifier  Notifier
}

// NewKundeService creates a new customer service
func NewKundeService(db *gorm.DB, v *validation.Validator, notifier Notifier) *KundeService {
	return &KundeService{db: db, validator: v, notifier: notifier}
}

func (s *KundeService) query(ctx context.Context, fetch FetchType) *gorm.DB {
	q := s.db.WithContext(ctx).Preload("Adresse")
	if fetch == MitBestellungen {
		q = q.Preload("Bestellungen").Preload("Bestellungen.Bestellpositionen")
	}
	return q
}

// FindAllKunden returns all customers, optionally ordered by id.
func (s *KundeService) FindAllKunden(ctx context.Context, fetch FetchType, order OrderType) ([]models.Kunde, error) {
	q := s.query(ctx, fetch)
	if order == OrderByID {
		q = q.Order("id")
	}

	var kunden []models.Kunde
	if err := q.Find(&kunden).Error; err != nil {
		return nil, apperrors.DatabaseError("find alle kunden", err)
	}
	return kunden, nil
}

// FindKundeByID returns the customer or nil when no row matches. An id below
// the minimum fails the identifier constraint instead.
func (s *KundeService) FindKundeByID(ctx context.Context, id uint64, fetch FetchType, locale validation.Locale) (*models.Kunde, error) {
	if violations := s.validator.ValidateID("id", id, locale); len(violations) > 0 {
		return nil, apperrors.InvalidIDError("kunde", id, violations)
	}

	var kunde models.Kunde
	err := s.query(ctx, fetch).First(&kunde, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError("find kunde by id", err)
	}
	return &kunde, nil
}

// FindKundenByNachname returns all customers with the given last name,
// matched case-insensitively.
func (s *KundeService) FindKundenByNachname(ctx context.Context, nachname string, fetch FetchType, locale validation.Locale) ([]models.Kunde, error) {
	tag := fmt.Sprintf("required,min=%d,max=%d,nachname", models.NachnameLengthMin, models.NachnameLengthMax)
	if violations := s.validator.ValidateValue("nachname", nachname, tag, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid nachname", violations)
	}

	var kunden []models.Kunde
	err := s.query(ctx, fetch).
		Where("UPPER(nachname) = UPPER(?)", nachname).
		Find(&kunden).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find kunden by nachname", err)
	}
	return kunden, nil
}

// FindNachnamenByPrefix returns the distinct last names starting with the
// prefix, matched case-insensitively.
func (s *KundeService) FindNachnamenByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var nachnamen []string
	err := s.db.WithContext(ctx).
		Model(&models.Kunde{}).
		Distinct().
		Where("UPPER(nachname) LIKE UPPER(?)", prefix+"%").
		Pluck("nachname", &nachnamen).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find nachnamen by prefix", err)
	}
	return nachnamen, nil
}

// FindKundeByEmail returns the customer with the exact email or nil when none
// exists.
func (s *KundeService) FindKundeByEmail(ctx context.Context, email string, locale validation.Locale) (*models.Kunde, error) {
	tag := fmt.Sprintf("required,email,max=%d", models.EmailLengthMax)
	if violations := s.validator.ValidateValue("email", email, tag, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid email", violations)
	}

	kunde, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return kunde, nil
}

func (s *KundeService) findByEmail(ctx context.Context, email string) (*models.Kunde, error) {
	var kunde models.Kunde
	err := s.db.WithContext(ctx).Preload("Adresse").Where("email = ?", email).First(&kunde).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError("find kunde by email", err)
	}
	return &kunde, nil
}

// FindKundenByPLZ returns all customers whose address has the given postal
// code.
func (s *KundeService) FindKundenByPLZ(ctx context.Context, plz string) ([]models.Kunde, error) {
	var kunden []models.Kunde
	err := s.db.WithContext(ctx).
		Preload("Adresse").
		Joins("JOIN adresse ON adresse.kunde_id = kunde.id").
		Where("adresse.plz = ?", plz).
		Find(&kunden).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find kunden by plz", err)
	}
	return kunden, nil
}

// CreateKunde validates and persists a new customer together with its owned
// address. Pre-assigned ids are discarded, timestamps are stamped here, and a
// "customer created" notification is fired after the insert.
func (s *KundeService) CreateKunde(ctx context.Context, kunde *models.Kunde, locale validation.Locale) (*models.Kunde, error) {
	if kunde == nil {
		return nil, nil
	}

	if kunde.Art == "" {
		kunde.Art = models.ArtPrivatkunde
	}
	if violations := s.validator.ValidateStruct(kunde, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid kunde", violations)
	}

	existing, err := s.findByEmail(ctx, kunde.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateError("email", kunde.Email)
	}

	now := time.Now()
	kunde.ID = 0
	kunde.Erzeugt = now
	kunde.Aktualisiert = now
	kunde.Adresse.ID = 0
	kunde.Adresse.KundeID = 0
	kunde.Adresse.Erzeugt = now
	kunde.Adresse.Aktualisiert = now

	if err := s.db.WithContext(ctx).Create(kunde).Error; err != nil {
		return nil, apperrors.DatabaseError("create kunde", err)
	}

	if s.notifier != nil {
		s.notifier.KundeCreated(ctx, kunde)
	}
	return kunde, nil
}

// UpdateKunde validates (default + identifier group) and merges a customer
// and its address. The address is updated by value-copy onto the owned row;
// the creation timestamp is preserved.
func (s *KundeService) UpdateKunde(ctx context.Context, kunde *models.Kunde, adresse *models.Adresse, locale validation.Locale) (*models.Kunde, error) {
	if kunde == nil {
		return nil, nil
	}

	violations := s.validator.ValidateStruct(kunde, locale)
	violations = append(violations, s.validator.ValidateID("id", kunde.ID, locale)...)
	if len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid kunde", violations)
	}

	sameEmail, err := s.findByEmail(ctx, kunde.Email)
	if err != nil {
		return nil, err
	}
	if sameEmail != nil && sameEmail.ID != kunde.ID {
		return nil, apperrors.DuplicateError("email", kunde.Email)
	}

	var current models.Kunde
	if err := s.db.WithContext(ctx).Preload("Adresse").First(&current, kunde.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundByIDError("kunde", kunde.ID)
		}
		return nil, apperrors.DatabaseError("find kunde by id", err)
	}

	now := time.Now()
	current.SetValues(kunde)
	current.Aktualisiert = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&current).Error; err != nil {
			return apperrors.DatabaseError("update kunde", err)
		}
		if adresse != nil {
			current.Adresse.SetValues(adresse)
			current.Adresse.Aktualisiert = now
			if err := tx.Save(&current.Adresse).Error; err != nil {
				return apperrors.DatabaseError("update adresse", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &current, nil
}

// DeleteKunde removes a customer and its owned address. Customers with
// existing orders cannot be deleted. Passing nil or a no-longer-existing
// customer is a no-op.
func (s *KundeService) DeleteKunde(ctx context.Context, kunde *models.Kunde) error {
	if kunde == nil {
		return nil
	}

	// Reload with orders so the conflict check sees them
	kunde, err := s.FindKundeByID(ctx, kunde.ID, MitBestellungen, validation.DefaultLocale)
	if err != nil {
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) && apiErr.Type == apperrors.ErrorTypeValidation {
			return nil
		}
		return err
	}
	if kunde == nil {
		return nil
	}

	if len(kunde.Bestellungen) > 0 {
		return apperrors.ConflictError(
			fmt.Sprintf("kunde %d has %d bestellung(en) and cannot be deleted", kunde.ID, len(kunde.Bestellungen)))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kunde_id = ?", kunde.ID).Delete(&models.Adresse{}).Error; err != nil {
			return apperrors.DatabaseError("delete adresse", err)
		}
		if err := tx.Delete(&models.Kunde{}, kunde.ID).Error; err != nil {
			return apperrors.DatabaseError("delete kunde", err)
		}
		return nil
	})
}
