package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/validation"
)

// ArtikelService handles article lookups and the article lifecycle.
//
// The duplicate-bezeichnung check on create/update is a read followed by an
// insert and is not atomic under concurrent requests; the unique index on
// bezeichnung is the backstop.
type ArtikelService struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewArtikelService creates a new article service
func NewArtikelService(db *gorm.DB, v *validation.Validator) *ArtikelService {
	return &ArtikelService{db: db, validator: v}
}

// FindVerfuegbareArtikel returns all available articles ordered by id.
func (s *ArtikelService) FindVerfuegbareArtikel(ctx context.Context) ([]models.Artikel, error) {
	var artikel []models.Artikel
	err := s.db.WithContext(ctx).
		Where("verfuegbar = ?", true).
		Order("id").
		Find(&artikel).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find verfuegbare artikel", err)
	}
	return artikel, nil
}

// FindArtikelByID returns the article or nil when no row matches. An id below
// the minimum fails the identifier constraint instead.
func (s *ArtikelService) FindArtikelByID(ctx context.Context, id uint64, locale validation.Locale) (*models.Artikel, error) {
	if violations := s.validator.ValidateID("id", id, locale); len(violations) > 0 {
		return nil, apperrors.InvalidIDError("artikel", id, violations)
	}

	var artikel models.Artikel
	err := s.db.WithContext(ctx).First(&artikel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError("find artikel by id", err)
	}
	return &artikel, nil
}

// FindArtikelByIDs returns the articles matching the given ids.
func (s *ArtikelService) FindArtikelByIDs(ctx context.Context, ids []uint64) ([]models.Artikel, error) {
	if len(ids) == 0 {
		return []models.Artikel{}, nil
	}

	var artikel []models.Artikel
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&artikel).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find artikel by ids", err)
	}
	return artikel, nil
}

// FindArtikelBySuchbegriff searches available articles whose bezeichnung
// contains the term. An empty term behaves like FindVerfuegbareArtikel.
func (s *ArtikelService) FindArtikelBySuchbegriff(ctx context.Context, suchbegriff string, locale validation.Locale) ([]models.Artikel, error) {
	if suchbegriff == "" {
		return s.FindVerfuegbareArtikel(ctx)
	}

	tag := fmt.Sprintf("min=%d,max=%d", models.BezeichnungLengthMin, models.BezeichnungLengthMax)
	if violations := s.validator.ValidateValue("suchbegriff", suchbegriff, tag, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid suchbegriff", violations)
	}

	var artikel []models.Artikel
	err := s.db.WithContext(ctx).
		Where("verfuegbar = ?", true).
		Where("bezeichnung LIKE ?", "%"+suchbegriff+"%").
		Order("id").
		Find(&artikel).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find artikel by suchbegriff", err)
	}
	return artikel, nil
}

// FindArtikelByBezeichnung returns the article with the exact bezeichnung or
// nil when none exists.
func (s *ArtikelService) FindArtikelByBezeichnung(ctx context.Context, bezeichnung string, locale validation.Locale) (*models.Artikel, error) {
	if bezeichnung == "" {
		return nil, nil
	}

	tag := fmt.Sprintf("min=%d,max=%d", models.BezeichnungLengthMin, models.BezeichnungLengthMax)
	if violations := s.validator.ValidateValue("bezeichnung", bezeichnung, tag, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid bezeichnung", violations)
	}

	var artikel models.Artikel
	err := s.db.WithContext(ctx).Where("bezeichnung = ?", bezeichnung).First(&artikel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError("find artikel by bezeichnung", err)
	}
	return &artikel, nil
}

// FindArtikelByMaxPreis returns all articles cheaper than the given price,
// ordered by id.
func (s *ArtikelService) FindArtikelByMaxPreis(ctx context.Context, preis decimal.Decimal) ([]models.Artikel, error) {
	var artikel []models.Artikel
	err := s.db.WithContext(ctx).
		Where("preis < ?", preis).
		Order("id").
		Find(&artikel).Error
	if err != nil {
		return nil, apperrors.DatabaseError("find artikel by max preis", err)
	}
	return artikel, nil
}

// CreateArtikel validates and persists a new article. A pre-assigned id is
// discarded; the article starts out available and the timestamps are stamped
// here, immediately before the insert.
func (s *ArtikelService) CreateArtikel(ctx context.Context, artikel *models.Artikel, locale validation.Locale) (*models.Artikel, error) {
	if artikel == nil {
		return nil, nil
	}

	if violations := s.validator.ValidateStruct(artikel, locale); len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid artikel", violations)
	}

	existing, err := s.FindArtikelByBezeichnung(ctx, artikel.Bezeichnung, locale)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateError("bezeichnung", artikel.Bezeichnung)
	}

	now := time.Now()
	artikel.ID = 0
	artikel.Verfuegbar = true
	artikel.Erzeugt = now
	artikel.Aktualisiert = now

	if err := s.db.WithContext(ctx).Create(artikel).Error; err != nil {
		return nil, apperrors.DatabaseError("create artikel", err)
	}
	return artikel, nil
}

// UpdateArtikel validates (default + identifier group) and merges an article.
// The original creation timestamp is preserved; only aktualisiert is
// refreshed.
func (s *ArtikelService) UpdateArtikel(ctx context.Context, artikel *models.Artikel, locale validation.Locale) (*models.Artikel, error) {
	if artikel == nil {
		return nil, nil
	}

	violations := s.validator.ValidateStruct(artikel, locale)
	violations = append(violations, s.validator.ValidateID("id", artikel.ID, locale)...)
	if len(violations) > 0 {
		return nil, apperrors.ValidationError("invalid artikel", violations)
	}

	sameName, err := s.FindArtikelByBezeichnung(ctx, artikel.Bezeichnung, locale)
	if err != nil {
		return nil, err
	}
	if sameName != nil && sameName.ID != artikel.ID {
		return nil, apperrors.DuplicateError("bezeichnung", artikel.Bezeichnung)
	}

	var current models.Artikel
	if err := s.db.WithContext(ctx).First(&current, artikel.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundByIDError("artikel", artikel.ID)
		}
		return nil, apperrors.DatabaseError("find artikel by id", err)
	}

	artikel.Erzeugt = current.Erzeugt
	artikel.Aktualisiert = time.Now()

	if err := s.db.WithContext(ctx).Save(artikel).Error; err != nil {
		return nil, apperrors.DatabaseError("update artikel", err)
	}
	return artikel, nil
}

// DeleteArtikel removes an article logically: the row stays, availability
// flips to false. Deleting a missing or already unavailable article is a
// no-op.
func (s *ArtikelService) DeleteArtikel(ctx context.Context, id uint64, locale validation.Locale) error {
	if violations := s.validator.ValidateID("id", id, locale); len(violations) > 0 {
		return apperrors.InvalidIDError("artikel", id, violations)
	}

	var artikel models.Artikel
	err := s.db.WithContext(ctx).First(&artikel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.DatabaseError("find artikel by id", err)
	}

	if !artikel.Verfuegbar {
		return nil
	}

	artikel.Verfuegbar = false
	artikel.Aktualisiert = time.Now()
	if err := s.db.WithContext(ctx).Save(&artikel).Error; err != nil {
		return apperrors.DatabaseError("delete artikel", err)
	}
	return nil
}
