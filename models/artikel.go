package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Length bounds for Artikel fields, mirrored by the validate tags.
const (
	BezeichnungLengthMin = 2
	BezeichnungLengthMax = 32
)

// Artikel is a product. Deletion is logical: Verfuegbar is set to false and
// the row stays. Bezeichnung is unique across all articles.
type Artikel struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Bezeichnung  string          `gorm:"size:32;not null;uniqueIndex" json:"bezeichnung" validate:"required,min=2,max=32"`
	Preis        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"preis" validate:"gte=0"`
	Verfuegbar   bool            `gorm:"not null;index" json:"verfuegbar"`
	Erzeugt      time.Time       `gorm:"not null" json:"-"`
	Aktualisiert time.Time       `gorm:"not null" json:"-"`
}

func (Artikel) TableName() string {
	return "artikel"
}
