package models

import (
	"time"
)

const AnzahlMin = 1

// Bestellung is an order. The customer reference is set at creation and never
// changes; the order lines are owned and persisted with the order.
type Bestellung struct {
	ID                uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	KundeID           uint64            `gorm:"not null;index" json:"kundeId"`
	Ausgeliefert      bool              `gorm:"not null" json:"ausgeliefert"`
	Bestellpositionen []Bestellposition `gorm:"foreignKey:BestellungID" json:"bestellpositionen" validate:"required,min=1,dive"`

	KundeURI string `gorm:"-" json:"kundeUri,omitempty"`

	Erzeugt      time.Time `gorm:"not null" json:"-"`
	Aktualisiert time.Time `gorm:"not null" json:"-"`
}

func (Bestellung) TableName() string {
	return "bestellung"
}

// Bestellposition is a single order line referencing an existing Artikel.
type Bestellposition struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BestellungID uint64 `gorm:"not null;index" json:"-"`
	ArtikelID    uint64 `gorm:"not null;index" json:"artikelId" validate:"required"`
	Anzahl       int    `gorm:"not null" json:"anzahl" validate:"required,min=1"`
}

func (Bestellposition) TableName() string {
	return "bestellposition"
}
