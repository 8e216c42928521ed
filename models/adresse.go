package models

import (
	"time"
)

const (
	OrtLengthMin = 2
	OrtLengthMax = 32
)

// Adresse is owned 1:1 by a Kunde: created together, updated by value-copy,
// removed when the customer is removed.
type Adresse struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PLZ          string    `gorm:"column:plz;size:5;not null" json:"plz" validate:"required,plz"`
	Ort          string    `gorm:"size:32;not null" json:"ort" validate:"required,min=2,max=32"`
	KundeID      uint64    `gorm:"not null;index" json:"-"`
	Erzeugt      time.Time `gorm:"not null" json:"-"`
	Aktualisiert time.Time `gorm:"not null" json:"-"`
}

func (Adresse) TableName() string {
	return "adresse"
}

// SetValues copies the address fields of a2 onto a.
func (a *Adresse) SetValues(a2 *Adresse) {
	a.PLZ = a2.PLZ
	a.Ort = a2.Ort
}
